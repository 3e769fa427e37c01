package services

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"weatherman/internal/models"
)

// Column headers of the numeric fields
const (
	ColumnMaxTemperature = "Max TemperatureC"
	ColumnMinTemperature = "Min TemperatureC"
	ColumnMaxHumidity    = "Max Humidity"
)

// DateColumnCandidates are the date column headers used by the different
// file variants, in resolution order
var DateColumnCandidates = []string{"PKT", "PKST", "GST"}

// ParseResult contains the records of one input file
type ParseResult struct {
	Records     []models.DailyRecord
	DateColumn  string
	TotalRows   int
	DroppedRows int
}

// ResolveDateColumn returns the first candidate date column present in headers
func ResolveDateColumn(headers []string) (string, bool) {
	for _, candidate := range DateColumnCandidates {
		for _, header := range headers {
			if strings.TrimSpace(header) == candidate {
				return header, true
			}
		}
	}
	return "", false
}

// ParseRecords parses one input file
// Format: header row, data rows, one trailing footer row
func ParseRecords(r io.Reader, sourceFile string) (*ParseResult, error) {
	lines, err := readDataLines(r)
	if err != nil {
		return nil, &models.UnparsableFileError{Path: sourceFile, Err: err}
	}

	result := &ParseResult{}

	// Header only, or nothing at all
	if len(lines) < 2 {
		return result, nil
	}

	records, err := readRecords(lines)
	if err != nil {
		return nil, &models.UnparsableFileError{Path: sourceFile, Err: err}
	}
	if len(records) < 2 {
		return result, nil
	}

	df := dataframe.LoadRecords(
		records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return nil, &models.UnparsableFileError{Path: sourceFile, Err: df.Err}
	}

	dateColumn, ok := ResolveDateColumn(df.Names())
	if !ok {
		return result, nil
	}
	result.DateColumn = strings.TrimSpace(dateColumn)

	dates := df.Col(dateColumn).Records()
	maxTemps := columnRecords(df, ColumnMaxTemperature)
	minTemps := columnRecords(df, ColumnMinTemperature)
	humidity := columnRecords(df, ColumnMaxHumidity)

	result.TotalRows = len(dates)
	result.Records = make([]models.DailyRecord, 0, len(dates))

	for i, date := range dates {
		raw := models.RawWeatherRecord{
			Date:               date,
			MaxTemperatureC:    cell(maxTemps, i),
			MinTemperatureC:    cell(minTemps, i),
			MaxHumidityPercent: cell(humidity, i),
		}

		record, err := raw.ToRecord(result.DateColumn, sourceFile)
		if err != nil {
			result.DroppedRows++
			continue
		}
		result.Records = append(result.Records, *record)
	}

	return result, nil
}

// readDataLines returns the lines of r without the footer line
// Only empty lines are ignored before the footer is dropped, so a
// whitespace-only last line is still the footer.
func readDataLines(r io.Reader) ([]string, error) {
	var lines []string

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}

	if len(lines) == 0 {
		return nil, nil
	}
	lines = lines[:len(lines)-1]

	data := lines[:0]
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			data = append(data, line)
		}
	}
	return data, nil
}

// readRecords splits lines into CSV records, tolerating bare quotes inside
// cells. Rows shorter than the header are padded with empty cells; a row
// longer than the header is an error.
func readRecords(lines []string) ([][]string, error) {
	reader := csv.NewReader(strings.NewReader(strings.Join(lines, "\n")))
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return records, nil
	}

	width := len(records[0])
	for i, record := range records[1:] {
		switch {
		case len(record) > width:
			return nil, fmt.Errorf("row %d has %d fields, header has %d", i+1, len(record), width)
		case len(record) < width:
			padded := make([]string, width)
			copy(padded, record)
			records[i+1] = padded
		}
	}
	return records, nil
}

// columnRecords returns the cells of the column whose trimmed header is name,
// or nil when the file has no such column
func columnRecords(df dataframe.DataFrame, name string) []string {
	for _, header := range df.Names() {
		if strings.TrimSpace(header) == name {
			return df.Col(header).Records()
		}
	}
	return nil
}

func cell(values []string, i int) string {
	if i < len(values) {
		return values[i]
	}
	return ""
}
