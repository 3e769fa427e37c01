package models

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// DailyRecord represents one day of weather observations for a city
// Missing values are represented as nil pointers, never as zero
type DailyRecord struct {
	Date               time.Time `json:"date"`
	MaxTemperatureC    *int      `json:"max_temperature_c,omitempty"`
	MinTemperatureC    *int      `json:"min_temperature_c,omitempty"`
	MaxHumidityPercent *int      `json:"max_humidity_percent,omitempty"`
	SourceFile         string    `json:"source_file,omitempty"`
	DateColumn         string    `json:"date_column,omitempty"`
}

// Dataset is an ordered collection of daily records
type Dataset []DailyRecord

// Len returns the number of records in the dataset
func (d Dataset) Len() int {
	return len(d)
}

// RawWeatherRecord represents a single data row from an input file
// Used during ingestion process, every field is the raw cell text
type RawWeatherRecord struct {
	Date               string
	MaxTemperatureC    string
	MinTemperatureC    string
	MaxHumidityPercent string
}

// dateLayouts are tried before falling back to free-form parsing
var dateLayouts = []string{
	"2006-1-2",
	"2006-1-2 15:04",
	"2006-1-2 15:04:05",
	"2006/1/2",
	"2006/1/2 15:04",
	"2006/1/2 15:04:05",
}

// ToRecord converts RawWeatherRecord to DailyRecord
// Unparseable numeric cells become nil, an unparseable date is an error
func (r *RawWeatherRecord) ToRecord(dateColumn, sourceFile string) (*DailyRecord, error) {
	date, err := ParseDate(r.Date)
	if err != nil {
		return nil, &ValidationError{
			Field:   dateColumn,
			Value:   r.Date,
			Message: "invalid date: " + err.Error(),
		}
	}

	rec := &DailyRecord{
		Date:               date,
		MaxTemperatureC:    ParseOptionalInt(r.MaxTemperatureC),
		MinTemperatureC:    ParseOptionalInt(r.MinTemperatureC),
		MaxHumidityPercent: ParseOptionalInt(r.MaxHumidityPercent),
		SourceFile:         sourceFile,
		DateColumn:         dateColumn,
	}

	// Humidity is a percentage
	if h := rec.MaxHumidityPercent; h != nil && (*h < 0 || *h > 100) {
		rec.MaxHumidityPercent = nil
	}

	return rec, nil
}

// ParseDate parses a date with an optional time of day and returns
// the calendar day at UTC midnight
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return truncateToDay(t), nil
		}
	}

	t, err := dateparse.ParseIn(value, time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	return truncateToDay(t), nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseOptionalInt parses an integer cell
// Decimal text is truncated toward zero; blanks and placeholders yield nil
func ParseOptionalInt(value string) *int {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}

	if n, err := strconv.Atoi(value); err == nil {
		return &n
	}

	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	n := int(f)
	return &n
}

// IntPtr returns a pointer to v
func IntPtr(v int) *int {
	return &v
}
