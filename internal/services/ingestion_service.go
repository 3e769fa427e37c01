package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strconv"
	"strings"
	"time"

	"weatherman/internal/models"
	"weatherman/pkg/logging"
	"weatherman/pkg/metrics"
)

// DiscoveryConfig describes where a city's files live inside the data filesystem
type DiscoveryConfig struct {
	// CityDir maps a city to its directory, usually config.Config.CityDir
	CityDir   func(city string) string
	Extension string
}

// IngestionService loads per-city weather files into a dataset
type IngestionService struct {
	fsys      fs.FS
	discovery DiscoveryConfig
	logger    *logging.StructuredLogger
	metrics   *metrics.Collector
}

// IngestionResult contains the loaded dataset and ingestion statistics
type IngestionResult struct {
	Dataset      models.Dataset
	TotalFiles   int
	ParsedFiles  int
	SkippedFiles int
	TotalRecords int
	DroppedRows  int
	Duration     time.Duration
	Errors       []string
}

// NewIngestionService creates a new ingestion service reading from fsys
func NewIngestionService(fsys fs.FS, discovery DiscoveryConfig, logger *logging.StructuredLogger, metricsCollector *metrics.Collector) *IngestionService {
	return &IngestionService{
		fsys:      fsys,
		discovery: discovery,
		logger:    logger,
		metrics:   metricsCollector,
	}
}

// Load reads every file of city whose name contains year and concatenates
// their records in file-visit order
func (s *IngestionService) Load(ctx context.Context, city string, year int) (*IngestionResult, error) {
	startTime := time.Now()
	log := s.logger.WithFields(logging.Fields{
		"city": city,
		"year": year,
	})

	cityDir := s.discovery.CityDir(city)
	log.Info(ctx, "[LOAD_START] Starting dataset load", logging.Fields{
		"city_dir": cityDir,
		"stage":    "INITIALIZATION",
	})

	result := &IngestionResult{
		Errors: make([]string, 0),
	}

	files, err := s.discoverFiles(cityDir, year)
	if err != nil {
		noData := &models.NoDataFoundError{City: city, Year: year}
		log.Error(ctx, "[LOAD_DISCOVERY_FAILED] Could not walk city directory", logging.Fields{
			"city_dir":   cityDir,
			"walk_error": err.Error(),
			"stage":      "FILE_DISCOVERY",
		}, noData)
		return nil, noData
	}

	result.TotalFiles = len(files)
	s.metrics.FilesDiscoveredTotal.Add(float64(len(files)))

	log.Info(ctx, "[LOAD_FILES] Found data files", logging.Fields{
		"file_count": len(files),
		"stage":      "FILE_DISCOVERY",
	})

	for _, filePath := range files {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("load cancelled: %w", err)
		}

		fileResult, err := s.loadFile(filePath)
		if err != nil {
			result.SkippedFiles++
			result.Errors = append(result.Errors, err.Error())
			s.metrics.RecordFileSkipped(skipReason(err))
			log.Warn(ctx, "[LOAD_FILE_SKIPPED] File could not be parsed", logging.Fields{
				"file_path": filePath,
				"error":     err.Error(),
				"stage":     "FILE_PROCESSING",
			})
			continue
		}

		if fileResult.DateColumn == "" {
			s.metrics.RecordFileSkipped("no_date_column")
			log.Warn(ctx, "[LOAD_FILE_NO_DATE] No known date column in file", logging.Fields{
				"file_path":  filePath,
				"candidates": DateColumnCandidates,
				"stage":      "FILE_PROCESSING",
			})
		}

		result.ParsedFiles++
		result.DroppedRows += fileResult.DroppedRows
		result.Dataset = append(result.Dataset, fileResult.Records...)
		if fileResult.DroppedRows > 0 {
			s.metrics.RowsDroppedTotal.WithLabelValues("invalid_date").Add(float64(fileResult.DroppedRows))
		}

		log.Debug(ctx, "[LOAD_FILE_SUCCESS] File parsed", logging.Fields{
			"file_path":    filePath,
			"date_column":  fileResult.DateColumn,
			"records":      len(fileResult.Records),
			"dropped_rows": fileResult.DroppedRows,
			"stage":        "FILE_COMPLETE",
		})
	}

	result.TotalRecords = len(result.Dataset)
	result.Duration = time.Since(startTime)
	s.metrics.LoadDuration.Observe(result.Duration.Seconds())
	s.metrics.RecordsLoadedTotal.Add(float64(result.TotalRecords))

	if result.TotalRecords == 0 {
		noData := &models.NoDataFoundError{City: city, Year: year}
		log.Error(ctx, "[LOAD_EMPTY] No records loaded", logging.Fields{
			"total_files":   result.TotalFiles,
			"skipped_files": result.SkippedFiles,
			"stage":         "COMPLETE",
		}, noData)
		return nil, noData
	}

	log.Info(ctx, "[LOAD_COMPLETE] Dataset loaded", logging.Fields{
		"total_files":      result.TotalFiles,
		"parsed_files":     result.ParsedFiles,
		"skipped_files":    result.SkippedFiles,
		"total_records":    result.TotalRecords,
		"dropped_rows":     result.DroppedRows,
		"duration_seconds": result.Duration.Seconds(),
		"stage":            "COMPLETE",
	})

	return result, nil
}

// discoverFiles walks cityDir and returns the files whose name has the
// configured extension and contains the year as a substring
func (s *IngestionService) discoverFiles(cityDir string, year int) ([]string, error) {
	yearText := strconv.Itoa(year)
	var files []string

	err := fs.WalkDir(s.fsys, cityDir, func(filePath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		name := d.Name()
		if strings.HasSuffix(name, s.discovery.Extension) && strings.Contains(name, yearText) {
			files = append(files, filePath)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

// loadFile parses a single weather data file
func (s *IngestionService) loadFile(filePath string) (*ParseResult, error) {
	file, err := s.fsys.Open(filePath)
	if err != nil {
		return nil, &models.UnparsableFileError{Path: filePath, Err: err}
	}
	defer file.Close()

	return ParseRecords(file, path.Base(filePath))
}

func skipReason(err error) string {
	var fileErr *models.UnparsableFileError
	if errors.As(err, &fileErr) && errors.Is(fileErr.Err, fs.ErrNotExist) {
		return "not_found"
	}
	return "unparsable"
}
