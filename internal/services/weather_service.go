package services

import (
	"context"

	"weatherman/internal/models"
	"weatherman/pkg/logging"
)

// WeatherService ties dataset loading to report calculation
type WeatherService struct {
	ingestion *IngestionService
	stats     *StatisticsService
	logger    *logging.StructuredLogger
}

// NewWeatherService creates a new weather service
func NewWeatherService(ingestion *IngestionService, stats *StatisticsService, logger *logging.StructuredLogger) *WeatherService {
	return &WeatherService{
		ingestion: ingestion,
		stats:     stats,
		logger:    logger,
	}
}

// Load loads the dataset of city for year
func (s *WeatherService) Load(ctx context.Context, city string, year int) (models.Dataset, error) {
	result, err := s.ingestion.Load(ctx, city, year)
	if err != nil {
		return nil, err
	}
	return result.Dataset, nil
}

// YearlyReport computes the extremes of year over an already loaded dataset
func (s *WeatherService) YearlyReport(ctx context.Context, ds models.Dataset, city string, year int) (*YearlyReport, error) {
	return s.stats.YearlyReport(ctx, ds, city, year)
}

// MonthlyReport computes the report for the month named by monthText over an
// already loaded dataset
func (s *WeatherService) MonthlyReport(ctx context.Context, ds models.Dataset, city string, year int, monthText string) (*MonthlyReport, error) {
	month, err := models.ParseMonth(monthText)
	if err != nil {
		s.logger.Warn(ctx, "[REPORT_INVALID_MONTH] Month input not recognised", logging.Fields{
			"month_input": monthText,
		})
		return nil, err
	}
	return s.stats.MonthlyReport(ctx, ds, city, year, month, monthText)
}

// GetYearlyReport loads the data of city and computes the extremes of year
func (s *WeatherService) GetYearlyReport(ctx context.Context, city string, year int) (*YearlyReport, error) {
	ds, err := s.Load(ctx, city, year)
	if err != nil {
		return nil, err
	}
	return s.YearlyReport(ctx, ds, city, year)
}

// GetMonthlyReport loads the data of city and computes the report for the
// month named by monthText
func (s *WeatherService) GetMonthlyReport(ctx context.Context, city string, year int, monthText string) (*MonthlyReport, error) {
	ds, err := s.Load(ctx, city, year)
	if err != nil {
		return nil, err
	}
	return s.MonthlyReport(ctx, ds, city, year, monthText)
}
