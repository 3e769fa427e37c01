package services

import (
	"context"
	"fmt"
	"time"

	"weatherman/internal/models"
	"weatherman/internal/repository"
	"weatherman/pkg/logging"
	"weatherman/pkg/metrics"
)

// StatisticsService handles weather statistics calculations
type StatisticsService struct {
	logger  *logging.StructuredLogger
	metrics *metrics.Collector
}

// YearlyReport holds the extremes of one year
type YearlyReport struct {
	City            string
	Year            int
	HighestTemp     Extreme
	LowestTemp      Extreme
	HighestHumidity Extreme
}

// DailyTemperatures is one record's temperatures for the bar chart.
// Only records with both temperatures present are charted.
type DailyTemperatures struct {
	Date time.Time
	High int
	Low  int
}

// MonthlyReport holds the bar chart data and summary of one month
type MonthlyReport struct {
	City     string
	Year     int
	Month    time.Month
	Label    string
	Days     []DailyTemperatures
	Ranges   []DayRange
	Averages Averages
}

// NewStatisticsService creates a new statistics service
func NewStatisticsService(logger *logging.StructuredLogger, metricsCollector *metrics.Collector) *StatisticsService {
	return &StatisticsService{
		logger:  logger,
		metrics: metricsCollector,
	}
}

// YearlyReport calculates the temperature and humidity extremes of year
func (s *StatisticsService) YearlyReport(ctx context.Context, ds models.Dataset, city string, year int) (*YearlyReport, error) {
	timer := s.metrics.AggregationTimer("yearly")

	// Files are matched on a year substring, so the dataset may hold no
	// record dated in year at all
	yearData := repository.ByYear(ds, year)
	if len(yearData) == 0 {
		return nil, &models.NoDataFoundError{City: city, Year: year}
	}

	highest, err := MaxTemperatureExtreme(yearData)
	if err != nil {
		return nil, fmt.Errorf("yearly report for %d: %w", year, err)
	}

	lowest, err := MinTemperatureExtreme(yearData)
	if err != nil {
		return nil, fmt.Errorf("yearly report for %d: %w", year, err)
	}

	humid, err := MaxHumidityExtreme(yearData)
	if err != nil {
		return nil, fmt.Errorf("yearly report for %d: %w", year, err)
	}

	duration := timer.ObserveDuration()
	s.metrics.RecordReport("yearly")

	s.logger.Info(ctx, "[STATS_YEARLY_COMPLETE] Yearly statistics calculated", logging.Fields{
		"city":             city,
		"year":             year,
		"records":          len(yearData),
		"duration_seconds": duration.Seconds(),
	})

	return &YearlyReport{
		City:            city,
		Year:            year,
		HighestTemp:     highest,
		LowestTemp:      lowest,
		HighestHumidity: humid,
	}, nil
}

// MonthlyReport calculates the bar chart data and summary of one month.
// label is the month as the operator typed it.
func (s *StatisticsService) MonthlyReport(ctx context.Context, ds models.Dataset, city string, year int, month time.Month, label string) (*MonthlyReport, error) {
	timer := s.metrics.AggregationTimer("monthly")

	monthData := repository.ByYearMonth(ds, year, month)
	if len(monthData) == 0 {
		return nil, &models.NoDataFoundError{City: city, Year: year, Month: month}
	}

	report := &MonthlyReport{
		City:     city,
		Year:     year,
		Month:    month,
		Label:    label,
		Days:     make([]DailyTemperatures, 0, len(monthData)),
		Ranges:   DailyRanges(monthData),
		Averages: MonthlyAverages(monthData),
	}

	for _, rec := range monthData {
		if rec.MaxTemperatureC == nil || rec.MinTemperatureC == nil {
			continue
		}
		report.Days = append(report.Days, DailyTemperatures{
			Date: rec.Date,
			High: *rec.MaxTemperatureC,
			Low:  *rec.MinTemperatureC,
		})
	}

	duration := timer.ObserveDuration()
	s.metrics.RecordReport("monthly")

	s.logger.Info(ctx, "[STATS_MONTHLY_COMPLETE] Monthly statistics calculated", logging.Fields{
		"year":             year,
		"month":            month.String(),
		"records":          len(monthData),
		"charted_days":     len(report.Days),
		"duration_seconds": duration.Seconds(),
	})

	return report, nil
}
