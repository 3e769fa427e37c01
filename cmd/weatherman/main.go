package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"weatherman/internal/config"
	"weatherman/internal/console"
	"weatherman/internal/models"
	"weatherman/internal/report"
	"weatherman/internal/services"
	"weatherman/pkg/logging"
	"weatherman/pkg/metrics"
)

const version = "1.0.0"

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// options holds the command-line flags
type options struct {
	dataDir     string
	city        string
	year        int
	month       string
	yearly      bool
	noColor     bool
	metricsFile string
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("weatherman", flag.ContinueOnError)
	fs.SetOutput(stderr)

	opts := &options{}
	fs.StringVar(&opts.dataDir, "data-dir", "", "Directory containing the <city>_weather folders (overrides WEATHERMAN_DATA_ROOT_DIR)")
	fs.StringVar(&opts.city, "city", "", "City to report on (prompted when empty)")
	fs.IntVar(&opts.year, "year", 0, "Year to report on (prompted when zero)")
	fs.StringVar(&opts.month, "month", "", "Month for a monthly report, e.g. Jan")
	fs.BoolVar(&opts.yearly, "yearly", false, "Generate the yearly report without asking")
	fs.BoolVar(&opts.noColor, "no-color", false, "Disable coloured bars")
	fs.StringVar(&opts.metricsFile, "metrics-file", "", "Write run metrics to this file (overrides WEATHERMAN_METRICS_TEXTFILE)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return opts, nil
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if opts.dataDir != "" {
		cfg.Data.RootDir = opts.dataDir
	}
	if opts.metricsFile != "" {
		cfg.Metrics.Textfile = opts.metricsFile
	}
	if opts.noColor {
		cfg.Report.Color = false
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Initialize logger
	logLevel, _ := logging.ParseLevel(cfg.Logging.Level)
	logger := logging.NewStructuredLogger("weatherman", version, logLevel)
	logger.SetOutput(stderr)

	ctx = logging.WithRunID(ctx, strconv.FormatInt(time.Now().UnixNano(), 36))
	logger.Info(ctx, "[RUN_START] Starting weather report", logging.Fields{
		"version":  version,
		"data_dir": cfg.Data.RootDir,
	})

	metricsCollector := metrics.NewCollector("weatherman")
	defer writeMetrics(ctx, cfg, metricsCollector, logger)

	// Initialize services
	ingestionService := services.NewIngestionService(
		os.DirFS(cfg.Data.RootDir),
		services.DiscoveryConfig{CityDir: cfg.CityDir, Extension: cfg.Data.Extension},
		logger,
		metricsCollector,
	)
	statsService := services.NewStatisticsService(logger, metricsCollector)
	weatherService := services.NewWeatherService(ingestionService, statsService, logger)

	prompter := console.NewPrompter(stdin, stdout)
	colorMode := report.ColorAuto
	if !cfg.Report.Color {
		colorMode = report.ColorNever
	}
	formatter := report.NewFormatter(stdout, colorMode)

	city := opts.city
	if city == "" {
		if city, err = prompter.City(); err != nil {
			return err
		}
	}

	year := opts.year
	if year == 0 {
		if year, err = prompter.Year(); err != nil {
			return err
		}
	}

	logger.Info(ctx, "[RUN_PARAMS] Report parameters resolved", logging.Fields{
		"city":      city,
		"year":      year,
		"city_path": cfg.CityPath(city),
	})

	dataset, err := weatherService.Load(ctx, city, year)
	if err != nil {
		return logFailure(ctx, logger, err)
	}

	monthText := opts.month
	if monthText == "" && !opts.yearly {
		monthly, err := prompter.WantsMonthly()
		if err != nil {
			return err
		}
		if monthly {
			if monthText, err = prompter.Month(); err != nil {
				return err
			}
			if monthText == "" {
				return &models.InvalidMonthError{Input: monthText}
			}
		}
	}

	if monthText != "" {
		monthlyReport, err := weatherService.MonthlyReport(ctx, dataset, city, year, monthText)
		if err != nil {
			return logFailure(ctx, logger, err)
		}
		return formatter.WriteMonthly(monthlyReport)
	}

	yearlyReport, err := weatherService.YearlyReport(ctx, dataset, city, year)
	if err != nil {
		return logFailure(ctx, logger, err)
	}
	return formatter.WriteYearly(yearlyReport)
}

// logFailure records a fatal report error and returns it unchanged
func logFailure(ctx context.Context, logger *logging.StructuredLogger, err error) error {
	var (
		noData   *models.NoDataFoundError
		badMonth *models.InvalidMonthError
		empty    *models.EmptyAggregationError
	)

	kind := "unknown"
	switch {
	case errors.As(err, &noData):
		kind = "no_data"
	case errors.As(err, &badMonth):
		kind = "invalid_month"
	case errors.As(err, &empty):
		kind = "empty_aggregation"
	}

	logger.Error(ctx, "[RUN_ERROR] Report generation failed", logging.Fields{
		"error_kind": kind,
	}, err)
	return err
}

func writeMetrics(ctx context.Context, cfg *config.Config, collector *metrics.Collector, logger *logging.StructuredLogger) {
	if cfg.Metrics.Textfile == "" {
		return
	}
	if err := collector.WriteTextfile(cfg.Metrics.Textfile); err != nil {
		logger.Error(ctx, "[METRICS_ERROR] Failed to write metrics textfile", logging.Fields{
			"path": cfg.Metrics.Textfile,
		}, err)
	}
}
