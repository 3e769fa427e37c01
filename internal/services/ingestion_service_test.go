package services

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weatherman/internal/config"
	"weatherman/internal/models"
	"weatherman/pkg/logging"
	"weatherman/pkg/metrics"
)

var testConfig = &config.Config{Data: config.DataConfig{DirPattern: "%s_weather", Extension: ".txt"}}

var testDiscovery = DiscoveryConfig{CityDir: testConfig.CityDir, Extension: testConfig.Data.Extension}

func newTestLogger() *logging.StructuredLogger {
	logger := logging.NewStructuredLogger("weatherman-test", "test", logging.DebugLevel)
	logger.SetOutput(io.Discard)
	return logger
}

func newTestIngestion(fsys fstest.MapFS) (*IngestionService, *metrics.Collector) {
	collector := metrics.NewCollector("weatherman_test")
	return NewIngestionService(fsys, testDiscovery, newTestLogger(), collector), collector
}

func file(content string) *fstest.MapFile {
	return &fstest.MapFile{Data: []byte(content)}
}

func TestIngestionService_Load(t *testing.T) {
	fsys := fstest.MapFS{
		"lahore_weather/lahore_2019_Jun.txt": file(lahoreJune),
		// No year token in the name
		"lahore_weather/lahore_Jun.txt": file(lahoreJune),
		// Wrong extension
		"lahore_weather/lahore_2019_Jul.csv": file(lahoreJune),
		// Another city
		"dubai_weather/dubai_2019_Jun.txt": file(lahoreJune),
	}
	svc, collector := newTestIngestion(fsys)

	result, err := svc.Load(context.Background(), "lahore", 2019)
	require.NoError(t, err)

	require.Len(t, result.Dataset, 2)
	assert.Equal(t, 1, result.TotalFiles)
	assert.Equal(t, 1, result.ParsedFiles)
	assert.Zero(t, result.SkippedFiles)
	assert.Equal(t, 2, result.TotalRecords)
	assert.Empty(t, result.Errors)

	assert.Equal(t, float64(1), testutil.ToFloat64(collector.FilesDiscoveredTotal))
	assert.Equal(t, float64(2), testutil.ToFloat64(collector.RecordsLoadedTotal))
}

func TestIngestionService_Load_RecursiveAndOrdered(t *testing.T) {
	fsys := fstest.MapFS{
		"murree_weather/b/murree_2010_Feb.txt": file("PKT,Max TemperatureC,Min TemperatureC,Max Humidity\n2010-2-1,10,1,80\nfooter\n"),
		"murree_weather/a/murree_2010_Jan.txt": file("PKST,Max TemperatureC,Min TemperatureC,Max Humidity\n2010-1-1,8,-2,90\n2010-1-2,9,-1,91\nfooter\n"),
		"murree_weather/murree_2010_Mar.txt":   file("GST,Max TemperatureC,Min TemperatureC,Max Humidity\n2010-3-1,15,5,70\nfooter\n"),
	}
	svc, _ := newTestIngestion(fsys)

	result, err := svc.Load(context.Background(), "murree", 2010)
	require.NoError(t, err)
	require.Len(t, result.Dataset, 4)

	months := make([]time.Month, 0, 4)
	for _, r := range result.Dataset {
		months = append(months, r.Date.Month())
	}
	// Lexical walk order: a/, b/, then the top-level file
	assert.Equal(t, []time.Month{time.January, time.January, time.February, time.March}, months)
	assert.Equal(t, "PKST", result.Dataset[0].DateColumn)
	assert.Equal(t, "GST", result.Dataset[3].DateColumn)
}

func TestIngestionService_Load_SkipsUnparsableFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"lahore_weather/lahore_2019_Jun.txt": file(lahoreJune),
		"lahore_weather/lahore_2019_May.txt": file("PKT,Max TemperatureC,Min TemperatureC\n2019-5-1,1\n2019-5-2,1,2,3,4\nfooter\n"),
	}
	svc, collector := newTestIngestion(fsys)

	result, err := svc.Load(context.Background(), "lahore", 2019)
	require.NoError(t, err)

	assert.Len(t, result.Dataset, 2)
	assert.Equal(t, 2, result.TotalFiles)
	assert.Equal(t, 1, result.SkippedFiles)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "lahore_2019_May.txt")
	assert.Equal(t, float64(1), testutil.ToFloat64(collector.FilesSkippedTotal.WithLabelValues("unparsable")))
}

func TestIngestionService_Load_SubstringYearMatch(t *testing.T) {
	fsys := fstest.MapFS{
		"lahore_weather/2019_extra_2099.txt": file(lahoreJune),
	}
	svc, _ := newTestIngestion(fsys)

	// The file name contains 2099, so it is loaded for that year too
	result, err := svc.Load(context.Background(), "lahore", 2099)
	require.NoError(t, err)
	assert.Len(t, result.Dataset, 2)
}

func TestIngestionService_Load_NoData(t *testing.T) {
	tests := []struct {
		name string
		fsys fstest.MapFS
		year int
	}{
		{
			name: "no matching year",
			fsys: fstest.MapFS{"lahore_weather/lahore_2019_Jun.txt": file(lahoreJune)},
			year: 2099,
		},
		{
			name: "missing city directory",
			fsys: fstest.MapFS{"dubai_weather/dubai_2099_Jun.txt": file(lahoreJune)},
			year: 2099,
		},
		{
			name: "all files unparsable",
			fsys: fstest.MapFS{"lahore_weather/lahore_2099_Jun.txt": file("a,b\n1\n1,2,3\nfooter\n")},
			year: 2099,
		},
		{
			name: "no known date column",
			fsys: fstest.MapFS{"lahore_weather/lahore_2099_Jun.txt": file("Date,Max TemperatureC\n2099-6-1,40\nfooter\n")},
			year: 2099,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestIngestion(tt.fsys)

			_, err := svc.Load(context.Background(), "lahore", tt.year)

			var noData *models.NoDataFoundError
			require.ErrorAs(t, err, &noData)
			assert.Equal(t, "lahore", noData.City)
			assert.Equal(t, 2099, noData.Year)
			assert.Contains(t, err.Error(), "2099")
		})
	}
}

func TestIngestionService_Load_Cancelled(t *testing.T) {
	fsys := fstest.MapFS{"lahore_weather/lahore_2019_Jun.txt": file(lahoreJune)}
	svc, _ := newTestIngestion(fsys)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Load(ctx, "lahore", 2019)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIngestionService_Load_NoDataLoggedAsError(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewStructuredLogger("weatherman-test", "test", logging.WarnLevel)
	logger.SetOutput(&buf)

	fsys := fstest.MapFS{"lahore_weather/lahore_2019_Jun.txt": file(lahoreJune)}
	svc := NewIngestionService(fsys, testDiscovery, logger, metrics.NewCollector("weatherman_test"))

	_, err := svc.Load(context.Background(), "lahore", 2099)
	require.Error(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	var entry logging.LogEntry
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &entry))

	assert.Equal(t, "ERROR", entry.Level)
	assert.Contains(t, entry.Message, "[LOAD_EMPTY]")
	assert.Equal(t, err.Error(), entry.Error)
	assert.Equal(t, "lahore", entry.Fields["city"])
	assert.True(t, strings.HasSuffix(entry.File, "ingestion_service.go"), entry.File)
}
