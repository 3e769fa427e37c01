package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weatherman/internal/models"
)

func record(year int, month time.Month, day, maxTemp int) models.DailyRecord {
	return models.DailyRecord{
		Date:            time.Date(year, month, day, 0, 0, 0, 0, time.UTC),
		MaxTemperatureC: models.IntPtr(maxTemp),
	}
}

func sampleDataset() models.Dataset {
	return models.Dataset{
		record(2019, time.June, 2, 42),
		record(2018, time.June, 1, 38),
		record(2019, time.June, 1, 40),
		record(2019, time.July, 1, 39),
		record(2019, time.June, 3, 41),
	}
}

func TestByYear(t *testing.T) {
	ds := sampleDataset()

	got := ByYear(ds, 2019)

	require.Len(t, got, 4)
	assert.Equal(t, 42, *got[0].MaxTemperatureC)
	assert.Equal(t, 40, *got[1].MaxTemperatureC)
	assert.Equal(t, 39, *got[2].MaxTemperatureC)
	assert.Equal(t, 41, *got[3].MaxTemperatureC)
}

func TestByYear_Idempotent(t *testing.T) {
	once := ByYear(sampleDataset(), 2019)
	twice := ByYear(once, 2019)

	assert.Equal(t, once, twice)
}

func TestByYearMonth(t *testing.T) {
	got := ByYearMonth(sampleDataset(), 2019, time.June)

	require.Len(t, got, 3)
	days := []int{got[0].Date.Day(), got[1].Date.Day(), got[2].Date.Day()}
	assert.Equal(t, []int{2, 1, 3}, days)
}

func TestFilter_EmptyResult(t *testing.T) {
	got := ByYearMonth(sampleDataset(), 2019, time.December)

	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Empty(t, ByYear(nil, 2019))
}

func TestFilter_DoesNotMutateOrAlias(t *testing.T) {
	ds := sampleDataset()
	original := append(models.Dataset(nil), ds...)

	got := ByYear(ds, 2019)
	got[0].MaxTemperatureC = models.IntPtr(-1)
	got[0].Date = time.Time{}

	assert.Equal(t, original[0].Date, ds[0].Date)
	assert.Equal(t, len(original), len(ds))
}

func TestByDay(t *testing.T) {
	got := ByDay(sampleDataset(), 1)
	assert.Len(t, got, 3)
}

func TestObservationFilter_Matches(t *testing.T) {
	rec := record(2019, time.June, 2, 42)
	year, otherYear := 2019, 2020
	month := time.June
	day := 3

	assert.True(t, ObservationFilter{}.Matches(rec))
	assert.True(t, ObservationFilter{Year: &year, Month: &month}.Matches(rec))
	assert.False(t, ObservationFilter{Year: &otherYear}.Matches(rec))
	assert.False(t, ObservationFilter{Day: &day}.Matches(rec))
}
