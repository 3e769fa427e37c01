package services

import (
	"time"

	"weatherman/internal/models"
	"weatherman/internal/repository"
)

// MissingDayValue is displayed for a day whose temperature is absent
const MissingDayValue = -99

// Extreme is the record achieving the maximum or minimum of one field
type Extreme struct {
	Value int
	Date  time.Time
}

// Averages summarises a month of records.
// AvgHighest and AvgLowest are the extremes over the whole subset, not means;
// only AvgHumidity is an arithmetic mean.
type Averages struct {
	AvgHighest  *int
	AvgLowest   *int
	AvgHumidity *float64
}

// DayRange holds the temperature range of one day of month
type DayRange struct {
	Day  int
	High *int
	Low  *int
}

// DisplayHigh returns the high temperature, or MissingDayValue when absent
func (d DayRange) DisplayHigh() int {
	if d.High == nil {
		return MissingDayValue
	}
	return *d.High
}

// DisplayLow returns the low temperature, or MissingDayValue when absent
func (d DayRange) DisplayLow() int {
	if d.Low == nil {
		return MissingDayValue
	}
	return *d.Low
}

// Span is the bar magnitude of the day's summary line
func (d DayRange) Span() int {
	return d.DisplayHigh() - d.DisplayLow()
}

type fieldFunc func(models.DailyRecord) *int

func maxTemperature(r models.DailyRecord) *int { return r.MaxTemperatureC }
func minTemperature(r models.DailyRecord) *int { return r.MinTemperatureC }
func maxHumidity(r models.DailyRecord) *int    { return r.MaxHumidityPercent }

// extreme returns the first record whose field beats every other,
// better(a, b) reporting whether a strictly beats b
func extreme(ds models.Dataset, name string, field fieldFunc, better func(a, b int) bool) (Extreme, error) {
	var (
		best  Extreme
		found bool
	)

	for _, rec := range ds {
		v := field(rec)
		if v == nil {
			continue
		}
		if !found || better(*v, best.Value) {
			best = Extreme{Value: *v, Date: rec.Date}
			found = true
		}
	}

	if !found {
		return Extreme{}, &models.EmptyAggregationError{Field: name}
	}
	return best, nil
}

func greater(a, b int) bool { return a > b }
func less(a, b int) bool    { return a < b }

// MaxTemperatureExtreme returns the highest maximum temperature and the date
// it was first observed
func MaxTemperatureExtreme(ds models.Dataset) (Extreme, error) {
	return extreme(ds, ColumnMaxTemperature, maxTemperature, greater)
}

// MinTemperatureExtreme returns the lowest minimum temperature and the date
// it was first observed
func MinTemperatureExtreme(ds models.Dataset) (Extreme, error) {
	return extreme(ds, ColumnMinTemperature, minTemperature, less)
}

// MaxHumidityExtreme returns the highest maximum humidity and the date it
// was first observed
func MaxHumidityExtreme(ds models.Dataset) (Extreme, error) {
	return extreme(ds, ColumnMaxHumidity, maxHumidity, greater)
}

// MonthlyAverages computes the month summary of ds
func MonthlyAverages(ds models.Dataset) Averages {
	var avg Averages

	if e, err := MaxTemperatureExtreme(ds); err == nil {
		avg.AvgHighest = &e.Value
	}
	if e, err := MinTemperatureExtreme(ds); err == nil {
		avg.AvgLowest = &e.Value
	}

	var sum, count int
	for _, rec := range ds {
		if rec.MaxHumidityPercent != nil {
			sum += *rec.MaxHumidityPercent
			count++
		}
	}
	if count > 0 {
		mean := float64(sum) / float64(count)
		avg.AvgHumidity = &mean
	}

	return avg
}

// DailyRanges groups ds by day of month and returns the range of every day
// from 1 to 31 that has at least one record
func DailyRanges(ds models.Dataset) []DayRange {
	ranges := make([]DayRange, 0, 31)

	for day := 1; day <= 31; day++ {
		dayRecords := repository.ByDay(ds, day)
		if len(dayRecords) == 0 {
			continue
		}

		r := DayRange{Day: day}
		if e, err := MaxTemperatureExtreme(dayRecords); err == nil {
			r.High = &e.Value
		}
		if e, err := MinTemperatureExtreme(dayRecords); err == nil {
			r.Low = &e.Value
		}
		ranges = append(ranges, r)
	}

	return ranges
}
