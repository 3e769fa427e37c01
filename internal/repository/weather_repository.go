package repository

import (
	"time"

	"weatherman/internal/models"
)

// ObservationFilter defines filters for selecting records from a dataset
// A nil field matches every record
type ObservationFilter struct {
	Year  *int
	Month *time.Month
	Day   *int
}

// Matches reports whether rec satisfies every set field of the filter
func (f ObservationFilter) Matches(rec models.DailyRecord) bool {
	if f.Year != nil && rec.Date.Year() != *f.Year {
		return false
	}
	if f.Month != nil && rec.Date.Month() != *f.Month {
		return false
	}
	if f.Day != nil && rec.Date.Day() != *f.Day {
		return false
	}
	return true
}

// Filter returns the records of ds matching filter, in their original order.
// The input is never modified and the result never aliases it.
func Filter(ds models.Dataset, filter ObservationFilter) models.Dataset {
	out := make(models.Dataset, 0, len(ds))
	for _, rec := range ds {
		if filter.Matches(rec) {
			out = append(out, rec)
		}
	}
	return out
}

// ByYear returns the records dated in year
func ByYear(ds models.Dataset, year int) models.Dataset {
	return Filter(ds, ObservationFilter{Year: &year})
}

// ByYearMonth returns the records dated in the given year and month
func ByYearMonth(ds models.Dataset, year int, month time.Month) models.Dataset {
	return Filter(ds, ObservationFilter{Year: &year, Month: &month})
}

// ByDay returns the records falling on the given day of month
func ByDay(ds models.Dataset, day int) models.Dataset {
	return Filter(ds, ObservationFilter{Day: &day})
}
