package models

import (
	"fmt"
	"time"
)

// ValidationError represents a data validation error
// Complies with the error classification used across the services
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsTransient returns false as validation errors are permanent
func (e *ValidationError) IsTransient() bool {
	return false
}

// NoDataFoundError is returned when no usable records exist for a city and period.
// Month is zero when the whole year was requested.
type NoDataFoundError struct {
	City  string
	Year  int
	Month time.Month
}

func (e *NoDataFoundError) Error() string {
	if e.Month != 0 {
		return fmt.Sprintf("no valid data found for %s in %s %d", e.City, e.Month.String()[:3], e.Year)
	}
	return fmt.Sprintf("no valid data files found for %s in year %d", e.City, e.Year)
}

// IsTransient returns false, rerunning with the same input gives the same result
func (e *NoDataFoundError) IsTransient() bool {
	return false
}

// UnparsableFileError marks a single input file that could not be decoded.
// The loader recovers from it by skipping the file.
type UnparsableFileError struct {
	Path string
	Err  error
}

func (e *UnparsableFileError) Error() string {
	return fmt.Sprintf("unparsable file %s: %v", e.Path, e.Err)
}

func (e *UnparsableFileError) Unwrap() error {
	return e.Err
}

// IsTransient returns false as the file content will not change on retry
func (e *UnparsableFileError) IsTransient() bool {
	return false
}

// InvalidMonthError is returned for month text that matches no known abbreviation
type InvalidMonthError struct {
	Input string
}

func (e *InvalidMonthError) Error() string {
	return fmt.Sprintf("invalid month input: %q", e.Input)
}

// IsTransient returns false
func (e *InvalidMonthError) IsTransient() bool {
	return false
}

// EmptyAggregationError is returned by an extremal query when no record
// carries a value for the requested field.
type EmptyAggregationError struct {
	Field string
}

func (e *EmptyAggregationError) Error() string {
	return fmt.Sprintf("no %s values to aggregate", e.Field)
}

// IsTransient returns false
func (e *EmptyAggregationError) IsTransient() bool {
	return false
}
