package models

import (
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMonth(t *testing.T) {
	tests := []struct {
		input string
		want  time.Month
	}{
		{"Jan", time.January},
		{"jun", time.June},
		{"JUNE", time.June},
		{"  September ", time.September},
		{"decimal", time.December},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMonth(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseMonth_Invalid(t *testing.T) {
	for _, input := range []string{"Xyz", "", "ju", "13"} {
		_, err := ParseMonth(input)

		var monthErr *InvalidMonthError
		require.ErrorAs(t, err, &monthErr, "input %q", input)
		assert.Equal(t, input, monthErr.Input)
	}
}

func TestNoDataFoundError_Message(t *testing.T) {
	yearErr := &NoDataFoundError{City: "lahore", Year: 2099}
	assert.Contains(t, yearErr.Error(), "lahore")
	assert.Contains(t, yearErr.Error(), "2099")

	monthErr := &NoDataFoundError{City: "murree", Year: 2010, Month: time.March}
	assert.Equal(t, "no valid data found for murree in Mar 2010", monthErr.Error())
}

func TestUnparsableFileError_Unwrap(t *testing.T) {
	err := fmt.Errorf("load: %w", &UnparsableFileError{Path: "a.txt", Err: io.ErrUnexpectedEOF})

	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))

	var fileErr *UnparsableFileError
	require.ErrorAs(t, err, &fileErr)
	assert.Equal(t, "a.txt", fileErr.Path)
	assert.False(t, fileErr.IsTransient())
}

func TestEmptyAggregationError(t *testing.T) {
	err := &EmptyAggregationError{Field: "Max TemperatureC"}
	assert.Equal(t, "no Max TemperatureC values to aggregate", err.Error())
	assert.False(t, err.IsTransient())
}
