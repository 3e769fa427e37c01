package models

import (
	"strings"
	"time"
)

var monthAbbreviations = []string{"jan", "feb", "mar", "apr", "may", "jun", "jul", "aug", "sep", "oct", "nov", "dec"}

// ParseMonth matches the first three letters of input, case-insensitively,
// against the English month abbreviations.
func ParseMonth(input string) (time.Month, error) {
	text := strings.ToLower(strings.TrimSpace(input))
	if len(text) < 3 {
		return 0, &InvalidMonthError{Input: input}
	}

	prefix := text[:3]
	for i, abbr := range monthAbbreviations {
		if prefix == abbr {
			return time.Month(i + 1), nil
		}
	}
	return 0, &InvalidMonthError{Input: input}
}
