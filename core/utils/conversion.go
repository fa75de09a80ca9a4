package utils

import (
	"strconv"
	"strings"
)

// ParseNumber parses a decimal number, ignoring surrounding whitespace.
func ParseNumber(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// FormatNumber renders f in its shortest form ("2", "2.5").
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
