package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Spreadsheet serial dates count days from the 1900 epoch (with the usual
// Lotus leap-year offset folded in by using Dec 30).
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// dateLayouts covers the text date formats seen in reservation exports.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"02.01.2006",
	"01/02/2006",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

var nonNumeric = regexp.MustCompile(`[^0-9.\-]`)

// ParseDate parses a cell as either a numeric spreadsheet date serial or a
// free-text date. The result is truncated to a calendar date in UTC.
func ParseDate(value string) (time.Time, bool) {
	v := strings.TrimSpace(value)
	if v == "" {
		return time.Time{}, false
	}

	if serial, err := strconv.ParseFloat(v, 64); err == nil {
		if serial <= 0 {
			return time.Time{}, false
		}
		t := serialEpoch.Add(time.Duration(serial * 24 * float64(time.Hour)))
		return truncateToDate(t), true
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return truncateToDate(t), true
		}
	}

	return time.Time{}, false
}

// ParseAmount parses a cell as a decimal number, stripping thousands
// separators, currency symbols and other formatting characters first.
func ParseAmount(value string) float64 {
	v := nonNumeric.ReplaceAllString(strings.TrimSpace(value), "")
	if v == "" {
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return f
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
