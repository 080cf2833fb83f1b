package format

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const (
	// DateTimeLayout is the single date/time pattern (DD/MM/YYYY_HH:MM:SS).
	DateTimeLayout = "02/01/2006_15:04:05"
	// MonthYearLayout is the month/year pattern (MM/YYYY).
	MonthYearLayout = "01/2006"

	// DateTimePattern and MonthYearPattern describe the layouts in messages.
	DateTimePattern  = "DD/MM/YYYY_HH:MM:SS"
	MonthYearPattern = "MM/YYYY"
)

var (
	dateTimeShape  = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}_\d{2}:\d{2}:\d{2}$`)
	monthYearShape = regexp.MustCompile(`^\d{2}/\d{4}$`)
)

// FormatDateTime renders t using DateTimeLayout.
func FormatDateTime(t time.Time) string {
	return t.Format(DateTimeLayout)
}

// ParseDateTime parses a DateTimeLayout value. Single digit components are
// rejected even where time.Parse would accept them.
func ParseDateTime(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if !dateTimeShape.MatchString(value) {
		return time.Time{}, fmt.Errorf("format: %q does not match DD/MM/YYYY_HH:MM:SS", raw)
	}
	t, err := time.Parse(DateTimeLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("format: parse date %q: %w", raw, err)
	}
	return t, nil
}

// IsDateTime reports whether raw is a well-formed DateTimeLayout value.
func IsDateTime(raw string) bool {
	_, err := ParseDateTime(raw)
	return err == nil
}

// FormatMonthYear renders t using MonthYearLayout.
func FormatMonthYear(t time.Time) string {
	return t.Format(MonthYearLayout)
}

// ParseMonthYear parses a MonthYearLayout value.
func ParseMonthYear(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if !monthYearShape.MatchString(value) {
		return time.Time{}, fmt.Errorf("format: %q does not match MM/YYYY", raw)
	}
	t, err := time.Parse(MonthYearLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("format: parse month %q: %w", raw, err)
	}
	return t, nil
}

// IsMonthYear reports whether raw is a well-formed MonthYearLayout value.
func IsMonthYear(raw string) bool {
	_, err := ParseMonthYear(raw)
	return err == nil
}
