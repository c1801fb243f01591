// Package ingest turns loosely structured export data (CSV rows, lines
// extracted from PDF reports) into validated log records. Malformed rows are
// skipped with a diagnostic and never abort a run.
package ingest

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/finnpalmer/readtrack/internal/dates"
	"github.com/finnpalmer/readtrack/internal/models"
)

// Record is one validated reading event produced by a front end, not yet
// bound to a reader or import batch.
type Record struct {
	BookTitle     string
	BookAuthor    string
	LogDateString string
	LogType       models.LogType
	Value         float64

	// Row is the 1-based source row or line number, for diagnostics.
	Row int
}

// Warning describes a skipped row or line. Warnings are collected, counted
// and logged; they are never fatal.
type Warning struct {
	Row    int
	Line   string
	Reason string
}

func (w Warning) String() string {
	if w.Line != "" {
		return fmt.Sprintf("row %d: %s (%q)", w.Row, w.Reason, w.Line)
	}
	return fmt.Sprintf("row %d: %s", w.Row, w.Reason)
}

// Result is the outcome of one front-end run.
type Result struct {
	Records  []Record
	Warnings []Warning
}

var monthLookup = map[string]int{
	"january":   1,
	"february":  2,
	"march":     3,
	"april":     4,
	"may":       5,
	"june":      6,
	"july":      7,
	"august":    8,
	"september": 9,
	"october":   10,
	"november":  11,
	"december":  12,
}

var longDateRe = regexp.MustCompile(`^([A-Za-z]+) (\d{1,2}), (\d{4})$`)

// FormatLongDate converts a long-form date ("March 5, 2024") to YYYY-MM-DD.
// An unrecognized month name is a hard parse error for the record.
func FormatLongDate(dateStr string) (string, error) {
	m := longDateRe.FindStringSubmatch(strings.TrimSpace(dateStr))
	if m == nil {
		return "", fmt.Errorf("invalid date value %q", dateStr)
	}
	month, ok := monthLookup[strings.ToLower(m[1])]
	if !ok {
		return "", fmt.Errorf("unknown month %q in date %q", m[1], dateStr)
	}
	day, err := strconv.Atoi(m[2])
	if err != nil {
		return "", fmt.Errorf("invalid day in date %q: %w", dateStr, err)
	}
	year, err := strconv.Atoi(m[3])
	if err != nil {
		return "", fmt.Errorf("invalid year in date %q: %w", dateStr, err)
	}
	return calendarDate(year, month, day, dateStr)
}

// FormatSlashDate converts M/D/YYYY (the CSV export's format) to YYYY-MM-DD.
func FormatSlashDate(dateStr string) (string, error) {
	parts := strings.Split(strings.TrimSpace(dateStr), "/")
	if len(parts) != 3 {
		return "", fmt.Errorf("invalid date value %q (expected M/D/YYYY)", dateStr)
	}
	month, err := strconv.Atoi(parts[0])
	if err != nil || month < 1 || month > 12 {
		return "", fmt.Errorf("invalid month in date %q", dateStr)
	}
	day, err := strconv.Atoi(parts[1])
	if err != nil || day < 1 || day > 31 {
		return "", fmt.Errorf("invalid day in date %q", dateStr)
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil || year < 1000 {
		return "", fmt.Errorf("invalid year in date %q", dateStr)
	}
	return calendarDate(year, month, day, dateStr)
}

// calendarDate composes YYYY-MM-DD and round-trips it through the same
// parser the importer uses, so a day that does not exist in its month
// ("February 30") is rejected here, at the ingestion boundary, instead of
// aborting a whole batch later.
func calendarDate(year, month, day int, raw string) (string, error) {
	s := fmt.Sprintf("%04d-%02d-%02d", year, month, day)
	if _, err := dates.ParseUTC(s); err != nil {
		return "", fmt.Errorf("impossible date %q", raw)
	}
	return s, nil
}

var nonDigitRe = regexp.MustCompile(`[^\d]`)

// ParseIntValue strips every non-digit character and parses what remains as
// an integer ("1,234" -> 1234). Used by the text front end, whose values are
// always whole numbers.
func ParseIntValue(raw string) (int, error) {
	digits := nonDigitRe.ReplaceAllString(raw, "")
	if digits == "" {
		return 0, fmt.Errorf("invalid log value %q", raw)
	}
	v, err := strconv.Atoi(digits)
	if err != nil {
		return 0, fmt.Errorf("invalid log value %q: %w", raw, err)
	}
	return v, nil
}

// ParseFloatValue parses the CSV path's possibly fractional value. Negative
// values are a data-integrity violation, flagged rather than coerced.
func ParseFloatValue(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid log value %q", raw)
	}
	if v < 0 {
		return 0, fmt.Errorf("negative log value %q", raw)
	}
	return v, nil
}
