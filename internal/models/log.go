package models

import (
	"fmt"
	"strings"
	"time"
)

// LogType is the closed set of reading-activity types. Anything outside the
// three known values is a validation error, never a silent default.
type LogType string

const (
	LogTypeMinutes LogType = "minutes"
	LogTypePages   LogType = "pages"
	LogTypeBooks   LogType = "books"
)

// logTypeSynonyms maps the type words seen in exported documents (singular
// and plural, any case) onto canonical LogType values.
var logTypeSynonyms = map[string]LogType{
	"minute":  LogTypeMinutes,
	"minutes": LogTypeMinutes,
	"page":    LogTypePages,
	"pages":   LogTypePages,
	"book":    LogTypeBooks,
	"books":   LogTypeBooks,
}

// ParseLogType normalizes a raw type word to a canonical LogType.
func ParseLogType(raw string) (LogType, error) {
	lt, ok := logTypeSynonyms[strings.ToLower(strings.TrimSpace(raw))]
	if !ok {
		return "", fmt.Errorf("unknown log type %q", raw)
	}
	return lt, nil
}

// Valid reports whether lt is one of the three known types.
func (lt LogType) Valid() bool {
	switch lt {
	case LogTypeMinutes, LogTypePages, LogTypeBooks:
		return true
	}
	return false
}

// Source records where a log entry came from, for audit only. It is never
// consulted by aggregation.
type Source struct {
	Name    string `json:"name"`
	Details string `json:"details,omitempty"`
}

// LogEntry is one dated reading event. Entries are immutable once created
// and are only ever deleted as part of a full reader reset.
type LogEntry struct {
	ID            string    `json:"id"`
	ReaderID      string    `json:"reader_id"`
	LogDate       time.Time `json:"log_date"` // UTC midnight of LogDateString
	LogDateString string    `json:"log_date_string"`
	LogType       LogType   `json:"log_type"`
	Value         float64   `json:"value"`
	BookTitle     string    `json:"book_title,omitempty"`
	BookAuthor    string    `json:"book_author,omitempty"`
	Source        Source    `json:"source"`

	// ImportBatchID is empty for manually entered records.
	ImportBatchID   string `json:"import_batch_id,omitempty"`
	ImportSourceRow int    `json:"import_source_row,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	CreatedBy string    `json:"created_by"`
}

// TypeTotals holds per-type running sums.
type TypeTotals struct {
	Minutes float64 `json:"minutes"`
	Pages   float64 `json:"pages"`
	Books   float64 `json:"books"`
}

// Add accumulates value into the bucket for lt. Unknown types are ignored;
// callers that care track them separately.
func (t *TypeTotals) Add(lt LogType, value float64) {
	switch lt {
	case LogTypeMinutes:
		t.Minutes += value
	case LogTypePages:
		t.Pages += value
	case LogTypeBooks:
		t.Books += value
	}
}
