// Package stats folds a reader's full log collection into derived views:
// per-type totals, the unique-day set, and month-scoped completion summaries.
package stats

import (
	"sort"
	"strings"

	"github.com/finnpalmer/readtrack/internal/dates"
	"github.com/finnpalmer/readtrack/internal/logger"
	"github.com/finnpalmer/readtrack/internal/models"
)

// Summary is the aggregate view over one reader's entire log collection.
type Summary struct {
	Totals      models.TypeTotals
	TotalLogs   int
	UniqueDates map[string]struct{}
	Earliest    string
	Latest      string

	// UnknownEntries counts entries whose logType is outside the closed
	// enum. They are a data-quality warning, not an error tally.
	UnknownEntries int
}

// SortedDates returns the unique log dates in ascending order, the input
// contract of the streak kernel.
func (s Summary) SortedDates() []string {
	out := make([]string, 0, len(s.UniqueDates))
	for d := range s.UniqueDates {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// DaysLogged returns the number of distinct days with at least one entry.
func (s Summary) DaysLogged() int {
	return len(s.UniqueDates)
}

// Aggregate folds entries into a Summary in a single pass. Order of entries
// never affects the result: sums are commutative and set insertion is
// order-independent.
func Aggregate(entries []models.LogEntry) Summary {
	s := Summary{UniqueDates: make(map[string]struct{})}

	for _, e := range entries {
		s.TotalLogs++

		if e.LogType.Valid() {
			s.Totals.Add(e.LogType, e.Value)
		} else {
			s.UnknownEntries++
			logger.Warn("Entry with unknown log type ignored in totals",
				"logType", string(e.LogType), "date", e.LogDateString, "id", e.ID)
		}

		if e.LogDateString == "" {
			continue
		}
		s.UniqueDates[e.LogDateString] = struct{}{}

		// Zero-padded ISO dates sort lexicographically in calendar order
		if s.Earliest == "" || e.LogDateString < s.Earliest {
			s.Earliest = e.LogDateString
		}
		if s.Latest == "" || e.LogDateString > s.Latest {
			s.Latest = e.LogDateString
		}
	}

	return s
}

// MonthSummary is the aggregate view scoped to one calendar month.
type MonthSummary struct {
	Year        int
	Month       int
	Totals      models.TypeTotals
	LoggedDates map[string]struct{}
	DaysInMonth int

	// EffectiveDays is the denominator of the completion ratio: the current
	// day-of-month when summarizing the current month, else the full month
	// length. A past month is judged against its whole length, not against
	// "today".
	EffectiveDays int
}

// DaysLogged returns the number of distinct days logged in the month.
func (m MonthSummary) DaysLogged() int {
	return len(m.LoggedDates)
}

// Completion returns daysLogged / effectiveDays in [0, 1].
func (m MonthSummary) Completion() float64 {
	if m.EffectiveDays == 0 {
		return 0
	}
	ratio := float64(m.DaysLogged()) / float64(m.EffectiveDays)
	if ratio > 1 {
		return 1
	}
	return ratio
}

// Logged reports whether the given date string has at least one entry.
func (m MonthSummary) Logged(date string) bool {
	_, ok := m.LoggedDates[date]
	return ok
}

// AggregateMonth folds the entries whose date carries the month's YYYY-MM
// prefix. today (YYYY-MM-DD) determines whether the month is the current one.
func AggregateMonth(entries []models.LogEntry, year, month int, today string) MonthSummary {
	m := MonthSummary{
		Year:        year,
		Month:       month,
		LoggedDates: make(map[string]struct{}),
		DaysInMonth: dates.DaysInMonth(year, month),
	}

	prefix := dates.MonthPrefix(year, month)
	for _, e := range entries {
		if e.LogDateString == "" || !strings.HasPrefix(e.LogDateString, prefix) {
			continue
		}
		if e.LogType.Valid() {
			m.Totals.Add(e.LogType, e.Value)
		}
		m.LoggedDates[e.LogDateString] = struct{}{}
	}

	m.EffectiveDays = m.DaysInMonth
	if strings.HasPrefix(today, prefix) {
		if t, err := dates.ParseUTC(today); err == nil {
			m.EffectiveDays = t.Day()
		}
	}

	return m
}
