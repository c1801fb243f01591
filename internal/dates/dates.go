// Package dates holds the calendar arithmetic the rest of the system is
// built on. All date math parses YYYY-MM-DD strings as UTC midnight instants
// so day differences never drift across daylight-saving transitions.
package dates

import (
	"fmt"
	"time"

	"github.com/finnpalmer/readtrack/internal/constants"
)

const dayMillis = 24 * 60 * 60 * 1000

// Gap describes a hole between two adjacent logged dates.
type Gap struct {
	From string
	To   string
	Days int
}

// ParseUTC parses a YYYY-MM-DD string as midnight UTC.
func ParseUTC(date string) (time.Time, error) {
	t, err := time.ParseInLocation(constants.DateFormat, date, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return t, nil
}

// Today returns the current calendar date in UTC as YYYY-MM-DD.
func Today() string {
	return time.Now().UTC().Format(constants.DateFormat)
}

// DayDifference returns the number of calendar days from a to b (positive
// when b is later). Both strings are parsed as UTC midnight and the
// millisecond delta is floor-divided by the exact length of one day.
func DayDifference(a, b string) (int, error) {
	ta, err := ParseUTC(a)
	if err != nil {
		return 0, err
	}
	tb, err := ParseUTC(b)
	if err != nil {
		return 0, err
	}
	deltaMillis := tb.UnixMilli() - ta.UnixMilli()
	if deltaMillis >= 0 {
		return int(deltaMillis / dayMillis), nil
	}
	// Floor division for negative deltas
	return int(-((-deltaMillis + dayMillis - 1) / dayMillis)), nil
}

// CurrentStreak returns the length of the consecutive run of logged days
// ending at the most recent entry, with the today/yesterday grace rule: if
// the latest logged date is more than one day before today the streak is 0.
// sorted must be ascending and deduplicated.
func CurrentStreak(sorted []string, today string) int {
	if len(sorted) == 0 {
		return 0
	}

	latest := sorted[len(sorted)-1]
	gap, err := DayDifference(latest, today)
	if err != nil {
		return 0
	}
	if gap > 1 {
		// More than one day since the last entry: streak is broken
		return 0
	}

	return TrailingRun(sorted)
}

// TrailingRun returns the length of the maximal run of consecutive calendar
// days ending at the last element of sorted, without any reference to the
// wall clock. Used when summarizing historical data, where the grace rule is
// meaningless.
func TrailingRun(sorted []string) int {
	if len(sorted) == 0 {
		return 0
	}

	streak := 1
	for i := len(sorted) - 2; i >= 0; i-- {
		diff, err := DayDifference(sorted[i], sorted[i+1])
		if err != nil || diff != 1 {
			break
		}
		streak++
	}
	return streak
}

// Gaps returns a triple for every adjacent pair in sorted whose day
// difference exceeds 1. Diagnostic reporting only; the streak number never
// depends on it.
func Gaps(sorted []string) []Gap {
	var gaps []Gap
	for i := 1; i < len(sorted); i++ {
		diff, err := DayDifference(sorted[i-1], sorted[i])
		if err != nil {
			continue
		}
		if diff > 1 {
			gaps = append(gaps, Gap{From: sorted[i-1], To: sorted[i], Days: diff})
		}
	}
	return gaps
}

// DaysInMonth returns the number of calendar days in the given month,
// accounting for leap years.
func DaysInMonth(year, month int) int {
	// Day 0 of the next month is the last day of this one
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthPrefix returns the YYYY-MM prefix for the given month.
func MonthPrefix(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}
