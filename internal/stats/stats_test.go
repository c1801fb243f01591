package stats

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/finnpalmer/readtrack/internal/models"
)

func entry(date string, lt models.LogType, value float64) models.LogEntry {
	return models.LogEntry{
		ReaderID:      "mia",
		LogDateString: date,
		LogType:       lt,
		Value:         value,
	}
}

func TestAggregate(t *testing.T) {
	entries := []models.LogEntry{
		entry("2024-03-01", models.LogTypeMinutes, 30),
		entry("2024-03-01", models.LogTypePages, 12),
		entry("2024-03-02", models.LogTypeMinutes, 45),
		entry("2024-03-04", models.LogTypeBooks, 1),
		entry("2024-02-28", models.LogTypePages, 8),
	}

	s := Aggregate(entries)

	if s.Totals.Minutes != 75 {
		t.Errorf("Totals.Minutes = %v, want 75", s.Totals.Minutes)
	}
	if s.Totals.Pages != 20 {
		t.Errorf("Totals.Pages = %v, want 20", s.Totals.Pages)
	}
	if s.Totals.Books != 1 {
		t.Errorf("Totals.Books = %v, want 1", s.Totals.Books)
	}
	if s.TotalLogs != 5 {
		t.Errorf("TotalLogs = %d, want 5", s.TotalLogs)
	}
	if s.DaysLogged() != 4 {
		t.Errorf("DaysLogged() = %d, want 4 (two entries share a day)", s.DaysLogged())
	}
	if s.Earliest != "2024-02-28" {
		t.Errorf("Earliest = %q, want 2024-02-28", s.Earliest)
	}
	if s.Latest != "2024-03-04" {
		t.Errorf("Latest = %q, want 2024-03-04", s.Latest)
	}

	wantDates := []string{"2024-02-28", "2024-03-01", "2024-03-02", "2024-03-04"}
	if got := s.SortedDates(); !reflect.DeepEqual(got, wantDates) {
		t.Errorf("SortedDates() = %v, want %v", got, wantDates)
	}
}

func TestAggregateEmpty(t *testing.T) {
	s := Aggregate(nil)
	if s.TotalLogs != 0 || s.DaysLogged() != 0 {
		t.Errorf("Aggregate(nil) = %+v, want zeroes", s)
	}
	if s.Earliest != "" || s.Latest != "" {
		t.Errorf("Aggregate(nil) earliest/latest = %q/%q, want empty", s.Earliest, s.Latest)
	}
}

func TestAggregateUnknownType(t *testing.T) {
	entries := []models.LogEntry{
		entry("2024-03-01", models.LogTypeMinutes, 30),
		entry("2024-03-02", models.LogType("chapters"), 4),
	}

	s := Aggregate(entries)

	if s.UnknownEntries != 1 {
		t.Errorf("UnknownEntries = %d, want 1", s.UnknownEntries)
	}
	if s.Totals.Minutes != 30 || s.Totals.Pages != 0 || s.Totals.Books != 0 {
		t.Errorf("unknown type leaked into totals: %+v", s.Totals)
	}
	// The day still counts as logged even with a corrupt type tag
	if s.DaysLogged() != 2 {
		t.Errorf("DaysLogged() = %d, want 2", s.DaysLogged())
	}
}

func TestAggregateOrderIndependent(t *testing.T) {
	entries := []models.LogEntry{
		entry("2024-03-01", models.LogTypeMinutes, 30),
		entry("2024-03-02", models.LogTypePages, 12),
		entry("2024-03-03", models.LogTypeBooks, 1),
		entry("2024-03-03", models.LogTypeMinutes, 15.5),
		entry("2024-03-05", models.LogTypePages, 7),
	}

	want := Aggregate(entries)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10; i++ {
		shuffled := make([]models.LogEntry, len(entries))
		copy(shuffled, entries)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		got := Aggregate(shuffled)
		if got.Totals != want.Totals || got.Earliest != want.Earliest ||
			got.Latest != want.Latest || got.DaysLogged() != want.DaysLogged() {
			t.Fatalf("aggregation depends on iteration order: got %+v, want %+v", got, want)
		}
	}
}

func TestAggregateMonth(t *testing.T) {
	entries := []models.LogEntry{
		entry("2024-02-29", models.LogTypeMinutes, 20),
		entry("2024-03-01", models.LogTypeMinutes, 30),
		entry("2024-03-01", models.LogTypePages, 10),
		entry("2024-03-15", models.LogTypePages, 25),
		entry("2024-04-01", models.LogTypeBooks, 1),
	}

	m := AggregateMonth(entries, 2024, 3, "2024-05-10")

	if m.Totals.Minutes != 30 || m.Totals.Pages != 35 || m.Totals.Books != 0 {
		t.Errorf("month totals = %+v, want {30 35 0}", m.Totals)
	}
	if m.DaysLogged() != 2 {
		t.Errorf("DaysLogged() = %d, want 2", m.DaysLogged())
	}
	if m.DaysInMonth != 31 {
		t.Errorf("DaysInMonth = %d, want 31", m.DaysInMonth)
	}
}

func TestAggregateMonthEffectiveDays(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		month int
		today string
		want  int
	}{
		{
			name:  "past month uses full length",
			year:  2024,
			month: 2,
			today: "2024-05-10",
			want:  29,
		},
		{
			name:  "current month uses day of month",
			year:  2024,
			month: 5,
			today: "2024-05-10",
			want:  10,
		},
		{
			name:  "first day of current month",
			year:  2024,
			month: 5,
			today: "2024-05-01",
			want:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := AggregateMonth(nil, tt.year, tt.month, tt.today)
			if m.EffectiveDays != tt.want {
				t.Errorf("EffectiveDays = %d, want %d", m.EffectiveDays, tt.want)
			}
		})
	}
}

func TestMonthCompletion(t *testing.T) {
	entries := []models.LogEntry{
		entry("2024-02-01", models.LogTypeMinutes, 10),
		entry("2024-02-02", models.LogTypeMinutes, 10),
	}

	// Past month: judged against all 29 days, not today's day-of-month
	m := AggregateMonth(entries, 2024, 2, "2024-06-03")
	want := 2.0 / 29.0
	if got := m.Completion(); got != want {
		t.Errorf("Completion() = %v, want %v", got, want)
	}

	// Empty month
	empty := AggregateMonth(nil, 2024, 2, "2024-06-03")
	if got := empty.Completion(); got != 0 {
		t.Errorf("Completion() on empty month = %v, want 0", got)
	}
}
