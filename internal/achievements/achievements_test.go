package achievements

import (
	"testing"

	"github.com/finnpalmer/readtrack/internal/models"
)

func TestEvaluateCoversCatalog(t *testing.T) {
	all := Evaluate(Snapshot{})
	if len(all) != len(Catalog) {
		t.Fatalf("Evaluate() returned %d achievements, want %d", len(all), len(Catalog))
	}
	for _, a := range all {
		if a.IsCompleted {
			t.Errorf("achievement %s completed on a zero snapshot", a.ID)
		}
	}
}

func TestEvaluateThresholds(t *testing.T) {
	tests := []struct {
		name     string
		snapshot Snapshot
		id       string
		want     bool
	}{
		{
			name:     "exactly at target completes",
			snapshot: Snapshot{CurrentStreak: 1000},
			id:       "streak-1000",
			want:     true,
		},
		{
			name:     "one below target does not",
			snapshot: Snapshot{CurrentStreak: 999},
			id:       "streak-1000",
			want:     false,
		},
		{
			name:     "pages above target",
			snapshot: Snapshot{TotalPages: 20001},
			id:       "pages-20000",
			want:     true,
		},
		{
			name:     "books at target",
			snapshot: Snapshot{TotalBooks: 250},
			id:       "books-250",
			want:     true,
		},
		{
			name:     "minutes do not satisfy pages milestone",
			snapshot: Snapshot{TotalMinutes: 100000},
			id:       "pages-15000",
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			all := Evaluate(tt.snapshot)
			var found *Achievement
			for i := range all {
				if all[i].ID == tt.id {
					found = &all[i]
					break
				}
			}
			if found == nil {
				t.Fatalf("achievement %s missing from evaluation", tt.id)
			}
			if found.IsCompleted != tt.want {
				t.Errorf("%s IsCompleted = %v, want %v", tt.id, found.IsCompleted, tt.want)
			}
		})
	}
}

func TestEvaluateIdempotent(t *testing.T) {
	s := Snapshot{CurrentStreak: 1250, TotalMinutes: 22000, TotalPages: 18000, TotalBooks: 310}
	first := Evaluate(s)
	second := Evaluate(s)
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("evaluation is not idempotent at %s", first[i].ID)
		}
	}
}

func TestPartition(t *testing.T) {
	all := Evaluate(Snapshot{CurrentStreak: 1500, TotalPages: 16000})
	completed, inProgress := Partition(all, 3)

	for _, a := range completed {
		if !a.IsCompleted {
			t.Errorf("incomplete achievement %s in completed partition", a.ID)
		}
	}
	if len(inProgress) != 3 {
		t.Errorf("in-progress truncated to %d, want 3", len(inProgress))
	}
	for _, a := range inProgress {
		if a.IsCompleted {
			t.Errorf("completed achievement %s in in-progress partition", a.ID)
		}
	}

	// streak-1000, streak-1200, streak-1500 and pages-15000 should be unlocked
	if len(completed) != 4 {
		t.Errorf("completed count = %d, want 4", len(completed))
	}
}

func TestProgressAndRemaining(t *testing.T) {
	a := Achievement{Definition: Definition{Target: 200}, Current: 50}
	if got := a.Progress(); got != 0.25 {
		t.Errorf("Progress() = %v, want 0.25", got)
	}
	if got := a.Remaining(); got != 150 {
		t.Errorf("Remaining() = %v, want 150", got)
	}

	done := Achievement{Definition: Definition{Target: 200}, Current: 300, IsCompleted: true}
	if got := done.Progress(); got != 1 {
		t.Errorf("Progress() clamped = %v, want 1", got)
	}
	if got := done.Remaining(); got != 0 {
		t.Errorf("Remaining() when completed = %v, want 0", got)
	}
}

func TestSnapshotFromTotals(t *testing.T) {
	s := SnapshotFromTotals(models.TypeTotals{Minutes: 10, Pages: 20, Books: 3}, 7)
	if s.CurrentStreak != 7 || s.TotalMinutes != 10 || s.TotalPages != 20 || s.TotalBooks != 3 {
		t.Errorf("SnapshotFromTotals() = %+v", s)
	}
}
