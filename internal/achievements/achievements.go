// Package achievements maps an aggregate snapshot onto a fixed milestone
// catalog. Nothing is persisted: unlocks are recomputed from aggregates on
// every evaluation, which keeps the evaluator idempotent.
package achievements

import "github.com/finnpalmer/readtrack/internal/models"

// Category selects which snapshot figure a milestone is measured against.
type Category string

const (
	CategoryStreak  Category = "streak"
	CategoryPages   Category = "pages"
	CategoryMinutes Category = "minutes"
	CategoryBooks   Category = "books"
)

// Definition is one statically defined milestone.
type Definition struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Category    Category
	Target      float64
}

// Achievement is a Definition evaluated against a snapshot.
type Achievement struct {
	Definition
	Current     float64
	IsCompleted bool
}

// Remaining returns the distance to the target (0 when completed).
func (a Achievement) Remaining() float64 {
	if a.IsCompleted {
		return 0
	}
	return a.Target - a.Current
}

// Progress returns Current/Target clamped to [0, 1].
func (a Achievement) Progress() float64 {
	if a.Target <= 0 {
		return 0
	}
	p := a.Current / a.Target
	if p > 1 {
		return 1
	}
	return p
}

// Snapshot is the aggregate input to evaluation.
type Snapshot struct {
	CurrentStreak int
	TotalMinutes  float64
	TotalPages    float64
	TotalBooks    float64
}

// Catalog is the full milestone table. An ordinary enumerable slice; there
// is no runtime registration mechanism.
var Catalog = []Definition{
	{ID: "streak-1000", Name: "Millennium Reader", Description: "1,000 day reading streak", Icon: "👑", Category: CategoryStreak, Target: 1000},
	{ID: "streak-1200", Name: "Streak Titan", Description: "1,200 day reading streak", Icon: "🔥", Category: CategoryStreak, Target: 1200},
	{ID: "streak-1500", Name: "Dedication Master", Description: "1,500 day reading streak", Icon: "⭐", Category: CategoryStreak, Target: 1500},
	{ID: "streak-2000", Name: "Unstoppable Force", Description: "2,000 day reading streak", Icon: "💎", Category: CategoryStreak, Target: 2000},
	{ID: "streak-2500", Name: "Reading Legend", Description: "2,500 day reading streak", Icon: "🌟", Category: CategoryStreak, Target: 2500},
	{ID: "streak-3000", Name: "Epic Dedication", Description: "3,000 day reading streak", Icon: "🏆", Category: CategoryStreak, Target: 3000},

	{ID: "pages-15000", Name: "Literary Giant", Description: "Read 15,000 pages", Icon: "📗", Category: CategoryPages, Target: 15000},
	{ID: "pages-20000", Name: "Page Master", Description: "Read 20,000 pages", Icon: "📕", Category: CategoryPages, Target: 20000},
	{ID: "pages-25000", Name: "Reading Machine", Description: "Read 25,000 pages", Icon: "📚", Category: CategoryPages, Target: 25000},
	{ID: "pages-30000", Name: "Page Emperor", Description: "Read 30,000 pages", Icon: "👑", Category: CategoryPages, Target: 30000},
	{ID: "pages-50000", Name: "Legendary Reader", Description: "Read 50,000 pages", Icon: "💎", Category: CategoryPages, Target: 50000},

	{ID: "minutes-15000", Name: "Timeless Reader", Description: "Read for 15,000 minutes", Icon: "🕐", Category: CategoryMinutes, Target: 15000},
	{ID: "minutes-20000", Name: "Time Lord", Description: "Read for 20,000 minutes", Icon: "⏰", Category: CategoryMinutes, Target: 20000},
	{ID: "minutes-25000", Name: "Marathon Reader", Description: "Read for 25,000 minutes", Icon: "⏱️", Category: CategoryMinutes, Target: 25000},
	{ID: "minutes-30000", Name: "Time Champion", Description: "Read for 30,000 minutes", Icon: "⌚", Category: CategoryMinutes, Target: 30000},
	{ID: "minutes-50000", Name: "Eternal Reader", Description: "Read for 50,000 minutes", Icon: "🌟", Category: CategoryMinutes, Target: 50000},

	{ID: "books-250", Name: "Literary Master", Description: "Finished 250 books", Icon: "🏆", Category: CategoryBooks, Target: 250},
	{ID: "books-300", Name: "Book Conqueror", Description: "Finished 300 books", Icon: "📘", Category: CategoryBooks, Target: 300},
	{ID: "books-350", Name: "Reading Virtuoso", Description: "Finished 350 books", Icon: "📙", Category: CategoryBooks, Target: 350},
	{ID: "books-400", Name: "Bibliophile Elite", Description: "Finished 400 books", Icon: "📔", Category: CategoryBooks, Target: 400},
	{ID: "books-500", Name: "Grand Library", Description: "Finished 500 books", Icon: "👑", Category: CategoryBooks, Target: 500},
}

func (s Snapshot) value(c Category) float64 {
	switch c {
	case CategoryStreak:
		return float64(s.CurrentStreak)
	case CategoryPages:
		return s.TotalPages
	case CategoryMinutes:
		return s.TotalMinutes
	case CategoryBooks:
		return s.TotalBooks
	}
	return 0
}

// Evaluate applies the snapshot to every catalog entry.
func Evaluate(s Snapshot) []Achievement {
	out := make([]Achievement, 0, len(Catalog))
	for _, def := range Catalog {
		current := s.value(def.Category)
		out = append(out, Achievement{
			Definition:  def,
			Current:     current,
			IsCompleted: current >= def.Target,
		})
	}
	return out
}

// Partition splits evaluated achievements into completed and in-progress,
// truncating the in-progress list to limit entries (catalog order, which is
// ascending by target within each category). limit <= 0 means no truncation.
func Partition(all []Achievement, limit int) (completed, inProgress []Achievement) {
	for _, a := range all {
		if a.IsCompleted {
			completed = append(completed, a)
		} else {
			inProgress = append(inProgress, a)
		}
	}
	if limit > 0 && len(inProgress) > limit {
		inProgress = inProgress[:limit]
	}
	return completed, inProgress
}

// SnapshotFromTotals builds a Snapshot from aggregate totals and a streak.
func SnapshotFromTotals(totals models.TypeTotals, currentStreak int) Snapshot {
	return Snapshot{
		CurrentStreak: currentStreak,
		TotalMinutes:  totals.Minutes,
		TotalPages:    totals.Pages,
		TotalBooks:    totals.Books,
	}
}
