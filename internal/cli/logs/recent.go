package logs

import (
	"fmt"
	"sort"

	"github.com/finnpalmer/readtrack/internal/cli"
	"github.com/finnpalmer/readtrack/internal/constants"
	"github.com/finnpalmer/readtrack/internal/dates"
)

type RecentCmd struct {
	Reader string `arg:"" help:"Reader id."`
	Limit  int    `short:"n" help:"Number of entries to show." default:"10"`
}

func (c *RecentCmd) Run(ctx *cli.Context) error {
	entries, err := ctx.LoadLogs(c.Reader)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Printf("No activity logged for %s yet.\n", c.Reader)
		return nil
	}

	// Newest first; ties broken by creation time so same-day entries keep
	// their entry order
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].LogDateString != entries[j].LogDateString {
			return entries[i].LogDateString > entries[j].LogDateString
		}
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})

	limit := c.Limit
	if limit <= 0 {
		limit = constants.RecentLogLimit
	}
	if limit > len(entries) {
		limit = len(entries)
	}

	fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("Recent activity — %s", c.Reader)))
	for _, entry := range entries[:limit] {
		label := dayLabel(entry.LogDateString)
		line := fmt.Sprintf("  %-12s %g %s", label, entry.Value, entry.LogType)
		if entry.BookTitle != "" {
			line += fmt.Sprintf("  · %s", entry.BookTitle)
			if entry.BookAuthor != "" {
				line += fmt.Sprintf(" — %s", entry.BookAuthor)
			}
		}
		fmt.Println(line)
	}
	return nil
}

func dayLabel(date string) string {
	diff, err := dates.DayDifference(date, dates.Today())
	if err != nil {
		return date
	}
	switch diff {
	case 0:
		return "Today"
	case 1:
		return "Yesterday"
	}
	return date
}
