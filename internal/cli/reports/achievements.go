package reports

import (
	"fmt"

	"github.com/finnpalmer/readtrack/internal/achievements"
	"github.com/finnpalmer/readtrack/internal/cli"
	"github.com/finnpalmer/readtrack/internal/constants"
	"github.com/finnpalmer/readtrack/internal/dates"
	"github.com/finnpalmer/readtrack/internal/stats"
)

type AchievementsCmd struct {
	Reader string `arg:"" help:"Reader id."`
	All    bool   `help:"Show every milestone, not just unlocked and next up."`
}

func (c *AchievementsCmd) Run(ctx *cli.Context) error {
	entries, err := ctx.LoadLogs(c.Reader)
	if err != nil {
		return err
	}

	summary := stats.Aggregate(entries)
	streak := dates.CurrentStreak(summary.SortedDates(), dates.Today())
	all := achievements.Evaluate(achievements.SnapshotFromTotals(summary.Totals, streak))

	limit := constants.InProgressLimit
	if c.All {
		limit = len(all)
	}
	completed, inProgress := achievements.Partition(all, limit)

	fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("Achievements — %s", c.Reader)))

	if len(completed) == 0 {
		fmt.Println("  No milestones unlocked yet. Keep reading!")
	} else {
		fmt.Printf("  Unlocked (%d):\n", len(completed))
		for _, a := range completed {
			fmt.Printf("    %s %s — %s\n", a.Icon, cli.DoneStyle.Render(a.Name), a.Description)
		}
	}

	if len(inProgress) > 0 {
		fmt.Println("  Next up:")
		for _, a := range inProgress {
			fmt.Printf("    %s %s — %.0f / %.0f (%.0f%%)\n",
				a.Icon, a.Name, a.Current, a.Target, a.Progress()*100)
		}
	}
	return nil
}
