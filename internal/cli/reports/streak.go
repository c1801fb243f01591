package reports

import (
	"fmt"

	"github.com/finnpalmer/readtrack/internal/cli"
	"github.com/finnpalmer/readtrack/internal/dates"
	"github.com/finnpalmer/readtrack/internal/stats"
)

type StreakCmd struct {
	Reader string `arg:"" help:"Reader id."`
	Gaps   bool   `help:"Show every gap between logged days."`
}

func (c *StreakCmd) Run(ctx *cli.Context) error {
	entries, err := ctx.LoadLogs(c.Reader)
	if err != nil {
		return err
	}

	summary := stats.Aggregate(entries)
	sorted := summary.SortedDates()
	streak := dates.CurrentStreak(sorted, dates.Today())

	fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("Streak — %s", c.Reader)))
	fmt.Printf("  Current streak: %s\n", cli.StreakStyle.Render(fmt.Sprintf("%d days", streak)))
	fmt.Printf("  Days logged:    %d\n", len(sorted))
	if len(sorted) > 0 {
		fmt.Printf("  Last entry:     %s\n", sorted[len(sorted)-1])
	}

	if !c.Gaps {
		return nil
	}

	gaps := dates.Gaps(sorted)
	if len(gaps) == 0 {
		fmt.Println(cli.DoneStyle.Render("  No gaps — every day since the first entry is logged."))
		return nil
	}

	fmt.Printf("\n  %d gaps:\n", len(gaps))
	for _, g := range gaps {
		fmt.Printf("    %s → %s  (%d days)\n", g.From, g.To, g.Days)
	}
	return nil
}
