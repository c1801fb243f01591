package reports

import (
	"fmt"

	"github.com/finnpalmer/readtrack/internal/cli"
	"github.com/finnpalmer/readtrack/internal/dates"
	"github.com/finnpalmer/readtrack/internal/stats"
)

type StatsCmd struct {
	Reader string `arg:"" help:"Reader id."`
}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	entries, err := ctx.LoadLogs(c.Reader)
	if err != nil {
		return err
	}

	summary := stats.Aggregate(entries)
	streak := dates.CurrentStreak(summary.SortedDates(), dates.Today())

	fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("Reading stats — %s", c.Reader)))
	fmt.Printf("  %s %s\n", cli.LabelStyle.Render("Minutes:"), cli.ValueStyle.Render(fmt.Sprintf("%g", summary.Totals.Minutes)))
	fmt.Printf("  %s %s\n", cli.LabelStyle.Render("Pages:  "), cli.ValueStyle.Render(fmt.Sprintf("%g", summary.Totals.Pages)))
	fmt.Printf("  %s %s\n", cli.LabelStyle.Render("Books:  "), cli.ValueStyle.Render(fmt.Sprintf("%g", summary.Totals.Books)))
	fmt.Printf("  %s %s\n", cli.LabelStyle.Render("Days:   "), cli.ValueStyle.Render(fmt.Sprintf("%d", summary.DaysLogged())))
	fmt.Printf("  %s %s\n", cli.LabelStyle.Render("Streak: "), cli.StreakStyle.Render(fmt.Sprintf("%d 🔥", streak)))

	if summary.Earliest != "" {
		fmt.Printf("  %s %s → %s\n", cli.LabelStyle.Render("Range:  "), summary.Earliest, summary.Latest)
	}
	if summary.UnknownEntries > 0 {
		fmt.Println(cli.WarnStyle.Render(fmt.Sprintf("  ⚠ %d entries with unknown log type excluded from totals", summary.UnknownEntries)))
	}
	return nil
}
