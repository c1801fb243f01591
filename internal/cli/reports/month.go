package reports

import (
	"fmt"
	"strings"
	"time"

	"github.com/finnpalmer/readtrack/internal/cli"
	"github.com/finnpalmer/readtrack/internal/dates"
	"github.com/finnpalmer/readtrack/internal/stats"
)

type MonthCmd struct {
	Reader string `arg:"" help:"Reader id."`
	Month  string `help:"Month to show (YYYY-MM). Defaults to the current month."`
}

func (c *MonthCmd) Run(ctx *cli.Context) error {
	entries, err := ctx.LoadLogs(c.Reader)
	if err != nil {
		return err
	}

	year, month, err := c.resolveMonth()
	if err != nil {
		return err
	}

	summary := stats.AggregateMonth(entries, year, month, dates.Today())

	heading := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).Format("January 2006")
	fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("%s — %s", heading, c.Reader)))
	fmt.Printf("  Minutes: %g   Pages: %g   Books: %g\n",
		summary.Totals.Minutes, summary.Totals.Pages, summary.Totals.Books)
	fmt.Printf("  Days logged: %d / %d   Completion: %.0f%%\n",
		summary.DaysLogged(), summary.EffectiveDays, summary.Completion()*100)
	fmt.Println()
	printCalendar(summary)
	return nil
}

func (c *MonthCmd) resolveMonth() (int, int, error) {
	if c.Month == "" {
		now := time.Now().UTC()
		return now.Year(), int(now.Month()), nil
	}
	t, err := time.Parse("2006-01", c.Month)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month %q (expected YYYY-MM): %w", c.Month, err)
	}
	return t.Year(), int(t.Month()), nil
}

// printCalendar renders a Sunday-first grid with logged days marked.
func printCalendar(m stats.MonthSummary) {
	fmt.Println("   Su  Mo  Tu  We  Th  Fr  Sa")

	first := time.Date(m.Year, time.Month(m.Month), 1, 0, 0, 0, 0, time.UTC)
	offset := int(first.Weekday())

	var line strings.Builder
	line.WriteString("  ")
	line.WriteString(strings.Repeat("    ", offset))

	for day := 1; day <= m.DaysInMonth; day++ {
		date := fmt.Sprintf("%s-%02d", dates.MonthPrefix(m.Year, m.Month), day)
		cell := fmt.Sprintf("%3d ", day)
		if m.Logged(date) {
			cell = cli.DoneStyle.Render(fmt.Sprintf("%3d", day)) + "•"
		}
		line.WriteString(cell)

		if (offset+day)%7 == 0 {
			fmt.Println(line.String())
			line.Reset()
			line.WriteString("  ")
		}
	}
	if line.Len() > 2 {
		fmt.Println(line.String())
	}
}
