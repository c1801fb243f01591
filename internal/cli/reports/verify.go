package reports

import (
	"fmt"
	"sort"

	"github.com/finnpalmer/readtrack/internal/cli"
	"github.com/finnpalmer/readtrack/internal/dates"
	"github.com/finnpalmer/readtrack/internal/stats"
)

type VerifyCmd struct {
	Reader string `arg:"" help:"Reader id."`
}

// Run prints a data-integrity report. Historical summaries use the trailing
// run, which ignores the wall clock; the grace-rule streak shown by `stats`
// would change with the day the report happens to run on.
func (c *VerifyCmd) Run(ctx *cli.Context) error {
	entries, err := ctx.LoadLogs(c.Reader)
	if err != nil {
		return err
	}

	summary := stats.Aggregate(entries)
	sorted := summary.SortedDates()

	fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("Data verification — %s", c.Reader)))
	fmt.Printf("  Log entries:   %d\n", summary.TotalLogs)
	fmt.Printf("  Unique days:   %d\n", summary.DaysLogged())
	fmt.Printf("  Totals:        %g minutes, %g pages, %g books\n",
		summary.Totals.Minutes, summary.Totals.Pages, summary.Totals.Books)
	if summary.Earliest != "" {
		fmt.Printf("  Date range:    %s → %s\n", summary.Earliest, summary.Latest)
	}
	fmt.Printf("  Trailing run:  %d days\n", dates.TrailingRun(sorted))
	fmt.Printf("  Gaps:          %d\n", len(dates.Gaps(sorted)))
	if summary.UnknownEntries > 0 {
		fmt.Println(cli.WarnStyle.Render(fmt.Sprintf("  ⚠ %d entries with unknown log type", summary.UnknownEntries)))
	}

	batches, err := ctx.Store.GetImportBatches(c.Reader)
	if err != nil {
		return fmt.Errorf("failed to list import batches: %w", err)
	}

	fmt.Printf("\n  Import batches (%d):\n", len(batches))
	known := make(map[string]bool, len(batches))
	for _, b := range batches {
		known[b.BatchID] = true
		fmt.Printf("    %s  %s  %d rows (%d errors)  %s\n",
			b.ProcessedAt.Format("2006-01-02"), b.BatchID, b.TotalRows, b.ErrorRows, b.Source.Name)
	}

	// Entries referencing a batch id with no summary document mean an
	// import died between its last commit and the summary write.
	orphanCounts := make(map[string]int)
	for _, e := range entries {
		if e.ImportBatchID != "" && !known[e.ImportBatchID] {
			orphanCounts[e.ImportBatchID]++
		}
	}
	if len(orphanCounts) == 0 {
		fmt.Println(cli.DoneStyle.Render("  ✓ No orphaned batch references"))
		return nil
	}

	orphans := make([]string, 0, len(orphanCounts))
	for id := range orphanCounts {
		orphans = append(orphans, id)
	}
	sort.Strings(orphans)

	fmt.Println(cli.WarnStyle.Render(fmt.Sprintf("  ⚠ %d orphaned batch ids (interrupted imports):", len(orphans))))
	for _, id := range orphans {
		fmt.Printf("    %s  (%d entries)\n", id, orphanCounts[id])
	}
	return nil
}
