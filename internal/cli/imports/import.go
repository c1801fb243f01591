package imports

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"

	"github.com/finnpalmer/readtrack/internal/cli"
	"github.com/finnpalmer/readtrack/internal/constants"
	"github.com/finnpalmer/readtrack/internal/importer"
	"github.com/finnpalmer/readtrack/internal/ingest"
	"github.com/finnpalmer/readtrack/internal/logger"
	"github.com/finnpalmer/readtrack/internal/models"
)

type CSVCmd struct {
	File   string `arg:"" help:"CSV export file."`
	Reader string `arg:"" help:"Reader id."`
	DryRun bool   `help:"Parse and summarize without writing."`
}

func (c *CSVCmd) Run(ctx *cli.Context) error {
	entries, warnings, err := parseCSVFile(c.File, c.Reader)
	if err != nil {
		return err
	}
	return runImport(ctx, entries, warnings, importer.Options{
		ReaderID:  c.Reader,
		Source:    models.Source{Name: "csv-import", Details: c.File},
		DryRun:    c.DryRun,
		CreatedBy: ctx.CreatedBy,
	})
}

type TextCmd struct {
	File   string `arg:"" help:"Extracted text file (one line per source line)."`
	Reader string `arg:"" help:"Reader id."`
	DryRun bool   `help:"Parse and preview without writing."`
}

func (c *TextCmd) Run(ctx *cli.Context) error {
	entries, warnings, err := parseTextFile(c.File, c.Reader)
	if err != nil {
		return err
	}
	return runImport(ctx, entries, warnings, importer.Options{
		ReaderID:  c.Reader,
		Source:    models.Source{Name: "text-import", Details: c.File},
		DryRun:    c.DryRun,
		CreatedBy: ctx.CreatedBy,
	})
}

type FreshCmd struct {
	File   string `arg:"" help:"CSV export file."`
	Reader string `arg:"" help:"Reader id."`
	Yes    bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *FreshCmd) Run(ctx *cli.Context) error {
	entries, warnings, err := parseCSVFile(c.File, c.Reader)
	if err != nil {
		return err
	}

	if !c.Yes {
		var confirmed bool
		form := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete ALL existing logs for %q and reimport from %s?", c.Reader, c.File)).
				Value(&confirmed),
		))
		if err := form.Run(); err != nil {
			return fmt.Errorf("confirmation error: %w", err)
		}
		if !confirmed {
			fmt.Println("Aborted.")
			return nil
		}
	}

	return runImport(ctx, entries, warnings, importer.Options{
		ReaderID:  c.Reader,
		Source:    models.Source{Name: "csv-import", Details: c.File},
		Fresh:     true,
		CreatedBy: ctx.CreatedBy,
	})
}

func parseCSVFile(path, readerID string) ([]importer.Entry, []ingest.Warning, error) {
	if err := cli.ValidateReaderID(readerID); err != nil {
		return nil, nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	res, err := ingest.ParseCSV(f)
	if err != nil {
		return nil, nil, err
	}

	entries := make([]importer.Entry, 0, len(res.Records))
	for _, rec := range res.Records {
		entries = append(entries, importer.Entry{Record: rec.Record, SourceName: rec.SourceName})
	}
	return entries, res.Warnings, nil
}

func parseTextFile(path, readerID string) ([]importer.Entry, []ingest.Warning, error) {
	if err := cli.ValidateReaderID(readerID); err != nil {
		return nil, nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	res, err := ingest.ParseText(f)
	if err != nil {
		return nil, nil, err
	}

	entries := make([]importer.Entry, 0, len(res.Records))
	for _, rec := range res.Records {
		entries = append(entries, importer.Entry{Record: rec})
	}
	return entries, res.Warnings, nil
}

func runImport(ctx *cli.Context, entries []importer.Entry, warnings []ingest.Warning, opts importer.Options) error {
	im := importer.New(ctx.Store)

	if !opts.DryRun && !opts.Fresh {
		dup, err := im.FindDuplicate(opts.ReaderID, entries)
		switch {
		case err != nil:
			// The run can proceed without the duplicate check, but losing it
			// silently would hide exactly the imports it exists to catch.
			logger.Warn("duplicate check failed", "reader", opts.ReaderID, "err", err)
		case dup != "":
			fmt.Println(cli.WarnStyle.Render(
				fmt.Sprintf("⚠ This file matches a previous import (batch %s). Importing again will duplicate entries.", dup)))
		}
	}

	summary, err := im.Run(entries, warnings, opts)
	if err != nil {
		return err
	}

	printSummary(summary, entries, warnings)
	return nil
}

func printSummary(summary importer.Summary, entries []importer.Entry, warnings []ingest.Warning) {
	if summary.DryRun {
		fmt.Println(cli.TitleStyle.Render("Dry run — nothing written"))
		preview := len(entries)
		if preview > constants.PreviewLimit {
			preview = constants.PreviewLimit
		}
		for _, e := range entries[:preview] {
			fmt.Printf("  %s  %g %s", e.LogDateString, e.Value, e.LogType)
			if e.BookTitle != "" {
				fmt.Printf("  · %s", e.BookTitle)
			}
			fmt.Println()
		}
		if len(entries) > preview {
			fmt.Printf("  … and %d more\n", len(entries)-preview)
		}
	} else {
		fmt.Println(cli.DoneStyle.Render("✓ Import complete"))
		fmt.Printf("  Batch:    %s\n", summary.BatchID)
		if summary.Cleared > 0 {
			fmt.Printf("  Cleared:  %d previous entries\n", summary.Cleared)
		}
	}

	fmt.Printf("  Imported: %d\n", summary.Imported)
	fmt.Printf("  Skipped:  %d\n", summary.Skipped)
	fmt.Printf("  Totals:   %g minutes, %g pages, %g books\n",
		summary.Totals.Minutes, summary.Totals.Pages, summary.Totals.Books)

	for _, w := range warnings {
		fmt.Println(cli.WarnStyle.Render("  ⚠ " + w.String()))
	}
}
