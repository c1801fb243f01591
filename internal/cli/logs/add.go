package logs

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/finnpalmer/readtrack/internal/cli"
	"github.com/finnpalmer/readtrack/internal/dates"
	"github.com/finnpalmer/readtrack/internal/models"
)

type AddCmd struct {
	Reader string   `arg:"" help:"Reader id."`
	Date   string   `short:"d" help:"Log date (YYYY-MM-DD). Defaults to today."`
	Type   string   `short:"t" help:"Log type (minutes|pages|books)."`
	Value  *float64 `short:"v" help:"Amount read."`
	Title  string   `help:"Book title."`
	Author string   `help:"Book author."`
	Source string   `help:"Source tag recorded on the entry." default:"manual"`
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	if err := cli.ValidateReaderID(c.Reader); err != nil {
		return err
	}

	// Prompt for whatever the flags left out
	if c.Type == "" || c.Value == nil {
		if err := c.promptForm(); err != nil {
			return err
		}
	}

	logType, err := models.ParseLogType(c.Type)
	if err != nil {
		return err
	}
	if c.Value == nil || *c.Value < 0 {
		return fmt.Errorf("value must be zero or greater")
	}

	dateStr := c.Date
	if dateStr == "" {
		dateStr = dates.Today()
	}
	day, err := dates.ParseUTC(dateStr)
	if err != nil {
		return fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", dateStr, err)
	}
	if dateStr > dates.Today() {
		return fmt.Errorf("log date %s is in the future", dateStr)
	}

	entry := models.LogEntry{
		ID:            uuid.NewString(),
		ReaderID:      c.Reader,
		LogDate:       day,
		LogDateString: dateStr,
		LogType:       logType,
		Value:         *c.Value,
		BookTitle:     c.Title,
		BookAuthor:    c.Author,
		Source:        models.Source{Name: c.Source},
		CreatedAt:     time.Now().UTC(),
		CreatedBy:     ctx.CreatedBy,
	}

	id, err := ctx.Store.AddLog(c.Reader, entry)
	if err != nil {
		return fmt.Errorf("failed to save log entry: %w", err)
	}

	fmt.Printf("✓ Logged %g %s for %s on %s (%s)\n", entry.Value, entry.LogType, c.Reader, dateStr, id)
	return nil
}

// promptForm collects the missing fields interactively. A title may be
// entered without an author; the reverse is allowed too since imports
// sometimes only know one of them.
func (c *AddCmd) promptForm() error {
	var valueStr string
	if c.Value != nil {
		valueStr = strconv.FormatFloat(*c.Value, 'f', -1, 64)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("What did you track?").
				Options(
					huh.NewOption("Minutes", string(models.LogTypeMinutes)),
					huh.NewOption("Pages", string(models.LogTypePages)),
					huh.NewOption("Books", string(models.LogTypeBooks)),
				).
				Value(&c.Type),
			huh.NewInput().
				Title("How much?").
				Validate(func(s string) error {
					v, err := strconv.ParseFloat(s, 64)
					if err != nil {
						return fmt.Errorf("enter a number")
					}
					if v < 0 {
						return fmt.Errorf("value must be zero or greater")
					}
					return nil
				}).
				Value(&valueStr),
			huh.NewInput().
				Title("Book title (optional)").
				Value(&c.Title),
			huh.NewInput().
				Title("Author (optional)").
				Value(&c.Author),
		),
	)

	if err := form.Run(); err != nil {
		return fmt.Errorf("form error: %w", err)
	}

	v, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return fmt.Errorf("invalid value %q", valueStr)
	}
	c.Value = &v
	return nil
}
