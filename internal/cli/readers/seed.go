package readers

import (
	"errors"
	"fmt"
	"time"

	"github.com/finnpalmer/readtrack/internal/cli"
	"github.com/finnpalmer/readtrack/internal/models"
	"github.com/finnpalmer/readtrack/internal/storage"
)

type SeedCmd struct {
	ID       string `arg:"" help:"Reader id."`
	Name     string `arg:"" optional:"" help:"Display name. Defaults to the id."`
	FullName string `help:"Full name for reports."`
	Force    bool   `help:"Overwrite an existing profile."`
}

func (c *SeedCmd) Run(ctx *cli.Context) error {
	if err := cli.ValidateReaderID(c.ID); err != nil {
		return err
	}

	if !c.Force {
		if _, err := ctx.Store.GetReader(c.ID); err == nil {
			return fmt.Errorf("reader %q already exists (use --force to overwrite)", c.ID)
		} else if !errors.Is(err, storage.ErrNotFound) {
			return err
		}
	}

	name := c.Name
	if name == "" {
		name = c.ID
	}

	reader := models.Reader{
		ID:          c.ID,
		DisplayName: name,
		FullName:    c.FullName,
		CreatedAt:   time.Now().UTC(),
	}
	if err := ctx.Store.PutReader(reader); err != nil {
		return fmt.Errorf("failed to save reader profile: %w", err)
	}

	fmt.Printf("✓ Seeded reader %q (%s)\n", reader.ID, reader.DisplayName)
	return nil
}

type ListCmd struct{}

func (c *ListCmd) Run(ctx *cli.Context) error {
	all, err := ctx.Store.GetAllReaders()
	if err != nil {
		return err
	}
	if len(all) == 0 {
		fmt.Println("No reader profiles. Use 'readtrack readers seed' to add one.")
		return nil
	}
	for _, r := range all {
		line := fmt.Sprintf("  %-12s %s", r.ID, r.DisplayName)
		if r.FullName != "" {
			line += fmt.Sprintf(" (%s)", r.FullName)
		}
		fmt.Println(line)
	}
	return nil
}
