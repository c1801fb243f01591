package system

import (
	"database/sql"
	"fmt"
	"io/fs"

	"github.com/finnpalmer/readtrack/internal/cli"
	"github.com/finnpalmer/readtrack/internal/migration"
	"github.com/finnpalmer/readtrack/internal/storage"
	"github.com/finnpalmer/readtrack/migrations"
)

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	defer ctx.Store.Close()

	db, dir, err := migrationTarget(ctx.Store)
	if err != nil {
		return err
	}

	subFS, err := fs.Sub(migrations.FS, dir)
	if err != nil {
		return fmt.Errorf("failed to access %s migrations: %w", dir, err)
	}

	runner := migration.NewRunner(db, subFS)
	count, err := runner.ApplyMigrations(func(msg string) {
		fmt.Println(msg)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		fmt.Println("No migrations to apply. Database is up to date.")
	} else {
		fmt.Printf("\nSuccessfully applied %d migration(s).\n", count)
	}
	return nil
}

// migrationTarget resolves the SQL connection and embedded-migration
// directory for the active store. The JSON backend has no schema to migrate.
func migrationTarget(store storage.Provider) (*sql.DB, string, error) {
	switch s := store.(type) {
	case *storage.SQLiteStore:
		db := s.GetDB()
		if db == nil {
			return nil, "", fmt.Errorf("database connection is nil")
		}
		return db, "sqlite", nil
	case *storage.PostgresStore:
		db := s.GetDB()
		if db == nil {
			return nil, "", fmt.Errorf("database connection is nil")
		}
		return db, "postgres", nil
	default:
		return nil, "", fmt.Errorf("migrate command only supports SQLite and PostgreSQL storage")
	}
}
