package migration

import (
	"context"
	"log/slog"

	"github.com/jackc/pgconn"
)

// Execer is the part of a pgx pool migrations need.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

// Migration represents a database migration
type Migration struct {
	Name string
	Up   func(ctx context.Context, db Execer) error
}

// Migrations is the ordered list applied on startup. Each step is idempotent.
var Migrations = []Migration{
	{Name: "create_resume_drafts", Up: createResumeDrafts},
	{Name: "add_source_to_resume_drafts", Up: addSourceToResumeDrafts},
	{Name: "index_resume_drafts_updated_at", Up: indexResumeDraftsUpdatedAt},
}

// RunMigrations executes all necessary database migrations on startup
func RunMigrations(ctx context.Context, db Execer) error {
	slog.Info("Starting database migrations")

	for _, m := range Migrations {
		if err := m.Up(ctx, db); err != nil {
			slog.Error("Migration failed", "name", m.Name, "error", err)
			return err
		}
		slog.Info("Migration completed", "name", m.Name)
	}

	slog.Info("All migrations completed successfully")
	return nil
}

func createResumeDrafts(ctx context.Context, db Execer) error {
	query := `
		CREATE TABLE IF NOT EXISTS resume_drafts (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL DEFAULT '',
			format TEXT NOT NULL,
			payload JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
	`
	_, err := db.Exec(ctx, query)
	return err
}

// addSourceToResumeDrafts adds the source TEXT column if it doesn't exist
func addSourceToResumeDrafts(ctx context.Context, db Execer) error {
	query := `
		ALTER TABLE resume_drafts
		ADD COLUMN IF NOT EXISTS source TEXT NOT NULL DEFAULT '';
	`

	if _, err := db.Exec(ctx, query); err != nil {
		// the column may already exist
		slog.Warn("Error adding source column (may already exist)", "error", err)
		return nil
	}
	return nil
}

func indexResumeDraftsUpdatedAt(ctx context.Context, db Execer) error {
	query := `CREATE INDEX IF NOT EXISTS resume_drafts_updated_at_idx ON resume_drafts (updated_at DESC);`
	if _, err := db.Exec(ctx, query); err != nil {
		slog.Warn("Error creating updated_at index", "error", err)
	}
	return nil
}
