package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"resume-builder/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// DB is the subset of *pgxpool.Pool the repository uses.
type DB interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

type DraftsRepo struct {
	db DB
}

// NewDraftsRepo wraps pool. A nil pool yields a repository that reports
// domain.ErrDraftStoreUnavailable for every call.
func NewDraftsRepo(pool *pgxpool.Pool) *DraftsRepo {
	if pool == nil {
		return &DraftsRepo{}
	}
	return &DraftsRepo{db: pool}
}

func newDraftsRepo(db DB) *DraftsRepo { return &DraftsRepo{db: db} }

// Available reports whether a database backs the repository.
func (r *DraftsRepo) Available() bool { return r.db != nil }

// Save upserts d, assigning an id and timestamps when missing.
func (r *DraftsRepo) Save(ctx context.Context, d *domain.ResumeDraft) error {
	if r.db == nil {
		return domain.ErrDraftStoreUnavailable
	}
	now := time.Now().UTC()
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = now
	}
	d.UpdatedAt = now

	_, err := r.db.Exec(ctx, `INSERT INTO resume_drafts (id, name, format, source, payload, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, format = EXCLUDED.format, source = EXCLUDED.source, payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at`,
		d.ID, d.Name, d.Format, d.Source, d.Payload, d.CreatedAt, d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("save draft %s: %w", d.ID, err)
	}
	return nil
}

// Get loads one draft by id.
func (r *DraftsRepo) Get(ctx context.Context, id uuid.UUID) (*domain.ResumeDraft, error) {
	if r.db == nil {
		return nil, domain.ErrDraftStoreUnavailable
	}
	var d domain.ResumeDraft
	err := r.db.QueryRow(ctx, `SELECT id, name, format, source, payload, created_at, updated_at
		FROM resume_drafts WHERE id = $1`, id).
		Scan(&d.ID, &d.Name, &d.Format, &d.Source, &d.Payload, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrDraftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get draft %s: %w", id, err)
	}
	return &d, nil
}

// Delete removes a draft. Deleting a missing draft is ErrDraftNotFound.
func (r *DraftsRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if r.db == nil {
		return domain.ErrDraftStoreUnavailable
	}
	tag, err := r.db.Exec(ctx, `DELETE FROM resume_drafts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete draft %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDraftNotFound
	}
	return nil
}
