package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrDraftNotFound indicates no draft exists for the requested id.
	ErrDraftNotFound = errors.New("draft not found")

	// ErrDraftStoreUnavailable indicates the service runs without a database.
	ErrDraftStoreUnavailable = errors.New("draft store unavailable")
)

// ResumeDraft is a saved copy of a parsed resume. Payload holds the
// transport JSON so drafts reload through the same import path as uploads.
type ResumeDraft struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Format    string    `json:"format"`
	Source    string    `json:"source,omitempty"`
	Payload   []byte    `json:"payload"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
