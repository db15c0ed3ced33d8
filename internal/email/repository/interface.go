package repository

import (
	"time"

	emaildomain "internmail-backend/internal/email/domain"
)

// EmailRepository owns the email_snapshots collection. It is the only
// mutation path for snapshots; I/O failures come back as StorageError.
type EmailRepository interface {
	// GetAll returns every snapshot for the user. Order is not guaranteed;
	// callers sort.
	GetAll(userID string) ([]*emaildomain.EmailSnapshot, error)
	// GetByID returns ErrNotFound when the id is unknown
	GetByID(userID, id string) (*emaildomain.EmailSnapshot, error)
	// CreateIfAbsent inserts the snapshot unless the id already exists.
	// Returns true when a row was created. Re-ingesting a known id is a
	// no-op and never overwrites existing fields.
	CreateIfAbsent(snapshot *emaildomain.EmailSnapshot) (bool, error)
	// SaveAIResults merges a classification verdict into the snapshot:
	// sets aiResults, processed=true, isInternship from the category, and
	// refreshes lastUpdated. Silent no-op when the id is not found.
	SaveAIResults(userID, id string, results emaildomain.AIResult) error
	// UpdateBodies caches lazily fetched body content on the snapshot
	UpdateBodies(userID, id, textBody, htmlBody string) error
	// KnownIDs returns the set of snapshot ids already stored for the user
	KnownIDs(userID string) (map[string]struct{}, error)
}

// SystemStateRepository owns the per-user system_states singleton
type SystemStateRepository interface {
	// Get returns the state row, or a zero-value state when none exists yet
	// (lastFetchTime nil means first run)
	Get(userID string) (*emaildomain.SystemState, error)
	// SetLastFetchTime advances the ingestion watermark
	SetLastFetchTime(userID string, t time.Time) error
	// IncrementProcessed bumps the processed-emails counter
	IncrementProcessed(userID string) error
	// IncrementInternshipsFound bumps the internships-found counter
	IncrementInternshipsFound(userID string) error
}
