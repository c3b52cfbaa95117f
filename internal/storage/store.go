// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/nadimk/schoolhub/internal/models"
)

// Store persists and restores full-state snapshots. The two backends
// (SQLite, flat JSON file) sit behind this one interface so the service
// layer never knows which it is talking to.
type Store interface {
	// Save replaces the persisted state with the snapshot. Write
	// failures surface as IOError; uniqueness violations the backend
	// itself enforces surface as DuplicateError.
	Save(ctx context.Context, snap *models.Snapshot) error

	// Load reads the persisted state. A missing source yields an empty
	// snapshot; a malformed one fails with FormatError. Per-record
	// problems are not Load's concern — the service skips and reports
	// them while applying the snapshot.
	Load(ctx context.Context) (*models.Snapshot, error)

	// Close releases any resources held by the store.
	Close() error
}
