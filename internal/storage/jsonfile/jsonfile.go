// Package jsonfile provides a flat-file implementation of the
// storage.Store interface: the whole state lives in one JSON document
// with top-level students, instructors and courses arrays.
//
// All cross-references in the document are business IDs. The earlier
// name-based references made renames silently orphan a course's
// instructor; IDs do not have that problem.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/nadimk/schoolhub/internal/models"
	"github.com/nadimk/schoolhub/internal/storage"
)

// Ensure JSONStore implements storage.Store
var _ storage.Store = (*JSONStore)(nil)

// JSONStore implements storage.Store over a single JSON file.
type JSONStore struct {
	path string
}

// New creates a JSONStore writing to the given path. The parent
// directory is created; the file itself appears on the first Save.
func New(path string) (*JSONStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, &models.IOError{Op: "open", Path: path, Err: err}
	}
	return &JSONStore{path: path}, nil
}

// Close is a no-op; the store holds no open handles between operations.
func (s *JSONStore) Close() error { return nil }

// Save writes the snapshot atomically: encode to a temp file in the same
// directory, then rename over the target, so a write failure never
// truncates the previous snapshot.
func (s *JSONStore) Save(ctx context.Context, snap *models.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".snapshot-*.json")
	if err != nil {
		return &models.IOError{Op: "write", Path: s.path, Err: err}
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return &models.IOError{Op: "write", Path: s.path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &models.IOError{Op: "write", Path: s.path, Err: err}
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return &models.IOError{Op: "write", Path: s.path, Err: err}
	}
	return nil
}

// Load reads the snapshot document. A missing file is an empty snapshot,
// not an error; malformed JSON fails with FormatError.
func (s *JSONStore) Load(ctx context.Context) (*models.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return &models.Snapshot{}, nil
	}
	if err != nil {
		return nil, &models.IOError{Op: "read", Path: s.path, Err: err}
	}
	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, &models.FormatError{Path: s.path, Err: err}
	}
	return &snap, nil
}
