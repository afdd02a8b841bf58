package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/MrLeaw/aws-clf-c02-quiz/internal/domain/entities"
)

// ErrProgressCorrupt is returned by Load for unreadable, malformed or invalid records.
var ErrProgressCorrupt = entities.ErrProgressCorrupt

// ProgressRepository keeps the progress record in a single JSON file.
type ProgressRepository struct {
	path string
}

// NewProgressRepository creates a ProgressRepository backed by the file at path.
func NewProgressRepository(path string) *ProgressRepository {
	return &ProgressRepository{path: path}
}

// Path returns the location of the progress file.
func (r *ProgressRepository) Path() string {
	return r.path
}

// Load reads the progress record. A missing file yields nil without error;
// an unreadable, malformed or invalid record yields ErrProgressCorrupt.
func (r *ProgressRepository) Load(_ context.Context) (*entities.Progress, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: read %s: %w", ErrProgressCorrupt, r.path, err)
	}

	var progress entities.Progress
	if err := json.Unmarshal(data, &progress); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProgressCorrupt, err)
	}
	if err := progress.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", r.path, err)
	}

	return &progress, nil
}

// Save replaces the progress file with p. The record is written to a
// temporary file in the same directory and renamed over the old one, so a
// crash leaves either the previous or the new record on disk.
func (r *ProgressRepository) Save(_ context.Context, p *entities.Progress) error {
	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create progress directory: %w", err)
	}

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal progress: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".progress-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write progress: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync progress: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close progress: %w", err)
	}

	if err := os.Rename(tmpName, r.path); err != nil {
		return fmt.Errorf("replace progress: %w", err)
	}

	return nil
}
