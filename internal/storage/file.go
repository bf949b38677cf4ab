package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	apperrors "github.com/dori/tasklist/internal/errors"
	"github.com/dori/tasklist/internal/logging"
	"github.com/dori/tasklist/internal/model"
)

const lockSuffix = ".lock"

// FileRepository keeps the whole task list in a single encoded file.
// Reads take a shared lock and writes an exclusive lock on <path>.lock,
// so a quick add from another process never interleaves with a save.
type FileRepository struct {
	path   string
	format Kind
	flk    *flock.Flock
}

// NewFileRepository creates a repository for path using one of the file formats
func NewFileRepository(path string, format Kind) (*FileRepository, error) {
	if !format.IsFile() {
		return nil, fmt.Errorf("unsupported file format: %s", format)
	}
	return &FileRepository{
		path:   path,
		format: format,
		flk:    flock.New(path + lockSuffix),
	}, nil
}

// Path returns the task file path
func (r *FileRepository) Path() string {
	return r.path
}

// Format returns the encoding in use
func (r *FileRepository) Format() Kind {
	return r.format
}

// Load reads and decodes the task file. A missing file yields an error
// that matches fs.ErrNotExist; an empty file is a truncated list and
// yields io.ErrUnexpectedEOF.
func (r *FileRepository) Load() ([]*model.Task, error) {
	if _, err := os.Stat(r.path); err != nil {
		return nil, apperrors.NewLoadError(r.path, err)
	}

	if err := r.flk.RLock(); err != nil {
		return nil, apperrors.NewLoadError(r.path, fmt.Errorf("failed to acquire read lock: %w", err))
	}
	defer func() { _ = r.flk.Unlock() }()

	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, apperrors.NewLoadError(r.path, err)
	}

	if len(data) == 0 {
		return nil, apperrors.NewLoadError(r.path, io.ErrUnexpectedEOF)
	}

	tasks, err := decode(r.format, data)
	if err != nil {
		return nil, apperrors.NewLoadError(r.path, err)
	}

	logging.Debugf("storage: loaded %d tasks from %s (%s)", len(tasks), r.path, r.format)
	return tasks, nil
}

// Save encodes tasks and replaces the task file. The data is written to a
// uniquely named temp file first and renamed over the target.
func (r *FileRepository) Save(tasks []*model.Task) error {
	data, err := encode(r.format, tasks)
	if err != nil {
		return apperrors.NewSaveError(r.path, err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return apperrors.NewSaveError(r.path, fmt.Errorf("failed to create directory %s: %w", dir, err))
	}

	if err := r.flk.Lock(); err != nil {
		return apperrors.NewSaveError(r.path, fmt.Errorf("failed to acquire write lock: %w", err))
	}
	defer func() { _ = r.flk.Unlock() }()

	tmpPath := fmt.Sprintf("%s.%s.tmp", r.path, uuid.NewString())
	defer func() {
		if err := os.Remove(tmpPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			logging.Debugf("storage: failed to remove %s: %v", tmpPath, err)
		}
	}()

	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return apperrors.NewSaveError(r.path, err)
	}
	if err := os.Rename(tmpPath, r.path); err != nil {
		return apperrors.NewSaveError(r.path, err)
	}

	logging.Debugf("storage: saved %d tasks to %s (%s)", len(tasks), r.path, r.format)
	return nil
}

// Close releases the file lock handle
func (r *FileRepository) Close() error {
	return r.flk.Close()
}
