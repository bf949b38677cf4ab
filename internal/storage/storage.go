// Package storage persists the task list as a whole, either as a single
// encoded file or in a SQLite database.
package storage

import (
	"fmt"
	"os"
	"strings"

	"github.com/dori/tasklist/internal/db"
	apperrors "github.com/dori/tasklist/internal/errors"
	"github.com/dori/tasklist/internal/model"
)

// Kind selects a storage backend
type Kind string

const (
	KindJSON   Kind = "json"
	KindYAML   Kind = "yaml"
	KindTOML   Kind = "toml"
	KindSQLite Kind = "sqlite"
)

// Kinds returns all supported backends
func Kinds() []Kind {
	return []Kind{KindJSON, KindYAML, KindTOML, KindSQLite}
}

// ParseKind matches a backend name case-insensitively
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds() {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown storage kind: %s", s)
}

// IsFile reports whether the kind is one of the single-file encodings
func (k Kind) IsFile() bool {
	return k == KindJSON || k == KindYAML || k == KindTOML
}

// Repository loads and saves the full ordered task list
type Repository interface {
	Load() ([]*model.Task, error)
	Save(tasks []*model.Task) error
	Path() string
	Close() error
}

// Open returns the repository for kind at path
func Open(kind Kind, path string) (Repository, error) {
	switch {
	case kind.IsFile():
		repo, err := NewFileRepository(path, kind)
		if err != nil {
			return nil, err
		}
		return repo, nil
	case kind == KindSQLite:
		database, err := db.Open(path)
		if err != nil {
			return nil, err
		}
		return database, nil
	default:
		return nil, fmt.Errorf("unknown storage kind: %s", kind)
	}
}

// OpenExisting is Open for read-only callers. It never creates the store:
// a missing database yields a load error matching fs.ErrNotExist, the
// same as a missing task file does on Load.
func OpenExisting(kind Kind, path string) (Repository, error) {
	if kind == KindSQLite {
		if _, err := os.Stat(path); err != nil {
			return nil, apperrors.NewLoadError(path, err)
		}
	}
	return Open(kind, path)
}
