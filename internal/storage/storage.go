// Package storage is a keyed JSON-document store backed by the filesystem.
// Each document lives at <dataDir>/<collection>/<id>.json, pretty-printed
// so the data directory stays human-diffable.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"uptime-api/internal/apperror"
)

// Store persists documents under a base directory. It holds no state beyond
// the directory path; all coordination is delegated to the filesystem, so
// concurrent updates of the same id are last-write-wins. Exclusive create is
// the only cross-writer guarantee.
type Store struct {
	baseDir string
	log     *zap.Logger
}

// New creates a Store rooted at baseDir, creating the directory if needed.
func New(baseDir string, log *zap.Logger) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0o700); err != nil {
		return nil, fmt.Errorf("storage: create base dir: %w", err)
	}
	return &Store{baseDir: baseDir, log: log}, nil
}

// Create writes a new document, failing with apperror.ErrAlreadyExists if a
// document with that id is already present in the collection. The write is
// exclusive: an existing file is never overwritten.
func (s *Store) Create(ctx context.Context, collection, id string, doc any) error {
	path, err := s.filePath(collection, id)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("storage: create collection dir: %w", err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("storage: marshal document: %w", err)
	}
	data = append(data, '\n')

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("storage: %s/%s: %w", collection, id, apperror.ErrAlreadyExists)
		}
		return fmt.Errorf("storage: open for create: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return fmt.Errorf("storage: write document: %w", err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return fmt.Errorf("storage: sync document: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("storage: close document: %w", err)
	}
	return nil
}

// Read loads the document into out, which must be a pointer. A missing
// document is apperror.ErrNotFound; stored bytes that do not parse as JSON
// are apperror.ErrCorrupt.
func (s *Store) Read(ctx context.Context, collection, id string, out any) error {
	path, err := s.filePath(collection, id)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("storage: %s/%s: %w", collection, id, apperror.ErrNotFound)
		}
		return fmt.Errorf("storage: read document: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		s.log.Error("corrupt document",
			zap.String("collection", collection),
			zap.String("id", id),
			zap.Error(err))
		return fmt.Errorf("storage: %s/%s: %w", collection, id, apperror.ErrCorrupt)
	}
	return nil
}

// Update replaces the full contents of an existing document, failing with
// apperror.ErrNotFound if it was never created. The replacement is written to
// a temp file and renamed into place, so readers never observe a partial
// write. Callers merge partial field sets in memory before calling.
func (s *Store) Update(ctx context.Context, collection, id string, doc any) error {
	path, err := s.filePath(collection, id)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("storage: %s/%s: %w", collection, id, apperror.ErrNotFound)
		}
		return fmt.Errorf("storage: stat document: %w", err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("storage: marshal document: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("storage: create temp: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("storage: chmod temp: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("storage: write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("storage: sync temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("storage: close temp: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("storage: rename temp: %w", err)
	}
	return nil
}

// Delete removes the document, failing with apperror.ErrNotFound if absent.
func (s *Store) Delete(ctx context.Context, collection, id string) error {
	path, err := s.filePath(collection, id)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("storage: %s/%s: %w", collection, id, apperror.ErrNotFound)
		}
		return fmt.Errorf("storage: delete document: %w", err)
	}
	return nil
}

// List returns the ids of every document in the collection. A collection
// that has never been written to lists as empty, not as an error.
func (s *Store) List(ctx context.Context, collection string) ([]string, error) {
	if err := validPathElement(collection); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(filepath.Join(s.baseDir, collection))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("storage: list collection: %w", err)
	}

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ".json"))
	}
	return ids, nil
}

func (s *Store) filePath(collection, id string) (string, error) {
	if err := validPathElement(collection); err != nil {
		return "", err
	}
	if err := validPathElement(id); err != nil {
		return "", err
	}
	return filepath.Join(s.baseDir, collection, id+".json"), nil
}

// validPathElement rejects names that would escape the collection layout.
func validPathElement(name string) error {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("storage: invalid name %q: %w", name, apperror.ErrValidation)
	}
	return nil
}
