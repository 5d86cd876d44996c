package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// FileCollection stores records as one pretty-printed JSON array per
// collection file. A per-collection mutex makes the read-modify-write cycle
// of Append and UpdateByKey exclusive, which is what rules out lost updates;
// reads take the shared side and see the last committed snapshot.
type FileCollection[T Record] struct {
	path string
	mu   sync.RWMutex
}

func NewFileCollection[T Record](path string) *FileCollection[T] {
	return &FileCollection[T]{path: path}
}

func (c *FileCollection[T]) ReadAll(ctx context.Context) ([]T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.load()
}

func (c *FileCollection[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T

	c.mu.RLock()
	defer c.mu.RUnlock()

	records, err := c.load()
	if err != nil {
		return zero, err
	}
	for _, rec := range records {
		if rec.Key() == id {
			return rec, nil
		}
	}
	return zero, fmt.Errorf("%s: %w", id, ErrNotFound)
}

func (c *FileCollection[T]) Append(ctx context.Context, rec T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.load()
	if err != nil {
		return err
	}
	for _, existing := range records {
		if existing.Key() == rec.Key() {
			return fmt.Errorf("%s: %w", rec.Key(), ErrDuplicateKey)
		}
	}

	return c.persist(append(records, rec))
}

func (c *FileCollection[T]) UpdateByKey(ctx context.Context, id string, mutate func(T) T) (T, error) {
	var zero T

	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.load()
	if err != nil {
		return zero, err
	}

	for i, rec := range records {
		if rec.Key() != id {
			continue
		}
		updated := mutate(rec)
		records[i] = updated
		if err := c.persist(records); err != nil {
			return zero, err
		}
		return updated, nil
	}

	return zero, fmt.Errorf("%s: %w", id, ErrNotFound)
}

// load reads the whole collection file. A missing file is an empty
// collection.
func (c *FileCollection[T]) load() ([]T, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read collection %s: %w", c.path, err)
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode collection %s: %w", c.path, err)
	}
	return records, nil
}

// persist writes the whole collection durably: temp file in the same
// directory, fsync, then rename over the old file so readers never observe
// a partial write.
func (c *FileCollection[T]) persist(records []T) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode collection %s: %w", c.path, err)
	}

	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(c.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", c.path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write collection %s: %w", c.path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to sync collection %s: %w", c.path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file for %s: %w", c.path, err)
	}

	if err := os.Rename(tmpName, c.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace collection %s: %w", c.path, err)
	}
	return nil
}
