package jsonstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Collection is a flat-file document collection: one JSON array per file,
// rewritten whole on every mutation. A mutex serializes writers within the
// process; concurrent processes writing the same file can still lose
// updates, which is an accepted limitation of this backend.
type Collection[T any] struct {
	path string
	mu   sync.RWMutex
}

// NewCollection opens (creating if needed) the collection file
// <dir>/<name>.json.
func NewCollection[T any](dir, name string) (*Collection[T], error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	c := &Collection[T]{path: filepath.Join(dir, name+".json")}

	if _, err := os.Stat(c.path); os.IsNotExist(err) {
		if err := os.WriteFile(c.path, []byte("[]"), 0o644); err != nil {
			return nil, fmt.Errorf("initialize collection %s: %w", name, err)
		}
	}

	return c, nil
}

// All returns every document in the collection.
func (c *Collection[T]) All() ([]T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.read()
}

// Mutate applies fn to the full document list and persists the result.
// fn returns the new list, or an error to abort without writing.
func (c *Collection[T]) Mutate(fn func(items []T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.read()
	if err != nil {
		return err
	}

	updated, err := fn(items)
	if err != nil {
		return err
	}

	return c.write(updated)
}

func (c *Collection[T]) read() ([]T, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, fmt.Errorf("read collection %s: %w", c.path, err)
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode collection %s: %w", c.path, err)
	}
	return items, nil
}

func (c *Collection[T]) write(items []T) error {
	if items == nil {
		items = []T{}
	}

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode collection %s: %w", c.path, err)
	}

	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write collection %s: %w", c.path, err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		return fmt.Errorf("replace collection %s: %w", c.path, err)
	}
	return nil
}
