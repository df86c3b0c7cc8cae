package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Record is anything persisted in a Collection.
type Record interface {
	GetID() int
}

// Snapshot is the in-memory image of one collection during a read or mutation.
// NextID is the durable id allocator: it only ever grows, so ids are never
// reused after deletions.
type Snapshot[T Record] struct {
	NextID  int `json:"nextId"`
	Records []T `json:"records"`
}

// Allocate hands out the next record id and advances the allocator.
func (s *Snapshot[T]) Allocate() int {
	id := s.NextID
	s.NextID++
	return id
}

// Collection persists one entity type as a single JSON document on disk.
//
// All access goes through the collection mutex, so concurrent load-modify-save
// cycles on the same collection serialize instead of racing. Writes land in a
// temp file that is renamed over the snapshot, so readers never observe a
// partial document. Atomicity across two collections (e.g. an invoice write
// plus the matching client aggregate update) is NOT provided here; callers
// serialize such multi-collection units themselves.
type Collection[T Record] struct {
	path string
	mu   sync.Mutex
}

// NewCollection binds a collection named name to <dir>/<name>.json.
func NewCollection[T Record](dir, name string) *Collection[T] {
	return &Collection[T]{path: filepath.Join(dir, name+".json")}
}

// Path returns the snapshot file path.
func (c *Collection[T]) Path() string {
	return c.path
}

// All returns the records from a fresh load of the snapshot. A missing
// snapshot file is an empty collection, not an error.
func (c *Collection[T]) All() ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap, err := c.load()
	if err != nil {
		return nil, err
	}
	return snap.Records, nil
}

// Mutate runs fn against the current snapshot and, if fn succeeds, persists
// the result. When fn returns an error nothing is written, so every failed
// mutation leaves the snapshot byte-for-byte unchanged.
func (c *Collection[T]) Mutate(fn func(s *Snapshot[T]) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap, err := c.load()
	if err != nil {
		return err
	}
	if err := fn(&snap); err != nil {
		return err
	}
	return c.save(snap)
}

func (c *Collection[T]) load() (Snapshot[T], error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Snapshot[T]{NextID: 1}, nil
		}
		return Snapshot[T]{}, fmt.Errorf("read %s: %w", c.path, err)
	}

	// A zero-byte file (e.g. truncated externally) loads like a missing one.
	if len(bytes.TrimSpace(data)) == 0 {
		return Snapshot[T]{NextID: 1}, nil
	}

	// Older deployments stored a bare array of records with no allocator.
	// Recover the allocator from the highest id seen.
	if isJSONArray(data) {
		var records []T
		if err := json.Unmarshal(data, &records); err != nil {
			return Snapshot[T]{}, fmt.Errorf("decode %s: %w", c.path, err)
		}
		next := 1
		for _, r := range records {
			if r.GetID() >= next {
				next = r.GetID() + 1
			}
		}
		return Snapshot[T]{NextID: next, Records: records}, nil
	}

	var snap Snapshot[T]
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot[T]{}, fmt.Errorf("decode %s: %w", c.path, err)
	}
	if snap.NextID < 1 {
		snap.NextID = 1
	}
	return snap, nil
}

func (c *Collection[T]) save(snap Snapshot[T]) error {
	if snap.Records == nil {
		snap.Records = []T{}
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.path, err)
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(c.path), filepath.Base(c.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("write %s: %w", c.path, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", c.path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", c.path, err)
	}
	if err := os.Rename(tmpName, c.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", c.path, err)
	}
	return nil
}

func isJSONArray(data []byte) bool {
	for _, b := range data {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		case '[':
			return true
		default:
			return false
		}
	}
	return false
}
