// Package store persists resource collections as flat JSON files, one
// named array per file. Reads of a missing or malformed file yield an
// empty collection; writes rewrite the whole file.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ErrNotFound is returned when no record with the requested ID exists.
var ErrNotFound = errors.New("record not found")

// Record is any resource persisted in a Collection.
type Record interface {
	RecordID() string
}

// Collection is a JSON-file-backed sequence of records, newest first.
// The on-disk shape is {"<name>": [records...]}.
//
// A mutex serializes every read-modify-write cycle, so two in-process
// writers cannot drop each other's change. The data directory must not
// be shared between processes; concurrent external writers can still
// lose updates.
type Collection[T Record] struct {
	mu   sync.Mutex
	path string
	name string
}

// NewCollection creates a collection persisted at path whose JSON
// document wraps the array under the given name.
func NewCollection[T Record](path, name string) *Collection[T] {
	return &Collection[T]{path: path, name: name}
}

// ReadAll returns every record in the collection, newest first. A
// missing or corrupt file reads as an empty collection, never an error.
func (c *Collection[T]) ReadAll() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.readLocked()
}

// WriteAll replaces the collection contents with the given records.
func (c *Collection[T]) WriteAll(records []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.writeLocked(records)
}

// Find returns the record with the given ID.
func (c *Collection[T]) Find(id string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, rec := range c.readLocked() {
		if rec.RecordID() == id {
			return rec, true
		}
	}
	var zero T
	return zero, false
}

// Insert prepends the record and persists the collection.
func (c *Collection[T]) Insert(record T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	records := append([]T{record}, c.readLocked()...)
	return c.writeLocked(records)
}

// Update applies the mutator to the record with the given ID and
// persists the collection. The record's ID is never changed by apply
// callers; timestamp refreshes are the caller's responsibility.
func (c *Collection[T]) Update(id string, apply func(*T)) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	records := c.readLocked()
	for i := range records {
		if records[i].RecordID() != id {
			continue
		}
		apply(&records[i])
		if err := c.writeLocked(records); err != nil {
			var zero T
			return zero, err
		}
		return records[i], nil
	}
	var zero T
	return zero, ErrNotFound
}

// Delete removes the record with the given ID and persists the
// collection. An unknown ID returns ErrNotFound without touching the
// file.
func (c *Collection[T]) Delete(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	records := c.readLocked()
	for i := range records {
		if records[i].RecordID() == id {
			return c.writeLocked(append(records[:i:i], records[i+1:]...))
		}
	}
	return ErrNotFound
}

func (c *Collection[T]) readLocked() []T {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil
	}
	var records []T
	if err := json.Unmarshal(doc[c.name], &records); err != nil {
		return nil
	}
	return records
}

func (c *Collection[T]) writeLocked(records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(map[string][]T{c.name: records}, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s collection: %w", c.name, err)
	}

	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	// Write to a temp file in the same directory, then rename, so an
	// interrupted write never leaves a truncated collection behind.
	tmp, err := os.CreateTemp(dir, "."+c.name+"-*.json")
	if err != nil {
		return fmt.Errorf("writing %s collection: %w", c.name, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing %s collection: %w", c.name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("writing %s collection: %w", c.name, err)
	}
	if err := os.Rename(tmp.Name(), c.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("writing %s collection: %w", c.name, err)
	}
	return nil
}
