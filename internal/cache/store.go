// Package cache implements the on-disk mirror of remote API data: one
// JSON file per key, aged by file modification time, with per-kind
// freshness policies deciding when a record may be reused.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ErrNotFound indicates no record exists for the key.
var ErrNotFound = errors.New("cache: record not found")

// ErrCorrupt indicates a record exists but its bytes do not deserialize.
var ErrCorrupt = errors.New("cache: record corrupt")

// ErrInvalidKey indicates a key is empty or contains path components.
var ErrInvalidKey = errors.New("cache: invalid key")

// Store persists payloads as JSON files under a base directory, one file
// per key. The file's own mtime is the authoritative record age; nothing
// is stored inline.
type Store struct {
	baseDir string
}

// NewStore creates a Store rooted at baseDir. The directory is created
// lazily on first write.
func NewStore(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// Write marshals payload and durably persists it under key, creating the
// base directory if missing. The write goes through a temp file and
// rename so a crash never leaves a truncated record behind.
func (s *Store) Write(key string, payload any) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return fmt.Errorf("cache: creating directory: %w", err)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("cache: marshaling %s: %w", key, err)
	}

	tmp, err := os.CreateTemp(s.baseDir, key+".tmp-*")
	if err != nil {
		return fmt.Errorf("cache: creating temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("cache: writing %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("cache: writing %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("cache: replacing %s: %w", key, err)
	}
	return nil
}

// Read unmarshals the record for key into dest and returns the record's
// last-modification time. Returns ErrNotFound when no record exists and
// ErrCorrupt when the stored bytes do not decode into dest's shape.
func (s *Store) Read(key string, dest any) (time.Time, error) {
	p, err := s.path(key)
	if err != nil {
		return time.Time{}, err
	}

	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return time.Time{}, fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return time.Time{}, fmt.Errorf("cache: reading %s: %w", key, err)
	}

	info, err := os.Stat(p)
	if err != nil {
		return time.Time{}, fmt.Errorf("cache: stat %s: %w", key, err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return time.Time{}, fmt.Errorf("%w: %s: %v", ErrCorrupt, key, err)
	}
	return info.ModTime(), nil
}

// Remove deletes the record for key. Missing records are not an error.
func (s *Store) Remove(key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("cache: removing %s: %w", key, err)
	}
	return nil
}

// path returns the filesystem path for a cache key. Keys name a single
// file; empty keys, dot-segments, and path separators are rejected.
func (s *Store) path(key string) (string, error) {
	if key == "" || key == "." || key == ".." || key != filepath.Base(key) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return filepath.Join(s.baseDir, key+".json"), nil
}
