// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package cache persists API responses as files beneath a caller-provided
// directory. Keys are the clear-text filenames published in the cache
// layout (references.csv, preview_C_A_HS_842_M_2022_TOTAL.csv, ...), so a
// user can inspect or prune entries by hand. Entries are never expired:
// once written they are trusted verbatim and freshness is the caller's
// responsibility.
package cache

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/apex/log"
)

// Store is a file-backed cache rooted at Dir. The zero value (or a nil
// *Store, or an empty Dir) is a disabled cache: reads always miss and
// writes are no-ops. Callers inject a Store rather than reaching for a
// process-wide singleton so tests can point it at a temp dir.
type Store struct {
	Dir string
}

// New returns a Store rooted at dir. An empty dir yields a disabled store.
func New(dir string) *Store {
	return &Store{Dir: dir}
}

func (s *Store) enabled() bool {
	return s != nil && s.Dir != ""
}

// EnsureDir creates the cache directory. Best-effort callers may log and
// continue on failure.
func (s *Store) EnsureDir() error {
	if !s.enabled() {
		return nil
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	return nil
}

// Read returns the entry stored under name, or ok=false on a miss (or
// when the store is disabled).
func (s *Store) Read(name string) ([]byte, bool) {
	if !s.enabled() {
		return nil, false
	}
	data, err := os.ReadFile(filepath.Join(s.Dir, name))
	if err != nil {
		return nil, false
	}
	return bytes.TrimSpace(data), true
}

// Write stores data under name, creating the directory as needed.
// Last-write-wins; there is no locking because callers are synchronous.
func (s *Store) Write(name string, data []byte) error {
	if !s.enabled() {
		return nil
	}
	if err := s.EnsureDir(); err != nil {
		return err
	}
	p := filepath.Join(s.Dir, name)
	if err := os.WriteFile(p, data, os.FileMode(0o600)); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	log.Debugf("cached %s", p)
	return nil
}

// Invalidate removes a single entry. Removing an absent entry is not an
// error.
func (s *Store) Invalidate(name string) error {
	if !s.enabled() {
		return nil
	}
	err := os.Remove(filepath.Join(s.Dir, name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to invalidate cache entry %s: %w", name, err)
	}
	return nil
}

// Clear removes every file directly under the cache directory.
func (s *Store) Clear() error {
	if !s.enabled() {
		return nil
	}
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if err := os.Remove(filepath.Join(s.Dir, e.Name())); err != nil {
			return fmt.Errorf("failed to clear cache entry %s: %w", e.Name(), err)
		}
		log.Debugf("removed cache file %s", e.Name())
	}
	return nil
}
