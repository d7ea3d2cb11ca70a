// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// =============================================================================
// SETTINGS STORE
// =============================================================================

// Store owns the live configuration. Reads return copies; every update
// is persisted synchronously, mirroring the load/persist lifecycle of a
// key-value settings blob.
type Store struct {
	mu   sync.Mutex
	cfg  *Config
	path string
}

// NewStore loads the configuration from the default location and applies
// environment overrides.
func NewStore() *Store {
	cfg := Load()
	cfg.ApplyEnvOverrides()
	path, _ := ConfigPathTOML()
	return &Store{cfg: cfg, path: path}
}

// NewStoreWithPath loads the configuration from an explicit path.
// Used in tests.
func NewStoreWithPath(path string) *Store {
	cfg := LoadFromPath(path)
	return &Store{cfg: cfg, path: path}
}

// Get returns a copy of the current configuration.
func (s *Store) Get() Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.cfg
}

// Update applies a mutation and persists the result immediately.
// No validation is performed on key formats.
func (s *Store) Update(fn func(*Config)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.cfg)
	fillDefaults(s.cfg)
	return SaveToPath(s.cfg, s.path)
}

// replace swaps in a freshly loaded config (from the file watcher).
func (s *Store) replace(cfg *Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
}

// =============================================================================
// FILE WATCHER
// =============================================================================

// watchDebounce coalesces rapid write events from editors that save in
// multiple steps.
const watchDebounce = 250 * time.Millisecond

// Watch reloads the configuration when the file changes on disk and
// invokes onChange with the new value. Returns a stop function.
// Writes made through Update also trigger the watcher; callers tolerate
// the redundant notification.
func (s *Store) Watch(onChange func(Config)) (func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the directory: editors often replace the file, which drops
	// a watch registered on the file itself.
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		watcher.Close()
		return nil, err
	}

	done := make(chan struct{})
	go func() {
		var timer *time.Timer
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != filepath.Clean(s.path) {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(watchDebounce, func() {
					cfg := LoadFromPath(s.path)
					cfg.ApplyEnvOverrides()
					s.replace(cfg)
					onChange(*cfg)
				})
			case <-watcher.Errors:
				// Watch errors are non-fatal; the next Update still
				// persists correctly.
			case <-done:
				return
			}
		}
	}()

	return func() {
		close(done)
		watcher.Close()
	}, nil
}
