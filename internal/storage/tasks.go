// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides task persistence for lumi.
//
// Tasks are stored in a local SQLite file so the list survives
// restarts. This is the only durability offered: no sync, no backups,
// single-process access.
package storage

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/jeranaias/lumi-tui/internal/tasks"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrClosed = errors.New("task store is closed")
)

// =============================================================================
// TASK STORE
// =============================================================================

const schema = `
CREATE TABLE IF NOT EXISTS tasks (
	id            TEXT PRIMARY KEY,
	position      INTEGER NOT NULL,
	title         TEXT NOT NULL,
	description   TEXT NOT NULL DEFAULT '',
	difficulty    TEXT NOT NULL DEFAULT 'Gentle',
	completed     INTEGER NOT NULL DEFAULT 0,
	reminder_time TEXT NOT NULL DEFAULT '',
	notified      INTEGER NOT NULL DEFAULT 0,
	created_at    INTEGER NOT NULL
);
`

// TaskStore persists the task list to SQLite.
type TaskStore struct {
	db *sql.DB
}

// DefaultPath returns the default database location (~/.lumi/tasks.db).
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".lumi", "tasks.db"), nil
}

// Open opens (creating if needed) the task database at path.
func Open(path string) (*TaskStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &TaskStore{db: db}, nil
}

// Close closes the underlying database.
func (s *TaskStore) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Load returns all persisted tasks in display order.
func (s *TaskStore) Load() ([]*tasks.Task, error) {
	if s.db == nil {
		return nil, ErrClosed
	}
	rows, err := s.db.Query(`
		SELECT id, title, description, difficulty, completed, reminder_time, notified, created_at
		FROM tasks ORDER BY position ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*tasks.Task
	for rows.Next() {
		var t tasks.Task
		var difficulty string
		var completed, notified int
		var createdAt int64
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &difficulty, &completed, &t.ReminderTime, &notified, &createdAt); err != nil {
			return nil, err
		}
		t.Difficulty = tasks.ParseDifficulty(difficulty)
		t.Completed = completed != 0
		t.Notified = notified != 0
		t.CreatedAt = time.Unix(createdAt, 0)
		out = append(out, &t)
	}
	return out, rows.Err()
}

// SaveAll replaces the persisted list with the given snapshot. The
// list is small, so a full rewrite per mutation keeps the store as
// simple as the key-value blob it stands in for.
func (s *TaskStore) SaveAll(snapshot []tasks.Task) error {
	if s.db == nil {
		return ErrClosed
	}
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM tasks`); err != nil {
		return err
	}
	stmt, err := tx.Prepare(`
		INSERT INTO tasks (id, position, title, description, difficulty, completed, reminder_time, notified, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, t := range snapshot {
		if _, err := stmt.Exec(t.ID, i, t.Title, t.Description, string(t.Difficulty), boolInt(t.Completed), t.ReminderTime, boolInt(t.Notified), t.CreatedAt.Unix()); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
