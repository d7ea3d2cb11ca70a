// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package tasks provides the task list and the reminder scheduler.
package tasks

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// DIFFICULTY
// =============================================================================

// Difficulty is the gentleness tier of a task.
type Difficulty string

const (
	DifficultyGentle    Difficulty = "Gentle"
	DifficultyModerate  Difficulty = "Moderate"
	DifficultyChallenge Difficulty = "Challenge"
)

// String returns the string representation of the difficulty.
func (d Difficulty) String() string {
	return string(d)
}

// ParseDifficulty maps a string to a known tier, defaulting to Gentle.
func ParseDifficulty(s string) Difficulty {
	switch Difficulty(s) {
	case DifficultyModerate:
		return DifficultyModerate
	case DifficultyChallenge:
		return DifficultyChallenge
	default:
		return DifficultyGentle
	}
}

// =============================================================================
// TASK STRUCTURE
// =============================================================================

// Task is a single user- or AI-originated task item. IDs are unique and
// stable for the task's lifetime.
type Task struct {
	// ID is a unique identifier for this task.
	ID string

	// Title is the short task text.
	Title string

	// Description is optional supporting detail.
	Description string

	// Difficulty is the gentleness tier.
	Difficulty Difficulty

	// Completed is the completion flag.
	Completed bool

	// ReminderTime is an optional "HH:MM" local clock time (no date).
	ReminderTime string

	// Notified guards against a reminder firing more than once.
	Notified bool

	// CreatedAt is when the task was created.
	CreatedAt time.Time
}

// New creates a user-originated task: gentle difficulty, not notified.
func New(title, reminderTime string) *Task {
	return &Task{
		ID:           uuid.New().String(),
		Title:        title,
		Difficulty:   DifficultyGentle,
		ReminderTime: reminderTime,
		CreatedAt:    time.Now(),
	}
}

// NewGenerated creates an AI-suggested task. Generated tasks carry no
// reminder time.
func NewGenerated(title, description, difficulty string) *Task {
	return &Task{
		ID:          uuid.New().String(),
		Title:       title,
		Description: description,
		Difficulty:  ParseDifficulty(difficulty),
		CreatedAt:   time.Now(),
	}
}
