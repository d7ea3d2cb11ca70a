// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package tasks

import "sync"

// =============================================================================
// TASK STORE
// =============================================================================

// Store holds the task list. All operations are synchronous and local.
// The mutex exists because the reminder scheduler reads and marks tasks
// from its own goroutine while the UI mutates the list.
//
// Remove and ToggleComplete on a missing ID are no-ops, not errors.
type Store struct {
	mu    sync.RWMutex
	tasks []*Task
}

// NewStore creates an empty task store.
func NewStore() *Store {
	return &Store{}
}

// Add creates a user task and prepends it to the list. Returns a copy
// of the created task.
func (s *Store) Add(title, reminderTime string) Task {
	task := New(title, reminderTime)
	s.mu.Lock()
	s.tasks = append([]*Task{task}, s.tasks...)
	s.mu.Unlock()
	return *task
}

// AppendGenerated adds AI-suggested tasks to the end of the list
// without disturbing existing ones.
func (s *Store) AppendGenerated(generated []*Task) {
	if len(generated) == 0 {
		return
	}
	s.mu.Lock()
	s.tasks = append(s.tasks, generated...)
	s.mu.Unlock()
}

// Replace swaps in a full task list (used when loading persisted tasks
// at startup).
func (s *Store) Replace(loaded []*Task) {
	s.mu.Lock()
	s.tasks = loaded
	s.mu.Unlock()
}

// Remove deletes a task by ID. Removing a missing ID is a no-op.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.tasks {
		if t.ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return
		}
	}
}

// ToggleComplete flips a task's completion flag. Returns the new value
// and whether the task exists; a missing ID is a no-op.
func (s *Store) ToggleComplete(id string) (completed bool, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tasks {
		if t.ID == id {
			t.Completed = !t.Completed
			return t.Completed, true
		}
	}
	return false, false
}

// SetReminder sets (or clears) a task's reminder time and re-arms it by
// resetting the notified flag. Returns false for a missing ID.
func (s *Store) SetReminder(id, reminderTime string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tasks {
		if t.ID == id {
			t.ReminderTime = reminderTime
			t.Notified = false
			return true
		}
	}
	return false
}

// MarkNotified sets a task's notified flag, preventing its reminder
// from firing again.
func (s *Store) MarkNotified(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tasks {
		if t.ID == id {
			t.Notified = true
			return
		}
	}
}

// Get returns a copy of a task by ID.
func (s *Store) Get(id string) (Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tasks {
		if t.ID == id {
			return *t, true
		}
	}
	return Task{}, false
}

// All returns a snapshot of the task list, in display order.
func (s *Store) All() []Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Task, len(s.tasks))
	for i, t := range s.tasks {
		out[i] = *t
	}
	return out
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}
