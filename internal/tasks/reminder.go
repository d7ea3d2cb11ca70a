// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package tasks

import (
	"context"
	"time"
)

// =============================================================================
// TIME MATCHING
// =============================================================================

// DefaultCheckInterval is how often the scheduler compares wall-clock
// time against task reminder times.
const DefaultCheckInterval = 5 * time.Second

// ClockMinute formats a time as the "HH:MM" local clock string used by
// reminder times.
func ClockMinute(now time.Time) string {
	return now.Format("15:04")
}

// Due returns the tasks whose reminder time matches now at minute
// granularity and that are neither completed nor already notified.
// Pure function: marking and side effects belong to the scheduler.
func Due(now time.Time, snapshot []Task) []Task {
	minute := ClockMinute(now)
	var due []Task
	for _, t := range snapshot {
		if t.ReminderTime == minute && !t.Completed && !t.Notified {
			due = append(due, t)
		}
	}
	return due
}

// =============================================================================
// REMINDER SCHEDULER
// =============================================================================

// Notifier receives the effectful half of a fired reminder: the audible
// cue and, where the host environment supports it, a system-level
// notification.
type Notifier interface {
	// Notify raises a system-level notification.
	Notify(title, body string)

	// Beep plays a short audible cue.
	Beep()
}

// Event is delivered once per fired reminder. The UI shows the task in
// its single toast slot; a later event overwrites an undismissed one
// (last-write-wins, not a queue).
type Event struct {
	Task Task
}

// Scheduler runs the recurring reminder check on its own timer,
// independent of any in-flight network activity. Missed minutes are
// never retried: if the interval skips past a target minute, that
// reminder is silently dropped.
type Scheduler struct {
	store    *Store
	notifier Notifier
	interval time.Duration
	events   chan Event
}

// NewScheduler creates a reminder scheduler over the given store.
func NewScheduler(store *Store, notifier Notifier) *Scheduler {
	return NewSchedulerWithInterval(store, notifier, DefaultCheckInterval)
}

// NewSchedulerWithInterval creates a scheduler with a custom check
// interval. Used in tests.
func NewSchedulerWithInterval(store *Store, notifier Notifier, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = DefaultCheckInterval
	}
	return &Scheduler{
		store:    store,
		notifier: notifier,
		interval: interval,
		events:   make(chan Event, 8),
	}
}

// Events returns the channel the UI drains for reminder toasts.
func (s *Scheduler) Events() <-chan Event {
	return s.events
}

// Run checks reminders until the context is canceled. It blocks and is
// meant to be started as a goroutine.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.Check(now)
		}
	}
}

// Check fires every due reminder for the given instant: marks the task
// notified first (so a re-check within the same minute cannot fire
// again), then raises the notification, cue, and toast event.
func (s *Scheduler) Check(now time.Time) {
	for _, task := range Due(now, s.store.All()) {
		s.store.MarkNotified(task.ID)
		task.Notified = true

		if s.notifier != nil {
			body := task.Description
			if body == "" {
				body = "It's time for this gentle step."
			}
			s.notifier.Notify("Lumi: "+task.Title, body)
			s.notifier.Beep()
		}

		// Drop rather than block: the toast slot is last-write-wins
		// and the task is already marked notified.
		select {
		case s.events <- Event{Task: task}:
		default:
		}
	}
}
