// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package tasks

import (
	"testing"
	"time"
)

// recordingNotifier captures notifications for assertions.
type recordingNotifier struct {
	titles []string
	bodies []string
	beeps  int
}

func (r *recordingNotifier) Notify(title, body string) {
	r.titles = append(r.titles, title)
	r.bodies = append(r.bodies, body)
}

func (r *recordingNotifier) Beep() { r.beeps++ }

func at(hhmm string) time.Time {
	ts, _ := time.Parse("15:04", hhmm)
	return ts
}

func TestDue_MinuteMatch(t *testing.T) {
	tests := []struct {
		name string
		now  string
		task Task
		due  bool
	}{
		{name: "exact minute", now: "08:30", task: Task{ReminderTime: "08:30"}, due: true},
		{name: "different minute", now: "08:31", task: Task{ReminderTime: "08:30"}, due: false},
		{name: "no reminder", now: "08:30", task: Task{}, due: false},
		{name: "completed", now: "08:30", task: Task{ReminderTime: "08:30", Completed: true}, due: false},
		{name: "already notified", now: "08:30", task: Task{ReminderTime: "08:30", Notified: true}, due: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Due(at(tt.now), []Task{tt.task})
			if (len(got) == 1) != tt.due {
				t.Errorf("Due() = %v, want due=%v", got, tt.due)
			}
		})
	}
}

func TestDue_SecondsWithinMinuteStillMatch(t *testing.T) {
	now := at("08:30").Add(42 * time.Second)
	if got := Due(now, []Task{{ReminderTime: "08:30"}}); len(got) != 1 {
		t.Error("any instant within the target minute is due")
	}
}

func TestScheduler_FiresOncePerTask(t *testing.T) {
	store := NewStore()
	task := store.Add("stretch", "08:30")

	notifier := &recordingNotifier{}
	sched := NewScheduler(store, notifier)

	// Two checks within the same minute: the second must see the task
	// already notified.
	sched.Check(at("08:30"))
	sched.Check(at("08:30").Add(5 * time.Second))

	if len(notifier.titles) != 1 {
		t.Fatalf("fired %d notifications, want exactly 1", len(notifier.titles))
	}
	if notifier.titles[0] != "Lumi: stretch" {
		t.Errorf("notification title = %q", notifier.titles[0])
	}
	if notifier.beeps != 1 {
		t.Errorf("beeps = %d, want 1", notifier.beeps)
	}

	got, _ := store.Get(task.ID)
	if !got.Notified {
		t.Error("fired task must be marked notified in the store")
	}
}

func TestScheduler_DeliversEvent(t *testing.T) {
	store := NewStore()
	store.Add("drink tea", "14:00")

	sched := NewScheduler(store, &recordingNotifier{})
	sched.Check(at("14:00"))

	select {
	case ev := <-sched.Events():
		if ev.Task.Title != "drink tea" {
			t.Errorf("event task = %q", ev.Task.Title)
		}
		if !ev.Task.Notified {
			t.Error("delivered task copy should carry the notified flag")
		}
	default:
		t.Fatal("expected a reminder event on the channel")
	}
}

func TestScheduler_MissedMinuteNeverRetried(t *testing.T) {
	store := NewStore()
	store.Add("lunch walk", "12:00")

	notifier := &recordingNotifier{}
	sched := NewScheduler(store, notifier)

	// The check interval skipped past 12:00 entirely.
	sched.Check(at("12:01"))
	sched.Check(at("12:02"))

	if len(notifier.titles) != 0 {
		t.Errorf("missed reminders must be dropped, fired %d", len(notifier.titles))
	}
}

func TestScheduler_DefaultBodyWhenDescriptionEmpty(t *testing.T) {
	store := NewStore()
	store.Add("rest", "21:00")

	notifier := &recordingNotifier{}
	NewScheduler(store, notifier).Check(at("21:00"))

	if len(notifier.bodies) != 1 || notifier.bodies[0] != "It's time for this gentle step." {
		t.Errorf("bodies = %v", notifier.bodies)
	}
}

func TestScheduler_NilNotifierStillMarksAndEmits(t *testing.T) {
	store := NewStore()
	task := store.Add("breathe", "09:15")

	sched := NewScheduler(store, nil)
	sched.Check(at("09:15"))

	got, _ := store.Get(task.ID)
	if !got.Notified {
		t.Error("task must be marked even without a notifier")
	}
	select {
	case <-sched.Events():
	default:
		t.Error("event must still be emitted without a notifier")
	}
}
