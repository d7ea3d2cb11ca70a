// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package tasks

import (
	"sync"
	"testing"
)

func TestStore_AddPrepends(t *testing.T) {
	s := NewStore()
	s.Add("first", "")
	s.Add("second", "")

	snapshot := s.All()
	if len(snapshot) != 2 {
		t.Fatalf("Len = %d, want 2", len(snapshot))
	}
	if snapshot[0].Title != "second" || snapshot[1].Title != "first" {
		t.Errorf("new tasks must appear at the top: %q, %q", snapshot[0].Title, snapshot[1].Title)
	}
}

func TestStore_AddDefaults(t *testing.T) {
	s := NewStore()
	task := s.Add("drink water", "08:30")

	if task.ID == "" {
		t.Error("task needs a generated ID")
	}
	if task.Difficulty != DifficultyGentle {
		t.Errorf("difficulty = %q, want Gentle", task.Difficulty)
	}
	if task.Completed || task.Notified {
		t.Error("new task must start uncompleted and unnotified")
	}
	if task.ReminderTime != "08:30" {
		t.Errorf("reminder = %q", task.ReminderTime)
	}
}

func TestStore_AppendGeneratedKeepsOrder(t *testing.T) {
	s := NewStore()
	s.Add("mine", "")
	s.AppendGenerated([]*Task{
		NewGenerated("Stretch", "Just a little", "Gentle"),
		NewGenerated("Open a window", "Fresh air", "Moderate"),
		NewGenerated("Write one sentence", "Any sentence", "Challenge"),
	})

	snapshot := s.All()
	if len(snapshot) != 4 {
		t.Fatalf("Len = %d, want 4", len(snapshot))
	}
	if snapshot[0].Title != "mine" {
		t.Error("generated tasks must not displace existing ones")
	}
	for i, want := range []string{"Stretch", "Open a window", "Write one sentence"} {
		got := snapshot[i+1]
		if got.Title != want {
			t.Errorf("generated[%d] = %q, want %q", i, got.Title, want)
		}
		if got.Completed || got.Notified || got.ReminderTime != "" {
			t.Errorf("generated task %q must start clean with no reminder", got.Title)
		}
	}
}

func TestStore_ToggleCompleteIsAnInverse(t *testing.T) {
	s := NewStore()
	task := s.Add("stretch", "")

	completed, ok := s.ToggleComplete(task.ID)
	if !ok || !completed {
		t.Fatalf("first toggle = (%v, %v)", completed, ok)
	}
	completed, ok = s.ToggleComplete(task.ID)
	if !ok || completed {
		t.Fatalf("second toggle = (%v, %v), want back to uncompleted", completed, ok)
	}

	if _, ok := s.ToggleComplete("no-such-id"); ok {
		t.Error("toggling a missing ID must report not found")
	}
}

func TestStore_RemoveIsIdempotent(t *testing.T) {
	s := NewStore()
	task := s.Add("tidy desk", "")
	other := s.Add("water plant", "")

	s.Remove(task.ID)
	s.Remove(task.ID) // second removal is a no-op
	s.Remove("missing")

	if s.Len() != 1 {
		t.Fatalf("Len = %d, want 1", s.Len())
	}
	if got, _ := s.Get(other.ID); got.Title != "water plant" {
		t.Error("remove must not disturb other tasks")
	}
}

func TestStore_SetReminderRearms(t *testing.T) {
	s := NewStore()
	task := s.Add("stretch", "08:00")
	s.MarkNotified(task.ID)

	if !s.SetReminder(task.ID, "09:15") {
		t.Fatal("SetReminder on an existing ID must succeed")
	}
	got, _ := s.Get(task.ID)
	if got.ReminderTime != "09:15" || got.Notified {
		t.Errorf("task = %+v, want new time with notified reset", got)
	}

	if s.SetReminder("no-such-id", "09:15") {
		t.Error("SetReminder on a missing ID must report false")
	}
}

func TestStore_MarkNotified(t *testing.T) {
	s := NewStore()
	task := s.Add("call a friend", "19:00")

	s.MarkNotified(task.ID)
	got, ok := s.Get(task.ID)
	if !ok || !got.Notified {
		t.Error("MarkNotified must persist on the stored task")
	}
}

func TestStore_AllReturnsCopies(t *testing.T) {
	s := NewStore()
	task := s.Add("original", "")

	snapshot := s.All()
	snapshot[0].Title = "mutated"

	if got, _ := s.Get(task.ID); got.Title != "original" {
		t.Error("mutating a snapshot must not affect the store")
	}
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			task := s.Add("task", "")
			s.ToggleComplete(task.ID)
		}()
		go func() {
			defer wg.Done()
			_ = s.All()
			_ = s.Len()
		}()
	}
	wg.Wait()

	if s.Len() != 50 {
		t.Errorf("Len = %d, want 50", s.Len())
	}
}
