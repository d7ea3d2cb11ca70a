// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	"github.com/jeranaias/lumi-tui/internal/tasks"
	"github.com/jeranaias/lumi-tui/internal/ui/styles"
)

func TestReminderToast_LastWriteWins(t *testing.T) {
	var toast ReminderToast

	toast.Show(tasks.Task{ID: "1", Title: "first"})
	toast.Show(tasks.Task{ID: "2", Title: "second"})

	active := toast.Active()
	if active == nil || active.ID != "2" {
		t.Fatalf("active = %+v, a newer reminder overwrites the slot", active)
	}
}

func TestReminderToast_Dismiss(t *testing.T) {
	var toast ReminderToast
	toast.Show(tasks.Task{ID: "1", Title: "stretch"})
	toast.Dismiss()
	if toast.Active() != nil {
		t.Error("dismiss must clear the slot")
	}
	// Dismissing an empty slot is a no-op.
	toast.Dismiss()
}

func TestReminderToast_DismissIf(t *testing.T) {
	var toast ReminderToast
	toast.Show(tasks.Task{ID: "1", Title: "stretch"})

	if toast.DismissIf("other") {
		t.Error("DismissIf must not clear a different task")
	}
	if toast.Active() == nil {
		t.Fatal("slot should survive a non-matching DismissIf")
	}
	if !toast.DismissIf("1") {
		t.Error("DismissIf should report the dismissal")
	}
	if toast.Active() != nil {
		t.Error("slot should be empty after a matching DismissIf")
	}
}

func TestReminderToast_View(t *testing.T) {
	theme := styles.NewTheme(false)

	var toast ReminderToast
	if toast.View(theme, 80) != "" {
		t.Error("empty slot renders nothing")
	}

	toast.Show(tasks.Task{ID: "1", Title: "drink water", Description: "a whole glass"})
	out := toast.View(theme, 80)
	if !strings.Contains(out, "drink water") || !strings.Contains(out, "a whole glass") {
		t.Errorf("toast view missing content:\n%s", out)
	}
}
