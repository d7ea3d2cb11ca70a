// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides reusable UI components for the TUI.
package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/lumi-tui/internal/tasks"
	"github.com/jeranaias/lumi-tui/internal/ui/styles"
	"github.com/jeranaias/lumi-tui/internal/util"
)

// =============================================================================
// REMINDER TOAST
// =============================================================================

// ReminderToast is the single in-app slot for a fired reminder. Only
// one task can be active at a time: a second reminder arriving before
// the first is dismissed overwrites the slot (last-write-wins, not a
// queue).
type ReminderToast struct {
	active *tasks.Task
}

// Show places a task in the toast slot, replacing any current one.
func (rt *ReminderToast) Show(task tasks.Task) {
	t := task
	rt.active = &t
}

// Dismiss clears the toast slot.
func (rt *ReminderToast) Dismiss() {
	rt.active = nil
}

// Active returns the task currently shown, or nil.
func (rt *ReminderToast) Active() *tasks.Task {
	return rt.active
}

// DismissIf clears the slot when it shows the given task ID. Returns
// true if the toast was dismissed.
func (rt *ReminderToast) DismissIf(taskID string) bool {
	if rt.active != nil && rt.active.ID == taskID {
		rt.active = nil
		return true
	}
	return false
}

// View renders the toast, or an empty string when the slot is free.
func (rt *ReminderToast) View(theme *styles.Theme, width int) string {
	if rt.active == nil {
		return ""
	}

	title := theme.ToastTitle.Render("⏰ " + util.TruncateWidth(rt.active.Title, width-12))
	body := rt.active.Description
	if body == "" {
		body = "It's time for this gentle step."
	}
	hint := theme.Muted.Render("esc: dismiss  /done <n>: complete")

	content := lipgloss.JoinVertical(lipgloss.Left,
		title,
		util.TruncateWidth(body, width-8),
		hint,
	)
	return theme.ToastBox.MaxWidth(width).Render(content)
}
