// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/lumi-tui/internal/tasks"
	"github.com/jeranaias/lumi-tui/internal/ui/styles"
	"github.com/jeranaias/lumi-tui/internal/util"
)

// =============================================================================
// TASK LIST COMPONENT
// =============================================================================

// TaskList renders the task view.
type TaskList struct {
	theme *styles.Theme
	width int
}

// NewTaskList creates a new task list component.
func NewTaskList(theme *styles.Theme) *TaskList {
	return &TaskList{theme: theme}
}

// SetTheme swaps the theme (light/dark toggle).
func (tl *TaskList) SetTheme(theme *styles.Theme) {
	tl.theme = theme
}

// SetWidth sets the render width.
func (tl *TaskList) SetWidth(width int) {
	tl.width = width
}

// View renders the task list. Tasks are numbered in display order so
// the /done and /rm commands can reference them.
func (tl *TaskList) View(snapshot []tasks.Task) string {
	if len(snapshot) == 0 {
		return tl.renderEmpty()
	}

	var sb strings.Builder
	for i, task := range snapshot {
		sb.WriteString(tl.renderTask(i+1, task))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(tl.theme.Muted.Render("/add <title> [HH:MM]  /done <n>  /rm <n>  /suggest"))
	return sb.String()
}

// renderEmpty renders the empty state.
func (tl *TaskList) renderEmpty() string {
	return lipgloss.NewStyle().
		Italic(true).
		Padding(2).
		Width(tl.width).
		Align(lipgloss.Center).
		Render("No tasks yet. Try /add <title>, or /suggest for three gentle ideas. 🌿")
}

// renderTask renders one task line.
func (tl *TaskList) renderTask(n int, task tasks.Task) string {
	check := "[ ]"
	titleStyle := tl.theme.TaskTitle
	if task.Completed {
		check = "[x]"
		titleStyle = tl.theme.TaskDone
	}

	line := fmt.Sprintf("%2d. %s %s", n, check, titleStyle.Render(util.TruncateWidth(task.Title, tl.width-24)))

	var meta []string
	if task.Difficulty != "" {
		meta = append(meta, tl.difficultyStyle(task.Difficulty).Render(task.Difficulty.String()))
	}
	if task.ReminderTime != "" {
		meta = append(meta, tl.theme.TaskReminder.Render("⏰ "+task.ReminderTime))
	}
	if len(meta) > 0 {
		line += "  " + strings.Join(meta, " ")
	}

	if task.Description != "" {
		line += "\n      " + tl.theme.TaskMeta.Render(util.TruncateWidth(task.Description, tl.width-8))
	}
	return line
}

// difficultyStyle maps a difficulty tier to its color.
func (tl *TaskList) difficultyStyle(d tasks.Difficulty) lipgloss.Style {
	switch d {
	case tasks.DifficultyModerate:
		return tl.theme.TaskModerate
	case tasks.DifficultyChallenge:
		return tl.theme.TaskChallenge
	default:
		return tl.theme.TaskGentle
	}
}
