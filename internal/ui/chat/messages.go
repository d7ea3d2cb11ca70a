// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the root Bubble Tea model for the lumi TUI.
//
// This file defines the Bubble Tea message types used by the view:
//   - Gateway results: chat reply, generated tasks, motivation quote
//   - Reminders: a fired reminder event forwarded from the scheduler
//   - Dictation: the single-utterance transcript or error
//   - Settings: configuration reloaded from disk
package chat

import (
	"github.com/jeranaias/lumi-tui/internal/config"
	"github.com/jeranaias/lumi-tui/internal/gateway"
	"github.com/jeranaias/lumi-tui/internal/tasks"
)

// TurnReplyMsg delivers the result of a chat turn.
type TurnReplyMsg struct {
	Text string
	Err  error
}

// TasksGeneratedMsg delivers AI-suggested tasks. Suggestions may be
// empty on a swallowed parse failure.
type TasksGeneratedMsg struct {
	Suggestions []gateway.TaskSuggestion
	Err         error
}

// MotivationMsg delivers a motivational quote.
type MotivationMsg struct {
	Text string
	Err  error
}

// ReminderFiredMsg is forwarded from the reminder scheduler when a
// task's reminder time matches the current minute.
type ReminderFiredMsg struct {
	Task tasks.Task
}

// DictationResultMsg delivers the transcript of a single dictation
// utterance, or the reason it failed.
type DictationResultMsg struct {
	Transcript string
	Err        error
}

// ConfigReloadedMsg signals that the settings file changed on disk and
// was reloaded.
type ConfigReloadedMsg struct {
	Cfg config.Config
}
