// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/lumi-tui/internal/config"
	"github.com/jeranaias/lumi-tui/internal/gateway"
	"github.com/jeranaias/lumi-tui/internal/model"
	"github.com/jeranaias/lumi-tui/internal/speech"
)

// =============================================================================
// GATEWAY COMMANDS
// =============================================================================
//
// Each command runs one independent network call. Calls are not
// deduplicated or serialized against each other, and carry no timeout
// beyond the provider client's own: a hung call leaves its loading
// indicator active until it returns.

// sendTurnCmd sends a chat turn to the provider.
func sendTurnCmd(gw gateway.Provider, text string, att *model.Attachment, history []*model.Message, cfg config.Config) tea.Cmd {
	return func() tea.Msg {
		reply, err := gw.SendTurn(context.Background(), text, att, history, cfg)
		return TurnReplyMsg{Text: reply, Err: err}
	}
}

// generateTasksCmd asks the provider for three suggested tasks.
func generateTasksCmd(gw gateway.Provider, moodContext string, cfg config.Config) tea.Cmd {
	return func() tea.Msg {
		suggestions, err := gw.GenerateTasks(context.Background(), moodContext, cfg)
		return TasksGeneratedMsg{Suggestions: suggestions, Err: err}
	}
}

// motivationCmd asks the provider for a motivational quote.
func motivationCmd(gw gateway.Provider, cfg config.Config) tea.Cmd {
	return func() tea.Msg {
		quote, err := gw.GenerateMotivation(context.Background(), cfg)
		return MotivationMsg{Text: quote, Err: err}
	}
}

// =============================================================================
// DICTATION COMMAND
// =============================================================================

// listenCmd starts a single-utterance dictation and waits for its one
// result or error callback.
func listenCmd(r speech.Recognizer) tea.Cmd {
	return func() tea.Msg {
		ch := make(chan DictationResultMsg, 1)
		err := r.Start(
			func(transcript string) { ch <- DictationResultMsg{Transcript: transcript} },
			func(err error) { ch <- DictationResultMsg{Err: err} },
		)
		if err != nil {
			return DictationResultMsg{Err: err}
		}
		return <-ch
	}
}
