// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package speech defines the speech-to-text contract for dictation.
//
// The recognizer is an external collaborator: start/stop toggle,
// single-utterance, one result callback or one error callback per
// session. The default implementation shells out to a user-configured
// transcriber command; hosts without one report dictation as
// unsupported, matching the capability-missing branch of the UI.
package speech

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"sync"
)

// ErrUnsupported is reported when no transcriber is available.
var ErrUnsupported = errors.New("voice input is not supported in this environment")

// Recognizer captures a single utterance and reports the transcript.
type Recognizer interface {
	// Start begins a single-utterance capture. Exactly one of onResult
	// or onError is invoked, from a background goroutine.
	Start(onResult func(transcript string), onError func(err error)) error

	// Stop aborts an in-progress capture. Stopping when idle is a no-op.
	Stop()
}

// =============================================================================
// COMMAND RECOGNIZER
// =============================================================================

// CommandRecognizer runs an external transcriber command and reads the
// transcript from its stdout.
type CommandRecognizer struct {
	command string

	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewCommandRecognizer creates a recognizer over the given shell
// command. An empty command yields an unsupported recognizer.
func NewCommandRecognizer(command string) *CommandRecognizer {
	return &CommandRecognizer{command: command}
}

// Start launches the transcriber. A second Start while one is running
// is a no-op.
func (r *CommandRecognizer) Start(onResult func(string), onError func(error)) error {
	if strings.TrimSpace(r.command) == "" {
		return ErrUnsupported
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel

	go func() {
		out, err := exec.CommandContext(ctx, "sh", "-c", r.command).Output()
		r.mu.Lock()
		r.cancel = nil
		r.mu.Unlock()

		if ctx.Err() != nil {
			// Stopped by the user; surfaced as context.Canceled so the
			// caller's wait always ends.
			onError(ctx.Err())
			return
		}
		if err != nil {
			onError(err)
			return
		}
		onResult(strings.TrimSpace(string(out)))
	}()
	return nil
}

// Stop aborts the running transcriber, if any.
func (r *CommandRecognizer) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
}
