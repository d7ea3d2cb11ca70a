// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package notify raises system-level notifications and audible cues
// from the terminal.
//
// Modern terminal emulators surface OSC 777 (and some OSC 9) escape
// sequences as desktop notifications. Terminals that do not support the
// sequence ignore it silently, which is the permission-not-granted
// analog: the reminder still reaches the user through the in-app toast.
package notify

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Notifier writes notification escape sequences to a terminal.
type Notifier struct {
	out     io.Writer
	enabled bool
}

// NewTerminalNotifier creates a notifier bound to stderr. Notifications
// are only emitted when stderr is attached to a terminal; writing
// escape sequences into a pipe would corrupt downstream consumers.
func NewTerminalNotifier() *Notifier {
	return &Notifier{
		out:     os.Stderr,
		enabled: term.IsTerminal(int(os.Stderr.Fd())),
	}
}

// NewWriterNotifier creates a notifier over an arbitrary writer.
// Used in tests.
func NewWriterNotifier(w io.Writer) *Notifier {
	return &Notifier{out: w, enabled: true}
}

// Notify raises a system-level notification with a title and body.
func (n *Notifier) Notify(title, body string) {
	if !n.enabled {
		return
	}
	// OSC 777 is the freedesktop notification sequence; strip control
	// characters so the payload cannot terminate the sequence early.
	fmt.Fprintf(n.out, "\x1b]777;notify;%s;%s\x1b\\", sanitize(title), sanitize(body))
}

// Beep plays a short audible cue via the terminal bell.
func (n *Notifier) Beep() {
	if !n.enabled {
		return
	}
	fmt.Fprint(n.out, "\a")
}

// sanitize removes bytes that would break out of the escape sequence.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
}
