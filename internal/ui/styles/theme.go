// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the lumi TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// =============================================================================
// PALETTE
// =============================================================================

// palette holds the color set for one display mode.
type palette struct {
	Accent      lipgloss.Color // brand / headers
	AccentSoft  lipgloss.Color // secondary accent
	Text        lipgloss.Color
	TextMuted   lipgloss.Color
	Surface     lipgloss.Color
	UserBorder  lipgloss.Color
	ModelBorder lipgloss.Color
	Danger      lipgloss.Color
	Success     lipgloss.Color
	Warning     lipgloss.Color
}

var lightPalette = palette{
	Accent:      lipgloss.Color("#8b5cf6"),
	AccentSoft:  lipgloss.Color("#06b6d4"),
	Text:        lipgloss.Color("#1f2937"),
	TextMuted:   lipgloss.Color("#6b7280"),
	Surface:     lipgloss.Color("#f3f4f6"),
	UserBorder:  lipgloss.Color("#8b5cf6"),
	ModelBorder: lipgloss.Color("#06b6d4"),
	Danger:      lipgloss.Color("#e11d48"),
	Success:     lipgloss.Color("#059669"),
	Warning:     lipgloss.Color("#d97706"),
}

var darkPalette = palette{
	Accent:      lipgloss.Color("#a78bfa"),
	AccentSoft:  lipgloss.Color("#22d3ee"),
	Text:        lipgloss.Color("#e5e7eb"),
	TextMuted:   lipgloss.Color("#9ca3af"),
	Surface:     lipgloss.Color("#1f2937"),
	UserBorder:  lipgloss.Color("#a78bfa"),
	ModelBorder: lipgloss.Color("#22d3ee"),
	Danger:      lipgloss.Color("#fb7185"),
	Success:     lipgloss.Color("#34d399"),
	Warning:     lipgloss.Color("#fbbf24"),
}

// =============================================================================
// THEME
// =============================================================================

// Theme holds all the styled components for the application.
type Theme struct {
	IsDark       bool
	ColorProfile termenv.Profile

	// Header
	Header      lipgloss.Style
	HeaderTitle lipgloss.Style
	HeaderMode  lipgloss.Style

	// Message bubbles
	UserBubble  lipgloss.Style
	ModelBubble lipgloss.Style
	RoleLabel   lipgloss.Style
	Timestamp   lipgloss.Style

	// Attachment chip
	AttachmentChip lipgloss.Style

	// Input area
	InputContainer lipgloss.Style
	InputPrompt    lipgloss.Style
	Listening      lipgloss.Style

	// Task list
	TaskTitle     lipgloss.Style
	TaskDone      lipgloss.Style
	TaskMeta      lipgloss.Style
	TaskReminder  lipgloss.Style
	TaskGentle    lipgloss.Style
	TaskModerate  lipgloss.Style
	TaskChallenge lipgloss.Style

	// Toast
	ToastBox   lipgloss.Style
	ToastTitle lipgloss.Style

	// Settings panel
	SettingsBox      lipgloss.Style
	SettingsTitle    lipgloss.Style
	SettingsLabel    lipgloss.Style
	SettingsValue    lipgloss.Style
	SettingsSelected lipgloss.Style

	// Status / feedback
	StatusBar lipgloss.Style
	Spinner   lipgloss.Style
	ErrorText lipgloss.Style
	Muted     lipgloss.Style
}

// NewTheme creates a theme for the requested display mode.
func NewTheme(dark bool) *Theme {
	p := lightPalette
	if dark {
		p = darkPalette
	}

	t := &Theme{
		IsDark:       dark,
		ColorProfile: termenv.ColorProfile(),
	}

	t.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Accent).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.Accent).
		Padding(0, 2)

	t.HeaderTitle = lipgloss.NewStyle().Bold(true).Foreground(p.Accent)
	t.HeaderMode = lipgloss.NewStyle().Foreground(p.AccentSoft).Bold(true)

	t.UserBubble = lipgloss.NewStyle().
		Foreground(p.Text).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.UserBorder).
		Padding(0, 1).
		MarginLeft(4)

	t.ModelBubble = lipgloss.NewStyle().
		Foreground(p.Text).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.ModelBorder).
		Padding(0, 1).
		MarginRight(4)

	t.RoleLabel = lipgloss.NewStyle().Bold(true).Foreground(p.AccentSoft)
	t.Timestamp = lipgloss.NewStyle().Foreground(p.TextMuted)

	t.AttachmentChip = lipgloss.NewStyle().
		Foreground(p.AccentSoft).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(p.AccentSoft).
		Padding(0, 1)

	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(p.TextMuted).
		Padding(0, 1)

	t.InputPrompt = lipgloss.NewStyle().Foreground(p.Accent).Bold(true)
	t.Listening = lipgloss.NewStyle().Foreground(p.Danger).Bold(true).Blink(true)

	t.TaskTitle = lipgloss.NewStyle().Foreground(p.Text)
	t.TaskDone = lipgloss.NewStyle().Foreground(p.TextMuted).Strikethrough(true)
	t.TaskMeta = lipgloss.NewStyle().Foreground(p.TextMuted)
	t.TaskReminder = lipgloss.NewStyle().Foreground(p.Warning)
	t.TaskGentle = lipgloss.NewStyle().Foreground(p.Success)
	t.TaskModerate = lipgloss.NewStyle().Foreground(p.Warning)
	t.TaskChallenge = lipgloss.NewStyle().Foreground(p.Danger)

	t.ToastBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.Warning).
		Padding(0, 2)
	t.ToastTitle = lipgloss.NewStyle().Bold(true).Foreground(p.Warning)

	t.SettingsBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(p.Accent).
		Padding(1, 2)
	t.SettingsTitle = lipgloss.NewStyle().Bold(true).Foreground(p.Accent)
	t.SettingsLabel = lipgloss.NewStyle().Foreground(p.TextMuted)
	t.SettingsValue = lipgloss.NewStyle().Foreground(p.Text)
	t.SettingsSelected = lipgloss.NewStyle().Foreground(p.AccentSoft).Bold(true)

	t.StatusBar = lipgloss.NewStyle().
		Background(p.Surface).
		Foreground(p.TextMuted).
		Padding(0, 1)
	t.Spinner = lipgloss.NewStyle().Foreground(p.Accent)
	t.ErrorText = lipgloss.NewStyle().Foreground(p.Danger)
	t.Muted = lipgloss.NewStyle().Foreground(p.TextMuted)

	return t
}

// DetectDark reports whether the terminal background is dark, used as
// the theme default when no preference is persisted.
func DetectDark() bool {
	return termenv.HasDarkBackground()
}
