// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/lumi-tui/internal/config"
	"github.com/jeranaias/lumi-tui/internal/ui/styles"
)

// =============================================================================
// SETTINGS PANEL
// =============================================================================

// settingsField identifies the focused row in the panel.
type settingsField int

const (
	fieldProvider settingsField = iota
	fieldModel
	fieldKey
	fieldCount
)

// SettingsPanel is the modal editor for provider, model, and API key.
// It edits a scratch copy; nothing persists until the user confirms.
type SettingsPanel struct {
	theme *styles.Theme
	width int

	open     bool
	focus    settingsField
	provider config.Provider
	modelIdx int
	keyInput textinput.Model
}

// NewSettingsPanel creates the settings panel.
func NewSettingsPanel(theme *styles.Theme) *SettingsPanel {
	ti := textinput.New()
	ti.Placeholder = "paste API key"
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'
	ti.CharLimit = 256
	return &SettingsPanel{theme: theme, keyInput: ti}
}

// SetTheme swaps the theme.
func (sp *SettingsPanel) SetTheme(theme *styles.Theme) {
	sp.theme = theme
}

// SetWidth sets the render width.
func (sp *SettingsPanel) SetWidth(width int) {
	sp.width = width
}

// IsOpen reports whether the panel is visible.
func (sp *SettingsPanel) IsOpen() bool {
	return sp.open
}

// Open loads the current settings into the panel.
func (sp *SettingsPanel) Open(cfg config.Config) {
	sp.open = true
	sp.focus = fieldProvider
	sp.provider = cfg.Provider
	sp.modelIdx = modelIndex(cfg.Provider, cfg.ModelID)
	sp.keyInput.SetValue(cfg.Key())
	sp.keyInput.Blur()
}

// Close hides the panel without applying changes.
func (sp *SettingsPanel) Close() {
	sp.open = false
}

// Update handles a key press while the panel is open. When the user
// confirms, it returns a mutation to apply to the settings store.
func (sp *SettingsPanel) Update(msg tea.KeyMsg) (apply func(*config.Config), done bool) {
	switch msg.Type {
	case tea.KeyEsc:
		sp.Close()
		return nil, true

	case tea.KeyEnter:
		sp.open = false
		provider := sp.provider
		modelID := modelAt(provider, sp.modelIdx)
		key := strings.TrimSpace(sp.keyInput.Value())
		return func(c *config.Config) {
			c.Provider = provider
			c.ModelID = modelID
			c.SetKey(key)
		}, true

	case tea.KeyTab, tea.KeyDown:
		sp.setFocus((sp.focus + 1) % fieldCount)
		return nil, false

	case tea.KeyShiftTab, tea.KeyUp:
		sp.setFocus((sp.focus + fieldCount - 1) % fieldCount)
		return nil, false
	}

	switch sp.focus {
	case fieldProvider:
		if msg.Type == tea.KeyLeft || msg.Type == tea.KeyRight {
			sp.toggleProvider()
		}
	case fieldModel:
		switch msg.Type {
		case tea.KeyLeft:
			sp.moveModel(-1)
		case tea.KeyRight:
			sp.moveModel(1)
		}
	case fieldKey:
		sp.keyInput, _ = sp.keyInput.Update(msg)
	}
	return nil, false
}

func (sp *SettingsPanel) setFocus(f settingsField) {
	sp.focus = f
	if f == fieldKey {
		sp.keyInput.Focus()
	} else {
		sp.keyInput.Blur()
	}
}

func (sp *SettingsPanel) toggleProvider() {
	if sp.provider == config.ProviderGemini {
		sp.provider = config.ProviderOpenAI
	} else {
		sp.provider = config.ProviderGemini
	}
	sp.modelIdx = 0
}

func (sp *SettingsPanel) moveModel(delta int) {
	opts := config.AvailableModels[sp.provider]
	if len(opts) == 0 {
		return
	}
	sp.modelIdx = (sp.modelIdx + delta + len(opts)) % len(opts)
}

// View renders the panel.
func (sp *SettingsPanel) View() string {
	if !sp.open {
		return ""
	}

	rows := []string{
		sp.theme.SettingsTitle.Render("Settings"),
		"",
		sp.row(fieldProvider, "Provider", string(sp.provider)),
		sp.row(fieldModel, "Model", modelName(sp.provider, sp.modelIdx)),
		sp.row(fieldKey, "API key", sp.keyInput.View()),
		"",
		sp.theme.Muted.Render("←/→ change  tab next  enter save  esc cancel"),
	}
	return sp.theme.SettingsBox.MaxWidth(sp.width).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (sp *SettingsPanel) row(f settingsField, label, value string) string {
	marker := "  "
	valueStyle := sp.theme.SettingsValue
	if sp.focus == f {
		marker = "> "
		valueStyle = sp.theme.SettingsSelected
	}
	return marker + sp.theme.SettingsLabel.Render(label+": ") + valueStyle.Render(value)
}

// =============================================================================
// MODEL CATALOG HELPERS
// =============================================================================

func modelIndex(p config.Provider, modelID string) int {
	for i, opt := range config.AvailableModels[p] {
		if opt.ID == modelID {
			return i
		}
	}
	return 0
}

func modelAt(p config.Provider, idx int) string {
	opts := config.AvailableModels[p]
	if len(opts) == 0 {
		return ""
	}
	if idx < 0 || idx >= len(opts) {
		idx = 0
	}
	return opts[idx].ID
}

func modelName(p config.Provider, idx int) string {
	opts := config.AvailableModels[p]
	if len(opts) == 0 {
		return "(none)"
	}
	if idx < 0 || idx >= len(opts) {
		idx = 0
	}
	return opts[idx].Name
}
