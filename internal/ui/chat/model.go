// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/lumi-tui/internal/config"
	"github.com/jeranaias/lumi-tui/internal/gateway"
	"github.com/jeranaias/lumi-tui/internal/model"
	"github.com/jeranaias/lumi-tui/internal/speech"
	"github.com/jeranaias/lumi-tui/internal/storage"
	"github.com/jeranaias/lumi-tui/internal/tasks"
	"github.com/jeranaias/lumi-tui/internal/ui/components"
	"github.com/jeranaias/lumi-tui/internal/ui/styles"
)

// =============================================================================
// VIEW MODE
// =============================================================================

// Mode is the two-valued view selector.
type Mode int

const (
	ModeChat Mode = iota
	ModeTasks
)

// String returns the display name for the mode.
func (m Mode) String() string {
	if m == ModeTasks {
		return "TASKS"
	}
	return "CHAT"
}

// =============================================================================
// ROOT MODEL
// =============================================================================

// Model is the root Bubble Tea model. It owns no domain data itself:
// conversation, tasks, and settings live in their stores, and the model
// reads and writes them in response to events.
type Model struct {
	// Styling
	theme *styles.Theme

	// Dimensions
	width  int
	height int
	ready  bool

	// View mode
	mode Mode

	// Domain stores
	conversation *model.Conversation
	taskStore    *tasks.Store
	persist      *storage.TaskStore // nil when persistence is unavailable
	settings     *config.Store

	// AI gateway; recreated when the selected provider or the
	// OpenAI-compatible base URL changes.
	gw         gateway.Provider
	gwProvider config.Provider
	gwBaseURL  string

	// External collaborators
	recognizer speech.Recognizer

	// UI components
	viewport      viewport.Model
	input         textinput.Model
	spinner       spinner.Model
	taskList      *components.TaskList
	settingsPanel *components.SettingsPanel
	toast         components.ReminderToast

	// Markdown rendering of model replies
	renderer *glamour.TermRenderer

	// Per-action in-flight flags. Each suppresses only a duplicate
	// submit of the same action; unrelated actions stay available.
	sending    bool
	generating bool
	motivating bool
	listening  bool

	// Pending attachment for the next turn
	attachment *model.Attachment

	// Transient status line (non-chat errors, e.g. a failed export)
	status string
}

// Options configures the root model.
type Options struct {
	Settings   *config.Store
	TaskStore  *tasks.Store
	Persist    *storage.TaskStore
	Recognizer speech.Recognizer
}

// New creates the root model.
func New(opts Options) *Model {
	cfg := opts.Settings.Get()
	theme := styles.NewTheme(cfg.DarkMode())

	ti := textinput.New()
	ti.Placeholder = "Share what's on your mind… (/help for commands)"
	ti.CharLimit = 4000
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Spinner

	m := &Model{
		theme:         theme,
		mode:          ModeChat,
		conversation:  model.NewConversation(),
		taskStore:     opts.TaskStore,
		persist:       opts.Persist,
		settings:      opts.Settings,
		gw:            gateway.New(cfg),
		gwProvider:    cfg.Provider,
		gwBaseURL:     cfg.OpenAIBaseURL,
		recognizer:    opts.Recognizer,
		input:         ti,
		spinner:       sp,
		taskList:      components.NewTaskList(theme),
		settingsPanel: components.NewSettingsPanel(theme),
	}
	return m
}

// Init starts the spinner ticker.
func (m *Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// =============================================================================
// SHARED HELPERS
// =============================================================================

// cfg returns the current settings snapshot.
func (m *Model) cfg() config.Config {
	return m.settings.Get()
}

// ensureGateway recreates the provider client when the selected backend
// or its endpoint changed. Model changes within a provider are handled
// by the client's own session invalidation.
func (m *Model) ensureGateway() {
	cfg := m.cfg()
	if cfg.Provider != m.gwProvider || cfg.OpenAIBaseURL != m.gwBaseURL {
		m.gw = gateway.New(cfg)
		m.gwProvider = cfg.Provider
		m.gwBaseURL = cfg.OpenAIBaseURL
	}
}

// requireKey gates an AI-invoking action: when no credential is
// resolvable it opens the settings panel and reports false. No network
// call is made in that case.
func (m *Model) requireKey() bool {
	cfg := m.cfg()
	if gateway.HasKey(cfg) {
		return true
	}
	m.settingsPanel.Open(cfg)
	return false
}

// applyTheme rebuilds theme-dependent state after a light/dark toggle.
func (m *Model) applyTheme(dark bool) {
	m.theme = styles.NewTheme(dark)
	m.spinner.Style = m.theme.Spinner
	m.taskList.SetTheme(m.theme)
	m.settingsPanel.SetTheme(m.theme)
	m.rebuildRenderer()
	m.refreshViewport()
}

// persistTasks writes the task snapshot through to disk. Persistence
// failures are reported on the status line but never interrupt the
// session.
func (m *Model) persistTasks() {
	if m.persist == nil {
		return
	}
	if err := m.persist.SaveAll(m.taskStore.All()); err != nil {
		m.status = "couldn't save tasks: " + err.Error()
	}
}
