// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/lumi-tui/internal/config"
	"github.com/jeranaias/lumi-tui/internal/export"
	"github.com/jeranaias/lumi-tui/internal/gateway"
	"github.com/jeranaias/lumi-tui/internal/model"
	"github.com/jeranaias/lumi-tui/internal/tasks"
)

// reminderTimeRe matches a 24h HH:MM clock time.
var reminderTimeRe = regexp.MustCompile(`^([01]?\d|2[0-3]):[0-5]\d$`)

// Update handles all incoming events.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case TurnReplyMsg:
		return m.onTurnReply(msg)

	case TasksGeneratedMsg:
		return m.onTasksGenerated(msg)

	case MotivationMsg:
		return m.onMotivation(msg)

	case ReminderFiredMsg:
		// Single toast slot: a newer reminder overwrites an undismissed
		// older one.
		m.toast.Show(msg.Task)
		return m, nil

	case DictationResultMsg:
		return m.onDictation(msg)

	case ConfigReloadedMsg:
		m.ensureGateway()
		m.applyTheme(msg.Cfg.DarkMode())
		return m, nil

	case tea.KeyMsg:
		return m.onKey(msg)
	}

	return m, nil
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m *Model) onKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The settings panel captures all keys while open.
	if m.settingsPanel.IsOpen() {
		apply, _ := m.settingsPanel.Update(msg)
		if apply != nil {
			if err := m.settings.Update(apply); err != nil {
				m.status = "couldn't save settings: " + err.Error()
			}
			m.ensureGateway()
		}
		return m, nil
	}

	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit

	case tea.KeyEsc:
		if m.toast.Active() != nil {
			m.toast.Dismiss()
			return m, nil
		}
		if m.attachment != nil {
			m.attachment = nil
			m.refreshViewport()
			return m, nil
		}
		return m, nil

	case tea.KeyCtrlT:
		m.toggleMode()
		return m, nil

	case tea.KeyEnter:
		return m.onSubmit()

	case tea.KeyPgUp, tea.KeyPgDown:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// toggleMode flips between the chat and task views.
func (m *Model) toggleMode() {
	if m.mode == ModeChat {
		m.mode = ModeTasks
	} else {
		m.mode = ModeChat
		m.refreshViewport()
	}
}

// =============================================================================
// INPUT SUBMISSION
// =============================================================================

func (m *Model) onSubmit() (tea.Model, tea.Cmd) {
	// A new submit starts with a clean status line; anything this
	// submit has to report overwrites it below.
	m.status = ""
	text := strings.TrimSpace(m.input.Value())

	if strings.HasPrefix(text, "/") {
		m.input.SetValue("")
		return m.runCommand(text)
	}

	return m.sendTurn(text)
}

// sendTurn dispatches a chat turn. Re-submitting while a send is in
// flight is a no-op; unrelated actions are not blocked.
func (m *Model) sendTurn(text string) (tea.Model, tea.Cmd) {
	if (text == "" && m.attachment == nil) || m.sending {
		return m, nil
	}
	if !m.requireKey() {
		return m, nil
	}

	// The context window is captured before the new message is
	// appended; the turn text is sent separately.
	history := m.conversation.Window(model.HistoryWindow)
	historyCopy := make([]*model.Message, len(history))
	copy(historyCopy, history)

	att := m.attachment
	m.conversation.Append(model.NewUserMessage(text, att))
	m.input.SetValue("")
	m.attachment = nil
	m.sending = true
	m.refreshViewport()

	return m, sendTurnCmd(m.gw, text, att, historyCopy, m.cfg())
}

// =============================================================================
// SLASH COMMANDS
// =============================================================================

func (m *Model) runCommand(text string) (tea.Model, tea.Cmd) {
	fields := strings.Fields(text)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "/help":
		m.conversation.Append(model.NewModelMessage(helpText))
		m.mode = ModeChat
		m.refreshViewport()
		return m, nil

	case "/quit":
		return m, tea.Quit

	case "/chat":
		m.mode = ModeChat
		m.refreshViewport()
		return m, nil

	case "/tasks":
		m.mode = ModeTasks
		return m, nil

	case "/settings":
		m.settingsPanel.Open(m.cfg())
		return m, nil

	case "/theme":
		return m.toggleTheme()

	case "/attach":
		return m.attachFile(strings.TrimSpace(strings.TrimPrefix(text, "/attach")))

	case "/dictate":
		return m.toggleDictation()

	case "/suggest":
		return m.generateTasks()

	case "/motivate":
		return m.motivate()

	case "/export":
		path := export.DefaultExportPath()
		if err := export.WriteMarkdown(path, m.conversation.All()); err != nil {
			m.status = "export failed: " + err.Error()
		} else {
			m.status = "conversation exported to " + path
		}
		return m, nil

	case "/add":
		return m.addTask(args)

	case "/remind":
		return m.remindTask(args)

	case "/done":
		return m.completeTask(args)

	case "/rm":
		return m.removeTask(args)

	default:
		m.status = "unknown command " + cmd + " (try /help)"
		return m, nil
	}
}

const helpText = "Here's what I can do, friend. 🤍\n\n" +
	"- **/tasks** and **/chat** switch views (ctrl+t too)\n" +
	"- **/suggest** — three gentle task ideas based on how you feel\n" +
	"- **/motivate** — a little spark of encouragement\n" +
	"- **/add <title> [HH:MM]** — add a task, optionally with a reminder\n" +
	"- **/remind <n> HH:MM** — set or move a reminder on task n\n" +
	"- **/done <n>**, **/rm <n>** — complete or remove task n\n" +
	"- **/attach <path>** — attach an image or audio file to your next message\n" +
	"- **/dictate** — speak instead of typing\n" +
	"- **/settings**, **/theme**, **/export**, **/quit**"

// =============================================================================
// TASK COMMANDS
// =============================================================================

func (m *Model) addTask(args []string) (tea.Model, tea.Cmd) {
	if len(args) == 0 {
		m.status = "usage: /add <title> [HH:MM]"
		return m, nil
	}

	reminder := ""
	if last := args[len(args)-1]; len(args) > 1 && reminderTimeRe.MatchString(last) {
		// Normalize "8:30" to "08:30" so it compares against the
		// zero-padded clock minute.
		if len(last) == 4 {
			last = "0" + last
		}
		reminder = last
		args = args[:len(args)-1]
	}

	m.taskStore.Add(strings.Join(args, " "), reminder)
	m.persistTasks()
	m.mode = ModeTasks
	return m, nil
}

func (m *Model) remindTask(args []string) (tea.Model, tea.Cmd) {
	if len(args) != 2 || !reminderTimeRe.MatchString(args[1]) {
		m.status = "usage: /remind <n> HH:MM"
		return m, nil
	}
	task, ok := m.taskAt(args[:1])
	if !ok {
		return m, nil
	}
	hhmm := args[1]
	if len(hhmm) == 4 {
		hhmm = "0" + hhmm
	}
	m.taskStore.SetReminder(task.ID, hhmm)
	m.persistTasks()
	m.mode = ModeTasks
	return m, nil
}

func (m *Model) completeTask(args []string) (tea.Model, tea.Cmd) {
	task, ok := m.taskAt(args)
	if !ok {
		return m, nil
	}
	m.taskStore.ToggleComplete(task.ID)
	// Completing the task shown in the reminder toast dismisses it.
	m.toast.DismissIf(task.ID)
	m.persistTasks()
	return m, nil
}

func (m *Model) removeTask(args []string) (tea.Model, tea.Cmd) {
	task, ok := m.taskAt(args)
	if !ok {
		return m, nil
	}
	m.taskStore.Remove(task.ID)
	m.toast.DismissIf(task.ID)
	m.persistTasks()
	return m, nil
}

// taskAt resolves a 1-based display index argument to a task.
func (m *Model) taskAt(args []string) (tasks.Task, bool) {
	if len(args) != 1 {
		m.status = "which task? use the number from the list"
		return tasks.Task{}, false
	}
	n, err := strconv.Atoi(args[0])
	snapshot := m.taskStore.All()
	if err != nil || n < 1 || n > len(snapshot) {
		m.status = "no task " + args[0]
		return tasks.Task{}, false
	}
	return snapshot[n-1], true
}

// =============================================================================
// AI ACTIONS
// =============================================================================

func (m *Model) generateTasks() (tea.Model, tea.Cmd) {
	if m.generating {
		return m, nil
	}
	if !m.requireKey() {
		return m, nil
	}
	m.generating = true
	m.mode = ModeTasks
	mood := m.conversation.LastUserText(gateway.DefaultMoodContext)
	return m, generateTasksCmd(m.gw, mood, m.cfg())
}

func (m *Model) motivate() (tea.Model, tea.Cmd) {
	if m.motivating {
		return m, nil
	}
	if !m.requireKey() {
		return m, nil
	}
	m.motivating = true
	m.mode = ModeChat
	m.refreshViewport()
	return m, motivationCmd(m.gw, m.cfg())
}

// =============================================================================
// ATTACHMENT AND DICTATION
// =============================================================================

func (m *Model) attachFile(path string) (tea.Model, tea.Cmd) {
	if path == "" {
		m.status = "usage: /attach <path>"
		return m, nil
	}
	att, err := model.NewAttachmentFromFile(path)
	if err != nil {
		m.status = err.Error()
		return m, nil
	}
	m.attachment = att
	m.mode = ModeChat
	m.refreshViewport()
	return m, nil
}

func (m *Model) toggleDictation() (tea.Model, tea.Cmd) {
	if m.recognizer == nil {
		m.status = "voice input is not available"
		return m, nil
	}
	if m.listening {
		m.recognizer.Stop()
		m.listening = false
		return m, nil
	}
	m.listening = true
	return m, listenCmd(m.recognizer)
}

func (m *Model) onDictation(msg DictationResultMsg) (tea.Model, tea.Cmd) {
	m.listening = false
	if msg.Err != nil {
		if !errors.Is(msg.Err, context.Canceled) {
			m.status = "dictation failed: " + msg.Err.Error()
		}
		return m, nil
	}
	if msg.Transcript != "" {
		if cur := m.input.Value(); cur != "" {
			m.input.SetValue(cur + " " + msg.Transcript)
		} else {
			m.input.SetValue(msg.Transcript)
		}
		m.input.CursorEnd()
	}
	return m, nil
}

// =============================================================================
// GATEWAY RESULTS
// =============================================================================

func (m *Model) onTurnReply(msg TurnReplyMsg) (tea.Model, tea.Cmd) {
	m.sending = false
	if msg.Err != nil {
		if gateway.IsKeyMissing(msg.Err) {
			m.settingsPanel.Open(m.cfg())
			m.refreshViewport()
			return m, nil
		}
		// Provider failures stay inside the conversation: the reply
		// slot becomes a model message embedding the reason.
		m.conversation.Append(model.NewModelMessage(
			"I'm having a little trouble connecting. \n\n**Reason:** " + msg.Err.Error()))
		m.refreshViewport()
		return m, nil
	}
	m.conversation.Append(model.NewModelMessage(msg.Text))
	m.refreshViewport()
	return m, nil
}

func (m *Model) onTasksGenerated(msg TasksGeneratedMsg) (tea.Model, tea.Cmd) {
	m.generating = false
	if msg.Err != nil {
		if gateway.IsKeyMissing(msg.Err) {
			m.settingsPanel.Open(m.cfg())
		}
		return m, nil
	}
	if len(msg.Suggestions) == 0 {
		// Swallowed parse failure: no new tasks, loading simply ends.
		return m, nil
	}
	generated := make([]*tasks.Task, 0, len(msg.Suggestions))
	for _, s := range msg.Suggestions {
		generated = append(generated, tasks.NewGenerated(s.Title, s.Description, s.Difficulty))
	}
	m.taskStore.AppendGenerated(generated)
	m.persistTasks()
	return m, nil
}

func (m *Model) onMotivation(msg MotivationMsg) (tea.Model, tea.Cmd) {
	m.motivating = false
	if msg.Err != nil {
		if gateway.IsKeyMissing(msg.Err) {
			m.settingsPanel.Open(m.cfg())
			return m, nil
		}
		// GenerateMotivation degrades to a fallback string rather than
		// erroring, so any other error here is unexpected; keep the
		// conversation warm regardless.
		m.conversation.Append(model.NewModelMessage("I couldn't get a quote right now, but remember: You matter."))
		m.refreshViewport()
		return m, nil
	}
	m.conversation.Append(model.NewModelMessage("✨ " + msg.Text))
	m.refreshViewport()
	return m, nil
}

// =============================================================================
// THEME
// =============================================================================

func (m *Model) toggleTheme() (tea.Model, tea.Cmd) {
	cfg := m.cfg()
	dark := !cfg.DarkMode()
	if err := m.settings.Update(func(c *config.Config) {
		if dark {
			c.Theme = "dark"
		} else {
			c.Theme = "light"
		}
	}); err != nil {
		m.status = "couldn't save theme: " + err.Error()
	}
	m.applyTheme(dark)
	return m, nil
}
