// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/lumi-tui/internal/model"
)

// Layout heights in rows.
const (
	headerHeight = 3
	inputHeight  = 3
	statusHeight = 1
)

// =============================================================================
// SIZING
// =============================================================================

// resize adapts the layout to a new terminal size.
func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height

	bodyHeight := height - headerHeight - inputHeight - statusHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	if !m.ready {
		m.viewport = viewport.New(width, bodyHeight)
		m.ready = true
	} else {
		m.viewport.Width = width
		m.viewport.Height = bodyHeight
	}

	m.input.Width = width - 6
	m.taskList.SetWidth(width)
	m.settingsPanel.SetWidth(width)

	m.rebuildRenderer()
	m.refreshViewport()
}

// rebuildRenderer recreates the markdown renderer for the current width
// and theme. A nil renderer falls back to plain text.
func (m *Model) rebuildRenderer() {
	style := "light"
	if m.theme.IsDark {
		style = "dark"
	}
	wrap := m.bubbleWidth() - 4
	if wrap < 20 {
		wrap = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		m.renderer = nil
		return
	}
	m.renderer = r
}

// bubbleWidth is the width allotted to one message bubble.
func (m *Model) bubbleWidth() int {
	w := m.width - 8
	if w < 24 {
		w = 24
	}
	return w
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the full screen.
func (m *Model) View() string {
	if !m.ready {
		return "warming up..."
	}

	var body string
	if m.mode == ModeTasks {
		body = lipgloss.NewStyle().Height(m.viewport.Height).Render(m.taskList.View(m.taskStore.All()))
	} else {
		body = m.viewport.View()
	}

	sections := []string{m.renderHeader(), body}

	if toast := m.toast.View(m.theme, m.width); toast != "" {
		sections = append(sections, toast)
	}
	if m.settingsPanel.IsOpen() {
		sections = append(sections, m.settingsPanel.View())
	}

	sections = append(sections, m.renderInput(), m.renderStatus())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHeader renders the title bar with the active mode.
func (m *Model) renderHeader() string {
	title := m.theme.HeaderTitle.Render("☁️ Lumi")
	mode := m.theme.HeaderMode.Render(m.mode.String())
	return m.theme.Header.Width(m.width - 2).Render(title + "  ·  " + mode)
}

// renderInput renders the input row, swapping in the listening
// indicator during dictation.
func (m *Model) renderInput() string {
	if m.listening {
		return m.theme.InputContainer.Width(m.width).Render(
			m.theme.Listening.Render("● listening…") + m.theme.Muted.Render("  (/dictate to stop)"))
	}

	line := m.input.View()
	if m.attachment != nil {
		line = m.theme.AttachmentChip.Render("📎 "+m.attachment.Name) + " " + line
	}
	return m.theme.InputContainer.Width(m.width).Render(line)
}

// renderStatus renders the bottom status line.
func (m *Model) renderStatus() string {
	left := "ctrl+t: " + m.altModeName() + "  /help"
	if m.status != "" {
		left = m.status
	}

	var busy string
	switch {
	case m.sending:
		busy = m.spinner.View() + " Lumi is thinking…"
	case m.generating:
		busy = m.spinner.View() + " finding gentle ideas…"
	case m.motivating:
		busy = m.spinner.View() + " finding a spark…"
	}

	if busy != "" {
		left += "   " + busy
	}
	return m.theme.StatusBar.Width(m.width).Render(left)
}

func (m *Model) altModeName() string {
	if m.mode == ModeChat {
		return "tasks"
	}
	return "chat"
}

// =============================================================================
// MESSAGE RENDERING
// =============================================================================

// refreshViewport re-renders the conversation and pins the view to the
// newest message.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderMessages())
	m.viewport.GotoBottom()
}

// renderMessages renders the whole conversation transcript.
func (m *Model) renderMessages() string {
	var sb strings.Builder
	for _, msg := range m.conversation.All() {
		sb.WriteString(m.renderMessage(msg))
		sb.WriteString("\n")
	}
	return sb.String()
}

// renderMessage renders one bubble: user messages right-leaning with
// plain text, model messages left-leaning with markdown.
func (m *Model) renderMessage(msg *model.Message) string {
	label := m.theme.RoleLabel.Render(msg.Role.DisplayName()) + " " +
		m.theme.Timestamp.Render(msg.Timestamp.Format("15:04"))

	body := msg.Text
	bubble := m.theme.UserBubble
	if msg.Role == model.RoleModel {
		bubble = m.theme.ModelBubble
		body = m.renderMarkdown(body)
	}

	content := bubble.MaxWidth(m.bubbleWidth()).Render(strings.TrimRight(body, "\n"))
	if msg.Attachment != nil {
		chip := m.theme.AttachmentChip.Render("📎 " + msg.Attachment.Name)
		content = lipgloss.JoinVertical(lipgloss.Left, chip, content)
	}
	return lipgloss.JoinVertical(lipgloss.Left, label, content)
}

// renderMarkdown renders model reply markdown, degrading to the raw
// text when the renderer is unavailable or errors.
func (m *Model) renderMarkdown(text string) string {
	if m.renderer == nil {
		return text
	}
	out, err := m.renderer.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n")
}
