package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/notecards/internal/msg"
)

// Update handles all messages.
func (m Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(message)

	case tea.MouseMsg:
		// Plugin coordinates start below the header.
		if message.Y < headerHeight {
			return m, nil
		}
		message.Y -= headerHeight
		var cmd tea.Cmd
		m.plugin, cmd = m.plugin.Update(message)
		m.updateContext()
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = message.Width
		m.height = message.Height
		m.ready = true
		return m, nil

	case TickMsg:
		m.ClearToast()
		return m, tickCmd()

	case msg.ToastMsg:
		m.ShowToast(message.Message, message.Duration, message.IsError)
		return m, nil

	case ErrorMsg:
		m.ShowToast("Error: "+message.Err.Error(), errorToastDuration, true)
		return m, nil
	}

	var cmd tea.Cmd
	m.plugin, cmd = m.plugin.Update(message)
	m.updateContext()
	return m, cmd
}

// handleKeyMsg processes keyboard input.
func (m Model) handleKeyMsg(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	// Printable keys belong to the plugin while it has a text surface.
	if !m.consumesTextInput() {
		if cmdID, ok := m.keymap.Lookup(key.String(), m.activeContext); ok && cmdID == "quit" {
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.plugin, cmd = m.plugin.Update(key)
	m.updateContext()
	return m, cmd
}
