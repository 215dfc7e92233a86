package main

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/LFroesch/odyssey/internal/logger"
)

func (m *model) Init() tea.Cmd {
	return tea.SetWindowTitle("odyssey")
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if msg.Width == m.width && msg.Height == m.height {
			return m, nil
		}
		m.width = msg.Width
		m.height = msg.Height
		m.session.Resize(m.listHeight())
		m.input.Width = m.width - len(m.input.Prompt) - 2
		return m, nil

	case execDoneMsg:
		if msg.err != nil {
			logger.Warn("child process exited: %v", msg.err)
		}
		msg.done(msg.err)
		m.refreshGit()
		return m, m.afterCommand()

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
		switch m.mode {
		case modePrompt:
			return m.updatePrompt(msg)
		case modeConfirm:
			return m.updateConfirm(msg)
		default:
			return m.updateNormal(msg)
		}
	}
	return m, nil
}

func (m *model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	line, ok := m.resolver.Resolve(msg.String())
	if !ok {
		return m, nil
	}
	logger.Debug("key %q -> %q", msg.String(), line)
	return m, m.dispatch(line)
}

// updatePrompt edits the command line; enter dispatches it
func (m *model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		line := m.input.Value()
		m.closeInput()
		return m, m.dispatch(line)
	case key.Matches(msg, m.keys.Cancel):
		m.closeInput()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// updateConfirm collects the answer to "are you sure"; esc rejects
func (m *model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		answer := m.input.Value()
		m.closeInput()
		m.session.Confirm(answer)
		return m, m.afterCommand()
	case key.Matches(msg, m.keys.Cancel):
		m.closeInput()
		m.session.Confirm("")
		return m, m.afterCommand()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}
