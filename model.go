package main

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/LFroesch/odyssey/internal/config"
	"github.com/LFroesch/odyssey/internal/git"
	"github.com/LFroesch/odyssey/internal/keymap"
	"github.com/LFroesch/odyssey/internal/listing"
	"github.com/LFroesch/odyssey/internal/session"
)

// Terminal dimension constants
const (
	minTerminalWidth  = 40
	minTerminalHeight = 5
	uiOverhead        = 2 // Header (1) + status (1)
)

type mode int

const (
	modeNormal mode = iota
	modePrompt
	modeConfirm
)

type inputKeys struct {
	Submit    key.Binding
	Cancel    key.Binding
	ForceQuit key.Binding
}

func newInputKeys() inputKeys {
	return inputKeys{
		Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run")),
		Cancel:    key.NewBinding(key.WithKeys("esc", "ctrl+g"), key.WithHelp("esc", "cancel")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

type model struct {
	mode     mode
	session  *session.Session
	resolver *keymap.Resolver
	runner   *teaRunner
	input    textinput.Model
	keys     inputKeys
	config   *config.Config

	width  int
	height int

	gitBranch   string
	gitModified map[string]bool

	preview     listing.Preview
	previewPath string
	highlighted []string

	farewell string
}

func newModel(cfg *config.Config, dir string) (*model, error) {
	runner := &teaRunner{}
	s, err := session.New(dir, session.Options{
		ShowHidden:   cfg.ShowHidden,
		Editor:       cfg.Editor,
		Shell:        cfg.Shell,
		Openers:      cfg.Openers,
		PreviewLines: cfg.PreviewLines,
		Height:       minTerminalHeight - uiOverhead,
		Runner:       runner,
		Clipboard:    session.SystemClipboard{},
		Opener:       session.SystemOpener{},
	})
	if err != nil {
		return nil, err
	}

	ti := textinput.New()
	ti.CharLimit = 4096
	ti.Prompt = ":"

	m := &model{
		mode:     modeNormal,
		session:  s,
		resolver: keymap.NewResolver(cfg.Bindings(), keymap.WithTimeout(cfg.ChordDuration())),
		runner:   runner,
		input:    ti,
		keys:     newInputKeys(),
		config:   cfg,
	}
	m.refreshGit()
	return m, nil
}

// listHeight is the number of listing rows that fit between header and
// status line
func (m *model) listHeight() int {
	h := m.height - uiOverhead
	if h < 1 {
		h = 1
	}
	return h
}

func (m *model) refreshGit() {
	dir := m.session.Dir()
	m.gitBranch = git.Branch(dir)
	if m.gitBranch == "" {
		m.gitModified = nil
		return
	}
	m.gitModified = git.Modified(dir)
}

// dispatch runs a command line and turns whatever it left behind (a
// prompt, a confirmation gate, a child process, quit) into UI state
func (m *model) dispatch(line string) tea.Cmd {
	before := m.session.Dir()
	m.session.Dispatch(line)
	if m.session.Dir() != before {
		m.refreshGit()
	}
	return m.afterCommand()
}

func (m *model) afterCommand() tea.Cmd {
	m.previewPath = ""
	if quitting, msg := m.session.Quitting(); quitting {
		m.farewell = msg
		return tea.Quit
	}

	var cmds []tea.Cmd
	if p, ok := m.session.TakePrompt(); ok {
		cmds = append(cmds, m.openInput(":", p.Value, p.Cursor, modePrompt))
	} else if q, ok := m.session.AwaitingConfirmation(); ok {
		cmds = append(cmds, m.openInput(q, "", 0, modeConfirm))
	}
	if cmd := m.runner.drain(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (m *model) openInput(prompt, value string, cursor int, md mode) tea.Cmd {
	m.mode = md
	m.input.Prompt = prompt
	m.input.SetValue(value)
	m.input.SetCursor(cursor)
	return m.input.Focus()
}

func (m *model) closeInput() {
	m.mode = modeNormal
	m.input.Blur()
	m.input.SetValue("")
}
