package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LFroesch/odyssey/internal/config"
	"github.com/LFroesch/odyssey/internal/logger"
)

func TestMain(m *testing.M) {
	logger.Disable()
	os.Exit(m.Run())
}

func newTestModel(t *testing.T, files ...string) (*model, string) {
	t.Helper()
	dir := t.TempDir()
	for _, f := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, f), []byte(f+"\n"), 0644))
	}
	cfg := config.Defaults()
	cfg.Highlight = false
	m, err := newModel(&cfg, dir)
	require.NoError(t, err)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 20})
	return m, dir
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTeaRunnerDrain(t *testing.T) {
	r := &teaRunner{}
	assert.Nil(t, r.drain())

	r.Run(exec.Command("true"), func(error) {})
	r.Run(exec.Command("true"), func(error) {})
	assert.Len(t, r.queue, 2)
	assert.NotNil(t, r.drain())
	assert.Empty(t, r.queue)
}

func TestNormalKeysMoveCursor(t *testing.T) {
	m, _ := newTestModel(t, "a.txt", "b.txt", "c.txt")

	m.Update(runes("j"))
	m.Update(runes("j"))
	assert.Equal(t, 2, m.session.Selection().Primary())

	m.Update(runes("g"))
	assert.Equal(t, 2, m.session.Selection().Primary(), "chord waits for second key")
	m.Update(runes("g"))
	assert.Equal(t, 0, m.session.Selection().Primary())
}

func TestPromptDispatchesEditedLine(t *testing.T) {
	m, dir := newTestModel(t, "a.txt")

	m.Update(runes(":"))
	require.Equal(t, modePrompt, m.mode)

	m.input.SetValue("mkdir made")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, modeNormal, m.mode)
	assert.DirExists(t, filepath.Join(dir, "made"))
}

func TestPromptCancel(t *testing.T) {
	m, dir := newTestModel(t, "a.txt")

	m.Update(runes(":"))
	m.input.SetValue("mkdir never")
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, modeNormal, m.mode)
	assert.NoDirExists(t, filepath.Join(dir, "never"))
}

func TestRemoveAsksFirst(t *testing.T) {
	m, dir := newTestModel(t, "a.txt")

	m.Update(runes(" "))
	m.Update(runes("d"))
	require.Equal(t, modeConfirm, m.mode)
	assert.FileExists(t, filepath.Join(dir, "a.txt"))

	m.input.SetValue("y")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, modeNormal, m.mode)
	assert.NoFileExists(t, filepath.Join(dir, "a.txt"))
}

func TestRemoveRejectedByEsc(t *testing.T) {
	m, dir := newTestModel(t, "a.txt")

	m.Update(runes(" "))
	m.Update(runes("d"))
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, modeNormal, m.mode)
	assert.FileExists(t, filepath.Join(dir, "a.txt"))
	assert.Equal(t, "ignored.", m.session.Status().Text)
}

func TestQuitKeepsFarewell(t *testing.T) {
	m, _ := newTestModel(t)

	m.Update(runes(":"))
	m.input.SetValue("q see you")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Equal(t, "see you", m.farewell)
}

func TestViewShowsListing(t *testing.T) {
	m, dir := newTestModel(t, "alpha.txt", "beta.txt")

	out := m.View()
	assert.Contains(t, out, "alpha.txt")
	assert.Contains(t, out, "beta.txt")
	assert.Contains(t, out, filepath.Base(dir))
	assert.Contains(t, out, "1/2")
}

func TestViewTooSmall(t *testing.T) {
	m, _ := newTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 10, Height: 3})
	assert.True(t, strings.HasPrefix(m.View(), "Terminal too small"))
}

func TestHighlightKeepsLineCount(t *testing.T) {
	lines := []string{"package main", "", "func main() {}"}
	assert.Len(t, highlight("main.go", lines), len(lines))

	plain := []string{"no lexer here"}
	assert.Equal(t, plain, highlight("README.unknownext", plain))
}

func TestPendingChordHasNoTimer(t *testing.T) {
	m, _ := newTestModel(t, "a.txt")

	_, cmd := m.Update(runes("g"))
	assert.Nil(t, cmd, "a pending chord waits for the next key")
	key, pending := m.resolver.Pending()
	assert.True(t, pending)
	assert.Equal(t, "g", key)
	assert.Contains(t, m.renderStatusBar(), "g-")
}
