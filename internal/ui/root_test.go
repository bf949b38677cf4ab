package ui

import (
	"errors"
	"os"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dori/tasklist/internal/app"
	"github.com/dori/tasklist/internal/config"
	apperrors "github.com/dori/tasklist/internal/errors"
	"github.com/dori/tasklist/internal/ui/theme"
)

type silentNotifier struct{}

func (silentNotifier) SendSaved(int, string) error { return nil }
func (silentNotifier) SendDueReminder(string, bool) error { return nil }

func newTestRoot(t *testing.T, setup func(cfg *config.Config)) (RootModel, *app.App) {
	t.Helper()
	cfg := config.NewConfig()
	cfg.DataDir = t.TempDir()
	if setup != nil {
		setup(cfg)
	}
	a, err := app.New(cfg, app.Options{Notifier: silentNotifier{}})
	require.NoError(t, err)
	t.Cleanup(func() {
		a.Close()
		theme.SetTheme(theme.Nord)
	})

	m := NewRootModel(a)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return next.(RootModel), a
}

func send(m RootModel, msg tea.Msg) (RootModel, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(RootModel), cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyType(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func pressAll(m RootModel, msgs ...tea.Msg) RootModel {
	for _, msg := range msgs {
		m, _ = send(m, msg)
	}
	return m
}

func addViaKeys(m RootModel, name, deadline string) RootModel {
	return pressAll(m,
		keyType(tea.KeyCtrlA), keyRunes(name), keyType(tea.KeyEnter),
		keyRunes(deadline), keyType(tea.KeyEnter),
	)
}

func TestRootQuitWithoutChanges(t *testing.T) {
	m, _ := newTestRoot(t, nil)

	_, cmd := send(m, keyRunes("q"))
	assert.True(t, isQuit(cmd))
}

func TestRootQuitAsksAgainWhenDirty(t *testing.T) {
	m, _ := newTestRoot(t, nil)
	m = addViaKeys(m, "unsaved", "01/01/2024")

	m, cmd := send(m, keyType(tea.KeyCtrlC))
	assert.False(t, isQuit(cmd))
	assert.Contains(t, m.View(), "Unsaved changes")

	_, cmd = send(m, keyType(tea.KeyCtrlC))
	assert.True(t, isQuit(cmd))
}

func TestRootQuitAfterSave(t *testing.T) {
	m, _ := newTestRoot(t, nil)
	m = addViaKeys(m, "saved", "01/01/2024")
	m = pressAll(m, keyType(tea.KeyCtrlW))

	_, cmd := send(m, keyType(tea.KeyCtrlC))
	assert.True(t, isQuit(cmd))
}

func TestRootQuitConfirmationResetsOnOtherKeys(t *testing.T) {
	m, _ := newTestRoot(t, nil)
	m = addViaKeys(m, "unsaved", "01/01/2024")

	m = pressAll(m, keyType(tea.KeyCtrlC), keyType(tea.KeyCtrlN))
	_, cmd := send(m, keyType(tea.KeyCtrlC))
	assert.False(t, isQuit(cmd))
}

func TestRootQInsideInputIsText(t *testing.T) {
	m, _ := newTestRoot(t, nil)
	m = addViaKeys(m, "task", "01/01/2024")
	m = pressAll(m, keyType(tea.KeyCtrlW))
	require.True(t, m.form.IsInputMode())

	m, cmd := send(m, keyRunes("q"))
	assert.False(t, isQuit(cmd))
	assert.Equal(t, "taskq", m.form.Fields().Name)

	// from the checkbox q quits, after confirming the unapplied edit
	m = pressAll(m, keyType(tea.KeyShiftTab))
	require.False(t, m.form.IsInputMode())
	m, cmd = send(m, keyRunes("q"))
	assert.False(t, isQuit(cmd))
	_, cmd = send(m, keyRunes("q"))
	assert.True(t, isQuit(cmd))
}

func TestRootHelpToggle(t *testing.T) {
	m, _ := newTestRoot(t, nil)

	m, _ = send(m, keyRunes("?"))
	assert.Equal(t, ViewHelp, m.currentView)
	assert.Contains(t, m.View(), "save list")

	m, _ = send(m, keyType(tea.KeyEsc))
	assert.Equal(t, ViewForm, m.currentView)
}

func TestRootThemeCycle(t *testing.T) {
	m, _ := newTestRoot(t, nil)
	require.Equal(t, "nord", theme.Current.Theme.Name)

	m, cmd := send(m, keyType(tea.KeyCtrlT))
	require.NotNil(t, cmd)
	assert.Equal(t, "dracula", theme.Current.Theme.Name)

	m, _ = send(m, cmd())
	assert.Equal(t, "Theme: dracula", m.statusMsg)
	assert.Contains(t, m.View(), "theme: dracula")
}

func TestRootUsesConfiguredTheme(t *testing.T) {
	newTestRoot(t, func(cfg *config.Config) { cfg.Theme = "gruvbox" })
	assert.Equal(t, "gruvbox", theme.Current.Theme.Name)
}

func TestRootReportsLoadError(t *testing.T) {
	m, _ := newTestRoot(t, func(cfg *config.Config) {
		require.NoError(t, os.WriteFile(cfg.TaskFilePath(), []byte("{broken"), 0o644))
	})

	m, _ = send(m, ErrorMsg{Err: m.app.LoadErr})
	assert.Equal(t, "Error loading tasks.", m.errorMsg)
	assert.Contains(t, m.View(), "[empty]")
}

func TestRootErrorMsgFallsBackToErrorText(t *testing.T) {
	m, _ := newTestRoot(t, nil)

	m, _ = send(m, ErrorMsg{Err: errors.New("boom")})
	assert.Equal(t, "boom", m.errorMsg)

	m, _ = send(m, ErrorMsg{Err: apperrors.NewSaveError("x", errors.New("disk full"))})
	assert.Equal(t, "Error saving tasks.", m.errorMsg)
}

func TestRootHeaderShowsPosition(t *testing.T) {
	m, _ := newTestRoot(t, nil)
	assert.Contains(t, m.View(), "[empty]")

	m = addViaKeys(m, "a", "01/01/2024")
	m = addViaKeys(m, "b", "02/01/2024")
	assert.Contains(t, m.View(), "[2/2] *")

	m = pressAll(m, keyType(tea.KeyCtrlW))
	assert.Contains(t, m.View(), "[2/2]")
	assert.NotContains(t, m.View(), "[2/2] *")

	m = pressAll(m, keyType(tea.KeyCtrlP))
	assert.Contains(t, m.View(), "[1/2]")
}
