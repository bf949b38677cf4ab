package views

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dori/tasklist/internal/app"
	"github.com/dori/tasklist/internal/config"
)

type silentNotifier struct{}

func (silentNotifier) SendSaved(int, string) error { return nil }
func (silentNotifier) SendDueReminder(string, bool) error { return nil }

func newTestApp(t *testing.T) *app.App {
	t.Helper()
	cfg := config.NewConfig()
	cfg.DataDir = t.TempDir()
	a, err := app.New(cfg, app.Options{Notifier: silentNotifier{}})
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return a
}

func keyType(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func typeText(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(v FormView, msgs ...tea.KeyMsg) FormView {
	for _, msg := range msgs {
		m, _ := v.Update(msg)
		v = m.(FormView)
	}
	return v
}

func addTask(v FormView, name, deadline string) FormView {
	return press(v,
		keyType(tea.KeyCtrlA), typeText(name), keyType(tea.KeyEnter),
		typeText(deadline), keyType(tea.KeyEnter),
	)
}

func TestFormEmptyList(t *testing.T) {
	v := NewFormView(newTestApp(t))

	assert.False(t, v.Snapshot().HasTask)
	assert.False(t, v.IsInputMode())
	assert.False(t, v.HasUnsavedChanges())
	assert.Contains(t, v.View(), "No tasks")

	// editing keys do nothing without a task
	v = press(v, keyType(tea.KeyCtrlS), keyType(tea.KeyTab), keyType(tea.KeyRight))
	assert.Empty(t, v.Error())
	assert.Equal(t, FieldName, v.Focused())
}

func TestFormAddTaskFlow(t *testing.T) {
	v := NewFormView(newTestApp(t))

	v = press(v, keyType(tea.KeyCtrlA))
	assert.True(t, v.IsPrompting())
	assert.True(t, v.IsInputMode())

	v = press(v, typeText("Submit report"), keyType(tea.KeyEnter))
	assert.True(t, v.IsPrompting())
	assert.Contains(t, v.View(), "Submit report")

	v = press(v, typeText("15/08/2024"), keyType(tea.KeyEnter))
	assert.False(t, v.IsPrompting())

	snap := v.Snapshot()
	require.True(t, snap.HasTask)
	assert.Equal(t, "1", snap.ID)
	assert.Equal(t, app.Fields{Name: "Submit report", Deadline: "15/08/2024"}, v.Fields())
	assert.Equal(t, "Task added (1/1)", v.Status())
	assert.True(t, v.HasUnsavedChanges())
}

func TestFormAddRejectsBlankName(t *testing.T) {
	v := NewFormView(newTestApp(t))

	v = press(v, keyType(tea.KeyCtrlA), typeText("   "), keyType(tea.KeyEnter))

	assert.Equal(t, "Task name cannot be empty.", v.Error())
	assert.True(t, v.IsPrompting())
}

func TestFormAddBadDeadlineStaysInPrompt(t *testing.T) {
	a := newTestApp(t)
	v := NewFormView(a)

	v = addTask(v, "x", "2024-08-15")

	assert.Equal(t, "Invalid date format. Use dd/MM/yyyy.", v.Error())
	assert.True(t, v.IsPrompting())
	assert.Equal(t, 0, a.Tasks.Len())

	v = press(v, keyType(tea.KeyEsc))
	assert.False(t, v.IsPrompting())
	assert.Equal(t, 0, a.Tasks.Len())
}

func TestFormNavigation(t *testing.T) {
	v := NewFormView(newTestApp(t))
	v = addTask(v, "one", "01/01/2024")
	v = addTask(v, "two", "02/01/2024")

	assert.Equal(t, "two", v.Fields().Name)
	assert.False(t, v.Snapshot().CanNext)

	// next at the end stays put
	v = press(v, keyType(tea.KeyCtrlN))
	assert.Equal(t, 2, v.Snapshot().Position)

	v = press(v, keyType(tea.KeyCtrlP))
	assert.Equal(t, 1, v.Snapshot().Position)
	assert.Equal(t, "one", v.Fields().Name)
	assert.Equal(t, "01/01/2024", v.Fields().Deadline)

	// arrows only navigate when the checkbox has focus
	v = press(v, keyType(tea.KeyTab), keyType(tea.KeyTab))
	assert.Equal(t, FieldComplete, v.Focused())
	v = press(v, keyType(tea.KeyRight))
	assert.Equal(t, 2, v.Snapshot().Position)
}

func TestFormNavigationDiscardsUnappliedEdits(t *testing.T) {
	v := NewFormView(newTestApp(t))
	v = addTask(v, "one", "01/01/2024")
	v = addTask(v, "two", "02/01/2024")

	v = press(v, typeText("!!"))
	assert.Equal(t, "two!!", v.Fields().Name)

	v = press(v, keyType(tea.KeyCtrlP), keyType(tea.KeyCtrlN))
	assert.Equal(t, "two", v.Fields().Name)
}

func TestFormSaveTask(t *testing.T) {
	a := newTestApp(t)
	v := NewFormView(a)
	v = addTask(v, "one", "01/01/2024")

	v = press(v,
		typeText(" more"),
		keyType(tea.KeyTab), keyType(tea.KeyTab),
		tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}},
		keyType(tea.KeyCtrlS),
	)

	assert.Empty(t, v.Error())
	assert.Equal(t, "Task 1 updated", v.Status())
	current, ok := a.Tasks.Current()
	require.True(t, ok)
	assert.Equal(t, "one more", current.Name())
	assert.True(t, current.Complete())
}

func TestFormSaveTaskBadDeadline(t *testing.T) {
	a := newTestApp(t)
	v := NewFormView(a)
	v = addTask(v, "one", "01/01/2024")

	v = press(v, keyType(tea.KeyTab))
	assert.Equal(t, FieldDeadline, v.Focused())
	for range "01/01/2024" {
		v = press(v, keyType(tea.KeyBackspace))
	}
	v = press(v, typeText("31/02/2024"), keyType(tea.KeyCtrlS))

	assert.Equal(t, "Invalid date format. Use dd/MM/yyyy.", v.Error())
	assert.Equal(t, "31/02/2024", v.Fields().Deadline)
	current, _ := a.Tasks.Current()
	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), current.Deadline())
}

func TestFormSaveList(t *testing.T) {
	a := newTestApp(t)
	v := NewFormView(a)
	v = addTask(v, "one", "01/01/2024")

	v = press(v, keyType(tea.KeyCtrlW))

	assert.Empty(t, v.Error())
	assert.Contains(t, v.Status(), "Saved 1 tasks")
	assert.False(t, v.HasUnsavedChanges())
	assert.FileExists(t, a.Repo.Path())
}

func TestFormDeadlineHint(t *testing.T) {
	v := NewFormView(newTestApp(t))
	v = v.SetNow(func() time.Time { return time.Date(2024, time.August, 15, 9, 0, 0, 0, time.Local) })

	v = addTask(v, "late", "14/08/2024")
	assert.Contains(t, v.View(), "overdue")

	v = addTask(v, "today", "15/08/2024")
	assert.Contains(t, v.View(), "due today")

	v = addTask(v, "later", "16/08/2024")
	assert.NotContains(t, v.View(), "overdue")
	assert.NotContains(t, v.View(), "due today")
}
