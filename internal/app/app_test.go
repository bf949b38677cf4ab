package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dori/tasklist/internal/config"
	apperrors "github.com/dori/tasklist/internal/errors"
	"github.com/dori/tasklist/internal/storage"
)

type fakeNotifier struct {
	saved     []string
	reminders map[string]bool
}

func (f *fakeNotifier) SendSaved(count int, path string) error {
	f.saved = append(f.saved, path)
	return nil
}

func (f *fakeNotifier) SendDueReminder(taskName string, overdue bool) error {
	if f.reminders == nil {
		f.reminders = make(map[string]bool)
	}
	f.reminders[taskName] = overdue
	return nil
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.NewConfig()
	cfg.DataDir = t.TempDir()
	return cfg
}

func openApp(t *testing.T, cfg *config.Config, opts Options) (*App, *fakeNotifier) {
	t.Helper()
	n := &fakeNotifier{}
	if opts.Notifier == nil {
		opts.Notifier = n
	}
	a, err := New(cfg, opts)
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return a, n
}

func TestNewWithMissingFileStartsEmpty(t *testing.T) {
	a, _ := openApp(t, testConfig(t), Options{})

	assert.NoError(t, a.LoadErr)
	snap := a.Snapshot()
	assert.False(t, snap.HasTask)
	assert.Equal(t, 0, snap.Total)
	assert.Equal(t, 0, snap.Position)
	assert.False(t, snap.CanNext)
	assert.False(t, snap.CanPrevious)
}

func TestNewWithCorruptFileStartsEmpty(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(cfg.TaskFilePath(), []byte("not json"), 0o644))

	a, _ := openApp(t, cfg, Options{})

	assert.Error(t, a.LoadErr)
	assert.Equal(t, 0, a.Tasks.Len())
}

func TestAddTask(t *testing.T) {
	a, _ := openApp(t, testConfig(t), Options{})

	require.NoError(t, a.AddTask("Submit report", "15/08/2024"))

	snap := a.Snapshot()
	assert.True(t, snap.HasTask)
	assert.Equal(t, "1", snap.ID)
	assert.Equal(t, Fields{Name: "Submit report", Deadline: "15/08/2024"}, snap.Fields)
	assert.Equal(t, 1, snap.Position)
	assert.True(t, snap.Dirty)
}

func TestAddTaskErrors(t *testing.T) {
	tests := []struct {
		name     string
		taskName string
		deadline string
		code     string
	}{
		{name: "empty name", taskName: "", deadline: "15/08/2024", code: apperrors.CodeEmptyName},
		{name: "blank name", taskName: "   ", deadline: "15/08/2024", code: apperrors.CodeEmptyName},
		{name: "bad date", taskName: "x", deadline: "2024-08-15", code: apperrors.CodeInvalidDeadline},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _ := openApp(t, testConfig(t), Options{})

			err := a.AddTask(tt.taskName, tt.deadline)
			require.Error(t, err)
			assert.Equal(t, tt.code, apperrors.GetErrorCode(err))
			assert.Equal(t, 0, a.Tasks.Len())
		})
	}
}

func TestNavigateAndSaveCurrent(t *testing.T) {
	a, _ := openApp(t, testConfig(t), Options{})
	require.NoError(t, a.AddTask("one", "01/01/2024"))
	require.NoError(t, a.AddTask("two", "02/01/2024"))

	assert.False(t, a.Navigate(Next))
	assert.True(t, a.Navigate(Previous))
	assert.False(t, a.Navigate(Previous))

	require.NoError(t, a.SaveCurrent(Fields{Name: "uno", Deadline: "10/10/2024", Complete: true}))

	snap := a.Snapshot()
	assert.Equal(t, "1", snap.ID)
	assert.Equal(t, Fields{Name: "uno", Deadline: "10/10/2024", Complete: true}, snap.Fields)
	assert.True(t, snap.CanNext)
	assert.False(t, snap.CanPrevious)

	err := a.SaveCurrent(Fields{Name: "ignored", Deadline: "31/02/2024"})
	require.Error(t, err)
	assert.Equal(t, "uno", a.Snapshot().Fields.Name)
}

func TestSaveListPersistsAcrossSessions(t *testing.T) {
	for _, kind := range storage.Kinds() {
		t.Run(string(kind), func(t *testing.T) {
			cfg := testConfig(t)
			cfg.Storage = kind

			first, n := openApp(t, cfg, Options{})
			require.NoError(t, first.AddTask("persist me", "15/08/2024"))
			require.NoError(t, first.SaveList())
			assert.False(t, first.Snapshot().Dirty)
			assert.Equal(t, []string{cfg.TaskFilePath()}, n.saved)
			require.NoError(t, first.Close())

			second, _ := openApp(t, cfg, Options{})
			snap := second.Snapshot()
			require.True(t, snap.HasTask)
			assert.Equal(t, "persist me", snap.Fields.Name)

			require.NoError(t, second.AddTask("next", "16/08/2024"))
			assert.Equal(t, "2", second.Snapshot().ID)
		})
	}
}

func TestSaveListFailureKeepsTasks(t *testing.T) {
	cfg := testConfig(t)
	blocker := filepath.Join(cfg.DataDir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
	cfg.File = filepath.Join(blocker, "tasks.dat")

	a, n := openApp(t, cfg, Options{})
	require.NoError(t, a.AddTask("keep me", "01/01/2025"))

	err := a.SaveList()
	require.Error(t, err)
	assert.Equal(t, "Error saving tasks.", apperrors.GetUserMessage(err))
	assert.Equal(t, 1, a.Tasks.Len())
	assert.True(t, a.Snapshot().Dirty)
	assert.Empty(t, n.saved)
}

func TestSingleInstanceLock(t *testing.T) {
	cfg := testConfig(t)
	first, _ := openApp(t, cfg, Options{SingleInstance: true})

	_, err := New(cfg, Options{SingleInstance: true, Notifier: &fakeNotifier{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already running")

	require.NoError(t, first.Close())
	again, err := New(cfg, Options{SingleInstance: true, Notifier: &fakeNotifier{}})
	require.NoError(t, err)
	require.NoError(t, again.Close())
}

func TestRemindDue(t *testing.T) {
	a, n := openApp(t, testConfig(t), Options{})
	require.NoError(t, a.AddTask("overdue", "14/08/2024"))
	require.NoError(t, a.AddTask("today", "15/08/2024"))
	require.NoError(t, a.AddTask("later", "16/08/2024"))
	require.NoError(t, a.AddTask("done and late", "01/08/2024"))
	require.NoError(t, a.SaveCurrent(Fields{Name: "done and late", Deadline: "01/08/2024", Complete: true}))

	now := time.Date(2024, time.August, 15, 10, 0, 0, 0, time.Local)
	sent := a.RemindDue(now)

	assert.Equal(t, 2, sent)
	assert.Equal(t, map[string]bool{"overdue": true, "today": false}, n.reminders)
}
