package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/dori/tasklist/internal/config"
	"github.com/dori/tasklist/internal/logging"
	"github.com/dori/tasklist/internal/notify"
	"github.com/dori/tasklist/internal/storage"
	"github.com/dori/tasklist/internal/tasklist"
)

// Notifier delivers desktop notifications
type Notifier interface {
	SendSaved(count int, path string) error
	SendDueReminder(taskName string, overdue bool) error
}

// Options tune how an App is opened
type Options struct {
	// SingleInstance takes the data directory lock so only one
	// interactive session edits the list at a time.
	SingleInstance bool
	// Notifier overrides the notify-send based notifier
	Notifier Notifier
}

// App holds the application state and dependencies
type App struct {
	Config   *config.Config
	Repo     storage.Repository
	Tasks    *tasklist.List
	Notifier Notifier

	// LoadErr is set when the task file existed but could not be read;
	// the session then starts from an empty list.
	LoadErr error

	lockFile *flock.Flock
}

// New opens the repository and loads the task list
func New(cfg *config.Config, opts Options) (*App, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	a := &App{
		Config:   cfg,
		Notifier: opts.Notifier,
	}
	if a.Notifier == nil {
		a.Notifier = notify.NewNotifier(cfg.Notify)
	}

	if opts.SingleInstance {
		if err := a.acquireLock(); err != nil {
			return nil, err
		}
	}

	repo, err := storage.Open(cfg.Storage, cfg.TaskFilePath())
	if err != nil {
		a.releaseLock()
		return nil, fmt.Errorf("failed to open task storage: %w", err)
	}
	a.Repo = repo

	tasks, loadErr := tasklist.Load(repo)
	if loadErr != nil {
		logging.Debugf("app: starting with an empty list: %v", loadErr)
		a.LoadErr = loadErr
	}
	a.Tasks = tasks

	logging.Debugf("app: opened %s (%s) with %d tasks", repo.Path(), cfg.Storage, tasks.Len())
	return a, nil
}

// acquireLock acquires an exclusive file lock to prevent multiple instances
func (a *App) acquireLock() error {
	lockPath := filepath.Join(a.Config.DataDir, "tasklist.lock")
	a.lockFile = flock.New(lockPath)

	locked, err := a.lockFile.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}

	if !locked {
		return fmt.Errorf("another instance of tasklist is already running")
	}

	return nil
}

// releaseLock releases the file lock
func (a *App) releaseLock() {
	if a.lockFile != nil {
		a.lockFile.Unlock()
	}
}

// Close cleans up application resources
func (a *App) Close() error {
	var errs []error

	if a.Repo != nil {
		if err := a.Repo.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close task storage: %w", err))
		}
	}

	a.releaseLock()

	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}
