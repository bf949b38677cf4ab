package app

import (
	"strconv"
	"strings"
	"time"

	apperrors "github.com/dori/tasklist/internal/errors"
	"github.com/dori/tasklist/internal/logging"
	"github.com/dori/tasklist/internal/model"
)

// Direction is a navigation step through the list
type Direction int

const (
	Previous Direction = iota
	Next
)

// Fields are the editable values of the displayed task
type Fields struct {
	Name     string
	Deadline string
	Complete bool
}

// Snapshot is everything the UI shell needs to draw the current task
type Snapshot struct {
	HasTask     bool
	ID          string
	Fields      Fields
	Position    int // 1-based, 0 when empty
	Total       int
	CanNext     bool
	CanPrevious bool
	Dirty       bool
}

// Snapshot describes the task at the cursor and the navigation state
func (a *App) Snapshot() Snapshot {
	s := Snapshot{
		Total:       a.Tasks.Len(),
		CanNext:     a.Tasks.CanMoveNext(),
		CanPrevious: a.Tasks.CanMovePrevious(),
		Dirty:       a.Tasks.Dirty(),
	}

	t, ok := a.Tasks.Current()
	if !ok {
		return s
	}

	s.HasTask = true
	s.ID = strconv.Itoa(t.ID())
	s.Position = a.Tasks.Cursor() + 1
	s.Fields = Fields{
		Name:     t.Name(),
		Deadline: model.FormatDeadline(t.Deadline()),
		Complete: t.Complete(),
	}
	return s
}

// Navigate moves the cursor one step and reports whether it moved
func (a *App) Navigate(d Direction) bool {
	if d == Next {
		return a.Tasks.MoveNext()
	}
	return a.Tasks.MovePrevious()
}

// SaveCurrent writes the edited fields back to the task at the cursor
func (a *App) SaveCurrent(f Fields) error {
	return a.Tasks.UpdateCurrent(f.Name, f.Deadline, f.Complete)
}

// AddTask appends a new task. Blank names are rejected here, at the
// shell boundary, rather than by the task entity.
func (a *App) AddTask(name, deadlineText string) error {
	if strings.TrimSpace(name) == "" {
		return apperrors.NewValidationError(apperrors.CodeEmptyName, "task name cannot be empty")
	}

	t, err := a.Tasks.Add(name, deadlineText)
	if err != nil {
		return err
	}

	logging.Debugf("app: added task %d %q", t.ID(), t.Name())
	return nil
}

// SaveList persists the whole list. On failure the in-memory list is
// kept so the user can retry.
func (a *App) SaveList() error {
	if err := a.Tasks.Save(a.Repo); err != nil {
		logging.Debugf("app: save failed: %v", err)
		return err
	}

	if err := a.Notifier.SendSaved(a.Tasks.Len(), a.Repo.Path()); err != nil {
		logging.Debugf("app: save notification failed: %v", err)
	}
	return nil
}

// RemindDue notifies about incomplete tasks that are overdue or due on
// the day of now. It returns how many reminders were attempted.
func (a *App) RemindDue(now time.Time) int {
	sent := 0
	for _, t := range a.Tasks.Tasks() {
		var overdue bool
		switch {
		case t.IsOverdue(now):
			overdue = true
		case !t.Complete() && t.IsDueOn(now):
			overdue = false
		default:
			continue
		}

		if err := a.Notifier.SendDueReminder(t.Name(), overdue); err != nil {
			logging.Debugf("app: reminder for task %d failed: %v", t.ID(), err)
		}
		sent++
	}
	return sent
}
