// Package tasklist holds the ordered task list, its navigation cursor and
// the id sequence used for new tasks.
package tasklist

import (
	"errors"
	"io/fs"

	"github.com/dori/tasklist/internal/logging"
	"github.com/dori/tasklist/internal/model"
)

// Repository loads and saves the complete ordered list
type Repository interface {
	Load() ([]*model.Task, error)
	Save(tasks []*model.Task) error
	Path() string
}

// List is an ordered task collection with a cursor.
// The cursor is meaningful only while the list is non-empty.
type List struct {
	tasks  []*model.Task
	cursor int
	nextID int
	dirty  bool
}

// New builds a list from tasks in display order. New ids continue after
// the highest id present so loaded tasks never collide with added ones.
func New(tasks ...*model.Task) *List {
	l := &List{
		tasks:  make([]*model.Task, 0, len(tasks)),
		nextID: 1,
	}
	for _, t := range tasks {
		if t == nil {
			continue
		}
		l.tasks = append(l.tasks, t)
		if t.ID() >= l.nextID {
			l.nextID = t.ID() + 1
		}
	}
	return l
}

// Load reads the list from repo and never fails: a missing file gives an
// empty list and a nil error; any other problem gives an empty list plus
// the error so the caller can log it.
func Load(repo Repository) (*List, error) {
	tasks, err := repo.Load()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logging.Debugf("tasklist: %s does not exist, starting empty", repo.Path())
			return New(), nil
		}
		logging.Debugf("tasklist: load %s failed: %v", repo.Path(), err)
		return New(), err
	}
	return New(tasks...), nil
}

// Save writes the whole list to repo. On failure the in-memory list is
// left as it was so the save can be retried.
func (l *List) Save(repo Repository) error {
	if err := repo.Save(l.tasks); err != nil {
		return err
	}
	l.dirty = false
	return nil
}

// Add parses deadlineText, appends a new task and moves the cursor to it.
// On a parse error the list is unchanged.
func (l *List) Add(name, deadlineText string) (*model.Task, error) {
	deadline, err := model.ParseDeadline(deadlineText)
	if err != nil {
		return nil, err
	}

	t := model.NewTask(l.nextID, name, deadline)
	l.nextID++
	l.tasks = append(l.tasks, t)
	l.cursor = len(l.tasks) - 1
	l.dirty = true
	return t, nil
}

// UpdateCurrent applies name, deadline and completion to the task at the
// cursor. Nothing changes unless deadlineText parses. On an empty list it
// is a no-op.
func (l *List) UpdateCurrent(name, deadlineText string, complete bool) error {
	t, ok := l.Current()
	if !ok {
		return nil
	}

	deadline, err := model.ParseDeadline(deadlineText)
	if err != nil {
		return err
	}

	t.Rename(name)
	t.Reschedule(deadline)
	t.SetComplete(complete)
	l.dirty = true
	return nil
}

// MoveNext advances the cursor. It reports false at the last task.
func (l *List) MoveNext() bool {
	if !l.CanMoveNext() {
		return false
	}
	l.cursor++
	return true
}

// MovePrevious retreats the cursor. It reports false at the first task.
func (l *List) MovePrevious() bool {
	if !l.CanMovePrevious() {
		return false
	}
	l.cursor--
	return true
}

// CanMoveNext reports whether forward navigation is enabled
func (l *List) CanMoveNext() bool {
	return len(l.tasks) > 0 && l.cursor < len(l.tasks)-1
}

// CanMovePrevious reports whether backward navigation is enabled
func (l *List) CanMovePrevious() bool {
	return len(l.tasks) > 0 && l.cursor > 0
}

// Current returns the task at the cursor
func (l *List) Current() (*model.Task, bool) {
	if len(l.tasks) == 0 {
		return nil, false
	}
	return l.tasks[l.cursor], true
}

// Cursor returns the cursor position, or -1 for an empty list
func (l *List) Cursor() int {
	if len(l.tasks) == 0 {
		return -1
	}
	return l.cursor
}

// Len returns the number of tasks
func (l *List) Len() int {
	return len(l.tasks)
}

// Tasks returns copies of the tasks in display order
func (l *List) Tasks() []*model.Task {
	out := make([]*model.Task, len(l.tasks))
	for i, t := range l.tasks {
		out[i] = t.Clone()
	}
	return out
}

// NextID returns the id the next added task will get
func (l *List) NextID() int {
	return l.nextID
}

// Dirty reports unsaved changes since the last load or save
func (l *List) Dirty() bool {
	return l.dirty
}
