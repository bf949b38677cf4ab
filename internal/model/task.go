package model

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/dori/tasklist/internal/errors"
)

// DeadlineLayout is the day/month/4-digit-year layout used for display and reports
const DeadlineLayout = "02/01/2006"

// deadlineParseLayout accepts one or two digit days and months
const deadlineParseLayout = "2/1/2006"

// Task represents a todo item with a day-precision deadline
type Task struct {
	id       int
	name     string
	deadline time.Time
	complete bool
}

// NewTask creates an incomplete task. The caller owns id allocation.
func NewTask(id int, name string, deadline time.Time) *Task {
	return &Task{
		id:       id,
		name:     name,
		deadline: DateOf(deadline),
	}
}

// RestoreTask rebuilds a task read back from storage
func RestoreTask(id int, name string, deadline time.Time, complete bool) *Task {
	t := NewTask(id, name, deadline)
	t.complete = complete
	return t
}

// ID returns the task identifier
func (t *Task) ID() int {
	return t.id
}

// Name returns the task name
func (t *Task) Name() string {
	return t.name
}

// Deadline returns the deadline as a UTC midnight time
func (t *Task) Deadline() time.Time {
	return t.deadline
}

// Complete reports whether the task is done
func (t *Task) Complete() bool {
	return t.complete
}

// Rename sets the task name
func (t *Task) Rename(name string) {
	t.name = name
}

// Reschedule sets the deadline
func (t *Task) Reschedule(deadline time.Time) {
	t.deadline = DateOf(deadline)
}

// SetComplete sets the completion flag
func (t *Task) SetComplete(complete bool) {
	t.complete = complete
}

// Render returns the fixed four-line block used on screen and in reports
func (t *Task) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Task ID: %d\n", t.id)
	fmt.Fprintf(&b, "Task Name: %s\n", t.name)
	fmt.Fprintf(&b, "Deadline: %s\n", FormatDeadline(t.deadline))
	fmt.Fprintf(&b, "Complete: %t", t.complete)
	return b.String()
}

// String implements fmt.Stringer
func (t *Task) String() string {
	return t.Render()
}

// IsOverdue returns true if the task is incomplete and its deadline has passed
func (t *Task) IsOverdue(now time.Time) bool {
	if t.complete {
		return false
	}
	return t.deadline.Before(DateOf(now))
}

// IsDueOn returns true if the deadline falls on the calendar day of now
func (t *Task) IsDueOn(now time.Time) bool {
	return t.deadline.Equal(DateOf(now))
}

// Clone returns an independent copy
func (t *Task) Clone() *Task {
	c := *t
	return &c
}

// ParseDeadline parses dd/MM/yyyy text into a date. Impossible calendar
// dates such as 31/02/2024 are rejected.
func ParseDeadline(text string) (time.Time, error) {
	d, err := time.Parse(deadlineParseLayout, strings.TrimSpace(text))
	if err != nil {
		return time.Time{}, apperrors.NewParseError(text, err)
	}
	return d, nil
}

// FormatDeadline formats a date as dd/MM/yyyy
func FormatDeadline(d time.Time) string {
	return d.Format(DeadlineLayout)
}

// DateOf drops the time of day, keeping the calendar date of t in its own location
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
