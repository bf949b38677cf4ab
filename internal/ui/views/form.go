package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dori/tasklist/internal/app"
	apperrors "github.com/dori/tasklist/internal/errors"
	"github.com/dori/tasklist/internal/logging"
	"github.com/dori/tasklist/internal/model"
	"github.com/dori/tasklist/internal/ui/theme"
)

// FormMode represents the current input mode of the form view
type FormMode int

const (
	FormModeEdit FormMode = iota
	FormModePromptName
	FormModePromptDeadline
)

// Field identifies a focusable form field
type Field int

const (
	FieldName Field = iota
	FieldDeadline
	FieldComplete
	fieldCount
)

// FormView shows one task at a time with editable fields
type FormView struct {
	app    *app.App
	width  int
	height int
	now    func() time.Time

	snap     app.Snapshot
	name     textinput.Model
	deadline textinput.Model
	complete bool
	focus    Field

	mode        FormMode
	prompt      textinput.Model
	pendingName string

	statusMsg string
	errorMsg  string
}

// NewFormView creates a form bound to application
func NewFormView(application *app.App) FormView {
	name := textinput.New()
	name.Prompt = ""
	name.Placeholder = "Task name"
	name.CharLimit = 256

	deadline := textinput.New()
	deadline.Prompt = ""
	deadline.Placeholder = "dd/MM/yyyy"
	deadline.CharLimit = 10

	prompt := textinput.New()
	prompt.CharLimit = 256

	v := FormView{
		app:      application,
		now:      time.Now,
		name:     name,
		deadline: deadline,
		prompt:   prompt,
	}
	v.refresh()
	return v
}

// Init initializes the form view
func (v FormView) Init() tea.Cmd {
	return textinput.Blink
}

// IsInputMode returns true when keystrokes go into a text field
func (v FormView) IsInputMode() bool {
	if v.mode != FormModeEdit {
		return true
	}
	return v.snap.HasTask && v.focus != FieldComplete
}

// IsPrompting returns true while the new task prompts are open
func (v FormView) IsPrompting() bool {
	return v.mode != FormModeEdit
}

// HasUnsavedChanges reports list changes not yet written or field edits
// not yet applied to the current task
func (v FormView) HasUnsavedChanges() bool {
	return v.snap.Dirty || v.fieldsEdited()
}

// Snapshot returns the task state the form was last refreshed from
func (v FormView) Snapshot() app.Snapshot {
	return v.snap
}

// Fields returns the values currently in the form
func (v FormView) Fields() app.Fields {
	return app.Fields{
		Name:     v.name.Value(),
		Deadline: v.deadline.Value(),
		Complete: v.complete,
	}
}

// Focused returns the focused field
func (v FormView) Focused() Field {
	return v.focus
}

// Status returns the last informational message
func (v FormView) Status() string {
	return v.statusMsg
}

// Error returns the last error message
func (v FormView) Error() string {
	return v.errorMsg
}

// ClearMessages drops the status and error line
func (v FormView) ClearMessages() FormView {
	v.statusMsg = ""
	v.errorMsg = ""
	return v
}

// SetNow overrides the clock used for deadline highlighting
func (v FormView) SetNow(now func() time.Time) FormView {
	v.now = now
	return v
}

// SetSize updates the view dimensions
func (v FormView) SetSize(width, height int) FormView {
	v.width = width
	v.height = height
	inputWidth := width - 20
	if inputWidth < 10 {
		inputWidth = 10
	}
	v.name.Width = inputWidth
	v.prompt.Width = inputWidth
	return v
}

func (v FormView) fieldsEdited() bool {
	if !v.snap.HasTask {
		return false
	}
	return v.Fields() != v.snap.Fields
}

// refresh reloads the displayed fields from the store. Unapplied edits
// are discarded.
func (v *FormView) refresh() {
	v.snap = v.app.Snapshot()
	v.name.SetValue(v.snap.Fields.Name)
	v.deadline.SetValue(v.snap.Fields.Deadline)
	v.complete = v.snap.Fields.Complete
	v.applyFocus()
}

func (v *FormView) applyFocus() {
	v.name.Blur()
	v.deadline.Blur()
	if !v.snap.HasTask || v.mode != FormModeEdit {
		return
	}
	switch v.focus {
	case FieldName:
		v.name.Focus()
	case FieldDeadline:
		v.deadline.Focus()
	}
}

func (v *FormView) setError(err error) {
	logging.Debugf("form: %v", err)
	v.statusMsg = ""
	v.errorMsg = apperrors.GetUserMessage(err)
}

func (v *FormView) setStatus(format string, args ...interface{}) {
	v.errorMsg = ""
	v.statusMsg = fmt.Sprintf(format, args...)
}

// Update handles messages for the form view
func (v FormView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmds []tea.Cmd
		var cmd tea.Cmd
		v.name, cmd = v.name.Update(msg)
		cmds = append(cmds, cmd)
		v.deadline, cmd = v.deadline.Update(msg)
		cmds = append(cmds, cmd)
		v.prompt, cmd = v.prompt.Update(msg)
		cmds = append(cmds, cmd)
		return v, tea.Batch(cmds...)
	}

	switch v.mode {
	case FormModePromptName:
		return v.handlePromptName(keyMsg)
	case FormModePromptDeadline:
		return v.handlePromptDeadline(keyMsg)
	}
	return v.handleEditMode(keyMsg)
}

// handleEditMode handles keypresses while a task is displayed
func (v FormView) handleEditMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+p":
		return v.navigate(app.Previous)
	case "ctrl+n":
		return v.navigate(app.Next)
	case "left":
		if !v.IsInputMode() {
			return v.navigate(app.Previous)
		}
	case "right":
		if !v.IsInputMode() {
			return v.navigate(app.Next)
		}
	case "ctrl+a":
		v.mode = FormModePromptName
		v.pendingName = ""
		v.prompt.Placeholder = "Enter task name"
		v.prompt.SetValue("")
		v.applyFocus()
		cmd := v.prompt.Focus()
		return v, cmd
	case "ctrl+w":
		return v.saveList()
	}

	if !v.snap.HasTask {
		return v, nil
	}

	switch msg.String() {
	case "tab", "down":
		v.focus = (v.focus + 1) % fieldCount
		v.applyFocus()
		return v, nil
	case "shift+tab", "up":
		v.focus = (v.focus + fieldCount - 1) % fieldCount
		v.applyFocus()
		return v, nil
	case "ctrl+s":
		return v.saveTask()
	case " ":
		if v.focus == FieldComplete {
			v.complete = !v.complete
			return v, nil
		}
	}

	var cmd tea.Cmd
	switch v.focus {
	case FieldName:
		v.name, cmd = v.name.Update(msg)
	case FieldDeadline:
		v.deadline, cmd = v.deadline.Update(msg)
	}
	return v, cmd
}

// handlePromptName handles keypresses in the new task name prompt
func (v FormView) handlePromptName(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		name := v.prompt.Value()
		if strings.TrimSpace(name) == "" {
			v.setError(apperrors.NewValidationError(apperrors.CodeEmptyName, "task name cannot be empty"))
			return v, nil
		}
		v.pendingName = name
		v.mode = FormModePromptDeadline
		v.prompt.Placeholder = "Enter deadline (dd/MM/yyyy)"
		v.prompt.SetValue("")
		return v, nil
	case "esc":
		return v.cancelPrompt()
	}

	var cmd tea.Cmd
	v.prompt, cmd = v.prompt.Update(msg)
	return v, cmd
}

// handlePromptDeadline handles keypresses in the new task deadline prompt
func (v FormView) handlePromptDeadline(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if err := v.app.AddTask(v.pendingName, v.prompt.Value()); err != nil {
			v.setError(err)
			return v, nil
		}
		v.mode = FormModeEdit
		v.prompt.Blur()
		v.pendingName = ""
		v.focus = FieldName
		v.refresh()
		v.setStatus("Task added (%d/%d)", v.snap.Position, v.snap.Total)
		return v, nil
	case "esc":
		return v.cancelPrompt()
	}

	var cmd tea.Cmd
	v.prompt, cmd = v.prompt.Update(msg)
	return v, cmd
}

func (v FormView) cancelPrompt() (tea.Model, tea.Cmd) {
	v.mode = FormModeEdit
	v.prompt.Blur()
	v.pendingName = ""
	v.applyFocus()
	v.setStatus("Cancelled")
	return v, nil
}

func (v FormView) navigate(d app.Direction) (tea.Model, tea.Cmd) {
	if !v.app.Navigate(d) {
		return v, nil
	}
	v.refresh()
	return v, nil
}

func (v FormView) saveTask() (tea.Model, tea.Cmd) {
	if err := v.app.SaveCurrent(v.Fields()); err != nil {
		v.setError(err)
		return v, nil
	}
	v.refresh()
	v.setStatus("Task %s updated", v.snap.ID)
	return v, nil
}

func (v FormView) saveList() (tea.Model, tea.Cmd) {
	if err := v.app.SaveList(); err != nil {
		v.setError(err)
		return v, nil
	}
	v.snap = v.app.Snapshot()
	v.setStatus("Saved %d tasks to %s", v.snap.Total, v.app.Repo.Path())
	return v, nil
}

// View renders the form
func (v FormView) View() string {
	styles := theme.Current.Styles

	var b strings.Builder

	if v.mode != FormModeEdit {
		title := "New task"
		if v.mode == FormModePromptDeadline {
			title = fmt.Sprintf("New task: %s", v.pendingName)
		}
		b.WriteString(styles.Title.Render(title))
		b.WriteString("\n")
		b.WriteString(styles.InputFocused.Render(v.prompt.View()))
		return styles.Panel.Render(b.String())
	}

	if !v.snap.HasTask {
		b.WriteString(styles.Title.Render("No tasks"))
		b.WriteString("\n")
		b.WriteString(styles.HelpDesc.Render("Press ctrl+a to add one."))
		return styles.Panel.Render(b.String())
	}

	label := func(f Field, text string) string {
		if v.focus == f {
			return styles.LabelFocused.Render(text)
		}
		return styles.Label.Render(text)
	}
	input := func(f Field, content string) string {
		if v.focus == f {
			return styles.InputFocused.Render(content)
		}
		return styles.Input.Render(content)
	}

	rows := []string{
		lipgloss.JoinHorizontal(lipgloss.Center, styles.Label.Render("ID"), styles.ReadOnly.Render(v.snap.ID)),
		lipgloss.JoinHorizontal(lipgloss.Center, label(FieldName, "Name"), input(FieldName, v.name.View())),
		lipgloss.JoinHorizontal(lipgloss.Center, label(FieldDeadline, "Deadline"), input(FieldDeadline, v.deadline.View()), " ", v.deadlineHint()),
		lipgloss.JoinHorizontal(lipgloss.Center, label(FieldComplete, "Complete"), v.checkbox()),
	}
	b.WriteString(lipgloss.JoinVertical(lipgloss.Left, rows...))

	return styles.Panel.Render(b.String())
}

func (v FormView) checkbox() string {
	styles := theme.Current.Styles
	box := "[ ]"
	if v.complete {
		box = "[x]"
	}
	if v.focus == FieldComplete {
		return styles.LabelFocused.Render(box)
	}
	return styles.ReadOnly.Render(box)
}

// deadlineHint describes the stored deadline relative to today
func (v FormView) deadlineHint() string {
	styles := theme.Current.Styles
	if v.snap.Fields.Complete {
		return styles.Done.Render("done")
	}

	d, err := model.ParseDeadline(v.snap.Fields.Deadline)
	if err != nil {
		return ""
	}
	today := model.DateOf(v.now())
	switch {
	case d.Before(today):
		return styles.Overdue.Render("overdue")
	case d.Equal(today):
		return styles.DueToday.Render("due today")
	}
	return ""
}
