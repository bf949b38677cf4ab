package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dori/tasklist/internal/app"
	apperrors "github.com/dori/tasklist/internal/errors"
	"github.com/dori/tasklist/internal/logging"
	"github.com/dori/tasklist/internal/ui/theme"
	"github.com/dori/tasklist/internal/ui/views"
)

// RootModel is the main application model
type RootModel struct {
	app    *app.App
	keys   KeyMap
	help   help.Model
	width  int
	height int

	currentView View
	form        views.FormView

	// Status message
	statusMsg string
	errorMsg  string

	// quitArmed is set after a quit attempt with unsaved changes
	quitArmed bool
}

// NewRootModel creates a new root model
func NewRootModel(application *app.App) RootModel {
	h := help.New()
	h.ShowAll = true

	if t, ok := theme.ByName(application.Config.Theme); ok {
		theme.SetTheme(t)
	}

	return RootModel{
		app:         application,
		keys:        DefaultKeyMap(),
		help:        h,
		currentView: ViewForm,
		form:        views.NewFormView(application),
	}
}

// Init sends due reminders and reports a failed load
func (m RootModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.form.Init()}

	if err := m.app.LoadErr; err != nil {
		cmds = append(cmds, func() tea.Msg { return ErrorMsg{Err: err} })
	} else if n := m.app.RemindDue(time.Now()); n > 0 {
		cmds = append(cmds, func() tea.Msg {
			return StatusMsg{Message: fmt.Sprintf("%d task(s) due or overdue", n)}
		})
	}

	return tea.Batch(cmds...)
}

// Update handles messages
func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	logging.Debugf("ui: root received %T", msg)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

		// Reserve space for header (1 line) and footer (3 lines)
		m.form = m.form.SetSize(m.width, m.height-4)
		return m, nil

	case tea.KeyMsg:
		// Clear status/error on any keypress
		m.statusMsg = ""
		m.errorMsg = ""
		m.form = m.form.ClearMessages()

		armed := m.quitArmed
		m.quitArmed = false

		isInputMode := m.currentView == ViewForm && m.form.IsInputMode()

		switch {
		case key.Matches(msg, m.keys.Quit):
			// ctrl+c always quits, but 'q' only quits when not in input mode
			if msg.String() == "ctrl+c" || !isInputMode {
				return m.quit(armed)
			}

		case key.Matches(msg, m.keys.ThemeCycle):
			return m, m.cycleTheme()
		}

		if m.currentView == ViewHelp {
			if key.Matches(msg, m.keys.Help) || key.Matches(msg, m.keys.Cancel) {
				m.currentView = ViewForm
			}
			return m, nil
		}

		if !isInputMode && key.Matches(msg, m.keys.Help) {
			m.currentView = ViewHelp
			return m, nil
		}

	case ErrorMsg:
		m.errorMsg = apperrors.GetUserMessage(msg.Err)
		return m, nil

	case StatusMsg:
		m.statusMsg = msg.Message
		return m, nil

	case ThemeChangedMsg:
		m.statusMsg = fmt.Sprintf("Theme: %s", msg.ThemeName)
		return m, nil
	}

	newForm, cmd := m.form.Update(msg)
	m.form = newForm.(views.FormView)
	return m, cmd
}

// quit leaves the program, asking once for confirmation when there are
// unsaved changes
func (m RootModel) quit(armed bool) (tea.Model, tea.Cmd) {
	if m.form.HasUnsavedChanges() && !armed {
		m.quitArmed = true
		m.statusMsg = "Unsaved changes. Press again to quit, ctrl+w to save."
		return m, nil
	}
	return m, tea.Quit
}

// View renders the UI
func (m RootModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var sections []string

	sections = append(sections, m.renderHeader())

	contentHeight := m.height - 4
	var content string
	if m.currentView == ViewHelp {
		content = m.help.View(m.keys)
	} else {
		content = m.form.View()
	}

	// Ensure content fills available space
	contentLines := strings.Count(content, "\n") + 1
	if contentLines < contentHeight {
		content += strings.Repeat("\n", contentHeight-contentLines)
	}
	sections = append(sections, content)

	sections = append(sections, m.renderFooter())

	return strings.Join(sections, "\n")
}

// renderHeader renders the header bar
func (m RootModel) renderHeader() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	title := styles.Header.Render("tasklist")

	indicatorStyle := lipgloss.NewStyle().
		Foreground(t.Subtle).
		Padding(0, 1)

	snap := m.form.Snapshot()
	position := "[empty]"
	if snap.HasTask {
		position = fmt.Sprintf("[%d/%d]", snap.Position, snap.Total)
	}
	if m.form.HasUnsavedChanges() {
		position += " *"
	}
	positionIndicator := indicatorStyle.Render(position)

	themeIndicator := indicatorStyle.Render(fmt.Sprintf("theme: %s", t.Name))

	leftSide := lipgloss.JoinHorizontal(lipgloss.Center, title, positionIndicator)
	rightSide := themeIndicator

	gap := m.width - lipgloss.Width(leftSide) - lipgloss.Width(rightSide)
	if gap < 0 {
		gap = 0
	}

	return leftSide + strings.Repeat(" ", gap) + rightSide
}

// renderFooter renders the footer/status bar
func (m RootModel) renderFooter() string {
	styles := theme.Current.Styles

	hint := func(k, desc string) string {
		return styles.HelpKey.Render(k) + styles.HelpDesc.Render(" "+desc)
	}
	sep := styles.HelpSeparator.Render(" │ ")

	var statusLine string
	switch {
	case m.errorMsg != "":
		statusLine = styles.StatusError.Render(m.errorMsg)
	case m.form.Error() != "":
		statusLine = styles.StatusError.Render(m.form.Error())
	case m.statusMsg != "":
		statusLine = styles.StatusInfo.Render(m.statusMsg)
	case m.form.Status() != "":
		statusLine = styles.StatusInfo.Render(m.form.Status())
	}

	var line1, line2 string
	switch {
	case m.currentView == ViewHelp:
		line1 = hint("?/esc", "close help")
	case m.form.IsPrompting():
		line1 = hint("enter", "confirm") + sep + hint("esc", "cancel")
	default:
		snap := m.form.Snapshot()
		var nav []string
		if snap.CanPrevious {
			nav = append(nav, hint("←/C-p", "prev"))
		}
		if snap.CanNext {
			nav = append(nav, hint("→/C-n", "next"))
		}
		nav = append(nav, hint("tab", "field"), hint("space", "complete"))
		line1 = strings.Join(nav, sep)
		line2 = hint("C-s", "save task") + sep +
			hint("C-w", "save list") + sep +
			hint("C-a", "new") + sep +
			hint("C-t", "theme") + sep +
			hint("?", "help")
	}

	var lines []string
	if statusLine != "" {
		lines = append(lines, statusLine)
	}
	if line1 != "" {
		lines = append(lines, line1)
	}
	if line2 != "" {
		lines = append(lines, line2)
	}

	return strings.Join(lines, "\n")
}

// cycleTheme switches to the next available theme
func (m RootModel) cycleTheme() tea.Cmd {
	next := theme.Next()
	theme.SetTheme(next)
	return func() tea.Msg {
		return ThemeChangedMsg{ThemeName: next.Name}
	}
}
