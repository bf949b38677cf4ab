package notify

import (
	"os/exec"
	"strconv"
	"time"
)

// Urgency levels for notifications. The zero value is normal, matching
// notify-send's own default.
type Urgency int

const (
	UrgencyNormal Urgency = iota
	UrgencyLow
	UrgencyCritical
)

// Notification represents a desktop notification
type Notification struct {
	Title   string
	Body    string
	Urgency Urgency
	Timeout time.Duration
	Icon    string // Optional icon name
}

// Notifier handles sending desktop notifications
type Notifier struct {
	enabled bool
	run     func(name string, args ...string) error
}

// NewNotifier creates a notifier that shells out to notify-send
func NewNotifier(enabled bool) *Notifier {
	return &Notifier{
		enabled: enabled,
		run: func(name string, args ...string) error {
			return exec.Command(name, args...).Run()
		},
	}
}

// SetEnabled enables or disables notifications
func (n *Notifier) SetEnabled(enabled bool) {
	n.enabled = enabled
}

// IsEnabled returns whether notifications are enabled
func (n *Notifier) IsEnabled() bool {
	return n.enabled
}

// Send sends a desktop notification using notify-send
func (n *Notifier) Send(notification Notification) error {
	if !n.enabled {
		return nil
	}
	return n.run("notify-send", buildArgs(notification)...)
}

func buildArgs(notification Notification) []string {
	args := []string{}

	switch notification.Urgency {
	case UrgencyLow:
		args = append(args, "-u", "low")
	case UrgencyCritical:
		args = append(args, "-u", "critical")
	default:
		args = append(args, "-u", "normal")
	}

	// notify-send takes milliseconds
	if notification.Timeout > 0 {
		args = append(args, "-t", strconv.Itoa(int(notification.Timeout.Milliseconds())))
	}

	if notification.Icon != "" {
		args = append(args, "-i", notification.Icon)
	}

	args = append(args, "-a", "tasklist")

	args = append(args, notification.Title)
	if notification.Body != "" {
		args = append(args, notification.Body)
	}
	return args
}

// SendSaved confirms that the list was written
func (n *Notifier) SendSaved(count int, path string) error {
	return n.Send(Notification{
		Title:   "Tasks saved successfully.",
		Body:    strconv.Itoa(count) + " tasks written to " + path,
		Urgency: UrgencyLow,
		Timeout: 5 * time.Second,
		Icon:    "document-save-symbolic",
	})
}

// SendDueReminder warns about a task due today or already overdue
func (n *Notifier) SendDueReminder(taskName string, overdue bool) error {
	body := "Task is due today"
	urgency := UrgencyNormal
	if overdue {
		body = "Task is now overdue!"
		urgency = UrgencyCritical
	}

	return n.Send(Notification{
		Title:   taskName,
		Body:    body,
		Urgency: urgency,
		Timeout: 15 * time.Second,
		Icon:    "emblem-important-symbolic",
	})
}
