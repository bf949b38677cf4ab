package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/dori/tasklist/internal/app"
	"github.com/dori/tasklist/internal/config"
	"github.com/dori/tasklist/internal/model"
	"github.com/dori/tasklist/internal/report"
	"github.com/dori/tasklist/internal/storage"
)

// AddCommand handles the add command
type AddCommand struct {
	config *config.Config
	out    io.Writer
}

// NewAddCommand creates a new add command handler
func NewAddCommand(cfg *config.Config, out io.Writer) *AddCommand {
	return &AddCommand{config: cfg, out: out}
}

// Execute appends a task built from args and saves the list. The last
// argument is the deadline; the rest form the name.
func (c *AddCommand) Execute(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: tasklist add <name> <dd/MM/yyyy>")
	}
	name := strings.Join(args[:len(args)-1], " ")
	deadline := args[len(args)-1]

	a, err := app.New(c.config, app.Options{})
	if err != nil {
		return err
	}
	defer a.Close()

	// Never overwrite a file that could not be read
	if a.LoadErr != nil {
		return a.LoadErr
	}

	if err := a.AddTask(name, deadline); err != nil {
		return err
	}
	if err := a.SaveList(); err != nil {
		return err
	}

	snap := a.Snapshot()
	_, err = fmt.Fprintf(c.out, "Added task %s: %s (due %s)\n", snap.ID, snap.Fields.Name, snap.Fields.Deadline)
	return err
}

// ListCommand handles the list command
type ListCommand struct {
	config *config.Config
	out    io.Writer
}

// NewListCommand creates a new list command handler
func NewListCommand(cfg *config.Config, out io.Writer) *ListCommand {
	return &ListCommand{config: cfg, out: out}
}

// Execute prints every stored task in the text report layout
func (c *ListCommand) Execute() error {
	tasks, err := loadStrict(c.config)
	if err != nil {
		return err
	}

	if len(tasks) == 0 {
		_, err := fmt.Fprintln(c.out, "No tasks.")
		return err
	}

	data, err := report.Render(tasks, report.FormatText)
	if err != nil {
		return err
	}
	_, err = c.out.Write(data)
	return err
}

// ExportCommand handles the export command
type ExportCommand struct {
	config *config.Config
	out    io.Writer
}

// NewExportCommand creates a new export command handler
func NewExportCommand(cfg *config.Config, out io.Writer) *ExportCommand {
	return &ExportCommand{config: cfg, out: out}
}

// Execute writes the report to the configured destination
func (c *ExportCommand) Execute() error {
	repo, err := storage.OpenExisting(c.config.Storage, c.config.TaskFilePath())
	if err != nil {
		return err
	}
	defer repo.Close()

	return report.NewExporter(repo, c.out).Export(c.config.ReportFile, c.config.ReportFormat)
}

// loadStrict reads the stored list, treating a missing file as empty
// and any other failure as an error
func loadStrict(cfg *config.Config) ([]*model.Task, error) {
	repo, err := storage.OpenExisting(cfg.Storage, cfg.TaskFilePath())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer repo.Close()

	tasks, err := repo.Load()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return tasks, nil
}
