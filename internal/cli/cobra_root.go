package cli

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/dori/tasklist/internal/app"
	"github.com/dori/tasklist/internal/config"
	"github.com/dori/tasklist/internal/logging"
	"github.com/dori/tasklist/internal/ui"
)

// Version is the application version, set at build time
var Version = "0.1.0"

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd    *cobra.Command
	config *config.Config
	out    io.Writer

	// runTUI runs the interactive shell until the user quits
	runTUI func(*app.App) error
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(out io.Writer) *RootCommand {
	root := &RootCommand{
		out:    out,
		runTUI: runProgram,
	}

	root.cmd = &cobra.Command{
		Use:   "tasklist",
		Short: "A small task list with deadlines",
		Long: `tasklist keeps a list of tasks, each with a name, a deadline and a
completion flag. Run it without a command to open the interactive editor.

EXAMPLES:
  tasklist                                  # Open the editor
  tasklist add "Submit report" 15/08/2024   # Append a task and save
  tasklist list                             # Print all tasks
  tasklist export --out tasks.csv --report-format csv

CONFIGURATION:
  Configuration follows this priority order: command-line flags > environment variables > defaults

    TASKLIST_DATA_DIR       Data directory (default: ~/.local/share/tasklist)
    TASKLIST_FILE           Task file name (default: tasks.dat)
    TASKLIST_STORAGE        Storage format: json, yaml, toml, sqlite (default: json)
    TASKLIST_THEME          Theme: nord, dracula, gruvbox, catppuccin (default: nord)
    TASKLIST_NOTIFY         Desktop notifications (default: false)
    TASKLIST_REPORT_FILE    Export destination (default: tasks_output.txt)
    TASKLIST_REPORT_FORMAT  Export format: text, csv, json, pdf (default: text)
    TASKLIST_DEBUG          Set to 1 to write a debug log`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Apply configuration overrides from flags before any command runs
			return root.loadConfig(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return root.runInteractive()
		},
	}
	root.cmd.SetOut(out)

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

// SetArgs overrides the command line arguments
func (r *RootCommand) SetArgs(args []string) {
	r.cmd.SetArgs(args)
}

// Config returns the configuration resolved for the last run
func (r *RootCommand) Config() *config.Config {
	return r.config
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("data-dir", "", "Data directory (overrides TASKLIST_DATA_DIR)")
	flags.String("file", "", "Task file name or path (overrides TASKLIST_FILE)")
	flags.String("storage", "", "Storage format: json, yaml, toml, sqlite (overrides TASKLIST_STORAGE)")
	flags.String("theme", "", "Theme name (overrides TASKLIST_THEME)")
	flags.Bool("notify", false, "Send desktop notifications (overrides TASKLIST_NOTIFY)")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	addCmd := &cobra.Command{
		Use:   "add <name> <dd/MM/yyyy>",
		Short: "Add a task and save the list",
		Long: `Append a task to the stored list and save it.
All arguments but the last form the name; the last is the deadline.

Example:
  tasklist add Submit report 15/08/2024`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewAddCommand(r.config, r.out).Execute(args)
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Print all stored tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewListCommand(r.config, r.out).Execute()
		},
	}

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write the stored tasks to a report file",
		Long: `Write the stored tasks to a report file.

Supported formats:
  text - one block per task followed by a dashed separator (also echoed to stdout)
  csv  - comma-separated values with a header row
  json - array of task objects
  pdf  - printable table`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if flags.Changed("out") {
				r.config.ReportFile, _ = flags.GetString("out")
			}
			if flags.Changed("report-format") {
				value, _ := flags.GetString("report-format")
				format, err := parseReportFormat(value)
				if err != nil {
					return err
				}
				r.config.ReportFormat = format
			}
			return NewExportCommand(r.config, r.out).Execute()
		},
	}
	exportCmd.Flags().String("out", "", "Report destination (overrides TASKLIST_REPORT_FILE)")
	exportCmd.Flags().String("report-format", "", "Report format: text, csv, json, pdf (overrides TASKLIST_REPORT_FORMAT)")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(r.out, "tasklist v%s\n", Version)
			return err
		},
	}

	r.cmd.AddCommand(
		addCmd,
		listCmd,
		exportCmd,
		versionCmd,
	)
}

// loadConfig resolves configuration from defaults, environment and flags.
// cmd is the command being run; its local flags override too.
func (r *RootCommand) loadConfig(cmd *cobra.Command) error {
	flags := r.cmd.PersistentFlags()
	local := cmd.Flags()
	overrides := &config.Overrides{}

	if flags.Changed("data-dir") {
		v, _ := flags.GetString("data-dir")
		overrides.DataDir = &v
	}
	if flags.Changed("file") {
		v, _ := flags.GetString("file")
		overrides.File = &v
	}
	if flags.Changed("storage") {
		v, _ := flags.GetString("storage")
		overrides.Storage = &v
	}
	if flags.Changed("theme") {
		v, _ := flags.GetString("theme")
		overrides.Theme = &v
	}
	if flags.Changed("notify") {
		v, _ := flags.GetBool("notify")
		overrides.Notify = &v
	}
	if local.Changed("out") {
		v, _ := local.GetString("out")
		overrides.ReportFile = &v
	}
	if local.Changed("report-format") {
		v, _ := local.GetString("report-format")
		overrides.ReportFormat = &v
	}

	cfg, err := config.NewLoader().LoadWithOverrides(overrides)
	if err != nil {
		return err
	}
	r.config = cfg
	logging.Debugf("cli: data=%s storage=%s theme=%s", cfg.TaskFilePath(), cfg.Storage, cfg.Theme)
	return nil
}

// runInteractive opens the single-instance session and runs the editor
func (r *RootCommand) runInteractive() error {
	application, err := app.New(r.config, app.Options{SingleInstance: true})
	if err != nil {
		return err
	}
	defer application.Close()

	return r.runTUI(application)
}

func runProgram(application *app.App) error {
	p := tea.NewProgram(
		ui.NewRootModel(application),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
