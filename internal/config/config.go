package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	apperrors "github.com/dori/tasklist/internal/errors"
	"github.com/dori/tasklist/internal/report"
	"github.com/dori/tasklist/internal/storage"
	"github.com/dori/tasklist/internal/ui/theme"
)

// Environment variables read by LoadFromEnvironment
const (
	EnvDataDir      = "TASKLIST_DATA_DIR"
	EnvFile         = "TASKLIST_FILE"
	EnvStorage      = "TASKLIST_STORAGE"
	EnvReportFile   = "TASKLIST_REPORT_FILE"
	EnvReportFormat = "TASKLIST_REPORT_FORMAT"
	EnvTheme        = "TASKLIST_THEME"
	EnvNotify       = "TASKLIST_NOTIFY"
)

// Config holds all configuration options for tasklist
type Config struct {
	DataDir      string
	File         string
	Storage      storage.Kind
	ReportFile   string
	ReportFormat report.Format
	Theme        string
	Notify       bool
}

// DefaultDataDir returns the default data directory path
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tasklist"
	}
	return filepath.Join(home, ".local", "share", "tasklist")
}

// NewConfig creates a configuration with defaults
func NewConfig() *Config {
	return &Config{
		DataDir:      DefaultDataDir(),
		File:         "tasks.dat",
		Storage:      storage.KindJSON,
		ReportFile:   "tasks_output.txt",
		ReportFormat: report.FormatText,
		Theme:        "nord",
	}
}

// TaskFilePath returns the task file location. A relative File is
// resolved against DataDir.
func (c *Config) TaskFilePath() string {
	if filepath.IsAbs(c.File) {
		return c.File
	}
	return filepath.Join(c.DataDir, c.File)
}

// LoadFromEnvironment overrides fields with any TASKLIST_* variables set
func (c *Config) LoadFromEnvironment() error {
	if dir := os.Getenv(EnvDataDir); dir != "" {
		c.DataDir = dir
	}
	if file := os.Getenv(EnvFile); file != "" {
		c.File = file
	}
	if kind := os.Getenv(EnvStorage); kind != "" {
		k, err := storage.ParseKind(kind)
		if err != nil {
			return apperrors.NewValidationError(apperrors.CodeInvalidConfig, err.Error()).
				WithContext("env", EnvStorage)
		}
		c.Storage = k
	}
	if file := os.Getenv(EnvReportFile); file != "" {
		c.ReportFile = file
	}
	if format := os.Getenv(EnvReportFormat); format != "" {
		f, err := report.ParseFormat(format)
		if err != nil {
			return apperrors.NewValidationError(apperrors.CodeInvalidConfig, err.Error()).
				WithContext("env", EnvReportFormat)
		}
		c.ReportFormat = f
	}
	if theme := os.Getenv(EnvTheme); theme != "" {
		c.Theme = strings.ToLower(theme)
	}
	if notify := os.Getenv(EnvNotify); notify != "" {
		b, err := strconv.ParseBool(notify)
		if err != nil {
			return apperrors.NewValidationError(apperrors.CodeInvalidConfig, "invalid boolean for "+EnvNotify+": "+notify).
				WithContext("env", EnvNotify)
		}
		c.Notify = b
	}
	return nil
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DataDir) == "" {
		return apperrors.NewValidationError(apperrors.CodeInvalidConfig, "data directory cannot be empty")
	}
	if strings.TrimSpace(c.File) == "" {
		return apperrors.NewValidationError(apperrors.CodeInvalidConfig, "task file name cannot be empty")
	}
	if _, err := storage.ParseKind(string(c.Storage)); err != nil {
		return apperrors.NewValidationError(apperrors.CodeInvalidConfig, err.Error())
	}
	if strings.TrimSpace(c.ReportFile) == "" {
		return apperrors.NewValidationError(apperrors.CodeInvalidConfig, "report file cannot be empty")
	}
	if _, err := report.ParseFormat(string(c.ReportFormat)); err != nil {
		return apperrors.NewValidationError(apperrors.CodeInvalidConfig, err.Error())
	}
	if _, ok := theme.ByName(c.Theme); !ok {
		return apperrors.NewValidationError(apperrors.CodeInvalidConfig, "unknown theme: "+c.Theme).
			WithContext("theme", c.Theme)
	}
	return nil
}
