package config

import (
	"strings"

	"github.com/dori/tasklist/internal/report"
	"github.com/dori/tasklist/internal/storage"
)

// Overrides holds command line flag values; nil fields were not set
type Overrides struct {
	DataDir      *string
	File         *string
	Storage      *string
	ReportFile   *string
	ReportFormat *string
	Theme        *string
	Notify       *bool
}

// Loader applies the cascade defaults < environment < flags
type Loader struct {
	config *Config
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		config: NewConfig(),
	}
}

// Load returns defaults overridden by the environment
func (l *Loader) Load() (*Config, error) {
	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}
	if err := l.config.Validate(); err != nil {
		return nil, err
	}
	return l.config, nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *Overrides) (*Config, error) {
	cfg, err := l.Load()
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		applyOverrides(cfg, overrides)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyOverrides(cfg *Config, o *Overrides) {
	if o.DataDir != nil {
		cfg.DataDir = *o.DataDir
	}
	if o.File != nil {
		cfg.File = *o.File
	}
	if o.Storage != nil {
		cfg.Storage = storageKind(*o.Storage)
	}
	if o.ReportFile != nil {
		cfg.ReportFile = *o.ReportFile
	}
	if o.ReportFormat != nil {
		cfg.ReportFormat = reportFormat(*o.ReportFormat)
	}
	if o.Theme != nil {
		cfg.Theme = strings.ToLower(*o.Theme)
	}
	if o.Notify != nil {
		cfg.Notify = *o.Notify
	}
}

// storageKind normalizes a flag value; unknown names pass through for Validate to reject
func storageKind(s string) storage.Kind {
	if k, err := storage.ParseKind(s); err == nil {
		return k
	}
	return storage.Kind(s)
}

func reportFormat(s string) report.Format {
	if f, err := report.ParseFormat(s); err == nil {
		return f
	}
	return report.Format(s)
}
