// Package config provides configuration types and defaults for forkline.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Config holds all configuration options for forkline.
type Config struct {
	Root    RootConfig    `mapstructure:"root"`
	REPL    REPLConfig    `mapstructure:"repl"`
	Examine ExamineConfig `mapstructure:"examine"`
	Log     LogConfig     `mapstructure:"log"`
	Tracing TracingConfig `mapstructure:"tracing"`
}

// RootConfig configures the commit seeded on the master branch.
type RootConfig struct {
	// Data is the master commit payload, used when no positional argument
	// is given.
	Data string `mapstructure:"data"`
}

// REPLConfig holds interpreter loop options.
type REPLConfig struct {
	Prompt        string `mapstructure:"prompt"`
	ShowPrompt    bool   `mapstructure:"show_prompt"`
	VerboseErrors bool   `mapstructure:"verbose_errors"`
}

// ExamineConfig controls the examine dump.
type ExamineConfig struct {
	// Format is "tree" or "yaml".
	Format string `mapstructure:"format"`
	// Color is "auto", "always" or "never".
	Color      string `mapstructure:"color"`
	ShowOwners bool   `mapstructure:"show_owners"`
	MaxWidth   int    `mapstructure:"max_width"`
}

// LogConfig controls the diagnostic log. Logging is off when File is empty.
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// TracingConfig controls OpenTelemetry span export.
type TracingConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// Exporter is "stdout" (writes JSON spans to File) or "otlp".
	Exporter string `mapstructure:"exporter"`
	File     string `mapstructure:"file"`
	Endpoint string `mapstructure:"endpoint"`
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		REPL: REPLConfig{
			Prompt:     "> ",
			ShowPrompt: true,
		},
		Examine: ExamineConfig{
			Format: "tree",
			Color:  "auto",
		},
		Log: LogConfig{
			Level: "info",
		},
		Tracing: TracingConfig{
			Exporter: "stdout",
			Endpoint: "localhost:4317",
		},
	}
}

// Validate checks the configuration for errors.
func (c Config) Validate() error {
	switch c.Examine.Format {
	case "tree", "yaml":
	default:
		return fmt.Errorf("examine.format: unknown format %q (want tree or yaml)", c.Examine.Format)
	}
	switch c.Examine.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("examine.color: unknown mode %q (want auto, always or never)", c.Examine.Color)
	}
	if c.Examine.MaxWidth < 0 {
		return fmt.Errorf("examine.max_width: must not be negative, got %d", c.Examine.MaxWidth)
	}
	if c.Examine.MaxWidth > 0 && c.Examine.MaxWidth < 2 {
		return fmt.Errorf("examine.max_width: must be at least 2, got %d", c.Examine.MaxWidth)
	}
	if err := c.Tracing.validate(); err != nil {
		return fmt.Errorf("tracing: %w", err)
	}
	return nil
}

func (t TracingConfig) validate() error {
	if !t.Enabled {
		return nil
	}
	switch t.Exporter {
	case "stdout":
		if t.File == "" {
			return fmt.Errorf("file is required for the stdout exporter")
		}
	case "otlp":
		if t.Endpoint == "" {
			return fmt.Errorf("endpoint is required for the otlp exporter")
		}
	default:
		return fmt.Errorf("unknown exporter %q (want stdout or otlp)", t.Exporter)
	}
	return nil
}

// DefaultConfigDir returns the user config directory for forkline.
func DefaultConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "forkline")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "forkline")
}

// LocalConfigFile is the per-directory config file name.
const LocalConfigFile = ".forkline.yaml"

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# forkline configuration

# Payload of the commit seeded on master when no argument is given.
# root:
#   data: initial

repl:
  prompt: "> "
  show_prompt: true      # Disabled automatically when stdin is not a terminal
  verbose_errors: false  # Print "Error: <reason>" instead of "Error"

examine:
  format: tree           # tree or yaml
  color: auto            # auto, always or never
  show_owners: false     # Show each commit's owner count
  max_width: 0           # Truncate payloads wider than this (0 = never)

log:
  # file: /tmp/forkline.log
  level: info

tracing:
  enabled: false
  exporter: stdout       # stdout (JSON spans written to file) or otlp
  # file: /tmp/forkline-spans.json
  endpoint: localhost:4317
`
}
