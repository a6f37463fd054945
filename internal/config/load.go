package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. FORKLINE_ROOT_DATA.
const EnvPrefix = "FORKLINE"

// SetDefaults registers every default with v so that environment variables
// can override keys that no config file mentions.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	// root.data has no default so that IsSet reports whether a file or the
	// environment supplied it.
	_ = v.BindEnv("root.data", EnvPrefix+"_ROOT_DATA")
	v.SetDefault("repl.prompt", d.REPL.Prompt)
	v.SetDefault("repl.show_prompt", d.REPL.ShowPrompt)
	v.SetDefault("repl.verbose_errors", d.REPL.VerboseErrors)
	v.SetDefault("examine.format", d.Examine.Format)
	v.SetDefault("examine.color", d.Examine.Color)
	v.SetDefault("examine.show_owners", d.Examine.ShowOwners)
	v.SetDefault("examine.max_width", d.Examine.MaxWidth)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("tracing.enabled", d.Tracing.Enabled)
	v.SetDefault("tracing.exporter", d.Tracing.Exporter)
	v.SetDefault("tracing.file", d.Tracing.File)
	v.SetDefault("tracing.endpoint", d.Tracing.Endpoint)
}

// ConfigureEnv enables FORKLINE_* environment overrides on v.
func ConfigureEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// ReadFile reads the config file configured on v. A missing file found by
// search is not an error; an explicitly named file that cannot be read is.
func ReadFile(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

// Load unmarshals and validates the configuration held by v.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
