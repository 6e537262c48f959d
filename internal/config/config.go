// Package config loads the settings of the aptsynth command. Settings come
// from, in increasing order of precedence: built-in defaults, an
// aptsynth.toml file, APTSYNTH_* environment variables and command-line
// flags.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jhump/annosynth/classlist"
	"github.com/jhump/annosynth/enumconst"
	"github.com/jhump/annosynth/validation"
)

const (
	// AppName is the application name. It names the config directory and is
	// the environment variable prefix.
	AppName = "aptsynth"
	// FileName is the name of the config file, without extension.
	FileName = "aptsynth"
	// FileType is the config file format.
	FileType = "toml"
)

// ErrInvalidConfig is wrapped by all validation errors.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the complete set of settings.
type Config struct {
	// OutputDir is where artifacts are written.
	OutputDir string `mapstructure:"output_dir"`
	// LogLevel is one of debug, info, warn or error.
	LogLevel string `mapstructure:"log_level"`
	// Parallelism bounds how many generator kinds run at once; 0 means no
	// bound.
	Parallelism int `mapstructure:"parallelism"`
	// Generators are the names of the generator kinds to run, in order.
	Generators []string `mapstructure:"generators"`
	Validation Validation `mapstructure:"validation"`
}

// Validation holds settings of the validation generator.
type Validation struct {
	// BareMarker is the bare marker policy, continue or abort.
	BareMarker string `mapstructure:"bare_marker"`
}

// Default returns the built-in defaults.
func Default() *Config {
	return &Config{
		OutputDir:   "generated",
		LogLevel:    "info",
		Parallelism: 0,
		Generators:  []string{classlist.Name, enumconst.Name, validation.Name},
		Validation:  Validation{BareMarker: validation.BareMarkerContinue.String()},
	}
}

// LoadOptions control where Load looks for settings.
type LoadOptions struct {
	// File is an explicit config file. When set, it must exist and the
	// search directories are not consulted.
	File string
	// SearchDirs replaces the default search path: the working directory,
	// then $XDG_CONFIG_HOME/aptsynth.
	SearchDirs []string
	// Flags, if not nil, are bound to the matching keys. Flags use dashes
	// where keys use underscores, so "output-dir" sets output_dir, and
	// "bare-marker" sets validation.bare_marker. Only flags that were set on
	// the command line take effect.
	Flags *pflag.FlagSet
}

// Load reads and validates the settings. It also returns the path of the
// config file that was used, which is empty if none was found.
func Load(opts LoadOptions) (*Config, string, error) {
	v := viper.New()

	defaults := Default()
	v.SetDefault("output_dir", defaults.OutputDir)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("parallelism", defaults.Parallelism)
	v.SetDefault("generators", defaults.Generators)
	v.SetDefault("validation.bare_marker", defaults.Validation.BareMarker)

	v.SetEnvPrefix(AppName)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.File != "" {
		v.SetConfigFile(opts.File)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType(FileType)
		dirs := opts.SearchDirs
		if dirs == nil {
			dirs = []string{".", filepath.Join(xdg.ConfigHome, AppName)}
		}
		for _, dir := range dirs {
			v.AddConfigPath(dir)
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.File != "" || !errors.As(err, &notFound) {
			return nil, "", fmt.Errorf("failed to read config: %w", err)
		}
	}

	if opts.Flags != nil {
		if err := bindFlags(v, opts.Flags); err != nil {
			return nil, "", err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return &cfg, v.ConfigFileUsed(), nil
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	var err error
	flags.VisitAll(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		key := strings.ReplaceAll(f.Name, "-", "_")
		if f.Name == "bare-marker" {
			key = "validation.bare_marker"
		}
		if !isKnownKey(key) {
			return
		}
		err = v.BindPFlag(key, f)
	})
	return err
}

func isKnownKey(key string) bool {
	switch key {
	case "output_dir", "log_level", "parallelism", "generators", "validation.bare_marker":
		return true
	}
	return false
}

// Validate checks that every setting has a usable value.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.OutputDir) == "" {
		return fmt.Errorf("%w: output_dir must not be empty", ErrInvalidConfig)
	}
	if _, err := c.Level(); err != nil {
		return fmt.Errorf("%w: log_level: %v", ErrInvalidConfig, err)
	}
	if c.Parallelism < 0 {
		return fmt.Errorf("%w: parallelism must not be negative, got %d", ErrInvalidConfig, c.Parallelism)
	}
	if len(c.Generators) == 0 {
		return fmt.Errorf("%w: generators must name at least one generator", ErrInvalidConfig)
	}
	seen := map[string]struct{}{}
	for _, g := range c.Generators {
		if _, ok := seen[g]; ok {
			return fmt.Errorf("%w: generator %q listed twice", ErrInvalidConfig, g)
		}
		seen[g] = struct{}{}
	}
	if _, err := c.BareMarkerPolicy(); err != nil {
		return fmt.Errorf("%w: validation.bare_marker: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Level returns the parsed log level.
func (c *Config) Level() (log.Level, error) {
	return log.ParseLevel(c.LogLevel)
}

// BareMarkerPolicy returns the parsed bare marker policy.
func (c *Config) BareMarkerPolicy() (validation.BareMarkerPolicy, error) {
	return validation.ParseBareMarkerPolicy(c.Validation.BareMarker)
}
