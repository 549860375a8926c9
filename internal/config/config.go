// Package config resolves tada settings from flags, TADA_* environment
// variables and an optional config.yaml, in that order of precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"

	"github.com/Makepad-fr/tada/internal/ids"
	"github.com/Makepad-fr/tada/internal/ui"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	envPrefix      = "TADA"

	KeyConfigDir = "config_dir"
	KeyTheme     = "theme"
	KeyIDs       = "ids"
	KeyLogLevel  = "log_level"
	KeyLogFile   = "log_file"
	KeyNoColor   = "no_color"
)

// Config is the resolved runtime configuration.
type Config struct {
	Theme    string
	IDs      string
	LogLevel log.Level
	LogFile  string
	NoColor  bool
}

// DefaultDir is ~/.tada, or .tada when the home directory is unknown.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tada"
	}
	return filepath.Join(home, ".tada")
}

// NewViper returns a viper instance with defaults and environment binding
// set up. Callers bind their flags to it before calling Load.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyConfigDir, DefaultDir())
	v.SetDefault(KeyTheme, "classic")
	v.SetDefault(KeyIDs, "ulid")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyNoColor, false)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// Dir returns the directory holding config.yaml: the config-dir flag,
// TADA_CONFIG_DIR, or DefaultDir.
func Dir(v *viper.Viper) string { return v.GetString(KeyConfigDir) }

// Load reads config.yaml from dir, if present, and validates the result.
// A missing file is not an error.
func Load(v *viper.Viper, dir string) (Config, error) {
	if dir != "" {
		v.SetConfigName(configFileName)
		v.SetConfigType(configFileType)
		v.AddConfigPath(dir)
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	lvl, err := log.ParseLevel(v.GetString(KeyLogLevel))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", KeyLogLevel, err)
	}
	cfg := Config{
		Theme:    v.GetString(KeyTheme),
		IDs:      v.GetString(KeyIDs),
		LogLevel: lvl,
		LogFile:  v.GetString(KeyLogFile),
		NoColor:  v.GetBool(KeyNoColor),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the theme and id generator names.
func (c Config) Validate() error {
	if _, err := ui.ThemeByName(c.Theme); err != nil {
		return fmt.Errorf("%s: %w", KeyTheme, err)
	}
	if _, err := ids.New(c.IDs); err != nil {
		return fmt.Errorf("%s: %w", KeyIDs, err)
	}
	return nil
}
