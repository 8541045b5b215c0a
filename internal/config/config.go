// Package config loads the settings of blockedit from the config file, the
// environment and the command line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config keys.
const (
	KeyLogFile       = "log.file"
	KeyLogLevel      = "log.level"
	KeyLogConsole    = "log.console"
	KeyToolbarOffset = "editor.toolbar_offset"
	KeyHistoryLimit  = "editor.history_limit"
	KeyDocument      = "editor.document"
)

// EnvPrefix is the prefix of the environment variables overriding the
// config, like BLOCKEDIT_LOG_LEVEL.
const EnvPrefix = "BLOCKEDIT"

// Config holds the settings.
type Config struct {
	Log    LogConfig    `mapstructure:"log"`
	Editor EditorConfig `mapstructure:"editor"`
}

// LogConfig holds the settings of the logs.
type LogConfig struct {
	// The rotated JSON log file. No file is written when empty.
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
	// Whether the logs are also written on the standard error.
	Console bool `mapstructure:"console"`
}

// EditorConfig holds the settings of the editor.
type EditorConfig struct {
	// The number of lines between the toolbar and the selection.
	ToolbarOffset int `mapstructure:"toolbar_offset"`
	HistoryLimit  int `mapstructure:"history_limit"`
	// The document opened when no file is given.
	Document string `mapstructure:"document"`
}

// SetDefaults registers the default values.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogConsole, false)
	v.SetDefault(KeyToolbarOffset, 1)
	v.SetDefault(KeyHistoryLimit, 100)
	v.SetDefault(KeyDocument, "blockedit.yaml")
}

// Init reads the config file and binds the environment. When configFile is
// empty, .blockedit.yaml is searched in the current directory and then in
// the home directory, and it is fine to have none.
func Init(v *viper.Viper, configFile string) error {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("error reading config file '%s': %w", configFile, err)
		}
		return nil
	}

	// Current directory has higher priority than home directory.
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}
	v.SetConfigName(".blockedit")
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}
	return nil
}

// Load returns the typed settings.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if cfg.Editor.HistoryLimit < 0 {
		return nil, fmt.Errorf("invalid config: %s must not be negative", KeyHistoryLimit)
	}
	return &cfg, nil
}
