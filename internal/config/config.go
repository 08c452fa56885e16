// Package config loads novdl settings from defaults, an optional YAML file
// and NOVDL_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/metcalfc/novdl/internal/fetch"
)

// Config holds the settings shared by the GUI, TUI and CLI.
type Config struct {
	OutputDir string        `mapstructure:"output_dir"`
	UserAgent string        `mapstructure:"user_agent"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// androidDownloads is the shared download folder on Android devices.
var androidDownloads = "/sdcard/Download"

// Load reads configuration. cfgFile, when set, must exist; otherwise
// config.yaml is looked up in the novdl config dir and the working dir.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetDefault("output_dir", DefaultOutputDir())
	v.SetDefault("user_agent", fetch.DefaultUserAgent)
	v.SetDefault("timeout", fetch.DefaultTimeout)

	v.SetEnvPrefix("NOVDL")
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(Dir())
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.OutputDir = ExpandHome(cfg.OutputDir)
	if cfg.Timeout <= 0 {
		return nil, fmt.Errorf("timeout must be positive, got %s", cfg.Timeout)
	}
	return &cfg, nil
}

// Dir returns XDG_CONFIG_HOME/novdl or ~/.config/novdl.
func Dir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "novdl")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "novdl")
}

// DefaultOutputDir is /sdcard/Download/Novels on Android and
// ~/Downloads/Novels elsewhere.
func DefaultOutputDir() string {
	if fi, err := os.Stat(androidDownloads); err == nil && fi.IsDir() {
		return filepath.Join(androidDownloads, "Novels")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, "Downloads", "Novels")
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
