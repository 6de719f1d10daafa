package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database   Database
	Navigation Navigation
	UI         UI
}

// Database holds sqlite settings.
type Database struct {
	Path string
}

// Navigation holds tracker defaults.
type Navigation struct {
	// BatchSize is how many steps the multi-step advance/retreat keys move.
	BatchSize int
	// RowCombine is the default for newly imported projects.
	RowCombine bool
}

// UI holds presentation settings.
type UI struct {
	Accent     string
	ShowCounts bool
}

// Load reads configuration from file and env. Env var overrides use prefix BEADTRACK_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "beadtrack", "beadtrack.db"))
	v.SetDefault("navigation.batch_size", 5)
	v.SetDefault("navigation.row_combine", false)
	v.SetDefault("ui.accent", "#f5c2e7")
	v.SetDefault("ui.show_counts", true)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("BEADTRACK_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "beadtrack"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("BEADTRACK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.Navigation.BatchSize < 1 {
		c.Navigation.BatchSize = 1
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config directory if
// needed. Used by the TUI settings view.
func Save(cfg Config) error {
	path := os.Getenv("BEADTRACK_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "beadtrack", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("navigation.batch_size", cfg.Navigation.BatchSize)
	v.Set("navigation.row_combine", cfg.Navigation.RowCombine)
	v.Set("ui.accent", cfg.UI.Accent)
	v.Set("ui.show_counts", cfg.UI.ShowCounts)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
