package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/marcus/notecards/internal/slot"
	"gopkg.in/yaml.v3"
)

const (
	configDir  = ".config/notecards"
	configFile = "config.json"
)

// rawConfig is the unmarshaling intermediary. Pointer fields distinguish
// "unset" from zero values.
type rawConfig struct {
	Storage rawStorageConfig `json:"storage" yaml:"storage"`
	IDs     IDsConfig        `json:"ids" yaml:"ids"`
	Keymap  KeymapConfig     `json:"keymap" yaml:"keymap"`
	UI      rawUIConfig      `json:"ui" yaml:"ui"`
}

type rawStorageConfig struct {
	Backend string `json:"backend" yaml:"backend"`
	Dir     string `json:"dir" yaml:"dir"`
	Key     string `json:"key" yaml:"key"`
	Watch   *bool  `json:"watch" yaml:"watch"`
}

type rawUIConfig struct {
	ToastDuration   string `json:"toastDuration" yaml:"toastDuration"`
	Columns         *int   `json:"columns" yaml:"columns"`
	MarkdownPreview *bool  `json:"markdownPreview" yaml:"markdownPreview"`
	Accent          string `json:"accent" yaml:"accent"`
}

// Load loads configuration from the default location.
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom loads configuration from a specific path.
// If path is empty, uses ~/.config/notecards/config.json. Files ending in
// .yaml or .yml are parsed as YAML, everything else as JSON.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			cfg.Storage.Dir = ExpandPath(cfg.Storage.Dir)
			return cfg, nil // Return defaults on error
		}
		path = filepath.Join(home, configDir, configFile)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.Storage.Dir = ExpandPath(cfg.Storage.Dir)
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	var raw rawConfig
	if isYAML(path) {
		err = yaml.Unmarshal(data, &raw)
	} else {
		err = json.Unmarshal(data, &raw)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	mergeConfig(cfg, &raw)
	cfg.Storage.Dir = ExpandPath(cfg.Storage.Dir)

	if err := slot.ValidateKey(cfg.Storage.Key); err != nil {
		return nil, fmt.Errorf("storage.key: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// mergeConfig merges raw config values into the config.
func mergeConfig(cfg *Config, raw *rawConfig) {
	// Storage
	if raw.Storage.Backend != "" {
		cfg.Storage.Backend = raw.Storage.Backend
	}
	if raw.Storage.Dir != "" {
		cfg.Storage.Dir = raw.Storage.Dir
	}
	if raw.Storage.Key != "" {
		cfg.Storage.Key = raw.Storage.Key
	}
	if raw.Storage.Watch != nil {
		cfg.Storage.Watch = *raw.Storage.Watch
	}

	// IDs
	if raw.IDs.Format != "" {
		cfg.IDs.Format = raw.IDs.Format
	}

	// Keymap
	for k, v := range raw.Keymap.Overrides {
		cfg.Keymap.Overrides[k] = v
	}

	// UI
	if raw.UI.ToastDuration != "" {
		if d, err := time.ParseDuration(raw.UI.ToastDuration); err == nil {
			cfg.UI.ToastDuration = d
		}
	}
	if raw.UI.Columns != nil {
		cfg.UI.Columns = *raw.UI.Columns
	}
	if raw.UI.MarkdownPreview != nil {
		cfg.UI.MarkdownPreview = *raw.UI.MarkdownPreview
	}
	if raw.UI.Accent != "" {
		cfg.UI.Accent = raw.UI.Accent
	}
}

// ExpandPath expands ~ to home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, configDir, configFile)
}
