package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// saveConfig is the marshaling intermediary that writes durations as strings.
type saveConfig struct {
	Storage StorageConfig `json:"storage" yaml:"storage"`
	IDs     IDsConfig     `json:"ids" yaml:"ids"`
	Keymap  KeymapConfig  `json:"keymap" yaml:"keymap"`
	UI      saveUIConfig  `json:"ui" yaml:"ui"`
}

type saveUIConfig struct {
	ToastDuration   string `json:"toastDuration,omitempty" yaml:"toastDuration,omitempty"`
	Columns         *int   `json:"columns,omitempty" yaml:"columns,omitempty"`
	MarkdownPreview *bool  `json:"markdownPreview,omitempty" yaml:"markdownPreview,omitempty"`
	Accent          string `json:"accent,omitempty" yaml:"accent,omitempty"`
}

// toSaveConfig converts Config to the serializable format.
func toSaveConfig(cfg *Config) saveConfig {
	return saveConfig{
		Storage: cfg.Storage,
		IDs:     cfg.IDs,
		Keymap:  cfg.Keymap,
		UI: saveUIConfig{
			ToastDuration:   cfg.UI.ToastDuration.String(),
			Columns:         &cfg.UI.Columns,
			MarkdownPreview: &cfg.UI.MarkdownPreview,
			Accent:          cfg.UI.Accent,
		},
	}
}

// Save writes the config to ~/.config/notecards/config.json.
func Save(cfg *Config) error {
	return SaveTo(ConfigPath(), cfg)
}

// SaveTo writes the config to path, as YAML when path ends in .yaml/.yml.
// Top-level keys in an existing file that Config does not manage are kept.
func SaveTo(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := marshalMerged(path, toSaveConfig(cfg))
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// marshalMerged overlays sc onto the top-level keys already stored at path.
func marshalMerged(path string, sc saveConfig) ([]byte, error) {
	yamlFormat := isYAML(path)

	merged := make(map[string]interface{})
	if existing, err := os.ReadFile(path); err == nil {
		// An unreadable existing file is replaced rather than merged.
		if yamlFormat {
			_ = yaml.Unmarshal(existing, &merged)
		} else {
			_ = json.Unmarshal(existing, &merged)
		}
		if merged == nil {
			merged = make(map[string]interface{})
		}
	}

	managed, err := toMap(sc)
	if err != nil {
		return nil, err
	}
	for k, v := range managed {
		merged[k] = v
	}

	if yamlFormat {
		return yaml.Marshal(merged)
	}
	return json.MarshalIndent(merged, "", "  ")
}

// toMap round-trips sc through JSON so both output formats share key names.
func toMap(sc saveConfig) (map[string]interface{}, error) {
	data, err := json.Marshal(sc)
	if err != nil {
		return nil, err
	}
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// Encode renders cfg in the on-disk format, as YAML or indented JSON.
func Encode(cfg *Config, asYAML bool) ([]byte, error) {
	sc := toSaveConfig(cfg)
	if asYAML {
		return yaml.Marshal(sc)
	}
	return json.MarshalIndent(sc, "", "  ")
}
