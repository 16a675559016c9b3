package config

import "time"

// Storage backends.
const (
	BackendFile       = "file"
	BackendSQLite     = "sqlite"      // cgo driver
	BackendSQLitePure = "sqlite-pure" // pure-Go driver
)

// Config is the root configuration structure.
type Config struct {
	Storage StorageConfig `json:"storage" yaml:"storage"`
	IDs     IDsConfig     `json:"ids" yaml:"ids"`
	Keymap  KeymapConfig  `json:"keymap" yaml:"keymap"`
	UI      UIConfig      `json:"ui" yaml:"ui"`
}

// StorageConfig selects where the notes slot lives.
type StorageConfig struct {
	Backend string `json:"backend" yaml:"backend"` // file, sqlite, sqlite-pure
	Dir     string `json:"dir" yaml:"dir"`         // data directory (supports ~ expansion)
	Key     string `json:"key" yaml:"key"`         // slot key holding the collection
	Watch   bool   `json:"watch" yaml:"watch"`     // reload when another process writes the slot
}

// IDsConfig selects the note identifier format.
type IDsConfig struct {
	Format string `json:"format" yaml:"format"` // uuid or ulid
}

// KeymapConfig holds key binding overrides.
type KeymapConfig struct {
	Overrides map[string]string `json:"overrides" yaml:"overrides"`
}

// UIConfig configures UI appearance.
type UIConfig struct {
	ToastDuration   time.Duration `json:"toastDuration" yaml:"toastDuration"`
	Columns         int           `json:"columns" yaml:"columns"`
	MarkdownPreview bool          `json:"markdownPreview" yaml:"markdownPreview"`
	Accent          string        `json:"accent" yaml:"accent"` // hex color, empty = built-in lime
}

const (
	defaultToastDuration = 2 * time.Second
	defaultColumns       = 3
	maxColumns           = 6
)

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend: BackendFile,
			Dir:     "~/.local/share/notecards",
			Key:     "notes",
			Watch:   true,
		},
		IDs: IDsConfig{
			Format: "uuid",
		},
		Keymap: KeymapConfig{
			Overrides: make(map[string]string),
		},
		UI: UIConfig{
			ToastDuration:   defaultToastDuration,
			Columns:         defaultColumns,
			MarkdownPreview: true,
		},
	}
}

// Validate checks the configuration for errors, clamping values that are
// out of range.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendFile, BackendSQLite, BackendSQLitePure:
	default:
		c.Storage.Backend = BackendFile
	}
	if c.Storage.Key == "" {
		c.Storage.Key = "notes"
	}
	if c.IDs.Format != "uuid" && c.IDs.Format != "ulid" {
		c.IDs.Format = "uuid"
	}
	if c.UI.ToastDuration <= 0 {
		c.UI.ToastDuration = defaultToastDuration
	}
	if c.UI.Columns <= 0 {
		c.UI.Columns = defaultColumns
	}
	if c.UI.Columns > maxColumns {
		c.UI.Columns = maxColumns
	}
	return nil
}
