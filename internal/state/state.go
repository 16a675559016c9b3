package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// Preview modes for the note detail view.
const (
	PreviewMarkdown = "markdown"
	PreviewPlain    = "plain"
)

// State holds persistent user preferences. The search query is deliberately
// absent: it lives only as long as the widget.
type State struct {
	PreviewMode string `json:"previewMode,omitempty"` // "markdown" or "plain", empty = use config
	GridColumns int    `json:"gridColumns,omitempty"` // 0 = use config
}

var (
	current *State
	mu      sync.RWMutex
	path    string
)

// Init loads state from the default location.
func Init() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	return InitWithDir(filepath.Join(home, ".config", "notecards"))
}

// InitWithDir loads state from a specified directory.
// This is primarily for testing to avoid reading real user state.
func InitWithDir(dir string) error {
	path = filepath.Join(dir, "state.json")
	return Load()
}

// Load reads state from disk.
func Load() error {
	mu.Lock()
	defer mu.Unlock()

	current = &State{}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil // no state file yet, use defaults
	}
	if err != nil {
		return err
	}

	return json.Unmarshal(data, current)
}

// Save writes state to disk.
func Save() error {
	mu.RLock()
	defer mu.RUnlock()

	if current == nil || path == "" {
		return nil
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(current, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// GetPreviewMode returns the saved preview mode, or "" when unset.
func GetPreviewMode() string {
	mu.RLock()
	defer mu.RUnlock()
	if current == nil {
		return ""
	}
	return current.PreviewMode
}

// SetPreviewMode saves the preview mode preference.
func SetPreviewMode(mode string) error {
	mu.Lock()
	if current == nil {
		current = &State{}
	}
	current.PreviewMode = mode
	mu.Unlock()
	return Save()
}

// GetGridColumns returns the saved card grid column count.
// Returns 0 if no preference is saved (use default).
func GetGridColumns() int {
	mu.RLock()
	defer mu.RUnlock()
	if current == nil {
		return 0
	}
	return current.GridColumns
}

// SetGridColumns saves the card grid column count.
func SetGridColumns(cols int) error {
	mu.Lock()
	if current == nil {
		current = &State{}
	}
	current.GridColumns = cols
	mu.Unlock()
	return Save()
}
