package plugin

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/notecards/internal/config"
	"github.com/marcus/notecards/internal/keymap"
	"github.com/marcus/notecards/internal/notes"
	"github.com/marcus/notecards/internal/slot"
)

// Plugin defines the interface for views hosted by the app.
type Plugin interface {
	ID() string
	Name() string
	Init(ctx *Context) error
	Start() tea.Cmd
	Stop()
	Update(msg tea.Msg) (Plugin, tea.Cmd)
	View(width, height int) string
	Commands() []Command
	FocusContext() string
}

// TextInputConsumer is an optional capability for plugins that need
// alphanumeric key input to be forwarded as typed text instead of being
// intercepted by app-level shortcuts.
type TextInputConsumer interface {
	ConsumesTextInput() bool
}

// Context carries the shared dependencies a plugin is initialized with.
type Context struct {
	Config *config.Config
	Store  *notes.Store
	Keymap *keymap.Registry
	Logger *slog.Logger

	// Changes reports external writes to the notes slot. Nil when the slot
	// is not watched.
	Changes <-chan slot.Change
}

// Category represents a logical grouping of commands.
type Category string

const (
	CategoryNavigation Category = "Navigation"
	CategoryActions    Category = "Actions"
	CategoryView       Category = "View"
	CategorySearch     Category = "Search"
	CategoryEdit       Category = "Edit"
	CategorySystem     Category = "System"
)

// Command represents a keybinding command exposed by a plugin.
type Command struct {
	ID          string   // Unique identifier (e.g., "new-note")
	Name        string   // Short name for footer (e.g., "New")
	Description string   // Full description
	Category    Category // Logical grouping
	Context     string   // Activation context
	Priority    int      // Footer display priority: 1=highest, 0=default (treated as 99)
}

// FooterPriority returns the effective sort priority of c.
func (c Command) FooterPriority() int {
	if c.Priority == 0 {
		return 99
	}
	return c.Priority
}
