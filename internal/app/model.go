package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/notecards/internal/config"
	"github.com/marcus/notecards/internal/keymap"
	"github.com/marcus/notecards/internal/plugin"
)

const errorToastDuration = 5 * time.Second

// Model is the root Bubble Tea model. It hosts a single plugin and owns the
// header, footer and toasts around it.
type Model struct {
	plugin plugin.Plugin
	keymap *keymap.Registry
	cfg    *config.Config

	// UI state
	width         int
	height        int
	activeContext string

	// Status/toast messages
	statusMsg     string
	statusExpiry  time.Time
	statusIsError bool

	// Errors from before the program started, shown once it runs
	startupErrors []error

	// Ready state
	ready bool

	currentVersion string

	now func() time.Time
}

// New creates a new application model around an initialized plugin.
func New(p plugin.Plugin, km *keymap.Registry, cfg *config.Config, currentVersion string) Model {
	if cfg == nil {
		cfg = config.Default()
	}
	return Model{
		plugin:         p,
		keymap:         km,
		cfg:            cfg,
		activeContext:  p.FocusContext(),
		currentVersion: currentVersion,
		now:            time.Now,
	}
}

// ReportOnStart queues err to be shown as an error toast when the program
// starts. Used for setup failures that are not fatal.
func (m *Model) ReportOnStart(err error) {
	if err != nil {
		m.startupErrors = append(m.startupErrors, err)
	}
}

// Init starts the clock and the hosted plugin.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(), m.plugin.Start()}
	for _, err := range m.startupErrors {
		cmds = append(cmds, ReportError(err))
	}
	return tea.Batch(cmds...)
}

// ShowToast displays a temporary status message.
func (m *Model) ShowToast(msg string, duration time.Duration, isError bool) {
	if duration <= 0 {
		duration = m.cfg.UI.ToastDuration
	}
	m.statusMsg = msg
	m.statusExpiry = m.now().Add(duration)
	m.statusIsError = isError
}

// ClearToast clears an expired status message.
func (m *Model) ClearToast() {
	if m.statusMsg != "" && m.now().After(m.statusExpiry) {
		m.statusMsg = ""
		m.statusIsError = false
	}
}

// consumesTextInput reports whether the plugin wants printable keys.
func (m Model) consumesTextInput() bool {
	if c, ok := m.plugin.(plugin.TextInputConsumer); ok {
		return c.ConsumesTextInput()
	}
	return false
}

// updateContext syncs the active keymap context with the plugin's focus.
func (m *Model) updateContext() {
	m.activeContext = m.plugin.FocusContext()
}

