// Package notes provides the notes widget: a live-filtered card grid of notes
// with a modal composer for writing new ones.
package notes

import (
	"log/slog"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/marcus/notecards/internal/composer"
	"github.com/marcus/notecards/internal/filter"
	"github.com/marcus/notecards/internal/keymap"
	"github.com/marcus/notecards/internal/mouse"
	"github.com/marcus/notecards/internal/msg"
	"github.com/marcus/notecards/internal/note"
	"github.com/marcus/notecards/internal/plugin"
	"github.com/marcus/notecards/internal/state"
	"github.com/marcus/notecards/internal/styles"
)

const (
	pluginID   = "notes"
	pluginName = "notes"

	defaultToastDuration = 2 * time.Second
	minColumns           = 1
	maxColumns           = 6
)

// NotesLoadedMsg reports that the store finished reloading from its slot.
type NotesLoadedMsg struct {
	Count int
}

// SlotChangedMsg reports that another writer replaced the notes slot.
type SlotChangedMsg struct {
	Key string
}

// Plugin implements the notes widget.
type Plugin struct {
	ctx *plugin.Context

	// View dimensions, captured on render
	width  int
	height int

	// Collection state
	all     []note.Note
	visible []note.Note // all, filtered by the search query

	// Grid state. Index 0 is the "add note" card; notes start at 1.
	cursor    int
	scrollRow int
	columns   int

	// Search state. The query lives only as long as the widget.
	search     textinput.Model
	searchMode bool

	// Composer modal state
	composer     *composer.Composer
	showComposer bool
	editor       textarea.Model

	// Detail modal state
	showDetail    bool
	detail        note.Note
	previewMode   string
	renderer      *glamour.TermRenderer
	rendererWidth int

	// Hit regions from the last render
	mouse *mouse.Handler

	// Injected for tests
	now       func() time.Time
	writeClip func(string) error
}

// New creates a new notes plugin.
func New() *Plugin {
	return &Plugin{
		now:       time.Now,
		writeClip: clipboard.WriteAll,
		mouse:     mouse.NewHandler(),
	}
}

// ID returns the plugin identifier.
func (p *Plugin) ID() string { return pluginID }

// Name returns the plugin display name.
func (p *Plugin) Name() string { return pluginName }

// Init initializes the plugin with context.
func (p *Plugin) Init(ctx *plugin.Context) error {
	p.ctx = ctx
	p.all = nil
	p.visible = nil
	p.cursor = 0
	p.scrollRow = 0
	p.searchMode = false
	p.showComposer = false
	p.showDetail = false
	p.composer = composer.New()

	if ctx.Logger == nil {
		ctx.Logger = slog.Default()
	}
	if ctx.Keymap == nil {
		ctx.Keymap = keymap.NewRegistry()
		keymap.RegisterDefaults(ctx.Keymap)
	}

	p.columns = ctx.Config.UI.Columns
	if cols := state.GetGridColumns(); cols > 0 {
		p.columns = cols
	}
	p.columns = clampColumns(p.columns)

	p.previewMode = state.PreviewPlain
	if ctx.Config.UI.MarkdownPreview {
		p.previewMode = state.PreviewMarkdown
	}
	if mode := state.GetPreviewMode(); mode != "" {
		p.previewMode = mode
	}

	si := textinput.New()
	si.Prompt = "/ "
	si.Placeholder = "Search notes"
	si.PromptStyle = styles.SearchPrompt
	si.TextStyle = styles.SearchText
	si.PlaceholderStyle = styles.Subtle
	p.search = si

	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.Prompt = ""
	ta.Placeholder = "Write your note..."
	ta.FocusedStyle = textarea.Style{
		Base:        lipgloss.NewStyle(),
		CursorLine:  lipgloss.NewStyle(),
		EndOfBuffer: styles.Muted,
		Placeholder: styles.Muted,
		Prompt:      lipgloss.NewStyle(),
		Text:        styles.Body,
	}
	ta.BlurredStyle = ta.FocusedStyle
	ta.Blur()
	p.editor = ta

	return nil
}

// Start shows the store's collection and begins listening for slot changes.
// The store arrives loaded.
func (p *Plugin) Start() tea.Cmd {
	p.refresh()
	return p.waitForChange()
}

// Stop cleans up plugin resources.
func (p *Plugin) Stop() {
	p.search.Blur()
	p.editor.Blur()
	p.renderer = nil
}

// Commands returns the commands available in the current focus context.
func (p *Plugin) Commands() []plugin.Command {
	switch ctx := p.FocusContext(); ctx {
	case keymap.ContextDetail:
		return []plugin.Command{
			{ID: "close-detail", Name: "Close", Description: "Close note", Category: plugin.CategoryNavigation, Context: ctx, Priority: 1},
			{ID: "yank-note", Name: "Yank", Description: "Copy note content", Category: plugin.CategoryActions, Context: ctx, Priority: 2},
			{ID: "toggle-preview", Name: "Preview", Description: "Toggle markdown rendering", Category: plugin.CategoryView, Context: ctx, Priority: 3},
		}
	case keymap.ContextComposerPrompt:
		return []plugin.Command{
			{ID: "use-text", Name: "Text", Description: "Use text only", Category: plugin.CategoryEdit, Context: ctx, Priority: 1},
			{ID: "close-composer", Name: "Cancel", Description: "Discard and close", Category: plugin.CategoryNavigation, Context: ctx, Priority: 2},
		}
	case keymap.ContextComposerEditing:
		return []plugin.Command{
			{ID: "save-note", Name: "Save", Description: "Save note", Category: plugin.CategoryEdit, Context: ctx, Priority: 1},
			{ID: "close-composer", Name: "Cancel", Description: "Discard and close", Category: plugin.CategoryNavigation, Context: ctx, Priority: 2},
		}
	case keymap.ContextSearch:
		return []plugin.Command{
			{ID: "close-search", Name: "Done", Description: "Keep filter and return to cards", Category: plugin.CategorySearch, Context: ctx, Priority: 1},
			{ID: "clear-search", Name: "Clear", Description: "Clear filter", Category: plugin.CategorySearch, Context: ctx, Priority: 2},
		}
	default:
		return []plugin.Command{
			{ID: "new-note", Name: "New", Description: "Compose a new note", Category: plugin.CategoryActions, Context: ctx, Priority: 1},
			{ID: "search", Name: "Search", Description: "Filter notes", Category: plugin.CategorySearch, Context: ctx, Priority: 2},
			{ID: "select", Name: "Open", Description: "Open selected card", Category: plugin.CategoryNavigation, Context: ctx, Priority: 3},
			{ID: "yank-note", Name: "Yank", Description: "Copy note content", Category: plugin.CategoryActions, Context: ctx, Priority: 4},
			{ID: "more-columns", Name: "Wider", Description: "More columns", Category: plugin.CategoryView, Context: ctx, Priority: 5},
			{ID: "fewer-columns", Name: "Narrower", Description: "Fewer columns", Category: plugin.CategoryView, Context: ctx, Priority: 6},
		}
	}
}

// FocusContext returns the current focus context.
func (p *Plugin) FocusContext() string {
	if p.showDetail {
		return keymap.ContextDetail
	}
	if p.showComposer {
		if p.composer.State() == composer.Editing {
			return keymap.ContextComposerEditing
		}
		return keymap.ContextComposerPrompt
	}
	if p.searchMode {
		return keymap.ContextSearch
	}
	return keymap.ContextGrid
}

// ConsumesTextInput reports whether printable keys should reach the plugin
// instead of app-level shortcuts.
func (p *Plugin) ConsumesTextInput() bool {
	return p.searchMode || p.showComposer
}

// Query returns the current search query.
func (p *Plugin) Query() string { return p.search.Value() }

// Visible returns the notes currently shown in the grid, newest first.
func (p *Plugin) Visible() []note.Note { return p.visible }

// reloadNotes returns a command that re-reads the store from its slot.
func (p *Plugin) reloadNotes() tea.Cmd {
	store := p.ctx.Store
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		return NotesLoadedMsg{Count: store.Reload()}
	}
}

// waitForChange blocks on the slot watcher until the next external write.
func (p *Plugin) waitForChange() tea.Cmd {
	ch := p.ctx.Changes
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		c, ok := <-ch
		if !ok {
			return nil
		}
		return SlotChangedMsg{Key: c.Key}
	}
}

// refresh re-reads the collection from the store and re-applies the filter.
func (p *Plugin) refresh() {
	if p.ctx.Store != nil {
		p.all = p.ctx.Store.Notes()
	}
	p.applyFilter()
}

// applyFilter recomputes the visible subsequence from scratch.
func (p *Plugin) applyFilter() {
	p.visible = filter.Filter(p.all, p.search.Value())
	p.clampCursor()
}

func (p *Plugin) clampCursor() {
	if last := len(p.visible); p.cursor > last {
		p.cursor = last
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
}

// selectedNote returns the note under the cursor, if any.
func (p *Plugin) selectedNote() (note.Note, bool) {
	if p.cursor <= 0 || p.cursor > len(p.visible) {
		return note.Note{}, false
	}
	return p.visible[p.cursor-1], true
}

func (p *Plugin) toastDuration() time.Duration {
	if p.ctx != nil && p.ctx.Config != nil && p.ctx.Config.UI.ToastDuration > 0 {
		return p.ctx.Config.UI.ToastDuration
	}
	return defaultToastDuration
}

func (p *Plugin) toast(text string) tea.Cmd {
	return msg.ShowToast(text, p.toastDuration())
}

func clampColumns(n int) int {
	return max(minColumns, min(n, maxColumns))
}
