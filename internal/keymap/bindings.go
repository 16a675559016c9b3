package keymap

// Activation contexts.
const (
	ContextGlobal          = "global"
	ContextGrid            = "notes-grid"
	ContextSearch          = "notes-search"
	ContextComposerPrompt  = "notes-composer-prompt"
	ContextComposerEditing = "notes-composer-editing"
	ContextDetail          = "notes-detail"
)

// DefaultBindings returns the default key bindings.
func DefaultBindings() []Binding {
	return []Binding{
		// Global bindings
		{Key: "q", Command: "quit", Context: ContextGlobal},
		{Key: "ctrl+c", Command: "quit", Context: ContextGlobal},

		// Card grid
		{Key: "/", Command: "search", Context: ContextGrid},
		{Key: "n", Command: "new-note", Context: ContextGrid},
		{Key: "enter", Command: "select", Context: ContextGrid},
		{Key: "left", Command: "cursor-left", Context: ContextGrid},
		{Key: "h", Command: "cursor-left", Context: ContextGrid},
		{Key: "right", Command: "cursor-right", Context: ContextGrid},
		{Key: "l", Command: "cursor-right", Context: ContextGrid},
		{Key: "up", Command: "cursor-up", Context: ContextGrid},
		{Key: "k", Command: "cursor-up", Context: ContextGrid},
		{Key: "down", Command: "cursor-down", Context: ContextGrid},
		{Key: "j", Command: "cursor-down", Context: ContextGrid},
		{Key: "home", Command: "cursor-top", Context: ContextGrid},
		{Key: "g", Command: "cursor-top", Context: ContextGrid},
		{Key: "end", Command: "cursor-bottom", Context: ContextGrid},
		{Key: "G", Command: "cursor-bottom", Context: ContextGrid},
		{Key: "y", Command: "yank-note", Context: ContextGrid},
		{Key: "p", Command: "toggle-preview", Context: ContextGrid},
		{Key: "+", Command: "more-columns", Context: ContextGrid},
		{Key: "-", Command: "fewer-columns", Context: ContextGrid},
		{Key: "esc", Command: "clear-search", Context: ContextGrid},

		// Search box focused
		{Key: "esc", Command: "clear-search", Context: ContextSearch},
		{Key: "enter", Command: "close-search", Context: ContextSearch},
		{Key: "down", Command: "close-search", Context: ContextSearch},
		{Key: "tab", Command: "close-search", Context: ContextSearch},

		// Composer, prompt state
		{Key: "t", Command: "use-text", Context: ContextComposerPrompt},
		{Key: "enter", Command: "use-text", Context: ContextComposerPrompt},
		{Key: "esc", Command: "close-composer", Context: ContextComposerPrompt},
		{Key: "ctrl+s", Command: "save-note", Context: ContextComposerPrompt},

		// Composer, editing state
		{Key: "esc", Command: "close-composer", Context: ContextComposerEditing},
		{Key: "ctrl+s", Command: "save-note", Context: ContextComposerEditing},

		// Note detail
		{Key: "esc", Command: "close-detail", Context: ContextDetail},
		{Key: "enter", Command: "close-detail", Context: ContextDetail},
		{Key: "q", Command: "close-detail", Context: ContextDetail},
		{Key: "y", Command: "yank-note", Context: ContextDetail},
		{Key: "p", Command: "toggle-preview", Context: ContextDetail},
	}
}

// RegisterDefaults registers the default bindings with r.
func RegisterDefaults(r *Registry) {
	for _, b := range DefaultBindings() {
		r.Register(b)
	}
}
