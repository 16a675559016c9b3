// Package composer holds the transient content of a note being written and
// the prompt/editing display state around it.
package composer

import "github.com/marcus/notecards/internal/note"

// State is the composer's display state.
type State int

const (
	// Prompt offers the entry affordances; no text input is active.
	Prompt State = iota
	// Editing has free-text input active.
	Editing
)

// String returns the display name for the state.
func (s State) String() string {
	switch s {
	case Editing:
		return "editing"
	default:
		return "prompt"
	}
}

// Creator creates notes from submitted content.
type Creator interface {
	Create(content string) (note.Note, error)
}

// Composer captures content for a new note.
type Composer struct {
	state   State
	content string
}

// New returns a composer in the Prompt state.
func New() *Composer {
	return &Composer{state: Prompt}
}

// State returns the current display state.
func (c *Composer) State() State { return c.state }

// Content returns the transient content.
func (c *Composer) Content() string { return c.content }

// UseText switches from Prompt to Editing. It has no effect while editing.
func (c *Composer) UseText() {
	c.state = Editing
}

// SetContent replaces the transient content. Clearing it returns the
// composer to Prompt.
func (c *Composer) SetContent(content string) {
	c.content = content
	if content == "" {
		c.state = Prompt
	}
}

// Submit creates a note from the current content. Empty content is ignored
// and reports false. On success the content is cleared and the composer
// returns to Prompt; if no note was created, content and state are left as
// they were.
//
// A creator may return a note together with an error when the note was
// created but could not be persisted. The note counts as created and the
// error is passed through.
func (c *Composer) Submit(creator Creator) (note.Note, bool, error) {
	if c.content == "" {
		return note.Note{}, false, nil
	}
	n, err := creator.Create(c.content)
	if err != nil && n.ID == "" {
		return note.Note{}, false, err
	}
	c.SetContent("")
	return n, true, err
}

// Reset discards content and returns to Prompt.
func (c *Composer) Reset() {
	c.SetContent("")
}
