package notes

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/notecards/internal/composer"
	"github.com/marcus/notecards/internal/msg"
	"github.com/marcus/notecards/internal/notes"
	"github.com/marcus/notecards/internal/plugin"
	"github.com/marcus/notecards/internal/state"
)

// Update handles messages.
func (p *Plugin) Update(m tea.Msg) (plugin.Plugin, tea.Cmd) {
	switch m := m.(type) {
	case NotesLoadedMsg:
		p.refresh()
		p.ctx.Logger.Debug("notes: reloaded", "count", m.Count)
		return p, nil

	case SlotChangedMsg:
		p.ctx.Logger.Debug("notes: slot changed externally", "key", m.Key)
		return p, tea.Batch(p.reloadNotes(), p.waitForChange())

	case tea.WindowSizeMsg:
		p.width = m.Width
		p.height = m.Height
		return p, nil

	case tea.KeyMsg:
		return p.handleKey(m)

	case tea.MouseMsg:
		return p, p.handleMouse(m)
	}

	// Cursor blink and other component messages
	var cmd tea.Cmd
	switch {
	case p.showComposer && p.composer.State() == composer.Editing:
		p.editor, cmd = p.editor.Update(m)
	case p.searchMode:
		p.search, cmd = p.search.Update(m)
	}
	return p, cmd
}

func (p *Plugin) handleKey(m tea.KeyMsg) (plugin.Plugin, tea.Cmd) {
	ctx := p.FocusContext()
	cmdID, bound := p.ctx.Keymap.Lookup(m.String(), ctx)
	if bound && cmdID == "quit" {
		// The app decides whether quit applies.
		bound = false
	}

	switch {
	case p.showDetail:
		if bound {
			return p, p.runDetailCommand(cmdID)
		}
		return p, nil

	case p.showComposer:
		if bound {
			return p, p.runComposerCommand(cmdID)
		}
		if p.composer.State() == composer.Editing {
			return p, p.updateEditor(m)
		}
		return p, nil

	case p.searchMode:
		if bound {
			return p, p.runSearchCommand(cmdID)
		}
		var cmd tea.Cmd
		p.search, cmd = p.search.Update(m)
		p.cursor = 0
		p.scrollRow = 0
		p.applyFilter()
		return p, cmd
	}

	if bound {
		return p, p.runGridCommand(cmdID)
	}
	return p, nil
}

func (p *Plugin) runGridCommand(cmdID string) tea.Cmd {
	switch cmdID {
	case "search":
		p.searchMode = true
		return p.search.Focus()
	case "clear-search":
		p.clearSearch()
	case "new-note":
		return p.openComposer()
	case "select":
		if n, ok := p.selectedNote(); ok {
			p.detail = n
			p.showDetail = true
			return nil
		}
		return p.openComposer()
	case "cursor-left":
		p.moveCursor(-1)
	case "cursor-right":
		p.moveCursor(1)
	case "cursor-up":
		p.moveCursor(-p.columns)
	case "cursor-down":
		p.moveCursorDown()
	case "cursor-top":
		p.cursor = 0
	case "cursor-bottom":
		p.cursor = len(p.visible)
	case "yank-note":
		if n, ok := p.selectedNote(); ok {
			return p.yank(n.Content)
		}
	case "toggle-preview":
		return p.togglePreview()
	case "more-columns":
		return p.setColumns(p.columns + 1)
	case "fewer-columns":
		return p.setColumns(p.columns - 1)
	}
	return nil
}

func (p *Plugin) runSearchCommand(cmdID string) tea.Cmd {
	switch cmdID {
	case "clear-search":
		p.clearSearch()
	case "close-search":
		p.searchMode = false
		p.search.Blur()
	}
	return nil
}

func (p *Plugin) runComposerCommand(cmdID string) tea.Cmd {
	switch cmdID {
	case "use-text":
		p.composer.UseText()
		return p.editor.Focus()
	case "save-note":
		return p.saveNote()
	case "close-composer":
		p.closeComposer()
	}
	return nil
}

func (p *Plugin) runDetailCommand(cmdID string) tea.Cmd {
	switch cmdID {
	case "close-detail":
		p.showDetail = false
	case "yank-note":
		return p.yank(p.detail.Content)
	case "toggle-preview":
		return p.togglePreview()
	}
	return nil
}

// updateEditor forwards a key to the textarea and mirrors its value into the
// composer. Emptying the textarea returns the composer to its prompt.
func (p *Plugin) updateEditor(m tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	p.editor, cmd = p.editor.Update(m)
	p.composer.SetContent(p.editor.Value())
	if p.composer.State() == composer.Prompt {
		p.editor.Blur()
	}
	return cmd
}

func (p *Plugin) openComposer() tea.Cmd {
	p.composer.Reset()
	p.editor.Reset()
	p.editor.Blur()
	p.showComposer = true
	return textarea.Blink
}

func (p *Plugin) closeComposer() {
	p.composer.Reset()
	p.editor.Reset()
	p.editor.Blur()
	p.showComposer = false
}

// saveNote submits the composer's content to the store. Empty content is
// ignored without feedback.
func (p *Plugin) saveNote() tea.Cmd {
	if p.ctx.Store == nil {
		return nil
	}
	n, ok, err := p.composer.Submit(p.ctx.Store)
	if !ok {
		if err != nil {
			if errors.Is(err, notes.ErrEmptyContent) {
				return nil
			}
			return msg.ShowError("Create failed", err, p.toastDuration())
		}
		return nil
	}

	p.editor.Reset()
	p.editor.Blur()
	p.showComposer = false
	p.refresh()
	p.ctx.Logger.Debug("notes: created", "id", n.ID)

	if err != nil {
		return msg.ShowError("Note created but not saved", err, p.toastDuration())
	}
	return p.toast("Note created!")
}

func (p *Plugin) clearSearch() {
	p.search.SetValue("")
	p.search.Blur()
	p.searchMode = false
	p.cursor = 0
	p.scrollRow = 0
	p.applyFilter()
}

func (p *Plugin) moveCursor(delta int) {
	next := p.cursor + delta
	if next < 0 || next > len(p.visible) {
		return
	}
	p.cursor = next
}

// moveCursorDown moves one row down, landing on the last card when the next
// row is shorter than the current column.
func (p *Plugin) moveCursorDown() {
	last := len(p.visible)
	if p.cursor+p.columns <= last {
		p.cursor += p.columns
		return
	}
	if p.cursor/p.columns < last/p.columns {
		p.cursor = last
	}
}

func (p *Plugin) yank(content string) tea.Cmd {
	if err := p.writeClip(content); err != nil {
		return msg.ShowError("Copy failed", err, p.toastDuration())
	}
	return p.toast("Copied to clipboard")
}

func (p *Plugin) togglePreview() tea.Cmd {
	if p.previewMode == state.PreviewMarkdown {
		p.previewMode = state.PreviewPlain
	} else {
		p.previewMode = state.PreviewMarkdown
	}
	if err := state.SetPreviewMode(p.previewMode); err != nil {
		p.ctx.Logger.Warn("notes: save preview mode", "error", err)
	}
	return nil
}

func (p *Plugin) setColumns(n int) tea.Cmd {
	n = clampColumns(n)
	if n == p.columns {
		return nil
	}
	p.columns = n
	p.scrollRow = 0
	if err := state.SetGridColumns(n); err != nil {
		p.ctx.Logger.Warn("notes: save grid columns", "error", err)
	}
	return p.toast(fmt.Sprintf("%d columns", n))
}
