package notes

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/marcus/notecards/internal/composer"
	"github.com/marcus/notecards/internal/mouse"
)

// Hit region IDs.
const (
	regionSearch   = "search"
	regionCard     = "card" // Data: grid index
	regionBackdrop = "backdrop"
	regionModal    = "modal"
	regionUseText  = "use-text"
	regionSave     = "save"
)

// modalContentOffset is the border plus padding between a modal's edge and
// its first content cell.
const (
	modalContentOffsetX = 3
	modalContentOffsetY = 2
)

// registerModal records the hit regions of a centered modal. Called from
// View after the modal is rendered so its size is known.
func (p *Plugin) registerModal(modal string, width, height int) {
	hm := p.mouse.HitMap
	hm.Clear()

	w, h := lipgloss.Width(modal), lipgloss.Height(modal)
	x, y := max((width-w)/2, 0), max((height-h)/2, 0)
	inner := max(w-2*modalContentOffsetX, 1)

	hm.AddRect(regionBackdrop, 0, 0, width, height, nil)
	hm.AddRect(regionModal, x, y, w, h, nil)
	if p.showComposer {
		if p.composer.State() == composer.Prompt {
			// Title, blank, audio line, blank, then the text-only link.
			hm.AddRect(regionUseText, x+modalContentOffsetX, y+modalContentOffsetY+4, inner, 1, nil)
		}
		hm.AddRect(regionSave, x+modalContentOffsetX, y+h-modalContentOffsetY-1, inner, 1, nil)
	}
}

func (p *Plugin) handleMouse(m tea.MouseMsg) tea.Cmd {
	action := p.mouse.HandleMouse(m)

	switch action.Type {
	case mouse.ActionScrollUp, mouse.ActionScrollDown:
		if p.showComposer || p.showDetail {
			return nil
		}
		if action.Type == mouse.ActionScrollUp {
			p.moveCursor(-p.columns)
		} else {
			p.moveCursorDown()
		}
		return nil

	case mouse.ActionClick, mouse.ActionDoubleClick:
		return p.handleClick(action.Region, action.Type == mouse.ActionDoubleClick)
	}
	return nil
}

func (p *Plugin) handleClick(region *mouse.Region, double bool) tea.Cmd {
	if region == nil {
		return nil
	}

	switch region.ID {
	case regionSearch:
		p.searchMode = true
		return p.search.Focus()

	case regionCard:
		idx, ok := region.Data.(int)
		if !ok {
			return nil
		}
		if p.searchMode {
			p.searchMode = false
			p.search.Blur()
		}
		p.cursor = idx
		p.clampCursor()
		// The add card opens on a single click; notes need a double.
		if idx == 0 || double {
			return p.runGridCommand("select")
		}

	case regionUseText:
		return p.runComposerCommand("use-text")

	case regionSave:
		return p.saveNote()

	case regionBackdrop:
		// Clicking outside the detail closes it. The composer stays open so a
		// stray click never discards a draft.
		if p.showDetail {
			p.showDetail = false
		}
	}
	return nil
}
