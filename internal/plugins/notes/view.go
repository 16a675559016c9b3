package notes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/marcus/notecards/internal/composer"
	"github.com/marcus/notecards/internal/note"
	"github.com/marcus/notecards/internal/state"
	"github.com/marcus/notecards/internal/styles"
	"github.com/marcus/notecards/internal/ui"
)

const (
	cardGap         = 1
	cardBodyLines   = 3 // date line plus content
	cardHeight      = cardBodyLines + 2
	searchBarHeight = 2 // input plus divider
	maxModalWidth   = 72
	editorHeight    = 8
)

// View renders the plugin.
func (p *Plugin) View(width, height int) string {
	p.width = width
	p.height = height
	p.mouse.Clear()
	p.mouse.HitMap.AddRect(regionSearch, 0, 0, width, 1, nil)

	var b strings.Builder
	b.WriteString(p.renderSearchBar(width))
	b.WriteString("\n")
	b.WriteString(p.renderGrid(width, height-searchBarHeight))
	content := lipgloss.NewStyle().Width(width).Height(height).MaxHeight(height).Render(b.String())

	var modal string
	switch {
	case p.showComposer:
		modal = p.renderComposer(width)
	case p.showDetail:
		modal = p.renderDetail(width, height)
	default:
		return content
	}
	p.registerModal(modal, width, height)
	return ui.OverlayModal(content, modal, width, height)
}

func (p *Plugin) renderSearchBar(width int) string {
	p.search.Width = max(width-4, 1)
	line := p.search.View()
	if !p.searchMode && p.search.Value() != "" {
		line += styles.Subtle.Render(fmt.Sprintf("  %d of %d", len(p.visible), len(p.all)))
	}
	return line + "\n" + styles.Divider.Render(strings.Repeat("─", max(width, 0)))
}

// cardWidth returns the outer width of one card.
func (p *Plugin) cardWidth(width int) int {
	w := (width - (p.columns-1)*cardGap) / p.columns
	return max(w, 8)
}

func (p *Plugin) renderGrid(width, height int) string {
	total := len(p.visible) + 1
	rows := (total + p.columns - 1) / p.columns
	visibleRows := max(height/cardHeight, 1)
	p.ensureCursorVisible(visibleRows)

	cw := p.cardWidth(width)
	var out []string
	for r := p.scrollRow; r < rows && r < p.scrollRow+visibleRows; r++ {
		var cells []string
		y := searchBarHeight + (r-p.scrollRow)*cardHeight
		for c := 0; c < p.columns; c++ {
			idx := r*p.columns + c
			if idx >= total {
				break
			}
			if c > 0 {
				cells = append(cells, strings.Repeat(" ", cardGap))
			}
			cells = append(cells, p.renderCard(idx, cw))
			p.mouse.HitMap.AddRect(regionCard, c*(cw+cardGap), y, cw, cardHeight, idx)
		}
		out = append(out, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	if len(p.visible) == 0 && p.search.Value() != "" {
		out = append(out, styles.Muted.Render(fmt.Sprintf("No notes match %q", p.search.Value())))
	}
	return strings.Join(out, "\n")
}

func (p *Plugin) ensureCursorVisible(visibleRows int) {
	row := p.cursor / p.columns
	if row < p.scrollRow {
		p.scrollRow = row
	}
	if row >= p.scrollRow+visibleRows {
		p.scrollRow = row - visibleRows + 1
	}
}

// renderCard renders grid index idx. Index 0 is the add card.
func (p *Plugin) renderCard(idx, outerWidth int) string {
	inner := max(outerWidth-4, 1) // border plus horizontal padding
	selected := idx == p.cursor && !p.searchMode

	if idx == 0 {
		style := styles.CardAdd
		if selected {
			style = styles.CardAddSelected
		}
		body := lipgloss.PlaceHorizontal(inner, lipgloss.Center, styles.Link.Render("+")) + "\n" +
			lipgloss.PlaceHorizontal(inner, lipgloss.Center, styles.Muted.Render("Add note"))
		return style.Width(outerWidth - 2).Height(cardBodyLines).Render(body)
	}

	n := p.visible[idx-1]
	style := styles.Card
	if selected {
		style = styles.CardSelected
	}
	lines := []string{styles.CardDate.Render(truncate(relativeDate(n.Date, p.now()), inner))}
	for _, l := range wrapLines(n.Content, inner, cardBodyLines-1) {
		lines = append(lines, styles.Body.Render(l))
	}
	return style.Width(outerWidth - 2).Height(cardBodyLines).Render(strings.Join(lines, "\n"))
}

func modalWidth(width int) int {
	return max(min(width-8, maxModalWidth), 20)
}

func (p *Plugin) renderComposer(width int) string {
	w := modalWidth(width)
	inner := w - 6 // border plus padding

	var b strings.Builder
	b.WriteString(styles.ModalTitle.Render("New note"))
	b.WriteString("\n\n")

	if p.composer.State() == composer.Prompt {
		b.WriteString(styles.Subtle.Render("● record an audio note"))
		b.WriteString(styles.Subtle.Render(" (unavailable)"))
		b.WriteString("\n\n")
		b.WriteString(styles.Muted.Render("or "))
		b.WriteString(styles.Link.Render("use text only"))
		b.WriteString(" ")
		b.WriteString(styles.KeyHint.Render("t"))
	} else {
		p.editor.SetWidth(inner)
		p.editor.SetHeight(editorHeight)
		b.WriteString(p.editor.View())
	}

	b.WriteString("\n\n")
	b.WriteString(styles.SaveButton.Width(inner).Render("Save  ctrl+s"))
	return styles.ModalBox.Width(w - 2).Render(b.String())
}

func (p *Plugin) renderDetail(width, height int) string {
	w := modalWidth(width)
	inner := w - 6

	var b strings.Builder
	b.WriteString(styles.ModalTitle.Render(relativeDate(p.detail.Date, p.now())))
	b.WriteString(styles.Subtle.Render("  " + note.FormatDate(p.detail.Date)))
	b.WriteString("\n\n")

	body := p.renderContent(p.detail.Content, inner)
	lines := strings.Split(body, "\n")
	if maxLines := max(height-10, 3); len(lines) > maxLines {
		lines = append(lines[:maxLines-1], styles.Subtle.Render("…"))
	}
	b.WriteString(strings.Join(lines, "\n"))
	return styles.ModalBox.Width(w - 2).Render(b.String())
}

// renderContent renders note content as markdown when preview is on, falling
// back to wrapped plain text.
func (p *Plugin) renderContent(content string, width int) string {
	if p.previewMode == state.PreviewMarkdown {
		if r := p.markdownRenderer(width); r != nil {
			out, err := r.Render(content)
			if err == nil {
				return strings.Trim(out, "\n")
			}
			p.ctx.Logger.Debug("notes: markdown render failed", "error", err)
		}
	}
	return styles.Body.Render(strings.Join(wrapLines(content, width, 1<<16), "\n"))
}

// markdownRenderer returns a glamour renderer for width, rebuilt when the
// width changes.
func (p *Plugin) markdownRenderer(width int) *glamour.TermRenderer {
	if p.renderer != nil && p.rendererWidth == width {
		return p.renderer
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(styles.CurrentMarkdownTheme),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		p.ctx.Logger.Warn("notes: glamour init failed", "error", err)
		return nil
	}
	p.renderer = r
	p.rendererWidth = width
	return r
}
