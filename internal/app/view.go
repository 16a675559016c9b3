package app

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/marcus/notecards/internal/keymap"
	"github.com/marcus/notecards/internal/plugin"
	"github.com/marcus/notecards/internal/styles"
	"github.com/marcus/notecards/internal/ui"
)

const (
	headerHeight = 2 // header line + spacing
	footerHeight = 1
	minWidth     = 40
	minHeight    = 12
)

// View renders the entire application UI.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	// Show warning if terminal is too small
	if m.width < minWidth || m.height < minHeight {
		msg := fmt.Sprintf("Terminal too small (%dx%d)\nMinimum: %dx%d",
			m.width, m.height, minWidth, minHeight)
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			styles.ToastError.Render(msg))
	}

	contentHeight := max(m.height-headerHeight-footerHeight, 0)

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(m.renderContent(m.width, contentHeight))
	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	view := b.String()
	if m.statusMsg != "" {
		toastStyle := styles.ToastSuccess
		if m.statusIsError {
			toastStyle = styles.ToastError
		}
		view = ui.OverlayToast(view, toastStyle.Render(m.statusMsg), m.width, m.height)
	}
	return view
}

func (m Model) renderHeader() string {
	title := styles.Logo.Render(" notecards")
	ver := ""
	if m.currentVersion != "" {
		ver = styles.Subtle.Render(m.currentVersion + " ")
	}
	spacing := max(m.width-lipgloss.Width(title)-lipgloss.Width(ver), 0)
	return title + strings.Repeat(" ", spacing) + ver
}

func (m Model) renderContent(width, height int) string {
	if height == 0 {
		return ""
	}
	content := m.plugin.View(width, height)
	// MaxHeight truncates tall content so the header stays on screen.
	return lipgloss.NewStyle().Width(width).Height(height).MaxHeight(height).Render(content)
}

// renderFooter renders the bottom bar with key hints.
func (m Model) renderFooter() string {
	hints := renderHintLineTruncated(m.footerHints(), m.width)
	return styles.Footer.Width(m.width).MaxWidth(m.width).Render(hints)
}

type footerHint struct {
	keys  string
	label string
}

func (m Model) footerHints() []footerHint {
	// Plugin-specific hints first - they're more contextually relevant
	hints := m.pluginFooterHints(m.plugin, m.activeContext)
	if !m.consumesTextInput() {
		if keys := m.keymap.KeysFor("quit", keymap.ContextGlobal); len(keys) > 0 {
			hints = append(hints, footerHint{keys: formatBindingKeys(keys), label: "quit"})
		}
	}
	return hints
}

func (m Model) pluginFooterHints(p plugin.Plugin, context string) []footerHint {
	if context == "" || context == keymap.ContextGlobal {
		return nil
	}

	var cmds []plugin.Command
	for _, cmd := range p.Commands() {
		if cmd.Context == context {
			cmds = append(cmds, cmd)
		}
	}
	// Sort by priority (lower = more important, shown first)
	sort.SliceStable(cmds, func(i, j int) bool {
		return cmds[i].FooterPriority() < cmds[j].FooterPriority()
	})

	var hints []footerHint
	for _, cmd := range cmds {
		keys := m.keymap.KeysFor(cmd.ID, context)
		if len(keys) == 0 {
			continue
		}
		hints = append(hints, footerHint{keys: formatBindingKeys(keys), label: cmd.Name})
	}
	return hints
}

// renderHintLineTruncated renders hints but stops adding when maxWidth is exceeded.
func renderHintLineTruncated(hints []footerHint, maxWidth int) string {
	if len(hints) == 0 || maxWidth <= 0 {
		return ""
	}
	var result string
	for _, hint := range hints {
		part := fmt.Sprintf("%s %s", styles.KeyHint.Render(hint.keys), hint.label)
		candidate := part
		if result != "" {
			candidate = result + "  " + part
		}
		if lipgloss.Width(candidate) > maxWidth {
			break
		}
		result = candidate
	}
	return result
}

func formatBindingKeys(keys []string) string {
	if len(keys) > 2 {
		keys = keys[:2]
	}
	return strings.Join(keys, ", ")
}
