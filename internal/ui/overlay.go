// Package ui provides shared UI components and helpers for the TUI.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// DimStyle applies a dim gray color to background content behind modals.
// Existing ANSI codes are stripped first because SGR 2 (faint) doesn't
// reliably combine with existing color codes in most terminals.
var DimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))

// Position places a foreground block over a background.
type Position int

const (
	Center Position = iota
	BottomRight
)

// OverlayModal composites a modal centered on a dimmed background.
func OverlayModal(background, modal string, width, height int) string {
	return overlay(background, modal, width, height, Center, true)
}

// OverlayToast places a toast in the bottom-right corner, one cell in from
// the edges, without dimming the background.
func OverlayToast(background, toast string, width, height int) string {
	return overlay(background, toast, width, height, BottomRight, false)
}

func overlay(background, fg string, width, height int, pos Position, dim bool) string {
	bgLines := strings.Split(background, "\n")
	fgLines := strings.Split(fg, "\n")

	fgWidth := 0
	for _, line := range fgLines {
		fgWidth = max(fgWidth, ansi.StringWidth(line))
	}
	fgHeight := len(fgLines)

	var startX, startY int
	switch pos {
	case BottomRight:
		startX = width - fgWidth - 1
		startY = height - fgHeight - 1
	default:
		startX = (width - fgWidth) / 2
		startY = (height - fgHeight) / 2
	}
	startX = max(startX, 0)
	startY = max(startY, 0)

	for len(bgLines) < height {
		bgLines = append(bgLines, "")
	}

	out := make([]string, 0, height)
	for y := 0; y < height; y++ {
		bg := bgLines[y]
		row := y - startY
		switch {
		case row >= 0 && row < fgHeight:
			out = append(out, splice(bg, fgLines[row], startX, fgWidth, dim))
		case dim:
			out = append(out, DimStyle.Render(ansi.Strip(bg)))
		default:
			out = append(out, bg)
		}
	}
	return strings.Join(out, "\n")
}

// splice replaces the cells [x, x+w) of bg with fg. When dim is set the
// remaining background is stripped and dimmed; otherwise it keeps its styling.
func splice(bg, fg string, x, w int, dim bool) string {
	var b strings.Builder

	src := bg
	if dim {
		src = ansi.Strip(bg)
	}
	render := func(s string) string {
		if dim {
			return DimStyle.Render(s)
		}
		return s
	}
	bgWidth := ansi.StringWidth(src)

	if x > 0 {
		left := ansi.Truncate(src, x, "")
		b.WriteString(render(left))
		if lw := ansi.StringWidth(left); lw < x {
			b.WriteString(strings.Repeat(" ", x-lw))
		}
	}

	b.WriteString(fg)
	if pad := w - ansi.StringWidth(fg); pad > 0 {
		b.WriteString(strings.Repeat(" ", pad))
	}

	if right := x + w; bgWidth > right {
		b.WriteString(render(ansi.Cut(src, right, bgWidth)))
	}
	return b.String()
}
