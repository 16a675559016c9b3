package notes

import (
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
)

// relativeDate formats t relative to now. Dates older than a week are shown
// in full.
func relativeDate(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return plural(int(d/time.Minute), "minute") + " ago"
	case d < 24*time.Hour:
		return plural(int(d/time.Hour), "hour") + " ago"
	case d < 48*time.Hour:
		return "yesterday"
	case d < 7*24*time.Hour:
		return plural(int(d/(24*time.Hour)), "day") + " ago"
	default:
		return t.Local().Format("Jan 2, 2006")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// wrapLines hard-wraps s to width display cells and keeps at most maxLines
// lines. Truncated output ends with an ellipsis.
func wrapLines(s string, width, maxLines int) []string {
	if width <= 0 || maxLines <= 0 {
		return nil
	}

	var lines []string
	for _, para := range strings.Split(s, "\n") {
		para = strings.TrimRight(para, " \t\r")
		if para == "" {
			lines = append(lines, "")
			continue
		}
		var b strings.Builder
		w := 0
		for _, r := range para {
			if r == '\t' {
				r = ' '
			}
			rw := runewidth.RuneWidth(r)
			if w+rw > width {
				lines = append(lines, b.String())
				b.Reset()
				w = 0
			}
			b.WriteRune(r)
			w += rw
		}
		lines = append(lines, b.String())
	}

	// Trailing blank lines carry nothing on a card.
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) <= maxLines {
		return lines
	}

	lines = lines[:maxLines]
	last := lines[maxLines-1]
	if runewidth.StringWidth(last) >= width {
		last = runewidth.Truncate(last, width-1, "")
	}
	lines[maxLines-1] = last + "…"
	return lines
}

// truncate shortens s to width display cells with a trailing ellipsis.
func truncate(s string, width int) string {
	return runewidth.Truncate(s, width, "…")
}
