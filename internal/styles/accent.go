package styles

import (
	"fmt"
	"math"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// minButtonContrast is the WCAG AA ratio for the save button label.
const minButtonContrast = 4.5

// ApplyAccent recolors the accent-driven styles around hex (#RRGGBB).
func ApplyAccent(hex string) error {
	c, err := colorful.Hex(hex)
	if err != nil {
		return fmt.Errorf("accent color %q: %w", hex, err)
	}

	Primary = lipgloss.Color(c.Hex())
	Accent = lipgloss.Color(Darken(c, 0.1).Hex())
	BorderActive = Primary
	label := EnsureContrast(Darken(c, 0.6), c, minButtonContrast)

	Link = Link.Foreground(Primary)
	Logo = Logo.Foreground(Primary)
	CardSelected = CardSelected.BorderForeground(BorderActive)
	CardAddSelected = CardAddSelected.BorderForeground(BorderActive)
	ModalBox = ModalBox.BorderForeground(BorderActive)
	SaveButton = SaveButton.Background(Primary).Foreground(lipgloss.Color(label.Hex()))
	return nil
}

// Darken lowers HSL lightness by pct (0-1).
func Darken(c colorful.Color, pct float64) colorful.Color {
	h, s, l := c.Hsl()
	return colorful.Hsl(h, s, math.Max(0, l-pct)).Clamped()
}

// Luminance returns the WCAG relative luminance of c (0-1).
func Luminance(c colorful.Color) float64 {
	r, g, b := c.Clamped().LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// ContrastRatio returns the WCAG contrast ratio between two colors (1 to 21).
func ContrastRatio(fg, bg colorful.Color) float64 {
	l1, l2 := Luminance(fg), Luminance(bg)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

// EnsureContrast blends fg toward black or white, whichever needs the
// smaller shift, until it reaches minRatio against bg.
func EnsureContrast(fg, bg colorful.Color, minRatio float64) colorful.Color {
	if ContrastRatio(fg, bg) >= minRatio {
		return fg
	}

	best, bestT := fg, 2.0
	for _, pole := range []colorful.Color{{R: 0, G: 0, B: 0}, {R: 1, G: 1, B: 1}} {
		if ContrastRatio(pole, bg) < minRatio {
			continue
		}
		lo, hi := 0.0, 1.0
		for range 16 {
			mid := (lo + hi) / 2
			if ContrastRatio(fg.BlendRgb(pole, mid), bg) >= minRatio {
				hi = mid
			} else {
				lo = mid
			}
		}
		if hi < bestT {
			best, bestT = fg.BlendRgb(pole, hi), hi
		}
	}
	return best
}
