package styles

import "github.com/charmbracelet/lipgloss"

// Color palette - default dark theme
var (
	// Primary colors
	Primary = lipgloss.Color("#A3E635") // Lime
	Accent  = lipgloss.Color("#84CC16")

	// Status colors
	Success = lipgloss.Color("#10B981") // Green
	Error   = lipgloss.Color("#EF4444") // Red

	// Text colors
	TextPrimary   = lipgloss.Color("#F1F5F9")
	TextSecondary = lipgloss.Color("#CBD5E1")
	TextMuted     = lipgloss.Color("#94A3B8")
	TextSubtle    = lipgloss.Color("#64748B")

	// Background colors
	BgPrimary   = lipgloss.Color("#0F172A")
	BgSecondary = lipgloss.Color("#1E293B")
	BgTertiary  = lipgloss.Color("#334155")

	// Border colors
	BorderNormal = lipgloss.Color("#334155")
	BorderActive = lipgloss.Color("#A3E635")
	BorderMuted  = lipgloss.Color("#1E293B")

	ToastSuccessTextColor = lipgloss.Color("#000000")
	ToastErrorTextColor   = lipgloss.Color("#FFFFFF")

	// CurrentMarkdownTheme is the glamour style used for note previews.
	CurrentMarkdownTheme = "dark"
)

// Text styles
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)

	Body = lipgloss.NewStyle().
		Foreground(TextSecondary)

	Muted = lipgloss.NewStyle().
		Foreground(TextMuted)

	Subtle = lipgloss.NewStyle().
		Foreground(TextSubtle)

	// Link marks an actionable phrase inside prose.
	Link = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	KeyHint = lipgloss.NewStyle().
		Foreground(TextMuted).
		Background(BgTertiary).
		Padding(0, 1)

	Logo = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)
)

// Search box
var (
	SearchPrompt = lipgloss.NewStyle().
			Foreground(TextSubtle).
			Bold(true)

	SearchText = lipgloss.NewStyle().
			Foreground(TextPrimary).
			Bold(true)

	Divider = lipgloss.NewStyle().
		Foreground(BorderNormal)
)

// Card styles
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderNormal).
		Padding(0, 1)

	CardSelected = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderActive).
			Padding(0, 1)

	// CardAdd is the "add note" trigger card.
	CardAdd = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BgTertiary).
		Background(BgSecondary).
		Padding(0, 1)

	CardAddSelected = CardAdd.
			BorderForeground(BorderActive)

	CardDate = lipgloss.NewStyle().
			Foreground(TextSecondary).
			Bold(true)
)

// Modal styles
var (
	ModalBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderActive).
			Background(BgSecondary).
			Padding(1, 2)

	ModalTitle = lipgloss.NewStyle().
			Foreground(TextSecondary).
			Bold(true)

	// SaveButton spans the bottom of the composer.
	SaveButton = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1A2E05")).
			Background(Primary).
			Bold(true).
			Align(lipgloss.Center)
)

// Toast styles
var (
	ToastSuccess = lipgloss.NewStyle().
			Foreground(ToastSuccessTextColor).
			Background(Success).
			Padding(0, 1)

	ToastError = lipgloss.NewStyle().
			Foreground(ToastErrorTextColor).
			Background(Error).
			Padding(0, 1)
)

// Footer
var (
	Footer = lipgloss.NewStyle().
		Foreground(TextMuted)
)
