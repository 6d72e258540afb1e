package ui

import "github.com/charmbracelet/lipgloss"

// Semantic Color Palette
// The accent pair follows the purple to blue gradient of the kolam brand.

// Status colors
var (
	// StatusSuccess marks freshly created designs.
	StatusSuccess = lipgloss.AdaptiveColor{Light: "#16A34A", Dark: "#22C55E"}

	// StatusRunning indicates in-progress state
	StatusRunning = lipgloss.AdaptiveColor{Light: "#2575FC", Dark: "#5B9BFF"}

	// StatusError indicates errors/failures
	StatusError = lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#EF4444"}
)

// UI chrome colors - structural elements
var (
	// Primary is the accent/focus color
	Primary = lipgloss.AdaptiveColor{Light: "#6A11CB", Dark: "#9B5DE5"}

	// Secondary is the second stop of the brand gradient
	Secondary = lipgloss.AdaptiveColor{Light: "#2575FC", Dark: "#5B9BFF"}

	// Border is the default border color
	Border = lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#3C3C3C"}

	// BorderFocus is the border color for focused elements
	BorderFocus = lipgloss.AdaptiveColor{Light: "#6A11CB", Dark: "#9B5DE5"}

	// TextPrimary is the main text color
	TextPrimary = lipgloss.AdaptiveColor{Light: "#1a1a1a", Dark: "#dddddd"}

	// TextSecondary is for secondary text (descriptions, labels)
	TextSecondary = lipgloss.AdaptiveColor{Light: "#4B5563", Dark: "#9CA3AF"}

	// TextMuted is for hints and subtle text
	TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6B7280"}

	// BackgroundSelected is for the highlighted suggestion
	BackgroundSelected = lipgloss.AdaptiveColor{Light: "#E9DDFB", Dark: "#3C2E5C"}
)

const (
	IconError    = "×"
	IconDot      = "●"
	IconDotEmpty = "○"
	IconPrev     = "❮"
	IconNext     = "❯"
	IconActive   = "›"
)

// TextStyles contains pre-built styles for text elements
var TextStyles = struct {
	Primary   lipgloss.Style
	Secondary lipgloss.Style
	Muted     lipgloss.Style
	Title     lipgloss.Style
	Heading   lipgloss.Style
	Error     lipgloss.Style
}{
	Primary:   lipgloss.NewStyle().Foreground(TextPrimary),
	Secondary: lipgloss.NewStyle().Foreground(TextSecondary),
	Muted:     lipgloss.NewStyle().Foreground(TextMuted),
	Title:     lipgloss.NewStyle().Bold(true).Foreground(TextPrimary),
	Heading:   lipgloss.NewStyle().Bold(true).Foreground(Primary),
	Error:     lipgloss.NewStyle().Foreground(StatusError),
}

// BorderStyles contains pre-built styles for bordered elements
var BorderStyles = struct {
	Default lipgloss.Style
	Focus   lipgloss.Style
	Rounded lipgloss.Style
}{
	Default: lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(Border),
	Focus: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderFocus),
	Rounded: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border),
}

// BadgeStyle creates a styled badge with the given color
func BadgeStyle(color lipgloss.TerminalColor) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(color).
		Padding(0, 1)
}

// StatusBadge returns a formatted status badge string
func StatusBadge(status string, color lipgloss.TerminalColor) string {
	return BadgeStyle(color).Render(status)
}

// CardStyle creates a style for card-like containers
func CardStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)
}

// FocusedCardStyle creates a style for focused card-like containers
func FocusedCardStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderFocus).
		Padding(0, 1)
}
