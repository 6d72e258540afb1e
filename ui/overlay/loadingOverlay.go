package overlay

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

// LoadingOverlay is a modal box with a spinner, a status line and an
// optional hint, shown while a design is being generated.
type LoadingOverlay struct {
	title   string
	status  string
	hint    string
	spinner *spinner.Model

	width int
}

// NewLoadingOverlay creates a new loading screen overlay
func NewLoadingOverlay(title string, spinner *spinner.Model) *LoadingOverlay {
	return &LoadingOverlay{
		title:   title,
		spinner: spinner,
	}
}

func (l *LoadingOverlay) SetStatus(status string) {
	l.status = status
}

func (l *LoadingOverlay) SetHint(hint string) {
	l.hint = hint
}

// SetWidth sets the outer width of the box.
func (l *LoadingOverlay) SetWidth(width int) {
	l.width = width
}

var (
	loadingTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#6a11cb"))
	loadingStatusStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("241"))
	loadingHintStyle = lipgloss.NewStyle().
				Italic(true).
				Foreground(lipgloss.Color("244"))
)

// Render renders the loading overlay
func (l *LoadingOverlay) Render() string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#2575fc")).
		Padding(1, 2)

	// border and padding take 6 columns
	inner := l.width - 6
	if l.width > 0 {
		boxStyle = boxStyle.Width(l.width - 2)
	}

	status := l.status
	if inner > 0 {
		status = wordwrap.String(status, inner-2)
	}

	content := loadingTitleStyle.Render(l.title) + "\n\n"
	if l.spinner != nil {
		content += l.spinner.View() + " "
	}
	content += loadingStatusStyle.Render(status)
	if l.hint != "" {
		content += "\n\n" + loadingHintStyle.Render(l.hint)
	}

	return boxStyle.Render(content)
}
