package ui

import (
	"kolam/design"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// PromptPlaceholder is shown in the empty prompt input.
const PromptPlaceholder = "Enter grid size (e.g., 3x3, 5x5) or describe your design..."

// PromptHit is what a click inside the prompt area landed on.
type PromptHit int

const (
	PromptHitNone PromptHit = iota
	PromptHitInput
	// PromptHitSuggestion is a click on a suggestion row.
	PromptHitSuggestion
	// PromptHitList is a click inside the dropdown but not on a row.
	PromptHitList
)

// PromptState is everything the prompt box shows.
type PromptState struct {
	// Input is the rendered text input.
	Input       string
	Suggestions []design.Suggestion
	Active      int
	ShowList    bool
	Busy        bool
	// CanSubmit disables the button look when the prompt is blank.
	CanSubmit bool
}

// PromptBox renders the hero prompt input, its button and the suggestion
// dropdown, and remembers where it drew them for mouse hit testing.
type PromptBox struct {
	width int

	inputHeight int
	listTop     int
	listHeight  int
	itemCount   int
}

func NewPromptBox() *PromptBox {
	return &PromptBox{}
}

func (p *PromptBox) SetWidth(width int) {
	p.width = width
}

var (
	promptBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderFocus).
			Padding(0, 1)
	dropdownStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border)
	suggestionStyle       = lipgloss.NewStyle().Foreground(TextPrimary)
	activeSuggestionStyle = lipgloss.NewStyle().
				Foreground(Primary).
				Background(BackgroundSelected).
				Bold(true)
	disabledButtonStyle = lipgloss.NewStyle().
				Foreground(TextMuted).
				Padding(0, 1)
)

// ButtonLabel is the generate button text.
func ButtonLabel(busy bool) string {
	if busy {
		return "Loading..."
	}
	return "Generate"
}

func (p *PromptBox) button(busy, canSubmit bool) string {
	label := ButtonLabel(busy)
	if busy || !canSubmit {
		return disabledButtonStyle.Render(label)
	}
	return BadgeStyle(Primary).Bold(true).Render(label)
}

// FieldWidth is the width left for the text input next to the button.
func (p *PromptBox) FieldWidth() int {
	// border, padding, the widest button label and a space
	w := p.width - 4 - runewidth.StringWidth(ButtonLabel(true)) - 2 - 1
	return max(w, 8)
}

// Render draws the box. Dropdown rows show labels only.
func (p *PromptBox) Render(s PromptState) string {
	field := lipgloss.NewStyle().Width(p.FieldWidth()).MaxHeight(1).Render(s.Input)
	row := lipgloss.JoinHorizontal(lipgloss.Top, field, " ", p.button(s.Busy, s.CanSubmit))
	box := promptBoxStyle.Width(max(p.width-2, 1)).Render(row)

	p.inputHeight = lipgloss.Height(box)
	p.listTop, p.listHeight, p.itemCount = 0, 0, 0
	if !s.ShowList {
		return box
	}

	innerWidth := max(p.width-2, 1)
	rows := make([]string, 0, len(s.Suggestions))
	for i, sug := range s.Suggestions {
		label := runewidth.Truncate(sug.Label, innerWidth-2, "…")
		if i == s.Active {
			rows = append(rows, activeSuggestionStyle.Width(innerWidth).Render(IconActive+" "+label))
			continue
		}
		rows = append(rows, suggestionStyle.Width(innerWidth).Render("  "+label))
	}
	if len(rows) == 0 {
		hint := runewidth.Truncate("No matching grid size. Press enter to generate from text.", innerWidth-2, "…")
		rows = append(rows, TextStyles.Muted.Width(innerWidth).Render("  "+hint))
	} else {
		p.itemCount = len(rows)
	}

	list := dropdownStyle.Width(innerWidth).Render(strings.Join(rows, "\n"))
	p.listTop = p.inputHeight
	p.listHeight = lipgloss.Height(list)

	return lipgloss.JoinVertical(lipgloss.Left, box, list)
}

// HitTest maps a line, relative to the top of the last render, to what was
// clicked. For suggestion rows it also returns the row index.
func (p *PromptBox) HitTest(line int) (PromptHit, int) {
	switch {
	case line >= 0 && line < p.inputHeight:
		return PromptHitInput, -1
	case p.listHeight > 0 && line >= p.listTop && line < p.listTop+p.listHeight:
		// first list line is the border
		if i := line - p.listTop - 1; i >= 0 && i < p.itemCount {
			return PromptHitSuggestion, i
		}
		return PromptHitList, -1
	}
	return PromptHitNone, -1
}

// OnButton reports whether col, relative to the left edge of the box, falls
// on the generate button of the input row.
func (p *PromptBox) OnButton(col int) bool {
	// border, padding, field, space
	start := 3 + p.FieldWidth()
	return col >= start && col < p.width-1
}

// Height of the last render.
func (p *PromptBox) Height() int {
	return p.inputHeight + p.listHeight
}
