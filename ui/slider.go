package ui

import (
	"fmt"
	"kolam/design"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/termenv"
)

// SliderHit is what a click inside the slider section landed on.
type SliderHit int

const (
	SliderHitNone SliderHit = iota
	SliderHitPrev
	SliderHitNext
	SliderHitDot
)

// arrowWidth is one arrow column including its spacing.
const arrowWidth = 3

// SliderState is everything the slider section shows.
type SliderState struct {
	Designs []design.Design
	Index   int
	// OffsetPercent is the track offset of the current slide.
	OffsetPercent int
}

// SliderView renders the design carousel and remembers where the arrows and
// dots were drawn.
type SliderView struct {
	width      int
	slideWidth int

	rowTop, rowHeight int
	prevStart         int
	nextStart         int
	dotsLine          int
	dotsLeft          int
	dotCount          int
}

func NewSliderView() *SliderView {
	return &SliderView{}
}

// SetSize sets the section width and the width of the slide card.
func (s *SliderView) SetSize(width, slideWidth int) {
	s.width = width
	s.slideWidth = min(slideWidth, max(width-2*arrowWidth, 1))
}

// Heading is the section title for a design list.
func Heading(designs []design.Design) string {
	if len(designs) == 0 {
		return ""
	}
	return "Generated Designs for " + designs[0].Prompt
}

var (
	arrowStyle     = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	dotStyle       = lipgloss.NewStyle().Foreground(TextMuted)
	activeDotStyle = lipgloss.NewStyle().Foreground(Primary)
	linkStyle      = lipgloss.NewStyle().Foreground(Secondary).Underline(true)
)

// imageLink renders url as an OSC 8 hyperlink labelled with the url itself,
// truncated to width cells.
func imageLink(url string, width int) string {
	label := url
	if width > 0 {
		label = truncate.StringWithTail(url, uint(width), "…")
	}
	return termenv.Hyperlink(url, linkStyle.Render(label))
}

func (s *SliderView) slide(d design.Design, index, total int) string {
	inner := max(s.slideWidth-4, 1)

	title := TextStyles.Title.Render(runewidth.Truncate(d.Title, inner, "…"))
	if d.IsNew && runewidth.StringWidth(d.Title)+6 <= inner {
		title += " " + StatusBadge("New", StatusSuccess)
	}
	lines := []string{
		title,
		"",
		imageLink(d.Image, inner),
		"",
		TextStyles.Muted.Render(fmt.Sprintf("%d / %d", index+1, total)),
	}
	return FocusedCardStyle().Width(s.slideWidth - 2).Render(strings.Join(lines, "\n"))
}

// Render draws the section. It renders nothing for an empty list.
func (s *SliderView) Render(st SliderState) string {
	s.dotCount = 0
	n := len(st.Designs)
	if n == 0 {
		s.rowHeight = 0
		return ""
	}
	index := min(max(st.Index, 0), n-1)

	heading := TextStyles.Heading.Render(runewidth.Truncate(Heading(st.Designs), s.width, "…"))

	card := s.slide(st.Designs[index], index, n)
	cardHeight := lipgloss.Height(card)
	arrow := func(icon string) string {
		return lipgloss.NewStyle().
			Width(arrowWidth).
			Height(cardHeight).
			Align(lipgloss.Center).
			AlignVertical(lipgloss.Center).
			Render(arrowStyle.Render(icon))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, arrow(IconPrev), card, arrow(IconNext))
	rowPad := max((s.width-lipgloss.Width(row))/2, 0)
	row = lipgloss.NewStyle().PaddingLeft(rowPad).Render(row)

	s.rowTop = 2
	s.rowHeight = cardHeight
	s.prevStart = rowPad
	s.nextStart = rowPad + arrowWidth + lipgloss.Width(card)

	var dots string
	if 2*n-1 <= s.width {
		parts := make([]string, n)
		for i := range parts {
			if i == index {
				parts[i] = activeDotStyle.Render(IconDot)
			} else {
				parts[i] = dotStyle.Render(IconDotEmpty)
			}
		}
		dots = strings.Join(parts, " ")
		s.dotCount = n
	} else {
		dots = activeDotStyle.Render(fmt.Sprintf("%s %d/%d", IconDot, index+1, n))
	}
	s.dotsLeft = max((s.width-lipgloss.Width(dots))/2, 0)
	dots = strings.Repeat(" ", s.dotsLeft) + dots
	s.dotsLine = s.rowTop + s.rowHeight + 1

	return strings.Join([]string{heading, "", row, "", dots}, "\n")
}

// HitTest maps a click, relative to the top-left of the last render, to an
// arrow or a dot. For dots it also returns the dot index.
func (s *SliderView) HitTest(line, col int) (SliderHit, int) {
	if s.rowHeight == 0 {
		return SliderHitNone, -1
	}
	if line >= s.rowTop && line < s.rowTop+s.rowHeight {
		switch {
		case col >= s.prevStart && col < s.prevStart+arrowWidth:
			return SliderHitPrev, -1
		case col >= s.nextStart && col < s.nextStart+arrowWidth:
			return SliderHitNext, -1
		}
		return SliderHitNone, -1
	}
	if line == s.dotsLine && s.dotCount > 0 {
		// dots sit on even offsets with a space between them
		off := col - s.dotsLeft
		if off >= 0 && off%2 == 0 && off/2 < s.dotCount {
			return SliderHitDot, off / 2
		}
	}
	return SliderHitNone, -1
}
