package ui

import (
	"fmt"
	"kolam/design"
	"kolam/ui/layout"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"
)

// Tab is one of the three tabs under the slider.
type Tab int

const (
	TabCreate Tab = iota
	TabGallery
	TabCommunity
)

var tabLabels = [...]string{
	TabCreate:    "Create New",
	TabGallery:   "My Designs",
	TabCommunity: "Community",
}

var tabNames = [...]string{
	TabCreate:    "create",
	TabGallery:   "gallery",
	TabCommunity: "community",
}

func (t Tab) String() string {
	if t < 0 || int(t) >= len(tabNames) {
		return "unknown"
	}
	return tabNames[t]
}

// Label is the text on the tab button.
func (t Tab) Label() string {
	if t < 0 || int(t) >= len(tabLabels) {
		return ""
	}
	return tabLabels[t]
}

// Next cycles to the following tab.
func (t Tab) Next() Tab {
	return (t + 1) % Tab(len(tabLabels))
}

const (
	// EmptyGalleryText is shown in the gallery when there are no designs.
	EmptyGalleryText = "You haven't created any designs yet. Start by entering a grid size above!"
	// LoadingGalleryText is shown in the gallery while a request is running.
	LoadingGalleryText = "Loading designs..."
	// GalleryHeading titles the gallery tab.
	GalleryHeading = "Your Generated Designs"

	createTabText    = "Pick a grid size from the suggestions above, or describe the kolam you have in mind and press enter."
	communityTabText = "Community designs are coming soon. Share your favourite kolams and discover patterns from other creators."
)

// TabsState is everything the tab section shows.
type TabsState struct {
	Active  Tab
	Designs []design.Design
	Loading bool
	// Spinner is the rendered spinner frame used next to the loading text.
	Spinner string
	Now     time.Time
}

// TabsView renders the tab header and the active tab body, and remembers the
// header cell ranges for mouse hit testing.
type TabsView struct {
	constraints layout.Constraints
	degradation layout.Degradation

	headerHeight int
	tabStarts    []int
	tabEnds      []int
}

func NewTabsView() *TabsView {
	return &TabsView{}
}

func (v *TabsView) SetLayout(c layout.Constraints, d layout.Degradation) {
	v.constraints = c
	v.degradation = d
}

var (
	activeTabBorder   = tabBorderWithBottom("┘", " ", "└")
	inactiveTabBorder = tabBorderWithBottom("┴", "─", "┴")
	inactiveTabStyle  = lipgloss.NewStyle().
				Border(inactiveTabBorder, true).
				BorderForeground(Border).
				Foreground(TextSecondary).
				Padding(0, 1)
	activeTabStyle = inactiveTabStyle.
			Border(activeTabBorder, true).
			BorderForeground(BorderFocus).
			Foreground(Primary).
			Bold(true)
	plainTabStyle       = lipgloss.NewStyle().Foreground(TextSecondary).Padding(0, 1)
	plainActiveTabStyle = plainTabStyle.Foreground(Primary).Bold(true).Underline(true)
)

func tabBorderWithBottom(left, middle, right string) lipgloss.Border {
	border := lipgloss.RoundedBorder()
	border.BottomLeft = left
	border.Bottom = middle
	border.BottomRight = right
	return border
}

func (v *TabsView) header(active Tab) string {
	v.tabStarts = v.tabStarts[:0]
	v.tabEnds = v.tabEnds[:0]

	rendered := make([]string, 0, len(tabLabels))
	col := 0
	for i := range tabLabels {
		t := Tab(i)
		var style lipgloss.Style
		switch {
		case v.degradation.SimplifyTabs && t == active:
			style = plainActiveTabStyle
		case v.degradation.SimplifyTabs:
			style = plainTabStyle
		case t == active:
			style = activeTabStyle
		default:
			style = inactiveTabStyle
		}
		r := style.Render(t.Label())
		w := lipgloss.Width(r)
		v.tabStarts = append(v.tabStarts, col)
		v.tabEnds = append(v.tabEnds, col+w)
		col += w
		rendered = append(rendered, r)
	}

	row := lipgloss.JoinHorizontal(lipgloss.Bottom, rendered...)
	if v.degradation.SimplifyTabs {
		return row
	}
	// extend the baseline under the tabs to the content width
	if gap := v.constraints.ContentWidth - lipgloss.Width(row); gap > 0 {
		line := lipgloss.NewStyle().Foreground(Border).Render(strings.Repeat("─", gap))
		row = lipgloss.JoinHorizontal(lipgloss.Bottom, row, line)
	}
	return row
}

// Render draws the header and the body of the active tab.
func (v *TabsView) Render(st TabsState) string {
	header := v.header(st.Active)
	v.headerHeight = lipgloss.Height(header)

	var body string
	switch st.Active {
	case TabGallery:
		body = v.gallery(st)
	case TabCommunity:
		body = v.paragraph(communityTabText)
	default:
		body = v.paragraph(createTabText)
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, "", body)
}

func (v *TabsView) paragraph(text string) string {
	return TextStyles.Secondary.Render(wordwrap.String(text, max(v.constraints.ContentWidth, 10)))
}

func (v *TabsView) gallery(st TabsState) string {
	heading := TextStyles.Title.Render(GalleryHeading)
	switch {
	case st.Loading:
		return heading + "\n\n" + strings.TrimSpace(st.Spinner+" "+TextStyles.Muted.Render(LoadingGalleryText))
	case len(st.Designs) == 0:
		return heading + "\n\n" + v.paragraph(EmptyGalleryText)
	}

	cols := max(v.constraints.GalleryColumns, 1)
	cardWidth := max(v.constraints.CardWidth, 12)
	gap := strings.Repeat(" ", layout.GridGap)

	var rows []string
	for start := 0; start < len(st.Designs); start += cols {
		end := min(start+cols, len(st.Designs))
		cards := make([]string, 0, 2*(end-start))
		for i, d := range st.Designs[start:end] {
			if i > 0 {
				cards = append(cards, gap)
			}
			cards = append(cards, v.card(d, cardWidth, st.Now))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return heading + "\n\n" + strings.Join(rows, "\n")
}

func (v *TabsView) card(d design.Design, width int, now time.Time) string {
	inner := max(width-4, 1)

	lines := []string{
		TextStyles.Title.Render(runewidth.Truncate(d.Title, inner, "…")),
		TextStyles.Secondary.Render(runewidth.Truncate("Grid: "+d.Prompt, inner, "…")),
	}
	if !v.degradation.HideCardLinks {
		lines = append(lines, imageLink(d.Image, inner))
	}

	var meta []string
	if d.IsNew {
		meta = append(meta, StatusBadge("New", StatusSuccess))
	}
	if !v.degradation.HideCardTime && !d.CreatedAt.IsZero() {
		meta = append(meta, TextStyles.Muted.Render(FormatRelativeTime(d.CreatedAt, now)))
	}
	if len(meta) > 0 {
		lines = append(lines, strings.Join(meta, " "))
	}

	return CardStyle().Width(width - 2).Render(strings.Join(lines, "\n"))
}

// HitTest maps a click, relative to the top-left of the last render, to a tab
// in the header.
func (v *TabsView) HitTest(line, col int) (Tab, bool) {
	if line < 0 || line >= v.headerHeight {
		return 0, false
	}
	for i := range v.tabStarts {
		if col >= v.tabStarts[i] && col < v.tabEnds[i] {
			return Tab(i), true
		}
	}
	return 0, false
}

// DesignCount is a short summary used in the help line.
func DesignCount(n int) string {
	if n == 1 {
		return "1 design"
	}
	return fmt.Sprintf("%d designs", n)
}
