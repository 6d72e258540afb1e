package ui

import (
	"fmt"
	"kolam/ui/layout"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

const (
	BrandName    = "KOLAM"
	HeroTitle    = "Create Beautiful Kolam Designs with AI"
	HeroSubtitle = "Transform your ideas into intricate kolam patterns with a single prompt."
	FeatureTitle = "How It Works"
	Tagline      = "Preserving tradition through technology"
	Copyright    = "© 2023 Kolam AI. All rights reserved."
)

var navLinks = []string{"Features", "Gallery", "Community"}

// Feature is one step of the "How It Works" section.
type Feature struct {
	Icon  string
	Title string
	Text  string
}

var Features = []Feature{
	{Icon: "💬", Title: "Choose Grid Size", Text: "Select a grid pattern (3x3, 5x5, etc.) or describe your design"},
	{Icon: "✨", Title: "AI Generates Designs", Text: "Our AI creates kolam patterns based on your selected grid size"},
	{Icon: "🎨", Title: "Customize & Download", Text: "Refine colors, adjust complexity, and download your favorite designs"},
}

// FooterGroup is one column of footer links.
type FooterGroup struct {
	Title string
	Links []string
}

var FooterGroups = []FooterGroup{
	{Title: "Product", Links: []string{"Features", "Examples", "Pricing"}},
	{Title: "Resources", Links: []string{"Learn Kolam", "Blog", "Tutorials"}},
	{Title: "Company", Links: []string{"About", "Careers", "Contact"}},
}

var (
	logoStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary)
	navStyle = lipgloss.NewStyle().
			Foreground(TextSecondary)
	ctaStyle = BadgeStyle(Secondary).
			Bold(true)
	heroTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary)
	sectionTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(TextPrimary).
				Underline(true)
	featureCardStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(Border).
				Padding(0, 1)
	footerRuleStyle = lipgloss.NewStyle().Foreground(Border)
)

// kolamArt is a small dot grid drawn next to the logo.
const kolamArt = "·◇·"

// Header renders the top bar: logo, nav labels and the call to action.
func Header(width int, d layout.Degradation) string {
	logo := logoStyle.Render(BrandName)
	if !d.HideHeaderArt {
		logo = logoStyle.Render(kolamArt+" "+BrandName+" "+kolamArt)
	}
	cta := ctaStyle.Render("Get Started")

	nav := navStyle.Render(strings.Join(navLinks, "   "))
	used := lipgloss.Width(logo) + lipgloss.Width(cta)
	if used+lipgloss.Width(nav)+4 > width {
		nav = ""
	}

	free := max(width-used-lipgloss.Width(nav), 0)
	left := free / 2
	return logo + strings.Repeat(" ", left) + nav + strings.Repeat(" ", free-left) + cta
}

// Hero renders the title and subtitle above the prompt, centered in width.
func Hero(width int, d layout.Degradation) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	parts := []string{center.Render(heroTitleStyle.Render(wordwrap.String(HeroTitle, width)))}
	if !d.HideHeroSubtitle {
		parts = append(parts, center.Render(TextStyles.Secondary.Render(wordwrap.String(HeroSubtitle, width))))
	}
	return strings.Join(parts, "\n")
}

// FeatureSection renders "How It Works" as a grid of feature cards.
func FeatureSection(c layout.Constraints, d layout.Degradation) string {
	cols := max(c.FeatureColumns, 1)
	cardWidth := max(c.FeatureWidth, 10)
	inner := max(cardWidth-4, 1)

	cards := make([]string, 0, len(Features))
	for _, f := range Features {
		body := TextStyles.Title.Render(f.Icon + " " + f.Title)
		if !d.HideFeatureText {
			body += "\n" + TextStyles.Secondary.Render(wordwrap.String(f.Text, inner))
		}
		cards = append(cards, featureCardStyle.Width(cardWidth-2).Render(body))
	}

	gap := strings.Repeat(" ", layout.GridGap)
	var rows []string
	for start := 0; start < len(cards); start += cols {
		end := min(start+cols, len(cards))
		row := make([]string, 0, 2*(end-start))
		for i, card := range cards[start:end] {
			if i > 0 {
				row = append(row, gap)
			}
			row = append(row, card)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}

	return sectionTitleStyle.Render(FeatureTitle) + "\n\n" + strings.Join(rows, "\n")
}

// Footer renders the brand block, the link groups and the copyright line.
func Footer(width int) string {
	brand := logoStyle.Render(BrandName) + "\n" + TextStyles.Muted.Render(Tagline)

	groups := make([]string, 0, len(FooterGroups))
	for _, g := range FooterGroups {
		lines := []string{TextStyles.Title.Render(g.Title)}
		for _, l := range g.Links {
			lines = append(lines, TextStyles.Secondary.Render(l))
		}
		groups = append(groups, lipgloss.NewStyle().PaddingRight(4).Render(strings.Join(lines, "\n")))
	}
	links := lipgloss.JoinHorizontal(lipgloss.Top, groups...)

	var top string
	if lipgloss.Width(brand)+lipgloss.Width(links)+4 <= width {
		gap := strings.Repeat(" ", width-lipgloss.Width(brand)-lipgloss.Width(links))
		top = lipgloss.JoinHorizontal(lipgloss.Top, brand, gap, links)
	} else {
		top = brand + "\n\n" + links
	}

	rule := footerRuleStyle.Render(strings.Repeat("─", max(width, 1)))
	copyright := lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(TextStyles.Muted.Render(Copyright))
	return strings.Join([]string{rule, top, "", copyright}, "\n")
}

// MinSizeWarning is shown above the page on terminals below the minimum size.
func MinSizeWarning(width, height int) string {
	msg := wordwrap.String(fmt.Sprintf("Terminal is smaller than %dx%d (%dx%d). Some sections may be cut off.",
		layout.MinWidth, layout.MinHeight, width, height), max(width, 10))
	return lipgloss.NewStyle().Foreground(StatusRunning).Render(msg)
}
