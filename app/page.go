package app

import (
	"strings"
	"time"

	"kolam/inspect"
	"kolam/log"
	"kolam/ui"
	"kolam/ui/overlay"

	"github.com/charmbracelet/lipgloss"
)

// section is one block of the body and the lines it occupies.
type section struct {
	name   string
	top    int
	height int
}

// page is the geometry of the last rendered body. Tops are body lines,
// columns are relative to the content column.
type page struct {
	// left is the padding before the content column.
	left int

	promptTop  int
	promptLeft int
	// sliderTop is -1 while the slider is not shown.
	sliderTop int
	tabsTop   int

	sections []section
	parts    []string
	lines    int
}

func (p *page) add(name, block string) int {
	top := p.lines
	h := lipgloss.Height(block)
	if name != "" {
		p.sections = append(p.sections, section{name: name, top: top, height: h})
	}
	p.parts = append(p.parts, block)
	p.lines += h
	return top
}

func (p *page) gap() {
	p.add("", "")
}

func (p *page) String() string {
	pad := strings.Repeat(" ", p.left)
	lines := strings.Split(strings.Join(p.parts, "\n"), "\n")
	for i, l := range lines {
		lines[i] = pad + l
	}
	return strings.Join(lines, "\n")
}

// render adds a timed section to the page.
func (p *page) render(name string, fn func() string) int {
	done := log.GetProfiler().Section(name)
	block := fn()
	top := p.add(name, block)
	done(p.lines - top)
	return top
}

// refresh renders the scrollable body into the viewport and records where
// each section landed.
func (m *home) refresh() {
	c, d := m.constraints, m.degradation
	width := c.ContentWidth
	p := page{
		left:      max((c.TerminalWidth-width)/2, 0),
		sliderTop: -1,
	}

	p.render("Header", func() string { return ui.Header(width, d) })
	if d.ShowMinWarning {
		p.add("Warning", ui.MinSizeWarning(c.TerminalWidth, c.TerminalHeight))
	}
	p.gap()
	p.render("Hero", func() string { return ui.Hero(width, d) })
	p.gap()

	p.promptTop = p.render("Prompt", func() string {
		prompt := m.promptBox.Render(ui.PromptState{
			Input:       m.input.View(),
			Suggestions: m.suggester.Filtered(),
			Active:      m.suggester.Active(),
			ShowList:    m.suggester.Visible() && !m.busy(),
			Busy:        m.busy(),
			CanSubmit:   strings.TrimSpace(m.input.Value()) != "",
		})
		p.promptLeft = max((width-lipgloss.Width(prompt))/2, 0)
		return indent(prompt, p.promptLeft)
	})

	if banner := m.errBox.String(); banner != "" {
		p.add("Error", indent(banner, max((width-lipgloss.Width(banner))/2, 0)))
	}

	if len(m.designs) > 0 {
		p.gap()
		p.sliderTop = p.render("Slider", func() string {
			return m.sliderView.Render(ui.SliderState{
				Designs:       m.designs,
				Index:         m.slider.Index(),
				OffsetPercent: m.slider.OffsetPercent(),
			})
		})
	}

	p.gap()
	p.tabsTop = p.render("Tabs", func() string {
		return m.tabsView.Render(ui.TabsState{
			Active:  m.tab,
			Designs: m.designs,
			Loading: m.busy(),
			Spinner: m.spinner.View(),
			Now:     m.now(),
		})
	})
	p.gap()
	p.render("Features", func() string { return ui.FeatureSection(c, d) })
	p.gap()
	p.render("Footer", func() string { return ui.Footer(width) })

	m.page = p
	m.viewport.SetContent(p.String())
}

func indent(block string, n int) string {
	if n <= 0 {
		return block
	}
	return lipgloss.NewStyle().PaddingLeft(n).Render(block)
}

func (m *home) View() string {
	start := time.Now()
	defer func() {
		log.GetProfiler().RecordFrame(time.Since(start), m.constraints.TerminalWidth, m.constraints.TerminalHeight)
	}()

	mainView := lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewport.View(),
		m.menu.String(),
	)

	if m.state == stateGenerating {
		mainView = overlay.PlaceOverlay(0, 0, m.loadingOverlay.Render(), mainView, true, true)
	}

	if inspect.IsEnabled() {
		if err := inspect.WriteSnapshot(m.inspectSnapshot()); err != nil {
			log.WarningLog.Printf("failed to write inspect snapshot: %v", err)
		}
	}

	return mainView
}

// inspectSnapshot describes the current screen for external tooling.
func (m *home) inspectSnapshot() *inspect.Snapshot {
	c := m.constraints
	root := inspect.NewNode("Page").WithBounds(m.page.left, 0, c.ContentWidth, m.page.lines)

	top, bottom := m.viewport.YOffset, m.viewport.YOffset+m.viewport.Height
	for _, s := range m.page.sections {
		root.AddChild(inspect.NewNode(s.name).
			WithBounds(m.page.left, s.top, c.ContentWidth, s.height).
			WithVisible(s.top < bottom && s.top+s.height > top))
	}

	if n := root.Find("Prompt"); n != nil {
		n.WithContent(m.input.Value()).
			WithState("suggestions", len(m.suggester.Filtered())).
			WithState("button", ui.ButtonLabel(m.busy()))
	}
	if n := root.Find("Slider"); n != nil {
		n.WithContent(ui.Heading(m.designs)).
			WithState("index", m.slider.Index()).
			WithState("offset_percent", m.slider.OffsetPercent()).
			WithState("autoplay", m.slider.Autoplay())
	}
	if n := root.Find("Tabs"); n != nil {
		n.WithState("active", m.tab.String())
	}
	if n := root.Find("Error"); n != nil {
		n.WithContent(m.errBox.Message())
	}

	overlayType := ""
	if m.state == stateGenerating {
		overlayType = "loading"
	}

	return inspect.NewSnapshot().
		WithTerminal(c.TerminalWidth, c.TerminalHeight).
		WithAppState(inspect.AppStateInfo{
			State:              m.state.String(),
			HasOverlay:         overlayType != "",
			OverlayType:        overlayType,
			Tab:                m.tab.String(),
			Prompt:             m.input.Value(),
			SuggestionsVisible: m.suggester.Visible(),
			ActiveSuggestion:   m.suggester.Active(),
			DesignCount:        len(m.designs),
			SlideIndex:         m.slider.Index(),
			Loading:            m.state == stateLoading,
			Generating:         m.state == stateGenerating,
			ErrorMessage:       m.errBox.Message(),
			ScrollOffset:       m.viewport.YOffset,
		}).
		WithLayout(c, m.degradation).
		WithComponents(root)
}
