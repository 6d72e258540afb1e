package app

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"kolam/config"
	"kolam/design"
	"kolam/keys"
	"kolam/log"
	"kolam/navigator"
	"kolam/ui"
	"kolam/ui/layout"
	"kolam/ui/overlay"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Options carries the collaborators of the landing screen. Zero fields get
// the production implementation.
type Options struct {
	// Fetcher reads grid images. Defaults to a design.Client built from the
	// config.
	Fetcher design.Fetcher
	// Navigator opens the next step after a free-text design is generated.
	Navigator navigator.Navigator
	// Clipboard receives copied image URLs.
	Clipboard func(string) error
	Now       func() time.Time
}

// Run is the main entrypoint into the application.
func Run(ctx context.Context, cfg *config.Config, opts Options) error {
	m, err := newHome(ctx, cfg, opts)
	if err != nil {
		return err
	}
	defer m.cancel()

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(), // clicks and wheel
	)
	_, err = p.Run()
	return err
}

type state int

const (
	stateDefault state = iota
	// stateLoading is while a grid fetch is in flight.
	stateLoading
	// stateGenerating is while a free-text design is being generated.
	stateGenerating
)

func (s state) String() string {
	switch s {
	case stateLoading:
		return "loading"
	case stateGenerating:
		return "generating"
	default:
		return "default"
	}
}

const (
	// errorDisplayTime is how long transient errors stay in the banner.
	errorDisplayTime = 3 * time.Second
	// keyHighlightTime is how long a pressed key stays underlined in the menu.
	keyHighlightTime = 500 * time.Millisecond
	// wheelLines is how far one wheel notch scrolls.
	wheelLines = 3
)

type home struct {
	ctx    context.Context
	cancel context.CancelFunc

	// -- Configuration and services --

	cfg          *config.Config
	orchestrator *design.Orchestrator
	navigator    navigator.Navigator
	clipboard    func(string) error
	now          func() time.Time

	// -- State --

	// state is the current discrete state of the application
	state state
	// designs is the shared list behind the slider and the gallery
	designs   []design.Design
	slider    design.Slider
	suggester *design.Suggester
	tab       ui.Tab

	// timerGeneration is the slider generation the live autoplay timer was
	// scheduled for; cancelTimer stops it early.
	timerGeneration uint64
	cancelTimer     context.CancelFunc

	keyupDelay time.Duration

	// -- UI Components --

	input textinput.Model
	// global spinner instance. we plumb this down to where it's needed
	spinner  spinner.Model
	viewport viewport.Model

	menu           *ui.Menu
	promptBox      *ui.PromptBox
	sliderView     *ui.SliderView
	tabsView       *ui.TabsView
	errBox         *ui.ErrBox
	loadingOverlay *overlay.LoadingOverlay

	// -- Layout --

	constraints layout.Constraints
	degradation layout.Degradation
	// page is the geometry of the last body render, used for mouse hits
	page page
}

func newHome(ctx context.Context, cfg *config.Config, opts Options) (*home, error) {
	fetcher := opts.Fetcher
	if fetcher == nil {
		client, err := design.NewClient(design.ClientOptions{
			BaseURL:           cfg.APIBaseURL,
			Timeout:           cfg.FetchTimeout(),
			CacheTTL:          cfg.CacheTTL(),
			RequestsPerSecond: cfg.RequestsPerSecond,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create image client: %w", err)
		}
		fetcher = client
	}
	nav := opts.Navigator
	if nav == nil {
		nav = navigator.Browser{}
	}
	copyFn := opts.Clipboard
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	ctx, cancel := context.WithCancel(ctx)

	input := textinput.New()
	input.Placeholder = ui.PromptPlaceholder
	input.Prompt = ui.IconActive + " "
	input.Focus()

	h := &home{
		ctx:    ctx,
		cancel: cancel,
		cfg:    cfg,
		orchestrator: design.NewOrchestrator(design.OrchestratorOptions{
			Fetcher:         fetcher,
			Suggestions:     cfg.Suggestions,
			PlaceholderBase: cfg.PlaceholderBaseURL,
			GenerationDelay: cfg.GenerationDelay(),
			Now:             now,
		}),
		navigator:  nav,
		clipboard:  copyFn,
		now:        now,
		state:      stateDefault,
		suggester:  design.NewSuggester(cfg.Suggestions),
		tab:        ui.TabCreate,
		keyupDelay: keyHighlightTime,
		input:      input,
		spinner:    spinner.New(spinner.WithSpinner(spinner.MiniDot)),
		viewport:   viewport.New(0, 0),
		menu:       ui.NewMenu(),
		promptBox:  ui.NewPromptBox(),
		sliderView: ui.NewSliderView(),
		tabsView:   ui.NewTabsView(),
		errBox:     ui.NewErrBox(),
	}
	h.loadingOverlay = overlay.NewLoadingOverlay("Generating your kolam", &h.spinner)
	h.loadingOverlay.SetHint("The design opens in your browser when it is ready.")

	// Lay out for a classic terminal until the first WindowSizeMsg arrives.
	h.updateHandleWindowSizeEvent(tea.WindowSizeMsg{Width: 80, Height: 24})
	h.refresh()
	return h, nil
}

// updateHandleWindowSizeEvent recomputes the layout and resizes every
// component.
func (m *home) updateHandleWindowSizeEvent(msg tea.WindowSizeMsg) {
	m.constraints = layout.ComputeConstraints(msg.Width, msg.Height)
	m.degradation = layout.ComputeDegradation(m.constraints)
	c := m.constraints

	m.viewport.Width = c.TerminalWidth
	m.viewport.Height = c.ViewportHeight

	m.promptBox.SetWidth(c.InputWidth)
	m.input.Width = max(m.promptBox.FieldWidth()-len([]rune(m.input.Prompt))-1, 1)
	m.sliderView.SetSize(c.ContentWidth, c.SlideWidth)
	m.tabsView.SetLayout(c, m.degradation)
	m.errBox.SetSize(c.ContentWidth)
	m.menu.SetSize(c.MenuWidth)

	w, _ := layout.ComputeOverlaySize(c.TerminalWidth, c.TerminalHeight, layout.OverlayMaxWidth, layout.OverlayMaxHeight)
	m.loadingOverlay.SetWidth(w)
}

func (m *home) Init() tea.Cmd {
	// The spinner keeps ticking for the lifetime of the program; it is only
	// drawn while a request runs.
	return tea.Batch(
		m.spinner.Tick,
		textinput.Blink,
	)
}

// Update routes msg and then brings the derived state (menu options, the
// autoplay timer and the rendered body) in line with the model.
func (m *home) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := m.update(msg)

	if timer := m.syncSlideTimer(); timer != nil {
		cmd = tea.Batch(cmd, timer)
	}
	m.syncMenu()
	m.refresh()
	return model, cmd
}

func (m *home) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case hideErrMsg:
		m.errBox.ClearIf(msg.id)
		return m, nil
	case keyupMsg:
		m.menu.ClearKeydown()
		return m, nil
	case slideTickMsg:
		if m.slider.Advance(msg.generation) {
			log.Debug("autoplay advanced to slide %d", m.slider.Index())
		}
		return m, nil
	case requestDoneMsg:
		return m, m.handleRequestDone(msg.result)
	case tea.MouseMsg:
		return m, m.handleMouse(msg)
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		m.updateHandleWindowSizeEvent(msg)
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	// cursor blink and anything else the input understands
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *home) busy() bool {
	return m.state != stateDefault
}

func (m *home) syncMenu() {
	switch {
	case m.busy():
		m.menu.SetState(ui.StateBusy)
	case m.suggester.Visible():
		m.menu.SetState(ui.StateSuggesting)
	default:
		m.menu.SetState(ui.StateDefault)
	}
	m.menu.SetHasDesigns(len(m.designs) > 0)
}

func (m *home) handleQuit() (tea.Model, tea.Cmd) {
	m.cancel()
	log.GetProfiler().LogStats()
	return m, tea.Quit
}

func (m *home) handleMenuHighlighting(msg tea.KeyMsg) tea.Cmd {
	name, ok := keys.GlobalKeyStringsMap[msg.String()]
	if !ok {
		return nil
	}
	if m.busy() && (name == keys.KeyEnter || name == keys.KeyGenerate) {
		return nil
	}
	// suggestion keys only show up in the menu while the list is open
	if !m.suggester.Visible() && (name == keys.KeyUp || name == keys.KeyDown || name == keys.KeyEsc) {
		return nil
	}
	return m.keydownCallback(name)
}

func (m *home) handleKeyPress(msg tea.KeyMsg) (mod tea.Model, cmd tea.Cmd) {
	// Get the menu highlight command - this is batched with the action command later
	highlightCmd := m.handleMenuHighlighting(msg)
	log.InputTrace("key %q state=%s", msg.String(), m.state)

	if name, ok := keys.GlobalKeyStringsMap[msg.String()]; ok {
		if handled, cmd := m.handleBinding(name, msg); handled {
			return m, tea.Batch(highlightCmd, cmd)
		}
	}

	// Inputs are disabled while a request runs.
	if m.busy() {
		return m, highlightCmd
	}

	// Everything else edits the prompt.
	prev := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if value := m.input.Value(); value != prev {
		m.suggester.SetPrompt(value)
	}
	return m, tea.Batch(highlightCmd, cmd)
}

// handleBinding runs the action of a global key. It reports false for keys
// that should fall through to the prompt input.
func (m *home) handleBinding(name keys.KeyName, msg tea.KeyMsg) (bool, tea.Cmd) {
	switch name {
	case keys.KeyQuit:
		_, cmd := m.handleQuit()
		return true, cmd
	case keys.KeyPageUp:
		m.viewport.SetYOffset(m.viewport.YOffset - max(m.viewport.Height-1, 1))
		return true, nil
	case keys.KeyPageDown:
		m.viewport.SetYOffset(m.viewport.YOffset + max(m.viewport.Height-1, 1))
		return true, nil
	case keys.KeyTab:
		m.tab = m.tab.Next()
		return true, nil
	case keys.KeyTabCreate:
		m.tab = ui.TabCreate
		return true, nil
	case keys.KeyTabGallery:
		m.tab = ui.TabGallery
		return true, nil
	case keys.KeyTabCommunity:
		m.tab = ui.TabCommunity
		return true, nil
	case keys.KeyPrevSlide:
		m.slider.Prev()
		return true, nil
	case keys.KeyNextSlide:
		m.slider.Next()
		return true, nil
	case keys.KeyJumpSlide:
		if i, ok := keys.SlideDigit(msg.String()); ok {
			m.slider.Goto(i)
		}
		return true, nil
	case keys.KeyCopyImage:
		return true, m.copyImageURL()
	}

	if m.busy() {
		return true, nil
	}

	switch name {
	case keys.KeyUp:
		if !m.suggester.Navigable() {
			return false, nil
		}
		m.suggester.Up()
		return true, nil
	case keys.KeyDown:
		if !m.suggester.Navigable() {
			return false, nil
		}
		m.suggester.Down()
		return true, nil
	case keys.KeyEsc:
		if !m.suggester.Visible() {
			return false, nil
		}
		m.suggester.Hide()
		return true, nil
	case keys.KeyEnter:
		if m.suggester.Navigable() {
			return true, m.commitSuggestion(m.suggester.Active())
		}
		return true, m.submit()
	case keys.KeyGenerate:
		return true, m.submit()
	}
	return false, nil
}

func (m *home) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionPress {
		return nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.viewport.SetYOffset(m.viewport.YOffset - wheelLines)
		return nil
	case tea.MouseButtonWheelDown:
		m.viewport.SetYOffset(m.viewport.YOffset + wheelLines)
		return nil
	case tea.MouseButtonLeft:
	default:
		return nil
	}

	// the menu row below the viewport has no click targets
	if msg.Y < 0 || msg.Y >= m.viewport.Height {
		return nil
	}
	line := msg.Y + m.viewport.YOffset
	col := msg.X - m.page.left
	log.InputTrace("click at body line %d col %d", line, col)

	if !m.busy() {
		if pc := col - m.page.promptLeft; pc >= 0 && pc < m.constraints.InputWidth {
			hit, idx := m.promptBox.HitTest(line - m.page.promptTop)
			switch hit {
			case ui.PromptHitInput:
				if m.promptBox.OnButton(pc) {
					return m.submit()
				}
				m.suggester.Show()
				return nil
			case ui.PromptHitSuggestion:
				return m.commitSuggestion(idx)
			case ui.PromptHitList:
				return nil
			}
		}
	}

	// any other click closes the suggestion list
	m.suggester.Hide()

	if m.page.sliderTop >= 0 {
		hit, idx := m.sliderView.HitTest(line-m.page.sliderTop, col)
		switch hit {
		case ui.SliderHitPrev:
			m.slider.Prev()
			return nil
		case ui.SliderHitNext:
			m.slider.Next()
			return nil
		case ui.SliderHitDot:
			m.slider.Goto(idx)
			return nil
		}
	}

	if tab, ok := m.tabsView.HitTest(line-m.page.tabsTop, col); ok {
		m.tab = tab
	}
	return nil
}

// commitSuggestion puts the i-th visible suggestion into the prompt and
// fetches its images.
func (m *home) commitSuggestion(i int) tea.Cmd {
	if m.busy() {
		return nil
	}
	sug, ok := m.suggester.Commit(i)
	if !ok {
		return nil
	}
	m.input.SetValue(sug.Value)
	m.input.CursorEnd()
	return m.startRequest(m.orchestrator.PlanGrid(sug.Value))
}

// submit generates from the current prompt. Blank prompts do nothing.
func (m *home) submit() tea.Cmd {
	if m.busy() {
		return nil
	}
	req, ok := m.orchestrator.Plan(m.input.Value())
	if !ok {
		return nil
	}
	return m.startRequest(req)
}

func (m *home) startRequest(req design.Request) tea.Cmd {
	switch req.Kind {
	case design.KindGrid:
		m.state = stateLoading
		m.errBox.Clear()
	default:
		m.state = stateGenerating
		m.loadingOverlay.SetStatus(fmt.Sprintf("Creating a kolam from %q", strings.TrimSpace(req.Prompt)))
	}
	log.InfoLog.Printf("starting %s request %d for %q", req.Kind, req.Seq, req.Prompt)

	ctx, orch := m.ctx, m.orchestrator
	return func() tea.Msg {
		trace := log.TraceRequest(req.Seq, req.Kind.String(), req.Prompt)
		res := orch.Run(ctx, req)
		trace.Done(len(res.Designs), res.Err)
		return requestDoneMsg{result: res}
	}
}

func (m *home) handleRequestDone(res design.Result) tea.Cmd {
	if !m.orchestrator.IsLatest(res.Seq) {
		log.WarningLog.Printf("dropping stale %s result %d for %q", res.Kind, res.Seq, res.Prompt)
		return nil
	}
	m.state = stateDefault
	if res.Canceled {
		log.InfoLog.Printf("%s request %d canceled", res.Kind, res.Seq)
		return nil
	}

	if res.Kind == design.KindGrid {
		m.designs = res.Designs
		m.slider.Reset(len(m.designs))
		if res.Err != nil {
			log.ErrorLog.Printf("failed to fetch images for %q: %v", res.Prompt, res.Err)
			// stays up until the next grid fetch
			m.errBox.SetMessage("Failed to fetch images: " + res.Err.Error())
		}
		m.suggester.Hide()
		return nil
	}

	m.designs = slices.Concat(res.Designs, m.designs)
	m.slider.Resize(len(m.designs))
	m.input.SetValue("")
	m.suggester.SetText("")
	m.suggester.Hide()
	return m.navigateNext()
}

// navigateNext opens the configured next step page. An empty URL disables
// navigation.
func (m *home) navigateNext() tea.Cmd {
	target := m.cfg.NextStepURL
	if target == "" {
		return nil
	}
	if err := m.navigator.Open(target); err != nil {
		return m.handleError(fmt.Errorf("failed to open next step: %w", err))
	}
	log.InfoLog.Printf("opened next step %s", target)
	return nil
}

func (m *home) copyImageURL() tea.Cmd {
	if len(m.designs) == 0 {
		return nil
	}
	url := m.designs[m.slider.Index()].Image
	if err := m.clipboard(url); err != nil {
		return m.handleError(fmt.Errorf("failed to copy image url: %w", err))
	}
	log.InfoLog.Printf("copied %s to the clipboard", url)
	return nil
}

// syncSlideTimer keeps exactly one autoplay timer alive for the current
// slider generation. It returns the command of a newly scheduled timer.
func (m *home) syncSlideTimer() tea.Cmd {
	gen := m.slider.Generation()
	if gen == m.timerGeneration {
		return nil
	}
	m.timerGeneration = gen
	if m.cancelTimer != nil {
		m.cancelTimer()
		m.cancelTimer = nil
	}
	if !m.slider.Autoplay() {
		return nil
	}

	ctx, cancel := context.WithCancel(m.ctx)
	m.cancelTimer = cancel
	interval := m.cfg.SlideInterval()
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(interval):
		}
		return slideTickMsg{generation: gen}
	}
}

type keyupMsg struct{}

// keydownCallback clears the menu option highlighting after 500ms.
func (m *home) keydownCallback(name keys.KeyName) tea.Cmd {
	m.menu.Keydown(name)
	delay := m.keyupDelay
	return func() tea.Msg {
		select {
		case <-m.ctx.Done():
		case <-time.After(delay):
		}

		return keyupMsg{}
	}
}

// hideErrMsg implements tea.Msg and clears the error text from the screen
// unless a newer error replaced it.
type hideErrMsg struct {
	id uint64
}

// slideTickMsg advances the slider if it still carries the live generation.
type slideTickMsg struct {
	generation uint64
}

// requestDoneMsg carries the outcome of a grid fetch or generation.
type requestDoneMsg struct {
	result design.Result
}

// handleError logs err and shows it in the banner for a few seconds.
func (m *home) handleError(err error) tea.Cmd {
	log.ErrorLog.Printf("%v", err)
	id := m.errBox.SetError(err)
	return func() tea.Msg {
		select {
		case <-m.ctx.Done():
		case <-time.After(errorDisplayTime):
		}

		return hideErrMsg{id: id}
	}
}
