package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"kolam/config"
	"kolam/design"
	"kolam/log"
	"kolam/navigator"
	"kolam/testing/harness"
	"kolam/testing/snapshot"
	"kolam/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	log.InitializeDiscard()
	os.Exit(m.Run())
}

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

const nextStep = "https://kolam.example/studio"

// fakeFetcher serves a fixed number of images for every token and records
// what was asked for.
type fakeFetcher struct {
	mu     sync.Mutex
	tokens []string
	count  int
	err    error
}

func (f *fakeFetcher) FetchGroup(ctx context.Context, token string) ([]design.ImageDescriptor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens = append(f.tokens, token)
	if f.err != nil {
		return nil, f.err
	}
	descs := make([]design.ImageDescriptor, f.count)
	for i := range descs {
		descs[i] = design.ImageDescriptor{
			Kind: design.DescriptorURL,
			URL:  "https://img.example/" + token + "/" + string(rune('a'+i)) + ".png",
		}
	}
	return descs, nil
}

func (f *fakeFetcher) Tokens() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.tokens...)
}

type fakeClipboard struct {
	copied []string
	err    error
}

func (c *fakeClipboard) write(s string) error {
	if c.err != nil {
		return c.err
	}
	c.copied = append(c.copied, s)
	return nil
}

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.GenerationDelayMs = 0
	cfg.NextStepURL = nextStep
	return cfg
}

func newTestHome(t *testing.T, cfg *config.Config, opts Options) *home {
	t.Helper()
	if opts.Navigator == nil {
		opts.Navigator = &navigator.Recorder{}
	}
	if opts.Clipboard == nil {
		opts.Clipboard = (&fakeClipboard{}).write
	}
	opts.Now = func() time.Time { return fixedNow }

	m, err := newHome(context.Background(), cfg, opts)
	require.NoError(t, err)
	m.keyupDelay = 0
	t.Cleanup(m.cancel)
	return m
}

// fetchGrid types token and commits it from the suggestion list.
func fetchGrid(t *testing.T, h *harness.Harness, token string) {
	t.Helper()
	h.Type(token)
	cmd := h.SendSpecialKey(tea.KeyEnter)
	require.NotNil(t, cmd)
	h.Exec(cmd)
}

func TestGridFetchFailureShowsPlaceholders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	cfg := testConfig()
	cfg.APIBaseURL = srv.URL
	m := newTestHome(t, cfg, Options{})
	h := harness.New(t, m, 120, 40)

	h.Type("5*5")
	require.True(t, m.suggester.Visible())
	cmd := h.SendSpecialKey(tea.KeyEnter)
	assert.Equal(t, stateLoading, m.state)
	snapshot.New(t).AssertContains(h.View(), ui.ButtonLabel(true))

	h.Exec(cmd)

	assert.Equal(t, stateDefault, m.state)
	require.Len(t, m.designs, design.FallbackCount)
	for i, d := range m.designs {
		assert.Equal(t, design.GridTitle("5*5", i+1), d.Title)
		assert.Equal(t, "5*5", d.Prompt)
	}
	assert.Equal(t, "https://picsum.photos/300/200?seed=5*5-1", m.designs[0].Image)
	assert.Equal(t, 0, m.slider.Index())
	assert.Equal(t, "Failed to fetch images: HTTP error! status: 500", m.errBox.Message())
	assert.False(t, m.suggester.Visible())

	view := h.View()
	snap := snapshot.New(t)
	snap.AssertContains(view, "Failed to fetch images")
	snap.AssertContains(view, "Generated Designs for 5*5")
	snap.AssertContains(view, "5*5 Design 1")
}

func TestGridFetchSuccessReplacesDesigns(t *testing.T) {
	f := &fakeFetcher{count: 3}
	m := newTestHome(t, testConfig(), Options{Fetcher: f})
	h := harness.New(t, m, 120, 40)

	fetchGrid(t, h, "3*3")

	assert.Equal(t, []string{"3*3"}, f.Tokens())
	require.Len(t, m.designs, 3)
	assert.Equal(t, "3*3 Design 2", m.designs[1].Title)
	assert.Equal(t, "https://img.example/3*3/b.png", m.designs[1].Image)
	assert.Empty(t, m.errBox.Message())
	assert.Equal(t, "3*3", m.input.Value())

	// a second fetch replaces rather than appends and clears the old error
	m.errBox.SetMessage("Failed to fetch images: old")
	m.input.SetValue("")
	fetchGrid(t, h, "fs")
	require.Len(t, m.designs, 3)
	assert.Equal(t, "fs Design 1", m.designs[0].Title)
	assert.Empty(t, m.errBox.Message())
}

func TestFreeTextGenerationPrependsAndNavigates(t *testing.T) {
	rec := &navigator.Recorder{}
	m := newTestHome(t, testConfig(), Options{Fetcher: &fakeFetcher{count: 2}, Navigator: rec})
	h := harness.New(t, m, 120, 40)

	fetchGrid(t, h, "rk")
	m.input.SetValue("")
	m.suggester.SetText("")

	h.Type("a beautiful peacock kolam")
	assert.Empty(t, m.suggester.Filtered())
	cmd := h.SendSpecialKey(tea.KeyEnter)
	require.NotNil(t, cmd)
	assert.Equal(t, stateGenerating, m.state)
	snapshot.New(t).AssertContains(h.View(), "Generating your kolam")

	h.Exec(cmd)

	assert.Equal(t, stateDefault, m.state)
	require.Len(t, m.designs, 3)
	d := m.designs[0]
	assert.Equal(t, "a beautiful peacock", d.Title)
	assert.Equal(t, "a beautiful peacock kolam", d.Prompt)
	assert.Equal(t, "https://picsum.photos/300/200?seed=1709294400000", d.Image)
	assert.True(t, d.IsNew)
	assert.Equal(t, "rk Design 1", m.designs[1].Title)
	assert.Empty(t, m.input.Value())
	assert.False(t, m.suggester.Visible())
	assert.Equal(t, []string{nextStep}, rec.Opened())
	snapshot.New(t).AssertNotContains(h.View(), "Generating your kolam")
}

func TestFreeTextWithoutNextStepStays(t *testing.T) {
	cfg := testConfig()
	cfg.NextStepURL = ""
	rec := &navigator.Recorder{}
	m := newTestHome(t, cfg, Options{Fetcher: &fakeFetcher{}, Navigator: rec})
	h := harness.New(t, m, 100, 30)

	h.Type("lotus")
	h.Exec(h.SendMsg(tea.KeyMsg{Type: tea.KeyCtrlG}))

	require.Len(t, m.designs, 1)
	assert.Equal(t, "lotus", m.designs[0].Title)
	assert.Empty(t, rec.Opened())
}

func TestNavigatorFailureIsShownNotFatal(t *testing.T) {
	rec := &navigator.Recorder{Err: errors.New("no browser")}
	m := newTestHome(t, testConfig(), Options{Fetcher: &fakeFetcher{}, Navigator: rec})
	h := harness.New(t, m, 120, 40)

	h.Type("peacock")
	h.Exec(h.SendSpecialKey(tea.KeyEnter))

	require.Len(t, m.designs, 1)
	assert.Equal(t, "failed to open next step: no browser", m.errBox.Message())
	assert.Equal(t, stateDefault, m.state)
}

func TestBlankPromptIsIgnored(t *testing.T) {
	f := &fakeFetcher{count: 1}
	m := newTestHome(t, testConfig(), Options{Fetcher: f})
	h := harness.New(t, m, 120, 40)

	h.SendSpecialKey(tea.KeyEnter)
	h.Type("   ")
	h.SendSpecialKey(tea.KeyEnter)
	h.SendMsg(tea.KeyMsg{Type: tea.KeyCtrlG})

	assert.Equal(t, stateDefault, m.state)
	assert.Empty(t, m.designs)
	assert.Empty(t, f.Tokens())
}

func TestSuggestionKeyboardNavigation(t *testing.T) {
	m := newTestHome(t, testConfig(), Options{Fetcher: &fakeFetcher{}})
	h := harness.New(t, m, 120, 40)

	h.Type("kolam")
	require.True(t, m.suggester.Navigable())
	n := len(m.suggester.Filtered())
	require.Equal(t, 8, n)

	h.SendSpecialKey(tea.KeyUp)
	assert.Equal(t, n-1, m.suggester.Active(), "up from the first entry wraps to the last")
	h.SendSpecialKey(tea.KeyDown)
	assert.Equal(t, 0, m.suggester.Active(), "down from the last entry wraps to the first")
	h.SendSpecialKey(tea.KeyDown)
	assert.Equal(t, 1, m.suggester.Active())
	snapshot.New(t).AssertContains(h.View(), ui.IconActive+" 5x5 dots kolam")

	h.SendSpecialKey(tea.KeyEsc)
	assert.False(t, m.suggester.Visible())
	assert.Equal(t, "kolam", m.input.Value(), "escape keeps the text")
}

func TestBusyDisablesInput(t *testing.T) {
	m := newTestHome(t, testConfig(), Options{Fetcher: &fakeFetcher{count: 1}})
	h := harness.New(t, m, 120, 40)

	h.Type("7*7")
	cmd := h.SendSpecialKey(tea.KeyEnter)
	require.Equal(t, stateLoading, m.state)

	h.Type("x")
	assert.Equal(t, "7*7", m.input.Value())
	assert.Nil(t, m.submit(), "a second request cannot start while one runs")

	// tabs still switch while loading
	h.SendSpecialKey(tea.KeyF2)
	assert.Equal(t, ui.TabGallery, m.tab)
	snapshot.New(t).AssertContains(h.View(), ui.LoadingGalleryText)

	h.Exec(cmd)
	assert.Equal(t, stateDefault, m.state)
}

func TestStaleResultIsDropped(t *testing.T) {
	m := newTestHome(t, testConfig(), Options{Fetcher: &fakeFetcher{count: 2}})
	h := harness.New(t, m, 120, 40)

	fetchGrid(t, h, "9*9")
	first := m.designs
	m.input.SetValue("")
	m.suggester.SetText("")

	h.Type("11*11")
	cmd := h.SendSpecialKey(tea.KeyEnter)
	require.Equal(t, stateLoading, m.state)

	stale := design.Result{
		Request: design.Request{Seq: 1, Kind: design.KindGrid, Prompt: "9*9"},
		Designs: design.Fallback("9*9", "https://picsum.photos", fixedNow),
	}
	h.SendMsg(requestDoneMsg{result: stale})
	assert.Equal(t, stateLoading, m.state, "a stale result does not end the running request")
	assert.Equal(t, first, m.designs)

	h.Exec(cmd)
	assert.Equal(t, "11*11 Design 1", m.designs[0].Title)
}

func TestSliderKeys(t *testing.T) {
	m := newTestHome(t, testConfig(), Options{Fetcher: &fakeFetcher{count: 3}})
	h := harness.New(t, m, 120, 40)
	fetchGrid(t, h, "6*6")

	h.SendAltKey('3')
	assert.Equal(t, 2, m.slider.Index())
	snapshot.New(t).AssertContains(h.View(), "3 / 3")

	h.SendMsg(tea.KeyMsg{Type: tea.KeyCtrlRight})
	assert.Equal(t, 0, m.slider.Index(), "next from the last slide wraps to the first")

	h.SendMsg(tea.KeyMsg{Type: tea.KeyCtrlLeft})
	assert.Equal(t, 2, m.slider.Index())

	h.SendAltKey('9')
	assert.Equal(t, 2, m.slider.Index(), "jumping past the last slide is ignored")
	assert.Equal(t, "6*6", m.input.Value(), "alt digits do not reach the input")
}

func TestSlideAutoplay(t *testing.T) {
	cfg := testConfig()
	cfg.SlideIntervalMs = 10
	m := newTestHome(t, cfg, Options{Fetcher: &fakeFetcher{count: 3}})
	h := harness.New(t, m, 120, 40)

	h.Type("5*5")
	timer := h.Exec(h.SendSpecialKey(tea.KeyEnter))
	require.NotNil(t, timer, "a list of several designs schedules autoplay")

	msg := timer()
	require.IsType(t, slideTickMsg{}, msg)
	next := h.SendMsg(msg)
	assert.Equal(t, 1, m.slider.Index())
	require.NotNil(t, next, "every advance schedules the following tick")

	// manual navigation restarts the interval and retires the pending tick
	h.SendMsg(tea.KeyMsg{Type: tea.KeyCtrlRight})
	assert.Equal(t, 2, m.slider.Index())
	assert.Nil(t, next(), "the cancelled timer delivers nothing")

	h.SendMsg(msg)
	assert.Equal(t, 2, m.slider.Index(), "a tick from an old generation is ignored")
}

func TestSingleDesignHasNoAutoplay(t *testing.T) {
	m := newTestHome(t, testConfig(), Options{Fetcher: &fakeFetcher{count: 1}})
	h := harness.New(t, m, 120, 40)

	h.Type("5*5")
	assert.Nil(t, h.Exec(h.SendSpecialKey(tea.KeyEnter)))
	assert.Nil(t, m.cancelTimer)
}

func TestTabs(t *testing.T) {
	m := newTestHome(t, testConfig(), Options{Fetcher: &fakeFetcher{}})
	h := harness.New(t, m, 120, 40)
	snap := snapshot.New(t)

	assert.Equal(t, ui.TabCreate, m.tab)
	h.SendSpecialKey(tea.KeyTab)
	assert.Equal(t, ui.TabGallery, m.tab)
	snap.AssertContains(h.View(), "You haven't created any designs yet.")

	h.SendSpecialKey(tea.KeyF3)
	h.SendSpecialKey(tea.KeyF3)
	assert.Equal(t, ui.TabCommunity, m.tab, "selecting the active tab keeps it")

	h.SendSpecialKey(tea.KeyTab)
	assert.Equal(t, ui.TabCreate, m.tab)
}

func TestTabSwitchingKeepsDesignsAndSlide(t *testing.T) {
	m := newTestHome(t, testConfig(), Options{Fetcher: &fakeFetcher{count: 3}})
	h := harness.New(t, m, 120, 40)
	fetchGrid(t, h, "6*6")

	h.SendMsg(tea.KeyMsg{Type: tea.KeyCtrlRight})
	require.Equal(t, 1, m.slider.Index())
	designs := append([]design.Design(nil), m.designs...)
	gen := m.slider.Generation()

	for i := 0; i < 7; i++ {
		h.SendSpecialKey(tea.KeyTab)
		h.SendSpecialKey(tea.KeyF2)
		h.SendSpecialKey(tea.KeyF1)
		h.SendSpecialKey(tea.KeyF3)
	}

	assert.Equal(t, ui.TabCommunity, m.tab)
	assert.Equal(t, designs, m.designs)
	assert.Equal(t, 1, m.slider.Index())
	assert.Equal(t, gen, m.slider.Generation(), "the autoplay interval is not restarted")
	assert.Equal(t, "6*6", m.input.Value())
}

func TestMouseTabClick(t *testing.T) {
	m := newTestHome(t, testConfig(), Options{Fetcher: &fakeFetcher{}})
	h := harness.New(t, m, 120, 40)

	view := h.View()
	lines := strings.Split(snapshot.StripANSI(view), "\n")
	y := snapshot.LineContaining(view, ui.TabGallery.Label())
	require.GreaterOrEqual(t, y, 0)
	x := len([]rune(lines[y][:strings.Index(lines[y], ui.TabGallery.Label())]))

	h.Click(x, y)
	assert.Equal(t, ui.TabGallery, m.tab)
}

func TestMouseSuggestions(t *testing.T) {
	f := &fakeFetcher{count: 2}
	m := newTestHome(t, testConfig(), Options{Fetcher: f})
	h := harness.New(t, m, 120, 40)

	inputX := m.page.left + m.page.promptLeft + 3
	inputY := m.page.promptTop + 1

	h.Click(inputX, inputY)
	require.True(t, m.suggester.Visible(), "clicking the input opens the list")
	snapshot.New(t).AssertContains(h.View(), "Rangoli kolams")

	// outside click closes it
	h.Click(inputX, 0)
	assert.False(t, m.suggester.Visible())

	h.Click(inputX, inputY)
	// input box is three lines, then the dropdown border
	cmd := h.Click(inputX, m.page.promptTop+3+1+1)
	require.NotNil(t, cmd)
	assert.Equal(t, "5*5", m.input.Value())
	assert.Equal(t, stateLoading, m.state)

	h.Exec(cmd)
	assert.Equal(t, []string{"5*5"}, f.Tokens())
	assert.False(t, m.suggester.Visible())
}

func TestMouseSliderArrowsAndDots(t *testing.T) {
	m := newTestHome(t, testConfig(), Options{Fetcher: &fakeFetcher{count: 3}})
	h := harness.New(t, m, 120, 40)
	fetchGrid(t, h, "3*3")

	view := h.View()
	lines := strings.Split(snapshot.StripANSI(view), "\n")
	y := snapshot.LineContaining(view, ui.IconNext)
	require.GreaterOrEqual(t, y, 0)
	x := len([]rune(lines[y][:strings.Index(lines[y], ui.IconNext)]))

	h.Click(x, y)
	assert.Equal(t, 1, m.slider.Index())

	view = h.View()
	lines = strings.Split(snapshot.StripANSI(view), "\n")
	y = snapshot.LineContaining(view, ui.IconDotEmpty+" "+ui.IconDot)
	require.GreaterOrEqual(t, y, 0)
	x = len([]rune(lines[y][:strings.Index(lines[y], ui.IconDotEmpty)]))

	h.Click(x, y)
	assert.Equal(t, 0, m.slider.Index(), "clicking the first dot jumps to it")
}

func TestCopyImageURL(t *testing.T) {
	clip := &fakeClipboard{}
	m := newTestHome(t, testConfig(), Options{Fetcher: &fakeFetcher{count: 2}, Clipboard: clip.write})
	h := harness.New(t, m, 120, 40)

	h.SendMsg(tea.KeyMsg{Type: tea.KeyCtrlY})
	assert.Empty(t, clip.copied, "nothing to copy without designs")

	fetchGrid(t, h, "5*5")
	h.SendMsg(tea.KeyMsg{Type: tea.KeyCtrlRight})
	h.SendMsg(tea.KeyMsg{Type: tea.KeyCtrlY})
	assert.Equal(t, []string{"https://img.example/5*5/b.png"}, clip.copied)

	clip.err = errors.New("no clipboard")
	h.SendMsg(tea.KeyMsg{Type: tea.KeyCtrlY})
	assert.Equal(t, "failed to copy image url: no clipboard", m.errBox.Message())
}

func TestTransientErrorHides(t *testing.T) {
	m := newTestHome(t, testConfig(), Options{Fetcher: &fakeFetcher{}})
	h := harness.New(t, m, 120, 40)

	m.handleError(errors.New("first"))
	id := m.errBox.SetMessage("second")
	h.SendMsg(hideErrMsg{id: id - 1})
	assert.Equal(t, "second", m.errBox.Message(), "an old hide leaves a newer message")
	h.SendMsg(hideErrMsg{id: id})
	assert.Empty(t, m.errBox.Message())
}

func TestScrolling(t *testing.T) {
	m := newTestHome(t, testConfig(), Options{Fetcher: &fakeFetcher{}})
	h := harness.New(t, m, 80, 24)

	h.SendSpecialKey(tea.KeyPgDown)
	down := m.viewport.YOffset
	assert.Greater(t, down, 0)

	h.Wheel(false)
	assert.Equal(t, max(down-wheelLines, 0), m.viewport.YOffset)

	h.SendSpecialKey(tea.KeyPgUp)
	assert.Equal(t, 0, m.viewport.YOffset)
	snapshot.New(t).AssertContains(h.View(), "KOLAM")
}

func TestViewFitsTerminal(t *testing.T) {
	harness.RunWithCommonSizes(t, func(t *testing.T, size harness.TerminalSize) {
		m := newTestHome(t, testConfig(), Options{Fetcher: &fakeFetcher{count: 4}})
		h := harness.New(t, m, size.Width, size.Height)
		fetchGrid(t, h, "5*5")

		view := h.View()
		assert.LessOrEqual(t, snapshot.Lines(view), size.Height)
		snapshot.New(t).AssertContains(view, ui.BrandName)
	})
}

func TestQuitCancelsContext(t *testing.T) {
	m := newTestHome(t, testConfig(), Options{Fetcher: &fakeFetcher{}})
	h := harness.New(t, m, 120, 40)

	cmd := h.SendSpecialKey(tea.KeyCtrlC)
	require.NotNil(t, cmd)
	assert.Error(t, m.ctx.Err())
}

func TestInspectSnapshot(t *testing.T) {
	m := newTestHome(t, testConfig(), Options{Fetcher: &fakeFetcher{count: 2}})
	h := harness.New(t, m, 120, 40)
	fetchGrid(t, h, "5*5")
	h.SendSpecialKey(tea.KeyF2)

	s := m.inspectSnapshot()
	assert.Equal(t, "default", s.AppState.State)
	assert.Equal(t, "gallery", s.AppState.Tab)
	assert.Equal(t, 2, s.AppState.DesignCount)
	require.NotNil(t, s.Components.Find("Slider"))
	assert.Equal(t, "Generated Designs for 5*5", s.Components.Find("Slider").Content)
	assert.True(t, s.Components.Find("Header").Visible)
}

func TestDebugModeProfilesSectionsAndRequests(t *testing.T) {
	enabled := log.DebugEnabled
	log.DebugEnabled = true
	t.Cleanup(func() { log.DebugEnabled = enabled })

	gridCount := func() int64 {
		for _, r := range log.GetProfiler().Stats().Requests {
			if r.Kind == design.KindGrid.String() {
				return r.Count
			}
		}
		return 0
	}
	before := gridCount()

	m := newTestHome(t, testConfig(), Options{Fetcher: &fakeFetcher{count: 2}})
	h := harness.New(t, m, 120, 40)
	fetchGrid(t, h, "5*5")
	h.View()

	assert.Equal(t, before+1, gridCount())

	sections := map[string]log.SectionStats{}
	for _, s := range log.GetProfiler().Stats().Sections {
		sections[s.Name] = s
	}
	for _, name := range []string{"Header", "Hero", "Prompt", "Slider", "Tabs", "Features", "Footer"} {
		require.Contains(t, sections, name)
		assert.Positive(t, sections[name].Renders, name)
	}
	for _, sec := range m.page.sections {
		if s, ok := sections[sec.name]; ok {
			assert.Equal(t, sec.height, s.LastLines, sec.name)
		}
	}
	assert.Positive(t, log.GetProfiler().Stats().Frames)
}
