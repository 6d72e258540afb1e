// Package log provides logging utilities including a debug mode that profiles
// page sections and traces image requests.
// Enable debug mode by setting KOLAM_DEBUG=1 environment variable.
package log

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// SlowFrame is the frame time above which a frame is reported in the debug log.
const SlowFrame = 50 * time.Millisecond

// Debug mode configuration
var (
	DebugEnabled bool
	DebugLog     *log.Logger
	debugLogFile *os.File
)

var debugLogFileName = filepath.Join(os.TempDir(), "kolam-debug.log")

// InitDebug turns debug mode on when KOLAM_DEBUG=1. Initialize calls it.
func InitDebug() {
	DebugEnabled = false
	DebugLog = log.New(io.Discard, "", 0)
	if os.Getenv("KOLAM_DEBUG") != "1" {
		return
	}

	f, err := os.OpenFile(debugLogFileName, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0666)
	if err != nil {
		if ErrorLog != nil {
			ErrorLog.Printf("could not open debug log file: %s", err)
		}
		return
	}

	DebugEnabled = true
	DebugLog = log.New(f, "DEBUG:", log.Ldate|log.Ltime|log.Lmicroseconds)
	debugLogFile = f
	DebugLog.Printf("debug log: %s", debugLogFileName)
}

// CloseDebug closes the debug log file.
func CloseDebug() {
	if debugLogFile != nil {
		_ = debugLogFile.Close()
		debugLogFile = nil
		fmt.Println("wrote debug logs to " + debugLogFileName)
	}
}

func debugf(format string, v ...interface{}) {
	if DebugEnabled && DebugLog != nil {
		DebugLog.Printf(format, v...)
	}
}

// Debug logs a debug message if debug mode is enabled.
func Debug(format string, v ...interface{}) {
	debugf(format, v...)
}

// InputTrace logs a key or mouse event as the app routed it.
func InputTrace(format string, v ...interface{}) {
	debugf("[INPUT] "+format, v...)
}

// SectionStats is the render cost of one page section (Header, Prompt,
// Slider, Tabs, ...).
type SectionStats struct {
	Name      string
	Renders   int64
	Total     time.Duration
	Max       time.Duration
	LastLines int
}

// Avg is the mean render time of the section.
func (s SectionStats) Avg() time.Duration {
	if s.Renders == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Renders)
}

// RequestStats aggregates finished requests of one kind (grid or prompt).
type RequestStats struct {
	Kind     string
	Count    int64
	Failures int64
	Total    time.Duration
	Max      time.Duration
}

// Stats is a point in time copy of the profiler.
type Stats struct {
	Frames     int64
	SlowFrames int64
	FrameTotal time.Duration
	FrameMax   time.Duration
	Sections   []SectionStats
	Requests   []RequestStats
}

// String renders the stats for the debug log. Sections are sorted by total
// render time, the most expensive first.
func (s Stats) String() string {
	var sb strings.Builder
	sb.WriteString("\n=== kolam profile ===\n")
	fmt.Fprintf(&sb, "frames: %d (slow: %d)", s.Frames, s.SlowFrames)
	if s.Frames > 0 {
		fmt.Fprintf(&sb, " avg=%v max=%v", s.FrameTotal/time.Duration(s.Frames), s.FrameMax)
	}
	sb.WriteString("\n")

	if len(s.Sections) > 0 {
		sb.WriteString("--- sections ---\n")
		for _, sec := range s.Sections {
			fmt.Fprintf(&sb, "  %-8s renders=%d avg=%v max=%v lines=%d\n",
				sec.Name, sec.Renders, sec.Avg(), sec.Max, sec.LastLines)
		}
	}
	if len(s.Requests) > 0 {
		sb.WriteString("--- requests ---\n")
		for _, r := range s.Requests {
			avg := time.Duration(0)
			if r.Count > 0 {
				avg = r.Total / time.Duration(r.Count)
			}
			fmt.Fprintf(&sb, "  %-8s count=%d failed=%d avg=%v max=%v\n",
				r.Kind, r.Count, r.Failures, avg, r.Max)
		}
	}
	return sb.String()
}

// Profiler collects section render times, frame times and request latency.
// Requests finish on command goroutines, so every method locks.
type Profiler struct {
	mu         sync.Mutex
	sections   map[string]*SectionStats
	requests   map[string]*RequestStats
	frames     int64
	slowFrames int64
	frameTotal time.Duration
	frameMax   time.Duration
}

var profiler = newProfiler()

func newProfiler() *Profiler {
	return &Profiler{
		sections: make(map[string]*SectionStats),
		requests: make(map[string]*RequestStats),
	}
}

// GetProfiler returns the global profiler.
func GetProfiler() *Profiler {
	return profiler
}

// Section starts timing the render of a page section. The returned func
// takes the rendered height in lines.
func (p *Profiler) Section(name string) func(lines int) {
	if !DebugEnabled {
		return func(int) {}
	}
	start := time.Now()
	return func(lines int) {
		p.recordSection(name, time.Since(start), lines)
	}
}

func (p *Profiler) recordSection(name string, elapsed time.Duration, lines int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	s, ok := p.sections[name]
	if !ok {
		s = &SectionStats{Name: name}
		p.sections[name] = s
	}
	s.Renders++
	s.Total += elapsed
	s.Max = max(s.Max, elapsed)
	s.LastLines = lines
}

// RecordFrame records one full View at the given terminal size and reports
// it when slower than SlowFrame.
func (p *Profiler) RecordFrame(elapsed time.Duration, width, height int) {
	if !DebugEnabled {
		return
	}

	p.mu.Lock()
	p.frames++
	p.frameTotal += elapsed
	p.frameMax = max(p.frameMax, elapsed)
	slow := elapsed > SlowFrame
	if slow {
		p.slowFrames++
	}
	p.mu.Unlock()

	if slow {
		debugf("[PERF] frame took %v at %dx%d", elapsed, width, height)
	}
}

func (p *Profiler) recordRequest(kind string, elapsed time.Duration, failed bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	r, ok := p.requests[kind]
	if !ok {
		r = &RequestStats{Kind: kind}
		p.requests[kind] = r
	}
	r.Count++
	if failed {
		r.Failures++
	}
	r.Total += elapsed
	r.Max = max(r.Max, elapsed)
}

// Stats copies the collected data.
func (p *Profiler) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()

	st := Stats{
		Frames:     p.frames,
		SlowFrames: p.slowFrames,
		FrameTotal: p.frameTotal,
		FrameMax:   p.frameMax,
	}
	for _, s := range p.sections {
		st.Sections = append(st.Sections, *s)
	}
	sort.Slice(st.Sections, func(i, j int) bool {
		if st.Sections[i].Total != st.Sections[j].Total {
			return st.Sections[i].Total > st.Sections[j].Total
		}
		return st.Sections[i].Name < st.Sections[j].Name
	})
	for _, r := range p.requests {
		st.Requests = append(st.Requests, *r)
	}
	sort.Slice(st.Requests, func(i, j int) bool {
		return st.Requests[i].Kind < st.Requests[j].Kind
	})
	return st
}

// LogStats writes the collected data to the debug log.
func (p *Profiler) LogStats() {
	if DebugEnabled {
		debugf("%s", p.Stats())
	}
}

func (p *Profiler) reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.sections = make(map[string]*SectionStats)
	p.requests = make(map[string]*RequestStats)
	p.frames, p.slowFrames = 0, 0
	p.frameTotal, p.frameMax = 0, 0
}

// RequestTrace follows one grid fetch or prompt generation from dispatch to
// result. A nil trace is valid and does nothing.
type RequestTrace struct {
	Seq    uint64
	Kind   string
	Prompt string
	start  time.Time
}

// TraceRequest starts a trace, or returns nil when debug mode is off.
func TraceRequest(seq uint64, kind, prompt string) *RequestTrace {
	if !DebugEnabled {
		return nil
	}
	debugf("[REQUEST %d] %s %q started", seq, kind, prompt)
	return &RequestTrace{Seq: seq, Kind: kind, Prompt: prompt, start: time.Now()}
}

// Done records the latency and outcome of the request and returns the
// latency.
func (t *RequestTrace) Done(designs int, err error) time.Duration {
	if t == nil {
		return 0
	}
	elapsed := time.Since(t.start)
	profiler.recordRequest(t.Kind, elapsed, err != nil)
	if err != nil {
		debugf("[REQUEST %d] %s %q failed after %v with %d fallback designs: %v",
			t.Seq, t.Kind, t.Prompt, elapsed, designs, err)
	} else {
		debugf("[REQUEST %d] %s %q returned %d designs in %v",
			t.Seq, t.Kind, t.Prompt, designs, elapsed)
	}
	return elapsed
}
