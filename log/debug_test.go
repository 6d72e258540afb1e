package log

import (
	"bytes"
	"errors"
	"log"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// enableDebug turns debug mode on with the debug log going to a buffer.
func enableDebug(t *testing.T) *bytes.Buffer {
	t.Helper()
	oldEnabled, oldLog := DebugEnabled, DebugLog
	t.Cleanup(func() {
		DebugEnabled, DebugLog = oldEnabled, oldLog
		profiler.reset()
	})

	var buf bytes.Buffer
	DebugEnabled = true
	DebugLog = log.New(&buf, "", 0)
	profiler.reset()
	return &buf
}

func TestInitDebugFollowsEnv(t *testing.T) {
	oldName := debugLogFileName
	debugLogFileName = t.TempDir() + "/kolam-debug.log"
	t.Cleanup(func() {
		debugLogFileName = oldName
		DebugEnabled = false
	})

	os.Unsetenv("KOLAM_DEBUG")
	InitDebug()
	assert.False(t, DebugEnabled)
	require.NotNil(t, DebugLog, "disabled mode still gets a discard logger")

	t.Setenv("KOLAM_DEBUG", "1")
	InitDebug()
	assert.True(t, DebugEnabled)
	Debug("autoplay advanced to slide %d", 2)
	CloseDebug()

	data, err := os.ReadFile(debugLogFileName)
	require.NoError(t, err)
	assert.Contains(t, string(data), "autoplay advanced to slide 2")

	os.Unsetenv("KOLAM_DEBUG")
	InitDebug()
	assert.False(t, DebugEnabled, "re-initializing without the env var turns debug off")
}

func TestDisabledDebugRecordsNothing(t *testing.T) {
	enableDebug(t)
	DebugEnabled = false

	GetProfiler().Section("Prompt")(3)
	GetProfiler().RecordFrame(time.Second, 80, 24)
	assert.Nil(t, TraceRequest(1, "grid", "5*5"))

	st := GetProfiler().Stats()
	assert.Empty(t, st.Sections)
	assert.Zero(t, st.Frames)
}

func TestSectionProfile(t *testing.T) {
	enableDebug(t)
	p := GetProfiler()

	for i := 0; i < 3; i++ {
		p.Section("Prompt")(5)
	}
	done := p.Section("Slider")
	time.Sleep(time.Millisecond)
	done(12)

	st := p.Stats()
	require.Len(t, st.Sections, 2)
	assert.Equal(t, "Slider", st.Sections[0].Name, "most expensive section first")
	assert.Equal(t, 12, st.Sections[0].LastLines)
	assert.GreaterOrEqual(t, st.Sections[0].Max, time.Millisecond)

	prompt := st.Sections[1]
	assert.Equal(t, "Prompt", prompt.Name)
	assert.Equal(t, int64(3), prompt.Renders)
	assert.Equal(t, 5, prompt.LastLines)
	assert.Equal(t, prompt.Total/3, prompt.Avg())
	assert.Zero(t, SectionStats{}.Avg())
}

func TestRecordFrameReportsSlowFrames(t *testing.T) {
	buf := enableDebug(t)
	p := GetProfiler()

	p.RecordFrame(10*time.Millisecond, 80, 24)
	p.RecordFrame(SlowFrame+time.Millisecond, 120, 40)

	st := p.Stats()
	assert.Equal(t, int64(2), st.Frames)
	assert.Equal(t, int64(1), st.SlowFrames)
	assert.Equal(t, SlowFrame+time.Millisecond, st.FrameMax)
	assert.Contains(t, buf.String(), "at 120x40")
	assert.NotContains(t, buf.String(), "at 80x24")
}

func TestRequestTrace(t *testing.T) {
	buf := enableDebug(t)

	grid := TraceRequest(3, "grid", "5*5")
	require.NotNil(t, grid)
	assert.Equal(t, uint64(3), grid.Seq)
	assert.GreaterOrEqual(t, grid.Done(4, errors.New("HTTP error! status: 500")), time.Duration(0))

	prompt := TraceRequest(4, "prompt", "a peacock")
	prompt.Done(1, nil)
	TraceRequest(5, "grid", "rk").Done(6, nil)

	st := GetProfiler().Stats()
	require.Len(t, st.Requests, 2)
	assert.Equal(t, RequestStats{Kind: "grid", Count: 2, Failures: 1, Total: st.Requests[0].Total, Max: st.Requests[0].Max}, st.Requests[0])
	assert.Equal(t, "prompt", st.Requests[1].Kind)
	assert.Equal(t, int64(1), st.Requests[1].Count)

	out := buf.String()
	assert.Contains(t, out, `[REQUEST 3] grid "5*5" started`)
	assert.Contains(t, out, "with 4 fallback designs: HTTP error! status: 500")
	assert.Contains(t, out, `[REQUEST 4] prompt "a peacock" returned 1 designs`)
}

func TestNilRequestTrace(t *testing.T) {
	var trace *RequestTrace
	assert.Zero(t, trace.Done(4, nil))
}

func TestStatsString(t *testing.T) {
	buf := enableDebug(t)
	p := GetProfiler()

	p.Section("Tabs")(9)
	p.RecordFrame(2*time.Millisecond, 80, 24)
	TraceRequest(1, "grid", "fs").Done(8, nil)

	out := p.Stats().String()
	assert.Contains(t, out, "frames: 1 (slow: 0)")
	assert.Contains(t, out, "Tabs")
	assert.Contains(t, out, "lines=9")
	assert.Contains(t, out, "count=1 failed=0")

	p.LogStats()
	assert.Contains(t, buf.String(), "=== kolam profile ===")
}

func TestInputTrace(t *testing.T) {
	buf := enableDebug(t)

	InputTrace("key %q state=%s", "ctrl+g", "default")
	assert.Contains(t, buf.String(), `[INPUT] key "ctrl+g" state=default`)

	DebugLog = nil
	InputTrace("dropped")
}
