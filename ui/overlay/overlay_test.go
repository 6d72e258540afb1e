package overlay

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/stretchr/testify/assert"
	"kolam/testing/snapshot"
)

func background(w, h int) string {
	lines := make([]string, h)
	for i := range lines {
		lines[i] = strings.Repeat(".", w)
	}
	return strings.Join(lines, "\n")
}

func TestPlaceOverlayCentered(t *testing.T) {
	out := PlaceOverlay(0, 0, "ab\ncd", background(6, 4), false, true)

	assert.Equal(t, "......\n..ab..\n..cd..\n......", out)
}

func TestPlaceOverlayAtPosition(t *testing.T) {
	out := PlaceOverlay(1, 2, "xy", background(5, 3), false, false)

	assert.Equal(t, ".....\n.....\n.xy..", out)
}

func TestPlaceOverlayClampsIntoBackground(t *testing.T) {
	out := PlaceOverlay(10, 10, "xy", background(4, 2), false, false)

	assert.Equal(t, "....\n..xy", out)
}

func TestPlaceOverlayLargerThanBackground(t *testing.T) {
	out := PlaceOverlay(0, 0, "big\nbox", "x", false, true)

	assert.Equal(t, "big\nbox", out)
}

func TestPlaceOverlayKeepsWidthWithHyperlinks(t *testing.T) {
	bg := "\x1b]8;;https://example.com\x1b\\link\x1b]8;;\x1b\\ and more text"
	out := PlaceOverlay(0, 0, "XX", bg, false, false)

	assert.Equal(t, "XXnk and more text", snapshot.StripANSI(out))
}

func TestPlaceOverlayShadowWidensBox(t *testing.T) {
	out := PlaceOverlay(0, 0, "ab\ncd", background(8, 5), true, true)
	lines := strings.Split(snapshot.StripANSI(out), "\n")

	assert.Len(t, lines, 5)
	for _, l := range lines {
		assert.Equal(t, 8, len([]rune(l)))
	}
	assert.Contains(t, out, "░")
}

func TestWhitespaceRender(t *testing.T) {
	ws := whitespace{chars: "-="}
	assert.Equal(t, "-=-=-", ws.render(5))
	assert.Equal(t, "", ws.render(0))
}

func TestLoadingOverlayRender(t *testing.T) {
	s := spinner.New()
	l := NewLoadingOverlay("Generating Design", &s)
	l.SetStatus("Creating \"a beautiful peacock\"")
	l.SetHint("ctrl+c to quit")
	l.SetWidth(50)

	out := snapshot.StripANSI(l.Render())

	assert.Contains(t, out, "Generating Design")
	assert.Contains(t, out, "a beautiful peacock")
	assert.Contains(t, out, "ctrl+c to quit")
	assert.Equal(t, 50, snapshot.Width(out))
}
