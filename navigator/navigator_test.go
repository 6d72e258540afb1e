package navigator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	var r Recorder

	require.NoError(t, r.Open("https://example.com/next"))
	assert.Error(t, r.Open("javascript:alert(1)"))
	assert.Equal(t, []string{"https://example.com/next"}, r.Opened())

	r.Err = errors.New("no display")
	assert.EqualError(t, r.Open("https://example.com/again"), "no display")
	assert.Len(t, r.Opened(), 1)
}

func TestNoopChecksScheme(t *testing.T) {
	var n Noop
	assert.NoError(t, n.Open("file:///tmp/kolam.html"))
	assert.Error(t, n.Open("mailto:someone@example.com"))
}

func TestNavigatorImplementations(t *testing.T) {
	var _ Navigator = Browser{}
	var _ Navigator = Noop{}
	var _ Navigator = &Recorder{}
}
