package design

import (
	"encoding/json"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func TestPromptTitle(t *testing.T) {
	tests := []struct {
		prompt string
		want   string
	}{
		{"a beautiful peacock kolam", "a beautiful peacock"},
		{"lotus", "lotus"},
		{"  two   words ", "two words"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PromptTitle(tt.prompt), "prompt %q", tt.prompt)
	}
}

func TestFallback(t *testing.T) {
	designs := Fallback("5*5", "https://picsum.photos/", fixedNow)

	require.Len(t, designs, FallbackCount)
	ids := map[string]bool{}
	for i, d := range designs {
		assert.Equal(t, GridTitle("5*5", i+1), d.Title)
		assert.Equal(t, "5*5", d.Prompt)
		assert.True(t, d.IsNew)
		assert.False(t, ids[d.ID], "ids must be unique")
		ids[d.ID] = true

		u, err := url.Parse(d.Image)
		require.NoError(t, err)
		assert.Equal(t, "picsum.photos", u.Host)
		assert.Equal(t, "/300/200", u.Path)
		assert.Equal(t, "5*5-"+string(rune('1'+i)), u.Query().Get("seed"))
	}
	assert.Equal(t, "5*5 Design 1", designs[0].Title)
}

func TestPlaceholderURL(t *testing.T) {
	tests := []struct {
		name string
		seed string
		want string
	}{
		{"grid seed keeps the star", "5*5-1", "https://picsum.photos/300/200?seed=5*5-1"},
		{"timestamp", "1709294400000", "https://picsum.photos/300/200?seed=1709294400000"},
		{"query characters are escaped", "a&b c", "https://picsum.photos/300/200?seed=a%26b+c"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PlaceholderURL("https://picsum.photos/", tt.seed)
			assert.Equal(t, tt.want, got)

			u, err := url.Parse(got)
			require.NoError(t, err)
			assert.Equal(t, tt.seed, u.Query().Get("seed"))
		})
	}
}

func TestFromPromptSeedsImageWithCreationTime(t *testing.T) {
	d := FromPrompt("a beautiful peacock kolam", "https://picsum.photos", fixedNow)

	assert.Equal(t, "a beautiful peacock", d.Title)
	assert.Equal(t, "a beautiful peacock kolam", d.Prompt)
	assert.True(t, d.IsNew)
	assert.NotEmpty(t, d.ID)

	u, err := url.Parse(d.Image)
	require.NoError(t, err)
	assert.Equal(t, "1709294400000", u.Query().Get("seed"))
}

func TestFromDescriptorsKeepsServerIDs(t *testing.T) {
	var descs []ImageDescriptor
	require.NoError(t, json.Unmarshal([]byte(`["http://a/1.png", {"url": "http://a/2.png", "id": 7}]`), &descs))

	designs := FromDescriptors("7*7", descs, fixedNow)

	require.Len(t, designs, 2)
	assert.Equal(t, "7*7 Design 1", designs[0].Title)
	assert.Equal(t, "http://a/1.png", designs[0].Image)
	assert.NotEmpty(t, designs[0].ID)
	assert.Equal(t, "7", designs[1].ID)
	assert.Equal(t, "http://a/2.png", designs[1].Image)
}
