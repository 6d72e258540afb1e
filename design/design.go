// Package design holds the kolam design model and the controllers that drive
// the landing screen: suggestion filtering, the slide rotation, and the
// fetch/generate orchestration against the image service.
package design

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FallbackCount is how many placeholder designs replace a failed grid fetch.
const FallbackCount = 4

// promptTitleWords is how many words of a free-text prompt become its title.
const promptTitleWords = 3

// Design is one generated or fetched kolam image.
type Design struct {
	// ID is a stable key: the server id when the image service sends one,
	// otherwise a random UUID.
	ID string `json:"id"`
	// Title is the display label.
	Title string `json:"title"`
	// Prompt is the grid token or free-text prompt that produced the design.
	Prompt string `json:"prompt"`
	// Image is the image URL. It is never re-validated after creation.
	Image string `json:"image"`
	// IsNew marks designs created during this session.
	IsNew bool `json:"is_new"`
	// CreatedAt is when the design entered the list.
	CreatedAt time.Time `json:"created_at"`
}

// Suggestion is one predefined grid token offered in the prompt dropdown.
type Suggestion struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// GridTitle is the title of the n-th (1-based) design of a grid token.
func GridTitle(token string, n int) string {
	return fmt.Sprintf("%s Design %d", token, n)
}

// PromptTitle returns the first three whitespace-separated words of prompt.
func PromptTitle(prompt string) string {
	words := strings.Fields(prompt)
	if len(words) > promptTitleWords {
		words = words[:promptTitleWords]
	}
	return strings.Join(words, " ")
}

// seedEscaper leaves '*' unescaped so grid seeds read 5*5-1.
var seedEscaper = strings.NewReplacer("%2A", "*")

// PlaceholderURL returns a deterministic 300x200 placeholder image for seed.
func PlaceholderURL(base, seed string) string {
	return fmt.Sprintf("%s/300/200?seed=%s", strings.TrimRight(base, "/"), seedEscaper.Replace(url.QueryEscape(seed)))
}

// FromDescriptors maps image service descriptors for token into designs.
func FromDescriptors(token string, descs []ImageDescriptor, now time.Time) []Design {
	designs := make([]Design, 0, len(descs))
	for i, d := range descs {
		id := d.ID
		if id == "" {
			id = uuid.NewString()
		}
		designs = append(designs, Design{
			ID:        id,
			Title:     GridTitle(token, i+1),
			Prompt:    token,
			Image:     d.URL,
			IsNew:     true,
			CreatedAt: now,
		})
	}
	return designs
}

// Fallback returns the FallbackCount placeholder designs shown when the grid
// fetch for token fails. Images are seeded by "<token>-<n>".
func Fallback(token, placeholderBase string, now time.Time) []Design {
	designs := make([]Design, 0, FallbackCount)
	for n := 1; n <= FallbackCount; n++ {
		designs = append(designs, Design{
			ID:        uuid.NewString(),
			Title:     GridTitle(token, n),
			Prompt:    token,
			Image:     PlaceholderURL(placeholderBase, fmt.Sprintf("%s-%d", token, n)),
			IsNew:     true,
			CreatedAt: now,
		})
	}
	return designs
}

// FromPrompt builds the single design produced by free-text generation. The
// placeholder image is seeded by the creation time in Unix milliseconds.
func FromPrompt(prompt, placeholderBase string, now time.Time) Design {
	return Design{
		ID:        uuid.NewString(),
		Title:     PromptTitle(prompt),
		Prompt:    prompt,
		Image:     PlaceholderURL(placeholderBase, strconv.FormatInt(now.UnixMilli(), 10)),
		IsNew:     true,
		CreatedAt: now,
	}
}
