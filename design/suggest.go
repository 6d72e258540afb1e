package design

import "strings"

// Filter returns the suggestions whose value or label contains prompt,
// case-insensitively, in their original order. An empty prompt matches all.
func Filter(all []Suggestion, prompt string) []Suggestion {
	needle := strings.ToLower(prompt)
	out := make([]Suggestion, 0, len(all))
	for _, s := range all {
		if strings.Contains(strings.ToLower(s.Value), needle) || strings.Contains(strings.ToLower(s.Label), needle) {
			out = append(out, s)
		}
	}
	return out
}

// Suggester tracks the prompt text, the filtered suggestion list, whether the
// list is shown, and which entry is highlighted.
//
// The highlighted index is reset to zero whenever the prompt text or the
// visibility changes. While the list is visible and non-empty, Up and Down
// move the highlight circularly.
type Suggester struct {
	all      []Suggestion
	prompt   string
	filtered []Suggestion
	visible  bool
	active   int
}

// NewSuggester returns a hidden suggester over a copy of all.
func NewSuggester(all []Suggestion) *Suggester {
	s := &Suggester{all: append([]Suggestion(nil), all...)}
	s.filtered = Filter(s.all, "")
	return s
}

// Prompt returns the current prompt text.
func (s *Suggester) Prompt() string {
	return s.prompt
}

// SetPrompt records user edited text and shows the list.
func (s *Suggester) SetPrompt(text string) {
	s.setText(text)
	s.setVisible(true)
}

// SetText replaces the prompt text without touching visibility.
func (s *Suggester) SetText(text string) {
	s.setText(text)
}

func (s *Suggester) setText(text string) {
	if text == s.prompt {
		return
	}
	s.prompt = text
	s.filtered = Filter(s.all, text)
	s.active = 0
}

func (s *Suggester) setVisible(v bool) {
	if v == s.visible {
		return
	}
	s.visible = v
	s.active = 0
}

// Show makes the list visible.
func (s *Suggester) Show() { s.setVisible(true) }

// Hide dismisses the list.
func (s *Suggester) Hide() { s.setVisible(false) }

// Visible reports whether the list is shown.
func (s *Suggester) Visible() bool { return s.visible }

// Filtered returns the suggestions matching the current prompt.
func (s *Suggester) Filtered() []Suggestion { return s.filtered }

// Active returns the highlighted index into Filtered.
func (s *Suggester) Active() int { return s.active }

// Navigable reports whether the keyboard can move through the list.
func (s *Suggester) Navigable() bool {
	return s.visible && len(s.filtered) > 0
}

// Down moves the highlight forward, wrapping to the first entry.
func (s *Suggester) Down() {
	if !s.Navigable() {
		return
	}
	s.active = (s.active + 1) % len(s.filtered)
}

// Up moves the highlight back, wrapping to the last entry.
func (s *Suggester) Up() {
	if !s.Navigable() {
		return
	}
	s.active = (s.active - 1 + len(s.filtered)) % len(s.filtered)
}

// Current returns the highlighted suggestion.
func (s *Suggester) Current() (Suggestion, bool) {
	if !s.Navigable() || s.active >= len(s.filtered) {
		return Suggestion{}, false
	}
	return s.filtered[s.active], true
}

// Commit puts the i-th filtered suggestion into the prompt and returns it.
func (s *Suggester) Commit(i int) (Suggestion, bool) {
	if i < 0 || i >= len(s.filtered) {
		return Suggestion{}, false
	}
	chosen := s.filtered[i]
	s.setText(chosen.Value)
	return chosen, true
}
