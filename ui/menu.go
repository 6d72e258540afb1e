package ui

import (
	"kolam/keys"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var keyStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{
	Light: "#655F5F",
	Dark:  "#7F7A7A",
})

var descStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{
	Light: "#7A7474",
	Dark:  "#9C9494",
})

var sepStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{
	Light: "#DDDADA",
	Dark:  "#3C3C3C",
})

var actionGroupStyle = lipgloss.NewStyle().Foreground(Primary)

var separator = " • "
var verticalSeparator = " │ "

// MenuState represents different states the menu can be in
type MenuState int

const (
	// StateDefault is the idle page with the suggestion list hidden.
	StateDefault MenuState = iota
	// StateSuggesting is while the suggestion list is open.
	StateSuggesting
	// StateBusy is while a fetch or generation runs.
	StateBusy
)

// Menu is the one line key help at the bottom of the screen. Options are
// arranged in groups; the first group is highlighted as the current actions.
type Menu struct {
	groups     [][]keys.KeyName
	width      int
	state      MenuState
	hasDesigns bool

	// keyDown is the key which is pressed. The default is -1.
	keyDown keys.KeyName
}

func NewMenu() *Menu {
	m := &Menu{keyDown: -1}
	m.updateOptions()
	return m
}

func (m *Menu) Keydown(name keys.KeyName) {
	m.keyDown = name
}

func (m *Menu) ClearKeydown() {
	m.keyDown = -1
}

// SetState updates the menu state and options accordingly
func (m *Menu) SetState(state MenuState) {
	m.state = state
	m.updateOptions()
}

// SetHasDesigns toggles the slide and clipboard options.
func (m *Menu) SetHasDesigns(has bool) {
	m.hasDesigns = has
	m.updateOptions()
}

func (m *Menu) updateOptions() {
	var action []keys.KeyName
	switch m.state {
	case StateSuggesting:
		action = []keys.KeyName{keys.KeyUp, keys.KeyDown, keys.KeyEnter, keys.KeyEsc}
	case StateBusy:
		action = nil
	default:
		action = []keys.KeyName{keys.KeyEnter, keys.KeyGenerate}
	}

	var slides []keys.KeyName
	if m.hasDesigns {
		slides = []keys.KeyName{keys.KeyPrevSlide, keys.KeyNextSlide, keys.KeyJumpSlide, keys.KeyCopyImage}
	}

	system := []keys.KeyName{keys.KeyTab, keys.KeyPageDown, keys.KeyQuit}

	m.groups = m.groups[:0]
	for _, g := range [][]keys.KeyName{action, slides, system} {
		if len(g) > 0 {
			m.groups = append(m.groups, g)
		}
	}
}

func (m *Menu) SetSize(width int) {
	m.width = width
}

func (m *Menu) String() string {
	var s strings.Builder

	for gi, group := range m.groups {
		inActionGroup := gi == 0 && m.state != StateBusy
		for i, k := range group {
			binding := keys.GlobalkeyBindings[k]

			var (
				localActionStyle = actionGroupStyle
				localKeyStyle    = keyStyle
				localDescStyle   = descStyle
			)
			if m.keyDown == k {
				localActionStyle = localActionStyle.Underline(true)
				localKeyStyle = localKeyStyle.Underline(true)
				localDescStyle = localDescStyle.Underline(true)
			}

			if inActionGroup {
				s.WriteString(localActionStyle.Render(binding.Help().Key))
				s.WriteString(" ")
				s.WriteString(localActionStyle.Render(binding.Help().Desc))
			} else {
				s.WriteString(localKeyStyle.Render(binding.Help().Key))
				s.WriteString(" ")
				s.WriteString(localDescStyle.Render(binding.Help().Desc))
			}

			if i != len(group)-1 {
				s.WriteString(sepStyle.Render(separator))
			}
		}
		if gi != len(m.groups)-1 {
			s.WriteString(sepStyle.Render(verticalSeparator))
		}
	}

	line := s.String()
	if m.width > 0 && lipgloss.Width(line) > m.width {
		line = lipgloss.NewStyle().MaxWidth(m.width).Render(line)
	}
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, line)
}
