package keys

import (
	"github.com/charmbracelet/bubbles/key"
)

type KeyName int

const (
	KeyUp KeyName = iota
	KeyDown
	KeyEnter
	KeyEsc
	KeyGenerate

	KeyPrevSlide
	KeyNextSlide
	KeyJumpSlide

	KeyTab
	KeyTabCreate
	KeyTabGallery
	KeyTabCommunity

	KeyPageUp
	KeyPageDown

	KeyCopyImage
	KeyQuit
)

// GlobalKeyStringsMap is a global, immutable map string to keybinding.
var GlobalKeyStringsMap = map[string]KeyName{
	"up":         KeyUp,
	"down":       KeyDown,
	"enter":      KeyEnter,
	"esc":        KeyEsc,
	"ctrl+g":     KeyGenerate,
	"ctrl+left":  KeyPrevSlide,
	"ctrl+right": KeyNextSlide,
	"alt+1":      KeyJumpSlide,
	"alt+2":      KeyJumpSlide,
	"alt+3":      KeyJumpSlide,
	"alt+4":      KeyJumpSlide,
	"alt+5":      KeyJumpSlide,
	"alt+6":      KeyJumpSlide,
	"alt+7":      KeyJumpSlide,
	"alt+8":      KeyJumpSlide,
	"alt+9":      KeyJumpSlide,
	"tab":        KeyTab,
	"f1":         KeyTabCreate,
	"f2":         KeyTabGallery,
	"f3":         KeyTabCommunity,
	"pgup":       KeyPageUp,
	"pgdown":     KeyPageDown,
	"ctrl+y":     KeyCopyImage,
	"ctrl+c":     KeyQuit,
}

// GlobalkeyBindings is a global, immutable map of KeyName to keybinding.
var GlobalkeyBindings = map[KeyName]key.Binding{
	KeyUp: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "prev suggestion"),
	),
	KeyDown: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "next suggestion"),
	),
	KeyEnter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("↵", "select/generate"),
	),
	KeyEsc: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close list"),
	),
	KeyGenerate: key.NewBinding(
		key.WithKeys("ctrl+g"),
		key.WithHelp("ctrl+g", "generate"),
	),
	KeyPrevSlide: key.NewBinding(
		key.WithKeys("ctrl+left"),
		key.WithHelp("ctrl+←", "prev slide"),
	),
	KeyNextSlide: key.NewBinding(
		key.WithKeys("ctrl+right"),
		key.WithHelp("ctrl+→", "next slide"),
	),
	KeyJumpSlide: key.NewBinding(
		key.WithKeys("alt+1", "alt+2", "alt+3", "alt+4", "alt+5", "alt+6", "alt+7", "alt+8", "alt+9"),
		key.WithHelp("alt+1-9", "jump"),
	),
	KeyTab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "switch tab"),
	),
	KeyTabCreate: key.NewBinding(
		key.WithKeys("f1"),
		key.WithHelp("f1", "create"),
	),
	KeyTabGallery: key.NewBinding(
		key.WithKeys("f2"),
		key.WithHelp("f2", "my designs"),
	),
	KeyTabCommunity: key.NewBinding(
		key.WithKeys("f3"),
		key.WithHelp("f3", "community"),
	),
	KeyPageUp: key.NewBinding(
		key.WithKeys("pgup"),
		key.WithHelp("pgup", "scroll up"),
	),
	KeyPageDown: key.NewBinding(
		key.WithKeys("pgdown"),
		key.WithHelp("pgdn", "scroll down"),
	),
	KeyCopyImage: key.NewBinding(
		key.WithKeys("ctrl+y"),
		key.WithHelp("ctrl+y", "copy image url"),
	),
	KeyQuit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
}

// SlideDigit returns the zero-based slide index of an alt+digit key string.
func SlideDigit(s string) (int, bool) {
	if len(s) != len("alt+1") || s[:4] != "alt+" {
		return 0, false
	}
	d := s[4]
	if d < '1' || d > '9' {
		return 0, false
	}
	return int(d - '1'), true
}
