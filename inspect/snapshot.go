package inspect

import (
	"fmt"
	"strings"
	"time"

	"kolam/ui/layout"
)

// Snapshot represents a complete UI state at a point in time.
type Snapshot struct {
	// Timestamp when the snapshot was taken.
	Timestamp time.Time `json:"timestamp"`

	// Version of the snapshot format.
	Version string `json:"version"`

	Terminal TerminalInfo `json:"terminal"`

	AppState AppStateInfo `json:"app_state"`

	Layout LayoutInfo `json:"layout"`

	// Components is the root of the page tree.
	Components *Node `json:"components"`

	Breakpoints []BreakpointInfo `json:"breakpoints"`
}

// TerminalInfo contains terminal dimensions.
type TerminalInfo struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// AppStateInfo contains application-level state.
type AppStateInfo struct {
	// State is the current app state ("default", "loading", "generating").
	State string `json:"state"`

	HasOverlay  bool   `json:"has_overlay"`
	OverlayType string `json:"overlay_type,omitempty"`

	// Tab is the active tab name.
	Tab string `json:"tab"`

	Prompt             string `json:"prompt"`
	SuggestionsVisible bool   `json:"suggestions_visible"`
	ActiveSuggestion   int    `json:"active_suggestion"`

	DesignCount int `json:"design_count"`
	SlideIndex  int `json:"slide_index"`

	Loading    bool `json:"loading"`
	Generating bool `json:"generating"`

	// ErrorMessage is the current error banner text if any.
	ErrorMessage string `json:"error_message,omitempty"`

	// ScrollOffset is the first body line shown in the viewport.
	ScrollOffset int `json:"scroll_offset"`
}

// LayoutInfo contains layout configuration.
type LayoutInfo struct {
	Mode           string `json:"mode"`
	ContentWidth   int    `json:"content_width"`
	ViewportHeight int    `json:"viewport_height"`
	InputWidth     int    `json:"input_width"`
	SlideWidth     int    `json:"slide_width"`
	GalleryColumns int    `json:"gallery_columns"`
	FeatureColumns int    `json:"feature_columns"`
	MenuHeight     int    `json:"menu_height"`

	Degradation DegradationInfo `json:"degradation"`
}

// DegradationInfo contains active UI degradation flags.
type DegradationInfo struct {
	HideFeatureText  bool `json:"hide_feature_text"`
	HideHeroSubtitle bool `json:"hide_hero_subtitle"`
	SimplifyTabs     bool `json:"simplify_tabs"`
	HideCardLinks    bool `json:"hide_card_links"`
	HideCardTime     bool `json:"hide_card_time"`
	HideHeaderArt    bool `json:"hide_header_art"`
	ShowMinWarning   bool `json:"show_min_warning"`
}

// BreakpointInfo contains information about a responsive breakpoint.
type BreakpointInfo struct {
	Name      string `json:"name"`
	Threshold int    `json:"threshold"`
	Active    bool   `json:"active"`
	// Dimension is "width" or "height".
	Dimension string `json:"dimension"`
}

// NewSnapshot creates a new snapshot with current timestamp.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Timestamp: time.Now(),
		Version:   "1.0.0",
	}
}

// WithTerminal sets terminal info and returns the snapshot for chaining.
func (s *Snapshot) WithTerminal(width, height int) *Snapshot {
	s.Terminal = TerminalInfo{Width: width, Height: height}
	return s
}

// WithAppState sets the application state and returns the snapshot for chaining.
func (s *Snapshot) WithAppState(st AppStateInfo) *Snapshot {
	s.AppState = st
	return s
}

// WithLayout sets layout info from constraints and degradation.
func (s *Snapshot) WithLayout(c layout.Constraints, d layout.Degradation) *Snapshot {
	s.Layout = LayoutInfo{
		Mode:           c.Mode.String(),
		ContentWidth:   c.ContentWidth,
		ViewportHeight: c.ViewportHeight,
		InputWidth:     c.InputWidth,
		SlideWidth:     c.SlideWidth,
		GalleryColumns: c.GalleryColumns,
		FeatureColumns: c.FeatureColumns,
		MenuHeight:     c.MenuHeight,
		Degradation: DegradationInfo{
			HideFeatureText:  d.HideFeatureText,
			HideHeroSubtitle: d.HideHeroSubtitle,
			SimplifyTabs:     d.SimplifyTabs,
			HideCardLinks:    d.HideCardLinks,
			HideCardTime:     d.HideCardTime,
			HideHeaderArt:    d.HideHeaderArt,
			ShowMinWarning:   d.ShowMinWarning,
		},
	}

	s.Breakpoints = []BreakpointInfo{
		{Name: "hide_feature_text", Threshold: layout.FeatureTextHideHeight, Active: d.HideFeatureText, Dimension: "height"},
		{Name: "hide_hero_subtitle", Threshold: layout.HeroSubtitleHeight, Active: d.HideHeroSubtitle, Dimension: "height"},
		{Name: "simplify_tabs", Threshold: layout.TabSimplifyWidth, Active: d.SimplifyTabs, Dimension: "width"},
		{Name: "hide_card_links", Threshold: layout.CardLinkHideWidth, Active: d.HideCardLinks, Dimension: "width"},
		{Name: "hide_card_time", Threshold: layout.CardTimeHideWidth, Active: d.HideCardTime, Dimension: "width"},
		{Name: "hide_header_art", Threshold: layout.HeaderArtHideWidth, Active: d.HideHeaderArt, Dimension: "width"},
	}

	return s
}

// WithComponents sets the component tree root.
func (s *Snapshot) WithComponents(root *Node) *Snapshot {
	s.Components = root
	return s
}

// ToText returns a human-readable text representation.
func (s *Snapshot) ToText() string {
	var b strings.Builder

	b.WriteString("=== UI Snapshot ===\n")
	b.WriteString(fmt.Sprintf("Time: %s\n", s.Timestamp.Format(time.RFC3339)))
	b.WriteString(fmt.Sprintf("Terminal: %dx%d\n", s.Terminal.Width, s.Terminal.Height))
	b.WriteString(fmt.Sprintf("State: %s\n", s.AppState.State))
	b.WriteString(fmt.Sprintf("Tab: %s\n", s.AppState.Tab))
	b.WriteString(fmt.Sprintf("Designs: %d (slide %d)\n", s.AppState.DesignCount, s.AppState.SlideIndex+1))
	if s.AppState.ErrorMessage != "" {
		b.WriteString(fmt.Sprintf("Error: %s\n", s.AppState.ErrorMessage))
	}

	b.WriteString("\n--- Layout ---\n")
	b.WriteString(fmt.Sprintf("Mode: %s\n", s.Layout.Mode))
	b.WriteString(fmt.Sprintf("Content: %d wide, viewport %d high\n", s.Layout.ContentWidth, s.Layout.ViewportHeight))
	b.WriteString(fmt.Sprintf("Columns: gallery %d, features %d\n", s.Layout.GalleryColumns, s.Layout.FeatureColumns))

	b.WriteString("\n--- Active Breakpoints ---\n")
	for _, bp := range s.Breakpoints {
		status := "[ ]"
		if bp.Active {
			status = "[X]"
		}
		b.WriteString(fmt.Sprintf("  %s %s (threshold: %d %s)\n", status, bp.Name, bp.Threshold, bp.Dimension))
	}

	if s.Components != nil {
		b.WriteString("\n--- Components ---\n")
		writeNodeText(&b, s.Components, 0)
	}

	return b.String()
}

func writeNodeText(b *strings.Builder, node *Node, indent int) {
	prefix := strings.Repeat("  ", indent)

	b.WriteString(fmt.Sprintf("%s%s", prefix, node.Type))
	if node.ID != "" {
		b.WriteString(fmt.Sprintf(" [%s]", node.ID))
	}
	b.WriteString(fmt.Sprintf(" @%d (%dx%d)", node.Bounds.Y, node.Bounds.Width, node.Bounds.Height))
	if !node.Visible {
		b.WriteString(" hidden")
	}

	b.WriteString("\n")

	for _, child := range node.Children {
		writeNodeText(b, child, indent+1)
	}
}
