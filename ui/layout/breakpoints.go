package layout

// Width breakpoints
const (
	// MinWidth is the narrowest terminal the landing page renders in without
	// a warning.
	MinWidth = 60

	// CompactWidth triggers compact mode features.
	CompactWidth = 80

	// StandardWidth is the threshold for standard layout.
	StandardWidth = 110

	// FullWidth is the threshold for full layout with all features.
	FullWidth = 140
)

// Height breakpoints
const (
	// MinHeight is the absolute minimum terminal height.
	MinHeight = 20

	// StandardHeight is the threshold for standard layout.
	StandardHeight = 30

	// FullHeight is the threshold for full layout.
	FullHeight = 40
)

// Content constraints
const (
	// ContentMaxWidth keeps long lines readable on very wide terminals.
	ContentMaxWidth = 120

	// SidePadding is the horizontal padding around the page body.
	SidePadding = 2

	// InputMaxWidth caps the prompt box, matching the hero column.
	InputMaxWidth = 72
)

// Slider constraints
const (
	// ArrowWidth is the width of one prev/next arrow column, spacing included.
	ArrowWidth = 3

	// SlideMinWidth is the narrowest slide card.
	SlideMinWidth = 24

	// SlideMaxWidth is the widest slide card.
	SlideMaxWidth = 72
)

// Grid constraints. Cards and features auto-fill columns the way a
// minmax() grid would.
const (
	// CardMinWidth is the narrowest gallery card.
	CardMinWidth = 30

	// MaxGalleryColumns caps gallery columns on very wide terminals.
	MaxGalleryColumns = 4

	// FeatureMinWidth is the narrowest feature card.
	FeatureMinWidth = 32

	// MaxFeatureColumns is the number of feature cards.
	MaxFeatureColumns = 3

	// GridGap is the horizontal gap between grid columns.
	GridGap = 2
)

// Menu constraints
const (
	// MenuHeight is the help line at the bottom.
	MenuHeight = 1
)

// Overlay constraints
const (
	// OverlayMaxWidth is the maximum overlay width.
	OverlayMaxWidth = 60

	// OverlayMaxHeight is the maximum overlay height.
	OverlayMaxHeight = 12

	// OverlayMinWidth is the minimum overlay width.
	OverlayMinWidth = 30

	// OverlayMinHeight is the minimum overlay height.
	OverlayMinHeight = 5

	// OverlayMargin is the minimum margin from terminal edges.
	OverlayMargin = 2
)
