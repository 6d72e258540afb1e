// Package layout provides responsive layout calculations for the landing page.
package layout

// LayoutMode represents the current layout mode based on terminal dimensions.
type LayoutMode int

const (
	// LayoutFull is for large terminals (>= 140w x 40h).
	LayoutFull LayoutMode = iota

	// LayoutStandard is for medium terminals (>= 110w x 30h).
	LayoutStandard

	// LayoutCompact is for smaller terminals (>= 60w x 20h).
	// Single column cards and shorter section text.
	LayoutCompact

	// LayoutMinimal is for terminals below minimum size.
	// Shows a size warning above the page.
	LayoutMinimal
)

func (m LayoutMode) String() string {
	switch m {
	case LayoutFull:
		return "full"
	case LayoutStandard:
		return "standard"
	case LayoutCompact:
		return "compact"
	case LayoutMinimal:
		return "minimal"
	default:
		return "unknown"
	}
}

// DetermineMode picks the more restrictive of the width and height modes.
func DetermineMode(width, height int) LayoutMode {
	return max(modeFor(width, FullWidth, StandardWidth, MinWidth), modeFor(height, FullHeight, StandardHeight, MinHeight))
}

func modeFor(size, full, standard, minimum int) LayoutMode {
	switch {
	case size >= full:
		return LayoutFull
	case size >= standard:
		return LayoutStandard
	case size >= minimum:
		return LayoutCompact
	default:
		return LayoutMinimal
	}
}
