package layout

// Constraints holds the computed layout constraints for all components.
type Constraints struct {
	// Terminal dimensions
	TerminalWidth  int
	TerminalHeight int

	// Computed mode
	Mode LayoutMode

	// Page body
	ContentWidth   int
	ViewportHeight int
	MenuWidth      int
	MenuHeight     int

	// Hero prompt
	InputWidth int

	// Slider
	SlideWidth int

	// Grids
	GalleryColumns int
	CardWidth      int
	FeatureColumns int
	FeatureWidth   int

	ShowMinWarning bool
}

// ComputeConstraints calculates layout constraints for the given terminal dimensions.
func ComputeConstraints(width, height int) Constraints {
	c := Constraints{
		TerminalWidth:  width,
		TerminalHeight: height,
		Mode:           DetermineMode(width, height),
		ShowMinWarning: width < MinWidth || height < MinHeight,
	}

	c.MenuHeight = MenuHeight
	c.MenuWidth = width
	c.ViewportHeight = max(height-c.MenuHeight, 1)

	c.ContentWidth = max(min(width, ContentMaxWidth)-2*SidePadding, 1)
	c.InputWidth = min(c.ContentWidth, InputMaxWidth)
	c.SlideWidth = clamp(c.ContentWidth-2*ArrowWidth, SlideMinWidth, SlideMaxWidth)

	c.GalleryColumns, c.CardWidth = autoFill(c.ContentWidth, CardMinWidth, MaxGalleryColumns)
	c.FeatureColumns, c.FeatureWidth = autoFill(c.ContentWidth, FeatureMinWidth, MaxFeatureColumns)
	if c.Mode >= LayoutCompact {
		c.FeatureColumns, c.FeatureWidth = 1, c.ContentWidth
	}

	return c
}

// autoFill fits as many columns of at least minWidth as the width allows,
// capped at maxCols, and splits the width evenly between them.
func autoFill(width, minWidth, maxCols int) (cols, colWidth int) {
	cols = clamp((width+GridGap)/(minWidth+GridGap), 1, maxCols)
	colWidth = (width - GridGap*(cols-1)) / cols
	return cols, max(colWidth, 1)
}

// ComputeOverlaySize calculates constrained overlay dimensions.
func ComputeOverlaySize(termWidth, termHeight int, preferredWidth, preferredHeight int) (int, int) {
	maxW := termWidth - OverlayMargin*2
	maxH := termHeight - OverlayMargin*2

	w := clamp(preferredWidth, OverlayMinWidth, min(maxW, OverlayMaxWidth))
	h := clamp(preferredHeight, OverlayMinHeight, min(maxH, OverlayMaxHeight))

	return max(w, 1), max(h, 1)
}

func clamp(value, minVal, maxVal int) int {
	if maxVal < minVal {
		return maxVal
	}
	if value < minVal {
		return minVal
	}
	if value > maxVal {
		return maxVal
	}
	return value
}
