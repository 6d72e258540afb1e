package layout

// Degradation holds flags indicating which UI features should be hidden or simplified.
// Features are listed in order of degradation priority (first to hide).
type Degradation struct {
	// Section text
	HideFeatureText  bool // Feature cards show titles only (height < 26)
	HideHeroSubtitle bool // Drop the hero subtitle line (height < 22)

	// Component simplification
	SimplifyTabs  bool // Plain tab labels without borders (width < 70)
	HideCardLinks bool // Gallery cards omit the image url line (width < 70)
	HideCardTime  bool // Gallery cards omit the relative time (width < 80)

	// Critical degradation
	HideHeaderArt  bool // Header shows the name only (height < 20 or width < 50)
	ShowMinWarning bool // Terminal too small warning (below MinWidth/MinHeight)
}

// Threshold constants for degradation
const (
	FeatureTextHideHeight = 26
	HeroSubtitleHeight    = 22
	TabSimplifyWidth      = 70
	CardLinkHideWidth     = 70
	CardTimeHideWidth     = 80
	HeaderArtHideHeight   = 20
	HeaderArtHideWidth    = 50
)

// ComputeDegradation calculates which UI features should be degraded.
func ComputeDegradation(c Constraints) Degradation {
	return Degradation{
		HideFeatureText:  c.TerminalHeight < FeatureTextHideHeight,
		HideHeroSubtitle: c.TerminalHeight < HeroSubtitleHeight,

		SimplifyTabs:  c.TerminalWidth < TabSimplifyWidth,
		HideCardLinks: c.TerminalWidth < CardLinkHideWidth,
		HideCardTime:  c.TerminalWidth < CardTimeHideWidth,

		HideHeaderArt:  c.TerminalHeight < HeaderArtHideHeight || c.TerminalWidth < HeaderArtHideWidth,
		ShowMinWarning: c.ShowMinWarning,
	}
}

// IsCompactMode returns true if cards should use their short form.
func (d Degradation) IsCompactMode() bool {
	return d.HideCardLinks || d.HideFeatureText
}
