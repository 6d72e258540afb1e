package overlay

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/ansi"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/termenv"
)

// WhitespaceOption sets a styling rule for the gaps PlaceOverlay fills.
type WhitespaceOption func(*whitespace)

// WithWhitespaceChars fills gaps with the given characters, repeated.
func WithWhitespaceChars(s string) WhitespaceOption {
	return func(w *whitespace) {
		w.chars = s
	}
}

// WithWhitespaceForeground colors the fill characters.
func WithWhitespaceForeground(color string) WhitespaceOption {
	return func(w *whitespace) {
		w.style = w.style.Foreground(termenv.ColorProfile().Color(color))
	}
}

type whitespace struct {
	style termenv.Style
	chars string
}

func (w whitespace) render(width int) string {
	if width <= 0 {
		return ""
	}
	if w.chars == "" {
		w.chars = " "
	}

	r := []rune(w.chars)
	var b strings.Builder
	for i, j := 0, 0; i < width; j = (j + 1) % len(r) {
		cw := runewidth.RuneWidth(r[j])
		if cw == 0 || i+cw > width {
			break
		}
		b.WriteRune(r[j])
		i += cw
	}

	if short := width - ansi.PrintableRuneWidth(b.String()); short > 0 {
		b.WriteString(strings.Repeat(" ", short))
	}
	return w.style.Styled(b.String())
}

// hyperlinkRegex matches OSC 8 open and close sequences. The cell cutting
// below only understands CSI sequences.
var hyperlinkRegex = regexp.MustCompile(`\x1b\]8;[^\x1b]*\x1b\\`)

// PlaceOverlay draws fg on top of bg with its top-left corner at (x, y), or
// centered when center is set. With shadow, a one cell drop shadow is drawn
// below and to the right of fg.
func PlaceOverlay(x, y int, fg, bg string, shadow bool, center bool, opts ...WhitespaceOption) string {
	fgLines, fgWidth := getLines(fg)
	bgLines, bgWidth := getLines(bg)
	bgHeight, fgHeight := len(bgLines), len(fgLines)

	if shadow {
		fgLines, fgWidth = withShadow(fgLines, fgWidth)
		fgHeight = len(fgLines)
	}

	if fgWidth >= bgWidth && fgHeight >= bgHeight {
		return strings.Join(fgLines, "\n")
	}

	if center {
		x = (bgWidth - fgWidth) / 2
		y = (bgHeight - fgHeight) / 2
	}
	x = clamp(x, 0, bgWidth-fgWidth)
	y = clamp(y, 0, bgHeight-fgHeight)

	ws := &whitespace{}
	for _, opt := range opts {
		opt(ws)
	}

	var b strings.Builder
	for i, bgLine := range bgLines {
		if i > 0 {
			b.WriteByte('\n')
		}
		if i < y || i >= y+fgHeight {
			b.WriteString(bgLine)
			continue
		}

		bgLine = hyperlinkRegex.ReplaceAllString(bgLine, "")
		pos := 0
		if x > 0 {
			left := truncate.String(bgLine, uint(x))
			pos = ansi.PrintableRuneWidth(left)
			b.WriteString(left)
			if pos < x {
				b.WriteString(ws.render(x - pos))
				pos = x
			}
		}

		fgLine := fgLines[i-y]
		b.WriteString(fgLine)
		pos += ansi.PrintableRuneWidth(fgLine)

		right := cutLeft(bgLine, pos)
		lineWidth := ansi.PrintableRuneWidth(bgLine)
		rightWidth := ansi.PrintableRuneWidth(right)
		if rightWidth <= lineWidth-pos {
			b.WriteString(ws.render(lineWidth - rightWidth - pos))
		}
		b.WriteString(right)
	}

	return b.String()
}

var shadowStyle = termenv.Style{}.Faint()

func withShadow(lines []string, width int) ([]string, int) {
	out := make([]string, 0, len(lines)+1)
	for i, line := range lines {
		pad := strings.Repeat(" ", width-ansi.PrintableRuneWidth(line))
		if i == 0 {
			out = append(out, line+pad+" ")
			continue
		}
		out = append(out, line+pad+shadowStyle.Styled("░"))
	}
	out = append(out, " "+shadowStyle.Styled(strings.Repeat("░", width)))
	return out, width + 1
}

// cutLeft drops the first cutWidth printable cells of s, keeping any style
// that was active at the cut.
func cutLeft(s string, cutWidth int) string {
	var (
		pos    int
		isAnsi bool
		ab     bytes.Buffer
		b      bytes.Buffer
	)
	for _, c := range s {
		var w int
		if c == ansi.Marker || isAnsi {
			isAnsi = true
			ab.WriteRune(c)
			if ansi.IsTerminator(c) {
				isAnsi = false
				if bytes.HasSuffix(ab.Bytes(), []byte("[0m")) {
					ab.Reset()
				}
			}
			if pos >= cutWidth {
				b.WriteRune(c)
			}
			continue
		}

		w = runewidth.RuneWidth(c)
		if pos >= cutWidth {
			if b.Len() == 0 && ab.Len() > 0 {
				b.Write(ab.Bytes())
			}
			b.WriteRune(c)
		}
		pos += w
	}
	return b.String()
}

func getLines(s string) (lines []string, widest int) {
	lines = strings.Split(s, "\n")
	for _, l := range lines {
		if w := ansi.PrintableRuneWidth(l); widest < w {
			widest = w
		}
	}
	return lines, widest
}

func clamp(v, lower, upper int) int {
	if upper < lower {
		return lower
	}
	return min(max(v, lower), upper)
}
