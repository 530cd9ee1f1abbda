package render

import (
	"strings"
	"unicode"

	"localboard/internal/state"
)

// Layout constants for inline math, in units of the line's font size.
const (
	scriptScale   = 0.7
	superShift    = -0.2
	subShift      = 0.45
	fracScale     = 0.65
	fracNumShift  = -0.15
	fracBarShift  = 0.55
	fracDenShift  = 0.6
	fracPadding   = 0.15
	fracBarHeight = 0.06
)

// MathRun is one positioned piece of a laid out math line. X and Y are
// offsets from the top-left of the line. A run with Bar set is a fraction
// bar of width W and no text.
type MathRun struct {
	Text string
	X, Y float64
	Size float64
	W    float64
	Bar  bool
}

// MathLayout is a laid out math line.
type MathLayout struct {
	Runs  []MathRun
	Width float64
}

// LayoutMath lays out one line of inline math notation:
//
//	x^2, x^{n+1}   superscript
//	a_i, a_{ij}    subscript
//	(a)/(b)        stacked fraction
//	*              rendered as ×
//
// A script applies to a braced group, a run of letters and digits, or a
// single character. Anything else is plain text.
func LayoutMath(line string, fontSize float64, m state.TextMeasurer) MathLayout {
	if m == nil {
		m = state.FallbackMeasurer{}
	}
	var (
		l     MathLayout
		plain strings.Builder
		x     float64
	)
	emit := func(text string, y, size float64) {
		if text == "" {
			return
		}
		w := m.MeasureText(text, size)
		l.Runs = append(l.Runs, MathRun{Text: text, X: x, Y: y, Size: size, W: w})
		x += w
	}
	flush := func() {
		emit(plain.String(), 0, fontSize)
		plain.Reset()
	}

	r := []rune(line)
	for i := 0; i < len(r); i++ {
		switch c := r[i]; {
		case (c == '^' || c == '_') && i+1 < len(r):
			group, next := scriptGroup(r, i+1)
			flush()
			shift := superShift
			if c == '_' {
				shift = subShift
			}
			emit(substitute(group), shift*fontSize, fontSize*scriptScale)
			i = next - 1
		case c == '(':
			num, den, next, ok := fraction(r, i)
			if !ok {
				plain.WriteRune(c)
				continue
			}
			flush()
			x = layoutFraction(&l, substitute(num), substitute(den), x, fontSize, m)
			i = next - 1
		case c == '*':
			plain.WriteRune('×')
		default:
			plain.WriteRune(c)
		}
	}
	flush()
	l.Width = x
	return l
}

func layoutFraction(l *MathLayout, num, den string, x, fontSize float64, m state.TextMeasurer) float64 {
	size := fontSize * fracScale
	nw := m.MeasureText(num, size)
	dw := m.MeasureText(den, size)
	pad := fontSize * fracPadding
	w := max(nw, dw) + 2*pad
	l.Runs = append(l.Runs,
		MathRun{Text: num, X: x + (w-nw)/2, Y: fracNumShift * fontSize, Size: size, W: nw},
		MathRun{X: x, Y: fracBarShift * fontSize, Size: fontSize * fracBarHeight, W: w, Bar: true},
		MathRun{Text: den, X: x + (w-dw)/2, Y: fracDenShift * fontSize, Size: size, W: dw},
	)
	return x + w
}

// scriptGroup returns the operand of a ^ or _ starting at i and the index
// just past it.
func scriptGroup(r []rune, i int) (string, int) {
	if r[i] == '{' {
		if end := matching(r, i, '{', '}'); end > 0 {
			return string(r[i+1 : end]), end + 1
		}
	}
	if isWord(r[i]) {
		j := i
		for j < len(r) && isWord(r[j]) {
			j++
		}
		return string(r[i:j]), j
	}
	return string(r[i]), i + 1
}

// fraction recognises "(num)/(den)" starting at i.
func fraction(r []rune, i int) (num, den string, next int, ok bool) {
	end := matching(r, i, '(', ')')
	if end < 0 || end+2 >= len(r) || r[end+1] != '/' || r[end+2] != '(' {
		return "", "", 0, false
	}
	denEnd := matching(r, end+2, '(', ')')
	if denEnd < 0 {
		return "", "", 0, false
	}
	return string(r[i+1 : end]), string(r[end+3 : denEnd]), denEnd + 1, true
}

func matching(r []rune, i int, open, closing rune) int {
	depth := 0
	for j := i; j < len(r); j++ {
		switch r[j] {
		case open:
			depth++
		case closing:
			depth--
			if depth == 0 {
				return j
			}
		}
	}
	return -1
}

func isWord(c rune) bool {
	return unicode.IsLetter(c) || unicode.IsDigit(c)
}

func substitute(s string) string {
	return strings.ReplaceAll(s, "*", "×")
}

// paintMath paints a laid out line with its top-left corner at (x, y).
func paintMath(s Surface, l MathLayout, x, y float64) {
	for _, run := range l.Runs {
		if run.Bar {
			s.SetLineWidth(run.Size)
			s.MoveTo(x+run.X, y+run.Y)
			s.LineTo(x+run.X+run.W, y+run.Y)
			s.Stroke()
			continue
		}
		s.DrawString(run.Text, x+run.X, y+run.Y, run.Size)
	}
}
