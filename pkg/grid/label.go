package grid

import (
	"image"
	"math"
	"strconv"
	"strings"
)

const (
	// MantissaDigits is the number of digits after the decimal point.
	MantissaDigits = 3

	// LabelWidth is sign, leading digit, point, mantissa, 'e', exponent
	// sign and two exponent digits.
	LabelWidth = 1 + 1 + 1 + MantissaDigits + 1 + 1 + 2

	// Alphabet holds every glyph a label can use; a rune's glyph index is
	// its position here. Anything else renders as the trailing blank.
	Alphabet = "0123456789.+-e "

	FloatsPerVertex  = 6
	VerticesPerGlyph = 6

	// labelPadding keeps labels off the window edge, in pixels.
	labelPadding = 2
)

var blankGlyph = strings.IndexByte(Alphabet, ' ')

func GlyphIndex(r rune) int {
	if i := strings.IndexRune(Alphabet, r); i >= 0 {
		return i
	}
	return blankGlyph
}

// FormatLabel renders v in fixed-width scientific notation, for example
// " 1.250e+01" or "-3.000e-02". The result is always LabelWidth runes.
func FormatLabel(v float64) string {
	if v == 0 {
		v = 0 // drop the sign of negative zero
	}
	sign := " "
	if v < 0 {
		sign = "-"
	}
	abs := math.Abs(v)
	digits := MantissaDigits
	body := strconv.FormatFloat(abs, 'e', digits, 64)
	// three-digit exponents borrow from the mantissa
	for len(body) > LabelWidth-1 && digits > 0 {
		digits--
		body = strconv.FormatFloat(abs, 'e', digits, 64)
	}
	s := sign + body
	if len(s) > LabelWidth {
		s = s[:LabelWidth]
	}
	return s + strings.Repeat(" ", LabelWidth-len(s))
}

// LabelVertices emits two textured triangles per label character. Each
// vertex is {anchorX, anchorY, offsetX, offsetY, u, v}: the anchor is the
// line's device-space position on the window edge and the offset is in
// pixels, so labels keep their size when the window is resized.
// The first line's label is nudged one character width along its axis so
// it clears the perpendicular axis's labels in the corner.
func LabelVertices(axis Axis, positions []float64, min, max float64, cell image.Point) []float32 {
	out := make([]float32, 0, len(positions)*LabelWidth*VerticesPerGlyph*FloatsPerVertex)
	cw, ch := float32(cell.X), float32(cell.Y)
	glyphs := float32(len(Alphabet))
	for i, v := range positions {
		n := float32(Normalize(v, min, max))
		ax, ay := n, float32(-1)
		var nudgeX, nudgeY float32
		if axis == AxisY {
			ax, ay = -1, n
		}
		if i == 0 {
			if axis == AxisX {
				nudgeX = cw
			} else {
				nudgeY = cw
			}
		}
		for c, r := range FormatLabel(v) {
			idx := float32(GlyphIndex(r))
			x0 := labelPadding + float32(c)*cw + nudgeX
			y0 := labelPadding + nudgeY
			x1, y1 := x0+cw, y0+ch
			u0, u1 := idx/glyphs, (idx+1)/glyphs
			// atlas row 0 is the glyph top, so the bottom edge samples v=1
			out = append(out,
				ax, ay, x0, y0, u0, 1,
				ax, ay, x1, y0, u1, 1,
				ax, ay, x1, y1, u1, 0,
				ax, ay, x0, y0, u0, 1,
				ax, ay, x1, y1, u1, 0,
				ax, ay, x0, y1, u0, 0,
			)
		}
	}
	return out
}
