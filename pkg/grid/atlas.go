package grid

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Atlas is a single-row glyph texture holding Alphabet in order, one
// fixed-size cell per glyph.
type Atlas struct {
	Image *image.RGBA
	Cell  image.Point
}

func NewAtlas() *Atlas {
	face := basicfont.Face7x13
	cell := image.Pt(face.Advance, face.Height)
	img := image.NewRGBA(image.Rect(0, 0, cell.X*len(Alphabet), cell.Y))
	drawer := font.Drawer{Dst: img, Src: image.White, Face: face}
	for i, r := range Alphabet {
		drawer.Dot = fixed.P(i*cell.X, face.Ascent)
		drawer.DrawString(string(r))
	}
	return &Atlas{Image: img, Cell: cell}
}
