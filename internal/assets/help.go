package assets

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var helpLines = []string{
	"Keys",
	"",
	"  h        show / hide this help",
	"  p        pause / resume",
	"  f        freeze displayed data",
	"  g        show / hide grid",
	"  q, Esc   quit",
}

// HelpCard renders the key help as light text on a translucent panel.
func HelpCard() *image.RGBA {
	face := basicfont.Face7x13
	const margin = 12
	width := 0
	for _, line := range helpLines {
		width = max(width, len(line)*face.Advance)
	}
	lineHeight := face.Height + 4
	img := image.NewRGBA(image.Rect(0, 0, width+2*margin, len(helpLines)*lineHeight+2*margin))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{R: 16, G: 16, B: 24, A: 220}), image.Point{}, draw.Src)

	drawer := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.RGBA{R: 235, G: 235, B: 235, A: 255}),
		Face: face,
	}
	for i, line := range helpLines {
		drawer.Dot = fixed.P(margin, margin+i*lineHeight+face.Ascent)
		drawer.DrawString(line)
	}
	return img
}
