package utils

import (
	"fmt"
	"image/color"
	"regexp"

	"github.com/go-gl/mathgl/mgl32"
)

var colourPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{8}$`)

// Colour is a straight (non-premultiplied) RGBA colour with every channel in [0,1]
type Colour struct {
	R float32
	G float32
	B float32
	A float32
}

func ColourValidate(c string) bool {
	return colourPattern.MatchString(c)
}

func ColourParse(s string) Colour {
	var c color.RGBA
	_, _ = fmt.Sscanf(s, "#%02x%02x%02x%02x", &c.R, &c.G, &c.B, &c.A)
	return ColourFromRGBA(c)
}

func ColourFromRGBA(c color.RGBA) Colour {
	return Colour{
		R: float32(c.R) / 255,
		G: float32(c.G) / 255,
		B: float32(c.B) / 255,
		A: float32(c.A) / 255,
	}
}

func (c Colour) Vec4() mgl32.Vec4 {
	return mgl32.Vec4{c.R, c.G, c.B, c.A}
}

func (c Colour) String() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", channel(c.R), channel(c.G), channel(c.B), channel(c.A))
}

func channel(v float32) uint8 {
	return uint8(mgl32.Clamp(v, 0, 1)*255 + 0.5)
}
