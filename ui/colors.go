package ui

import "math"

// RGB is a renderer independent colour
type RGB struct {
	R, G, B uint8
}

var (
	Background = RGB{0x1a, 0x1a, 0x2e}
	HeadColor  = RGB{0xff, 0x6b, 0x6b}
	FoodColor  = RGB{0xff, 0xeb, 0x3b}
	GridColor  = RGB{0x33, 0x33, 0x45}
	TextColor  = RGB{0xee, 0xee, 0xee}
	AccentTeal = RGB{0x4e, 0xcd, 0xc4}
)

// SegmentColor shades the body from teal towards a darker green-blue tail.
// index 0 is the head.
func SegmentColor(index int) RGB {
	if index == 0 {
		return HeadColor
	}
	lightness := 60 - index
	if lightness < 20 {
		lightness = 20
	}
	return HSL(float64(170+index*2), 0.6, float64(lightness)/100)
}

// HSL converts hue in degrees, saturation and lightness in [0,1]
func HSL(h, s, l float64) RGB {
	h = math.Mod(h, 360)
	c := (1 - math.Abs(2*l-1)) * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := l - c/2

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return RGB{
		R: uint8(math.Round((r + m) * 255)),
		G: uint8(math.Round((g + m) * 255)),
		B: uint8(math.Round((b + m) * 255)),
	}
}
