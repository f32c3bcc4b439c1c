// Package colors provides an RGBA color value type with lightness
// classification, lighten/darken derivation, and color maps.
package colors

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// Predefined colors.
var (
	White = Color{1, 1, 1, 1}
	Black = Color{0, 0, 0, 1}
	Grey  = Color{0.5, 0.5, 0.5, 1}
	Red   = Color{1, 0, 0, 1}
	Green = Color{0, 1, 0, 1}
	Blue  = Color{0, 0, 1, 1}
)

// named maps lowercase color names accepted by Coerce.
var named = map[string]Color{
	"white": White,
	"black": Black,
	"grey":  Grey,
	"gray":  Grey,
	"red":   Red,
	"green": Green,
	"blue":  Blue,
}

// New creates an opaque color from RGB components in [0, 1].
func New(r, g, b float64) Color {
	return Color{r, g, b, 1}
}

// Luminance returns the perceived brightness in [0, 1] using Rec. 709
// coefficients.
func (c Color) Luminance() float64 {
	return 0.2126*c.R + 0.7152*c.G + 0.0722*c.B
}

// IsLight reports whether the color is classified as light
// (luminance above 0.5).
func (c Color) IsLight() bool {
	return c.Luminance() > 0.5
}

// Lightened returns a copy of the color with its lightness increased by the
// given percentage of the remaining headroom. Lightened(100) is white;
// Lightened(0) is the color itself.
func (c Color) Lightened(percent float64) Color {
	h, s, l := c.hsl()
	l += percent / 100 * (1 - l)
	r, g, b := hslToRGB(h, s, clamp01(l))
	return Color{r, g, b, c.A}
}

// Darkened returns a copy of the color with its lightness decreased by the
// given percentage. Darkened(100) is black; Darkened(0) is the color itself.
func (c Color) Darkened(percent float64) Color {
	h, s, l := c.hsl()
	l -= percent / 100 * l
	r, g, b := hslToRGB(h, s, clamp01(l))
	return Color{r, g, b, c.A}
}

// WithAlpha returns a copy of the color with the given alpha.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// Hex returns the color as a "#rrggbb" string. Alpha is dropped.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x",
		int(math.Round(clamp01(c.R)*255)),
		int(math.Round(clamp01(c.G)*255)),
		int(math.Round(clamp01(c.B)*255)))
}

func (c Color) String() string {
	return fmt.Sprintf("Color(%.3f, %.3f, %.3f, %.3f)", c.R, c.G, c.B, c.A)
}

// FromHex parses a "#rrggbb" or "rrggbb" string.
func FromHex(s string) (Color, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return Color{}, fmt.Errorf("colors: invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("colors: invalid hex color %q: %w", s, err)
	}
	return Color{
		R: float64(v>>16&0xff) / 255,
		G: float64(v>>8&0xff) / 255,
		B: float64(v&0xff) / 255,
		A: 1,
	}, nil
}

// Coerce converts an arbitrary value to a Color. Accepted inputs: Color,
// *Color, [3]float64, [4]float64, []float64 of length 3 or 4, a named color
// ("red", "white", ...), or a "#rrggbb" hex string.
func Coerce(v any) (Color, error) {
	switch x := v.(type) {
	case Color:
		return x, nil
	case *Color:
		if x == nil {
			return Color{}, fmt.Errorf("colors: cannot coerce nil *Color")
		}
		return *x, nil
	case [3]float64:
		return Color{x[0], x[1], x[2], 1}, nil
	case [4]float64:
		return Color{x[0], x[1], x[2], x[3]}, nil
	case []float64:
		switch len(x) {
		case 3:
			return Color{x[0], x[1], x[2], 1}, nil
		case 4:
			return Color{x[0], x[1], x[2], x[3]}, nil
		}
		return Color{}, fmt.Errorf("colors: cannot coerce slice of length %d", len(x))
	case string:
		if c, ok := named[strings.ToLower(x)]; ok {
			return c, nil
		}
		return FromHex(x)
	}
	return Color{}, fmt.Errorf("colors: cannot coerce %T to Color", v)
}

// hsl converts the color to hue [0,360), saturation [0,1], lightness [0,1].
func (c Color) hsl() (h, s, l float64) {
	maxv := math.Max(c.R, math.Max(c.G, c.B))
	minv := math.Min(c.R, math.Min(c.G, c.B))
	l = (maxv + minv) / 2

	d := maxv - minv
	if d == 0 {
		return 0, 0, l
	}
	if l > 0.5 {
		s = d / (2 - maxv - minv)
	} else {
		s = d / (maxv + minv)
	}
	switch maxv {
	case c.R:
		h = math.Mod((c.G-c.B)/d, 6)
	case c.G:
		h = (c.B-c.R)/d + 2
	default:
		h = (c.R-c.G)/d + 4
	}
	h *= 60
	if h < 0 {
		h += 360
	}
	return h, s, l
}

// hslToRGB converts hue [0,360), saturation [0,1], lightness [0,1] to RGB.
func hslToRGB(h, s, l float64) (r, g, b float64) {
	if s == 0 {
		return l, l, l
	}
	cv := (1 - math.Abs(2*l-1)) * s
	x := cv * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := l - cv/2

	var r1, g1, b1 float64
	switch {
	case h < 60:
		r1, g1, b1 = cv, x, 0
	case h < 120:
		r1, g1, b1 = x, cv, 0
	case h < 180:
		r1, g1, b1 = 0, cv, x
	case h < 240:
		r1, g1, b1 = 0, x, cv
	case h < 300:
		r1, g1, b1 = x, 0, cv
	default:
		r1, g1, b1 = cv, 0, x
	}
	return r1 + m, g1 + m, b1 + m
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
