package colors

import "math"

// RangeType selects which part of a base color's lightness range a
// ColorMap built with FromColor spans.
type RangeType int

const (
	// RangeFull spans from a darkened version of the base color, through
	// the base color, to a lightened version.
	RangeFull RangeType = iota
	// RangeLight spans from the base color to a lightened version.
	RangeLight
	// RangeDark spans from a darkened version to the base color.
	RangeDark
)

const colorMapSize = 256

// ColorMap maps scalar values to colors by indexing into a fixed palette.
type ColorMap struct {
	palette [colorMapSize]Color
}

// FromColor builds a color map around a single base color. The rangetype
// controls whether the map spans the dark side, the light side, or both.
func FromColor(base Color, rangetype RangeType) *ColorMap {
	m := &ColorMap{}
	n := float64(colorMapSize - 1)
	for i := range m.palette {
		t := float64(i) / n
		switch rangetype {
		case RangeLight:
			m.palette[i] = base.Lightened(t * 100)
		case RangeDark:
			m.palette[i] = base.Darkened((1 - t) * 100)
		default:
			// Dark half first, light half second.
			if t < 0.5 {
				m.palette[i] = base.Darkened((1 - 2*t) * 100)
			} else {
				m.palette[i] = base.Lightened((2*t - 1) * 100)
			}
		}
	}
	return m
}

// At returns the palette color for value scaled between minval and maxval.
// Values outside the range clamp to the palette ends.
func (m *ColorMap) At(value, minval, maxval float64) Color {
	t := 0.0
	if maxval != minval {
		t = (value - minval) / (maxval - minval)
	}
	i := int(math.Round(clamp01(t) * float64(colorMapSize-1)))
	return m.palette[i]
}
