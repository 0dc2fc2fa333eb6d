package layout

import (
	"fmt"
	"math"
	"strconv"
)

// HSL is a colour in hue/saturation/lightness space.
type HSL struct {
	Hue        float64 `json:"hue"`
	Saturation float64 `json:"saturation"`
	Lightness  float64 `json:"lightness"`
}

// String renders the colour as a CSS value, e.g. "hsl(220, 70%, 50%)".
func (c HSL) String() string {
	return fmt.Sprintf("hsl(%s, %s%%, %s%%)", trim(c.Hue), trim(c.Saturation), trim(c.Lightness))
}

// Palette derives a deterministic colour from an item index by rotating the hue.
type Palette struct {
	BaseHue    float64
	Step       float64
	Saturation float64
	Lightness  float64
}

// Color returns the colour for index i: hue = (BaseHue + i·Step) mod 360.
func (p Palette) Color(i int) HSL {
	h := math.Mod(p.BaseHue+float64(i)*p.Step, 360)
	if h < 0 {
		h += 360
	}
	return HSL{Hue: h, Saturation: p.Saturation, Lightness: p.Lightness}
}

// EvenStep spreads n items evenly around the colour wheel.
func EvenStep(n int) float64 {
	if n <= 0 {
		return 0
	}
	return 360 / float64(n)
}

func trim(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
