// Package layout maps scalar aggregates onto linear bar and dot chart coordinates.
package layout

import (
	"math"

	"github.com/okian/xpdash/internal/domain/model"
)

// Orientation selects the axis along which items are stacked.
type Orientation int

const (
	// Horizontal stacks items top to bottom; values grow to the right.
	Horizontal Orientation = iota
	// Vertical places items left to right; values grow upwards from the baseline.
	Vertical
)

// Point is the placement of one item. X and Y are the end of the value axis
// for the item, Band is where the item's slot begins on the stacking axis and
// Base is the value-axis origin for the item's row.
type Point struct {
	Index      int     `json:"index"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Band       float64 `json:"band"`
	Base       float64 `json:"base"`
	Row        int     `json:"row"`
	Length     float64 `json:"length"`
	Value      float64 `json:"value"`
	Label      string  `json:"label"`
	FullLabel  string  `json:"full_label"`
	ColorIndex int     `json:"color_index"`
	Color      HSL     `json:"color"`
}

type config struct {
	originX, originY float64
	spacing          float64
	bandCenter       float64
	labelLimit       int
	palette          *Palette
	orientation      Orientation
	perRow           int
	rowStride        float64
}

// Option customizes a linear layout.
type Option func(*config)

// WithOrigin sets where the value axis starts (x) and where the first item sits (y).
// For vertical layouts x is the first item's slot and y is the baseline.
func WithOrigin(x, y float64) Option {
	return func(c *config) { c.originX, c.originY = x, y }
}

// WithSpacing sets the stride between consecutive items.
func WithSpacing(step float64) Option {
	return func(c *config) { c.spacing = step }
}

// WithBandCenter offsets each point within its slot, e.g. half a bar's thickness.
func WithBandCenter(offset float64) Option {
	return func(c *config) { c.bandCenter = offset }
}

// WithLabelLimit truncates display labels to n characters. n <= 0 disables truncation.
func WithLabelLimit(n int) Option {
	return func(c *config) { c.labelLimit = n }
}

// WithPalette sets the colour rotation.
func WithPalette(p Palette) Option {
	return func(c *config) { c.palette = &p }
}

// WithVertical places items left to right with values growing upwards.
func WithVertical() Option {
	return func(c *config) { c.orientation = Vertical }
}

// WithWrap breaks a layout into rows of perRow items, each row offset by stride
// along the value axis.
func WithWrap(perRow int, stride float64) Option {
	return func(c *config) { c.perRow, c.rowStride = perRow, stride }
}

// Linear places items in input order at uniform spacing. Values are scaled by
// maxPlotLength / max(values, 1), so all-zero input lays out at the origin.
// Negative and NaN values get zero length but keep their reported value.
func Linear(items []model.Aggregate, maxPlotLength float64, opts ...Option) []Point {
	if len(items) == 0 {
		return []Point{}
	}
	cfg := config{
		palette: &Palette{Step: EvenStep(len(items)), Saturation: 70, Lightness: 60},
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	scale := maxPlotLength / math.Max(maxValue(items), 1)
	if math.IsNaN(scale) || math.IsInf(scale, 0) {
		scale = 0
	}

	out := make([]Point, len(items))
	for i, it := range items {
		row, col := 0, i
		if cfg.perRow > 0 {
			row, col = i/cfg.perRow, i%cfg.perRow
		}
		length := clampLength(it.Value) * scale
		band := float64(col) * cfg.spacing

		p := Point{
			Index:      i,
			Row:        row,
			Length:     length,
			Value:      it.Value,
			Label:      Truncate(it.Label, cfg.labelLimit),
			FullLabel:  it.Label,
			ColorIndex: i,
			Color:      cfg.palette.Color(i),
		}
		switch cfg.orientation {
		case Vertical:
			p.Band = cfg.originX + band
			p.Base = cfg.originY + float64(row)*cfg.rowStride
			p.X = p.Band + cfg.bandCenter
			p.Y = p.Base - length
		default:
			p.Band = cfg.originY + float64(row)*cfg.rowStride + band
			p.Base = cfg.originX
			p.X = p.Base + length
			p.Y = p.Band + cfg.bandCenter
		}
		out[i] = p
	}
	return out
}

// Scale returns the factor Linear would apply for the given items.
func Scale(items []model.Aggregate, maxPlotLength float64) float64 {
	return maxPlotLength / math.Max(maxValue(items), 1)
}

func maxValue(items []model.Aggregate) float64 {
	m := 0.0
	for _, it := range items {
		if v := clampLength(it.Value); v > m {
			m = v
		}
	}
	return m
}

func clampLength(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if math.IsInf(v, 1) {
		return math.MaxFloat64
	}
	return v
}
