package geometry

import "math"

// Semicircular gauge span, left to right through 12 o'clock.
const (
	GaugeStartDeg = -90.0
	GaugeEndDeg   = 90.0
)

// GaugeArcs is the geometry of a half-circle gauge.
type GaugeArcs struct {
	Background Path    `json:"background"`
	Fill       Path    `json:"fill"`
	Fraction   float64 `json:"fraction"`
	DashLength float64 `json:"dash_length"`
	DashOffset float64 `json:"dash_offset"`
}

// Gauge lays out a semicircular gauge filled to fraction, clamped into [0, 1].
// The fill arc is omitted when the fraction is zero.
func Gauge(cx, cy, radius, fraction float64) GaugeArcs {
	if math.IsNaN(fraction) || fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	half := math.Pi * radius
	g := GaugeArcs{
		Background: DescribeArc(cx, cy, radius, GaugeStartDeg, GaugeEndDeg),
		Fraction:   fraction,
		DashLength: half,
		DashOffset: half * (1 - fraction),
	}
	if fraction > 0 {
		g.Fill = DescribeArc(cx, cy, radius, GaugeStartDeg, GaugeStartDeg+(GaugeEndDeg-GaugeStartDeg)*fraction)
	}
	return g
}
