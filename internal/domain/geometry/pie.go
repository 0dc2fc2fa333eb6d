package geometry

import (
	"math"

	"github.com/okian/xpdash/internal/domain/model"
)

// PieStartDeg is where the first pie segment begins (12 o'clock).
const PieStartDeg = -90.0

// ArcSegment is a closed annular region of a pie or donut.
type ArcSegment struct {
	StartAngleDeg float64 `json:"start_angle_deg"`
	EndAngleDeg   float64 `json:"end_angle_deg"`
	InnerRadius   float64 `json:"inner_radius"`
	OuterRadius   float64 `json:"outer_radius"`
}

// Sweep returns the angular span of the segment.
func (s ArcSegment) Sweep() float64 { return s.EndAngleDeg - s.StartAngleDeg }

// Path draws the segment around (cx, cy). Zero-length segments draw nothing.
func (s ArcSegment) Path(cx, cy float64) Path {
	return DescribeDonutSegment(cx, cy, s.InnerRadius, s.OuterRadius, s.StartAngleDeg, s.EndAngleDeg)
}

// Slice is one laid-out pie segment with the aggregate it represents.
type Slice struct {
	ArcSegment
	Index      int     `json:"index"`
	Key        string  `json:"key"`
	Label      string  `json:"label"`
	Value      float64 `json:"value"`
	Percentage float64 `json:"percentage"`
}

// PieLayout assigns contiguous angles to aggregates in their given order,
// starting at 12 o'clock. Each sweep is 360·value/total and the last segment
// ends exactly one full turn after the first began. A non-positive total
// yields no segments. Negative values are laid out as empty segments.
func PieLayout(aggs []model.Aggregate, innerR, outerR float64) []Slice {
	var total float64
	for _, a := range aggs {
		total += nonNegative(a.Value)
	}
	if !(total > 0) || math.IsInf(total, 0) {
		return nil
	}

	out := make([]Slice, len(aggs))
	current := PieStartDeg
	for i, a := range aggs {
		v := nonNegative(a.Value)
		end := current + 360*v/total
		if i == len(aggs)-1 {
			end = PieStartDeg + 360
		}
		out[i] = Slice{
			ArcSegment: ArcSegment{
				StartAngleDeg: current,
				EndAngleDeg:   end,
				InnerRadius:   innerR,
				OuterRadius:   outerR,
			},
			Index:      i,
			Key:        a.Key,
			Label:      a.Label,
			Value:      a.Value,
			Percentage: 100 * v / total,
		}
		current = end
	}
	return out
}

func nonNegative(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}
