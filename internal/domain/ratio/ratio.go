// Package ratio computes the audit up/down ratio and the gauge fill derived from it.
package ratio

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/okian/xpdash/internal/domain/model"
)

// Ratio display constants.
const (
	Infinity = "∞"
	Zero     = "0.00"

	// gaugeMaxRatio is the ratio at which the gauge is full.
	gaugeMaxRatio = 2.0
	// infinityBandValue stands in for an infinite ratio when choosing a colour band.
	infinityBandValue = 999.0

	goodThreshold = 1.0
	okThreshold   = 0.5
)

// Band classifies a ratio for colouring.
type Band string

// Colour bands.
const (
	BandGood Band = "good"
	BandOK   Band = "ok"
	BandPoor Band = "poor"
)

// Color returns the display colour of the band.
func (b Band) Color() string {
	switch b {
	case BandGood:
		return "#10b981"
	case BandOK:
		return "#f59e0b"
	default:
		return "#ef4444"
	}
}

// Gauge is the normalized gauge fill for a ratio.
type Gauge struct {
	Fraction float64 `json:"fraction"` // in [0, 1]
	Band     Band    `json:"band"`
}

// ComputeAuditRatio formats up/down with two decimals.
// down == 0 yields "∞" when up > 0 and "0.00" when there is no data at all.
// NaN and negative infinity count as zero. An infinite side is resolved
// before division: up = +Inf gives "∞", down = +Inf gives "0.00", both give "0.00".
func ComputeAuditRatio(up, down float64) model.AuditAggregate {
	up, down = orZero(up), orZero(down)
	out := model.AuditAggregate{Up: up, Down: down}
	upInf, downInf := math.IsInf(up, 1), math.IsInf(down, 1)
	switch {
	case upInf && downInf:
		out.Ratio = Zero
	case downInf:
		out.Ratio = Zero
	case upInf:
		out.Ratio = Infinity
	case down > 0:
		if q := up / down; math.IsInf(q, 0) {
			out.Ratio = Infinity
			break
		}
		out.Ratio = decimal.NewFromFloat(up).
			DivRound(decimal.NewFromFloat(down), 2).
			StringFixed(2)
	case up > 0:
		out.Ratio = Infinity
	default:
		out.Ratio = Zero
	}
	return out
}

// orZero maps NaN and -Inf to 0.
func orZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, -1) {
		return 0
	}
	return v
}

// ComputeGaugeFill maps a ratio onto the gauge domain [0, 2].
// +Inf fills the gauge. The band is chosen on the unclamped ratio.
func ComputeGaugeFill(r float64) Gauge {
	if math.IsNaN(r) {
		r = 0
	}
	bandValue := r
	fraction := 0.0
	if math.IsInf(r, 1) {
		fraction = 1
		bandValue = infinityBandValue
	} else {
		fraction = math.Max(0, math.Min(r, gaugeMaxRatio)) / gaugeMaxRatio
	}
	return Gauge{Fraction: fraction, Band: bandFor(bandValue)}
}

// GaugeFillFromString parses a formatted ratio ("1.25", "∞", "Infinity").
// Unparsable input behaves like a zero ratio.
func GaugeFillFromString(s string) Gauge {
	return ComputeGaugeFill(Parse(s))
}

// Parse converts a formatted ratio back to a float; "∞" and "Infinity" map to +Inf.
func Parse(s string) float64 {
	s = strings.TrimSpace(s)
	if s == Infinity || strings.EqualFold(s, "infinity") {
		return math.Inf(1)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) {
		return 0
	}
	return v
}

func bandFor(r float64) Band {
	switch {
	case r > goodThreshold:
		return BandGood
	case r > okThreshold:
		return BandOK
	default:
		return BandPoor
	}
}
