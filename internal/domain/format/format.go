// Package format renders XP amounts for display.
package format

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Supported styles.
const (
	StyleKB    = "kb"
	StylePlain = "plain"
)

// ErrUnknownStyle is returned by New for an unsupported style name.
var ErrUnknownStyle = errors.New("unknown xp format style")

// Formatter renders a raw XP amount.
type Formatter interface {
	XP(v float64) string
	Style() string
}

// New returns the formatter for style. An empty style selects kB.
func New(style string) (Formatter, error) {
	switch strings.ToLower(strings.TrimSpace(style)) {
	case "", StyleKB:
		return KB{}, nil
	case StylePlain:
		return NewPlain(language.English), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStyle, style)
	}
}

// KB renders thousands with a "kB" unit: one decimal below 100 kB,
// whole numbers from 100 kB up. Zero renders as "0".
type KB struct{}

var (
	thousand = decimal.NewFromInt(1000)
	hundred  = decimal.NewFromInt(100)
)

// XP implements Formatter.
func (KB) XP(v float64) string {
	if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	kb := decimal.NewFromFloat(v).Div(thousand)
	if kb.GreaterThanOrEqual(hundred) {
		return kb.Round(0).String() + " kB"
	}
	return kb.StringFixed(1) + " kB"
}

// Style implements Formatter.
func (KB) Style() string { return StyleKB }

// Plain renders a rounded integer with locale grouping, e.g. "12,345".
type Plain struct {
	p *message.Printer
}

// NewPlain returns a Plain formatter for the given locale.
func NewPlain(tag language.Tag) Plain {
	return Plain{p: message.NewPrinter(tag)}
}

// XP implements Formatter.
func (f Plain) XP(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	return f.p.Sprintf("%d", int64(math.Round(v)))
}

// Style implements Formatter.
func (Plain) Style() string { return StylePlain }
