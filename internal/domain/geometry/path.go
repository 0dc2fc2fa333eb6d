// Package geometry converts polar chart descriptions into Cartesian points and
// SVG-style path command sequences.
//
// Angles are in degrees, measured clockwise from 12 o'clock.
package geometry

import (
	"strconv"
	"strings"
)

// Point is a Cartesian coordinate in chart space (y grows downwards).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// CommandKind identifies a path draw instruction.
type CommandKind string

// Draw instructions.
const (
	MoveTo CommandKind = "M"
	LineTo CommandKind = "L"
	ArcTo  CommandKind = "A"
	Close  CommandKind = "Z"
)

// Command is one draw instruction with concrete coordinates.
// Arc fields are only meaningful for ArcTo.
type Command struct {
	Kind     CommandKind `json:"kind"`
	To       Point       `json:"to"`
	Radius   float64     `json:"radius,omitempty"`
	LargeArc bool        `json:"large_arc,omitempty"`
	Sweep    bool        `json:"sweep,omitempty"`
}

// Path is an ordered list of draw instructions. A nil Path draws nothing.
type Path []Command

// Empty reports whether the path draws nothing.
func (p Path) Empty() bool { return len(p) == 0 }

// String renders the path as SVG path data, e.g. "M 1 2 A 5 5 0 0 1 3 4 Z".
func (p Path) String() string {
	var b strings.Builder
	for i, c := range p {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(string(c.Kind))
		switch c.Kind {
		case MoveTo, LineTo:
			writeNums(&b, c.To.X, c.To.Y)
		case ArcTo:
			writeNums(&b, c.Radius, c.Radius, 0)
			writeFlag(&b, c.LargeArc)
			writeFlag(&b, c.Sweep)
			writeNums(&b, c.To.X, c.To.Y)
		case Close:
		}
	}
	return b.String()
}

func writeNums(b *strings.Builder, nums ...float64) {
	for _, n := range nums {
		b.WriteByte(' ')
		b.WriteString(FormatNumber(n))
	}
}

func writeFlag(b *strings.Builder, f bool) {
	if f {
		b.WriteString(" 1")
		return
	}
	b.WriteString(" 0")
}

// FormatNumber prints a coordinate with at most 4 decimals and no trailing zeros.
func FormatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', 4, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" || s == "" {
		return "0"
	}
	return s
}
