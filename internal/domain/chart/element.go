// Package chart composes aggregates, ratio and geometry into drawable scenes.
//
// A Chart is a flat list of primitive elements with concrete coordinates. It
// carries no markup; adapters decide how to draw it.
package chart

import "github.com/okian/xpdash/internal/domain/geometry"

// Anchor is the horizontal alignment of a text element.
type Anchor string

// Text anchors.
const (
	AnchorStart  Anchor = "start"
	AnchorMiddle Anchor = "middle"
	AnchorEnd    Anchor = "end"
)

// Style holds paint attributes shared by all shapes.
type Style struct {
	Fill        string  `json:"fill,omitempty"`
	Stroke      string  `json:"stroke,omitempty"`
	StrokeWidth float64 `json:"stroke_width,omitempty"`
	Linecap     string  `json:"linecap,omitempty"`
	DashArray   float64 `json:"dash_array,omitempty"`
	DashOffset  float64 `json:"dash_offset,omitempty"`
	Class       string  `json:"class,omitempty"`
	// Title is shown as a tooltip.
	Title string `json:"title,omitempty"`
}

// Element is one drawable primitive: Shape, Rect, Circle, Line or Text.
type Element interface {
	element()
}

// Shape is an arbitrary path.
type Shape struct {
	D geometry.Path
	Style
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y, Width, Height float64
	Style
}

// Circle is a filled or stroked circle.
type Circle struct {
	CX, CY, R float64
	Style
}

// Line is a straight segment.
type Line struct {
	X1, Y1, X2, Y2 float64
	Style
}

// Text is a single-line label. Middle vertically centres the text on Y.
type Text struct {
	X, Y   float64
	Value  string
	Anchor Anchor
	Middle bool
	// Rotate is applied around (X, Y) in degrees.
	Rotate float64
	Class  string
}

func (Shape) element()  {}
func (Rect) element()   {}
func (Circle) element() {}
func (Line) element()   {}
func (Text) element()   {}

// Chart is a complete scene in a Width x Height view box.
type Chart struct {
	Name     string
	Title    string
	Width    float64
	Height   float64
	Elements []Element
}

// Empty reports whether the chart has nothing to draw.
func (c Chart) Empty() bool { return len(c.Elements) == 0 }

func (c *Chart) add(e ...Element) { c.Elements = append(c.Elements, e...) }
