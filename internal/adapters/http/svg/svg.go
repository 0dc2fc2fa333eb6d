// Package svg draws chart scenes as standalone SVG documents.
package svg

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/okian/xpdash/internal/domain/chart"
	"github.com/okian/xpdash/internal/domain/geometry"
)

// ContentType is the media type of a rendered chart.
const ContentType = "image/svg+xml"

// NoData is drawn in place of a chart with no elements.
const NoData = "No data"

// Render returns c as an SVG document.
func Render(c chart.Chart) []byte {
	var b bytes.Buffer
	_ = Write(&b, c)
	return b.Bytes()
}

// Write encodes c as an SVG document to w.
func Write(w io.Writer, c chart.Chart) error {
	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s"`,
		num(c.Width), num(c.Height), num(c.Width), num(c.Height))
	if c.Name != "" {
		b.WriteString(` class="chart chart-`)
		escape(&b, c.Name)
		b.WriteString(`"`)
	}
	b.WriteString(` role="img">`)
	if c.Title != "" {
		b.WriteString("<title>")
		escape(&b, c.Title)
		b.WriteString("</title>")
	}

	if c.Empty() {
		writeText(&b, chart.Text{X: c.Width / 2, Y: c.Height / 2, Value: NoData, Anchor: chart.AnchorMiddle, Middle: true, Class: "no-data"})
	}
	for _, e := range c.Elements {
		writeElement(&b, e)
	}
	b.WriteString("</svg>")

	_, err := io.WriteString(w, b.String())
	return err
}

func writeElement(b *strings.Builder, e chart.Element) {
	switch v := e.(type) {
	case chart.Shape:
		if v.D.Empty() {
			return
		}
		b.WriteString(`<path d="`)
		b.WriteString(v.D.String())
		b.WriteString(`"`)
		closeShape(b, "path", v.Style)
	case chart.Rect:
		fmt.Fprintf(b, `<rect x="%s" y="%s" width="%s" height="%s"`, num(v.X), num(v.Y), num(v.Width), num(v.Height))
		closeShape(b, "rect", v.Style)
	case chart.Circle:
		fmt.Fprintf(b, `<circle cx="%s" cy="%s" r="%s"`, num(v.CX), num(v.CY), num(v.R))
		closeShape(b, "circle", v.Style)
	case chart.Line:
		fmt.Fprintf(b, `<line x1="%s" y1="%s" x2="%s" y2="%s"`, num(v.X1), num(v.Y1), num(v.X2), num(v.Y2))
		closeShape(b, "line", v.Style)
	case chart.Text:
		writeText(b, v)
	}
}

// closeShape writes the style attributes and closes the element.
// A title becomes a child element so browsers show it as a tooltip.
func closeShape(b *strings.Builder, tag string, s chart.Style) {
	fill := s.Fill
	if fill == "" {
		fill = "none"
	}
	attr(b, "fill", fill)
	attr(b, "stroke", s.Stroke)
	if s.StrokeWidth > 0 {
		attr(b, "stroke-width", num(s.StrokeWidth))
	}
	attr(b, "stroke-linecap", s.Linecap)
	if s.DashArray > 0 {
		attr(b, "stroke-dasharray", num(s.DashArray))
		attr(b, "stroke-dashoffset", num(s.DashOffset))
	}
	attr(b, "class", s.Class)
	if s.Title == "" {
		b.WriteString("/>")
		return
	}
	b.WriteString("><title>")
	escape(b, s.Title)
	b.WriteString("</title></")
	b.WriteString(tag)
	b.WriteString(">")
}

func writeText(b *strings.Builder, t chart.Text) {
	fmt.Fprintf(b, `<text x="%s" y="%s"`, num(t.X), num(t.Y))
	if t.Anchor != "" && t.Anchor != chart.AnchorStart {
		attr(b, "text-anchor", string(t.Anchor))
	}
	if t.Middle {
		attr(b, "dominant-baseline", "middle")
	}
	if t.Rotate != 0 {
		attr(b, "transform", fmt.Sprintf("rotate(%s %s %s)", num(t.Rotate), num(t.X), num(t.Y)))
	}
	attr(b, "class", t.Class)
	b.WriteString(">")
	escape(b, t.Value)
	b.WriteString("</text>")
}

func attr(b *strings.Builder, name, value string) {
	if value == "" {
		return
	}
	b.WriteString(" ")
	b.WriteString(name)
	b.WriteString(`="`)
	escape(b, value)
	b.WriteString(`"`)
}

func escape(b *strings.Builder, s string) {
	_ = xml.EscapeText(b, []byte(s))
}

func num(v float64) string { return geometry.FormatNumber(v) }
