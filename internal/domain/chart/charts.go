package chart

import (
	"fmt"
	"math"

	"github.com/okian/xpdash/internal/domain/format"
	"github.com/okian/xpdash/internal/domain/geometry"
	"github.com/okian/xpdash/internal/domain/layout"
	"github.com/okian/xpdash/internal/domain/model"
	"github.com/okian/xpdash/internal/domain/ratio"
)

// Chart names, also used as file and route names.
const (
	NameProjectsPie    = "projects-pie"
	NameAuditGauge     = "audit-gauge"
	NameLatestProjects = "latest-projects"
	NameProjectBars    = "project-bars"
	NameExercises      = "exercises"
	NameTechnologies   = "technologies"
	NamePassFail       = "pass-fail"
)

const (
	colorTrack = "#e0e0e0"
	colorAxis  = "#999"
	colorPass  = "#10b981"
	colorFail  = "#ef4444"

	linecapRound = "round"
)

// ProjectPie draws every project as a pie slice sized by its share of XP.
func ProjectPie(projects []model.Aggregate, f format.Formatter) Chart {
	const (
		size   = 180.0
		radius = 50.0
	)
	c := Chart{Name: NameProjectsPie, Title: "XP by project", Width: size, Height: size}
	center := size / 2

	palette := layout.Palette{Step: layout.EvenStep(len(projects)), Saturation: 70, Lightness: 60}
	for _, s := range geometry.PieLayout(projects, 0, radius) {
		d := s.Path(center, center)
		if d.Empty() {
			continue
		}
		c.add(Shape{D: d, Style: Style{
			Fill:  palette.Color(s.Index).String(),
			Class: "pie-segment",
			Title: fmt.Sprintf("%s: %s (%.1f%%)", s.Label, f.XP(s.Value), s.Percentage),
		}})
	}
	return c
}

// AuditGauge draws a half-circle gauge filled by the audit ratio and coloured by its band.
func AuditGauge(audit model.AuditAggregate) Chart {
	const (
		size        = 190.0
		radius      = 70.0
		strokeWidth = 20.0
	)
	c := Chart{Name: NameAuditGauge, Title: "Audit ratio", Width: size, Height: size}
	center := size / 2

	fill := ratio.GaugeFillFromString(audit.Ratio)
	arcs := geometry.Gauge(center, center, radius, fill.Fraction)

	c.add(Shape{D: arcs.Background, Style: Style{
		Stroke: colorTrack, StrokeWidth: strokeWidth, Linecap: linecapRound,
	}})
	if !arcs.Fill.Empty() {
		c.add(Shape{D: arcs.Fill, Style: Style{
			Stroke:      fill.Band.Color(),
			StrokeWidth: strokeWidth,
			Linecap:     linecapRound,
			DashArray:   arcs.DashLength,
			DashOffset:  arcs.DashOffset,
			Class:       "audit-gauge-fill",
		}})
	}
	ratioText := audit.Ratio
	if ratioText == "" {
		ratioText = ratio.Zero
	}
	c.add(Text{X: center, Y: center + 5, Value: ratioText, Anchor: AnchorMiddle, Class: "audit-gauge-text"})
	return c
}

// LatestDotPlot places the most recent projects as dots along an XP axis.
// Value labels are shown only when totalXP is positive.
func LatestDotPlot(latest []model.Aggregate, totalXP float64, f format.Formatter, labelMax int) Chart {
	const (
		padTop, padRight, padBottom, padLeft = 40.0, 40.0, 60.0, 100.0

		width     = 300.0
		minHeight = 220.0
		rowHeight = 40.0
		dotRadius = 6.0
		gridSteps = 5
	)
	n := len(latest)
	c := Chart{Name: NameLatestProjects, Title: "Latest projects", Width: width, Height: minHeight}
	if n == 0 {
		return c
	}
	height := math.Max(minHeight, float64(n)*rowHeight+padTop+padBottom)
	c.Height = height
	plotWidth := width - padLeft - padRight
	plotHeight := height - padTop - padBottom
	spacing := plotHeight / float64(n)
	maxXP := math.Max(maxValue(latest), 1)

	for i := 0; i <= n; i++ {
		y := padTop + float64(i)*spacing
		c.add(gridLine(padLeft, y, width-padRight, y, i == n))
	}
	for i := 0; i <= gridSteps; i++ {
		x := padLeft + float64(i)/gridSteps*plotWidth
		edge := i == 0 || i == gridSteps
		c.add(gridLine(x, padTop, x, height-padBottom, edge))
		if edge {
			c.add(Text{
				X: x, Y: height - padBottom + 20,
				Value:  f.XP(math.Round(maxXP / gridSteps * float64(i))),
				Anchor: AnchorMiddle, Class: "axis-label",
			})
		}
	}

	points := layout.Linear(latest, plotWidth,
		layout.WithOrigin(padLeft, padTop),
		layout.WithSpacing(spacing),
		layout.WithBandCenter(spacing/2),
		layout.WithLabelLimit(labelMax),
		layout.WithPalette(layout.Palette{BaseHue: 220, Step: layout.EvenStep(n), Saturation: 70, Lightness: 50}),
	)
	for _, p := range points {
		c.add(Circle{CX: p.X, CY: p.Y, R: dotRadius, Style: Style{
			Fill:  p.Color.String(),
			Class: "dot-plot-dot",
			Title: fmt.Sprintf("%s: %s", p.FullLabel, f.XP(p.Value)),
		}})
		c.add(Text{X: padLeft - 10, Y: p.Y, Value: p.Label, Anchor: AnchorEnd, Middle: true, Class: "project-label"})
		if totalXP > 0 {
			c.add(Text{X: p.X + dotRadius + 8, Y: p.Y, Value: f.XP(p.Value), Middle: true, Class: "dot-ratio-text"})
		}
	}

	c.add(
		Text{X: width / 2, Y: height - 10, Value: "total xp", Anchor: AnchorMiddle, Class: "axis-title"},
		Text{X: 15, Y: height / 2, Value: "project name", Anchor: AnchorMiddle, Rotate: -90, Class: "axis-title"},
	)
	return c
}

// ProjectBars draws horizontal bars for the top projects by XP.
func ProjectBars(projects []model.Aggregate, f format.Formatter, labelMax int) Chart {
	const (
		width     = 600.0
		barHeight = 30.0
		spacing   = 15.0
		barX      = 150.0
		plotLen   = 400.0
	)
	c := Chart{Name: NameProjectBars, Title: "XP earned by project", Width: width, Height: float64(len(projects)) * 50}
	points := layout.Linear(projects, plotLen,
		layout.WithOrigin(barX, 0),
		layout.WithSpacing(barHeight+spacing),
		layout.WithBandCenter(barHeight/2),
		layout.WithLabelLimit(labelMax),
		layout.WithPalette(layout.Palette{BaseHue: 220, Step: 10, Saturation: 70, Lightness: 60}),
	)
	for _, p := range points {
		c.add(
			Text{X: 0, Y: p.Y, Value: p.Label, Anchor: AnchorStart, Middle: true, Class: "bar-label"},
			Rect{X: barX, Y: p.Band, Width: p.Length, Height: barHeight, Style: Style{
				Fill: p.Color.String(), Class: "bar-fill", Title: p.FullLabel,
			}},
			Text{X: p.Length + barX + 10, Y: p.Y, Value: f.XP(p.Value), Middle: true, Class: "bar-value"},
		)
	}
	return c
}

// ExerciseBars draws a wrapped grid of vertical bars, one per exercise, sized by
// attempts and coloured by whether the exercise was eventually passed.
func ExerciseBars(exercises []model.Exercise) Chart {
	const (
		width     = 600.0
		minHeight = 400.0
		barWidth  = 30.0
		spacing   = 10.0
		originX   = 50.0
		rowHeight = 80.0
		maxBar    = 60.0
		labelMax  = 8
	)
	perRow := int(math.Floor((width - 100) / (barWidth + spacing)))
	rows := (len(exercises) + perRow - 1) / perRow
	c := Chart{
		Name: NameExercises, Title: "Exercise attempts", Width: width,
		Height: math.Max(minHeight, float64(rows)*rowHeight+20),
	}

	items := make([]model.Aggregate, len(exercises))
	for i, e := range exercises {
		items[i] = model.Aggregate{Key: e.Key, Label: e.Label, Value: float64(e.Attempts()), Count: e.Count}
	}
	points := layout.Linear(items, maxBar,
		layout.WithVertical(),
		layout.WithOrigin(originX, maxBar),
		layout.WithSpacing(barWidth+spacing),
		layout.WithBandCenter(barWidth/2),
		layout.WithWrap(perRow, rowHeight),
		layout.WithLabelLimit(labelMax),
	)
	for i, p := range points {
		fill := colorFail
		if exercises[i].Passed {
			fill = colorPass
		}
		c.add(
			Rect{X: p.Band, Y: p.Y, Width: barWidth, Height: p.Length, Style: Style{
				Fill: fill, Class: "bar-fill", Title: p.FullLabel,
			}},
			Text{X: p.X, Y: p.Base + 15, Value: fmt.Sprintf("%d", exercises[i].Attempts()), Anchor: AnchorMiddle, Class: "bar-label-small"},
			Text{X: p.X, Y: p.Base + 30, Value: p.Label, Anchor: AnchorMiddle, Class: "bar-label-tiny"},
		)
	}
	return c
}

// TechnologyBars draws horizontal bars of XP per technology with project counts.
func TechnologyBars(techs []model.Technology, f format.Formatter) Chart {
	const (
		width     = 600.0
		barHeight = 35.0
		spacing   = 10.0
		barX      = 120.0
		plotLen   = 420.0
	)
	c := Chart{Name: NameTechnologies, Title: "Technologies", Width: width, Height: float64(len(techs)) * (barHeight + spacing)}
	items := make([]model.Aggregate, len(techs))
	for i, t := range techs {
		items[i] = model.Aggregate{Key: t.Name, Label: t.Name, Value: t.XP, Count: t.Total}
	}
	points := layout.Linear(items, plotLen,
		layout.WithOrigin(barX, 0),
		layout.WithSpacing(barHeight+spacing),
		layout.WithBandCenter(barHeight/2),
		layout.WithPalette(layout.Palette{Step: 30, Saturation: 70, Lightness: 55}),
	)
	for i, p := range points {
		c.add(
			Text{X: 0, Y: p.Y, Value: p.Label, Anchor: AnchorStart, Middle: true, Class: "bar-label"},
			Rect{X: barX, Y: p.Band, Width: p.Length, Height: barHeight, Style: Style{Fill: p.Color.String(), Class: "bar-fill"}},
			Text{X: p.Length + barX + 10, Y: p.Y, Value: f.XP(p.Value), Middle: true, Class: "bar-value"},
			Text{
				X: p.Length + barX + 130, Y: p.Y, Middle: true, Class: "bar-value-small",
				Value: fmt.Sprintf("(%d/%d projects)", techs[i].Completed, techs[i].Total),
			},
		)
	}
	return c
}

// PassFailDonut draws passed and failed shares as two stroked arcs around the
// pass percentage. A zero total draws only the centre text.
func PassFailDonut(pf model.PassFail) Chart {
	const (
		size        = 200.0
		radius      = 70.0
		strokeWidth = 30.0
	)
	c := Chart{Name: NamePassFail, Title: "Pass/fail ratio", Width: size, Height: size}
	center := size / 2

	if pf.Total > 0 {
		passAngle := float64(pf.Passed) / float64(pf.Total) * 360
		failAngle := float64(pf.Failed) / float64(pf.Total) * 360
		for _, seg := range []struct {
			d     geometry.Path
			color string
			title string
		}{
			{geometry.DescribeArc(center, center, radius, 0, passAngle), colorPass, fmt.Sprintf("Passed: %d", pf.Passed)},
			{geometry.DescribeArc(center, center, radius, passAngle, passAngle+failAngle), colorFail, fmt.Sprintf("Failed: %d", pf.Failed)},
		} {
			if seg.d.Empty() {
				continue
			}
			c.add(Shape{D: seg.d, Style: Style{
				Stroke: seg.color, StrokeWidth: strokeWidth, Linecap: linecapRound,
				Class: "donut-segment", Title: seg.title,
			}})
		}
	}

	pct := pf.PassPercentage
	if pct == "" {
		pct = "0.0"
	}
	c.add(
		Text{X: center, Y: center - 10, Value: pct + "%", Anchor: AnchorMiddle, Class: "donut-center-large"},
		Text{X: center, Y: center + 15, Value: "Pass Rate", Anchor: AnchorMiddle, Class: "donut-center-small"},
	)
	return c
}

func gridLine(x1, y1, x2, y2 float64, edge bool) Line {
	l := Line{X1: x1, Y1: y1, X2: x2, Y2: y2, Style: Style{Stroke: colorTrack, StrokeWidth: 1}}
	if edge {
		l.Stroke, l.StrokeWidth = colorAxis, 2
	}
	return l
}

func maxValue(list []model.Aggregate) float64 {
	m := 0.0
	for _, a := range list {
		if a.Value > m {
			m = a.Value
		}
	}
	return m
}
