package chart

import (
	"github.com/okian/xpdash/internal/domain/format"
	"github.com/okian/xpdash/internal/domain/model"
)

// Names lists every chart in display order.
var Names = []string{
	NameProjectsPie,
	NameAuditGauge,
	NameLatestProjects,
	NameProjectBars,
	NameExercises,
	NameTechnologies,
	NamePassFail,
}

// Inputs are the aggregates the dashboard charts are drawn from.
type Inputs struct {
	// Projects is the untruncated project list for the pie.
	Projects     []model.Aggregate
	TopProjects  []model.Aggregate
	Latest       []model.Aggregate
	TotalXP      float64
	Audit        model.AuditAggregate
	PassFail     model.PassFail
	Exercises    []model.Exercise
	Technologies []model.Technology
}

// Set is the collection of dashboard charts in Names order.
type Set []Chart

// Compose builds every dashboard chart.
func Compose(in Inputs, f format.Formatter, labelMax int) Set {
	return Set{
		ProjectPie(in.Projects, f),
		AuditGauge(in.Audit),
		LatestDotPlot(in.Latest, in.TotalXP, f, labelMax),
		ProjectBars(in.TopProjects, f, labelMax),
		ExerciseBars(in.Exercises),
		TechnologyBars(in.Technologies, f),
		PassFailDonut(in.PassFail),
	}
}

// Get returns the chart with the given name.
func (s Set) Get(name string) (Chart, bool) {
	for _, c := range s {
		if c.Name == name {
			return c, true
		}
	}
	return Chart{}, false
}

// Known reports whether name is a chart this package can draw.
func Known(name string) bool {
	for _, n := range Names {
		if n == name {
			return true
		}
	}
	return false
}
