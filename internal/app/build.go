package service

import (
	"github.com/okian/xpdash/internal/adapters/graphql"
	"github.com/okian/xpdash/internal/config"
	"github.com/okian/xpdash/internal/domain/aggregate"
	"github.com/okian/xpdash/internal/domain/chart"
	"github.com/okian/xpdash/internal/domain/format"
	"github.com/okian/xpdash/internal/domain/model"
	"github.com/okian/xpdash/internal/domain/ratio"
)

// Snapshot is every record fetched for one dashboard.
// Optional lists that fell back to their default are empty and named in Warnings.
type Snapshot struct {
	User       model.User
	Projects   []model.TransactionRecord
	XP         []model.TransactionRecord
	Audits     []model.TransactionRecord
	Skills     []model.TransactionRecord
	Piscine    []model.ProgressRecord
	Technology graphql.TechnologyData
	Warnings   []string
}

// Settings control how a Snapshot is summarized.
// Limits of zero keep every entry.
type Settings struct {
	PathSuffix      string
	TopProjects     int
	TopSkills       int
	TopExercises    int
	TopTechnologies int
	LatestProjects  int
	LabelMaxChars   int
	Formatter       format.Formatter
	Classifier      *aggregate.Classifier
}

// DefaultSettings mirrors the configuration defaults.
func DefaultSettings() Settings {
	s, _ := SettingsFromConfig(config.New())
	return s
}

// SettingsFromConfig builds Settings from cfg.
func SettingsFromConfig(cfg *config.Config) (Settings, error) {
	f, err := format.New(cfg.XPFormat)
	if err != nil {
		return Settings{}, err
	}
	return Settings{
		PathSuffix:      cfg.XPPathSuffix,
		TopProjects:     cfg.TopProjects,
		TopSkills:       cfg.TopSkills,
		TopExercises:    cfg.TopExercises,
		TopTechnologies: cfg.TopTechnologies,
		LatestProjects:  cfg.LatestProjects,
		LabelMaxChars:   cfg.LabelMaxChars,
		Formatter:       f,
		Classifier:      aggregate.NewClassifier(nil),
	}.withDefaults(), nil
}

func (s Settings) withDefaults() Settings {
	if s.Formatter == nil {
		s.Formatter = format.KB{}
	}
	if s.Classifier == nil {
		s.Classifier = aggregate.NewClassifier(nil)
	}
	return s
}

// Build runs the analytics engine over snap. It performs no I/O.
func Build(snap Snapshot, settings Settings) (model.Dashboard, chart.Set) {
	settings = settings.withDefaults()
	f := settings.Formatter

	projects := aggregate.ProjectXP(snap.Projects)
	top := aggregate.Top(projects, settings.TopProjects)
	latest := aggregate.Top(aggregate.LatestProjects(snap.Projects), settings.LatestProjects)
	totalXP := aggregate.TotalXP(snap.XP, settings.PathSuffix)

	up, down := aggregate.AuditTotals(snap.Audits, settings.PathSuffix)
	audit := ratio.ComputeAuditRatio(up, down)
	gauge := ratio.GaugeFillFromString(audit.Ratio)

	skills := aggregate.Top(aggregate.Skills(snap.Skills), settings.TopSkills)
	passFail := aggregate.PassFail(snap.Piscine)
	exercises := aggregate.TopExercises(aggregate.Exercises(snap.Piscine), settings.TopExercises)
	techs := aggregate.TopTechnologies(
		settings.Classifier.Technologies(snap.Technology.Progress, snap.Technology.Transactions),
		settings.TopTechnologies,
	)

	warnings := append([]string{}, snap.Warnings...)

	d := model.Dashboard{
		User:        snap.User,
		DisplayName: snap.User.DisplayName(),
		XP:          model.XPTotal{Amount: totalXP, Formatted: f.XP(totalXP)},
		Audit: model.AuditSummary{
			AuditAggregate: audit,
			UpFormatted:    f.XP(up),
			DownFormatted:  f.XP(down),
			GaugeFraction:  gauge.Fraction,
			Band:           string(gauge.Band),
		},
		Skills:       skills,
		Projects:     entries(projects, f),
		TopProjects:  entries(top, f),
		Latest:       entries(latest, f),
		PassFail:     passFail,
		Exercises:    exercises,
		Technologies: techs,
		Warnings:     warnings,
	}

	charts := chart.Compose(chart.Inputs{
		Projects:     projects,
		TopProjects:  top,
		Latest:       latest,
		TotalXP:      totalXP,
		Audit:        audit,
		PassFail:     passFail,
		Exercises:    exercises,
		Technologies: techs,
	}, f, settings.LabelMaxChars)

	return d, charts
}

func entries(list []model.Aggregate, f format.Formatter) []model.ProjectEntry {
	out := make([]model.ProjectEntry, len(list))
	for i, a := range list {
		out[i] = model.ProjectEntry{Aggregate: a, Formatted: f.XP(a.Value)}
	}
	return out
}
