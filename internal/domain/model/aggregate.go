package model

// Aggregate is one grouped, summed value keyed by an entity
// (project, skill, technology, exercise).
type Aggregate struct {
	Key   string  `json:"key"`
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Count int     `json:"count"`
}

// AuditAggregate holds audit totals and the formatted up/down ratio.
// Ratio is a two-decimal string, "∞", or "0.00".
type AuditAggregate struct {
	Up    float64 `json:"up"`
	Down  float64 `json:"down"`
	Ratio string  `json:"ratio"`
}

// PassFail summarizes graded attempts.
type PassFail struct {
	Passed         int    `json:"passed"`
	Failed         int    `json:"failed"`
	Total          int    `json:"total"`
	PassPercentage string `json:"pass_percentage"`
}

// Exercise is the attempt aggregate of one exercise.
type Exercise struct {
	Aggregate
	Passed bool `json:"passed"`
}

// Attempts returns the number of graded attempts.
func (e Exercise) Attempts() int { return e.Count }

// Technology summarizes projects classified under one technology.
type Technology struct {
	Name      string  `json:"name"`
	Completed int     `json:"completed"`
	Total     int     `json:"total"`
	XP        float64 `json:"xp"`
}
