package aggregate

import (
	"sort"
	"strings"

	"github.com/okian/xpdash/internal/domain/model"
)

// TechnologyRule maps one technology to the keywords that identify it.
type TechnologyRule struct {
	Name     string
	Keywords []string
}

// DefaultTechnologies is the ordered keyword table. Order matters: the first
// rule with a matching keyword wins.
var DefaultTechnologies = []TechnologyRule{ //nolint:gochecknoglobals // read-only table
	{Name: "GO", Keywords: []string{"go", "golang"}},
	{Name: "JS", Keywords: []string{"js", "javascript", "node"}},
	{Name: "HTML", Keywords: []string{"html"}},
	{Name: "CSS", Keywords: []string{"css"}},
	{Name: "PYTHON", Keywords: []string{"python"}},
	{Name: "DJANGO", Keywords: []string{"django"}},
	{Name: "SQL", Keywords: []string{"sql"}},
	{Name: "C", Keywords: []string{"c", "c-language"}},
	{Name: "CPP", Keywords: []string{"cpp", "c++"}},
	{Name: "DOCKER", Keywords: []string{"docker"}},
	{Name: "UNIX", Keywords: []string{"unix", "shell", "bash"}},
	{Name: "GIT", Keywords: []string{"git"}},
}

// Classifier assigns a technology to a project from its name and path.
type Classifier struct {
	rules []TechnologyRule
}

// NewClassifier builds a classifier over rules; nil or empty rules use DefaultTechnologies.
// Keywords are lower-cased; the rule order is preserved.
func NewClassifier(rules []TechnologyRule) *Classifier {
	if len(rules) == 0 {
		rules = DefaultTechnologies
	}
	c := &Classifier{rules: make([]TechnologyRule, 0, len(rules))}
	for _, r := range rules {
		kws := make([]string, 0, len(r.Keywords))
		for _, kw := range r.Keywords {
			if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
				kws = append(kws, kw)
			}
		}
		c.rules = append(c.rules, TechnologyRule{Name: strings.ToUpper(r.Name), Keywords: kws})
	}
	return c
}

// Classify returns the first technology whose keywords occur in name or path.
func (c *Classifier) Classify(name, path string) (string, bool) {
	combined := strings.ToLower(name + " " + path)
	for _, r := range c.rules {
		for _, kw := range r.Keywords {
			if strings.Contains(combined, kw) {
				return r.Name, true
			}
		}
	}
	return "", false
}

// TransactionKey groups project transactions by technology.
func (c *Classifier) TransactionKey(t model.TransactionRecord) (string, bool) {
	if t.ObjectType != "" && t.ObjectType != model.ObjectTypeProject {
		return "", false
	}
	return c.Classify(t.ObjectName, t.Path)
}

// TechnologyXP aggregates xp per technology, highest first.
// Transactions matching no keyword are excluded.
func (c *Classifier) TechnologyXP(transactions []model.TransactionRecord) []model.Aggregate {
	key := func(t model.TransactionRecord) (string, bool) {
		if t.Type != model.TypeXP {
			return "", false
		}
		return c.TransactionKey(t)
	}
	return By(transactions, key, nil, Amount)
}

// techStats collects distinct project ids per technology.
type techStats struct {
	name      string
	all       map[int64]struct{}
	completed map[int64]struct{}
	xp        float64
}

// Technologies summarizes projects per technology: distinct projects seen,
// distinct projects completed (grade > 0) and xp earned. The result is ordered
// by completed projects descending; ties keep first-seen order.
func (c *Classifier) Technologies(progress []model.ProgressRecord, transactions []model.TransactionRecord) []model.Technology {
	index := make(map[string]int)
	stats := make([]*techStats, 0)

	get := func(name string) *techStats {
		if i, ok := index[name]; ok {
			return stats[i]
		}
		s := &techStats{name: name, all: map[int64]struct{}{}, completed: map[int64]struct{}{}}
		index[name] = len(stats)
		stats = append(stats, s)
		return s
	}

	for _, p := range progress {
		if p.ObjectType != "" && p.ObjectType != model.ObjectTypeProject {
			continue
		}
		tech, ok := c.Classify(p.ObjectName, p.Path)
		if !ok {
			continue
		}
		s := get(tech)
		s.all[p.ObjectID] = struct{}{}
		if p.Passed() {
			s.completed[p.ObjectID] = struct{}{}
		}
	}

	for _, t := range transactions {
		tech, ok := c.TransactionKey(t)
		if !ok {
			continue
		}
		s := get(tech)
		s.all[t.ObjectID] = struct{}{}
		if t.Type == model.TypeXP {
			s.xp += finite(t.Amount)
		}
	}

	out := make([]model.Technology, len(stats))
	for i, s := range stats {
		out[i] = model.Technology{
			Name:      s.name,
			Completed: len(s.completed),
			Total:     len(s.all),
			XP:        s.xp,
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Completed > out[j].Completed })
	return out
}

// TopTechnologies returns at most n leading technologies. n <= 0 keeps everything.
func TopTechnologies(list []model.Technology, n int) []model.Technology {
	if n <= 0 || n > len(list) {
		n = len(list)
	}
	out := make([]model.Technology, n)
	copy(out, list[:n])
	return out
}

// TechnologyAggregates converts technologies into aggregates valued by xp,
// keeping the input order. Count carries the number of distinct projects.
func TechnologyAggregates(list []model.Technology) []model.Aggregate {
	out := make([]model.Aggregate, len(list))
	for i, t := range list {
		out[i] = model.Aggregate{Key: t.Name, Label: t.Name, Value: t.XP, Count: t.Total}
	}
	return out
}
