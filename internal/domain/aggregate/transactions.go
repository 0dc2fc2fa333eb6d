package aggregate

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/okian/xpdash/internal/domain/model"
)

// ProjectKey groups xp transactions by project object id.
// Records of another type, or attached to a non-project object, are excluded.
func ProjectKey(t model.TransactionRecord) (string, bool) {
	if t.Type != model.TypeXP {
		return "", false
	}
	if t.ObjectType != "" && t.ObjectType != model.ObjectTypeProject {
		return "", false
	}
	return strconv.FormatInt(t.ObjectID, 10), true
}

// ProjectLabel returns the object name or "Project {id}".
func ProjectLabel(t model.TransactionRecord) string {
	if name := strings.TrimSpace(t.ObjectName); name != "" {
		return name
	}
	return fmt.Sprintf("Project %d", t.ObjectID)
}

// Amount returns the transaction amount.
func Amount(t model.TransactionRecord) float64 { return t.Amount }

// ProjectXP aggregates xp per project, highest first.
func ProjectXP(transactions []model.TransactionRecord) []model.Aggregate {
	return By(transactions, ProjectKey, ProjectLabel, Amount)
}

// LatestProjects aggregates xp per project ordered by the most recent grant.
// Records without a timestamp sort last; otherwise input order is kept.
func LatestProjects(transactions []model.TransactionRecord) []model.Aggregate {
	ordered := make([]model.TransactionRecord, len(transactions))
	copy(ordered, transactions)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i].CreatedAt, ordered[j].CreatedAt
		if a.IsZero() || b.IsZero() {
			return !a.IsZero() && b.IsZero()
		}
		return a.After(b)
	})
	return Grouped(ordered, ProjectKey, ProjectLabel, Amount)
}

// MatchesPath reports whether path ends with suffix, ignoring case.
// An empty suffix matches everything.
func MatchesPath(path, suffix string) bool {
	if suffix == "" {
		return true
	}
	return strings.HasSuffix(strings.ToLower(path), strings.ToLower(suffix))
}

// TotalXP sums xp amounts whose path matches pathSuffix.
func TotalXP(transactions []model.TransactionRecord, pathSuffix string) float64 {
	var total float64
	for _, t := range transactions {
		if t.Type == model.TypeXP && MatchesPath(t.Path, pathSuffix) {
			total += finite(t.Amount)
		}
	}
	return total
}

// AuditTotals sums audit points given (up) and received (down) whose path matches pathSuffix.
func AuditTotals(transactions []model.TransactionRecord, pathSuffix string) (up, down float64) {
	for _, t := range transactions {
		if !MatchesPath(t.Path, pathSuffix) {
			continue
		}
		switch t.Type {
		case model.TypeAuditUp:
			up += finite(t.Amount)
		case model.TypeAuditDown:
			down += finite(t.Amount)
		}
	}
	return up, down
}

// SkillKey groups skill transactions by their type.
func SkillKey(t model.TransactionRecord) (string, bool) {
	if !strings.HasPrefix(t.Type, model.SkillPrefix) {
		return "", false
	}
	return t.Type, true
}

// SkillLabel turns "skill_back-end" into "back end".
func SkillLabel(t model.TransactionRecord) string {
	name := strings.TrimPrefix(t.Type, model.SkillPrefix)
	return strings.ReplaceAll(name, "-", " ")
}

// Skills keeps the highest amount per skill type, highest first.
func Skills(transactions []model.TransactionRecord) []model.Aggregate {
	return ByWith(transactions, SkillKey, SkillLabel, Amount, Max)
}
