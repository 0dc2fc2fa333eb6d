package aggregate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/okian/xpdash/internal/domain/model"
)

// percentScale converts a pass fraction to a percentage.
var percentScale = decimal.NewFromInt(100)

// PassFail counts passed (grade > 0) and failed (grade == 0) attempts.
// Grades below zero count toward Total only.
func PassFail(progress []model.ProgressRecord) model.PassFail {
	pf := model.PassFail{Total: len(progress), PassPercentage: "0.0"}
	for _, p := range progress {
		switch {
		case p.Passed():
			pf.Passed++
		case p.Failed():
			pf.Failed++
		}
	}
	if pf.Total > 0 {
		pct := decimal.NewFromInt(int64(pf.Passed)).
			Mul(percentScale).
			Div(decimal.NewFromInt(int64(pf.Total)))
		pf.PassPercentage = pct.StringFixed(1)
	}
	return pf
}

// ExerciseKey groups attempts by exercise object id.
func ExerciseKey(p model.ProgressRecord) (string, bool) {
	return strconv.FormatInt(p.ObjectID, 10), true
}

// ExerciseLabel returns the object name or "Exercise {id}".
func ExerciseLabel(p model.ProgressRecord) string {
	if name := strings.TrimSpace(p.ObjectName); name != "" {
		return name
	}
	return fmt.Sprintf("Exercise %d", p.ObjectID)
}

// Exercises counts attempts per exercise, most attempted first.
// An exercise is passed when any of its attempts passed.
func Exercises(progress []model.ProgressRecord) []model.Exercise {
	attempts := By(progress, ExerciseKey, ExerciseLabel, func(model.ProgressRecord) float64 { return 1 })

	passed := make(map[string]bool, len(attempts))
	for _, p := range progress {
		if p.Passed() {
			k, _ := ExerciseKey(p)
			passed[k] = true
		}
	}

	out := make([]model.Exercise, len(attempts))
	for i, a := range attempts {
		out[i] = model.Exercise{Aggregate: a, Passed: passed[a.Key]}
	}
	return out
}

// TopExercises returns at most n leading exercises. n <= 0 keeps everything.
func TopExercises(list []model.Exercise, n int) []model.Exercise {
	if n <= 0 || n > len(list) {
		n = len(list)
	}
	out := make([]model.Exercise, n)
	copy(out, list[:n])
	return out
}
