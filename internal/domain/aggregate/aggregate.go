// Package aggregate groups flat record lists into ordered aggregates.
//
// Pipeline: group (first-seen order) → reduce → stable sort by value desc → caller-side Top.
// Truncation is never applied here, so totals computed from the full list are
// unaffected by display limits.
package aggregate

import (
	"math"
	"sort"

	"github.com/okian/xpdash/internal/domain/model"
)

// KeyFunc extracts the grouping key of a record. Returning ok=false excludes the record.
type KeyFunc[R any] func(R) (key string, ok bool)

// LabelFunc returns the display label of a record; "" means no name is present.
type LabelFunc[R any] func(R) string

// ValueFunc returns the numeric contribution of a record.
type ValueFunc[R any] func(R) float64

// Reducer folds a record value into the running group value.
// first is true for the first record of a group.
type Reducer func(acc, v float64, first bool) float64

// Sum adds values.
func Sum(acc, v float64, _ bool) float64 { return acc + v }

// Max keeps the largest value.
func Max(acc, v float64, first bool) float64 {
	if first || v > acc {
		return v
	}
	return acc
}

// By groups records by key, sums values per group and sorts by value descending.
// Ties keep the order in which keys were first seen.
func By[R any](records []R, key KeyFunc[R], label LabelFunc[R], value ValueFunc[R]) []model.Aggregate {
	return ByWith(records, key, label, value, Sum)
}

// ByWith is By with a caller-supplied reducer.
func ByWith[R any](records []R, key KeyFunc[R], label LabelFunc[R], value ValueFunc[R], reduce Reducer) []model.Aggregate {
	out := GroupedWith(records, key, label, value, reduce)
	SortDesc(out)
	return out
}

// Grouped groups and sums like By but keeps first-seen order.
func Grouped[R any](records []R, key KeyFunc[R], label LabelFunc[R], value ValueFunc[R]) []model.Aggregate {
	return GroupedWith(records, key, label, value, Sum)
}

// GroupedWith groups with a caller-supplied reducer, keeping first-seen order.
func GroupedWith[R any](records []R, key KeyFunc[R], label LabelFunc[R], value ValueFunc[R], reduce Reducer) []model.Aggregate {
	if len(records) == 0 || key == nil {
		return []model.Aggregate{}
	}
	if reduce == nil {
		reduce = Sum
	}

	index := make(map[string]int)
	out := make([]model.Aggregate, 0)

	for _, r := range records {
		k, ok := key(r)
		if !ok {
			continue
		}
		v := 0.0
		if value != nil {
			v = finite(value(r))
		}

		i, seen := index[k]
		if !seen {
			lbl := ""
			if label != nil {
				lbl = label(r)
			}
			if lbl == "" {
				lbl = k
			}
			index[k] = len(out)
			out = append(out, model.Aggregate{
				Key:   k,
				Label: lbl,
				Value: reduce(0, v, true),
				Count: 1,
			})
			continue
		}
		out[i].Value = reduce(out[i].Value, v, false)
		out[i].Count++
	}
	return out
}

// SortDesc orders aggregates by value descending, stable on ties.
func SortDesc(list []model.Aggregate) {
	sort.SliceStable(list, func(i, j int) bool { return list[i].Value > list[j].Value })
}

// Top returns at most n leading aggregates. n <= 0 keeps everything.
// The result never aliases the input.
func Top(list []model.Aggregate, n int) []model.Aggregate {
	if n <= 0 || n > len(list) {
		n = len(list)
	}
	out := make([]model.Aggregate, n)
	copy(out, list[:n])
	return out
}

// Total sums the values of all aggregates.
func Total(list []model.Aggregate) float64 {
	var total float64
	for _, a := range list {
		total += a.Value
	}
	return total
}

// SumOf sums value over records, treating non-finite values as 0.
func SumOf[R any](records []R, value ValueFunc[R]) float64 {
	var total float64
	for _, r := range records {
		total += finite(value(r))
	}
	return total
}

// finite maps NaN and ±Inf to 0.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
