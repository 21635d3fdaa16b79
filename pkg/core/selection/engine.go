// Package selection turns a full content collection plus a FilterState into the
// ordered, length-bounded view shown to the user. Every function here is pure.
package selection

import (
	"slices"

	"github.com/wadjakorntonsri/committee-site/pkg/core/domain"
)

// Predicate is one filter condition. A record is selected when all predicates hold.
type Predicate[T any] func(T) bool

// Result is the visible slice of a selection.
type Result[T any] struct {
	Items   []T  `json:"data"`
	Total   int  `json:"total"`
	Visible int  `json:"visible"`
	HasMore bool `json:"has_more"`
}

// Apply filters items by every predicate, sorts the matches by date (most
// recent first, ties keep collection order) and truncates to visible.
func Apply[T domain.Searchable](items []T, preds []Predicate[T], visible int) Result[T] {
	matched := Filter(items, preds)
	SortByDateDesc(matched)
	return Truncate(matched, visible)
}

// Filter returns a new slice with the items satisfying every predicate.
func Filter[T any](items []T, preds []Predicate[T]) []T {
	out := make([]T, 0, len(items))
next:
	for _, item := range items {
		for _, p := range preds {
			if !p(item) {
				continue next
			}
		}
		out = append(out, item)
	}
	return out
}

// SortByDateDesc orders records by calendar date, newest first. The sort is
// stable so records sharing a date keep their relative order.
func SortByDateDesc[T domain.Searchable](items []T) {
	slices.SortStableFunc(items, func(a, b T) int {
		return b.RecordDate().Compare(a.RecordDate().Time)
	})
}

// Truncate keeps the first min(visible, len(items)) items.
func Truncate[T any](items []T, visible int) Result[T] {
	if visible < 0 {
		visible = 0
	}
	n := min(visible, len(items))
	return Result[T]{
		Items:   items[:n],
		Total:   len(items),
		Visible: n,
		HasMore: n < len(items),
	}
}

// QueryPredicate matches a case-insensitive substring of title or description.
// An empty query adds no restriction.
func QueryPredicate[T domain.Searchable](query string) []Predicate[T] {
	if query == "" {
		return nil
	}
	return []Predicate[T]{func(item T) bool { return item.Matches(query) }}
}

// MemberPredicate restricts a facet to the selected values. An empty selection
// means no restriction, not "match nothing".
func MemberPredicate[T any, V comparable](selected []V, field func(T) V) []Predicate[T] {
	if len(selected) == 0 {
		return nil
	}
	set := make(map[V]struct{}, len(selected))
	for _, v := range selected {
		set[v] = struct{}{}
	}
	return []Predicate[T]{func(item T) bool {
		_, ok := set[field(item)]
		return ok
	}}
}
