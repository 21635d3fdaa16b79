package selection

import (
	"github.com/wadjakorntonsri/committee-site/pkg/core/domain"
)

// EventTabs are the tabs offered on the events listing.
var EventTabs = []domain.TabOption{
	{ID: domain.TabAll, Label: "All"},
	{ID: domain.TabUpcoming, Label: "Upcoming"},
	{ID: string(domain.CategoryMeeting), Label: domain.CategoryMeeting.Label()},
	{ID: domain.TabArchive, Label: "Archive"},
}

// EventPredicates builds the predicates of an events selection. Tabs other than
// all/upcoming/archive select a category by exact match.
func EventPredicates(state domain.FilterState, today domain.Date) []Predicate[domain.ContentRecord] {
	var preds []Predicate[domain.ContentRecord]
	switch state.Tab {
	case domain.TabAll, "":
	case domain.TabUpcoming:
		preds = append(preds, func(r domain.ContentRecord) bool { return !r.Date.Before(today) })
	case domain.TabArchive:
		preds = append(preds, func(r domain.ContentRecord) bool { return r.Date.Before(today) })
	default:
		category := domain.Category(state.Tab)
		preds = append(preds, func(r domain.ContentRecord) bool { return r.Category == category })
	}
	return append(preds, QueryPredicate[domain.ContentRecord](state.Query)...)
}

// SelectEvents is the events listing: filter, newest first, truncate.
func SelectEvents(records []domain.ContentRecord, state domain.FilterState, today domain.Date) Result[domain.ContentRecord] {
	return Apply(records, EventPredicates(state, today), state.Visible)
}

// LatestNews returns the n most recent records by calendar date.
func LatestNews(records []domain.ContentRecord, n int) []domain.ContentRecord {
	return Apply(records, nil, n).Items
}

// FindRecord looks a record up by id.
func FindRecord(records []domain.ContentRecord, id string) (domain.ContentRecord, bool) {
	for _, r := range records {
		if r.ID == id {
			return r, true
		}
	}
	return domain.ContentRecord{}, false
}
