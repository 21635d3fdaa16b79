package selection

import (
	"github.com/wadjakorntonsri/committee-site/pkg/core/domain"
)

// DocumentTabs are the tabs offered on the documents listing.
var DocumentTabs = []domain.TabOption{
	{ID: domain.TabAll, Label: "All"},
	documentTab(domain.DocumentProtocols),
	documentTab(domain.DocumentLaws),
	documentTab(domain.DocumentTemplates),
	documentTab(domain.DocumentArchive),
}

func documentTab(c domain.DocumentCategory) domain.TabOption {
	return domain.TabOption{ID: string(c), Label: c.Label()}
}

func DocumentPredicates(state domain.FilterState) []Predicate[domain.Document] {
	var preds []Predicate[domain.Document]
	if state.Tab != domain.TabAll && state.Tab != "" {
		category := domain.DocumentCategory(state.Tab)
		preds = append(preds, func(d domain.Document) bool { return d.Category == category })
	}
	preds = append(preds, MemberPredicate(state.Years, func(d domain.Document) string { return d.Year })...)
	preds = append(preds, MemberPredicate(state.Formats, func(d domain.Document) domain.Format { return d.Format })...)
	return append(preds, QueryPredicate[domain.Document](state.Query)...)
}

func SelectDocuments(docs []domain.Document, state domain.FilterState) Result[domain.Document] {
	return Apply(docs, DocumentPredicates(state), state.Visible)
}

// FeaturedDocuments is the highlighted section, shown only on the unfiltered "all" tab.
func FeaturedDocuments(docs []domain.Document, state domain.FilterState) []domain.Document {
	if (state.Tab != domain.TabAll && state.Tab != "") || state.Query != "" {
		return nil
	}
	return Filter(docs, []Predicate[domain.Document]{func(d domain.Document) bool { return d.Featured }})
}

// FindDocument looks a document up by id.
func FindDocument(docs []domain.Document, id string) (domain.Document, bool) {
	for _, d := range docs {
		if d.ID == id {
			return d, true
		}
	}
	return domain.Document{}, false
}

// MonthGroup is one calendar month bucket of a sorted sequence.
type MonthGroup[T any] struct {
	Month string `json:"month"`
	Label string `json:"label"`
	Items []T    `json:"items"`
}

// GroupByMonth re-buckets an already sorted sequence by calendar month and
// year. Buckets appear in order of first occurrence and keep the sequence's
// internal order.
func GroupByMonth[T domain.Searchable](items []T) []MonthGroup[T] {
	var groups []MonthGroup[T]
	index := make(map[string]int)
	for _, item := range items {
		d := item.RecordDate()
		key := d.MonthKey()
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, MonthGroup[T]{Month: key, Label: d.Format("January 2006")})
		}
		groups[i].Items = append(groups[i].Items, item)
	}
	return groups
}
