package services

import (
	"time"

	"github.com/wadjakorntonsri/committee-site/pkg/core/domain"
	"github.com/wadjakorntonsri/committee-site/pkg/core/selection"
	"github.com/wadjakorntonsri/committee-site/pkg/ports"
)

// EventsPage is one rendering of the events listing.
type EventsPage struct {
	selection.Result[domain.ContentRecord]
	Tab      string                `json:"tab"`
	Tabs     []domain.TabOption    `json:"tabs"`
	PageSize int                   `json:"page_size"`
	Selected *domain.ContentRecord `json:"selected,omitempty"`
}

// DocumentsPage is one rendering of the documents library.
type DocumentsPage struct {
	selection.Result[domain.Document]
	Tab      string                                  `json:"tab"`
	Tabs     []domain.TabOption                      `json:"tabs"`
	PageSize int                                     `json:"page_size"`
	Groups   []selection.MonthGroup[domain.Document] `json:"groups"`
	Featured []domain.Document                       `json:"featured"`
	Years    []string                                `json:"years"`
	Formats  []domain.Format                         `json:"formats"`
	Selected *domain.Document                        `json:"selected,omitempty"`
}

// ContentService serves the static datasets through the selection engine.
type ContentService struct {
	store    ports.ContentStore
	pageSize int
	loc      *time.Location
	now      func() time.Time
}

func NewContentService(store ports.ContentStore, pageSize int, loc *time.Location) *ContentService {
	if pageSize < 1 {
		pageSize = domain.DefaultPageSize
	}
	if loc == nil {
		loc = time.UTC
	}
	return &ContentService{store: store, pageSize: pageSize, loc: loc, now: time.Now}
}

// PageSize is the number of records per reveal.
func (s *ContentService) PageSize() int { return s.pageSize }

// Today is the current calendar date in the site's time zone.
func (s *ContentService) Today() domain.Date {
	return domain.Today(s.now().In(s.loc))
}

// Events selects the events listing. selectedID opens a record's detail view.
func (s *ContentService) Events(state domain.FilterState, selectedID string) EventsPage {
	state = state.Normalize(s.pageSize)
	news := s.store.News()
	page := EventsPage{
		Result:   selection.SelectEvents(news, state, s.Today()),
		Tab:      state.Tab,
		Tabs:     selection.EventTabs,
		PageSize: s.pageSize,
	}
	if selectedID != "" {
		if r, ok := selection.FindRecord(news, selectedID); ok {
			page.Selected = &r
		}
	}
	return page
}

// Latest returns the n most recent news items.
func (s *ContentService) Latest(n int) []domain.ContentRecord {
	return selection.LatestNews(s.store.News(), n)
}

func (s *ContentService) Documents(state domain.FilterState, selectedID string) DocumentsPage {
	state = state.Normalize(s.pageSize)
	ds := s.store.Documents()
	res := selection.SelectDocuments(ds.Documents, state)
	page := DocumentsPage{
		Result:   res,
		Tab:      state.Tab,
		Tabs:     selection.DocumentTabs,
		PageSize: s.pageSize,
		Groups:   selection.GroupByMonth(res.Items),
		Featured: selection.FeaturedDocuments(ds.Documents, state),
		Years:    ds.Years,
		Formats:  ds.Formats,
	}
	if selectedID != "" {
		if d, ok := selection.FindDocument(ds.Documents, selectedID); ok {
			page.Selected = &d
		}
	}
	return page
}

func (s *ContentService) Participants(filter string) selection.ParticipantView {
	return selection.SelectParticipants(s.store.Participants(), filter)
}

// Record returns one news item.
func (s *ContentService) Record(id string) (domain.ContentRecord, error) {
	r, ok := selection.FindRecord(s.store.News(), id)
	if !ok {
		return domain.ContentRecord{}, domain.ErrNotFound
	}
	return r, nil
}

// Exists reports whether id names a news item. Stats are kept for news only.
func (s *ContentService) Exists(id string) bool {
	_, ok := selection.FindRecord(s.store.News(), id)
	return ok
}
