package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wadjakorntonsri/committee-site/pkg/core/domain"
)

type staticContent struct {
	news []domain.ContentRecord
	docs domain.DocumentDataset
	ppl  domain.ParticipantDataset
}

func (s staticContent) News() []domain.ContentRecord            { return s.news }
func (s staticContent) Documents() domain.DocumentDataset       { return s.docs }
func (s staticContent) Participants() domain.ParticipantDataset { return s.ppl }

func testContent() staticContent {
	return staticContent{
		news: []domain.ContentRecord{
			{ID: "1", Title: "Spring forum", Date: domain.NewDate(2025, time.March, 3), Category: domain.CategoryConference},
			{ID: "2", Title: "Summer meeting", Date: domain.NewDate(2025, time.July, 1), Category: domain.CategoryMeeting},
			{ID: "3", Title: "Winter visit", Date: domain.NewDate(2024, time.December, 12), Category: domain.CategoryVisit},
		},
		docs: domain.DocumentDataset{
			Documents: []domain.Document{
				{ID: "d1", Title: "Protocol 1", Date: domain.NewDate(2025, time.May, 2), Category: domain.DocumentCategory("protocols"), Year: "2025", Format: "pdf", Featured: true},
				{ID: "d2", Title: "Law digest", Date: domain.NewDate(2025, time.May, 20), Category: domain.DocumentCategory("laws"), Year: "2025", Format: "docx"},
				{ID: "d3", Title: "Template", Date: domain.NewDate(2024, time.January, 9), Category: domain.DocumentCategory("templates"), Year: "2024", Format: "xlsx"},
			},
			Years:   []string{"2025", "2024"},
			Formats: []domain.Format{"pdf", "docx", "xlsx"},
		},
	}
}

func newTestContentService() *ContentService {
	svc := NewContentService(testContent(), 2, time.UTC)
	svc.now = func() time.Time { return time.Date(2025, time.June, 15, 22, 0, 0, 0, time.UTC) }
	return svc
}

func TestContentService_Events(t *testing.T) {
	svc := newTestContentService()

	page := svc.Events(domain.FilterState{}, "3")
	assert.Equal(t, domain.TabAll, page.Tab)
	assert.Equal(t, 2, page.PageSize)
	assert.Equal(t, 3, page.Total)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "2", page.Items[0].ID)
	assert.True(t, page.HasMore)
	require.NotNil(t, page.Selected)
	assert.Equal(t, "Winter visit", page.Selected.Title)

	upcoming := svc.Events(domain.FilterState{Tab: "Upcoming "}, "")
	require.Len(t, upcoming.Items, 1)
	assert.Equal(t, "2", upcoming.Items[0].ID)
	assert.Nil(t, upcoming.Selected)
}

func TestContentService_TodayUsesLocation(t *testing.T) {
	svc := newTestContentService()
	loc := time.FixedZone("UTC+4", 4*60*60)
	svc.loc = loc
	assert.Equal(t, domain.NewDate(2025, time.June, 16), svc.Today())
}

func TestContentService_Documents(t *testing.T) {
	svc := newTestContentService()

	page := svc.Documents(domain.FilterState{}, "")
	assert.Equal(t, 3, page.Total)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "d2", page.Items[0].ID)
	require.Len(t, page.Groups, 1)
	assert.Equal(t, "2025-05", page.Groups[0].Month)
	require.Len(t, page.Featured, 1)
	assert.Equal(t, []string{"2025", "2024"}, page.Years)

	searched := svc.Documents(domain.FilterState{Query: "law"}, "d3")
	assert.Empty(t, searched.Featured)
	assert.Equal(t, 1, searched.Total)
	require.NotNil(t, searched.Selected)
}

func TestContentService_RecordLookup(t *testing.T) {
	svc := newTestContentService()

	r, err := svc.Record("2")
	require.NoError(t, err)
	assert.Equal(t, "Summer meeting", r.Title)

	_, err = svc.Record("nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.True(t, svc.Exists("1"))
	assert.False(t, svc.Exists("d1"))

	latest := svc.Latest(2)
	require.Len(t, latest, 2)
	assert.Equal(t, "2", latest[0].ID)
	assert.Equal(t, "1", latest[1].ID)
}
