package handler

import (
	"net/http"

	"github.com/wadjakorntonsri/committee-site/pkg/core/domain"
	"github.com/wadjakorntonsri/committee-site/pkg/core/services"
)

const defaultLatest = 4

type ContentHandler struct {
	service *services.ContentService
	baseURL string
}

func NewContentHandler(service *services.ContentService, baseURL string) *ContentHandler {
	return &ContentHandler{service: service, baseURL: baseURL}
}

func (h *ContentHandler) filterState(r *http.Request) domain.FilterState {
	q := r.URL.Query()
	state := domain.FilterState{
		Tab:     q.Get("tab"),
		Query:   q.Get("q"),
		Years:   queryList(r, "year"),
		Visible: queryInt(r, "visible", 0),
	}
	for _, f := range queryList(r, "format") {
		state.Formats = append(state.Formats, domain.Format(f))
	}
	return state
}

// Events lists news and events. ?id= additionally returns that record.
func (h *ContentHandler) Events(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Events(h.filterState(r), r.URL.Query().Get("id")))
}

// Latest returns the newest news items for the home page.
func (h *ContentHandler) Latest(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", defaultLatest)
	if limit < 1 || limit > 50 {
		limit = defaultLatest
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": h.service.Latest(limit)})
}

func (h *ContentHandler) Documents(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Documents(h.filterState(r), r.URL.Query().Get("id")))
}

func (h *ContentHandler) Participants(w http.ResponseWriter, r *http.Request) {
	filter := r.URL.Query().Get("filter")
	if filter == "" {
		filter = domain.TabAll
	}
	writeJSON(w, http.StatusOK, h.service.Participants(filter))
}

type recordResponse struct {
	Record domain.ContentRecord `json:"record"`
	URL    string               `json:"url"`
	Share  []domain.ShareLink   `json:"share"`
}

// Record returns one news item with its share targets.
func (h *ContentHandler) Record(w http.ResponseWriter, r *http.Request) {
	rec, err := h.service.Record(r.PathValue("id"))
	if err != nil {
		writeErr(w, err)
		return
	}
	u := domain.DetailURL(h.baseURL, "events", rec.ID)
	writeJSON(w, http.StatusOK, recordResponse{Record: rec, URL: u, Share: domain.ShareLinks(rec.Title, u)})
}
