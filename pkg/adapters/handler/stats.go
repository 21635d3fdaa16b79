package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/wadjakorntonsri/committee-site/pkg/core/domain"
	"github.com/wadjakorntonsri/committee-site/pkg/ports"
)

const (
	defaultTop = 10
	maxTop     = 100
)

// StatsHandler serves both the raw stats store and the per-visitor counter.
type StatsHandler struct {
	repo    ports.StatsRepository
	service ports.StatsService
	known   func(id string) bool
	log     *zap.Logger
}

func NewStatsHandler(repo ports.StatsRepository, service ports.StatsService, known func(string) bool, log *zap.Logger) *StatsHandler {
	return &StatsHandler{repo: repo, service: service, known: known, log: log}
}

type kindRequest struct {
	Kind string `json:"kind"`
}

// Get returns the stored row. A record nobody has interacted with yet is a 404.
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !h.known(id) {
		writeErr(w, domain.ErrNotFound)
		return
	}
	s, err := h.repo.Fetch(r.Context(), id)
	if err != nil {
		h.log.Error("Failed to fetch stats", zap.String("record_id", id), zap.Error(err))
		writeErr(w, err)
		return
	}
	if s == nil {
		writeError(w, http.StatusNotFound, "no stats yet")
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *StatsHandler) Increment(w http.ResponseWriter, r *http.Request) {
	h.change(w, r, h.repo.Increment)
}

func (h *StatsHandler) Decrement(w http.ResponseWriter, r *http.Request) {
	h.change(w, r, h.repo.Decrement)
}

func (h *StatsHandler) change(w http.ResponseWriter, r *http.Request, apply func(context.Context, string, domain.StatKind) error) {
	id := r.PathValue("id")
	if !h.known(id) {
		writeErr(w, domain.ErrNotFound)
		return
	}

	var req kindRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	kind, err := domain.ParseStatKind(req.Kind)
	if err != nil {
		writeErr(w, err)
		return
	}

	if err := apply(r.Context(), id, kind); err != nil {
		h.log.Error("Failed to update stats", zap.String("record_id", id), zap.String("kind", string(kind)), zap.Error(err))
		writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Top lists the records with the most views, likes or shares.
func (h *StatsHandler) Top(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("kind")
	if raw == "" {
		raw = string(domain.StatViews)
	}
	kind, err := domain.ParseStatKind(raw)
	if err != nil {
		writeErr(w, err)
		return
	}
	limit := queryInt(r, "limit", defaultTop)
	if limit < 1 || limit > maxTop {
		limit = defaultTop
	}

	top, err := h.repo.Top(r.Context(), kind, limit)
	if err != nil {
		h.log.Error("Failed to list top stats", zap.Error(err))
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, top)
}

// Counter returns the counts and like state of a record for the calling visitor.
func (h *StatsHandler) Counter(w http.ResponseWriter, r *http.Request) {
	h.visitorOp(w, r, h.service.Get)
}

func (h *StatsHandler) View(w http.ResponseWriter, r *http.Request) {
	h.visitorOp(w, r, h.service.View)
}

func (h *StatsHandler) Like(w http.ResponseWriter, r *http.Request) {
	h.visitorOp(w, r, h.service.ToggleLike)
}

func (h *StatsHandler) Share(w http.ResponseWriter, r *http.Request) {
	h.visitorOp(w, r, h.service.Share)
}

func (h *StatsHandler) visitorOp(
	w http.ResponseWriter,
	r *http.Request,
	op func(context.Context, ports.Visitor, string) (domain.CounterState, error),
) {
	v, ok := VisitorFrom(r.Context())
	if !ok {
		writeError(w, http.StatusBadRequest, "missing visitor")
		return
	}
	st, err := op(r.Context(), v, r.PathValue("id"))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}
