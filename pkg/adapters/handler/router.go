package handler

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/wadjakorntonsri/committee-site/pkg/config"
	"github.com/wadjakorntonsri/committee-site/pkg/core/services"
	"github.com/wadjakorntonsri/committee-site/pkg/metrics"
	"github.com/wadjakorntonsri/committee-site/pkg/ports"
)

// Deps are the services the router dispatches to.
type Deps struct {
	Content *services.ContentService
	Stats   ports.StatsService
	Repo    ports.StatsRepository
	Contact ports.ContactService
	Log     *zap.Logger
	Metrics *metrics.Metrics
}

// NewRouter creates and configures the main application router
func NewRouter(cfg *config.Config, d Deps) http.Handler {
	// Initialize Handlers
	ch := NewContentHandler(d.Content, cfg.BaseURL)
	sh := NewStatsHandler(d.Repo, d.Stats, d.Content.Exists, d.Log)
	ct := NewContactHandler(d.Contact)

	// Initialize Middleware
	mw := NewMiddleware(cfg, d.Log, d.Metrics)
	visitor := func(h http.HandlerFunc) http.Handler { return mw.Visitor(h) }

	// Setup Router
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
	})
	mux.Handle("GET /metrics", d.Metrics.Handler())

	// Content
	mux.HandleFunc("GET /api/v1/events", ch.Events)
	mux.HandleFunc("GET /api/v1/events/latest", ch.Latest)
	mux.HandleFunc("GET /api/v1/documents", ch.Documents)
	mux.HandleFunc("GET /api/v1/participants", ch.Participants)
	mux.HandleFunc("GET /api/v1/records/{id}", ch.Record)

	// Raw stats store
	mux.HandleFunc("GET /api/v1/stats/top", sh.Top)
	mux.HandleFunc("GET /api/v1/stats/{id}", sh.Get)
	mux.HandleFunc("POST /api/v1/stats/{id}/increment", sh.Increment)
	mux.HandleFunc("POST /api/v1/stats/{id}/decrement", sh.Decrement)

	// Visitor counter
	mux.Handle("GET /api/v1/records/{id}/stats", visitor(sh.Counter))
	mux.Handle("POST /api/v1/records/{id}/view", visitor(sh.View))
	mux.Handle("POST /api/v1/records/{id}/like", visitor(sh.Like))
	mux.Handle("POST /api/v1/records/{id}/share", visitor(sh.Share))

	// Contact relay
	mux.HandleFunc("POST /api/v1/contact", ct.Submit)

	return mw.Logging(mw.CORS(mux))
}
