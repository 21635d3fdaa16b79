package handler

import (
	"net/http"
	_ "time/tzdata"

	"github.com/wadjakorntonsri/committee-site/pkg/app"
	"github.com/wadjakorntonsri/committee-site/pkg/config"
	"github.com/wadjakorntonsri/committee-site/pkg/logger"
)

var mux http.Handler

func init() {
	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel, cfg.AppEnv)
	if err != nil {
		panic(err)
	}

	// Note: On Vercel, db.sqlite is ephemeral unless using a remote SQL/Turso URL in DATABASE_URL.
	// Without REDIS_URL the visitor guards only live as long as the function instance.
	a, err := app.New(cfg, log)
	if err != nil {
		panic(err)
	}
	mux = a.Handler
}

// Handler is the entrypoint for Vercel
func Handler(w http.ResponseWriter, r *http.Request) {
	mux.ServeHTTP(w, r)
}
