// Package app wires the adapters and services into the HTTP handler shared by
// the long running server and the serverless entrypoint.
package app

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/wadjakorntonsri/committee-site/pkg/adapters/guard"
	"github.com/wadjakorntonsri/committee-site/pkg/adapters/handler"
	"github.com/wadjakorntonsri/committee-site/pkg/adapters/notifier"
	"github.com/wadjakorntonsri/committee-site/pkg/adapters/repository/jsonstore"
	"github.com/wadjakorntonsri/committee-site/pkg/adapters/repository/sqlite"
	"github.com/wadjakorntonsri/committee-site/pkg/config"
	"github.com/wadjakorntonsri/committee-site/pkg/core/services"
	"github.com/wadjakorntonsri/committee-site/pkg/metrics"
	"github.com/wadjakorntonsri/committee-site/pkg/ports"
)

const redisPrefix = "committee:"

type App struct {
	Handler http.Handler
	Content *services.ContentService
	Repo    *sqlite.StatsRepository
	Metrics *metrics.Metrics

	redis *redis.Client
}

// New validates cfg and builds the application from it. The caller owns the
// result and must Close it.
func New(cfg *config.Config, log *zap.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("load timezone: %w", err)
	}

	store, err := jsonstore.Open(cfg.ContentDir)
	if err != nil {
		return nil, fmt.Errorf("load content: %w", err)
	}

	repo, err := sqlite.NewStatsRepository(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	a := &App{Repo: repo}

	var guards ports.GuardStore
	if cfg.RedisURL != "" {
		client, err := guard.NewRedisClient(cfg.RedisURL)
		if err != nil {
			_ = repo.Close()
			return nil, err
		}
		a.redis = client
		guards = guard.NewRedisStore(client, redisPrefix, cfg.SessionTTL, cfg.DeviceTTL)
		log.Info("Using redis visitor guards")
	} else {
		guards = guard.NewMemoryStore(cfg.SessionTTL, cfg.DeviceTTL)
		log.Info("Using in-memory visitor guards")
	}

	var mail ports.Notifier
	if cfg.ResendAPIKey == "" && cfg.AppEnv == "local" {
		mail = notifier.NewLog(log)
		log.Warn("RESEND_API_KEY not set, contact emails are only logged")
	} else {
		mail = notifier.NewResend(cfg.ResendAPIKey, cfg.ResendBaseURL, nil)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	a.Metrics = metrics.New(reg)

	a.Content = services.NewContentService(store, cfg.PageSize, loc)
	a.Handler = handler.NewRouter(cfg, handler.Deps{
		Content: a.Content,
		Stats:   services.NewStatsService(repo, guards, a.Content.Exists, log, a.Metrics),
		Repo:    repo,
		Contact: services.NewContactService(mail, services.ContactConfig{
			From:      cfg.ContactFrom,
			Owner:     cfg.ContactTo,
			Signature: cfg.Signature,
		}, log, a.Metrics),
		Log:     log,
		Metrics: a.Metrics,
	})
	return a, nil
}

func (a *App) Close() error {
	var errs []error
	if a.redis != nil {
		errs = append(errs, a.redis.Close())
	}
	errs = append(errs, a.Repo.Close())
	return errors.Join(errs...)
}
