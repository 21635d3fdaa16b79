package services

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/wadjakorntonsri/committee-site/pkg/core/domain"
	"github.com/wadjakorntonsri/committee-site/pkg/metrics"
	"github.com/wadjakorntonsri/committee-site/pkg/ports"
)

// StatsService runs a Counter per request on behalf of a visitor and keeps
// one operation per visitor and record in flight.
type StatsService struct {
	store   ports.StatsStore
	guards  ports.GuardStore
	known   func(id string) bool
	log     *zap.Logger
	metrics *metrics.Metrics

	mu       sync.Mutex
	inflight map[string]struct{}
}

// NewStatsService builds the service. known reports whether a record id exists;
// nil accepts every id.
func NewStatsService(store ports.StatsStore, guards ports.GuardStore, known func(string) bool, log *zap.Logger, m *metrics.Metrics) *StatsService {
	if known == nil {
		known = func(string) bool { return true }
	}
	return &StatsService{
		store:    store,
		guards:   guards,
		known:    known,
		log:      log,
		metrics:  m,
		inflight: make(map[string]struct{}),
	}
}

func (s *StatsService) counter(ctx context.Context, v ports.Visitor, id string) *Counter {
	return NewCounter(ctx, id, s.store, Guards{
		Viewed: s.guards.Session(v.SessionID),
		Liked:  s.guards.Device(v.DeviceID),
	}, s.log)
}

// acquire marks the visitor+record pair busy until release is called.
func (s *StatsService) acquire(v ports.Visitor, id string) (func(), error) {
	key := v.DeviceID + "/" + id
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inflight[key]; busy {
		return nil, domain.ErrBusy
	}
	s.inflight[key] = struct{}{}
	return func() {
		s.mu.Lock()
		delete(s.inflight, key)
		s.mu.Unlock()
	}, nil
}

func (s *StatsService) Get(ctx context.Context, v ports.Visitor, id string) (domain.CounterState, error) {
	if !s.known(id) {
		return domain.CounterState{}, domain.ErrNotFound
	}
	return s.counter(ctx, v, id).State(), nil
}

func (s *StatsService) View(ctx context.Context, v ports.Visitor, id string) (domain.CounterState, error) {
	return s.run(ctx, v, id, "view", (*Counter).IncrementView)
}

func (s *StatsService) ToggleLike(ctx context.Context, v ports.Visitor, id string) (domain.CounterState, error) {
	return s.run(ctx, v, id, "like", (*Counter).ToggleLike)
}

func (s *StatsService) Share(ctx context.Context, v ports.Visitor, id string) (domain.CounterState, error) {
	return s.run(ctx, v, id, "share", (*Counter).IncrementShare)
}

func (s *StatsService) run(
	ctx context.Context,
	v ports.Visitor,
	id, op string,
	fn func(*Counter, context.Context) (domain.CounterState, error),
) (domain.CounterState, error) {
	if !s.known(id) {
		s.metrics.ObserveStat(op, metrics.ResultInvalid)
		return domain.CounterState{}, domain.ErrNotFound
	}
	release, err := s.acquire(v, id)
	if err != nil {
		s.metrics.ObserveStat(op, metrics.ResultBusy)
		return domain.CounterState{}, err
	}
	defer release()

	c := s.counter(ctx, v, id)
	defer c.Close()

	before := c.State()
	st, err := fn(c, ctx)
	switch {
	case errors.Is(err, domain.ErrBusy):
		s.metrics.ObserveStat(op, metrics.ResultBusy)
	case err != nil:
		s.metrics.ObserveStat(op, metrics.ResultError)
	case st == before:
		s.metrics.ObserveStat(op, metrics.ResultSkipped)
	default:
		s.metrics.ObserveStat(op, metrics.ResultOK)
	}
	return st, err
}

var _ ports.StatsService = (*StatsService)(nil)
