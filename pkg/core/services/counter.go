package services

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/wadjakorntonsri/committee-site/pkg/core/domain"
	"github.com/wadjakorntonsri/committee-site/pkg/ports"
)

// Guards groups the idempotence guards owned by a Counter.
type Guards struct {
	Viewed ports.Guard // session scope
	Liked  ports.Guard // device scope
}

// Counter is the view/like/share counter of one record as seen by one
// visitor. Every mutation is two-phase: the remote call runs first and only
// its success updates the guard and the local counts. At most one operation
// runs at a time; overlapping calls fail with domain.ErrBusy.
type Counter struct {
	id     string
	store  ports.StatsStore
	guards Guards
	log    *zap.Logger

	mu      sync.Mutex
	stats   domain.Stats
	liked   bool
	likeErr error // like guard unreadable, liked is unknown
	pending bool
	closed  bool
}

// NewCounter loads the current counts and like state. A missing row or a
// failed fetch both start from zero. An unreadable like guard leaves the like
// state unknown until ToggleLike can read it.
func NewCounter(ctx context.Context, id string, store ports.StatsStore, guards Guards, log *zap.Logger) *Counter {
	c := &Counter{
		id:     id,
		store:  store,
		guards: guards,
		log:    log.With(zap.String("record_id", id)),
		stats:  domain.Stats{RecordID: id},
	}

	liked, err := guards.Liked.Has(ctx, id)
	if err != nil {
		c.log.Warn("Failed to read like guard", zap.Error(err))
		c.likeErr = err
	}
	c.liked = liked

	st, err := store.Fetch(ctx, id)
	switch {
	case err != nil:
		c.log.Warn("Failed to fetch stats", zap.Error(err))
	case st != nil:
		c.stats = *st
	}
	return c
}

// State returns the current counts and like flag.
func (c *Counter) State() domain.CounterState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return domain.NewCounterState(c.stats, c.liked)
}

// Close detaches the counter from its view. Responses arriving afterwards
// still update the guards but no longer change the local counts.
func (c *Counter) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

func (c *Counter) begin() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending {
		return domain.ErrBusy
	}
	c.pending = true
	return nil
}

func (c *Counter) end() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = false
}

// apply mutates the local state unless the counter was closed.
func (c *Counter) apply(fn func()) domain.CounterState {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		fn()
	}
	return domain.NewCounterState(c.stats, c.liked)
}

// IncrementView counts one view per session. A record already viewed in this
// session is a silent no-op.
func (c *Counter) IncrementView(ctx context.Context) (domain.CounterState, error) {
	if err := c.begin(); err != nil {
		return c.State(), err
	}
	defer c.end()

	seen, err := c.guards.Viewed.Has(ctx, c.id)
	if err != nil {
		c.log.Warn("Failed to read view guard", zap.Error(err))
		return c.State(), fmt.Errorf("read view guard: %w", err)
	}
	if seen {
		return c.State(), nil
	}

	if err := c.store.Increment(ctx, c.id, domain.StatViews); err != nil {
		c.log.Warn("Failed to increment views", zap.Error(err))
		return c.State(), fmt.Errorf("increment views: %w", err)
	}
	if err := c.guards.Viewed.Add(ctx, c.id); err != nil {
		c.log.Warn("Failed to store view guard", zap.Error(err))
	}
	return c.apply(func() { c.stats.Add(domain.StatViews, 1) }), nil
}

// ToggleLike likes the record, or removes the like when this device already
// likes it. On failure nothing changes and the error is returned.
func (c *Counter) ToggleLike(ctx context.Context) (domain.CounterState, error) {
	if err := c.begin(); err != nil {
		return c.State(), err
	}
	defer c.end()

	liked, err := c.likedState(ctx)
	if err != nil {
		return c.State(), err
	}

	if liked {
		if err := c.store.Decrement(ctx, c.id, domain.StatLikes); err != nil {
			c.log.Warn("Failed to remove like", zap.Error(err))
			return c.State(), fmt.Errorf("decrement likes: %w", err)
		}
		if err := c.guards.Liked.Remove(ctx, c.id); err != nil {
			c.log.Warn("Failed to clear like guard", zap.Error(err))
		}
		return c.apply(func() {
			c.liked = false
			c.stats.Add(domain.StatLikes, -1)
		}), nil
	}

	if err := c.store.Increment(ctx, c.id, domain.StatLikes); err != nil {
		c.log.Warn("Failed to add like", zap.Error(err))
		return c.State(), fmt.Errorf("increment likes: %w", err)
	}
	if err := c.guards.Liked.Add(ctx, c.id); err != nil {
		c.log.Warn("Failed to store like guard", zap.Error(err))
	}
	return c.apply(func() {
		c.liked = true
		c.stats.Add(domain.StatLikes, 1)
	}), nil
}

// likedState returns the like flag, reading the guard again when it could
// not be read at construction. Toggling on a guessed state could add a
// second like from the same device.
func (c *Counter) likedState(ctx context.Context) (bool, error) {
	c.mu.Lock()
	liked, known := c.liked, c.likeErr == nil
	c.mu.Unlock()
	if known {
		return liked, nil
	}

	liked, err := c.guards.Liked.Has(ctx, c.id)
	if err != nil {
		c.log.Warn("Failed to read like guard", zap.Error(err))
		return false, fmt.Errorf("read like guard: %w", err)
	}
	c.mu.Lock()
	c.liked, c.likeErr = liked, nil
	c.mu.Unlock()
	return liked, nil
}

// IncrementShare counts every explicit share action.
func (c *Counter) IncrementShare(ctx context.Context) (domain.CounterState, error) {
	if err := c.begin(); err != nil {
		return c.State(), err
	}
	defer c.end()

	if err := c.store.Increment(ctx, c.id, domain.StatShares); err != nil {
		c.log.Warn("Failed to increment shares", zap.Error(err))
		return c.State(), fmt.Errorf("increment shares: %w", err)
	}
	return c.apply(func() { c.stats.Add(domain.StatShares, 1) }), nil
}
