// Package reveal implements the "load more" controller of a listing.
package reveal

import (
	"context"
	"sync"
	"time"
)

// DefaultDelay is the artificial latency of a reveal.
const DefaultDelay = 500 * time.Millisecond

// State is a snapshot of the controller.
type State struct {
	Visible int  `json:"visible"`
	Total   int  `json:"total"`
	HasMore bool `json:"has_more"`
	Pending bool `json:"pending"`
}

// Controller tracks how many records of a filtered result are visible and
// grows that number one page at a time. At most one reveal is pending.
type Controller struct {
	pageSize int
	delay    time.Duration

	mu         sync.Mutex
	limit      int
	total      int
	pending    bool
	generation uint64
}

// New returns a controller showing the first page of an empty result.
func New(pageSize int, delay time.Duration) *Controller {
	if pageSize < 1 {
		pageSize = 1
	}
	return &Controller{pageSize: pageSize, delay: delay, limit: pageSize}
}

// Reset starts over on a new result: one page visible, any pending reveal discarded.
// It must accompany every tab change.
func (c *Controller) Reset(total int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.limit = c.pageSize
	c.total = max(total, 0)
	c.pending = false
	c.generation++
}

// SetTotal updates the filtered length without touching the visible limit.
func (c *Controller) SetTotal(total int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.total = max(total, 0)
}

// Visible is min(limit, total).
func (c *Controller) Visible() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return min(c.limit, c.total)
}

func (c *Controller) HasMore() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.limit < c.total
}

func (c *Controller) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{
		Visible: min(c.limit, c.total),
		Total:   c.total,
		HasMore: c.limit < c.total,
		Pending: c.pending,
	}
}

// RevealMore waits for the reveal delay, then grows the visible limit by one
// page. It reports false without waiting when nothing is left to reveal or
// another reveal is pending. A Reset during the wait discards the reveal.
func (c *Controller) RevealMore(ctx context.Context) (bool, error) {
	c.mu.Lock()
	if c.pending || c.limit >= c.total {
		c.mu.Unlock()
		return false, nil
	}
	c.pending = true
	gen := c.generation
	c.mu.Unlock()

	timer := time.NewTimer(c.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		c.finish(gen, false)
		return false, ctx.Err()
	case <-timer.C:
	}
	return c.finish(gen, true), nil
}

func (c *Controller) finish(gen uint64, grow bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		return false
	}
	c.pending = false
	if grow {
		c.limit += c.pageSize
	}
	return grow
}
