package services

import (
	"context"
	"errors"
	"sync"

	"github.com/wadjakorntonsri/committee-site/pkg/core/domain"
	"github.com/wadjakorntonsri/committee-site/pkg/ports"
)

var errRemote = errors.New("remote unavailable")

type fakeStore struct {
	mu    sync.Mutex
	rows  map[string]*domain.Stats
	fail  bool
	calls int
	gate  chan struct{} // when set, writes block until it is closed
}

func newFakeStore() *fakeStore {
	return &fakeStore{rows: make(map[string]*domain.Stats)}
}

func (f *fakeStore) Fetch(_ context.Context, id string) (*domain.Stats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return nil, errRemote
	}
	row, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *row
	return &cp, nil
}

func (f *fakeStore) write(ctx context.Context, id string, kind domain.StatKind, delta int64) error {
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.fail {
		return errRemote
	}
	row, ok := f.rows[id]
	if !ok {
		row = &domain.Stats{RecordID: id}
		f.rows[id] = row
	}
	row.Add(kind, delta)
	return nil
}

func (f *fakeStore) Increment(ctx context.Context, id string, kind domain.StatKind) error {
	return f.write(ctx, id, kind, 1)
}

func (f *fakeStore) Decrement(ctx context.Context, id string, kind domain.StatKind) error {
	if kind != domain.StatLikes {
		return domain.ErrUnsupportedStat
	}
	return f.write(ctx, id, kind, -1)
}

func (f *fakeStore) setFail(v bool) {
	f.mu.Lock()
	f.fail = v
	f.mu.Unlock()
}

type memGuard struct {
	mu  sync.Mutex
	ids map[string]bool
}

func newMemGuard() *memGuard { return &memGuard{ids: make(map[string]bool)} }

func (g *memGuard) Has(_ context.Context, id string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.ids[id], nil
}

func (g *memGuard) Add(_ context.Context, id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.ids[id] = true
	return nil
}

func (g *memGuard) Remove(_ context.Context, id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.ids, id)
	return nil
}

type brokenGuard struct{}

func (brokenGuard) Has(context.Context, string) (bool, error) { return false, errRemote }
func (brokenGuard) Add(context.Context, string) error         { return errRemote }
func (brokenGuard) Remove(context.Context, string) error      { return errRemote }

// flakyGuard fails the first failures reads, then behaves like memGuard.
type flakyGuard struct {
	*memGuard
	failures int
}

func (g *flakyGuard) Has(ctx context.Context, id string) (bool, error) {
	g.mu.Lock()
	if g.failures > 0 {
		g.failures--
		g.mu.Unlock()
		return false, errRemote
	}
	g.mu.Unlock()
	return g.memGuard.Has(ctx, id)
}

type memGuards struct {
	mu      sync.Mutex
	session map[string]*memGuard
	device  map[string]*memGuard
}

func newMemGuards() *memGuards {
	return &memGuards{session: map[string]*memGuard{}, device: map[string]*memGuard{}}
}

func (m *memGuards) get(set map[string]*memGuard, key string) ports.Guard {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := set[key]
	if !ok {
		g = newMemGuard()
		set[key] = g
	}
	return g
}

func (m *memGuards) Session(id string) ports.Guard { return m.get(m.session, id) }
func (m *memGuards) Device(id string) ports.Guard  { return m.get(m.device, id) }

type recordingNotifier struct {
	mu   sync.Mutex
	sent []domain.Email
	// fail reports whether the n-th (0-based) send should fail.
	fail func(n int) bool
}

func (r *recordingNotifier) Send(_ context.Context, e domain.Email) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := len(r.sent)
	if r.fail != nil && r.fail(n) {
		return errRemote
	}
	r.sent = append(r.sent, e)
	return nil
}
