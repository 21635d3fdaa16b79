// Package guard implements the per-visitor idempotence sets used by the stats
// counter: which records a session has viewed and which a device has liked.
package guard

import (
	"context"
	"sync"
	"time"

	"github.com/wadjakorntonsri/committee-site/pkg/ports"
)

type memorySet struct {
	ids     map[string]struct{}
	expires time.Time
}

// MemoryStore keeps guards in process memory. Sets expire ttl after their
// last write; a zero ttl keeps them forever.
type MemoryStore struct {
	sessionTTL time.Duration
	deviceTTL  time.Duration
	now        func() time.Time

	mu   sync.Mutex
	sets map[string]*memorySet
}

func NewMemoryStore(sessionTTL, deviceTTL time.Duration) *MemoryStore {
	return &MemoryStore{
		sessionTTL: sessionTTL,
		deviceTTL:  deviceTTL,
		now:        time.Now,
		sets:       make(map[string]*memorySet),
	}
}

func (s *MemoryStore) Session(sessionID string) ports.Guard {
	return &memoryGuard{store: s, key: sessionKey(sessionID), ttl: s.sessionTTL}
}

func (s *MemoryStore) Device(deviceID string) ports.Guard {
	return &memoryGuard{store: s, key: deviceKey(deviceID), ttl: s.deviceTTL}
}

// set returns the live set for key, dropping it first if it expired.
func (s *MemoryStore) set(key string, create bool) *memorySet {
	set, ok := s.sets[key]
	if ok && !set.expires.IsZero() && s.now().After(set.expires) {
		delete(s.sets, key)
		ok = false
	}
	if !ok && create {
		set = &memorySet{ids: make(map[string]struct{})}
		s.sets[key] = set
		ok = true
	}
	if !ok {
		return nil
	}
	return set
}

type memoryGuard struct {
	store *MemoryStore
	key   string
	ttl   time.Duration
}

func (g *memoryGuard) Has(_ context.Context, id string) (bool, error) {
	g.store.mu.Lock()
	defer g.store.mu.Unlock()
	set := g.store.set(g.key, false)
	if set == nil {
		return false, nil
	}
	_, ok := set.ids[id]
	return ok, nil
}

func (g *memoryGuard) Add(_ context.Context, id string) error {
	g.store.mu.Lock()
	defer g.store.mu.Unlock()
	set := g.store.set(g.key, true)
	set.ids[id] = struct{}{}
	if g.ttl > 0 {
		set.expires = g.store.now().Add(g.ttl)
	}
	return nil
}

func (g *memoryGuard) Remove(_ context.Context, id string) error {
	g.store.mu.Lock()
	defer g.store.mu.Unlock()
	if set := g.store.set(g.key, false); set != nil {
		delete(set.ids, id)
	}
	return nil
}

func sessionKey(id string) string { return "viewedNews:" + id }
func deviceKey(id string) string  { return "likedNews:" + id }
