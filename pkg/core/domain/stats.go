package domain

import (
	"fmt"
	"time"
)

// StatKind names one of the three per-record counters.
type StatKind string

const (
	StatViews  StatKind = "views"
	StatLikes  StatKind = "likes"
	StatShares StatKind = "shares"
)

// ParseStatKind validates a stat kind received from a client.
func ParseStatKind(s string) (StatKind, error) {
	switch k := StatKind(s); k {
	case StatViews, StatLikes, StatShares:
		return k, nil
	default:
		return "", fmt.Errorf("%w: kind %q", ErrUnsupportedStat, s)
	}
}

// Stats holds the aggregate counters of a record. A record without a row is
// equivalent to the zero value.
type Stats struct {
	RecordID  string    `json:"record_id,omitempty"`
	Views     int64     `json:"views"`
	Likes     int64     `json:"likes"`
	Shares    int64     `json:"shares"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// Add applies delta to one counter, never going below zero.
func (s *Stats) Add(kind StatKind, delta int64) {
	var field *int64
	switch kind {
	case StatViews:
		field = &s.Views
	case StatLikes:
		field = &s.Likes
	case StatShares:
		field = &s.Shares
	default:
		return
	}
	*field += delta
	if *field < 0 {
		*field = 0
	}
}

// Get returns the value of one counter.
func (s Stats) Get(kind StatKind) int64 {
	switch kind {
	case StatViews:
		return s.Views
	case StatLikes:
		return s.Likes
	case StatShares:
		return s.Shares
	}
	return 0
}

// CounterState is what a visitor sees for one record: the aggregate counts
// plus whether this device currently likes it.
type CounterState struct {
	Views  int64 `json:"views"`
	Likes  int64 `json:"likes"`
	Shares int64 `json:"shares"`
	Liked  bool  `json:"liked"`
}

func NewCounterState(s Stats, liked bool) CounterState {
	return CounterState{Views: s.Views, Likes: s.Likes, Shares: s.Shares, Liked: liked}
}
