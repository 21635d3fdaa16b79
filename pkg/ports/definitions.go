package ports

import (
	"context"

	"github.com/wadjakorntonsri/committee-site/pkg/core/domain"
)

// ContentStore is read-only access to the static datasets.
type ContentStore interface {
	News() []domain.ContentRecord
	Documents() domain.DocumentDataset
	Participants() domain.ParticipantDataset
}

// StatsStore is the remote aggregate counter table.
type StatsStore interface {
	// Fetch returns nil, nil when the record has no row yet.
	Fetch(ctx context.Context, id string) (*domain.Stats, error)
	// Increment creates the row on first write.
	Increment(ctx context.Context, id string, kind domain.StatKind) error
	// Decrement only supports likes and never goes below zero.
	Decrement(ctx context.Context, id string, kind domain.StatKind) error
}

// StatsRepository is the server-side StatsStore with the listing operations used
// by the dashboard and the export/import commands.
type StatsRepository interface {
	StatsStore
	Top(ctx context.Context, kind domain.StatKind, limit int) ([]domain.Stats, error)
	Dump(ctx context.Context) ([]domain.Stats, error) // For migration
	Upsert(ctx context.Context, stats *domain.Stats) error
}

// Guard is a set of record ids already counted for one scope.
type Guard interface {
	Has(ctx context.Context, id string) (bool, error)
	Add(ctx context.Context, id string) error
	Remove(ctx context.Context, id string) error
}

// GuardStore hands out the two idempotence guards of a visitor: one scoped to
// the browsing session (views) and one to the device (likes).
type GuardStore interface {
	Session(sessionID string) Guard
	Device(deviceID string) Guard
}

// Notifier sends outbound email.
type Notifier interface {
	Send(ctx context.Context, email domain.Email) error
}

// Visitor identifies the two guard scopes of a caller.
type Visitor struct {
	DeviceID  string
	SessionID string
}

// StatsService runs the stats counter on behalf of visitors.
type StatsService interface {
	Get(ctx context.Context, v Visitor, id string) (domain.CounterState, error)
	View(ctx context.Context, v Visitor, id string) (domain.CounterState, error)
	ToggleLike(ctx context.Context, v Visitor, id string) (domain.CounterState, error)
	Share(ctx context.Context, v Visitor, id string) (domain.CounterState, error)
}

// ContactService relays contact form submissions.
type ContactService interface {
	Submit(ctx context.Context, req domain.ContactRequest) error
}
