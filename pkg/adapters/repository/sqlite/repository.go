package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/tursodatabase/libsql-client-go/libsql" // Turso driver
	_ "modernc.org/sqlite"                               // Local SQLite driver

	"github.com/wadjakorntonsri/committee-site/pkg/core/domain"
	"github.com/wadjakorntonsri/committee-site/pkg/ports"
)

// StatsRepository keeps one row of aggregate counters per record in the
// news_stats table.
type StatsRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewStatsRepository(dbURL string) (*StatsRepository, error) {
	driverName := "sqlite"
	if strings.Contains(dbURL, "libsql://") || strings.Contains(dbURL, "wss://") {
		driverName = "libsql"
	}

	db, err := sql.Open(driverName, dbURL)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	if err := migrate(db); err != nil {
		return nil, err
	}

	return &StatsRepository{db: db, now: time.Now}, nil
}

func migrate(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS news_stats (
		news_id TEXT PRIMARY KEY,
		views INTEGER NOT NULL DEFAULT 0,
		likes INTEGER NOT NULL DEFAULT 0,
		shares INTEGER NOT NULL DEFAULT 0,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_news_stats_views ON news_stats(views);
	`
	_, err := db.Exec(query)
	return err
}

func (r *StatsRepository) Close() error {
	return r.db.Close()
}

// column maps a stat kind to its column. Kinds never reach SQL as text.
func column(kind domain.StatKind) (string, error) {
	switch kind {
	case domain.StatViews:
		return "views", nil
	case domain.StatLikes:
		return "likes", nil
	case domain.StatShares:
		return "shares", nil
	}
	return "", fmt.Errorf("%w: kind %q", domain.ErrUnsupportedStat, kind)
}

func (r *StatsRepository) Fetch(ctx context.Context, id string) (*domain.Stats, error) {
	query := `SELECT news_id, views, likes, shares, updated_at FROM news_stats WHERE news_id = ?`

	var s domain.Stats
	err := r.db.QueryRowContext(ctx, query, id).Scan(&s.RecordID, &s.Views, &s.Likes, &s.Shares, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Increment adds one to a counter, creating the row on first write.
func (r *StatsRepository) Increment(ctx context.Context, id string, kind domain.StatKind) error {
	col, err := column(kind)
	if err != nil {
		return err
	}
	now := r.now().UTC()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `INSERT OR IGNORE INTO news_stats (news_id, updated_at) VALUES (?, ?)`, id, now)
	if err != nil {
		return err
	}

	// Atomic
	_, err = tx.ExecContext(ctx, `UPDATE news_stats SET `+col+` = `+col+` + 1, updated_at = ? WHERE news_id = ?`, now, id)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Decrement removes one like, never going below zero. A missing row is left alone.
func (r *StatsRepository) Decrement(ctx context.Context, id string, kind domain.StatKind) error {
	if kind != domain.StatLikes {
		return fmt.Errorf("%w: decrement %q", domain.ErrUnsupportedStat, kind)
	}
	query := `UPDATE news_stats SET likes = MAX(likes - 1, 0), updated_at = ? WHERE news_id = ?`
	_, err := r.db.ExecContext(ctx, query, r.now().UTC(), id)
	return err
}

// Top lists the records with the highest value of one counter.
func (r *StatsRepository) Top(ctx context.Context, kind domain.StatKind, limit int) ([]domain.Stats, error) {
	col, err := column(kind)
	if err != nil {
		return nil, err
	}
	query := `SELECT news_id, views, likes, shares, updated_at FROM news_stats
			  WHERE ` + col + ` > 0 ORDER BY ` + col + ` DESC, news_id ASC LIMIT ?`
	return r.list(ctx, query, limit)
}

func (r *StatsRepository) Dump(ctx context.Context) ([]domain.Stats, error) {
	return r.list(ctx, `SELECT news_id, views, likes, shares, updated_at FROM news_stats ORDER BY news_id`)
}

func (r *StatsRepository) list(ctx context.Context, query string, args ...any) ([]domain.Stats, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := []domain.Stats{}
	for rows.Next() {
		var s domain.Stats
		if err := rows.Scan(&s.RecordID, &s.Views, &s.Likes, &s.Shares, &s.UpdatedAt); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// Upsert replaces a row wholesale. Used by the import command.
func (r *StatsRepository) Upsert(ctx context.Context, s *domain.Stats) error {
	if s.RecordID == "" {
		return fmt.Errorf("%w: empty record id", domain.ErrValidation)
	}
	updated := s.UpdatedAt
	if updated.IsZero() {
		updated = r.now().UTC()
	}
	query := `INSERT INTO news_stats (news_id, views, likes, shares, updated_at) VALUES (?, ?, ?, ?, ?)
			  ON CONFLICT(news_id) DO UPDATE SET
				views = excluded.views,
				likes = excluded.likes,
				shares = excluded.shares,
				updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query, s.RecordID, max(s.Views, 0), max(s.Likes, 0), max(s.Shares, 0), updated)
	return err
}

// Ensure interface compliance
var _ ports.StatsRepository = (*StatsRepository)(nil)
