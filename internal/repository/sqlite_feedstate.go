package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/studydesk/internal/db"
	"github.com/alexanderramin/studydesk/internal/domain"
)

// SQLiteFeedStateRepo implements FeedStateRepo.
type SQLiteFeedStateRepo struct {
	db db.DBTX
}

func NewSQLiteFeedStateRepo(db db.DBTX) *SQLiteFeedStateRepo {
	return &SQLiteFeedStateRepo{db: db}
}

func (r *SQLiteFeedStateRepo) Get(ctx context.Context, name string) (*domain.FeedState, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT name, url, etag, last_modified, synced_at, event_count, last_error, body
		FROM feed_state WHERE name = ?`, name)

	var s domain.FeedState
	var syncedAt sql.NullString
	err := row.Scan(&s.Name, &s.URL, &s.ETag, &s.LastModified, &syncedAt, &s.EventCount, &s.LastError, &s.Body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("feed state %s: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning feed state: %w", err)
	}
	s.SyncedAt = parseNullableTime(syncedAt)
	return &s, nil
}

// List leaves Body unset.
func (r *SQLiteFeedStateRepo) List(ctx context.Context) ([]*domain.FeedState, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT name, url, etag, last_modified, synced_at, event_count, last_error
		FROM feed_state ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing feed state: %w", err)
	}
	defer rows.Close()

	var out []*domain.FeedState
	for rows.Next() {
		var s domain.FeedState
		var syncedAt sql.NullString
		if err := rows.Scan(&s.Name, &s.URL, &s.ETag, &s.LastModified, &syncedAt, &s.EventCount, &s.LastError); err != nil {
			return nil, fmt.Errorf("scanning feed state row: %w", err)
		}
		s.SyncedAt = parseNullableTime(syncedAt)
		out = append(out, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating feed state: %w", err)
	}
	return out, nil
}

func (r *SQLiteFeedStateRepo) Upsert(ctx context.Context, s *domain.FeedState) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO feed_state (name, url, etag, last_modified, synced_at, event_count, last_error, body)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			url = excluded.url,
			etag = excluded.etag,
			last_modified = excluded.last_modified,
			synced_at = excluded.synced_at,
			event_count = excluded.event_count,
			last_error = excluded.last_error,
			body = excluded.body`,
		s.Name, s.URL, s.ETag, s.LastModified, nullableTime(s.SyncedAt), s.EventCount, s.LastError, s.Body)
	if err != nil {
		return fmt.Errorf("upserting feed state: %w", err)
	}
	return nil
}
