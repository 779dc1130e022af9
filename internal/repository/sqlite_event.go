package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/studydesk/internal/db"
	"github.com/alexanderramin/studydesk/internal/domain"
)

const eventColumns = `id, title, description, start_at, end_at, color_id, source, created_at`

// SQLiteEventRepo implements EventRepo. It accepts a DBTX so the same repo
// works on a *sql.DB or inside a transaction.
type SQLiteEventRepo struct {
	db db.DBTX
}

func NewSQLiteEventRepo(db db.DBTX) *SQLiteEventRepo {
	return &SQLiteEventRepo{db: db}
}

func (r *SQLiteEventRepo) Create(ctx context.Context, e *domain.CalendarEvent) error {
	query := `INSERT INTO events (` + eventColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.Title,
		e.Description,
		formatTime(e.Start),
		formatTime(e.End),
		e.ColorID,
		string(e.Source),
		formatTime(e.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting event: %w", err)
	}
	return nil
}

func (r *SQLiteEventRepo) GetByID(ctx context.Context, id string) (*domain.CalendarEvent, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return r.scanEvent(row)
}

func (r *SQLiteEventRepo) ListBetween(ctx context.Context, from, to time.Time) ([]*domain.CalendarEvent, error) {
	query := `SELECT ` + eventColumns + ` FROM events
		WHERE start_at < ? AND end_at > ?
		ORDER BY start_at, id`
	rows, err := r.db.QueryContext(ctx, query, formatTime(to), formatTime(from))
	if err != nil {
		return nil, fmt.Errorf("listing events between: %w", err)
	}
	defer rows.Close()
	return r.scanEvents(rows)
}

func (r *SQLiteEventRepo) ListBySource(ctx context.Context, source domain.EventSource) ([]*domain.CalendarEvent, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE source = ? ORDER BY start_at, id`
	rows, err := r.db.QueryContext(ctx, query, string(source))
	if err != nil {
		return nil, fmt.Errorf("listing events by source: %w", err)
	}
	defer rows.Close()
	return r.scanEvents(rows)
}

func (r *SQLiteEventRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting event: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting event: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("event %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteEventRepo) DeleteBySource(ctx context.Context, source domain.EventSource) (int, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE source = ?`, string(source))
	if err != nil {
		return 0, fmt.Errorf("deleting events by source: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("deleting events by source: %w", err)
	}
	return int(n), nil
}

func (r *SQLiteEventRepo) scanEvent(row *sql.Row) (*domain.CalendarEvent, error) {
	var e domain.CalendarEvent
	var source, startStr, endStr, createdStr string

	err := row.Scan(&e.ID, &e.Title, &e.Description, &startStr, &endStr, &e.ColorID, &source, &createdStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("event: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning event: %w", err)
	}
	return r.populateEvent(&e, source, startStr, endStr, createdStr)
}

func (r *SQLiteEventRepo) scanEvents(rows *sql.Rows) ([]*domain.CalendarEvent, error) {
	var events []*domain.CalendarEvent
	for rows.Next() {
		var e domain.CalendarEvent
		var source, startStr, endStr, createdStr string

		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &startStr, &endStr, &e.ColorID, &source, &createdStr); err != nil {
			return nil, fmt.Errorf("scanning event row: %w", err)
		}
		event, err := r.populateEvent(&e, source, startStr, endStr, createdStr)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating events: %w", err)
	}
	return events, nil
}

func (r *SQLiteEventRepo) populateEvent(e *domain.CalendarEvent, source, startStr, endStr, createdStr string) (*domain.CalendarEvent, error) {
	var err error
	e.Source = domain.EventSource(source)
	if e.Start, err = parseTime(startStr); err != nil {
		return nil, fmt.Errorf("parsing start_at: %w", err)
	}
	if e.End, err = parseTime(endStr); err != nil {
		return nil, fmt.Errorf("parsing end_at: %w", err)
	}
	if e.CreatedAt, err = parseTime(createdStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return e, nil
}
