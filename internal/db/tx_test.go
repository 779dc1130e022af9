package db_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/alexanderramin/studydesk/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const insertEvent = `INSERT INTO events (id, title, start_at, end_at, created_at)
	VALUES (?, ?, '2025-06-16T10:00:00Z', '2025-06-16T11:00:00Z', '2025-06-16T08:00:00Z')`

func openUoW(t *testing.T) (*sql.DB, *db.SQLiteUnitOfWork) {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database, db.NewSQLiteUnitOfWork(database)
}

func countEvents(t *testing.T, database *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM events`).Scan(&n))
	return n
}

func TestWithinTx_Commits(t *testing.T) {
	database, uow := openUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if _, err := tx.ExecContext(ctx, insertEvent, "e1", "Lecture"); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, insertEvent, "e2", "Lab")
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, 2, countEvents(t, database))
}

func TestWithinTx_RollsBackOnError(t *testing.T) {
	database, uow := openUoW(t)
	boom := errors.New("feed parse failed")

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if _, err := tx.ExecContext(ctx, insertEvent, "e1", "Lecture"); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, countEvents(t, database))
}

func TestWithinTx_RollsBackOnConstraintViolation(t *testing.T) {
	database, uow := openUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if _, err := tx.ExecContext(ctx, insertEvent, "dup", "Lecture"); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, insertEvent, "dup", "Lecture again")
		return err
	})
	assert.Error(t, err)
	assert.Equal(t, 0, countEvents(t, database))
}

func TestWithinTx_RollsBackOnPanic(t *testing.T) {
	database, uow := openUoW(t)

	assert.PanicsWithValue(t, "boom", func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_, _ = tx.ExecContext(ctx, insertEvent, "e1", "Lecture")
			panic("boom")
		})
	})
	assert.Equal(t, 0, countEvents(t, database))
}

func TestWithinTx_CancelledContext(t *testing.T) {
	_, uow := openUoW(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := uow.WithinTx(ctx, func(context.Context, db.DBTX) error {
		called = true
		return nil
	})
	assert.Error(t, err)
	assert.False(t, called)
}
