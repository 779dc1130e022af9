package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/studydesk/internal/domain"
	"github.com/alexanderramin/studydesk/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedStateRepo_UpsertAndGet(t *testing.T) {
	repo := NewSQLiteFeedStateRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	_, err := repo.Get(ctx, "uni")
	assert.ErrorIs(t, err, ErrNotFound)

	synced := time.Date(2025, 6, 16, 8, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Upsert(ctx, &domain.FeedState{
		Name:       "uni",
		URL:        "https://example.edu/a.ics",
		ETag:       `"v1"`,
		SyncedAt:   &synced,
		EventCount: 12,
	}))

	got, err := repo.Get(ctx, "uni")
	require.NoError(t, err)
	assert.Equal(t, `"v1"`, got.ETag)
	assert.Equal(t, 12, got.EventCount)
	require.NotNil(t, got.SyncedAt)
	assert.True(t, got.SyncedAt.Equal(synced))

	require.NoError(t, repo.Upsert(ctx, &domain.FeedState{
		Name:      "uni",
		URL:       "https://example.edu/b.ics",
		LastError: "status 500",
	}))
	got, err = repo.Get(ctx, "uni")
	require.NoError(t, err)
	assert.Equal(t, "https://example.edu/b.ics", got.URL)
	assert.Empty(t, got.ETag)
	assert.Nil(t, got.SyncedAt)
	assert.Equal(t, "status 500", got.LastError)
}

func TestFeedStateRepo_BodyRoundTrip(t *testing.T) {
	repo := NewSQLiteFeedStateRepo(testutil.NewTestDB(t))
	ctx := context.Background()
	body := []byte("BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n")

	require.NoError(t, repo.Upsert(ctx, &domain.FeedState{Name: "uni", URL: "https://example.edu/a.ics", Body: body}))
	got, err := repo.Get(ctx, "uni")
	require.NoError(t, err)
	assert.Equal(t, body, got.Body)

	listed, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Nil(t, listed[0].Body)

	require.NoError(t, repo.Upsert(ctx, &domain.FeedState{Name: "uni", URL: "https://example.edu/a.ics"}))
	got, err = repo.Get(ctx, "uni")
	require.NoError(t, err)
	assert.Empty(t, got.Body)
}

func TestFeedStateRepo_List(t *testing.T) {
	repo := NewSQLiteFeedStateRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &domain.FeedState{Name: "work", URL: "https://example.com/w.ics"}))
	require.NoError(t, repo.Upsert(ctx, &domain.FeedState{Name: "gym", URL: "https://example.com/g.ics"}))

	got, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "gym", got[0].Name)
	assert.Equal(t, "work", got[1].Name)
}
