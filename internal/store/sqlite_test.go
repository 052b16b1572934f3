package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lyricss1/WeatherBot/internal/domain"
)

func openTestRepo(t *testing.T) *SQLiteRepo {
	t.Helper()
	repo, err := OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestGetProfile_NotFound(t *testing.T) {
	repo := openTestRepo(t)

	_, err := repo.GetProfile(context.Background(), 42)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpsertProfile_RoundTrip(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.UpsertProfile(ctx, &domain.Profile{ChatID: 1, Name: "Alex", City: "Paris"}))

	got, err := repo.GetProfile(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "Alex", got.Name)
	require.Equal(t, "Paris", got.City)
	require.True(t, got.Configured())
	require.False(t, got.CreatedAt.IsZero())
}

func TestUpsertProfile_MergesFields(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	// Name first (onboarding step one), then city only.
	require.NoError(t, repo.UpsertProfile(ctx, &domain.Profile{ChatID: 7, Name: "Alex"}))
	require.NoError(t, repo.UpsertProfile(ctx, &domain.Profile{ChatID: 7, City: "Paris"}))

	got, err := repo.GetProfile(ctx, 7)
	require.NoError(t, err)
	require.Equal(t, "Alex", got.Name)
	require.Equal(t, "Paris", got.City)

	// City change must not clear the name.
	require.NoError(t, repo.UpsertProfile(ctx, &domain.Profile{ChatID: 7, City: "Berlin"}))
	got, err = repo.GetProfile(ctx, 7)
	require.NoError(t, err)
	require.Equal(t, "Alex", got.Name)
	require.Equal(t, "Berlin", got.City)
}

func TestDeleteProfile(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.UpsertProfile(ctx, &domain.Profile{ChatID: 3, Name: "Sam", City: "Oslo"}))
	require.NoError(t, repo.DeleteProfile(ctx, 3))

	_, err := repo.GetProfile(ctx, 3)
	require.ErrorIs(t, err, ErrNotFound)

	// Deleting again is a no-op.
	require.NoError(t, repo.DeleteProfile(ctx, 3))
}
