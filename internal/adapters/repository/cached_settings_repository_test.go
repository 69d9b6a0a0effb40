package repository

import (
	"context"
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mennyg19-cmyk/JustForToday-sub001/internal/adapters/cache"
	"github.com/mennyg19-cmyk/JustForToday-sub001/internal/core/domain"
)

func TestCachedSettingsRepository_Integration(t *testing.T) {
	_ = godotenv.Load("../../../.env")

	rdb, err := cache.NewRedisClient(cache.Options{
		Host:     getEnv("REDIS_HOST", "localhost"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       2,
	})
	if err != nil {
		t.Skipf("Skipping Redis integration test: %v", err)
	}
	defer rdb.Close()

	ctx := context.Background()
	require.NoError(t, rdb.FlushDB(ctx).Err())

	store := NewInMemoryStore()
	repo := NewCachedSettingsRepository(store, rdb)

	t.Run("Success: Miss populates the cache", func(t *testing.T) {
		goals, err := repo.Goals(ctx)
		require.NoError(t, err)
		assert.Equal(t, domain.DefaultGoals(), goals)

		exists, err := rdb.Exists(ctx, "settings:goals").Result()
		require.NoError(t, err)
		assert.Equal(t, int64(1), exists)
	})

	t.Run("Success: Save invalidates the cached copy", func(t *testing.T) {
		_, err := repo.Visibility(ctx)
		require.NoError(t, err)

		require.NoError(t, repo.SaveVisibility(ctx, domain.Visibility{domain.ModuleSteps: false}))

		exists, err := rdb.Exists(ctx, "settings:visibility").Result()
		require.NoError(t, err)
		assert.Equal(t, int64(0), exists)

		v, err := repo.Visibility(ctx)
		require.NoError(t, err)
		assert.False(t, v.IsVisible(domain.ModuleSteps))
	})

	t.Run("Edge Case: Corrupted entry falls back to the store", func(t *testing.T) {
		require.NoError(t, rdb.Set(ctx, "settings:module_settings", "{not json", 0).Err())

		s, err := repo.ModuleSettings(ctx)
		require.NoError(t, err)
		assert.Empty(t, s)
	})
}
