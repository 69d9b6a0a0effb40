package repository

import (
	"context"
	"errors"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/mennyg19-cmyk/JustForToday-sub001/internal/core/domain"
	"github.com/mennyg19-cmyk/JustForToday-sub001/internal/logging"
	"github.com/mennyg19-cmyk/JustForToday-sub001/internal/metrics"
)

var _ domain.SettingsRepository = (*CachedSettingsRepository)(nil)

const settingsCacheTTL = 30 * time.Minute

// CachedSettingsRepository fronts a settings repository with Redis. Every save
// goes to the store first and then drops the cached copy.
type CachedSettingsRepository struct {
	next  domain.SettingsRepository
	cache *redis.Client
	ttl   time.Duration
}

func NewCachedSettingsRepository(next domain.SettingsRepository, cache *redis.Client) *CachedSettingsRepository {
	return &CachedSettingsRepository{
		next:  next,
		cache: cache,
		ttl:   settingsCacheTTL,
	}
}

func (r *CachedSettingsRepository) cacheKey(group string) string {
	return "settings:" + group
}

func (r *CachedSettingsRepository) invalidate(ctx context.Context, group string) {
	if err := r.cache.Del(ctx, r.cacheKey(group)).Err(); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("group", group).Msg("failed to invalidate settings cache")
	}
}

// cached reads group from Redis into dest. It reports false on a miss or on
// any cache problem, in which case the caller falls back to the store.
func (r *CachedSettingsRepository) cached(ctx context.Context, group string, dest interface{}) bool {
	key := r.cacheKey(group)

	val, err := r.cache.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logging.Ctx(ctx).Warn().Err(err).Str("group", group).Msg("settings cache read failed")
		}
		metrics.SettingsCacheMisses.Inc()
		return false
	}

	if err := json.Unmarshal(val, dest); err != nil {
		logging.Ctx(ctx).Warn().Str("group", group).Msg("corrupted settings cache entry, cleaning up key")
		r.cache.Del(ctx, key)
		metrics.SettingsCacheMisses.Inc()
		return false
	}

	metrics.SettingsCacheHits.Inc()
	return true
}

func (r *CachedSettingsRepository) store(ctx context.Context, group string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := r.cache.Set(ctx, r.cacheKey(group), data, r.ttl).Err(); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("group", group).Msg("settings cache write failed")
	}
}

func (r *CachedSettingsRepository) Goals(ctx context.Context) (domain.Goals, error) {
	var goals domain.Goals
	if r.cached(ctx, settingsKeyGoals, &goals) {
		return goals, nil
	}

	goals, err := r.next.Goals(ctx)
	if err != nil {
		return domain.Goals{}, err
	}
	r.store(ctx, settingsKeyGoals, goals)
	return goals, nil
}

func (r *CachedSettingsRepository) Visibility(ctx context.Context) (domain.Visibility, error) {
	var v domain.Visibility
	if r.cached(ctx, settingsKeyVisibility, &v) {
		return v, nil
	}

	v, err := r.next.Visibility(ctx)
	if err != nil {
		return nil, err
	}
	r.store(ctx, settingsKeyVisibility, v)
	return v, nil
}

func (r *CachedSettingsRepository) ModuleSettings(ctx context.Context) (domain.ModuleSettings, error) {
	var s domain.ModuleSettings
	if r.cached(ctx, settingsKeyModuleSettings, &s) {
		return s, nil
	}

	s, err := r.next.ModuleSettings(ctx)
	if err != nil {
		return nil, err
	}
	r.store(ctx, settingsKeyModuleSettings, s)
	return s, nil
}

func (r *CachedSettingsRepository) SaveGoals(ctx context.Context, goals domain.Goals) error {
	if err := r.next.SaveGoals(ctx, goals); err != nil {
		return err
	}
	r.invalidate(ctx, settingsKeyGoals)
	return nil
}

func (r *CachedSettingsRepository) SaveVisibility(ctx context.Context, v domain.Visibility) error {
	if err := r.next.SaveVisibility(ctx, v); err != nil {
		return err
	}
	r.invalidate(ctx, settingsKeyVisibility)
	return nil
}

func (r *CachedSettingsRepository) SaveModuleSettings(ctx context.Context, s domain.ModuleSettings) error {
	if err := r.next.SaveModuleSettings(ctx, s); err != nil {
		return err
	}
	r.invalidate(ctx, settingsKeyModuleSettings)
	return nil
}
