package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/mennyg19-cmyk/JustForToday-sub001/internal/adapters/cache"
	adapterHTTP "github.com/mennyg19-cmyk/JustForToday-sub001/internal/adapters/handler/http"
	"github.com/mennyg19-cmyk/JustForToday-sub001/internal/adapters/repository"
	"github.com/mennyg19-cmyk/JustForToday-sub001/internal/config"
	"github.com/mennyg19-cmyk/JustForToday-sub001/internal/core/domain"
	"github.com/mennyg19-cmyk/JustForToday-sub001/internal/core/services"
	"github.com/mennyg19-cmyk/JustForToday-sub001/internal/logging"
)

type app struct {
	router *gin.Engine
	db     *sqlx.DB
	redis  *redis.Client
	// memory is set only for the in-memory storage driver.
	memory *repository.InMemoryStore
}

func (a *app) Close() error {
	var errs []error
	if a.redis != nil {
		errs = append(errs, a.redis.Close())
	}
	if a.db != nil {
		errs = append(errs, a.db.Close())
	}
	return errors.Join(errs...)
}

// newApp wires storage, cache and handlers from cfg. clock is injected so the
// current date can be pinned in tests.
func newApp(ctx context.Context, cfg *config.Config, clock func() time.Time) (*app, error) {
	a := &app{}

	loc, err := cfg.Analytics.Location()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve timezone: %w", err)
	}

	var providers services.Providers
	var settings domain.SettingsRepository

	switch cfg.Storage.Driver {
	case config.StorageMemory:
		store := repository.NewInMemoryStore()
		a.memory = store
		settings = store
		providers = services.Providers{
			Habits:   store,
			Steps:    store,
			Workouts: store,
			Journal:  store,
			Fasting:  store,
			Sobriety: store,
			Stoic:    store,
		}
		logging.Warn().Msg("using in-memory storage, data is lost on restart")

	case config.StoragePostgres:
		logging.Info().Str("host", cfg.Database.Host).Str("database", cfg.Database.Name).Msg("connecting to database")

		db, err := sqlx.ConnectContext(ctx, "pgx", cfg.Database.DSN())
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		a.db = db

		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(5 * time.Minute)

		if err := repository.CreateSchema(ctx, db); err != nil {
			_ = a.Close()
			return nil, err
		}

		activity := repository.NewPostgresActivityRepository(db)
		journal := repository.NewPostgresJournalRepository(db)
		settings = repository.NewPostgresSettingsRepository(db)
		providers = services.Providers{
			Habits:   repository.NewPostgresHabitRepository(db),
			Steps:    activity,
			Workouts: activity,
			Journal:  journal,
			Fasting:  activity,
			Sobriety: repository.NewPostgresSobrietyRepository(db),
			Stoic:    journal,
		}
		logging.Info().Msg("database connected")

	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
	}

	if cfg.Redis.Enabled {
		rdb, err := cache.NewRedisClient(cache.Options{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			logging.Warn().Err(err).Msg("redis unavailable, running without settings cache and rate limiting")
		} else {
			a.redis = rdb
			settings = repository.NewCachedSettingsRepository(settings, rdb)
		}
	}
	providers.Settings = settings

	tokens := services.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)
	if cfg.Auth.PINHash == "" {
		logging.Warn().Msg("no pairing PIN configured, new devices cannot pair")
	}

	deps := adapterHTTP.RouterDependencies{
		AuthHandler:      adapterHTTP.NewAuthHandler(services.NewAuthService(cfg.Auth.PINHash, tokens)),
		AnalyticsHandler: adapterHTTP.NewAnalyticsHandler(services.NewAnalyticsService(providers, loc, clock)),
		SettingsHandler:  adapterHTTP.NewSettingsHandler(services.NewSettingsService(settings)),
		TokenService:     tokens,
		DB:               a.db,
		Redis:            a.redis,
		StartTime:        time.Now(),
	}
	if cfg.RateLimit.Enabled {
		deps.RateLimit = &adapterHTTP.RateLimit{
			Requests: cfg.RateLimit.Requests,
			Window:   cfg.RateLimit.Window,
		}
	}

	gin.SetMode(cfg.Server.Mode)
	a.router = adapterHTTP.NewRouter(deps)

	return a, nil
}
