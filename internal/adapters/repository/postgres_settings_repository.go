package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/jmoiron/sqlx"

	"github.com/mennyg19-cmyk/JustForToday-sub001/internal/core/domain"
)

var _ domain.SettingsRepository = (*PostgresSettingsRepository)(nil)

const (
	settingsKeyGoals          = "goals"
	settingsKeyVisibility     = "visibility"
	settingsKeyModuleSettings = "module_settings"
)

// PostgresSettingsRepository keeps each settings group as one JSONB row.
// Missing rows read as the defaults.
type PostgresSettingsRepository struct {
	db *sqlx.DB
}

func NewPostgresSettingsRepository(db *sqlx.DB) *PostgresSettingsRepository {
	return &PostgresSettingsRepository{db: db}
}

func (r *PostgresSettingsRepository) load(ctx context.Context, key string, dest interface{}) error {
	var raw []byte
	err := r.db.GetContext(ctx, &raw, `SELECT value FROM app_settings WHERE key = $1`, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		return fmt.Errorf("repository: load %s failed: %w", key, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrSettingsUnreadable, key, err)
	}
	return nil
}

func (r *PostgresSettingsRepository) save(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("repository: encode %s failed: %w", key, err)
	}

	_, err = r.db.ExecContext(ctx, `
        INSERT INTO app_settings (key, value, updated_at) VALUES ($1, $2::jsonb, NOW())
        ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`,
		key, string(data))
	if err != nil {
		return translateWriteError("save "+key, err)
	}
	return nil
}

func (r *PostgresSettingsRepository) Goals(ctx context.Context) (domain.Goals, error) {
	goals := domain.DefaultGoals()
	if err := r.load(ctx, settingsKeyGoals, &goals); err != nil {
		return domain.Goals{}, err
	}
	if err := goals.Validate(); err != nil {
		return domain.Goals{}, fmt.Errorf("%w: %v", domain.ErrSettingsUnreadable, err)
	}
	return goals, nil
}

func (r *PostgresSettingsRepository) Visibility(ctx context.Context) (domain.Visibility, error) {
	stored := domain.Visibility{}
	if err := r.load(ctx, settingsKeyVisibility, &stored); err != nil {
		return nil, err
	}
	return domain.DefaultVisibility().Merge(stored), nil
}

func (r *PostgresSettingsRepository) ModuleSettings(ctx context.Context) (domain.ModuleSettings, error) {
	settings := domain.ModuleSettings{}
	if err := r.load(ctx, settingsKeyModuleSettings, &settings); err != nil {
		return nil, err
	}
	for m, s := range settings {
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrSettingsUnreadable, m, err)
		}
	}
	return settings, nil
}

func (r *PostgresSettingsRepository) SaveGoals(ctx context.Context, goals domain.Goals) error {
	return r.save(ctx, settingsKeyGoals, goals)
}

func (r *PostgresSettingsRepository) SaveVisibility(ctx context.Context, v domain.Visibility) error {
	return r.save(ctx, settingsKeyVisibility, v)
}

func (r *PostgresSettingsRepository) SaveModuleSettings(ctx context.Context, s domain.ModuleSettings) error {
	return r.save(ctx, settingsKeyModuleSettings, s)
}
