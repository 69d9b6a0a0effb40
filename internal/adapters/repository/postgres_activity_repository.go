package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/mennyg19-cmyk/JustForToday-sub001/internal/core/domain"
)

var (
	_ domain.StepsReader   = (*PostgresActivityRepository)(nil)
	_ domain.WorkoutReader = (*PostgresActivityRepository)(nil)
	_ domain.FastingReader = (*PostgresActivityRepository)(nil)
)

// PostgresActivityRepository serves the per-date numeric modules: steps,
// workouts and fasting.
type PostgresActivityRepository struct {
	db *sqlx.DB
}

func NewPostgresActivityRepository(db *sqlx.DB) *PostgresActivityRepository {
	return &PostgresActivityRepository{db: db}
}

func (r *PostgresActivityRepository) StepsForDates(ctx context.Context, dateKeys []string) (map[string]int, error) {
	var rows []struct {
		DateKey string `db:"date_key"`
		Steps   int    `db:"steps"`
	}
	query := fmt.Sprintf(`
        SELECT %s AS date_key, steps
        FROM step_counts
        WHERE date_key = ANY($1::date[])`, dateKeyColumn("date_key"))

	if err := r.db.SelectContext(ctx, &rows, query, dateKeyArray(dateKeys)); err != nil {
		return nil, fmt.Errorf("repository: steps for dates failed: %w", err)
	}

	out := make(map[string]int, len(rows))
	for _, row := range rows {
		out[row.DateKey] = row.Steps
	}
	return out, nil
}

func (r *PostgresActivityRepository) WorkoutsForDates(ctx context.Context, dateKeys []string) (map[string][]domain.Workout, error) {
	var workouts []domain.Workout
	query := fmt.Sprintf(`
        SELECT id, %s AS date_key, kind, duration_minutes, created_at
        FROM workouts
        WHERE date_key = ANY($1::date[])
        ORDER BY created_at ASC`, dateKeyColumn("date_key"))

	if err := r.db.SelectContext(ctx, &workouts, query, dateKeyArray(dateKeys)); err != nil {
		return nil, fmt.Errorf("repository: workouts for dates failed: %w", err)
	}

	out := make(map[string][]domain.Workout)
	for _, w := range workouts {
		out[w.DateKey] = append(out[w.DateKey], w)
	}
	return out, nil
}

func (r *PostgresActivityRepository) FastingHoursForDates(ctx context.Context, dateKeys []string) (map[string]float64, error) {
	var rows []struct {
		DateKey string  `db:"date_key"`
		Hours   float64 `db:"hours"`
	}
	query := fmt.Sprintf(`
        SELECT %s AS date_key, hours
        FROM fasting_hours
        WHERE date_key = ANY($1::date[])`, dateKeyColumn("date_key"))

	if err := r.db.SelectContext(ctx, &rows, query, dateKeyArray(dateKeys)); err != nil {
		return nil, fmt.Errorf("repository: fasting hours for dates failed: %w", err)
	}

	out := make(map[string]float64, len(rows))
	for _, row := range rows {
		out[row.DateKey] = row.Hours
	}
	return out, nil
}

// RecordSteps stores the step total for a date, replacing any earlier value.
func (r *PostgresActivityRepository) RecordSteps(ctx context.Context, dateKey string, steps int) error {
	if !domain.IsDateKey(dateKey) {
		return domain.ErrInvalidDateKey
	}
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO step_counts (date_key, steps) VALUES ($1::date, $2)
        ON CONFLICT (date_key) DO UPDATE SET steps = EXCLUDED.steps`, dateKey, steps)
	if err != nil {
		return translateWriteError("record steps", err)
	}
	return nil
}

func (r *PostgresActivityRepository) AddWorkout(ctx context.Context, w *domain.Workout) error {
	if !domain.IsDateKey(w.DateKey) {
		return domain.ErrInvalidDateKey
	}
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	if w.CreatedAt.IsZero() {
		w.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, `
        INSERT INTO workouts (id, date_key, kind, duration_minutes, created_at)
        VALUES ($1, $2::date, $3, $4, $5)`,
		w.ID, w.DateKey, w.Kind, w.DurationMinutes, w.CreatedAt)
	if err != nil {
		return translateWriteError("add workout", err)
	}
	return nil
}

func (r *PostgresActivityRepository) RecordFasting(ctx context.Context, dateKey string, hours float64) error {
	if !domain.IsDateKey(dateKey) {
		return domain.ErrInvalidDateKey
	}
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO fasting_hours (date_key, hours) VALUES ($1::date, $2)
        ON CONFLICT (date_key) DO UPDATE SET hours = EXCLUDED.hours`, dateKey, hours)
	if err != nil {
		return translateWriteError("record fasting", err)
	}
	return nil
}
