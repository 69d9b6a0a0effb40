package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/mennyg19-cmyk/JustForToday-sub001/internal/core/domain"

	_ "github.com/jackc/pgx/v5/stdlib"
)

var _ domain.HabitReader = (*PostgresHabitRepository)(nil)

type PostgresHabitRepository struct {
	db *sqlx.DB
}

func NewPostgresHabitRepository(db *sqlx.DB) *PostgresHabitRepository {
	return &PostgresHabitRepository{db: db}
}

type habitCompletionRow struct {
	HabitID string `db:"habit_id"`
	DateKey string `db:"date_key"`
}

// ListHabits returns active habits with their completion history.
func (r *PostgresHabitRepository) ListHabits(ctx context.Context) ([]domain.Habit, error) {
	habits := []domain.Habit{}
	query := `
        SELECT id, name, sort_order, created_at
        FROM habits
        WHERE archived_at IS NULL
        ORDER BY sort_order ASC, created_at ASC`

	if err := r.db.SelectContext(ctx, &habits, query); err != nil {
		return nil, fmt.Errorf("repository: list habits failed: %w", err)
	}
	if len(habits) == 0 {
		return habits, nil
	}

	ids := make([]string, len(habits))
	for i, h := range habits {
		ids[i] = h.ID
	}

	var rows []habitCompletionRow
	completionsQuery := fmt.Sprintf(`
        SELECT habit_id, %s AS date_key
        FROM habit_completions
        WHERE habit_id = ANY($1::text[])`, dateKeyColumn("date_key"))

	if err := r.db.SelectContext(ctx, &rows, completionsQuery, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("repository: list habit completions failed: %w", err)
	}

	byHabit := make(map[string]map[string]bool, len(habits))
	for _, row := range rows {
		if byHabit[row.HabitID] == nil {
			byHabit[row.HabitID] = make(map[string]bool)
		}
		byHabit[row.HabitID][row.DateKey] = true
	}
	for i := range habits {
		habits[i].Completions = byHabit[habits[i].ID]
	}

	return habits, nil
}

func (r *PostgresHabitRepository) CreateHabit(ctx context.Context, h *domain.Habit) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	if h.CreatedAt.IsZero() {
		h.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO habits (id, name, sort_order, created_at) VALUES (:id, :name, :sort_order, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, h); err != nil {
		return translateWriteError("create habit", err)
	}
	return nil
}

func (r *PostgresHabitRepository) ArchiveHabit(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE habits SET archived_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("repository: archive habit failed: %w", err)
	}
	return nil
}

// SetCompletion marks or clears a habit for one date.
func (r *PostgresHabitRepository) SetCompletion(ctx context.Context, habitID, dateKey string, done bool) error {
	if !domain.IsDateKey(dateKey) {
		return domain.ErrInvalidDateKey
	}

	var err error
	if done {
		_, err = r.db.ExecContext(ctx, `
            INSERT INTO habit_completions (habit_id, date_key) VALUES ($1, $2::date)
            ON CONFLICT DO NOTHING`, habitID, dateKey)
	} else {
		_, err = r.db.ExecContext(ctx,
			`DELETE FROM habit_completions WHERE habit_id = $1 AND date_key = $2::date`, habitID, dateKey)
	}
	if err != nil {
		return translateWriteError("set habit completion", err)
	}
	return nil
}
