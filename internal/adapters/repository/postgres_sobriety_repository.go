package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/mennyg19-cmyk/JustForToday-sub001/internal/core/domain"
)

var _ domain.SobrietyReader = (*PostgresSobrietyRepository)(nil)

type PostgresSobrietyRepository struct {
	db *sqlx.DB
}

func NewPostgresSobrietyRepository(db *sqlx.DB) *PostgresSobrietyRepository {
	return &PostgresSobrietyRepository{db: db}
}

func (r *PostgresSobrietyRepository) ListSobrietyCounters(ctx context.Context) ([]domain.SobrietyCounter, error) {
	counters := []domain.SobrietyCounter{}
	query := fmt.Sprintf(`
        SELECT id, name, %s AS start_date
        FROM sobriety_counters
        ORDER BY created_at ASC`, dateKeyColumn("start_date"))

	if err := r.db.SelectContext(ctx, &counters, query); err != nil {
		return nil, fmt.Errorf("repository: list sobriety counters failed: %w", err)
	}
	if len(counters) == 0 {
		return counters, nil
	}

	var rows []struct {
		CounterID string `db:"counter_id"`
		DateKey   string `db:"date_key"`
	}
	trackedQuery := fmt.Sprintf(`
        SELECT counter_id, %s AS date_key
        FROM sobriety_tracked`, dateKeyColumn("date_key"))

	if err := r.db.SelectContext(ctx, &rows, trackedQuery); err != nil {
		return nil, fmt.Errorf("repository: list sobriety tracking failed: %w", err)
	}

	byCounter := make(map[string]map[string]bool, len(counters))
	for _, row := range rows {
		if byCounter[row.CounterID] == nil {
			byCounter[row.CounterID] = make(map[string]bool)
		}
		byCounter[row.CounterID][row.DateKey] = true
	}
	for i := range counters {
		counters[i].Tracked = byCounter[counters[i].ID]
	}

	return counters, nil
}

func (r *PostgresSobrietyRepository) CreateCounter(ctx context.Context, c *domain.SobrietyCounter) error {
	if !domain.IsDateKey(c.StartDate) {
		return domain.ErrInvalidDateKey
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sobriety_counters (id, name, start_date) VALUES ($1, $2, $3::date)`,
		c.ID, c.Name, c.StartDate)
	if err != nil {
		return translateWriteError("create sobriety counter", err)
	}
	return nil
}

func (r *PostgresSobrietyRepository) MarkTracked(ctx context.Context, counterID, dateKey string) error {
	if !domain.IsDateKey(dateKey) {
		return domain.ErrInvalidDateKey
	}
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO sobriety_tracked (counter_id, date_key) VALUES ($1, $2::date)
        ON CONFLICT DO NOTHING`, counterID, dateKey)
	if err != nil {
		return translateWriteError("mark sobriety tracked", err)
	}
	return nil
}
