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
	_ domain.JournalReader = (*PostgresJournalRepository)(nil)
	_ domain.StoicReader   = (*PostgresJournalRepository)(nil)
)

type JournalKind string

const (
	JournalInventory JournalKind = "inventory"
	JournalGratitude JournalKind = "gratitude"
)

// PostgresJournalRepository holds the written modules: inventory and
// gratitude entries and the daily stoic reflection.
type PostgresJournalRepository struct {
	db *sqlx.DB
}

func NewPostgresJournalRepository(db *sqlx.DB) *PostgresJournalRepository {
	return &PostgresJournalRepository{db: db}
}

func (r *PostgresJournalRepository) InventoryEntries(ctx context.Context) ([]domain.JournalEntry, error) {
	return r.entries(ctx, JournalInventory)
}

func (r *PostgresJournalRepository) GratitudeEntries(ctx context.Context) ([]domain.JournalEntry, error) {
	return r.entries(ctx, JournalGratitude)
}

func (r *PostgresJournalRepository) entries(ctx context.Context, kind JournalKind) ([]domain.JournalEntry, error) {
	entries := []domain.JournalEntry{}
	query := `
        SELECT id, text, created_at
        FROM journal_entries
        WHERE kind = $1
        ORDER BY created_at ASC`

	if err := r.db.SelectContext(ctx, &entries, query, string(kind)); err != nil {
		return nil, fmt.Errorf("repository: list %s entries failed: %w", kind, err)
	}
	return entries, nil
}

func (r *PostgresJournalRepository) AddEntry(ctx context.Context, kind JournalKind, e *domain.JournalEntry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, `
        INSERT INTO journal_entries (id, kind, text, created_at) VALUES ($1, $2, $3, $4)`,
		e.ID, string(kind), e.Text, e.CreatedAt)
	if err != nil {
		return translateWriteError("add journal entry", err)
	}
	return nil
}

func (r *PostgresJournalRepository) ReflectionDoneForDates(ctx context.Context, dateKeys []string) (map[string]bool, error) {
	var done []string
	query := fmt.Sprintf(`
        SELECT %s
        FROM stoic_reflections
        WHERE date_key = ANY($1::date[])`, dateKeyColumn("date_key"))

	if err := r.db.SelectContext(ctx, &done, query, dateKeyArray(dateKeys)); err != nil {
		return nil, fmt.Errorf("repository: reflections for dates failed: %w", err)
	}

	out := make(map[string]bool, len(done))
	for _, key := range done {
		out[key] = true
	}
	return out, nil
}

func (r *PostgresJournalRepository) RecordReflection(ctx context.Context, dateKey, text string) error {
	if !domain.IsDateKey(dateKey) {
		return domain.ErrInvalidDateKey
	}
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO stoic_reflections (date_key, text) VALUES ($1::date, $2)
        ON CONFLICT (date_key) DO UPDATE SET text = EXCLUDED.text`, dateKey, text)
	if err != nil {
		return translateWriteError("record reflection", err)
	}
	return nil
}
