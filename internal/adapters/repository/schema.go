package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const schema = `
CREATE TABLE IF NOT EXISTS habits (
    id          TEXT PRIMARY KEY,
    name        TEXT NOT NULL,
    sort_order  INTEGER NOT NULL DEFAULT 0,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    archived_at TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS habit_completions (
    habit_id TEXT NOT NULL REFERENCES habits(id) ON DELETE CASCADE,
    date_key DATE NOT NULL,
    PRIMARY KEY (habit_id, date_key)
);

CREATE TABLE IF NOT EXISTS step_counts (
    date_key DATE PRIMARY KEY,
    steps    INTEGER NOT NULL CHECK (steps >= 0)
);

CREATE TABLE IF NOT EXISTS workouts (
    id               TEXT PRIMARY KEY,
    date_key         DATE NOT NULL,
    kind             TEXT NOT NULL DEFAULT '',
    duration_minutes INTEGER NOT NULL DEFAULT 0,
    created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_workouts_date_key ON workouts (date_key);

CREATE TABLE IF NOT EXISTS journal_entries (
    id         TEXT PRIMARY KEY,
    kind       TEXT NOT NULL CHECK (kind IN ('inventory', 'gratitude')),
    text       TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_journal_entries_kind ON journal_entries (kind, created_at);

CREATE TABLE IF NOT EXISTS fasting_hours (
    date_key DATE PRIMARY KEY,
    hours    DOUBLE PRECISION NOT NULL CHECK (hours >= 0)
);

CREATE TABLE IF NOT EXISTS sobriety_counters (
    id         TEXT PRIMARY KEY,
    name       TEXT NOT NULL,
    start_date DATE NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS sobriety_tracked (
    counter_id TEXT NOT NULL REFERENCES sobriety_counters(id) ON DELETE CASCADE,
    date_key   DATE NOT NULL,
    PRIMARY KEY (counter_id, date_key)
);

CREATE TABLE IF NOT EXISTS stoic_reflections (
    date_key   DATE PRIMARY KEY,
    text       TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS app_settings (
    key        TEXT PRIMARY KEY,
    value      JSONB NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

// CreateSchema creates every table the readers need. It is safe to run on
// every start.
func CreateSchema(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}
