package domain

import (
	"errors"
	"time"
)

var (
	ErrDuplicateRecord = errors.New("record already exists")
	ErrUnknownRecord   = errors.New("referenced record does not exist")
)

// Habit is a tracked habit with its completion history keyed by date key.
type Habit struct {
	ID          string          `json:"id" db:"id"`
	Name        string          `json:"name" db:"name"`
	SortOrder   int             `json:"sort_order" db:"sort_order"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	Completions map[string]bool `json:"completions,omitempty" db:"-"`
}

func (h Habit) CompletedOn(dateKey string) bool {
	return h.Completions[dateKey]
}

type Workout struct {
	ID              string    `json:"id" db:"id"`
	DateKey         string    `json:"date_key" db:"date_key"`
	Kind            string    `json:"kind" db:"kind"`
	DurationMinutes int       `json:"duration_minutes" db:"duration_minutes"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

// JournalEntry is an inventory or gratitude entry. Only its creation time
// matters for scoring.
type JournalEntry struct {
	ID        string    `json:"id" db:"id"`
	Text      string    `json:"text" db:"text"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// SobrietyCounter is one sobriety tracker with its per-date tracked flags.
type SobrietyCounter struct {
	ID        string          `json:"id" db:"id"`
	Name      string          `json:"name" db:"name"`
	StartDate string          `json:"start_date" db:"start_date"`
	Tracked   map[string]bool `json:"tracked,omitempty" db:"-"`
}

func (c SobrietyCounter) TrackedOn(dateKey string) bool {
	return c.Tracked[dateKey]
}
