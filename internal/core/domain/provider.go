package domain

import "context"

type HabitReader interface {
	// ListHabits returns every active habit with its full completion history.
	ListHabits(ctx context.Context) ([]Habit, error)
}

type StepsReader interface {
	// StepsForDates returns the step count per date key. Missing keys mean 0.
	StepsForDates(ctx context.Context, dateKeys []string) (map[string]int, error)
}

type WorkoutReader interface {
	WorkoutsForDates(ctx context.Context, dateKeys []string) (map[string][]Workout, error)
}

type JournalReader interface {
	// InventoryEntries returns all inventory entries ever written.
	InventoryEntries(ctx context.Context) ([]JournalEntry, error)

	// GratitudeEntries returns all gratitude entries ever written.
	GratitudeEntries(ctx context.Context) ([]JournalEntry, error)
}

type FastingReader interface {
	FastingHoursForDates(ctx context.Context, dateKeys []string) (map[string]float64, error)
}

type SobrietyReader interface {
	// ListSobrietyCounters returns every counter with its tracked history.
	ListSobrietyCounters(ctx context.Context) ([]SobrietyCounter, error)
}

type StoicReader interface {
	ReflectionDoneForDates(ctx context.Context, dateKeys []string) (map[string]bool, error)
}

// SettingsReader returns already validated settings. Implementations merge
// stored values over the defaults.
type SettingsReader interface {
	Goals(ctx context.Context) (Goals, error)
	Visibility(ctx context.Context) (Visibility, error)
	ModuleSettings(ctx context.Context) (ModuleSettings, error)
}

type SettingsRepository interface {
	SettingsReader

	SaveGoals(ctx context.Context, goals Goals) error
	SaveVisibility(ctx context.Context, v Visibility) error
	SaveModuleSettings(ctx context.Context, s ModuleSettings) error
}
