package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/mennyg19-cmyk/JustForToday-sub001/internal/core/domain"
)

var (
	_ domain.HabitReader        = (*InMemoryStore)(nil)
	_ domain.StepsReader        = (*InMemoryStore)(nil)
	_ domain.WorkoutReader      = (*InMemoryStore)(nil)
	_ domain.JournalReader      = (*InMemoryStore)(nil)
	_ domain.FastingReader      = (*InMemoryStore)(nil)
	_ domain.SobrietyReader     = (*InMemoryStore)(nil)
	_ domain.StoicReader        = (*InMemoryStore)(nil)
	_ domain.SettingsRepository = (*InMemoryStore)(nil)
)

// InMemoryStore implements every reader and the settings repository. Reads
// return copies so callers never share state with the store.
type InMemoryStore struct {
	habits    map[string]*domain.Habit
	steps     map[string]int
	workouts  map[string][]domain.Workout
	inventory []domain.JournalEntry
	gratitude []domain.JournalEntry
	fasting   map[string]float64
	sobriety  map[string]*domain.SobrietyCounter
	stoic     map[string]bool

	goals          *domain.Goals
	visibility     domain.Visibility
	moduleSettings domain.ModuleSettings

	mu sync.RWMutex
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		habits:         make(map[string]*domain.Habit),
		steps:          make(map[string]int),
		workouts:       make(map[string][]domain.Workout),
		fasting:        make(map[string]float64),
		sobriety:       make(map[string]*domain.SobrietyCounter),
		stoic:          make(map[string]bool),
		visibility:     domain.Visibility{},
		moduleSettings: domain.ModuleSettings{},
	}
}

func (s *InMemoryStore) ListHabits(ctx context.Context) ([]domain.Habit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	habits := make([]domain.Habit, 0, len(s.habits))
	for _, h := range s.habits {
		c := *h
		c.Completions = copyFlags(h.Completions)
		habits = append(habits, c)
	}

	sort.Slice(habits, func(i, j int) bool {
		if habits[i].SortOrder != habits[j].SortOrder {
			return habits[i].SortOrder < habits[j].SortOrder
		}
		return habits[i].CreatedAt.Before(habits[j].CreatedAt)
	})

	return habits, nil
}

func (s *InMemoryStore) StepsForDates(ctx context.Context, dateKeys []string) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]int)
	for _, key := range dateKeys {
		if v, ok := s.steps[key]; ok {
			out[key] = v
		}
	}
	return out, nil
}

func (s *InMemoryStore) WorkoutsForDates(ctx context.Context, dateKeys []string) (map[string][]domain.Workout, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string][]domain.Workout)
	for _, key := range dateKeys {
		if ws := s.workouts[key]; len(ws) > 0 {
			out[key] = append([]domain.Workout(nil), ws...)
		}
	}
	return out, nil
}

func (s *InMemoryStore) InventoryEntries(ctx context.Context) ([]domain.JournalEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.JournalEntry{}, s.inventory...), nil
}

func (s *InMemoryStore) GratitudeEntries(ctx context.Context) ([]domain.JournalEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.JournalEntry{}, s.gratitude...), nil
}

func (s *InMemoryStore) FastingHoursForDates(ctx context.Context, dateKeys []string) (map[string]float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]float64)
	for _, key := range dateKeys {
		if v, ok := s.fasting[key]; ok {
			out[key] = v
		}
	}
	return out, nil
}

func (s *InMemoryStore) ListSobrietyCounters(ctx context.Context) ([]domain.SobrietyCounter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counters := make([]domain.SobrietyCounter, 0, len(s.sobriety))
	for _, c := range s.sobriety {
		cp := *c
		cp.Tracked = copyFlags(c.Tracked)
		counters = append(counters, cp)
	}
	sort.Slice(counters, func(i, j int) bool {
		return counters[i].ID < counters[j].ID
	})
	return counters, nil
}

func (s *InMemoryStore) ReflectionDoneForDates(ctx context.Context, dateKeys []string) (map[string]bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]bool)
	for _, key := range dateKeys {
		if s.stoic[key] {
			out[key] = true
		}
	}
	return out, nil
}

func (s *InMemoryStore) Goals(ctx context.Context) (domain.Goals, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.goals == nil {
		return domain.DefaultGoals(), nil
	}
	return *s.goals, nil
}

func (s *InMemoryStore) Visibility(ctx context.Context) (domain.Visibility, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.DefaultVisibility().Merge(s.visibility), nil
}

func (s *InMemoryStore) ModuleSettings(ctx context.Context) (domain.ModuleSettings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(domain.ModuleSettings, len(s.moduleSettings))
	for k, v := range s.moduleSettings {
		out[k] = v
	}
	return out, nil
}

func (s *InMemoryStore) SaveGoals(ctx context.Context, goals domain.Goals) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.goals = &goals
	return nil
}

func (s *InMemoryStore) SaveVisibility(ctx context.Context, v domain.Visibility) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.visibility = domain.Visibility{}.Merge(v)
	return nil
}

func (s *InMemoryStore) SaveModuleSettings(ctx context.Context, settings domain.ModuleSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.moduleSettings = make(domain.ModuleSettings, len(settings))
	for k, v := range settings {
		s.moduleSettings[k] = v
	}
	return nil
}

func (s *InMemoryStore) AddHabit(h domain.Habit) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	h.Completions = copyFlags(h.Completions)
	if h.Completions == nil {
		h.Completions = make(map[string]bool)
	}
	s.habits[h.ID] = &h
	return h.ID
}

func (s *InMemoryStore) SetHabitCompletion(habitID, dateKey string, done bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.habits[habitID]
	if !ok {
		return domain.ErrUnknownRecord
	}
	if done {
		h.Completions[dateKey] = true
	} else {
		delete(h.Completions, dateKey)
	}
	return nil
}

func (s *InMemoryStore) SetSteps(dateKey string, steps int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.steps[dateKey] = steps
}

func (s *InMemoryStore) AddWorkout(w domain.Workout) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	s.workouts[w.DateKey] = append(s.workouts[w.DateKey], w)
}

func (s *InMemoryStore) AddInventory(e domain.JournalEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inventory = append(s.inventory, e)
}

func (s *InMemoryStore) AddGratitude(e domain.JournalEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gratitude = append(s.gratitude, e)
}

func (s *InMemoryStore) SetFasting(dateKey string, hours float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fasting[dateKey] = hours
}

func (s *InMemoryStore) AddSobrietyCounter(c domain.SobrietyCounter) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.Tracked = copyFlags(c.Tracked)
	if c.Tracked == nil {
		c.Tracked = make(map[string]bool)
	}
	s.sobriety[c.ID] = &c
	return c.ID
}

func (s *InMemoryStore) SetStoicDone(dateKey string, done bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if done {
		s.stoic[dateKey] = true
	} else {
		delete(s.stoic, dateKey)
	}
}

func copyFlags(in map[string]bool) map[string]bool {
	if in == nil {
		return nil
	}
	out := make(map[string]bool, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
