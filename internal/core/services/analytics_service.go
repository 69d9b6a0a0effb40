package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mennyg19-cmyk/JustForToday-sub001/internal/core/domain"
	"github.com/mennyg19-cmyk/JustForToday-sub001/internal/core/scoring"
	"github.com/mennyg19-cmyk/JustForToday-sub001/internal/logging"
	"github.com/mennyg19-cmyk/JustForToday-sub001/internal/metrics"
)

const (
	yearDays            = 365
	dashboardWeeks      = 12
	suggestionsWindow   = 30
	providerUnspecified = "unknown"
)

// Providers groups every collaborator the engine reads from.
type Providers struct {
	Habits   domain.HabitReader
	Steps    domain.StepsReader
	Workouts domain.WorkoutReader
	Journal  domain.JournalReader
	Fasting  domain.FastingReader
	Sobriety domain.SobrietyReader
	Stoic    domain.StoicReader
	Settings domain.SettingsReader
}

type AnalyticsService struct {
	providers Providers
	loc       *time.Location
	now       func() time.Time
}

// NewAnalyticsService builds the service. A nil clock means time.Now and a nil
// location means time.Local.
func NewAnalyticsService(providers Providers, loc *time.Location, clock func() time.Time) *AnalyticsService {
	if loc == nil {
		loc = time.Local
	}
	if clock == nil {
		clock = time.Now
	}
	return &AnalyticsService{
		providers: providers,
		loc:       loc,
		now:       clock,
	}
}

// providerError keeps the failing provider name for logs and metrics while
// leaving the original error reachable through errors.Is.
type providerError struct {
	provider string
	err      error
}

func (e *providerError) Error() string {
	return fmt.Sprintf("analytics service: %s: %v", e.provider, e.err)
}

func (e *providerError) Unwrap() error {
	return e.err
}

func wrapProvider(provider string, err error) error {
	if err == nil {
		return nil
	}
	return &providerError{provider: provider, err: err}
}

func (s *AnalyticsService) DailyScoresForLastDays(ctx context.Context, days int) ([]domain.DayScore, error) {
	if days <= 0 {
		return nil, fmt.Errorf("%w: days must be positive", domain.ErrInvalidRange)
	}
	scores, _, err := s.compute(ctx, "daily", days)
	return scores, err
}

func (s *AnalyticsService) WeeklyScoresForLastWeeks(ctx context.Context, weeks int) ([]domain.WeekScore, error) {
	if weeks <= 0 {
		return nil, fmt.Errorf("%w: weeks must be positive", domain.ErrInvalidRange)
	}
	days, _, err := s.compute(ctx, "weekly", scoring.WeeklyLookbackDays(weeks))
	if err != nil {
		return nil, err
	}
	return scoring.AggregateWeekly(days, weeks), nil
}

func (s *AnalyticsService) MonthlyScoresForLastMonths(ctx context.Context, months int) ([]domain.MonthScore, error) {
	if months <= 0 {
		return nil, fmt.Errorf("%w: months must be positive", domain.ErrInvalidRange)
	}
	lookback := scoring.MonthlyLookbackDays(months)
	if lookback > scoring.DefaultMonthlyLookbackDays {
		logging.Ctx(ctx).Debug().
			Int("months", months).
			Int("lookback_days", lookback).
			Msg("monthly lookback widened beyond default window")
	}
	days, _, err := s.compute(ctx, "monthly", lookback)
	if err != nil {
		return nil, err
	}
	return scoring.AggregateMonthly(days, months), nil
}

// SuggestionsFromScores ranks an already computed series. It does no I/O.
func (s *AnalyticsService) SuggestionsFromScores(days []domain.DayScore, visibility domain.Visibility) []domain.Suggestion {
	return scoring.RankSuggestions(days, visibility)
}

// Suggestions computes the trailing series and ranks it against the same
// visibility snapshot the scores were computed with.
func (s *AnalyticsService) Suggestions(ctx context.Context, days int) ([]domain.Suggestion, error) {
	if days <= 0 {
		return nil, fmt.Errorf("%w: days must be positive", domain.ErrInvalidRange)
	}
	scores, sc, err := s.compute(ctx, "suggestions", days)
	if err != nil {
		return nil, err
	}
	return scoring.RankSuggestions(scores, sc.Visibility), nil
}

// DrillDown resolves a heatmap selection against the trailing year. A nil
// breakdown with a nil error means there is no data for the selection.
func (s *AnalyticsService) DrillDown(ctx context.Context, sel domain.DrillDownSelector) (*domain.Breakdown, error) {
	if err := sel.Validate(); err != nil {
		return nil, err
	}
	yearly, _, err := s.compute(ctx, "drilldown", yearDays)
	if err != nil {
		return nil, err
	}
	breakdown, ok := scoring.ResolveDrillDown(sel, yearly)
	if !ok {
		return nil, nil
	}
	return breakdown, nil
}

func (s *AnalyticsService) Dashboard(ctx context.Context) (*domain.Dashboard, error) {
	days, sc, err := s.compute(ctx, "dashboard", scoring.WeeklyLookbackDays(dashboardWeeks))
	if err != nil {
		return nil, err
	}

	weeks := scoring.AggregateWeekly(days, dashboardWeeks)
	recent := days[max(0, len(days)-suggestionsWindow):]

	return &domain.Dashboard{
		Today:       days[len(days)-1],
		Weeks:       weeks,
		TrendDelta:  scoring.TrendDelta(weeks),
		Suggestions: scoring.RankSuggestions(recent, sc.Visibility),
	}, nil
}

// compute reads every collaborator once for the window ending today and
// scores it. Reads run concurrently; the first failure cancels the rest and
// is returned, so a computation either fully succeeds or fails.
func (s *AnalyticsService) compute(ctx context.Context, operation string, days int) ([]domain.DayScore, scoring.ScoringContext, error) {
	start := time.Now()
	defer func() {
		metrics.ScoreComputeDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	}()

	keys := domain.LastNDateKeys(s.now(), s.loc, days)

	sc, in, err := s.fetch(ctx, keys)
	if err != nil {
		provider := providerUnspecified
		var pe *providerError
		if errors.As(err, &pe) {
			provider = pe.provider
		}
		metrics.ScoreComputeErrors.WithLabelValues(operation, provider).Inc()
		logging.Ctx(ctx).Error().Err(err).
			Str("operation", operation).
			Str("provider", provider).
			Msg("score computation aborted")
		return nil, scoring.ScoringContext{}, err
	}

	scores := scoring.ComputeDailyScores(sc, in, keys)
	metrics.ScoredDays.Add(float64(len(scores)))

	logging.Ctx(ctx).Debug().
		Str("operation", operation).
		Int("days", len(scores)).
		Dur("elapsed", time.Since(start)).
		Msg("scores computed")

	return scores, sc, nil
}

func (s *AnalyticsService) fetch(ctx context.Context, keys []string) (scoring.ScoringContext, scoring.DailyInputs, error) {
	p := s.providers
	g, gctx := errgroup.WithContext(ctx)

	var (
		visibility domain.Visibility
		settings   domain.ModuleSettings
		goals      domain.Goals
		in         = scoring.DailyInputs{Location: s.loc}
	)

	g.Go(func() (err error) {
		visibility, err = p.Settings.Visibility(gctx)
		return wrapProvider("visibility", err)
	})
	g.Go(func() (err error) {
		settings, err = p.Settings.ModuleSettings(gctx)
		return wrapProvider("module settings", err)
	})
	g.Go(func() (err error) {
		goals, err = p.Settings.Goals(gctx)
		return wrapProvider("goals", err)
	})
	g.Go(func() (err error) {
		in.Habits, err = p.Habits.ListHabits(gctx)
		return wrapProvider("habits", err)
	})
	g.Go(func() (err error) {
		in.Steps, err = p.Steps.StepsForDates(gctx, keys)
		return wrapProvider("steps", err)
	})
	g.Go(func() (err error) {
		in.Workouts, err = p.Workouts.WorkoutsForDates(gctx, keys)
		return wrapProvider("workouts", err)
	})
	g.Go(func() (err error) {
		in.Inventory, err = p.Journal.InventoryEntries(gctx)
		return wrapProvider("inventory", err)
	})
	g.Go(func() (err error) {
		in.Gratitude, err = p.Journal.GratitudeEntries(gctx)
		return wrapProvider("gratitude", err)
	})
	g.Go(func() (err error) {
		in.FastingHours, err = p.Fasting.FastingHoursForDates(gctx, keys)
		return wrapProvider("fasting", err)
	})
	g.Go(func() (err error) {
		in.SobrietyCounters, err = p.Sobriety.ListSobrietyCounters(gctx)
		return wrapProvider("sobriety", err)
	})
	g.Go(func() (err error) {
		in.StoicDone, err = p.Stoic.ReflectionDoneForDates(gctx, keys)
		return wrapProvider("stoic", err)
	})

	if err := g.Wait(); err != nil {
		return scoring.ScoringContext{}, scoring.DailyInputs{}, err
	}

	return scoring.NewScoringContext(visibility, settings, goals), in, nil
}
