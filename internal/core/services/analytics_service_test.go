package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mennyg19-cmyk/JustForToday-sub001/internal/adapters/repository"
	"github.com/mennyg19-cmyk/JustForToday-sub001/internal/core/domain"
	"github.com/mennyg19-cmyk/JustForToday-sub001/internal/core/services"
)

// 2024-03-06 is a Wednesday.
var fixedNow = time.Date(2024, 3, 6, 12, 0, 0, 0, time.UTC)

func storeProviders(store *repository.InMemoryStore) services.Providers {
	return services.Providers{
		Habits:   store,
		Steps:    store,
		Workouts: store,
		Journal:  store,
		Fasting:  store,
		Sobriety: store,
		Stoic:    store,
		Settings: store,
	}
}

func newAnalytics(p services.Providers) *services.AnalyticsService {
	return services.NewAnalyticsService(p, time.UTC, func() time.Time { return fixedNow })
}

func TestAnalyticsService_DailyScores(t *testing.T) {
	ctx := context.Background()

	t.Run("Success: Window ends today in the configured zone", func(t *testing.T) {
		store := repository.NewInMemoryStore()
		store.SetSteps("2024-03-06", 10000)
		svc := newAnalytics(storeProviders(store))

		days, err := svc.DailyScoresForLastDays(ctx, 3)

		require.NoError(t, err)
		require.Len(t, days, 3)
		assert.Equal(t, "2024-03-04", days[0].DateKey)
		assert.Equal(t, "2024-03-06", days[2].DateKey)
		assert.Equal(t, 100.0, days[2].StepsPct)
		assert.Greater(t, days[2].Score, days[1].Score)
	})

	t.Run("Success: Zone shifts the last date key", func(t *testing.T) {
		store := repository.NewInMemoryStore()
		tokyo := time.FixedZone("JST", 9*60*60)
		late := time.Date(2024, 3, 6, 20, 0, 0, 0, time.UTC)
		svc := services.NewAnalyticsService(storeProviders(store), tokyo, func() time.Time { return late })

		days, err := svc.DailyScoresForLastDays(ctx, 1)

		require.NoError(t, err)
		assert.Equal(t, "2024-03-07", days[0].DateKey)
	})

	t.Run("Fail: Non-positive range", func(t *testing.T) {
		svc := newAnalytics(storeProviders(repository.NewInMemoryStore()))

		_, err := svc.DailyScoresForLastDays(ctx, 0)
		assert.ErrorIs(t, err, domain.ErrInvalidRange)

		_, err = svc.WeeklyScoresForLastWeeks(ctx, -1)
		assert.ErrorIs(t, err, domain.ErrInvalidRange)

		_, err = svc.MonthlyScoresForLastMonths(ctx, 0)
		assert.ErrorIs(t, err, domain.ErrInvalidRange)

		_, err = svc.Suggestions(ctx, 0)
		assert.ErrorIs(t, err, domain.ErrInvalidRange)
	})

	t.Run("Fail: A provider failure fails the whole computation", func(t *testing.T) {
		store := repository.NewInMemoryStore()
		boom := errors.New("steps unavailable")

		steps := new(MockStepsReader)
		steps.On("StepsForDates", mock.Anything, mock.Anything).Return(nil, boom)

		p := storeProviders(store)
		p.Steps = steps
		svc := newAnalytics(p)

		days, err := svc.DailyScoresForLastDays(ctx, 7)

		assert.Nil(t, days)
		assert.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "steps")
		steps.AssertExpectations(t)
	})

	t.Run("Fail: Settings failure fails the computation", func(t *testing.T) {
		store := repository.NewInMemoryStore()
		boom := errors.New("settings store down")

		settings := new(MockSettingsRepo)
		settings.On("Visibility", mock.Anything).Return(nil, boom)
		settings.On("ModuleSettings", mock.Anything).Return(domain.ModuleSettings{}, nil).Maybe()
		settings.On("Goals", mock.Anything).Return(domain.DefaultGoals(), nil).Maybe()

		p := storeProviders(store)
		p.Settings = settings
		svc := newAnalytics(p)

		_, err := svc.Dashboard(ctx)

		assert.ErrorIs(t, err, boom)
	})

	t.Run("Success: Provider receives exactly the window keys", func(t *testing.T) {
		store := repository.NewInMemoryStore()
		steps := new(MockStepsReader)
		steps.On("StepsForDates", mock.Anything, []string{"2024-03-05", "2024-03-06"}).Return(map[string]int{}, nil)

		p := storeProviders(store)
		p.Steps = steps
		svc := newAnalytics(p)

		_, err := svc.DailyScoresForLastDays(ctx, 2)

		require.NoError(t, err)
		steps.AssertExpectations(t)
	})
}

func TestAnalyticsService_Aggregates(t *testing.T) {
	ctx := context.Background()
	store := repository.NewInMemoryStore()
	svc := newAnalytics(storeProviders(store))

	t.Run("Success: Weekly returns the requested buckets ending this week", func(t *testing.T) {
		weeks, err := svc.WeeklyScoresForLastWeeks(ctx, 2)

		require.NoError(t, err)
		require.Len(t, weeks, 2)
		assert.Equal(t, "2024-02-25", weeks[0].DateKey)
		assert.Equal(t, "2024-03-03", weeks[1].DateKey)
	})

	t.Run("Success: Monthly widens the lookback past thirteen months", func(t *testing.T) {
		months, err := svc.MonthlyScoresForLastMonths(ctx, 14)

		require.NoError(t, err)
		require.Len(t, months, 14)
		assert.Equal(t, "2024-03-01", months[13].DateKey)
		assert.Equal(t, "2023-02-01", months[0].DateKey)
	})

	t.Run("Success: Default monthly window", func(t *testing.T) {
		months, err := svc.MonthlyScoresForLastMonths(ctx, 12)

		require.NoError(t, err)
		assert.Len(t, months, 12)
	})
}

func TestAnalyticsService_Suggestions(t *testing.T) {
	ctx := context.Background()

	t.Run("Success: Hidden areas are never suggested", func(t *testing.T) {
		store := repository.NewInMemoryStore()
		require.NoError(t, store.SaveVisibility(ctx, domain.Visibility{domain.ModuleSteps: false}))
		svc := newAnalytics(storeProviders(store))

		out, err := svc.Suggestions(ctx, 7)

		require.NoError(t, err)
		require.NotEmpty(t, out)
		for _, s := range out {
			assert.NotEqual(t, domain.ModuleSteps, s.ID)
			assert.Less(t, s.AvgPct, 100)
		}
	})

	t.Run("Success: Pure ranking of an existing series", func(t *testing.T) {
		svc := newAnalytics(storeProviders(repository.NewInMemoryStore()))

		out := svc.SuggestionsFromScores(nil, domain.DefaultVisibility())

		assert.NotNil(t, out)
		assert.Empty(t, out)
	})
}

func TestAnalyticsService_DrillDown(t *testing.T) {
	ctx := context.Background()
	store := repository.NewInMemoryStore()
	store.SetSteps("2024-03-04", 10000)
	svc := newAnalytics(storeProviders(store))

	t.Run("Success: Day inside the trailing year", func(t *testing.T) {
		b, err := svc.DrillDown(ctx, domain.DrillDownSelector{Type: domain.SelectorDay, DateKey: "2024-03-04"})

		require.NoError(t, err)
		require.NotNil(t, b)
		require.NotNil(t, b.Day)
		assert.Equal(t, 10000, b.Day.StepsCount)
	})

	t.Run("Success: Current partial week averages the days present", func(t *testing.T) {
		b, err := svc.DrillDown(ctx, domain.DrillDownSelector{Type: domain.SelectorWeek, DateKey: "2024-03-03"})

		require.NoError(t, err)
		require.NotNil(t, b)
		assert.Equal(t, 4, b.Days)
	})

	t.Run("Edge Case: Date outside the year has no data", func(t *testing.T) {
		b, err := svc.DrillDown(ctx, domain.DrillDownSelector{Type: domain.SelectorDay, DateKey: "2020-01-01"})

		assert.NoError(t, err)
		assert.Nil(t, b)
	})

	t.Run("Fail: Invalid selector", func(t *testing.T) {
		_, err := svc.DrillDown(ctx, domain.DrillDownSelector{Type: "decade", DateKey: "2024-03-04"})
		assert.ErrorIs(t, err, domain.ErrInvalidSelector)
	})
}

func TestAnalyticsService_Dashboard(t *testing.T) {
	ctx := context.Background()
	store := repository.NewInMemoryStore()
	store.SetSteps("2024-03-06", 10000)
	svc := newAnalytics(storeProviders(store))

	dash, err := svc.Dashboard(ctx)

	require.NoError(t, err)
	assert.Equal(t, "2024-03-06", dash.Today.DateKey)
	assert.Equal(t, 100.0, dash.Today.StepsPct)
	assert.Len(t, dash.Weeks, 12)
	assert.Equal(t, dash.Weeks[11].Score-dash.Weeks[10].Score, dash.TrendDelta)
	assert.NotNil(t, dash.Suggestions)
}
