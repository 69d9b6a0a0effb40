package scoring_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mennyg19-cmyk/JustForToday-sub001/internal/core/domain"
	"github.com/mennyg19-cmyk/JustForToday-sub001/internal/core/scoring"
)

func TestResolveDrillDown_Day(t *testing.T) {
	yearly := series(t, "2024-03-01", 10, 20, 30)

	t.Run("Success: Returns the exact record", func(t *testing.T) {
		b, ok := scoring.ResolveDrillDown(domain.DrillDownSelector{Type: domain.SelectorDay, DateKey: "2024-03-02"}, yearly)

		require.True(t, ok)
		require.NotNil(t, b.Day)
		assert.Equal(t, "2024-03-02", b.Day.DateKey)
		assert.Equal(t, 20, b.Score)
		assert.Equal(t, 1, b.Days)
	})

	t.Run("Edge Case: Day outside the series has no data", func(t *testing.T) {
		b, ok := scoring.ResolveDrillDown(domain.DrillDownSelector{Type: domain.SelectorDay, DateKey: "2023-01-01"}, yearly)

		assert.False(t, ok)
		assert.Nil(t, b)
	})
}

func TestResolveDrillDown_Week(t *testing.T) {
	t.Run("Success: Averages only the days found", func(t *testing.T) {
		// the series has five days of a week starting Sunday 2024-03-03
		yearly := series(t, "2024-03-05", 100, 100, 100, 100, 100)
		yearly[0].StepsPct = 50
		yearly[1].StepsPct = 100

		b, ok := scoring.ResolveDrillDown(domain.DrillDownSelector{Type: domain.SelectorWeek, DateKey: "2024-03-03"}, yearly)

		require.True(t, ok)
		assert.Equal(t, 5, b.Days)
		assert.Equal(t, 100, b.Score)
		assert.Equal(t, 30.0, b.StepsPct)
		assert.Nil(t, b.Day)
	})

	t.Run("Success: Sparse drill-down differs from the dense weekly bucket", func(t *testing.T) {
		dense := series(t, "2024-03-03", 0, 0, 100, 100, 100, 100, 100)
		sparse := dense[2:]

		weeks := scoring.AggregateWeekly(dense, 1)
		b, ok := scoring.ResolveDrillDown(domain.DrillDownSelector{Type: domain.SelectorWeek, DateKey: "2024-03-03"}, sparse)

		require.True(t, ok)
		assert.Equal(t, 71, weeks[0].Score)
		assert.Equal(t, 100, b.Score)
	})

	t.Run("Success: Week crossing a month boundary", func(t *testing.T) {
		yearly := series(t, "2024-03-28", 10, 20, 30, 40, 50, 60, 70, 80)

		b, ok := scoring.ResolveDrillDown(domain.DrillDownSelector{Type: domain.SelectorWeek, DateKey: "2024-03-31"}, yearly)

		require.True(t, ok)
		assert.Equal(t, 5, b.Days)
		assert.Equal(t, 60, b.Score)
	})

	t.Run("Edge Case: No days found has no data", func(t *testing.T) {
		yearly := series(t, "2024-03-01", 10)

		_, ok := scoring.ResolveDrillDown(domain.DrillDownSelector{Type: domain.SelectorWeek, DateKey: "2024-05-05"}, yearly)

		assert.False(t, ok)
	})
}

func TestResolveDrillDown_Month(t *testing.T) {
	yearly := series(t, "2024-02-27", 10, 20, 30, 40, 50)

	t.Run("Success: Any date inside the month selects it", func(t *testing.T) {
		b, ok := scoring.ResolveDrillDown(domain.DrillDownSelector{Type: domain.SelectorMonth, DateKey: "2024-02-15"}, yearly)

		require.True(t, ok)
		assert.Equal(t, 3, b.Days)
		assert.Equal(t, 20, b.Score)
		assert.Equal(t, "2024-02-15", b.DateKey)
		assert.Equal(t, domain.SelectorMonth, b.Type)
	})

	t.Run("Edge Case: Month without data", func(t *testing.T) {
		_, ok := scoring.ResolveDrillDown(domain.DrillDownSelector{Type: domain.SelectorMonth, DateKey: "2024-06-01"}, yearly)
		assert.False(t, ok)
	})
}

func TestResolveDrillDown_InvalidSelector(t *testing.T) {
	yearly := series(t, "2024-03-01", 10)

	_, ok := scoring.ResolveDrillDown(domain.DrillDownSelector{Type: "year", DateKey: "2024-03-01"}, yearly)
	assert.False(t, ok)

	_, ok = scoring.ResolveDrillDown(domain.DrillDownSelector{Type: domain.SelectorDay, DateKey: "03/01/2024"}, yearly)
	assert.False(t, ok)
}
