package http_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mennyg19-cmyk/JustForToday-sub001/internal/core/domain"
	"github.com/mennyg19-cmyk/JustForToday-sub001/internal/core/services"
)

func TestAnalyticsHandler_Scores(t *testing.T) {
	srv := newTestServer(t, nil)
	srv.store.SetSteps("2024-03-06", 10000)

	t.Run("Success: Daily defaults to 30 days ending today", func(t *testing.T) {
		w := srv.do(http.MethodGet, "/api/v1/scores/daily", nil)

		require.Equal(t, http.StatusOK, w.Code)
		var body struct {
			Days []domain.DayScore `json:"days"`
		}
		decode(t, w, &body)
		require.Len(t, body.Days, 30)
		assert.Equal(t, "2024-03-06", body.Days[29].DateKey)
		assert.Equal(t, 100.0, body.Days[29].StepsPct)
	})

	t.Run("Success: Weekly honours the requested count", func(t *testing.T) {
		w := srv.do(http.MethodGet, "/api/v1/scores/weekly?weeks=2", nil)

		require.Equal(t, http.StatusOK, w.Code)
		var body struct {
			Weeks []domain.WeekScore `json:"weeks"`
		}
		decode(t, w, &body)
		require.Len(t, body.Weeks, 2)
		assert.Equal(t, "2024-03-03", body.Weeks[1].DateKey)
	})

	t.Run("Success: Monthly honours the requested count", func(t *testing.T) {
		w := srv.do(http.MethodGet, "/api/v1/scores/monthly?months=3", nil)

		require.Equal(t, http.StatusOK, w.Code)
		var body struct {
			Months []domain.MonthScore `json:"months"`
		}
		decode(t, w, &body)
		require.Len(t, body.Months, 3)
		assert.Equal(t, "2024-03-01", body.Months[2].DateKey)
	})

	tests := []struct {
		name string
		path string
	}{
		{"Fail: Zero days", "/api/v1/scores/daily?days=0"},
		{"Fail: Too many days", "/api/v1/scores/daily?days=367"},
		{"Fail: Non-numeric weeks", "/api/v1/scores/weekly?weeks=abc"},
		{"Fail: Too many months", "/api/v1/scores/monthly?months=37"},
		{"Fail: Negative suggestion window", "/api/v1/suggestions?days=-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := srv.do(http.MethodGet, tt.path, nil)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "must be an integer between 1 and")
		})
	}
}

func TestAnalyticsHandler_Suggestions(t *testing.T) {
	srv := newTestServer(t, nil)

	w := srv.do(http.MethodGet, "/api/v1/suggestions?days=7", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Suggestions []domain.Suggestion `json:"suggestions"`
	}
	decode(t, w, &body)
	require.NotEmpty(t, body.Suggestions)
	assert.Equal(t, domain.ModuleSteps, body.Suggestions[0].ID, "ties keep display order")
}

func TestAnalyticsHandler_DrillDown(t *testing.T) {
	srv := newTestServer(t, nil)
	srv.store.SetSteps("2024-03-04", 10000)

	t.Run("Success: Day breakdown", func(t *testing.T) {
		w := srv.do(http.MethodGet, "/api/v1/drilldown?type=day&date=2024-03-04", nil)

		require.Equal(t, http.StatusOK, w.Code)
		var body struct {
			Breakdown *domain.Breakdown `json:"breakdown"`
		}
		decode(t, w, &body)
		require.NotNil(t, body.Breakdown)
		require.NotNil(t, body.Breakdown.Day)
		assert.Equal(t, 10000, body.Breakdown.Day.StepsCount)
	})

	t.Run("Edge Case: No data yields a null breakdown", func(t *testing.T) {
		w := srv.do(http.MethodGet, "/api/v1/drilldown?type=month&date=2019-06-15", nil)

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"breakdown":null}`, w.Body.String())
	})

	t.Run("Fail: Unknown selector type", func(t *testing.T) {
		w := srv.do(http.MethodGet, "/api/v1/drilldown?type=year&date=2024-03-04", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Fail: Malformed date", func(t *testing.T) {
		w := srv.do(http.MethodGet, "/api/v1/drilldown?type=day&date=2024-3-4", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAnalyticsHandler_Dashboard(t *testing.T) {
	t.Run("Success: Returns today and twelve weeks", func(t *testing.T) {
		srv := newTestServer(t, nil)

		w := srv.do(http.MethodGet, "/api/v1/dashboard", nil)

		require.Equal(t, http.StatusOK, w.Code)
		var dash domain.Dashboard
		decode(t, w, &dash)
		assert.Equal(t, "2024-03-06", dash.Today.DateKey)
		assert.Len(t, dash.Weeks, 12)
	})

	t.Run("Fail: Provider failure is a single 500", func(t *testing.T) {
		srv := newTestServer(t, func(p *services.Providers) {
			p.Steps = failingSteps{}
		})

		w := srv.do(http.MethodGet, "/api/v1/dashboard", nil)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"failed to compute scores"}`, w.Body.String())
	})
}
