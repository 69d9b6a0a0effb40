package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mennyg19-cmyk/JustForToday-sub001/internal/config"
	"github.com/mennyg19-cmyk/JustForToday-sub001/internal/core/domain"
)

type pairResponse struct {
	DeviceID string `json:"device_id"`
	Token    string `json:"token"`
}

func memoryConfig(t *testing.T, pin string) *config.Config {
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.MinCost)
	require.NoError(t, err)

	return &config.Config{
		Server:    config.ServerConfig{Port: "0", Mode: "test"},
		Auth:      config.AuthConfig{JWTSecret: "e2e-secret-key-0123456789", Issuer: "jft-e2e", TokenTTL: time.Hour, PINHash: string(hash)},
		Analytics: config.AnalyticsConfig{Timezone: "UTC"},
		Storage:   config.StorageConfig{Driver: config.StorageMemory},
	}
}

func call(t *testing.T, a *app, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func TestEndToEnd_PairAndScore(t *testing.T) {
	now := time.Date(2024, 3, 6, 18, 30, 0, 0, time.UTC)
	a, err := newApp(context.Background(), memoryConfig(t, "8642"), func() time.Time { return now })
	require.NoError(t, err)
	defer a.Close()

	require.NotNil(t, a.memory)
	a.memory.SetSteps("2024-03-06", 5000)
	a.memory.SetStoicDone("2024-03-06", true)

	var token string

	t.Run("1. Pair Device", func(t *testing.T) {
		w := call(t, a, http.MethodPost, "/api/v1/auth/pair", "", map[string]string{"pin": "8642"})

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var resp pairResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotEmpty(t, resp.Token)
		token = resp.Token
	})

	t.Run("2. Today's Score", func(t *testing.T) {
		require.NotEmpty(t, token, "pairing failed, cannot continue")

		w := call(t, a, http.MethodGet, "/api/v1/scores/daily?days=1", token, nil)

		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Days []domain.DayScore `json:"days"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Days, 1)
		assert.Equal(t, "2024-03-06", resp.Days[0].DateKey)
		assert.Equal(t, 50.0, resp.Days[0].StepsPct)
		assert.True(t, resp.Days[0].StoicDone)
	})

	t.Run("3. Lower Step Goal", func(t *testing.T) {
		w := call(t, a, http.MethodPut, "/api/v1/settings/goals", token, map[string]int{"stepsPerDay": 5000})

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("4. Score Reflects New Goal", func(t *testing.T) {
		w := call(t, a, http.MethodGet, "/api/v1/dashboard", token, nil)

		require.Equal(t, http.StatusOK, w.Code)
		var dash domain.Dashboard
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dash))
		assert.Equal(t, 100.0, dash.Today.StepsPct)
		assert.Len(t, dash.Weeks, 12)
	})

	t.Run("5. Hide A Module", func(t *testing.T) {
		w := call(t, a, http.MethodPut, "/api/v1/settings/visibility", token, map[string]bool{"fasting": false})
		require.Equal(t, http.StatusOK, w.Code)

		w = call(t, a, http.MethodGet, "/api/v1/suggestions?days=7", token, nil)

		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Suggestions []domain.Suggestion `json:"suggestions"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		for _, s := range resp.Suggestions {
			assert.NotEqual(t, domain.ModuleFasting, s.ID)
		}
	})

	t.Run("6. Reject Missing Token", func(t *testing.T) {
		w := call(t, a, http.MethodGet, "/api/v1/dashboard", "", nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestNewApp_RejectsUnknownStorage(t *testing.T) {
	cfg := memoryConfig(t, "1234")
	cfg.Storage.Driver = "sqlite"

	_, err := newApp(context.Background(), cfg, time.Now)

	assert.Error(t, err)
}
