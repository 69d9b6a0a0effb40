package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mennyg19-cmyk/JustForToday-sub001/internal/core/services"
	"github.com/mennyg19-cmyk/JustForToday-sub001/internal/logging"
)

func protectedRouter(tokens TokenValidator) *gin.Engine {
	router := gin.New()
	router.GET("/protected", AuthMiddleware(tokens), func(c *gin.Context) {
		id, ok := GetDeviceID(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, id)
	})
	return router
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tokens := services.NewTokenService("middleware-test-secret", "jft-test", time.Hour)
	router := protectedRouter(tokens)
	deviceID := uuid.NewString()

	tests := []struct {
		name       string
		header     func() string
		wantStatus int
		wantBody   string
	}{
		{
			name: "Success: Valid bearer token",
			header: func() string {
				token, err := tokens.GenerateToken(deviceID)
				require.NoError(t, err)
				return "Bearer " + token
			},
			wantStatus: http.StatusOK,
			wantBody:   deviceID,
		},
		{
			name:       "Fail: Missing header",
			header:     func() string { return "" },
			wantStatus: http.StatusUnauthorized,
			wantBody:   "authorization header required",
		},
		{
			name:       "Fail: Wrong scheme",
			header:     func() string { return "Basic abc" },
			wantStatus: http.StatusUnauthorized,
			wantBody:   "invalid authorization header format",
		},
		{
			name:       "Fail: Garbage token",
			header:     func() string { return "Bearer not.a.token" },
			wantStatus: http.StatusUnauthorized,
			wantBody:   "invalid or expired token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
			if h := tt.header(); h != "" {
				req.Header.Set("Authorization", h)
			}

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(RequestID(), AccessLog())
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, logging.RequestIDFromContext(c.Request.Context()))
	})

	t.Run("Success: Generates an id when none is sent", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/ping", nil)

		router.ServeHTTP(w, req)

		id := w.Header().Get(RequestIDHeader)
		assert.NotEmpty(t, id)
		assert.Equal(t, id, w.Body.String())
	})

	t.Run("Success: Propagates the caller's id", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(RequestIDHeader, "abc-123")

		router.ServeHTTP(w, req)

		assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
		assert.Equal(t, "abc-123", w.Body.String())
	})
}
