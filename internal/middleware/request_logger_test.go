//go:build !integration

package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_getLogLevel(t *testing.T) {
	tests := []struct {
		statusCode int
		expected   string
	}{
		{200, "info"},
		{301, "info"},
		{400, "warn"},
		{404, "warn"},
		{500, "error"},
		{503, "error"},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.statusCode), func(t *testing.T) {
			assert.Equal(t, tt.expected, getLogLevel(tt.statusCode))
		})
	}
}

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name          string
		handler       gin.HandlerFunc
		actor         string
		expectedCode  int
		expectedLevel string
		expectedActor string
		expectedError string
	}{
		{
			name:          "successful request",
			handler:       func(c *gin.Context) { c.Status(http.StatusOK) },
			expectedCode:  http.StatusOK,
			expectedLevel: "info",
			expectedActor: AnonymousActor,
		},
		{
			name:          "client error with actor",
			handler:       func(c *gin.Context) { c.Status(http.StatusBadRequest) },
			actor:         "admin",
			expectedCode:  http.StatusBadRequest,
			expectedLevel: "warn",
			expectedActor: "admin",
		},
		{
			name: "server error keeps last error",
			handler: func(c *gin.Context) {
				_ = c.Error(errors.New("solver failed"))
				c.Status(http.StatusInternalServerError)
			},
			expectedCode:  http.StatusInternalServerError,
			expectedLevel: "error",
			expectedActor: AnonymousActor,
			expectedError: "solver failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs := &recordingLogs{}
			al := NewAsyncLogger(logs, DefaultAsyncLoggerConfig())

			router := gin.New()
			router.Use(RequestID(), RequestLogger(al))
			router.POST("/api/optimize", func(c *gin.Context) {
				if tt.actor != "" {
					c.Set(ActorKey, tt.actor)
				}
				tt.handler(c)
			})

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/optimize", nil))
			al.Stop()

			entries := logs.Entries()
			require.Len(t, entries, 1)
			entry := entries[0]
			assert.Equal(t, tt.expectedCode, entry.StatusCode)
			assert.Equal(t, tt.expectedLevel, entry.Level)
			assert.Equal(t, tt.expectedActor, entry.Actor)
			assert.Equal(t, tt.expectedError, entry.Error)
			assert.Equal(t, w.Header().Get(RequestIDHeader), entry.RequestID)
			assert.Equal(t, "/api/optimize", entry.Path)
			assert.GreaterOrEqual(t, entry.Duration, int64(0))
		})
	}
}

func TestRequestLogger_WithoutStore(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestLogger(nil))
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	})
	assert.Equal(t, http.StatusOK, w.Code)
}
