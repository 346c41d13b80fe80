//go:build !integration

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestTimeout(t *testing.T) {
	gin.SetMode(gin.TestMode)

	waitForDeadline := func(c *gin.Context) {
		select {
		case <-c.Request.Context().Done():
		case <-time.After(time.Second):
		}
	}

	tests := []struct {
		name           string
		timeout        time.Duration
		handler        gin.HandlerFunc
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "fast handler",
			timeout:        time.Second,
			handler:        func(c *gin.Context) { c.String(http.StatusOK, "ok") },
			expectedStatus: http.StatusOK,
			expectedBody:   "ok",
		},
		{
			name:           "deadline passes without response",
			timeout:        20 * time.Millisecond,
			handler:        waitForDeadline,
			expectedStatus: http.StatusGatewayTimeout,
			expectedBody:   `"error":"timeout"`,
		},
		{
			name:    "handler answers after deadline",
			timeout: 20 * time.Millisecond,
			handler: func(c *gin.Context) {
				waitForDeadline(c)
				c.String(http.StatusServiceUnavailable, "solver cancelled")
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   "solver cancelled",
		},
		{
			name:    "disabled",
			timeout: 0,
			handler: func(c *gin.Context) {
				_, hasDeadline := c.Request.Context().Deadline()
				assert.False(t, hasDeadline)
				c.Status(http.StatusNoContent)
			},
			expectedStatus: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(RequestID(), Timeout(tt.timeout))
			router.GET("/test", tt.handler)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
		})
	}
}
