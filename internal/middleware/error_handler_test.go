//go:build !integration

package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestErrorHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		handler        gin.HandlerFunc
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "no errors",
			handler:        func(c *gin.Context) { c.String(http.StatusOK, "ok") },
			expectedStatus: http.StatusOK,
			expectedBody:   "ok",
		},
		{
			name: "error without response",
			handler: func(c *gin.Context) {
				_ = c.Error(errors.New("mongo unreachable"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"internal_error"`,
		},
		{
			name: "error after response keeps response",
			handler: func(c *gin.Context) {
				c.String(http.StatusBadRequest, "bad order")
				_ = c.Error(errors.New("unknown item"))
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "bad order",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(ErrorHandler())
			router.GET("/test", tt.handler)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
		})
	}
}
