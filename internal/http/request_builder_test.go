//go:build !integration

package http

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/laundry-service/internal/domain/dto"
	"github.com/guttosm/laundry-service/internal/i18n"
	"github.com/guttosm/laundry-service/internal/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// serveBuilder runs fn as the only handler behind the request id middleware.
func serveBuilder(t *testing.T, req *http.Request, fn func(*gin.Context)) (*httptest.ResponseRecorder, []*gin.Error) {
	t.Helper()
	var errs []*gin.Error
	router := gin.New()
	router.Use(middleware.RequestID(), func(c *gin.Context) {
		c.Next()
		errs = c.Errors
	})
	router.Any("/", fn)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w, errs
}

func TestResponseBuilder_Success(t *testing.T) {
	tests := []struct {
		name       string
		write      func(*ResponseBuilder)
		statusCode int
	}{
		{name: "ok", write: func(b *ResponseBuilder) { b.SuccessOK(map[string]string{"total_cost": "12.00"}) }, statusCode: http.StatusOK},
		{name: "created", write: func(b *ResponseBuilder) { b.SuccessCreated(map[string]string{"total_cost": "12.00"}) }, statusCode: http.StatusCreated},
		{name: "custom status", write: func(b *ResponseBuilder) { b.Success(http.StatusAccepted, map[string]string{"total_cost": "12.00"}) }, statusCode: http.StatusAccepted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _ := serveBuilder(t, httptest.NewRequest(http.MethodGet, "/", nil), func(c *gin.Context) {
				tt.write(NewResponseBuilder(c))
			})

			assert.Equal(t, tt.statusCode, w.Code)
			var data map[string]string
			env := decodeData(t, w, &data)
			assert.Equal(t, "12.00", data["total_cost"])
			assert.Equal(t, w.Header().Get(middleware.RequestIDHeader), env.RequestID)
			assert.NotZero(t, env.Timestamp)
		})
	}
}

func TestResponseBuilder_Error(t *testing.T) {
	tests := []struct {
		name            string
		locale          string
		write           func(*ResponseBuilder)
		statusCode      int
		expectedCode    string
		expectedMessage string
		expectedDetails map[string]string
		attached        bool
	}{
		{
			name: "translated message",
			write: func(b *ResponseBuilder) {
				b.Error(http.StatusNotFound, i18n.ErrKeyQuoteNotFound, errors.New("missing"))
			},
			statusCode:      http.StatusNotFound,
			expectedCode:    dto.ErrCodeNotFound,
			expectedMessage: "Quote not found or expired",
		},
		{
			name:   "message arguments",
			locale: "pt-BR",
			write: func(b *ResponseBuilder) {
				b.ErrorWithDetails(http.StatusBadRequest, i18n.ErrKeyUnknownItem, map[string]string{"item": "spacesuit"}, nil, "spacesuit")
			},
			statusCode:      http.StatusBadRequest,
			expectedCode:    dto.ErrCodeInvalidRequest,
			expectedMessage: `Item desconhecido "spacesuit"`,
			expectedDetails: map[string]string{"item": "spacesuit"},
		},
		{
			name: "server error is attached",
			write: func(b *ResponseBuilder) {
				b.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, errors.New("boom"))
			},
			statusCode:      http.StatusInternalServerError,
			expectedCode:    dto.ErrCodeInternal,
			expectedMessage: "An unexpected error occurred",
			attached:        true,
		},
		{
			name:            "untranslated message",
			write:           func(b *ResponseBuilder) { b.ErrorWithMessage(http.StatusConflict, "already exists", nil) },
			statusCode:      http.StatusConflict,
			expectedCode:    dto.ErrCodeConflict,
			expectedMessage: "already exists",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.locale != "" {
				req.Header.Set(i18n.AcceptLanguageHeader, tt.locale)
			}

			w, errs := serveBuilder(t, req, func(c *gin.Context) {
				tt.write(NewResponseBuilder(c))
			})

			assert.Equal(t, tt.statusCode, w.Code)
			resp := decodeError(t, w)
			assert.Equal(t, tt.expectedCode, resp.Error)
			assert.Equal(t, tt.expectedMessage, resp.Message)
			assert.Equal(t, tt.expectedDetails, resp.Details)
			assert.NotEmpty(t, resp.RequestID)
			if tt.attached {
				assert.Len(t, errs, 1)
			} else {
				assert.Empty(t, errs)
			}
		})
	}
}

func TestBuildRequest(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "valid body", body: `{"username": "admin", "password": "s3cret-pass"}`},
		{name: "missing field", body: `{"username": "admin"}`, wantErr: true},
		{name: "malformed json", body: `{"username":`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")

			var (
				got *dto.TokenRequest
				err error
			)
			serveBuilder(t, req, func(c *gin.Context) {
				got, err = BuildRequest[dto.TokenRequest](c)
				c.Status(http.StatusNoContent)
			})

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "admin", got.Username)
		})
	}
}
