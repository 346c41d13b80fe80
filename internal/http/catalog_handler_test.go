//go:build !integration

package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/guttosm/laundry-service/internal/catalog"
	"github.com/guttosm/laundry-service/internal/circuitbreaker"
	"github.com/guttosm/laundry-service/internal/domain/dto"
	"github.com/guttosm/laundry-service/internal/domain/model"
	"github.com/guttosm/laundry-service/internal/middleware"
	"github.com/guttosm/laundry-service/internal/mocks"
	"github.com/guttosm/laundry-service/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupCatalogRouter(t *testing.T, catalogs *mocks.MockCatalogService) *Router {
	t.Helper()
	r := NewRouter(Handlers{
		Pricing: NewHandler(new(mocks.MockPricingService), catalogs),
		Catalog: NewCatalogHandler(catalogs, nil),
	}, DefaultRouterConfig())
	t.Cleanup(r.Close)
	return r
}

func storedActive(version int) *service.ActiveCatalog {
	updated := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return &service.ActiveCatalog{
		Catalog:   catalog.Default(),
		Version:   version,
		Source:    service.CatalogSourceDatabase,
		UpdatedAt: &updated,
		CreatedBy: middleware.AnonymousActor,
		Note:      "june prices",
	}
}

func catalogBody(t *testing.T, spec model.CatalogSpec, note string) *bytes.Reader {
	t.Helper()
	raw, err := json.Marshal(dto.UpdateCatalogRequest{Catalog: spec, Note: note})
	require.NoError(t, err)
	return bytes.NewReader(raw)
}

func TestGetCatalog(t *testing.T) {
	t.Run("built-in catalog", func(t *testing.T) {
		router := setupRouter(t, DefaultRouterConfig())

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/catalog", nil))

		require.Equal(t, http.StatusOK, w.Code)
		var resp dto.CatalogResponse
		decodeData(t, w, &resp)
		assert.Equal(t, 0, resp.Version)
		assert.Equal(t, service.CatalogSourceDefault, resp.Source)
		assert.Len(t, resp.Catalog.Items, len(catalog.DefaultSpec().Items))
		assert.Len(t, resp.Catalog.MixedPacks, 3)
		assert.Nil(t, resp.UpdatedAt)
	})

	t.Run("catalog unavailable", func(t *testing.T) {
		catalogs := new(mocks.MockCatalogService)
		catalogs.On("Active", mock.Anything).Return(nil, errors.New("boom"))
		router := setupCatalogRouter(t, catalogs)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/catalog", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestUpdateCatalog(t *testing.T) {
	tests := []struct {
		name           string
		setupMock      func(*mocks.MockCatalogService)
		expectedStatus int
		checkResponse  func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name: "stores new version",
			setupMock: func(m *mocks.MockCatalogService) {
				m.On("Update", mock.Anything, mock.AnythingOfType("model.CatalogSpec"), middleware.AnonymousActor, "june prices").
					Return(storedActive(2), nil)
			},
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp dto.CatalogResponse
				decodeData(t, w, &resp)
				assert.Equal(t, 2, resp.Version)
				assert.Equal(t, service.CatalogSourceDatabase, resp.Source)
				assert.Equal(t, "june prices", resp.Note)
				require.NotNil(t, resp.UpdatedAt)
			},
		},
		{
			name: "invalid catalog",
			setupMock: func(m *mocks.MockCatalogService) {
				m.On("Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
					Return(nil, &model.InvalidCatalogError{Field: "mixed_packs[0].shirt_limit", Reason: "exceeds capacity"})
			},
			expectedStatus: http.StatusBadRequest,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				resp := decodeError(t, w)
				assert.Equal(t, "mixed_packs[0].shirt_limit", resp.Details["field"])
				assert.Equal(t, "exceeds capacity", resp.Details["reason"])
			},
		},
		{
			name: "no catalog store",
			setupMock: func(m *mocks.MockCatalogService) {
				m.On("Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
					Return(nil, service.ErrRepositoryNotConfigured)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "circuit open",
			setupMock: func(m *mocks.MockCatalogService) {
				m.On("Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
					Return(nil, fmt.Errorf("store catalog: %w", circuitbreaker.ErrCircuitOpen))
			},
			expectedStatus: http.StatusServiceUnavailable,
		},
		{
			name: "store failure",
			setupMock: func(m *mocks.MockCatalogService) {
				m.On("Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
					Return(nil, errors.New("write conflict"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalogs := new(mocks.MockCatalogService)
			tt.setupMock(catalogs)
			router := setupCatalogRouter(t, catalogs)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPut, "/api/catalog", catalogBody(t, catalog.DefaultSpec(), "june prices"))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
			if tt.checkResponse != nil {
				tt.checkResponse(t, w)
			}
			catalogs.AssertExpectations(t)
		})
	}
}

func TestUpdateCatalog_MalformedBody(t *testing.T) {
	catalogs := new(mocks.MockCatalogService)
	router := setupCatalogRouter(t, catalogs)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/catalog", bytes.NewBufferString(`{"catalog":`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	catalogs.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCatalogHistory(t *testing.T) {
	revisions := []service.CatalogRevision{
		{Version: 2, Active: true, Spec: catalog.DefaultSpec(), CreatedBy: "admin"},
		{Version: 1, Spec: catalog.DefaultSpec(), CreatedBy: "admin"},
	}

	tests := []struct {
		name           string
		query          string
		setupMock      func(*mocks.MockCatalogService)
		expectedStatus int
		expectedLen    int
	}{
		{
			name:  "default limit",
			query: "",
			setupMock: func(m *mocks.MockCatalogService) {
				m.On("History", mock.Anything, defaultHistoryLimit).Return(revisions, nil)
			},
			expectedStatus: http.StatusOK,
			expectedLen:    2,
		},
		{
			name:  "explicit limit",
			query: "?limit=1",
			setupMock: func(m *mocks.MockCatalogService) {
				m.On("History", mock.Anything, 1).Return(revisions[:1], nil)
			},
			expectedStatus: http.StatusOK,
			expectedLen:    1,
		},
		{
			name:           "limit too large",
			query:          "?limit=1000",
			setupMock:      func(m *mocks.MockCatalogService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "limit not a number",
			query:          "?limit=ten",
			setupMock:      func(m *mocks.MockCatalogService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:  "no catalog store",
			query: "",
			setupMock: func(m *mocks.MockCatalogService) {
				m.On("History", mock.Anything, defaultHistoryLimit).Return(nil, service.ErrRepositoryNotConfigured)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:  "circuit open",
			query: "",
			setupMock: func(m *mocks.MockCatalogService) {
				m.On("History", mock.Anything, defaultHistoryLimit).Return(nil, circuitbreaker.ErrCircuitOpen)
			},
			expectedStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalogs := new(mocks.MockCatalogService)
			tt.setupMock(catalogs)
			router := setupCatalogRouter(t, catalogs)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/catalog/history"+tt.query, nil))

			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
			if tt.expectedStatus == http.StatusOK {
				var resp []dto.CatalogRevisionResponse
				decodeData(t, w, &resp)
				require.Len(t, resp, tt.expectedLen)
				assert.Equal(t, 2, resp[0].Version)
				assert.True(t, resp[0].Active)
			}
			catalogs.AssertExpectations(t)
		})
	}
}
