//go:build integration

package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/laundry-service/config"
	"github.com/guttosm/laundry-service/internal/catalog"
	"github.com/guttosm/laundry-service/internal/service"
	"github.com/guttosm/laundry-service/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func integrationConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := testConfig()
	cfg.Database.Enabled = true
	cfg.Database.URI = testutil.GetSharedContainerURI()
	cfg.Database.DatabaseName = testutil.SanitizeDBName(t.Name())
	return cfg
}

func TestInitializeDatabase_Integration(t *testing.T) {
	ctx := context.Background()
	components := InitializeDatabase(integrationConfig(t).Database)
	require.NotNil(t, components)
	defer func() { assert.NoError(t, components.Close(ctx)) }()

	assert.NotNil(t, components.CatalogRepo)
	assert.NotNil(t, components.LoggingService)
	assert.Equal(t, catalogsBreakerName, components.CatalogsCircuitBreaker.Name())
	assert.Equal(t, logsBreakerName, components.LogsCircuitBreaker.Name())
	assert.NoError(t, components.DB.HealthCheck(ctx))

	doc, err := components.CatalogRepo.Create(ctx, catalog.DefaultSpec(), "admin", "initial")
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Version)
}

func TestInitializeApp_Integration(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := integrationConfig(t)

	application, err := InitializeApp(cfg)
	require.NoError(t, err)
	defer func() { assert.NoError(t, application.Close(context.Background())) }()

	w := httptest.NewRecorder()
	application.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"mongodb":"ok"`)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/catalog", strings.NewReader(`{"catalog": `+catalogJSON(t)+`, "note": "first"}`))
	req.Header.Set("Content-Type", "application/json")
	application.Router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"source":"`+service.CatalogSourceDatabase+`"`)

	w = httptest.NewRecorder()
	application.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/catalog/history", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"note":"first"`)
}

func catalogJSON(t *testing.T) string {
	t.Helper()
	raw, err := json.Marshal(catalog.DefaultSpec())
	require.NoError(t, err)
	return string(raw)
}
