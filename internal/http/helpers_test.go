package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/laundry-service/internal/catalog"
	"github.com/guttosm/laundry-service/internal/domain/dto"
	"github.com/guttosm/laundry-service/internal/optimizer"
	"github.com/guttosm/laundry-service/internal/service"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Data      json.RawMessage `json:"data"`
	RequestID string          `json:"request_id"`
	Timestamp time.Time       `json:"timestamp"`
}

// decodeData unmarshals the data field of a success envelope into v.
func decodeData(t *testing.T, w *httptest.ResponseRecorder, v interface{}) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	require.NoError(t, json.Unmarshal(env.Data, v))
	return env
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

// newServices builds pricing and catalog services over the built-in catalog.
func newServices(t *testing.T) (*service.PricingServiceImpl, *service.CatalogServiceImpl) {
	t.Helper()
	catalogs := service.NewCatalogService(catalog.Default(), service.CatalogSourceDefault)
	t.Cleanup(catalogs.Stop)
	store := service.NewMemoryQuoteStore(100, time.Minute, 4)
	t.Cleanup(store.Stop)
	return service.NewPricingService(catalogs, optimizer.New(), store), catalogs
}

func setupRouter(t *testing.T, cfg RouterConfig) *Router {
	t.Helper()
	pricing, catalogs := newServices(t)
	r := NewRouter(Handlers{
		Pricing: NewHandler(pricing, catalogs),
		Catalog: NewCatalogHandler(catalogs, nil),
	}, cfg)
	t.Cleanup(r.Close)
	return r
}

func postOrder(router http.Handler, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/optimize", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}
