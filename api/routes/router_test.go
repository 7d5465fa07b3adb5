package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJigi/mechhive-assignment-app/internal/catalog"
	"github.com/MrJigi/mechhive-assignment-app/internal/filters"
	"github.com/MrJigi/mechhive-assignment-app/pkg/config"
)

type staticCatalog struct{}

func (staticCatalog) GetProducts(ctx context.Context, sel filters.Selection, page, limit int) *catalog.ProductsResponse {
	return &catalog.ProductsResponse{Products: []catalog.Product{}, Total: 0, Page: 1, TotalPages: 1}
}

func (staticCatalog) GetCategories(ctx context.Context) []string { return []string{"All"} }

func (staticCatalog) GetBrands(ctx context.Context) []string { return []string{"All"} }

func (staticCatalog) GetProductByID(ctx context.Context, id string) (*catalog.Product, error) {
	return nil, nil
}

func (staticCatalog) QueryFor(sel filters.Selection, page, limit int) url.Values {
	return url.Values{}
}

func (staticCatalog) UpstreamReady() bool { return false }

func testConfig() *config.Config {
	return &config.Config{
		App:     config.AppConfig{Env: "dev", Port: "8080"},
		Catalog: config.CatalogConfig{PriceCeiling: 100, PageSize: 12, MaxPageSize: 100},
	}
}

func TestRouterRoutes(t *testing.T) {
	router := NewRouter(testConfig(), nil, staticCatalog{}, nil, nil, prometheus.NewRegistry())

	cases := []struct {
		path string
		want int
	}{
		{"/health/live", http.StatusOK},
		{"/health/ready", http.StatusOK},
		{"/metrics", http.StatusOK},
		{"/api/v1/shop/products", http.StatusOK},
		{"/api/v1/shop/categories", http.StatusOK},
		{"/api/v1/shop/brands", http.StatusOK},
		{"/api/v1/shop/products/some-id", http.StatusNotFound},
		{"/nope", http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestRouterRequestIDHeader(t *testing.T) {
	router := NewRouter(testConfig(), nil, staticCatalog{}, nil, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
}
