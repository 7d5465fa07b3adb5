package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/multierr"

	"github.com/MrJigi/mechhive-assignment-app/internal/filters"
	"github.com/MrJigi/mechhive-assignment-app/internal/vocab"
	pkgerrors "github.com/MrJigi/mechhive-assignment-app/pkg/errors"
	"github.com/MrJigi/mechhive-assignment-app/pkg/logger"
	"github.com/MrJigi/mechhive-assignment-app/pkg/metrics"
	"github.com/MrJigi/mechhive-assignment-app/pkg/pagination"
)

// Gateway is the outbound surface the service needs from the upstream client.
type Gateway interface {
	IsReady() bool
	Get(ctx context.Context, endpoint string, params url.Values, out any) error
}

// ServiceParams holds the catalog service dependencies.
type ServiceParams struct {
	Gateway          Gateway
	ProductsEndpoint string
	PriceCeiling     float64
	Logger           *logger.Logger
	Metrics          *metrics.CatalogMetrics
}

// Service orchestrates the query builder, gateway, normalizer, and facet
// cache. Listing calls never return an error: every failure mode collapses
// into the offline fallback response.
type Service struct {
	gateway  Gateway
	endpoint string
	builder  QueryBuilder
	cache    facetCache
	logg     *logger.Logger
	metrics  *metrics.CatalogMetrics
}

// NewService constructs a catalog service instance.
func NewService(params ServiceParams) (*Service, error) {
	if params.Gateway == nil {
		return nil, fmt.Errorf("catalog gateway required")
	}
	return &Service{
		gateway:  params.Gateway,
		endpoint: strings.TrimSpace(params.ProductsEndpoint),
		builder:  NewQueryBuilder(params.PriceCeiling),
		logg:     params.Logger,
		metrics:  params.Metrics,
	}, nil
}

// UpstreamReady reports whether the gateway is configured for live requests.
func (s *Service) UpstreamReady() bool {
	return s.gateway.IsReady() && s.endpoint != ""
}

// InvalidateFacets drops the memoized upstream response; the next facet
// lookup fetches fresh data.
func (s *Service) InvalidateFacets() {
	s.cache.invalidate()
}

// QueryFor exposes the canonical parameter set for a listing, used by the
// API layer as a cache key. The page size rides along for key uniqueness
// even though it is never sent upstream.
func (s *Service) QueryFor(sel filters.Selection, page, limit int) url.Values {
	params := s.builder.Build(sel, page)
	if limit > 0 && limit != pagination.DefaultLimit {
		params.Set("limit", strconv.Itoa(limit))
	}
	return params
}

// GetProducts fetches one page of products for the given selection. The
// returned response is always usable; upstream failures are logged, counted,
// and answered with the offline fallback catalog.
func (s *Service) GetProducts(ctx context.Context, sel filters.Selection, page, limit int) *ProductsResponse {
	p := pagination.Normalize(pagination.Params{Page: page, Limit: limit})

	if !s.gateway.IsReady() {
		s.warn(ctx, "upstream not configured, serving fallback catalog", nil)
		s.metrics.IncFallback("unready")
		return fallbackResponse()
	}
	if s.endpoint == "" {
		s.warn(ctx, "products endpoint unset, serving fallback catalog", nil)
		s.metrics.IncFallback("unconfigured")
		return fallbackResponse()
	}

	params := s.builder.Build(sel, p.Page)

	env, products, err := s.fetch(ctx, params)
	if err != nil {
		s.warn(ctx, "products fetch failed, serving fallback catalog", err)
		s.metrics.IncFallback(fallbackReason(err))
		return fallbackResponse()
	}

	total := len(products)
	if env.Meta.Pagination.TotalItems != nil {
		total = *env.Meta.Pagination.TotalItems
	}
	currentPage := p.Page
	if env.Meta.Pagination.CurrentPage != nil {
		currentPage = *env.Meta.Pagination.CurrentPage
	}
	totalPages := pagination.TotalPages(total, p.Limit)
	if env.Meta.Pagination.TotalPages != nil {
		totalPages = *env.Meta.Pagination.TotalPages
	}

	return &ProductsResponse{
		Products:   products,
		Total:      total,
		Page:       currentPage,
		TotalPages: totalPages,
		Categories: append([]string{}, env.Filters.Categories...),
		Brands:     append([]string{}, env.Filters.Brands...),
	}
}

// GetCategories lists the category facet: the upstream's explicit list when
// available, otherwise distinct categories scanned from the cached batch.
// The "All" sentinel is always first.
func (s *Service) GetCategories(ctx context.Context) []string {
	if !s.UpstreamReady() {
		return append([]string(nil), fallbackCategories...)
	}

	env, products, err := s.cachedOrFetch(ctx)
	if err != nil {
		s.warn(ctx, "categories fetch failed", err)
		return []string{filters.All}
	}

	out := []string{filters.All}
	if len(env.Filters.Categories) > 0 {
		for _, category := range env.Filters.Categories {
			out = append(out, vocab.TitleCase(category))
		}
		return out
	}

	seen := map[string]bool{}
	for _, product := range products {
		if product.Category == "" {
			continue
		}
		name := vocab.TitleCase(product.Category)
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	return out
}

// GetBrands lists the brand facet. Upstream brand slugs are rendered as
// display names; the derivation fallback scans the cached product batch.
func (s *Service) GetBrands(ctx context.Context) []string {
	if !s.UpstreamReady() {
		return []string{filters.All}
	}

	env, products, err := s.cachedOrFetch(ctx)
	if err != nil {
		s.warn(ctx, "brands fetch failed", err)
		return []string{filters.All}
	}

	out := []string{filters.All}
	if len(env.Filters.Brands) > 0 {
		for _, slug := range env.Filters.Brands {
			out = append(out, vocab.BrandName(slug))
		}
		return out
	}

	seen := map[string]bool{}
	for _, product := range products {
		name := product.Brand.Name
		if name == "" && product.Brand.Slug != "" {
			name = vocab.BrandName(product.Brand.Slug)
		}
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

// GetProductByID fetches and normalizes a single product. Unlike listings it
// surfaces errors: a missing product maps to a not-found error, and an
// unconfigured gateway yields (nil, nil).
func (s *Service) GetProductByID(ctx context.Context, id string) (*Product, error) {
	if strings.TrimSpace(id) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	if !s.UpstreamReady() {
		return nil, nil
	}

	endpoint := s.endpoint + "/" + url.PathEscape(id)

	var raw json.RawMessage
	start := time.Now()
	err := s.gateway.Get(ctx, endpoint, nil, &raw)
	s.metrics.ObserveRequest(s.endpoint+"/{id}", outcomeOf(err), time.Since(start))
	if err != nil {
		if isUpstreamNotFound(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return nil, err
	}

	// The upstream answers either {data: record} or the bare record.
	record := raw
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}
	if json.Unmarshal(raw, &wrapper) == nil && len(wrapper.Data) > 0 && string(wrapper.Data) != "null" {
		record = wrapper.Data
	}

	product, err := normalizeRecord(record, 0)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// fetch performs one listing call and refreshes the facet cache on success.
func (s *Service) fetch(ctx context.Context, params url.Values) (*envelope, []Product, error) {
	var env envelope
	start := time.Now()
	err := s.gateway.Get(ctx, s.endpoint, params, &env)
	s.metrics.ObserveRequest(s.endpoint, outcomeOf(err), time.Since(start))
	if err != nil {
		return nil, nil, err
	}

	products, nerr := normalizeBatch(env.Products)
	if nerr != nil {
		dropped := len(multierr.Errors(nerr))
		s.metrics.AddDroppedRecords(dropped)
		s.warn(ctx, fmt.Sprintf("dropped %d malformed product records", dropped), nerr)
	}

	s.cache.set(&env, products)
	return &env, products, nil
}

// cachedOrFetch serves the memoized upstream response, fetching an unfiltered
// page only when the cache is empty.
func (s *Service) cachedOrFetch(ctx context.Context) (*envelope, []Product, error) {
	if env, products, ok := s.cache.get(); ok {
		return env, products, nil
	}
	return s.fetch(ctx, nil)
}

func (s *Service) warn(ctx context.Context, msg string, err error) {
	if s.logg == nil {
		return
	}
	if s.endpoint != "" {
		ctx = s.logg.WithEndpoint(ctx, s.endpoint)
	}
	if err != nil {
		dump := pkgerrors.Dump(err)
		ctx = s.logg.WithFields(ctx, map[string]any{
			"error":       dump.TopMessage,
			"error_code":  dump.Code,
			"error_chain": dump.Chain,
		})
	}
	s.logg.Warn(ctx, msg)
}

func fallbackReason(err error) string {
	switch {
	case pkgerrors.HasCode(err, pkgerrors.CodeConfiguration):
		return "configuration"
	case pkgerrors.HasCode(err, pkgerrors.CodeUpstreamTimeout):
		return "timeout"
	case pkgerrors.HasCode(err, pkgerrors.CodeUpstreamStatus):
		return "status"
	case pkgerrors.HasCode(err, pkgerrors.CodeUpstreamParse):
		return "parse"
	default:
		return "transport"
	}
}

func outcomeOf(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

func isUpstreamNotFound(err error) bool {
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUpstreamStatus {
		return false
	}
	details, ok := typed.Details().(map[string]any)
	if !ok {
		return false
	}
	status, ok := details["status"].(int)
	return ok && status == http.StatusNotFound
}
