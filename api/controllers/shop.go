package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/MrJigi/mechhive-assignment-app/api/responses"
	"github.com/MrJigi/mechhive-assignment-app/api/validators"
	"github.com/MrJigi/mechhive-assignment-app/internal/catalog"
	"github.com/MrJigi/mechhive-assignment-app/internal/filters"
	pkgerrors "github.com/MrJigi/mechhive-assignment-app/pkg/errors"
	"github.com/MrJigi/mechhive-assignment-app/pkg/logger"
	"github.com/MrJigi/mechhive-assignment-app/pkg/pagination"
	"github.com/MrJigi/mechhive-assignment-app/pkg/redis"
	"github.com/MrJigi/mechhive-assignment-app/pkg/types"
)

const maxPage = 10000

// CatalogService is the catalog surface the shop handlers consume.
type CatalogService interface {
	GetProducts(ctx context.Context, sel filters.Selection, page, limit int) *catalog.ProductsResponse
	GetCategories(ctx context.Context) []string
	GetBrands(ctx context.Context) []string
	GetProductByID(ctx context.Context, id string) (*catalog.Product, error)
	QueryFor(sel filters.Selection, page, limit int) url.Values
	UpstreamReady() bool
}

// ListingCache caches rendered listing payloads. Nil disables caching.
type ListingCache interface {
	GetListing(ctx context.Context, key string) (string, bool, error)
	SetListing(ctx context.Context, key, payload string, ttl time.Duration) error
}

type shopProduct struct {
	catalog.Product
	DisplayPrice string `json:"displayPrice"`
}

type filterState struct {
	Search     string   `json:"search"`
	Category   string   `json:"category"`
	Brand      string   `json:"brand"`
	SortBy     string   `json:"sortBy"`
	InStock    bool     `json:"inStock"`
	PriceMin   float64  `json:"priceMin"`
	PriceMax   float64  `json:"priceMax"`
	Currencies []string `json:"currencies"`
	Regions    []string `json:"regions"`
}

type shopListing struct {
	Products   []shopProduct `json:"products"`
	Total      int           `json:"total"`
	Page       int           `json:"page"`
	TotalPages int           `json:"totalPages"`
	Categories []string      `json:"categories"`
	Brands     []string      `json:"brands"`
	Filters    filterState   `json:"filters"`
}

// ShopProducts serves one page of the product listing. The filter selection
// is decoded from the request URL, the facet lists are fetched in parallel
// with the listing, and the rendered payload is cached by its canonical
// upstream query when a listing cache is wired.
func ShopProducts(svc CatalogService, codec filters.Codec, cache ListingCache, cacheTTL time.Duration, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		page, err := validators.ParseQueryInt(r, "page", 1, 1, maxPage)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		sel := codec.Decode(r.URL.Query())

		cacheKey := ""
		if cache != nil {
			cacheKey = redis.ListingKey(svc.QueryFor(sel, page, limit).Encode())
			if payload, ok, cacheErr := cache.GetListing(ctx, cacheKey); cacheErr == nil && ok {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte(payload))
				return
			} else if cacheErr != nil && logg != nil {
				logg.Warn(logg.WithField(ctx, "error", cacheErr.Error()), "listing cache read failed")
			}
		}

		var (
			listing    *catalog.ProductsResponse
			categories []string
			brands     []string
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			listing = svc.GetProducts(gctx, sel, page, limit)
			return nil
		})
		g.Go(func() error {
			categories = svc.GetCategories(gctx)
			return nil
		})
		g.Go(func() error {
			brands = svc.GetBrands(gctx)
			return nil
		})
		_ = g.Wait()

		payload := shopListing{
			Products:   renderProducts(listing.Products),
			Total:      listing.Total,
			Page:       listing.Page,
			TotalPages: listing.TotalPages,
			Categories: categories,
			Brands:     brands,
			Filters:    renderFilters(sel),
		}

		if cache != nil {
			body, marshalErr := json.Marshal(types.SuccessEnvelope{Data: payload})
			if marshalErr == nil {
				if cacheErr := cache.SetListing(ctx, cacheKey, string(body), cacheTTL); cacheErr != nil && logg != nil {
					logg.Warn(logg.WithField(ctx, "error", cacheErr.Error()), "listing cache write failed")
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write(body)
				return
			}
		}

		responses.WriteSuccess(w, payload)
	}
}

// ShopProduct serves a single product by its upstream id or slug.
func ShopProduct(svc CatalogService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id := validators.SanitizeString(chi.URLParam(r, "productId"), 128)

		product, err := svc.GetProductByID(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if product == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}

		responses.WriteSuccess(w, shopProduct{Product: *product, DisplayPrice: product.DisplayPrice()})
	}
}

// ShopCategories serves the category facet list.
func ShopCategories(svc CatalogService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]any{"categories": svc.GetCategories(r.Context())})
	}
}

// ShopBrands serves the brand facet list.
func ShopBrands(svc CatalogService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]any{"brands": svc.GetBrands(r.Context())})
	}
}

func renderProducts(products []catalog.Product) []shopProduct {
	out := make([]shopProduct, len(products))
	for i, p := range products {
		out[i] = shopProduct{Product: p, DisplayPrice: p.DisplayPrice()}
	}
	return out
}

func renderFilters(sel filters.Selection) filterState {
	return filterState{
		Search:     sel.Search,
		Category:   sel.Category,
		Brand:      sel.Brand,
		SortBy:     sel.SortBy,
		InStock:    sel.InStock,
		PriceMin:   sel.PriceMin,
		PriceMax:   sel.PriceMax,
		Currencies: sel.Currencies,
		Regions:    sel.Regions,
	}
}
