package catalog

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/MrJigi/mechhive-assignment-app/internal/filters"
	"github.com/MrJigi/mechhive-assignment-app/internal/vocab"
)

// QueryBuilder maps a filter selection onto the query vocabulary the upstream
// catalog API expects. The multi-valued facets are renamed to their plural
// upstream parameters (currencies, regions) and translated through the shared
// vocabulary tables.
type QueryBuilder struct {
	MaxPrice float64
}

// NewQueryBuilder returns a builder using the given price ceiling
// (filters.DefaultMaxPrice when non-positive).
func NewQueryBuilder(maxPrice float64) QueryBuilder {
	if maxPrice <= 0 {
		maxPrice = filters.DefaultMaxPrice
	}
	return QueryBuilder{MaxPrice: maxPrice}
}

// Build emits a parameter only when the corresponding filter deviates from
// its neutral value. The selection is read, never mutated. Page size is not
// part of the upstream vocabulary; the upstream paginates at its own default.
func (b QueryBuilder) Build(sel filters.Selection, page int) url.Values {
	params := url.Values{}

	if search := strings.TrimSpace(sel.Search); search != "" {
		params.Set("search", search)
	}
	if sel.Category != "" && sel.Category != filters.All {
		params.Set("category", strings.ToLower(sel.Category))
	}
	if sel.Brand != "" && sel.Brand != filters.All {
		params.Set("brands", vocab.BrandSlug(sel.Brand))
	}
	if len(sel.Currencies) > 0 {
		currencies := make([]string, len(sel.Currencies))
		for i, currency := range sel.Currencies {
			currencies[i] = strings.ToLower(currency)
		}
		params.Set("currencies", strings.Join(currencies, ","))
	}
	if len(sel.Regions) > 0 {
		regions := make([]string, len(sel.Regions))
		for i, region := range sel.Regions {
			regions[i] = vocab.RegionCode(region)
		}
		params.Set("regions", strings.Join(regions, ","))
	}
	if sel.PriceMin > 0 {
		params.Set("minPrice", formatAmount(sel.PriceMin))
	}
	if sel.PriceMax < b.MaxPrice {
		params.Set("maxPrice", formatAmount(sel.PriceMax))
	}
	if sel.InStock {
		params.Set("inStock", "true")
	}

	b.applySort(params, sel.SortBy)

	if page > 1 {
		params.Set("page", strconv.Itoa(page))
	}

	return params
}

// applySort decomposes recognized UI sort keys into the upstream
// (sortBy, sortOrder) pair; unrecognized values pass through unchanged.
func (b QueryBuilder) applySort(params url.Values, sortBy string) {
	if sortBy == "" || sortBy == filters.SortFeatured {
		return
	}
	switch sortBy {
	case "price-low", "price-asc":
		params.Set("sortBy", "price")
		params.Set("sortOrder", "asc")
	case "price-high", "price-desc":
		params.Set("sortBy", "price")
		params.Set("sortOrder", "desc")
	case "name", "name-asc":
		params.Set("sortBy", "name")
		params.Set("sortOrder", "asc")
	case "name-desc":
		params.Set("sortBy", "name")
		params.Set("sortOrder", "desc")
	default:
		params.Set("sortBy", sortBy)
	}
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
