// Package filters defines the canonical filter selection the storefront works
// with and its bidirectional mapping onto shareable URL query parameters.
package filters

// All is the sentinel meaning "place no constraint on this facet". It is a UI
// convention only and must never be sent upstream.
const All = "All"

// SortFeatured is the neutral sort order.
const SortFeatured = "featured"

// DefaultMaxPrice is the price slider ceiling used when no explicit ceiling
// is configured.
const DefaultMaxPrice = 100

// Selection is the canonical in-memory representation of an active filter
// selection. It is reconstructed from the URL on every navigation and treated
// as immutable once handed to the query builder.
type Selection struct {
	Search     string
	Category   string
	Brand      string
	SortBy     string
	InStock    bool
	PriceMin   float64
	PriceMax   float64
	Currencies []string
	Regions    []string
}

// Default returns a selection with every facet at its neutral value.
func Default(maxPrice float64) Selection {
	if maxPrice <= 0 {
		maxPrice = DefaultMaxPrice
	}
	return Selection{
		Category: All,
		Brand:    All,
		SortBy:   SortFeatured,
		PriceMin: 0,
		PriceMax: maxPrice,
	}
}

// clampPrices enforces 0 <= PriceMin <= PriceMax <= maxPrice, swapping a
// reversed pair rather than rejecting it.
func (s *Selection) clampPrices(maxPrice float64) {
	if s.PriceMin < 0 {
		s.PriceMin = 0
	}
	if s.PriceMax < 0 {
		s.PriceMax = 0
	}
	if s.PriceMin > maxPrice {
		s.PriceMin = maxPrice
	}
	if s.PriceMax > maxPrice {
		s.PriceMax = maxPrice
	}
	if s.PriceMin > s.PriceMax {
		s.PriceMin, s.PriceMax = s.PriceMax, s.PriceMin
	}
}
