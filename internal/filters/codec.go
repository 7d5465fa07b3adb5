package filters

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

// Codec converts selections to and from flat URL query parameters. Encoding
// is sparse: a parameter appears only when its field deviates from the
// default, so canonical URLs stay short. That makes encode(decode(x))
// idempotent while decode(encode(f)) == f only for non-defaulted fields.
type Codec struct {
	MaxPrice float64
}

// NewCodec returns a codec with the given price ceiling (DefaultMaxPrice when
// non-positive).
func NewCodec(maxPrice float64) Codec {
	if maxPrice <= 0 {
		maxPrice = DefaultMaxPrice
	}
	return Codec{MaxPrice: maxPrice}
}

// Decode reconstructs a selection from URL query parameters. Legacy aliases
// are accepted ("q" for search, "sort" for sortBy); the canonical name wins
// when both are present. Missing or non-numeric price bounds decode to their
// defaults.
func (c Codec) Decode(values url.Values) Selection {
	sel := Default(c.MaxPrice)

	if search := firstOf(values, "search", "q"); search != "" {
		sel.Search = strings.TrimSpace(search)
	}
	if category := values.Get("category"); category != "" {
		sel.Category = category
	}
	if brand := values.Get("brand"); brand != "" {
		sel.Brand = brand
	}
	if sortBy := firstOf(values, "sortBy", "sort"); sortBy != "" {
		sel.SortBy = sortBy
	}
	sel.InStock = values.Get("inStock") == "true"
	sel.PriceMin = parsePrice(values.Get("minPrice"), 0)
	sel.PriceMax = parsePrice(values.Get("maxPrice"), c.MaxPrice)
	sel.clampPrices(c.MaxPrice)
	sel.Currencies = splitList(values.Get("currency"))
	sel.Regions = splitList(values.Get("region"))

	return sel
}

// Encode serializes a selection into sparse URL query parameters: a key is
// emitted iff the corresponding field differs from its default.
func (c Codec) Encode(sel Selection) url.Values {
	values := url.Values{}

	if search := strings.TrimSpace(sel.Search); search != "" {
		values.Set("search", search)
	}
	if sel.Category != "" && sel.Category != All {
		values.Set("category", sel.Category)
	}
	if sel.Brand != "" && sel.Brand != All {
		values.Set("brand", sel.Brand)
	}
	if sel.SortBy != "" && sel.SortBy != SortFeatured {
		values.Set("sortBy", sel.SortBy)
	}
	if sel.InStock {
		values.Set("inStock", "true")
	}
	if sel.PriceMin > 0 {
		values.Set("minPrice", formatPrice(sel.PriceMin))
	}
	if sel.PriceMax < c.MaxPrice {
		values.Set("maxPrice", formatPrice(sel.PriceMax))
	}
	if len(sel.Currencies) > 0 {
		values.Set("currency", strings.Join(sel.Currencies, ","))
	}
	if len(sel.Regions) > 0 {
		values.Set("region", strings.Join(sel.Regions, ","))
	}

	return values
}

func firstOf(values url.Values, canonical, alias string) string {
	if v := values.Get(canonical); v != "" {
		return v
	}
	return values.Get(alias)
}

func parsePrice(raw string, fallback float64) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	// ParseFloat accepts "NaN", which would poison every clamp comparison
	// and break JSON encoding downstream.
	if err != nil || math.IsNaN(parsed) {
		return fallback
	}
	return parsed
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := parts[:0]
	for _, part := range parts {
		if part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
