package filters

import (
	"encoding/json"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDefaults(t *testing.T) {
	codec := NewCodec(100)
	sel := codec.Decode(url.Values{})

	assert.Equal(t, Default(100), sel)
	assert.Equal(t, All, sel.Category)
	assert.Equal(t, SortFeatured, sel.SortBy)
	assert.Equal(t, float64(100), sel.PriceMax)
}

func TestDecodeLegacyAliases(t *testing.T) {
	codec := NewCodec(100)

	sel := codec.Decode(url.Values{"q": {"gift card"}, "sort": {"price-low"}})
	assert.Equal(t, "gift card", sel.Search)
	assert.Equal(t, "price-low", sel.SortBy)

	// Canonical names win when both are present.
	sel = codec.Decode(url.Values{
		"q":      {"old"},
		"search": {"new"},
		"sort":   {"price-low"},
		"sortBy": {"name"},
	})
	assert.Equal(t, "new", sel.Search)
	assert.Equal(t, "name", sel.SortBy)
}

func TestDecodeListsDropEmptySegments(t *testing.T) {
	codec := NewCodec(100)
	sel := codec.Decode(url.Values{
		"currency": {"EUR,,USD,"},
		"region":   {",Netherlands"},
	})
	assert.Equal(t, []string{"EUR", "USD"}, sel.Currencies)
	assert.Equal(t, []string{"Netherlands"}, sel.Regions)
}

func TestDecodeNonNumericPricesFallBack(t *testing.T) {
	codec := NewCodec(100)
	sel := codec.Decode(url.Values{"minPrice": {"abc"}, "maxPrice": {""}})
	assert.Equal(t, float64(0), sel.PriceMin)
	assert.Equal(t, float64(100), sel.PriceMax)

	// ParseFloat accepts "NaN" and "Inf" spellings; the decoded bounds must
	// still land on the defaults so the selection stays JSON-encodable.
	for _, tc := range []url.Values{
		{"minPrice": {"NaN"}, "maxPrice": {"nan"}},
		{"minPrice": {"-Inf"}, "maxPrice": {"+Inf"}},
	} {
		sel = codec.Decode(tc)
		assert.Equal(t, float64(0), sel.PriceMin, tc)
		assert.Equal(t, float64(100), sel.PriceMax, tc)

		_, err := json.Marshal(struct {
			Min float64 `json:"priceMin"`
			Max float64 `json:"priceMax"`
		}{sel.PriceMin, sel.PriceMax})
		require.NoError(t, err)
	}
}

func TestDecodeClampsAndSwapsPriceRange(t *testing.T) {
	codec := NewCodec(100)

	sel := codec.Decode(url.Values{"minPrice": {"-10"}, "maxPrice": {"9999"}})
	assert.Equal(t, float64(0), sel.PriceMin)
	assert.Equal(t, float64(100), sel.PriceMax)

	sel = codec.Decode(url.Values{"minPrice": {"80"}, "maxPrice": {"20"}})
	assert.Equal(t, float64(20), sel.PriceMin)
	assert.Equal(t, float64(80), sel.PriceMax)
}

func TestEncodeOmitsDefaults(t *testing.T) {
	codec := NewCodec(100)
	assert.Empty(t, codec.Encode(Default(100)))

	sel := Default(100)
	sel.Category = All
	sel.SortBy = SortFeatured
	sel.PriceMax = 100
	values := codec.Encode(sel)
	assert.Empty(t, values)
}

func TestEncodeEmitsOnlyDeviations(t *testing.T) {
	codec := NewCodec(100)
	sel := Default(100)
	sel.Search = "  steam card "
	sel.Brand = "Disney Plus"
	sel.InStock = true
	sel.PriceMax = 50

	values := codec.Encode(sel)
	assert.Equal(t, "steam card", values.Get("search"))
	assert.Equal(t, "Disney Plus", values.Get("brand"))
	assert.Equal(t, "true", values.Get("inStock"))
	assert.Equal(t, "50", values.Get("maxPrice"))
	assert.False(t, values.Has("category"))
	assert.False(t, values.Has("minPrice"))
	assert.False(t, values.Has("sortBy"))
}

func TestRoundTripNonDefaultSelection(t *testing.T) {
	codec := NewCodec(100)
	sel := Selection{
		Search:     "disney",
		Category:   "topup",
		Brand:      "Disney Plus",
		SortBy:     "price-high",
		InStock:    true,
		PriceMin:   5,
		PriceMax:   75,
		Currencies: []string{"EUR", "USD"},
		Regions:    []string{"Netherlands", "Germany"},
	}

	require.Equal(t, sel, codec.Decode(codec.Encode(sel)))
}

func TestEncodeDecodeIdempotent(t *testing.T) {
	codec := NewCodec(100)
	raw := url.Values{
		"q":        {"gift"},
		"sort":     {"name"},
		"category": {"All"},
		"minPrice": {"0"},
		"maxPrice": {"100"},
	}

	once := codec.Encode(codec.Decode(raw))
	twice := codec.Encode(codec.Decode(once))
	assert.Equal(t, once, twice)

	// Explicit defaults collapse away: only the alias-normalized deviations
	// survive the first pass.
	assert.Equal(t, "gift", once.Get("search"))
	assert.Equal(t, "name", once.Get("sortBy"))
	assert.False(t, once.Has("category"))
	assert.False(t, once.Has("minPrice"))
	assert.False(t, once.Has("maxPrice"))
}
