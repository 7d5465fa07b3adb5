package catalog

import "github.com/shopspring/decimal"

// fallbackRecords is the fixed offline catalog served when the upstream is
// unreachable or unconfigured. Kept in the upstream record shape so the
// fallback flows through the same normalization as a live response.
var fallbackRecords = []upstreamProduct{
	{
		Name:          "Disney 50 USD US",
		Brand:         Brand{Slug: "disney", Name: "Disney Plus"},
		Description:   "Disney gift card",
		Slug:          "disney-us-usd-50",
		PriceCurrency: "usd",
		PriceAmount:   amount("50"),
		Category:      "topup",
		IsStocked:     boolPtr(true),
		Region:        "us",
		Image:         "https://cdn.rewarble.com/i/storebrandlandscape/disney.png",
	},
	{
		Name:           "Apple iTunes 10-100 EUR NL",
		Brand:          Brand{Slug: "apple", Name: "Apple iTunes"},
		Description:    "Apple iTunes gift card",
		Slug:           "apple-nl-eur-10-100",
		PriceCurrency:  "eur",
		PriceAmountMin: amount("10"),
		PriceAmountMax: amount("100"),
		Category:       "card",
		IsStocked:      boolPtr(true),
		Region:         "nl",
		Image:          "https://cdn.rewarble.com/i/storebrandlandscape/apple.png",
	},
	{
		Name:          "Xbox 25 EUR EU",
		Brand:         Brand{Slug: "xbox", Name: "Xbox"},
		Description:   "Xbox live credit",
		Slug:          "xbox-eu-eur-25",
		PriceCurrency: "eur",
		PriceAmount:   amount("25"),
		Category:      "topup",
		IsStocked:     boolPtr(false),
		Region:        "eu",
		Image:         "https://cdn.rewarble.com/i/storebrandlandscape/xbox.png",
	},
}

var (
	fallbackCategories = []string{"All", "Topup", "Card"}
	fallbackBrands     = []string{"All", "Disney", "Apple", "Xbox"}
)

// fallbackResponse renders the offline catalog in the exact shape of a live
// listing so downstream code never branches on "are we offline".
func fallbackResponse() *ProductsResponse {
	products := make([]Product, len(fallbackRecords))
	for i, rec := range fallbackRecords {
		products[i] = rec.normalize(i)
	}
	return &ProductsResponse{
		Products:   products,
		Total:      len(products),
		Page:       1,
		TotalPages: 1,
		Categories: append([]string(nil), fallbackCategories...),
		Brands:     append([]string(nil), fallbackBrands...),
	}
}

func amount(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func boolPtr(v bool) *bool {
	return &v
}
