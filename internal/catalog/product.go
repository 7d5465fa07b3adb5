// Package catalog turns filter selections into upstream catalog queries and
// normalizes whatever the upstream sends back into the single product shape
// the UI layer renders.
package catalog

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Brand is the upstream brand pair: machine slug plus display name.
type Brand struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// Product is the canonical, normalized product entity. Price is carried by up
// to three optional fields: a fixed amount, or a min/max range, or neither.
// Price and InStock are legacy convenience fields derived during
// normalization.
type Product struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	Brand          Brand            `json:"brand"`
	Description    string           `json:"description"`
	Slug           string           `json:"slug"`
	PriceCurrency  string           `json:"priceCurrency"`
	PriceAmount    *decimal.Decimal `json:"priceAmount,omitempty"`
	PriceAmountMin *decimal.Decimal `json:"priceAmountMin,omitempty"`
	PriceAmountMax *decimal.Decimal `json:"priceAmountMax,omitempty"`
	Category       string           `json:"category"`
	IsStocked      bool             `json:"isStocked"`
	Region         string           `json:"region"`
	Image          string           `json:"image"`

	Price   decimal.Decimal `json:"price"`
	InStock bool            `json:"inStock"`
}

const priceOnRequest = "Price on request"

// DisplayPrice renders the price for UI consumption. Exactly one form is
// chosen, in order: fixed amount, min-max range, "From min", legacy price,
// or a literal "price on request" marker.
func (p Product) DisplayPrice() string {
	sym := currencySymbol(p.PriceCurrency)

	switch {
	case p.PriceAmount != nil:
		return fmt.Sprintf("%s %s", sym, p.PriceAmount.String())
	case p.PriceAmountMin != nil && p.PriceAmountMax != nil:
		return fmt.Sprintf("%s %s - %s %s", sym, p.PriceAmountMin.String(), sym, p.PriceAmountMax.String())
	case p.PriceAmountMin != nil:
		return fmt.Sprintf("From %s %s", sym, p.PriceAmountMin.String())
	case !p.Price.IsZero():
		return fmt.Sprintf("%s %s", sym, p.Price.String())
	default:
		return priceOnRequest
	}
}

func currencySymbol(currency string) string {
	switch strings.ToUpper(strings.TrimSpace(currency)) {
	case "EUR":
		return "€"
	case "USD":
		return "$"
	case "GBP":
		return "£"
	default:
		return "¤"
	}
}

// ProductsResponse is the contract handed to the UI layer, identical whether
// it came from the live upstream or the offline fallback.
type ProductsResponse struct {
	Products   []Product `json:"products"`
	Total      int       `json:"total"`
	Page       int       `json:"page"`
	TotalPages int       `json:"totalPages"`
	Categories []string  `json:"categories"`
	Brands     []string  `json:"brands"`
}

// upstreamProduct mirrors one raw record from the catalog API. All fields are
// optional at the wire level; normalization fills the gaps.
type upstreamProduct struct {
	Name           string           `json:"name"`
	Brand          Brand            `json:"brand"`
	Description    string           `json:"description"`
	Slug           string           `json:"slug"`
	PriceCurrency  string           `json:"priceCurrency"`
	PriceAmount    *decimal.Decimal `json:"priceAmount"`
	PriceAmountMin *decimal.Decimal `json:"priceAmountMin"`
	PriceAmountMax *decimal.Decimal `json:"priceAmountMax"`
	Category       string           `json:"category"`
	IsStocked      *bool            `json:"isStocked"`
	InStock        *bool            `json:"inStock"`
	Region         string           `json:"region"`
	Image          string           `json:"image"`
}

// envelope is the upstream listing response. Products stay raw so a single
// malformed record cannot sink the whole batch.
type envelope struct {
	Products []json.RawMessage `json:"products"`
	Meta     struct {
		Pagination struct {
			TotalItems  *int `json:"totalItems"`
			CurrentPage *int `json:"currentPage"`
			TotalPages  *int `json:"totalPages"`
		} `json:"pagination"`
	} `json:"meta"`
	Filters struct {
		Brands     []string `json:"brands"`
		Categories []string `json:"categories"`
	} `json:"filters"`
}
