package catalog

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	pkgerrors "github.com/MrJigi/mechhive-assignment-app/pkg/errors"
)

// normalizeRecord converts one raw upstream record into a Product. The
// ordinal index backs the synthetic ID when the record has no slug.
func normalizeRecord(raw json.RawMessage, index int) (Product, error) {
	var rec upstreamProduct
	if err := json.Unmarshal(raw, &rec); err != nil {
		return Product{}, pkgerrors.Wrap(pkgerrors.CodeRecordTransform, err, fmt.Sprintf("decode record %d", index))
	}
	return rec.normalize(index), nil
}

func (r upstreamProduct) normalize(index int) Product {
	id := r.Slug
	if id == "" {
		id = fmt.Sprintf("product-%d", index)
	}

	price := decimal.Zero
	if r.PriceAmount != nil {
		price = *r.PriceAmount
	} else if r.PriceAmountMin != nil {
		price = *r.PriceAmountMin
	}

	stocked := false
	if r.IsStocked != nil {
		stocked = *r.IsStocked
	} else if r.InStock != nil {
		stocked = *r.InStock
	}

	return Product{
		ID:             id,
		Name:           r.Name,
		Brand:          r.Brand,
		Description:    r.Description,
		Slug:           r.Slug,
		PriceCurrency:  r.PriceCurrency,
		PriceAmount:    r.PriceAmount,
		PriceAmountMin: r.PriceAmountMin,
		PriceAmountMax: r.PriceAmountMax,
		Category:       r.Category,
		IsStocked:      stocked,
		Region:         r.Region,
		Image:          r.Image,
		Price:          price,
		InStock:        stocked,
	}
}

// normalizeBatch maps every raw record, dropping the ones that fail and
// keeping the rest. The combined error reports each dropped record.
func normalizeBatch(raws []json.RawMessage) ([]Product, error) {
	products := make([]Product, 0, len(raws))
	var errs error
	for i, raw := range raws {
		product, err := normalizeRecord(raw, i)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		products = append(products, product)
	}
	return products, errs
}
