package catalog

import (
	catalogEntity "conputodo.GO/model/entity/catalog"
)

// VariantTotals are the root-level fields derived from a variant list.
type VariantTotals struct {
	TotalStock int64
	MinPrice   float64
}

// AggregateVariants computes the derived root stock and price for a
// variable product: total stock is the sum over variants (zero-stock
// variants contribute zero, they are not excluded), min price is the
// minimum variant price so list views can render "from $X" without
// reading variants. vs must be non-empty; a product without variants is
// simple and must not go through the aggregator.
func AggregateVariants(vs []catalogEntity.Variant) VariantTotals {
	totals := VariantTotals{MinPrice: vs[0].Price}
	for _, v := range vs {
		totals.TotalStock += v.Stock
		if v.Price < totals.MinPrice {
			totals.MinPrice = v.Price
		}
	}
	return totals
}
