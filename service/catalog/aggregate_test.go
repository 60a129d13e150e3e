package catalog

import (
	"testing"

	catalogEntity "conputodo.GO/model/entity/catalog"
)

func TestAggregateVariants(t *testing.T) {
	vs := []catalogEntity.Variant{
		{ID: "8gb", Name: "8GB", Price: 10, Stock: 2},
		{ID: "16gb", Name: "16GB", Price: 8, Stock: 0},
	}
	totals := AggregateVariants(vs)
	if totals.TotalStock != 2 {
		t.Errorf("TotalStock = %d, want 2", totals.TotalStock)
	}
	if totals.MinPrice != 8 {
		t.Errorf("MinPrice = %v, want 8", totals.MinPrice)
	}
}

func TestAggregateVariants_SingleVariant(t *testing.T) {
	totals := AggregateVariants([]catalogEntity.Variant{{ID: "u", Name: "Única", Price: 25.5, Stock: 7}})
	if totals.TotalStock != 7 || totals.MinPrice != 25.5 {
		t.Errorf("totals = %+v, want stock 7 price 25.5", totals)
	}
}

func TestAggregateVariants_AllZeroStock(t *testing.T) {
	vs := []catalogEntity.Variant{
		{ID: "a", Name: "A", Price: 5, Stock: 0},
		{ID: "b", Name: "B", Price: 9, Stock: 0},
	}
	totals := AggregateVariants(vs)
	if totals.TotalStock != 0 {
		t.Errorf("TotalStock = %d, want 0", totals.TotalStock)
	}
	if totals.MinPrice != 5 {
		t.Errorf("MinPrice = %v, want 5", totals.MinPrice)
	}
}
