package core

import (
	"sort"

	"stocklab.io/inventory-chat/internal/state"
)

// SortedView returns a new ordering of products for display. The input is
// never mutated. The ascending order is stable, and descending is its exact
// reversal, so flipping direction reverses the view even across ties.
func SortedView(products []state.Product, cfg state.SortConfig) []state.Product {
	out := make([]state.Product, len(products))
	copy(out, products)

	sort.SliceStable(out, func(i, j int) bool {
		return lessByKey(out[i], out[j], cfg.Key)
	})

	if cfg.Direction == state.Descending {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}

func lessByKey(a, b state.Product, key state.SortKey) bool {
	switch key {
	case state.SortByName:
		return a.Name < b.Name
	case state.SortByQuantity:
		return a.Quantity < b.Quantity
	case state.SortByPrice:
		return a.Price.Cmp(b.Price) < 0
	default:
		return a.ID < b.ID
	}
}
