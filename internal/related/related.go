// Package related picks the "you may also like" strip shown under a product.
package related

import "github.com/fekuna/omnipos-storefront-service/internal/model"

const DefaultLimit = 5

// Lister is any catalog that can enumerate its products in iteration order.
type Lister interface {
	Products() []model.Product
}

// Select returns up to limit products sharing category and subCategory with
// the current product, excluding the current product itself, in catalog
// order. A nil catalog or a non-positive limit selects nothing.
func Select(catalog Lister, currentProductID, category, subCategory string, limit int) []model.Product {
	out := []model.Product{}
	if catalog == nil || limit <= 0 {
		return out
	}
	for _, p := range catalog.Products() {
		if len(out) == limit {
			break
		}
		if p.ID == currentProductID || p.Category != category || p.SubCategory != subCategory {
			continue
		}
		out = append(out, p)
	}
	return out
}
