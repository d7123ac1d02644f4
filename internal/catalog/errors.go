package catalog

import (
	"errors"
	"fmt"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

var ErrInvalidCatalog = errors.New("invalid catalog")

// Validate checks a batch before it may replace the catalog. One bad record
// rejects the whole batch.
func Validate(products []model.Product) error {
	seen := make(map[string]struct{}, len(products))
	for i, p := range products {
		if p.ID == "" {
			return fmt.Errorf("%w: product at index %d has no id", ErrInvalidCatalog, i)
		}
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("%w: duplicate product id %q", ErrInvalidCatalog, p.ID)
		}
		seen[p.ID] = struct{}{}

		if p.Price.IsNegative() {
			return fmt.Errorf("%w: product %q has negative price %s", ErrInvalidCatalog, p.ID, p.Price)
		}
		if len(p.Images) == 0 {
			return fmt.Errorf("%w: product %q has no images", ErrInvalidCatalog, p.ID)
		}
		if len(p.Sizes) == 0 {
			return fmt.Errorf("%w: product %q has no sizes", ErrInvalidCatalog, p.ID)
		}
		sizes := make(map[string]struct{}, len(p.Sizes))
		for _, s := range p.Sizes {
			if _, dup := sizes[s]; dup {
				return fmt.Errorf("%w: product %q lists size %q twice", ErrInvalidCatalog, p.ID, s)
			}
			sizes[s] = struct{}{}
		}
	}
	return nil
}
