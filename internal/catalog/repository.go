package catalog

import (
	"context"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

// Repository is the external data source. FindAll returns the complete
// catalog as one batch in iteration order.
type Repository interface {
	FindAll(ctx context.Context) ([]model.Product, error)
}

// Invalidator is implemented by repositories that keep a copy of the catalog
// which must be dropped before a forced reload.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}
