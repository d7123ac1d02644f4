package catalog

import (
	"context"

	"github.com/fekuna/omnipos-storefront-service/internal/catalog/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

type UseCase interface {
	// Reload fetches the catalog and swaps it into the store.
	Reload(ctx context.Context) error
	// Refresh drops any cached copy first, then reloads.
	Refresh(ctx context.Context) error

	Browse(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
	Categories(ctx context.Context) ([]dto.CategoryFacet, error)
}
