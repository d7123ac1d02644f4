package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/fekuna/omnipos-storefront-service/internal/catalog"
	"github.com/fekuna/omnipos-storefront-service/internal/catalog/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/catalog/store"
	"github.com/fekuna/omnipos-storefront-service/internal/logger"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

type catalogUseCase struct {
	repo   catalog.Repository
	store  *store.Store
	logger logger.ZapLogger
}

func NewCatalogUseCase(repo catalog.Repository, st *store.Store, log logger.ZapLogger) catalog.UseCase {
	return &catalogUseCase{
		repo:   repo,
		store:  st,
		logger: log,
	}
}

func (uc *catalogUseCase) Reload(ctx context.Context) error {
	products, err := uc.repo.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("fetch catalog: %w", err)
	}

	if err := catalog.Validate(products); err != nil {
		uc.logger.Warn("rejecting catalog batch, keeping current catalog", zap.Error(err))
		return err
	}

	changed, err := uc.store.Load(products)
	if err != nil {
		return err
	}
	uc.logger.Info("catalog loaded",
		zap.Int("count", len(products)),
		zap.Uint64("version", uc.store.Version()),
		zap.Bool("changed", changed),
	)
	return nil
}

func (uc *catalogUseCase) Refresh(ctx context.Context) error {
	if inv, ok := uc.repo.(catalog.Invalidator); ok {
		if err := inv.Invalidate(ctx); err != nil {
			uc.logger.Warn("failed to invalidate catalog cache", zap.Error(err))
		}
	}
	return uc.Reload(ctx)
}

func (uc *catalogUseCase) Browse(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	if filters == nil {
		filters = &dto.ProductFilters{}
	}

	var matched []model.Product
	query := strings.ToLower(strings.TrimSpace(filters.SearchQuery))
	for _, p := range uc.store.Products() {
		if len(filters.Categories) > 0 && !slices.Contains(filters.Categories, p.Category) {
			continue
		}
		if len(filters.SubCategories) > 0 && !slices.Contains(filters.SubCategories, p.SubCategory) {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(p.Name), query) {
			continue
		}
		matched = append(matched, p)
	}

	desc := strings.ToLower(filters.SortOrder) == "desc"
	switch filters.SortBy {
	case "price":
		slices.SortStableFunc(matched, func(a, b model.Product) int {
			if desc {
				return b.Price.Cmp(a.Price)
			}
			return a.Price.Cmp(b.Price)
		})
	case "name":
		slices.SortStableFunc(matched, func(a, b model.Product) int {
			if desc {
				return strings.Compare(strings.ToLower(b.Name), strings.ToLower(a.Name))
			}
			return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		})
	}

	total := len(matched)
	if filters.PageSize > 0 {
		page := max(filters.Page, 1)
		start := (page - 1) * filters.PageSize
		if start >= total {
			return []model.Product{}, total, nil
		}
		end := min(start+filters.PageSize, total)
		matched = matched[start:end]
	}
	return matched, total, nil
}

func (uc *catalogUseCase) Categories(ctx context.Context) ([]dto.CategoryFacet, error) {
	var facets []dto.CategoryFacet
	index := map[string]int{}
	for _, p := range uc.store.Products() {
		i, ok := index[p.Category]
		if !ok {
			i = len(facets)
			index[p.Category] = i
			facets = append(facets, dto.CategoryFacet{Category: p.Category})
		}
		if p.SubCategory != "" && !slices.Contains(facets[i].SubCategories, p.SubCategory) {
			facets[i].SubCategories = append(facets[i].SubCategories, p.SubCategory)
		}
	}
	return facets, nil
}
