package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

// FindAll returns every active product. created_at then id fixes the
// catalog iteration order.
func (r *PGRepository) FindAll(ctx context.Context) ([]model.Product, error) {
	query := `
        SELECT id, name, description, price, category, sub_category,
               images, sizes, bestseller, created_at, updated_at
        FROM products
        WHERE is_active = TRUE
        ORDER BY created_at ASC, id ASC
    `
	products := []model.Product{}
	if err := r.DB.SelectContext(ctx, &products, query); err != nil {
		return nil, fmt.Errorf("select products: %w", err)
	}
	return products, nil
}
