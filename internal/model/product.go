package model

import (
	"slices"

	"github.com/shopspring/decimal"
)

// Product is immutable once it has been delivered to the catalog.
type Product struct {
	BaseModel
	Name        string          `db:"name" json:"name"`
	Description string          `db:"description" json:"description"`
	Price       decimal.Decimal `db:"price" json:"price"`
	Category    string          `db:"category" json:"category"`
	SubCategory string          `db:"sub_category" json:"sub_category"`
	Images      StringList      `db:"images" json:"images"` // ordered, first is the default
	Sizes       StringList      `db:"sizes" json:"sizes"`
	BestSeller  bool            `db:"bestseller" json:"bestseller"`
}

func (p *Product) HasImage(ref string) bool {
	return slices.Contains(p.Images, ref)
}

func (p *Product) HasSize(label string) bool {
	return slices.Contains(p.Sizes, label)
}

// DefaultImage is the first image reference, or "" when the product has none.
func (p *Product) DefaultImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// Clone returns a copy that shares no slice memory with p.
func (p Product) Clone() Product {
	p.Images = slices.Clone(p.Images)
	p.Sizes = slices.Clone(p.Sizes)
	return p
}
