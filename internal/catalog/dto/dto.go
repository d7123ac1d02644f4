package dto

type ProductFilters struct {
	Categories    []string // empty means any
	SubCategories []string // empty means any
	SearchQuery   string   // case-insensitive match on name
	SortBy        string   // "", name, price
	SortOrder     string   // asc, desc
	Page          int
	PageSize      int
}

// CategoryFacet lists the sub-categories seen under one category.
type CategoryFacet struct {
	Category      string   `json:"category"`
	SubCategories []string `json:"sub_categories"`
}
