package related

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fekuna/omnipos-storefront-service/internal/catalog/store"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

type list []model.Product

func (l list) Products() []model.Product { return l }

func p(id, category, sub string) model.Product {
	return model.Product{
		BaseModel:   model.BaseModel{ID: id},
		Category:    category,
		SubCategory: sub,
		Images:      model.StringList{id + ".png"},
		Sizes:       model.StringList{"M"},
	}
}

func ids(products []model.Product) []string {
	out := []string{}
	for _, pr := range products {
		out = append(out, pr.ID)
	}
	return out
}

func TestSelect_ExcludesCurrentAndOtherSubCategory(t *testing.T) {
	catalog := list{
		p("A", "Shirts", "Men"),
		p("B", "Shirts", "Men"),
		p("C", "Shirts", "Women"),
	}

	got := Select(catalog, "A", "Shirts", "Men", DefaultLimit)

	assert.Equal(t, []string{"B"}, ids(got))
}

func TestSelect_TruncatesInCatalogOrder(t *testing.T) {
	var catalog list
	for i := 0; i < 9; i++ {
		catalog = append(catalog, p(fmt.Sprintf("p%d", i), "Men", "Topwear"))
	}

	got := Select(catalog, "p2", "Men", "Topwear", DefaultLimit)

	assert.Equal(t, []string{"p0", "p1", "p3", "p4", "p5"}, ids(got))
}

func TestSelect_FewerThanLimit(t *testing.T) {
	catalog := list{p("A", "Men", "Topwear"), p("B", "Men", "Topwear"), p("C", "Kids", "Topwear")}

	got := Select(catalog, "A", "Men", "Topwear", DefaultLimit)

	assert.Equal(t, []string{"B"}, ids(got))
}

func TestSelect_MatchIsExact(t *testing.T) {
	catalog := list{p("A", "Men", "Topwear"), p("B", "men", "Topwear"), p("C", "Men", "Topwear ")}

	assert.Empty(t, Select(catalog, "A", "Men", "Topwear", DefaultLimit))
}

func TestSelect_DegenerateInputs(t *testing.T) {
	catalog := list{p("A", "Men", "Topwear"), p("B", "Men", "Topwear")}

	assert.Empty(t, Select(nil, "A", "Men", "Topwear", DefaultLimit))
	assert.Empty(t, Select(catalog, "A", "Men", "Topwear", 0))
	assert.Empty(t, Select(list{}, "A", "Men", "Topwear", DefaultLimit))
}

func TestSelect_DoesNotMutateCatalog(t *testing.T) {
	catalog := list{p("A", "Men", "Topwear"), p("B", "Men", "Topwear")}
	before := ids(catalog)

	_ = Select(catalog, "A", "Men", "Topwear", 1)
	_ = Select(catalog, "B", "Men", "Topwear", 1)

	assert.Equal(t, before, ids(catalog))
}

func TestSelect_AgainstStore(t *testing.T) {
	st := store.New()
	assert.Empty(t, Select(st, "A", "Men", "Topwear", DefaultLimit))

	_, err := st.Load([]model.Product{p("A", "Men", "Topwear"), p("B", "Men", "Topwear")})
	require.NoError(t, err)

	assert.Equal(t, []string{"B"}, ids(Select(st, "A", "Men", "Topwear", DefaultLimit)))
}
