package storefront

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fekuna/omnipos-storefront-service/internal/cart"
	"github.com/fekuna/omnipos-storefront-service/internal/catalog/store"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/productview"
)

func product(id, category, sub string, price int64) model.Product {
	return model.Product{
		BaseModel:   model.BaseModel{ID: id},
		Name:        "Product " + id,
		Price:       decimal.NewFromInt(price),
		Category:    category,
		SubCategory: sub,
		Images:      model.StringList{id + "_1.png", id + "_2.png"},
		Sizes:       model.StringList{"S", "M", "L"},
	}
}

func loadedStore(t *testing.T) *store.Store {
	t.Helper()
	st := store.New()
	_, err := st.Load([]model.Product{
		product("A", "Shirts", "Men", 10),
		product("B", "Shirts", "Men", 15),
		product("C", "Shirts", "Women", 20),
	})
	require.NoError(t, err)
	return st
}

func TestNew_Defaults(t *testing.T) {
	s := New(store.New())

	assert.NotEmpty(t, s.ID())
	assert.NotEqual(t, s.ID(), New(store.New()).ID())
	assert.Equal(t, "$0", s.Totals().Formatted)
}

func TestAddToCart_RequiresSize(t *testing.T) {
	s := New(loadedStore(t))
	view := s.OpenProduct("A")
	defer view.Close()

	_, err := s.AddToCart(view, 1)
	assert.True(t, cart.IsPreconditionViolation(err))
	assert.Zero(t, s.Cart().Len())

	require.True(t, view.SelectSize("M"))
	entry, err := s.AddToCart(view, 1)
	require.NoError(t, err)
	assert.Equal(t, model.CartEntry{ProductID: "A", Size: "M", Quantity: 1}, entry)
}

func TestAddToCart_PendingView(t *testing.T) {
	s := New(store.New())
	view := s.OpenProduct("A")
	defer view.Close()

	_, err := s.AddToCart(view, 1)
	assert.True(t, cart.IsPreconditionViolation(err))
}

func TestFullFlow(t *testing.T) {
	st := store.New()
	s := New(st, WithCurrencySymbol("£"), WithRelatedLimit(1))

	view := s.OpenProduct("A")
	defer view.Close()
	assert.Equal(t, productview.StatusPending, view.State().Status)

	_, err := st.Load([]model.Product{
		product("A", "Shirts", "Men", 10),
		product("B", "Shirts", "Men", 15),
		product("D", "Shirts", "Men", 15),
	})
	require.NoError(t, err)
	require.Equal(t, productview.StatusReady, view.State().Status)

	view.SelectSize("L")
	_, err = s.AddToCart(view, 2)
	require.NoError(t, err)

	rel := s.Related(view)
	require.Len(t, rel, 1)
	assert.Equal(t, "B", rel[0].ID)

	totals := s.Totals()
	assert.Equal(t, 2, totals.ItemCount)
	assert.Equal(t, "£20", totals.Formatted)
}

func TestRelated_NotReadyIsEmpty(t *testing.T) {
	s := New(loadedStore(t))
	view := s.OpenProduct("ghost")
	defer view.Close()

	assert.Empty(t, s.Related(view))
}

func TestRelated_DefaultSelection(t *testing.T) {
	s := New(loadedStore(t))
	view := s.OpenProduct("A")
	defer view.Close()

	rel := s.Related(view)
	require.Len(t, rel, 1)
	assert.Equal(t, "B", rel[0].ID)
}
