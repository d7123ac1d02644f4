package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fekuna/omnipos-storefront-service/internal/catalog/store"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

func priced(id string, price string) model.Product {
	return model.Product{
		BaseModel: model.BaseModel{ID: id},
		Name:      "Product " + id,
		Price:     decimal.RequireFromString(price),
		Images:    model.StringList{id + ".png"},
		Sizes:     model.StringList{"S", "M", "L"},
	}
}

func newCatalog(t *testing.T, products ...model.Product) *store.Store {
	t.Helper()
	st := store.New()
	_, err := st.Load(products)
	require.NoError(t, err)
	return st
}

func TestAdd_MergesSameProductAndSize(t *testing.T) {
	c := New(newCatalog(t))

	_, err := c.Add("p1", "M", 1)
	require.NoError(t, err)
	entry, err := c.Add("p1", "M", 1)
	require.NoError(t, err)

	assert.Equal(t, 2, entry.Quantity)
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, []model.CartEntry{{ProductID: "p1", Size: "M", Quantity: 2}}, c.Entries())
}

func TestAdd_DifferentSizesAreSeparateEntries(t *testing.T) {
	c := New(newCatalog(t))

	_, err := c.Add("p1", "M", 1)
	require.NoError(t, err)
	_, err = c.Add("p1", "L", 3)
	require.NoError(t, err)

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, 4, c.Count())
}

func TestAdd_ContractViolations(t *testing.T) {
	tests := []struct {
		name      string
		productID string
		size      string
		quantity  int
		code      StatusCode
		message   string
	}{
		{"missing size", "p1", "", 1, StatusFailedPrecondition, ErrMsgSizeRequired},
		{"missing product", "", "M", 1, StatusInvalidArgument, ErrMsgProductIDRequired},
		{"zero quantity", "p1", "M", 0, StatusInvalidArgument, ErrMsgQuantityPositive},
		{"negative quantity", "p1", "M", -2, StatusInvalidArgument, ErrMsgQuantityPositive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(newCatalog(t))

			_, err := c.Add(tt.productID, tt.size, tt.quantity)

			var cmdErr *CommandError
			require.ErrorAs(t, err, &cmdErr)
			assert.Equal(t, tt.code, cmdErr.Code)
			assert.Equal(t, tt.message, cmdErr.Message)
			assert.Zero(t, c.Len())
		})
	}
}

func TestIsPreconditionViolation(t *testing.T) {
	c := New(newCatalog(t))

	_, err := c.Add("p1", "", 1)
	assert.True(t, IsPreconditionViolation(err))

	_, err = c.Add("p1", "M", 0)
	assert.False(t, IsPreconditionViolation(err))
	assert.False(t, IsPreconditionViolation(nil))
}

func TestAdd_DoesNotConsultCatalog(t *testing.T) {
	c := New(newCatalog(t))

	entry, err := c.Add("not-in-catalog", "XXL", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, entry.Quantity)
}

func TestUpdateQuantity(t *testing.T) {
	c := New(newCatalog(t))
	_, err := c.Add("p1", "M", 1)
	require.NoError(t, err)

	entry, err := c.UpdateQuantity("p1", "M", 5)
	require.NoError(t, err)
	assert.Equal(t, 5, entry.Quantity)

	got, ok := c.Get("p1", "M")
	require.True(t, ok)
	assert.Equal(t, 5, got.Quantity)
}

func TestUpdateQuantity_ZeroRemoves(t *testing.T) {
	c := New(newCatalog(t, priced("p1", "10")))
	_, err := c.Add("p1", "M", 1)
	require.NoError(t, err)

	_, err = c.UpdateQuantity("p1", "M", 0)
	require.NoError(t, err)

	_, ok := c.Get("p1", "M")
	assert.False(t, ok)
	totals := c.Totals()
	assert.Empty(t, totals.Lines)
	assert.Zero(t, totals.ItemCount)
	assert.Equal(t, "$0", totals.Formatted)
}

func TestUpdateQuantity_NegativeOnAbsentIsNoOp(t *testing.T) {
	c := New(newCatalog(t))

	_, err := c.UpdateQuantity("p1", "M", -1)
	assert.NoError(t, err)
}

func TestUpdateQuantity_AbsentEntry(t *testing.T) {
	c := New(newCatalog(t))

	_, err := c.UpdateQuantity("p1", "M", 2)

	var cmdErr *CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, StatusFailedPrecondition, cmdErr.Code)
	assert.Contains(t, cmdErr.Message, ErrMsgItemNotInCart)
}

func TestRemove(t *testing.T) {
	c := New(newCatalog(t))
	_, _ = c.Add("p1", "M", 1)
	_, _ = c.Add("p2", "S", 1)
	_, _ = c.Add("p3", "L", 1)

	c.Remove("p2", "S")
	c.Remove("p2", "S")
	c.Remove("ghost", "M")

	assert.Equal(t, []model.CartEntry{
		{ProductID: "p1", Size: "M", Quantity: 1},
		{ProductID: "p3", Size: "L", Quantity: 1},
	}, c.Entries())
}

func TestClear(t *testing.T) {
	c := New(newCatalog(t))
	_, _ = c.Add("p1", "M", 2)

	c.Clear()

	assert.Zero(t, c.Len())
	assert.Empty(t, c.Entries())
	_, err := c.Add("p1", "M", 1)
	assert.NoError(t, err)
}

func TestTotals(t *testing.T) {
	c := New(newCatalog(t, priced("A", "10"), priced("B", "15")))
	_, _ = c.Add("A", "M", 2)
	_, _ = c.Add("B", "L", 1)

	totals := c.Totals()

	assert.Equal(t, 3, totals.ItemCount)
	assert.True(t, totals.Total.Equal(decimal.NewFromInt(35)))
	assert.Equal(t, "$35", totals.Formatted)
	require.Len(t, totals.Lines, 2)
	assert.True(t, totals.Lines[0].LineTotal.Equal(decimal.NewFromInt(20)))
	assert.Zero(t, totals.StaleCount)
}

func TestTotals_UsesPriceAtComputationTime(t *testing.T) {
	st := newCatalog(t, priced("A", "10"))
	c := New(st)
	_, _ = c.Add("A", "M", 1)

	_, err := st.Load([]model.Product{priced("A", "12.5")})
	require.NoError(t, err)

	assert.Equal(t, "$12.5", c.Totals().Formatted)
}

func TestTotals_StaleEntryStaysButCountsZero(t *testing.T) {
	st := newCatalog(t, priced("A", "10"), priced("B", "15"))
	c := New(st)
	_, _ = c.Add("A", "M", 2)
	_, _ = c.Add("B", "L", 1)

	_, err := st.Load([]model.Product{priced("B", "15")})
	require.NoError(t, err)

	totals := c.Totals()
	require.Len(t, totals.Lines, 2)
	assert.True(t, totals.Lines[0].Stale)
	assert.Equal(t, 2, totals.Lines[0].Quantity)
	assert.True(t, totals.Lines[0].LineTotal.IsZero())
	assert.False(t, totals.Lines[1].Stale)
	assert.Equal(t, 1, totals.StaleCount)
	assert.Equal(t, 3, totals.ItemCount)
	assert.Equal(t, "$15", totals.Formatted)

	entry, ok := c.Get("A", "M")
	require.True(t, ok)
	assert.Equal(t, 2, entry.Quantity)
}

func TestFormat_CustomSymbol(t *testing.T) {
	c := New(newCatalog(t, priced("A", "9.99")), WithCurrencySymbol("€"))
	_, _ = c.Add("A", "S", 3)

	assert.Equal(t, "€29.97", c.Totals().Formatted)
}

func TestStatusCodeString(t *testing.T) {
	assert.Equal(t, "INVALID_ARGUMENT", StatusInvalidArgument.String())
	assert.Equal(t, "FAILED_PRECONDITION", StatusFailedPrecondition.String())
	assert.Equal(t, "UNKNOWN", StatusCode(9).String())
}
