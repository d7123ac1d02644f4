package cart

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

type Line struct {
	model.CartEntry
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
	// Stale marks an entry whose product is gone from the catalog. It stays in
	// the cart and contributes nothing to Total.
	Stale bool
}

type Totals struct {
	Lines      []Line
	ItemCount  int // sum of quantities, stale lines included
	StaleCount int
	Total      decimal.Decimal
	Formatted  string
}

// Totals prices every entry against the catalog as it is right now.
func (c *Cart) Totals() Totals {
	c.mu.Lock()
	entries := c.entriesLocked()
	c.mu.Unlock()

	t := Totals{
		Lines: make([]Line, 0, len(entries)),
		Total: decimal.Zero,
	}
	for _, e := range entries {
		line := Line{CartEntry: e, UnitPrice: decimal.Zero, LineTotal: decimal.Zero}
		t.ItemCount += e.Quantity

		p, ok := c.catalog.Get(e.ProductID)
		if !ok {
			line.Stale = true
			t.StaleCount++
			c.logger.Warn("stale cart entry", zap.String("product_id", e.ProductID), zap.String("size", e.Size))
		} else {
			line.UnitPrice = p.Price
			line.LineTotal = p.Price.Mul(decimal.NewFromInt(int64(e.Quantity)))
			t.Total = t.Total.Add(line.LineTotal)
		}
		t.Lines = append(t.Lines, line)
	}
	t.Formatted = c.Format(t.Total)
	return t
}
