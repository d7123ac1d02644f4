// Package cart is the shopper's ledger of purchase intent. Entries are keyed
// by product and size; prices are looked up from the catalog only when totals
// are computed.
package cart

import (
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/fekuna/omnipos-storefront-service/internal/logger"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

const DefaultCurrencySymbol = "$"

// PriceCatalog resolves products for pricing. *store.Store satisfies it.
type PriceCatalog interface {
	Get(id string) (model.Product, bool)
}

type Option func(*Cart)

func WithCurrencySymbol(symbol string) Option {
	return func(c *Cart) { c.currency = symbol }
}

func WithLogger(log logger.ZapLogger) Option {
	return func(c *Cart) { c.logger = log }
}

type Cart struct {
	mu       sync.Mutex
	catalog  PriceCatalog
	currency string
	logger   logger.ZapLogger

	entries map[model.CartKey]*model.CartEntry
	order   []model.CartKey
}

func New(catalog PriceCatalog, opts ...Option) *Cart {
	c := &Cart{
		catalog:  catalog,
		currency: DefaultCurrencySymbol,
		logger:   logger.NewNop(),
		entries:  make(map[model.CartKey]*model.CartEntry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Add records quantity more of productID in size. An existing entry for the
// same key absorbs the quantity. The catalog is not consulted: whoever calls
// Add must already have validated the size against the product.
func (c *Cart) Add(productID, size string, quantity int) (model.CartEntry, error) {
	if productID == "" {
		return model.CartEntry{}, NewInvalidArgument(ErrMsgProductIDRequired)
	}
	if size == "" {
		return model.CartEntry{}, NewFailedPrecondition(ErrMsgSizeRequired)
	}
	if quantity <= 0 {
		return model.CartEntry{}, NewInvalidArgument(ErrMsgQuantityPositive)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	key := model.CartKey{ProductID: productID, Size: size}
	entry, ok := c.entries[key]
	if !ok {
		entry = &model.CartEntry{ProductID: productID, Size: size}
		c.entries[key] = entry
		c.order = append(c.order, key)
	}
	entry.Quantity += quantity

	c.logger.Info("item added to cart",
		zap.String("product_id", productID),
		zap.String("size", size),
		zap.Int("quantity", entry.Quantity),
	)
	return *entry, nil
}

// UpdateQuantity sets the exact quantity. Zero or less removes the entry.
func (c *Cart) UpdateQuantity(productID, size string, quantity int) (model.CartEntry, error) {
	if quantity <= 0 {
		c.Remove(productID, size)
		return model.CartEntry{}, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[model.CartKey{ProductID: productID, Size: size}]
	if !ok {
		return model.CartEntry{}, NewFailedPreconditionf("%s: %s (%s)", ErrMsgItemNotInCart, productID, size)
	}
	entry.Quantity = quantity
	return *entry, nil
}

// Remove deletes the entry if present.
func (c *Cart) Remove(productID, size string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := model.CartKey{ProductID: productID, Size: size}
	if _, ok := c.entries[key]; !ok {
		return
	}
	delete(c.entries, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	c.logger.Info("item removed from cart", zap.String("product_id", productID), zap.String("size", size))
}

// Clear empties the cart. Checkout calls it after a successful order.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[model.CartKey]*model.CartEntry)
	c.order = nil
}

func (c *Cart) Get(productID, size string) (model.CartEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[model.CartKey{ProductID: productID, Size: size}]
	if !ok {
		return model.CartEntry{}, false
	}
	return *entry, true
}

// Entries returns the cart lines in the order they were first added.
func (c *Cart) Entries() []model.CartEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entriesLocked()
}

func (c *Cart) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, e := range c.entries {
		n += e.Quantity
	}
	return n
}

func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cart) entriesLocked() []model.CartEntry {
	out := make([]model.CartEntry, 0, len(c.order))
	for _, k := range c.order {
		out = append(out, *c.entries[k])
	}
	return out
}

// Format prefixes amount with the configured currency symbol.
func (c *Cart) Format(amount decimal.Decimal) string {
	return c.currency + amount.String()
}
