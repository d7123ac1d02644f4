// Package storefront owns the state of one shopping session: the catalog it
// browses, the cart it fills and the product screens it opens.
package storefront

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fekuna/omnipos-storefront-service/internal/cart"
	"github.com/fekuna/omnipos-storefront-service/internal/catalog/store"
	"github.com/fekuna/omnipos-storefront-service/internal/logger"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/productview"
	"github.com/fekuna/omnipos-storefront-service/internal/related"
)

type options struct {
	currencySymbol string
	relatedLimit   int
	logger         logger.ZapLogger
}

type Option func(*options)

func WithCurrencySymbol(symbol string) Option {
	return func(o *options) { o.currencySymbol = symbol }
}

func WithRelatedLimit(limit int) Option {
	return func(o *options) { o.relatedLimit = limit }
}

func WithLogger(log logger.ZapLogger) Option {
	return func(o *options) { o.logger = log }
}

type Session struct {
	id           string
	catalog      *store.Store
	cart         *cart.Cart
	relatedLimit int
	logger       logger.ZapLogger
}

func New(catalog *store.Store, opts ...Option) *Session {
	o := options{
		currencySymbol: cart.DefaultCurrencySymbol,
		relatedLimit:   related.DefaultLimit,
		logger:         logger.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	id := uuid.New().String()
	log := o.logger.With(zap.String("session_id", id))
	return &Session{
		id:           id,
		catalog:      catalog,
		cart:         cart.New(catalog, cart.WithCurrencySymbol(o.currencySymbol), cart.WithLogger(log)),
		relatedLimit: o.relatedLimit,
		logger:       log,
	}
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) Catalog() *store.Store {
	return s.catalog
}

func (s *Session) Cart() *cart.Cart {
	return s.cart
}

// OpenProduct returns a view model already resolving productID. The caller
// closes it when the screen goes away.
func (s *Session) OpenProduct(productID string) *productview.ViewModel {
	vm := productview.New(s.catalog, s.logger)
	vm.Resolve(productID)
	return vm
}

// AddToCart commits the current selection of view. It refuses with a
// precondition violation unless the view could commit.
func (s *Session) AddToCart(view *productview.ViewModel, quantity int) (model.CartEntry, error) {
	state := view.State()
	if !state.CanAddToCart {
		s.logger.Warn("add to cart without a committed selection",
			zap.String("product_id", state.ProductID),
			zap.Stringer("status", state.Status),
		)
		return model.CartEntry{}, cart.NewFailedPrecondition(cart.ErrMsgSizeRequired)
	}
	return s.cart.Add(state.Product.ID, state.SelectedSize, quantity)
}

// Related lists products similar to the one view shows. Views that are not
// ready have nothing related.
func (s *Session) Related(view *productview.ViewModel) []model.Product {
	state := view.State()
	if state.Product == nil {
		return []model.Product{}
	}
	return related.Select(s.catalog, state.Product.ID, state.Product.Category, state.Product.SubCategory, s.relatedLimit)
}

func (s *Session) Totals() cart.Totals {
	return s.cart.Totals()
}
