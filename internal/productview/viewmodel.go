// Package productview keeps the transient state of one product detail
// screen: which product is shown, which image is displayed and which size
// the shopper picked.
package productview

import (
	"sync"

	"go.uber.org/zap"

	"github.com/fekuna/omnipos-storefront-service/internal/catalog/store"
	"github.com/fekuna/omnipos-storefront-service/internal/logger"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

type Status int

const (
	StatusPending Status = iota
	StatusReady
	StatusNotFound
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "PENDING"
	case StatusReady:
		return "READY"
	case StatusNotFound:
		return "NOT_FOUND"
	default:
		return "UNKNOWN"
	}
}

// Catalog is what a view model needs from the catalog store.
type Catalog interface {
	Snapshot() *store.Snapshot
	Subscribe(fn store.Observer) (unsubscribe func())
}

// State is a copy of the view model at one instant.
type State struct {
	ProductID     string
	Status        Status
	Product       *model.Product // nil unless Status is StatusReady
	SelectedImage string
	SelectedSize  string
	CanAddToCart  bool
}

// request tags a resolution with the intent it was issued for. A result is
// applied only while its generation is still the current one.
type request struct {
	generation uint64
	productID  string
}

type result struct {
	status  Status
	product model.Product
	version uint64
}

type ViewModel struct {
	mu      sync.Mutex
	catalog Catalog
	logger  logger.ZapLogger

	unsubscribe func()
	closed      bool

	generation  uint64
	productID   string
	seenVersion uint64

	status  Status
	product model.Product
	image   string
	size    string
}

// New creates a view model bound to catalog. It follows every later catalog
// load until Close is called.
func New(catalog Catalog, log logger.ZapLogger) *ViewModel {
	vm := &ViewModel{
		catalog: catalog,
		logger:  log,
		status:  StatusPending,
	}
	vm.unsubscribe = catalog.Subscribe(vm.onCatalogLoaded)
	return vm
}

// Resolve points the view at productID. Any previous selection is discarded
// and any resolution still in flight for an earlier id becomes stale.
func (vm *ViewModel) Resolve(productID string) {
	vm.mu.Lock()
	vm.generation++
	vm.productID = productID
	vm.status = StatusPending
	vm.product = model.Product{}
	vm.image = ""
	vm.size = ""
	vm.seenVersion = 0
	req := vm.currentRequest()
	vm.mu.Unlock()

	vm.apply(req, resolve(vm.catalog.Snapshot(), productID))
}

// SelectImage shows ref. Refs that do not belong to the current product are
// ignored; they come from UI events that raced a product switch.
func (vm *ViewModel) SelectImage(ref string) bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	if vm.status != StatusReady || !vm.product.HasImage(ref) {
		vm.logger.Debug("ignoring image selection",
			zap.String("product_id", vm.productID),
			zap.String("image", ref),
			zap.Stringer("status", vm.status),
		)
		return false
	}
	vm.image = ref
	return true
}

// SelectSize picks label. Labels the current product does not offer are
// ignored and leave the previous selection in place.
func (vm *ViewModel) SelectSize(label string) bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	if vm.status != StatusReady || !vm.product.HasSize(label) {
		vm.logger.Debug("ignoring size selection",
			zap.String("product_id", vm.productID),
			zap.String("size", label),
			zap.Stringer("status", vm.status),
		)
		return false
	}
	vm.size = label
	return true
}

// CanCommit reports whether "add to cart" may be offered.
func (vm *ViewModel) CanCommit() bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.canCommit()
}

func (vm *ViewModel) State() State {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	st := State{
		ProductID:     vm.productID,
		Status:        vm.status,
		SelectedImage: vm.image,
		SelectedSize:  vm.size,
		CanAddToCart:  vm.canCommit(),
	}
	if vm.status == StatusReady {
		p := vm.product.Clone()
		st.Product = &p
	}
	return st
}

// Close detaches the view model from the catalog. Later loads leave it alone.
func (vm *ViewModel) Close() {
	vm.mu.Lock()
	vm.closed = true
	vm.mu.Unlock()
	vm.unsubscribe()
}

func (vm *ViewModel) canCommit() bool {
	return vm.status == StatusReady && vm.size != ""
}

func (vm *ViewModel) currentRequest() request {
	return request{generation: vm.generation, productID: vm.productID}
}

func (vm *ViewModel) onCatalogLoaded(snap *store.Snapshot) {
	vm.mu.Lock()
	if vm.closed || vm.generation == 0 {
		vm.mu.Unlock()
		return
	}
	req := vm.currentRequest()
	vm.mu.Unlock()

	vm.apply(req, resolve(snap, req.productID))
}

// apply installs res if req still describes what the view wants and res comes
// from a newer catalog than the one already shown.
func (vm *ViewModel) apply(req request, res result) bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	if vm.closed || req.generation != vm.generation {
		vm.logger.Debug("discarding stale resolution",
			zap.String("product_id", req.productID),
			zap.String("current_product_id", vm.productID),
		)
		return false
	}
	if res.status == StatusPending || res.version <= vm.seenVersion {
		return false
	}

	wasReady := vm.status == StatusReady
	vm.seenVersion = res.version
	vm.status = res.status

	if res.status != StatusReady {
		vm.product = model.Product{}
		vm.image = ""
		vm.size = ""
		return true
	}

	vm.product = res.product
	vm.image = res.product.DefaultImage()
	if !wasReady || !res.product.HasSize(vm.size) {
		vm.size = ""
	}
	return true
}

func resolve(snap *store.Snapshot, productID string) result {
	if snap == nil {
		return result{status: StatusPending}
	}
	p, ok := snap.Get(productID)
	if !ok {
		return result{status: StatusNotFound, version: snap.Version()}
	}
	return result{status: StatusReady, product: p, version: snap.Version()}
}
