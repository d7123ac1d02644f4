// Package store holds the in-memory catalog that every storefront component
// reads from. The whole catalog is the unit of change: Load swaps it in one
// step and observers are told about it afterwards.
package store

import (
	"crypto/md5"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

// Snapshot is one immutable generation of the catalog.
type Snapshot struct {
	products    []model.Product
	byID        map[string]int
	version     uint64
	fingerprint string
}

// Get returns the product with the given id. ok is false for unknown ids and
// for a snapshot that was never loaded.
func (s *Snapshot) Get(id string) (p model.Product, ok bool) {
	if s == nil {
		return model.Product{}, false
	}
	i, ok := s.byID[id]
	if !ok {
		return model.Product{}, false
	}
	return s.products[i].Clone(), true
}

// Products returns the catalog in iteration order. Every product is a copy.
func (s *Snapshot) Products() []model.Product {
	if s == nil {
		return nil
	}
	out := make([]model.Product, len(s.products))
	for i, p := range s.products {
		out[i] = p.Clone()
	}
	return out
}

func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.products)
}

// Version is 0 before the first load and grows by one per effective load.
func (s *Snapshot) Version() uint64 {
	if s == nil {
		return 0
	}
	return s.version
}

type Observer func(*Snapshot)

type subscription struct {
	id uint64
	fn Observer
}

type Store struct {
	current atomic.Pointer[Snapshot]

	loadMu sync.Mutex

	subMu  sync.Mutex
	nextID uint64
	subs   []subscription
}

func New() *Store {
	return &Store{}
}

// Load replaces the catalog with products. Loading a batch identical to the
// current one changes nothing and notifies nobody; the return value reports
// whether the catalog actually changed.
func (s *Store) Load(products []model.Product) (bool, error) {
	fp, err := fingerprint(products)
	if err != nil {
		return false, err
	}

	s.loadMu.Lock()
	prev := s.current.Load()
	if prev != nil && prev.fingerprint == fp {
		s.loadMu.Unlock()
		return false, nil
	}

	next := &Snapshot{
		products:    make([]model.Product, len(products)),
		byID:        make(map[string]int, len(products)),
		version:     prev.Version() + 1,
		fingerprint: fp,
	}
	for i, p := range products {
		next.products[i] = p.Clone()
		if _, dup := next.byID[p.ID]; !dup {
			next.byID[p.ID] = i
		}
	}
	s.current.Store(next)
	s.loadMu.Unlock()

	for _, sub := range s.subscribers() {
		sub.fn(next)
	}
	return true, nil
}

func (s *Store) Snapshot() *Snapshot {
	return s.current.Load()
}

func (s *Store) Get(id string) (model.Product, bool) {
	return s.current.Load().Get(id)
}

func (s *Store) Products() []model.Product {
	return s.current.Load().Products()
}

// IsLoaded separates "pending" from "not found" for dependents.
func (s *Store) IsLoaded() bool {
	return s.current.Load() != nil
}

func (s *Store) Version() uint64 {
	return s.current.Load().Version()
}

// Subscribe registers fn for every future effective load. Observers run on
// the loading goroutine after the new snapshot is visible and may receive
// snapshots out of order when loads race; compare Version to discard old ones.
func (s *Store) Subscribe(fn Observer) (unsubscribe func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscription{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			defer s.subMu.Unlock()
			for i, sub := range s.subs {
				if sub.id == id {
					s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
					return
				}
			}
		})
	}
}

func (s *Store) subscribers() []subscription {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	out := make([]subscription, len(s.subs))
	copy(out, s.subs)
	return out
}

func fingerprint(products []model.Product) (string, error) {
	if products == nil {
		products = []model.Product{}
	}
	data, err := json.Marshal(products)
	if err != nil {
		return "", fmt.Errorf("fingerprint catalog: %w", err)
	}
	return fmt.Sprintf("%x", md5.Sum(data)), nil
}
