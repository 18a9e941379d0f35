// Package catalog holds ingredients which can be put into burgers.
package catalog

import (
	"context"
	"sync"

	"github.com/stellarburgers/burger/cmd/burger/state/lifecycle"
	apiingr "github.com/stellarburgers/burger/pkg/api/types/ingredients"
)

const storeName = "catalog"

// Source is where ingredients come from. rest.BurgerClient is.
type Source interface {
	GetIngredients(ctx context.Context) ([]apiingr.Ingredient, error)
}

type Snapshot struct {
	Items  []apiingr.Ingredient
	Status lifecycle.Status
}

type Store struct {
	source    Source
	keepStale bool
	observer  lifecycle.Observer
	seq       lifecycle.Sequence

	mu     sync.Mutex
	items  []apiingr.Ingredient
	byId   map[string]apiingr.Ingredient
	status lifecycle.Status
}

type Option func(*Store) *Store

// WithKeepStaleOnError keeps items loaded before when fetching fails.
//
// By default, a failed fetch empties the catalog.
func WithKeepStaleOnError() Option {
	return func(s *Store) *Store {
		s.keepStale = true
		return s
	}
}

func WithObserver(o lifecycle.Observer) Option {
	return func(s *Store) *Store {
		s.observer = o
		return s
	}
}

func New(source Source, options ...Option) *Store {
	s := &Store{
		source: source,
		items:  []apiingr.Ingredient{},
		byId:   map[string]apiingr.Ingredient{},
	}
	for _, opt := range options {
		s = opt(s)
	}
	return s
}

// Fetch loads ingredients and replaces the catalog with them.
//
// When another Fetch starts before this returns, the result of this call is not applied.
func (s *Store) Fetch(ctx context.Context) ([]apiingr.Ingredient, error) {
	s.mu.Lock()
	n := s.seq.Next()
	s.status = lifecycle.Pending()
	s.mu.Unlock()
	s.observer.Notify(storeName, "fetch", lifecycle.Pending())

	items, err := s.source.GetIngredients(ctx)
	if err != nil {
		s.settle(n, lifecycle.Rejected(err), func() {
			if !s.keepStale {
				s.items = []apiingr.Ingredient{}
				s.byId = map[string]apiingr.Ingredient{}
			}
		})
		return nil, err
	}

	s.settle(n, lifecycle.Fulfilled(), func() {
		s.items = append(make([]apiingr.Ingredient, 0, len(items)), items...)
		s.byId = make(map[string]apiingr.Ingredient, len(items))
		for _, i := range items {
			s.byId[i.Id] = i
		}
	})
	return items, nil
}

// settle updates status and state together when n is the latest request, then notifies the observer.
//
// Request numbers are issued and checked under s.mu.
func (s *Store) settle(n uint64, status lifecycle.Status, update func()) {
	s.mu.Lock()
	if !s.seq.Latest(n) {
		s.mu.Unlock()
		return
	}
	s.status = status
	update()
	s.mu.Unlock()

	s.observer.Notify(storeName, "fetch", status)
}

func (s *Store) Lookup(id string) (apiingr.Ingredient, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.byId[id]
	return i, ok
}

// ByCategory lists ingredients of cat, in the catalog order.
func (s *Store) ByCategory(cat apiingr.Category) []apiingr.Ingredient {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := []apiingr.Ingredient{}
	for _, i := range s.items {
		if i.Type == cat {
			found = append(found, i)
		}
	}
	return found
}

func (s *Store) Status() lifecycle.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Items:  append([]apiingr.Ingredient{}, s.items...),
		Status: s.status,
	}
}
