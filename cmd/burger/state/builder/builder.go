// Package builder holds the burger being assembled, not yet ordered.
package builder

import (
	"sync"

	apiingr "github.com/stellarburgers/burger/pkg/api/types/ingredients"
	"github.com/stellarburgers/burger/pkg/idgen"
)

// Item is an ingredient put into the builder.
//
// Key identifies the placement of the ingredient, so that the same ingredient
// can be added twice and removed one by one.
type Item struct {
	Key string
	apiingr.Ingredient
}

type Snapshot struct {
	// Bun is nil when no bun is selected.
	Bun *Item

	// Items are non-bun ingredients, from top to bottom.
	Items []Item
}

func (s Snapshot) Empty() bool {
	return s.Bun == nil && len(s.Items) == 0
}

type Store struct {
	mu  sync.Mutex
	ids idgen.Generator

	bun   *Item
	items []Item

	// revision changes whenever bun or items change.
	revision uint64

	priced       uint64
	price        int
	computations int
}

func New(ids idgen.Generator) *Store {
	return &Store{ids: ids, items: []Item{}, revision: 1}
}

// Add puts ingr into the builder.
//
// A bun replaces the current bun. Others are appended to the bottom.
func (s *Store) Add(ingr apiingr.Ingredient) Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := Item{Key: s.ids.Next(), Ingredient: ingr}
	if ingr.IsBun() {
		s.bun = &item
	} else {
		s.items = append(s.items, item)
	}
	s.revision += 1
	return item
}

// Remove drops the non-bun item with key. Unknown keys are ignored.
func (s *Store) Remove(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for nth := range s.items {
		if s.items[nth].Key != key {
			continue
		}
		s.items = append(s.items[:nth:nth], s.items[nth+1:]...)
		s.revision += 1
		return
	}
}

// Reorder moves the item at from to to, shifting items between them.
//
// Both indices should be in [0, Len()). Otherwise, it panics.
func (s *Store) Reorder(from, to int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	moved := s.items[from]
	if from == to {
		return
	}
	if from < to {
		copy(s.items[from:to], s.items[from+1:to+1])
	} else {
		copy(s.items[to+1:from+1], s.items[to:from])
	}
	s.items[to] = moved
	s.revision += 1
}

// Clear empties the builder.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.bun = nil
	s.items = []Item{}
	s.revision += 1
}

// Len is the number of non-bun items.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *Store) HasBun() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bun != nil
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{Items: make([]Item, len(s.items))}
	copy(snap.Items, s.items)
	if s.bun != nil {
		bun := *s.bun
		snap.Bun = &bun
	}
	return snap
}

// TotalPrice is twice the bun price (top and bottom) plus prices of the other items.
func (s *Store) TotalPrice() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.priced == s.revision {
		return s.price
	}

	price := 0
	if s.bun != nil {
		price += 2 * s.bun.Price
	}
	for _, i := range s.items {
		price += i.Price
	}
	s.price = price
	s.priced = s.revision
	s.computations += 1
	return price
}

// IngredientIDs lists ingredients to be ordered: bun, items, and bun again.
//
// Without bun, it returns empty.
func (s *Store) IngredientIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.bun == nil {
		return []string{}
	}
	ids := make([]string, 0, len(s.items)+2)
	ids = append(ids, s.bun.Id)
	for _, i := range s.items {
		ids = append(ids, i.Id)
	}
	return append(ids, s.bun.Id)
}
