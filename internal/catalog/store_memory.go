package catalog

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
)

type memRecord struct {
	item Item
	key  string
}

type MemStore struct {
	mu    sync.RWMutex
	m     map[uuid.UUID]int
	items []memRecord
	newID func() uuid.UUID
}

func NewMemStore() *MemStore {
	return &MemStore{
		m:     map[uuid.UUID]int{},
		newID: uuid.New,
	}
}

func NewStore() Store {
	return NewMemStore()
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// List returns items ordered by case-folded name; equal names keep insertion order.
func (s *MemStore) List(ctx context.Context) []Item {
	s.mu.RLock()
	recs := slices.Clone(s.items)
	s.mu.RUnlock()

	slices.SortStableFunc(recs, func(a, b memRecord) int {
		return strings.Compare(a.key, b.key)
	})

	out := make([]Item, len(recs))
	for i, rec := range recs {
		out[i] = rec.item
	}
	return out
}

func (s *MemStore) Get(ctx context.Context, id uuid.UUID) (Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.m[id]
	if !ok {
		return Item{}, false
	}
	return s.items[i].item, true
}

func (s *MemStore) Create(ctx context.Context, name string, price decimal.Decimal) Item {
	// A Caser is not safe for concurrent use, so each call gets its own.
	key := cases.Fold().String(name)

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.newID()
	for _, taken := s.m[id]; taken; _, taken = s.m[id] {
		id = s.newID()
	}

	it := Item{ID: id, Name: name, Price: price}
	s.m[id] = len(s.items)
	s.items = append(s.items, memRecord{item: it, key: key})
	return it
}
