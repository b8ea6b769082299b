package catalog

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Name
	}
	return out
}

func TestMemStore_EmptyList(t *testing.T) {
	s := NewMemStore()

	items := s.List(context.Background())
	require.NotNil(t, items)
	assert.Empty(t, items)
	assert.Equal(t, 0, s.Len())
}

func TestMemStore_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()

	created := s.Create(ctx, "Test Item", decimal.RequireFromString("99.99"))
	require.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, "Test Item", created.Name)
	assert.True(t, decimal.RequireFromString("99.99").Equal(created.Price))

	found, ok := s.Get(ctx, created.ID)
	require.True(t, ok)
	assert.Equal(t, created, found)
}

func TestMemStore_GetMissing(t *testing.T) {
	s := NewMemStore()
	s.Create(context.Background(), "Something", decimal.Zero)

	_, ok := s.Get(context.Background(), uuid.New())
	assert.False(t, ok)
}

func TestMemStore_ListSortedByNameIgnoringCase(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()

	s.Create(ctx, "Zebra", decimal.NewFromInt(10))
	s.Create(ctx, "apple", decimal.NewFromInt(20))
	s.Create(ctx, "Banana", decimal.NewFromInt(30))

	assert.Equal(t, []string{"apple", "Banana", "Zebra"}, names(s.List(ctx)))
}

func TestMemStore_ListStableForEqualNames(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()

	first := s.Create(ctx, "Widget", decimal.NewFromInt(1))
	s.Create(ctx, "Anchor", decimal.NewFromInt(2))
	second := s.Create(ctx, "WIDGET", decimal.NewFromInt(3))
	third := s.Create(ctx, "widget", decimal.NewFromInt(4))

	items := s.List(ctx)
	require.Len(t, items, 4)
	assert.Equal(t, "Anchor", items[0].Name)
	assert.Equal(t, []uuid.UUID{first.ID, second.ID, third.ID},
		[]uuid.UUID{items[1].ID, items[2].ID, items[3].ID})
}

func TestMemStore_ConcurrentCreate(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()

	const n = 20
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Create(ctx, fmt.Sprintf("Item %d", i), decimal.NewFromInt(int64(i*10)))
			_ = s.List(ctx)
		}()
	}
	wg.Wait()

	items := s.List(ctx)
	require.Len(t, items, n)

	ids := make(map[uuid.UUID]struct{}, n)
	for _, it := range items {
		ids[it.ID] = struct{}{}
	}
	assert.Len(t, ids, n)
	assert.Equal(t, n, s.Len())
}

func TestMemStore_RegeneratesCollidingID(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()

	fixed := uuid.MustParse("0b7e6f7a-4f2e-4a57-9d0f-6a1f0a3c9e11")
	fresh := uuid.MustParse("5d3c2b1a-0000-4000-8000-000000000001")
	seq := []uuid.UUID{fixed, fixed, fresh}
	s.newID = func() uuid.UUID {
		id := seq[0]
		seq = seq[1:]
		return id
	}

	a := s.Create(ctx, "A", decimal.Zero)
	b := s.Create(ctx, "B", decimal.Zero)

	assert.Equal(t, fixed, a.ID)
	assert.Equal(t, fresh, b.ID)
}

func TestMemStore_ListReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()
	it := s.Create(ctx, "Original", decimal.NewFromInt(5))

	items := s.List(ctx)
	items[0].Name = "Mutated"

	got, ok := s.Get(ctx, it.ID)
	require.True(t, ok)
	assert.Equal(t, "Original", got.Name)
}
