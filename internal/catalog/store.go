package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Store owns item records. Implementations must be safe for concurrent use.
type Store interface {
	List(ctx context.Context) []Item
	Get(ctx context.Context, id uuid.UUID) (Item, bool)
	Create(ctx context.Context, name string, price decimal.Decimal) Item
	Ping(ctx context.Context) error
	Len() int
}
