package order

import (
	"context"

	"github.com/google/uuid"
)

// SearchFilter narrows an order search. PageSize <= 0 means no limit.
type SearchFilter struct {
	StoreID    int64
	CustomerID int64
	PageSize   int
}

// Repository is the host order store
type Repository interface {
	Create(ctx context.Context, o *Order) error
	Get(ctx context.Context, id int64) (*Order, error)
	GetByGUID(ctx context.Context, guid uuid.UUID) (*Order, error)
	Update(ctx context.Context, o *Order) error
	// Search returns orders newest first
	Search(ctx context.Context, filter SearchFilter) ([]*Order, error)
}
