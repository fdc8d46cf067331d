package customer

import "context"

// Repository is the host customer store
type Repository interface {
	Create(ctx context.Context, c *Customer) error
	CreateAddress(ctx context.Context, a *Address) error
	Get(ctx context.Context, id int64) (*Customer, error)
	// GetShippingAddress returns nil without error when the customer has none
	GetShippingAddress(ctx context.Context, c *Customer) (*Address, error)
}
