package locale

import "context"

// Repository is the host string table
type Repository interface {
	AddOrUpdate(ctx context.Context, r *Resource) error
	// Get returns ErrNotFound when the resource is missing
	Get(ctx context.Context, languageID int64, name string) (*Resource, error)
	Delete(ctx context.Context, languageID int64, name string) error
}
