package settings

import (
	"context"

	"github.com/flexprice/paystack-gateway/internal/types"
)

// Repository defines the interface for settings persistence operations
type Repository interface {
	// Get returns the setting stored exactly at storeID, ErrNotFound otherwise
	Get(ctx context.Context, key types.SettingKey, storeID int64) (*Setting, error)
	// Upsert creates or replaces the value at setting.StoreID
	Upsert(ctx context.Context, setting *Setting) error
	// Delete removes the value at storeID, a missing row is not an error
	Delete(ctx context.Context, key types.SettingKey, storeID int64) error
	// DeleteAll removes the key at every scope
	DeleteAll(ctx context.Context, key types.SettingKey) error
}
