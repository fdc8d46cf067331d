package testutil

import (
	"context"

	"github.com/flexprice/paystack-gateway/internal/types"
)

// Default store and customer used across tests
const (
	DefaultStoreID    int64 = 1
	DefaultCustomerID int64 = 42
)

func SetupContext() context.Context {
	ctx := context.Background()
	ctx = types.SetRequestID(ctx, types.GenerateUUID())
	ctx = types.SetStoreID(ctx, DefaultStoreID)
	ctx = types.SetCustomerID(ctx, DefaultCustomerID)
	return ctx
}
