package types

import (
	"context"
	"strconv"
)

// ContextKey is a type for the keys of values stored in the context
type ContextKey string

const (
	CtxRequestID  ContextKey = "ctx_request_id"
	CtxStoreID    ContextKey = "ctx_store_id"
	CtxStoreScope ContextKey = "ctx_store_scope"
	CtxCustomerID ContextKey = "ctx_customer_id"
	CtxStoreURL   ContextKey = "ctx_store_url"

	// DefaultStoreScope is the shared scope every store falls back to
	DefaultStoreScope int64 = 0
)

// Headers the host sets on proxied requests
const (
	HeaderRequestID  = "X-Request-ID"
	HeaderStoreID    = "X-Store-ID"
	HeaderStoreScope = "X-Store-Scope"
	HeaderCustomerID = "X-Customer-ID"
	HeaderStoreURL   = "X-Store-URL"
	HeaderAdminKey   = "X-Admin-Key"
)

func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(CtxRequestID).(string); ok {
		return requestID
	}
	return ""
}

// GetStoreID returns the store serving the current request
func GetStoreID(ctx context.Context) int64 {
	if storeID, ok := ctx.Value(CtxStoreID).(int64); ok {
		return storeID
	}
	return 0
}

// GetStoreScope returns the active store scope used for configuration, 0 for all stores
func GetStoreScope(ctx context.Context) int64 {
	if scope, ok := ctx.Value(CtxStoreScope).(int64); ok {
		return scope
	}
	return DefaultStoreScope
}

// GetCustomerID returns the customer the host authenticated, 0 for guests
func GetCustomerID(ctx context.Context) int64 {
	if customerID, ok := ctx.Value(CtxCustomerID).(int64); ok {
		return customerID
	}
	return 0
}

// GetStoreURL returns the store location override for the current request
func GetStoreURL(ctx context.Context) string {
	if storeURL, ok := ctx.Value(CtxStoreURL).(string); ok {
		return storeURL
	}
	return ""
}

func SetRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, CtxRequestID, requestID)
}

func SetStoreID(ctx context.Context, storeID int64) context.Context {
	return context.WithValue(ctx, CtxStoreID, storeID)
}

func SetStoreScope(ctx context.Context, scope int64) context.Context {
	return context.WithValue(ctx, CtxStoreScope, scope)
}

func SetCustomerID(ctx context.Context, customerID int64) context.Context {
	return context.WithValue(ctx, CtxCustomerID, customerID)
}

func SetStoreURL(ctx context.Context, storeURL string) context.Context {
	return context.WithValue(ctx, CtxStoreURL, storeURL)
}

// ParseID parses a numeric header value, returning 0 for empty or malformed input
func ParseID(value string) int64 {
	if value == "" {
		return 0
	}
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id < 0 {
		return 0
	}
	return id
}
