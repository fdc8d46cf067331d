package middleware

import (
	"github.com/flexprice/paystack-gateway/internal/config"
	"github.com/flexprice/paystack-gateway/internal/logger"
	"github.com/flexprice/paystack-gateway/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func RequestIDMiddleware(c *gin.Context) {
	ctx := c.Request.Context()

	requestID := c.GetHeader(types.HeaderRequestID)
	if requestID == "" {
		requestID = uuid.New().String()
	}

	ctx = types.SetRequestID(ctx, requestID)
	c.Request = c.Request.WithContext(ctx)

	c.Header(types.HeaderRequestID, requestID)

	c.Next()
}

// StoreContextMiddleware copies the store, scope, customer and store location the host
// resolved for this request into the request context. Missing or malformed ids become 0.
// A store location outside the configured storefront origins is dropped.
func StoreContextMiddleware(cfg *config.Configuration, logger *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		ctx = types.SetStoreID(ctx, types.ParseID(c.GetHeader(types.HeaderStoreID)))
		ctx = types.SetStoreScope(ctx, types.ParseID(c.GetHeader(types.HeaderStoreScope)))
		ctx = types.SetCustomerID(ctx, types.ParseID(c.GetHeader(types.HeaderCustomerID)))
		if storeURL := c.GetHeader(types.HeaderStoreURL); storeURL != "" {
			if cfg.Store.AllowsURL(storeURL) {
				ctx = types.SetStoreURL(ctx, storeURL)
			} else {
				logger.Warnw("ignoring store url outside the allowed origins",
					"store_url", storeURL,
					"path", c.Request.URL.Path)
			}
		}

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
