package middleware

import (
	"time"

	"github.com/flexprice/paystack-gateway/internal/config"
	"github.com/flexprice/paystack-gateway/internal/types"
	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
)

const sentryFlushTimeout = 2 * time.Second

// SentryMiddleware gives each request its own hub tagged with the request id, store and route,
// then hands it to the gin integration which recovers panics and records the transaction.
func SentryMiddleware(cfg *config.Configuration) gin.HandlerFunc {
	if !cfg.Sentry.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	capture := sentrygin.New(sentrygin.Options{
		Repanic: true,
		Timeout: sentryFlushTimeout,
	})

	return func(c *gin.Context) {
		hub := sentry.CurrentHub().Clone()
		hub.ConfigureScope(func(scope *sentry.Scope) {
			scope.SetTag("request_id", types.GetRequestID(c.Request.Context()))
			scope.SetTag("store_id", c.GetHeader(types.HeaderStoreID))
			scope.SetTag("route", c.FullPath())
		})
		c.Request = c.Request.WithContext(sentry.SetHubOnContext(c.Request.Context(), hub))

		capture(c)
	}
}
