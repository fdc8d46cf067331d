package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/flexprice/paystack-gateway/internal/config"
	"github.com/flexprice/paystack-gateway/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
)

var corsAllowedHeaders = strings.Join([]string{
	"Content-Type",
	types.HeaderRequestID,
	types.HeaderAdminKey,
	types.HeaderStoreID,
	types.HeaderStoreScope,
	types.HeaderCustomerID,
	types.HeaderStoreURL,
}, ", ")

// CORSMiddleware answers browser preflights and sets CORS headers for the configured origins.
// Requests from other origins get no CORS headers.
func CORSMiddleware(cfg *config.Configuration) gin.HandlerFunc {
	allowAny := lo.Contains(cfg.CORS.AllowedOrigins, "*")
	allowed := lo.SliceToMap(cfg.CORS.AllowedOrigins, func(o string) (string, struct{}) {
		return strings.TrimRight(strings.ToLower(o), "/"), struct{}{}
	})
	maxAge := strconv.Itoa(int(cfg.CORS.MaxAge.Seconds()))

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			_, ok := allowed[strings.ToLower(origin)]
			switch {
			case allowAny:
				c.Header("Access-Control-Allow-Origin", "*")
			case ok:
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Vary", "Origin")
			}
			if allowAny || ok {
				c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
				c.Header("Access-Control-Allow-Headers", corsAllowedHeaders)
				c.Header("Access-Control-Max-Age", maxAge)
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
