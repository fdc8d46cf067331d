package middleware

import (
	"crypto/subtle"

	"github.com/flexprice/paystack-gateway/internal/config"
	ierr "github.com/flexprice/paystack-gateway/internal/errors"
	"github.com/flexprice/paystack-gateway/internal/logger"
	"github.com/flexprice/paystack-gateway/internal/types"
	"github.com/gin-gonic/gin"
)

// AdminAuthMiddleware guards the admin routes with the configured admin key. With no key
// configured every admin request is refused.
func AdminAuthMiddleware(cfg *config.Configuration, logger *logger.Logger) gin.HandlerFunc {
	expected := []byte(cfg.Auth.AdminKey)

	return func(c *gin.Context) {
		provided := []byte(c.GetHeader(types.HeaderAdminKey))
		if len(expected) == 0 || subtle.ConstantTimeCompare(provided, expected) != 1 {
			logger.Debugw("admin request rejected",
				"path", c.Request.URL.Path,
				"has_key", len(provided) > 0)
			c.Error(ierr.NewError("invalid admin key").
				WithHint("Admin access denied").
				Mark(ierr.ErrPermissionDenied))
			c.Abort()
			return
		}
		c.Next()
	}
}
