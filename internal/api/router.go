package api

import (
	v1 "github.com/flexprice/paystack-gateway/internal/api/v1"
	"github.com/flexprice/paystack-gateway/internal/config"
	"github.com/flexprice/paystack-gateway/internal/logger"
	"github.com/flexprice/paystack-gateway/internal/metrics"
	"github.com/flexprice/paystack-gateway/internal/rest/middleware"
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Health    *v1.HealthHandler
	Payment   *v1.PaymentHandler
	Configure *v1.ConfigureHandler
}

func NewRouter(handlers Handlers, cfg *config.Configuration, logger *logger.Logger, m *metrics.Metrics) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(
		middleware.RequestIDMiddleware,
		middleware.CORSMiddleware(cfg),
		middleware.SentryMiddleware(cfg),
		middleware.StoreContextMiddleware(cfg, logger),
		middleware.ErrorHandler(),
	)

	router.GET("/health", handlers.Health.Health)
	router.POST("/health", handlers.Health.Health)

	if cfg.Metrics.Enabled && m != nil {
		router.GET(cfg.Metrics.Path, gin.WrapH(m.Handler()))
	}

	plugin := router.Group("/Plugins/PaymentGateway")
	{
		plugin.GET("/Callback", handlers.Payment.Callback)
		plugin.GET("/CancelOrder", handlers.Payment.CancelOrder)
		plugin.POST("/PostProcess/:order_guid", handlers.Payment.PostProcess)
		plugin.GET("/CanRePostProcess/:order_guid", handlers.Payment.CanRePostProcess)
		plugin.GET("/Descriptor", handlers.Payment.Descriptor)
		plugin.GET("/AdditionalFee", handlers.Payment.AdditionalFee)
	}

	admin := router.Group("/Admin/PaymentGateway")
	admin.Use(middleware.AdminAuthMiddleware(cfg, logger))
	{
		admin.GET("/Configure", handlers.Configure.GetConfiguration)
		admin.POST("/Configure", handlers.Configure.SaveConfiguration)
		admin.POST("/Install", handlers.Configure.Install)
		admin.POST("/Uninstall", handlers.Configure.Uninstall)
	}

	return router
}
