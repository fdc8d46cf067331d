package main

import (
	"context"
	"net/http"
	"time"

	"github.com/flexprice/paystack-gateway/internal/api"
	v1 "github.com/flexprice/paystack-gateway/internal/api/v1"
	"github.com/flexprice/paystack-gateway/internal/cache"
	"github.com/flexprice/paystack-gateway/internal/config"
	"github.com/flexprice/paystack-gateway/internal/integration/paystack"
	"github.com/flexprice/paystack-gateway/internal/integration/paystack/callback"
	"github.com/flexprice/paystack-gateway/internal/logger"
	"github.com/flexprice/paystack-gateway/internal/metrics"
	"github.com/flexprice/paystack-gateway/internal/postgres"
	"github.com/flexprice/paystack-gateway/internal/repository"
	"github.com/flexprice/paystack-gateway/internal/sentry"
	"github.com/flexprice/paystack-gateway/internal/service"
	"github.com/flexprice/paystack-gateway/internal/types"
	"github.com/flexprice/paystack-gateway/internal/validator"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	var opts []fx.Option

	// Core dependencies
	opts = append(opts,
		fx.Provide(
			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Monitoring
			metrics.NewMetrics,

			// Cache
			cache.NewCache,

			// Postgres
			providePostgres,

			// Repositories
			repository.NewOrderRepository,
			repository.NewCustomerRepository,
			repository.NewSettingsRepository,
			repository.NewLocaleRepository,
		),
		sentry.Module(),
	)

	// Service layer
	opts = append(opts,
		fx.Provide(
			service.NewServiceParams,
			service.NewOrderService,
			service.NewSettingsService,
			service.NewPluginService,
			provideSettingsLoader,

			// Paystack
			paystack.NewClient,
			paystack.NewPaymentService,
			callback.NewHandler,
		),
	)

	// API
	opts = append(opts,
		fx.Provide(
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(
			validator.NewValidator,
			startServer,
		),
	)

	app := fx.New(opts...)
	app.Run()
}

func providePostgres(lc fx.Lifecycle, cfg *config.Configuration, log *logger.Logger) (*postgres.DB, error) {
	db, err := postgres.NewDB(cfg, log)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			db.Close()
			return nil
		},
	})
	return db, nil
}

func provideSettingsLoader(svc service.SettingsService) paystack.SettingsLoader {
	return svc
}

func provideHandlers(
	cfg *config.Configuration,
	logger *logger.Logger,
	paymentSvc *paystack.PaymentService,
	callbackHandler *callback.Handler,
	orderSvc service.OrderService,
	settingsSvc service.SettingsService,
	pluginSvc service.PluginService,
) api.Handlers {
	return api.Handlers{
		Health:    v1.NewHealthHandler(logger),
		Payment:   v1.NewPaymentHandler(paymentSvc, callbackHandler, orderSvc, pluginSvc, cfg, logger),
		Configure: v1.NewConfigureHandler(settingsSvc, pluginSvc, logger),
	}
}

func provideRouter(handlers api.Handlers, cfg *config.Configuration, logger *logger.Logger, m *metrics.Metrics) *gin.Engine {
	return api.NewRouter(handlers, cfg, logger, m)
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	db *postgres.DB,
	pluginSvc service.PluginService,
	log *logger.Logger,
) {
	mode := cfg.Deployment.Mode
	if mode == "" {
		mode = types.ModeLocal
	}

	switch mode {
	case types.ModeLocal:
		startMigrations(lc, db, log)
		startProvisioning(lc, cfg, pluginSvc, log)
		startAPIServer(lc, r, cfg, log)
	case types.ModeAPI:
		startProvisioning(lc, cfg, pluginSvc, log)
		startAPIServer(lc, r, cfg, log)
	default:
		log.Fatalf("Unknown deployment mode: %s", mode)
	}
}

func startMigrations(lc fx.Lifecycle, db *postgres.DB, log *logger.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Applying database schema...")
			return db.Migrate(ctx)
		},
	})
}

func startProvisioning(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	pluginSvc service.PluginService,
	log *logger.Logger,
) {
	if !cfg.Paystack.AutoProvision {
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if _, err := pluginSvc.Provision(ctx); err != nil {
				log.Errorw("failed to provision paystack plugin", "error", err)
				return err
			}
			return nil
		},
	})
}

func startAPIServer(
	lc fx.Lifecycle,
	r *gin.Engine,
	cfg *config.Configuration,
	log *logger.Logger,
) {
	srv := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: r,
	}

	log.Info("Registering API server start hook")
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("Starting API server...", "address", cfg.Server.Address)
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			return srv.Shutdown(ctx)
		},
	})
}
