package service

import (
	"github.com/flexprice/paystack-gateway/internal/cache"
	"github.com/flexprice/paystack-gateway/internal/config"
	"github.com/flexprice/paystack-gateway/internal/domain/customer"
	"github.com/flexprice/paystack-gateway/internal/domain/locale"
	"github.com/flexprice/paystack-gateway/internal/domain/order"
	"github.com/flexprice/paystack-gateway/internal/domain/settings"
	"github.com/flexprice/paystack-gateway/internal/logger"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	Cache  cache.Cache

	// Repositories
	OrderRepo    order.Repository
	CustomerRepo customer.Repository
	SettingsRepo settings.Repository
	LocaleRepo   locale.Repository
}

// NewServiceParams creates a new ServiceParams from the fx graph
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	cache cache.Cache,
	orderRepo order.Repository,
	customerRepo customer.Repository,
	settingsRepo settings.Repository,
	localeRepo locale.Repository,
) ServiceParams {
	return ServiceParams{
		Logger:       logger,
		Config:       config,
		Cache:        cache,
		OrderRepo:    orderRepo,
		CustomerRepo: customerRepo,
		SettingsRepo: settingsRepo,
		LocaleRepo:   localeRepo,
	}
}
