package repository

import (
	"github.com/flexprice/paystack-gateway/internal/domain/customer"
	"github.com/flexprice/paystack-gateway/internal/domain/locale"
	"github.com/flexprice/paystack-gateway/internal/domain/order"
	"github.com/flexprice/paystack-gateway/internal/domain/settings"
	"github.com/flexprice/paystack-gateway/internal/logger"
	"github.com/flexprice/paystack-gateway/internal/postgres"
	postgresRepo "github.com/flexprice/paystack-gateway/internal/repository/postgres"
)

func NewOrderRepository(db *postgres.DB, logger *logger.Logger) order.Repository {
	return postgresRepo.NewOrderRepository(db, logger)
}

func NewCustomerRepository(db *postgres.DB, logger *logger.Logger) customer.Repository {
	return postgresRepo.NewCustomerRepository(db, logger)
}

func NewSettingsRepository(db *postgres.DB, logger *logger.Logger) settings.Repository {
	return postgresRepo.NewSettingsRepository(db, logger)
}

func NewLocaleRepository(db *postgres.DB, logger *logger.Logger) locale.Repository {
	return postgresRepo.NewLocaleRepository(db, logger)
}
