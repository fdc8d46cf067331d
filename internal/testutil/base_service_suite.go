package testutil

import (
	"context"
	"time"

	"github.com/flexprice/paystack-gateway/internal/cache"
	"github.com/flexprice/paystack-gateway/internal/config"
	"github.com/flexprice/paystack-gateway/internal/domain/customer"
	"github.com/flexprice/paystack-gateway/internal/domain/order"
	"github.com/flexprice/paystack-gateway/internal/logger"
	"github.com/flexprice/paystack-gateway/internal/types"
	"github.com/flexprice/paystack-gateway/internal/validator"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// Stores holds all the repository implementations for testing
type Stores struct {
	OrderRepo    *InMemoryOrderStore
	CustomerRepo *InMemoryCustomerStore
	SettingsRepo *InMemorySettingsStore
	LocaleRepo   *InMemoryLocaleStore
}

// BaseServiceTestSuite provides common functionality for all service test suites
type BaseServiceTestSuite struct {
	suite.Suite
	ctx    context.Context
	stores Stores
	cache  cache.Cache
	logger *logger.Logger
	config *config.Configuration
	now    time.Time
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	validator.NewValidator()

	s.config = config.GetDefaultConfig()
	s.config.Logging.Level = types.LogLevelError
	s.logger = logger.NewNopLogger()
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.ctx = SetupContext()
	s.stores = Stores{
		OrderRepo:    NewInMemoryOrderStore(),
		CustomerRepo: NewInMemoryCustomerStore(),
		SettingsRepo: NewInMemorySettingsStore(),
		LocaleRepo:   NewInMemoryLocaleStore(),
	}
	s.cache = cache.NewInMemoryCache(s.config)
	s.now = time.Now().UTC()
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.stores.OrderRepo.Clear()
	s.stores.CustomerRepo.Clear()
	s.stores.SettingsRepo.Clear()
	s.stores.LocaleRepo.Clear()
	s.cache.Flush(s.ctx)
}

func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

func (s *BaseServiceTestSuite) SetContext(ctx context.Context) {
	s.ctx = ctx
}

func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

func (s *BaseServiceTestSuite) GetCache() cache.Cache {
	return s.cache
}

func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now
}

// CreateCustomer stores a customer with the given email on the default customer id
func (s *BaseServiceTestSuite) CreateCustomer(email string) *customer.Customer {
	c := &customer.Customer{
		ID:       DefaultCustomerID,
		Email:    email,
		Username: "shopper",
	}
	s.Require().NoError(s.stores.CustomerRepo.Create(s.ctx, c))
	return c
}

// CreateOrder stores a pending order for the default store and customer
func (s *BaseServiceTestSuite) CreateOrder(total string, createdAt time.Time) *order.Order {
	o := &order.Order{
		GUID:              uuid.New(),
		CustomOrderNumber: "ORD-" + types.GenerateUUID()[:6],
		StoreID:           DefaultStoreID,
		CustomerID:        DefaultCustomerID,
		Total:             decimal.RequireFromString(total),
		OrderStatus:       types.OrderStatusPending,
		PaymentStatus:     types.PaymentStatusPending,
		CreatedAt:         createdAt,
		UpdatedAt:         createdAt,
	}
	s.Require().NoError(s.stores.OrderRepo.Create(s.ctx, o))
	return o
}
