package paystack

import (
	"context"
	"strings"

	"github.com/flexprice/paystack-gateway/internal/config"
	"github.com/flexprice/paystack-gateway/internal/domain/customer"
	"github.com/flexprice/paystack-gateway/internal/domain/order"
	ierr "github.com/flexprice/paystack-gateway/internal/errors"
	"github.com/flexprice/paystack-gateway/internal/logger"
	"github.com/flexprice/paystack-gateway/internal/types"
	"github.com/shopspring/decimal"
)

var minorUnitsPerMajor = decimal.NewFromInt(100)

// PaymentService starts the redirect leg of a checkout
type PaymentService struct {
	client       PaystackClient
	settings     SettingsLoader
	customerRepo customer.Repository
	cfg          *config.Configuration
	logger       *logger.Logger
}

// NewPaymentService creates a new Paystack payment service
func NewPaymentService(
	client PaystackClient,
	settings SettingsLoader,
	customerRepo customer.Repository,
	cfg *config.Configuration,
	logger *logger.Logger,
) *PaymentService {
	return &PaymentService{
		client:       client,
		settings:     settings,
		customerRepo: customerRepo,
		cfg:          cfg,
		logger:       logger,
	}
}

// PostProcessPayment initializes a gateway transaction for the order and returns the URL the
// customer must be redirected to. The order is never modified here.
func (s *PaymentService) PostProcessPayment(ctx context.Context, o *order.Order) (string, error) {
	if o == nil {
		return "", ierr.NewError("order is required").
			Mark(ierr.ErrValidation)
	}

	settings, err := s.settings.LoadSettings(ctx, o.StoreID)
	if err != nil {
		return "", err
	}

	email, err := s.resolveEmail(ctx, o.CustomerID)
	if err != nil {
		return "", err
	}

	amount, err := AmountInMinorUnits(o.Total)
	if err != nil {
		return "", err
	}

	reference := EncodeReference(o)
	req := TransactionInitRequest{
		AmountMinorUnits: amount,
		Email:            email,
		CallbackURL:      s.CallbackURL(ctx),
		Reference:        o.GUID.String(),
		Metadata:         reference,
	}

	s.logger.Infow("starting paystack checkout",
		"order_id", o.ID,
		"order_guid", o.GUID,
		"amount", amount,
		"callback_url", req.CallbackURL)

	result, err := s.client.Initialize(ctx, settings.SecretKey, req)
	if err != nil {
		return "", err
	}

	return result.AuthorizationURL, nil
}

// AmountInMinorUnits rounds the total up to a whole currency unit before converting, so
// 10.01 becomes 1100
func AmountInMinorUnits(total decimal.Decimal) (int64, error) {
	if total.IsNegative() {
		return 0, ierr.NewError("order total cannot be negative").
			WithHint("Order total is invalid").
			WithReportableDetails(map[string]any{"order_total": total.String()}).
			Mark(ierr.ErrValidation)
	}
	return total.Ceil().Mul(minorUnitsPerMajor).IntPart(), nil
}

// CallbackURL is the store location followed by the callback route
func (s *PaymentService) CallbackURL(ctx context.Context) string {
	base := types.GetStoreURL(ctx)
	if base == "" {
		base = s.cfg.Store.BaseURL
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + strings.TrimLeft(s.cfg.Paystack.CallbackPath, "/")
}

// resolveEmail prefers the account email and falls back to the shipping address
func (s *PaymentService) resolveEmail(ctx context.Context, customerID int64) (string, error) {
	c, err := s.customerRepo.Get(ctx, customerID)
	if err != nil {
		return "", err
	}
	if c.Email != "" {
		return c.Email, nil
	}

	addr, err := s.customerRepo.GetShippingAddress(ctx, c)
	if err != nil {
		return "", err
	}
	if addr != nil && addr.Email != "" {
		return addr.Email, nil
	}

	return "", ierr.NewError("customer has no email").
		WithHint("An email address is required to pay with Paystack").
		WithReportableDetails(map[string]any{"customer_id": customerID}).
		Mark(ierr.ErrCustomerEmailMissing)
}
