package service

import (
	"context"
	"strings"
	"time"

	"github.com/flexprice/paystack-gateway/internal/api/dto"
	"github.com/flexprice/paystack-gateway/internal/domain/locale"
	"github.com/flexprice/paystack-gateway/internal/domain/order"
	ierr "github.com/flexprice/paystack-gateway/internal/errors"
	"github.com/flexprice/paystack-gateway/internal/integration/paystack"
	"github.com/flexprice/paystack-gateway/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

const (
	PluginSystemName   = "Payments.Paystack"
	PluginFriendlyName = "Paystack"

	configurationPath = "Admin/PaymentGateway/Configure"

	// rePostProcessDelay is how long after placing an order a customer must wait before
	// retrying the redirect
	rePostProcessDelay = 5 * time.Second
)

// Locale resource names
const (
	ResourceSecretKey               = "Plugins.Payments.Paystack.Fields.SecretKey"
	ResourceSecretKeyHint           = "Plugins.Payments.Paystack.Fields.SecretKey.Hint"
	ResourceRedirectionTip          = "Plugins.Payments.Paystack.Fields.RedirectionTip"
	ResourceAdditionalFee           = "Plugins.Payments.Paystack.Fields.AdditionalFee"
	ResourceAdditionalFeeHint       = "Plugins.Payments.Paystack.Fields.AdditionalFee.Hint"
	ResourceEnableAdditionalFee     = "Plugins.Payments.Paystack.Fields.EnableAdditionalFee"
	ResourceEnableAdditionalFeeHint = "Plugins.Payments.Paystack.Fields.EnableAdditionalFee.Hint"
	ResourcePaymentMethodDesc       = "Plugins.Payments.Paystack.PaymentMethodDescription"

	// ResourceSettingsSaved belongs to the host and is not installed by Provision
	ResourceSettingsSaved = "Admin.Plugins.Saved"
)

const redirectionTip = "For security purposes, you will be redirected to Paystack site to complete the order."

// DefaultResources are the strings installed with the plugin, in install order
var DefaultResources = []locale.Resource{
	{Name: ResourceSecretKey, Value: "Paystack Secret Key"},
	{Name: ResourceSecretKeyHint, Value: "Copy your secret key from your Paystack dashboard. This can be either the test secret key or live secret key."},
	{Name: ResourceRedirectionTip, Value: redirectionTip},
	{Name: ResourceAdditionalFee, Value: "Paystack Percentage fee"},
	{Name: ResourceAdditionalFeeHint, Value: "Enter Paystack percentage fee to charge your customers. This is the percentage Paystack charges per transaction."},
	{Name: ResourceEnableAdditionalFee, Value: "Enable Additional fee"},
	{Name: ResourceEnableAdditionalFeeHint, Value: "Check this box if you want Paystack percentage charge to be calculated on checkout. Make sure you enter the percentage."},
	{Name: ResourcePaymentMethodDesc, Value: redirectionTip},
}

// PluginService is the payment-method surface the host drives outside of checkout
type PluginService interface {
	Provision(ctx context.Context) (*dto.ProvisionResponse, error)
	Deprovision(ctx context.Context) (*dto.ProvisionResponse, error)
	Descriptor(ctx context.Context) (*dto.PaymentMethodDescriptor, error)
	AdditionalHandlingFee(ctx context.Context, storeID int64, subtotal decimal.Decimal) (decimal.Decimal, error)
	CanRePostProcessPayment(o *order.Order, now time.Time) (bool, error)
	// LocalizedString resolves a resource in the default language, or fallback when missing
	LocalizedString(ctx context.Context, name, fallback string) (string, error)

	Capture(ctx context.Context, o *order.Order) error
	Refund(ctx context.Context, o *order.Order, amount decimal.Decimal) error
	Void(ctx context.Context, o *order.Order) error
	ProcessRecurringPayment(ctx context.Context, o *order.Order) error
	CancelRecurringPayment(ctx context.Context, o *order.Order) error
}

type pluginService struct {
	ServiceParams
	settingsSvc SettingsService
}

func NewPluginService(params ServiceParams, settingsSvc SettingsService) PluginService {
	return &pluginService{
		ServiceParams: params,
		settingsSvc:   settingsSvc,
	}
}

// Provision saves default settings at the shared scope and installs the locale resources.
// Settings already present are kept, so running it on every start is safe.
func (s *pluginService) Provision(ctx context.Context) (*dto.ProvisionResponse, error) {
	if err := s.settingsSvc.EnsureDefaults(ctx, paystack.Settings{
		AdditionalFee: decimal.Zero,
	}); err != nil {
		return nil, err
	}

	for _, r := range DefaultResources {
		res := &locale.Resource{
			LanguageID: locale.DefaultLanguageID,
			Name:       r.Name,
			Value:      r.Value,
		}
		if err := s.LocaleRepo.AddOrUpdate(ctx, res); err != nil {
			return nil, err
		}
	}

	s.Logger.Infow("paystack plugin provisioned",
		"settings", len(types.PaystackSettingKeys),
		"resources", len(DefaultResources))

	return s.provisionResponse(), nil
}

// Deprovision removes everything Provision created
func (s *pluginService) Deprovision(ctx context.Context) (*dto.ProvisionResponse, error) {
	if err := s.settingsSvc.DeleteSettings(ctx); err != nil {
		return nil, err
	}

	for _, r := range DefaultResources {
		if err := s.LocaleRepo.Delete(ctx, locale.DefaultLanguageID, r.Name); err != nil {
			return nil, err
		}
	}

	s.Logger.Infow("paystack plugin deprovisioned")
	return s.provisionResponse(), nil
}

func (s *pluginService) provisionResponse() *dto.ProvisionResponse {
	return &dto.ProvisionResponse{
		Settings: types.PaystackSettingKeys,
		Resources: lo.Map(DefaultResources, func(r locale.Resource, _ int) string {
			return r.Name
		}),
	}
}

func (s *pluginService) Descriptor(ctx context.Context) (*dto.PaymentMethodDescriptor, error) {
	description, err := s.LocalizedString(ctx, ResourcePaymentMethodDesc, redirectionTip)
	if err != nil {
		return nil, err
	}

	base := types.GetStoreURL(ctx)
	if base == "" {
		base = s.Config.Store.BaseURL
	}

	return &dto.PaymentMethodDescriptor{
		SystemName:            PluginSystemName,
		FriendlyName:          PluginFriendlyName,
		MethodType:            types.PaymentMethodTypeRedirection,
		SupportsCapture:       false,
		SupportsRefund:        false,
		SupportsPartialRefund: false,
		SupportsVoid:          false,
		RecurringPaymentType:  types.RecurringPaymentTypeNotSupported,
		SkipPaymentInfo:       false,
		Description:           description,
		ConfigurationURL:      strings.TrimRight(base, "/") + "/" + configurationPath,
	}, nil
}

func (s *pluginService) LocalizedString(ctx context.Context, name, fallback string) (string, error) {
	res, err := s.LocaleRepo.Get(ctx, locale.DefaultLanguageID, name)
	if err != nil {
		if ierr.IsNotFound(err) {
			return fallback, nil
		}
		return "", err
	}
	return res.Value, nil
}

// AdditionalHandlingFee is the configured percentage of the subtotal, rounded to cents
func (s *pluginService) AdditionalHandlingFee(ctx context.Context, storeID int64, subtotal decimal.Decimal) (decimal.Decimal, error) {
	if subtotal.IsNegative() {
		return decimal.Zero, ierr.NewError("subtotal cannot be negative").
			WithHint("Subtotal must be zero or more").
			WithReportableDetails(map[string]any{"subtotal": subtotal.String()}).
			Mark(ierr.ErrValidation)
	}

	settings, err := s.settingsSvc.LoadSettings(ctx, storeID)
	if err != nil {
		return decimal.Zero, err
	}
	if !settings.AdditionalFeeEnabled || settings.AdditionalFee.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, nil
	}

	return subtotal.Mul(settings.AdditionalFee).Div(decimal.NewFromInt(100)).Round(2), nil
}

func (s *pluginService) CanRePostProcessPayment(o *order.Order, now time.Time) (bool, error) {
	if o == nil {
		return false, ierr.NewError("order is required").
			WithHint("Order is required").
			Mark(ierr.ErrValidation)
	}
	return now.Sub(o.CreatedAt) >= rePostProcessDelay, nil
}

func (s *pluginService) Capture(_ context.Context, _ *order.Order) error {
	return unsupported("Capture method not supported")
}

func (s *pluginService) Refund(_ context.Context, _ *order.Order, _ decimal.Decimal) error {
	return unsupported("Refund method not supported")
}

func (s *pluginService) Void(_ context.Context, _ *order.Order) error {
	return unsupported("Void method not supported")
}

func (s *pluginService) ProcessRecurringPayment(_ context.Context, _ *order.Order) error {
	return unsupported("Recurring payment not supported")
}

func (s *pluginService) CancelRecurringPayment(_ context.Context, _ *order.Order) error {
	return unsupported("Recurring payment not supported")
}

func unsupported(message string) error {
	return ierr.NewError(message).
		WithHint(message).
		Mark(ierr.ErrInvalidOperation)
}
