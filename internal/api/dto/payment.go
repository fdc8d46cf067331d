package dto

import (
	"github.com/flexprice/paystack-gateway/internal/types"
	"github.com/shopspring/decimal"
)

// PaymentMethodDescriptor describes how the host should present and drive this payment method
type PaymentMethodDescriptor struct {
	SystemName            string                     `json:"system_name"`
	FriendlyName          string                     `json:"friendly_name"`
	MethodType            types.PaymentMethodType    `json:"method_type"`
	SupportsCapture       bool                       `json:"supports_capture"`
	SupportsRefund        bool                       `json:"supports_refund"`
	SupportsPartialRefund bool                       `json:"supports_partial_refund"`
	SupportsVoid          bool                       `json:"supports_void"`
	RecurringPaymentType  types.RecurringPaymentType `json:"recurring_payment_type"`
	SkipPaymentInfo       bool                       `json:"skip_payment_info"`
	Description           string                     `json:"description"`
	ConfigurationURL      string                     `json:"configuration_url"`
}

// AdditionalFeeResponse is the handling fee for a cart subtotal
type AdditionalFeeResponse struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Fee      decimal.Decimal `json:"fee"`
}

// ProvisionResponse reports what install or uninstall touched
type ProvisionResponse struct {
	Settings  []types.SettingKey `json:"settings"`
	Resources []string           `json:"resources"`
}
