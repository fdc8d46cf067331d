package dto

import (
	"github.com/flexprice/paystack-gateway/internal/integration/paystack"
	"github.com/shopspring/decimal"
)

// ConfigurationModel is the admin view of the Paystack settings at one store scope.
// The override flags are only meaningful when ActiveStoreScope > 0.
type ConfigurationModel struct {
	ActiveStoreScope int64 `json:"active_store_scope"`

	SecretKey                 string `json:"secret_key"`
	SecretKeyOverrideForStore bool   `json:"secret_key_override_for_store"`

	AdditionalFee                 decimal.Decimal `json:"additional_fee"`
	AdditionalFeeOverrideForStore bool            `json:"additional_fee_override_for_store"`

	EnableAdditionalFee                 bool `json:"enable_additional_fee"`
	EnableAdditionalFeeOverrideForStore bool `json:"enable_additional_fee_override_for_store"`
}

// UpdateConfigurationRequest is the Configure form post
type UpdateConfigurationRequest struct {
	SecretKey                 string `json:"secret_key" validate:"max=255"`
	SecretKeyOverrideForStore bool   `json:"secret_key_override_for_store"`

	AdditionalFee                 decimal.Decimal `json:"additional_fee" validate:"decimal_gte0"`
	AdditionalFeeOverrideForStore bool            `json:"additional_fee_override_for_store"`

	EnableAdditionalFee                 bool `json:"enable_additional_fee"`
	EnableAdditionalFeeOverrideForStore bool `json:"enable_additional_fee_override_for_store"`
}

// ToSettings returns the posted values as settings
func (r *UpdateConfigurationRequest) ToSettings() paystack.Settings {
	return paystack.Settings{
		SecretKey:            r.SecretKey,
		AdditionalFee:        r.AdditionalFee,
		AdditionalFeeEnabled: r.EnableAdditionalFee,
	}
}

// ConfigurationResponse is returned after a successful save
type ConfigurationResponse struct {
	Model        *ConfigurationModel `json:"model"`
	Notification *Notification       `json:"notification,omitempty"`
}

// Notification is the banner shown to the admin
type Notification struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Message string `json:"message"`
}
