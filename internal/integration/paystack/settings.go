package paystack

import (
	"context"

	"github.com/shopspring/decimal"
)

// Settings is the merchant configuration for one store scope
type Settings struct {
	SecretKey            string          `json:"secret_key"`
	AdditionalFeeEnabled bool            `json:"enable_additional_fee"`
	AdditionalFee        decimal.Decimal `json:"additional_fee"`
}

// SettingsLoader resolves the effective settings of a store
type SettingsLoader interface {
	LoadSettings(ctx context.Context, storeID int64) (*Settings, error)
}
