package settings

import (
	"strconv"
	"time"

	ierr "github.com/flexprice/paystack-gateway/internal/errors"
	"github.com/flexprice/paystack-gateway/internal/types"
	"github.com/shopspring/decimal"
)

// Setting is one key/value pair at a store scope. StoreID 0 is the shared default that
// every store inherits unless it overrides the key.
type Setting struct {
	ID        int64            `db:"id" json:"id"`
	Key       types.SettingKey `db:"name" json:"key"`
	Value     string           `db:"value" json:"value"`
	StoreID   int64            `db:"store_id" json:"store_id"`
	UpdatedAt time.Time        `db:"updated_at" json:"updated_at"`
}

// Validate validates the setting
func (s *Setting) Validate() error {
	if s.Key == "" {
		return ierr.NewError("setting key is required").
			Mark(ierr.ErrValidation)
	}
	if s.StoreID < 0 {
		return ierr.NewError("store id cannot be negative").
			WithReportableDetails(map[string]any{"store_id": s.StoreID}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// BoolValue parses the stored value as a bool, false when unset or malformed
func (s *Setting) BoolValue() bool {
	if s == nil {
		return false
	}
	v, err := strconv.ParseBool(s.Value)
	return err == nil && v
}

// DecimalValue parses the stored value as a decimal, zero when unset or malformed
func (s *Setting) DecimalValue() decimal.Decimal {
	if s == nil || s.Value == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s.Value)
	if err != nil {
		return decimal.Zero
	}
	return d
}
