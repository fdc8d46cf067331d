package paystack

import (
	"fmt"

	"github.com/flexprice/paystack-gateway/internal/domain/order"
	ierr "github.com/flexprice/paystack-gateway/internal/errors"
	"github.com/google/uuid"
)

// Metadata keys sent to the gateway and echoed back on verify
const (
	MetadataKeyOrderGUID         = "orderGuid"
	MetadataKeyCustomOrderNumber = "customOrderNumber"
)

// PaymentReference ties one payment attempt to one order
type PaymentReference struct {
	OrderGUID         uuid.UUID `json:"orderGuid"`
	CustomOrderNumber string    `json:"customOrderNumber"`
}

// EncodeReference builds the reference carried in the gateway metadata
func EncodeReference(o *order.Order) PaymentReference {
	return PaymentReference{
		OrderGUID:         o.GUID,
		CustomOrderNumber: o.CustomOrderNumber,
	}
}

// Metadata returns the wire form of the reference
func (r PaymentReference) Metadata() map[string]any {
	return map[string]any{
		MetadataKeyOrderGUID:         r.OrderGUID.String(),
		MetadataKeyCustomOrderNumber: r.CustomOrderNumber,
	}
}

// DecodeReference reads a reference back out of gateway metadata. Both keys must be present
// and non-empty, and the order guid must parse. Other keys are ignored.
func DecodeReference(metadata map[string]any) (PaymentReference, error) {
	guidValue, err := stringField(metadata, MetadataKeyOrderGUID)
	if err != nil {
		return PaymentReference{}, err
	}
	number, err := stringField(metadata, MetadataKeyCustomOrderNumber)
	if err != nil {
		return PaymentReference{}, err
	}

	guid, err := uuid.Parse(guidValue)
	if err != nil {
		return PaymentReference{}, ierr.WithError(err).
			WithHint("Payment reference order guid is malformed").
			WithReportableDetails(map[string]any{"order_guid": guidValue}).
			Mark(ierr.ErrInvalidUUID)
	}

	return PaymentReference{
		OrderGUID:         guid,
		CustomOrderNumber: number,
	}, nil
}

// stringField accepts strings and, since custom order numbers are often numeric, any scalar
// the JSON decoder may have produced for them
func stringField(metadata map[string]any, key string) (string, error) {
	raw, ok := metadata[key]
	if !ok || raw == nil {
		return "", missingField(key)
	}

	var value string
	switch v := raw.(type) {
	case string:
		value = v
	case float64, int, int64, bool:
		value = fmt.Sprint(v)
	default:
		return "", ierr.NewErrorf("payment reference field %s has unexpected type %T", key, raw).
			WithHint("Payment reference metadata is malformed").
			WithReportableDetails(map[string]any{"field": key}).
			Mark(ierr.ErrMissingField)
	}

	if value == "" {
		return "", missingField(key)
	}
	return value, nil
}

func missingField(key string) error {
	return ierr.NewErrorf("payment reference field %s is missing", key).
		WithHint("Payment reference metadata is incomplete").
		WithReportableDetails(map[string]any{"field": key}).
		Mark(ierr.ErrMissingField)
}
