package order

import (
	"time"

	"github.com/flexprice/paystack-gateway/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is the host's order record. This service reads it to build a payment request and
// only ever writes the authorization transaction id and the paid transition.
type Order struct {
	ID                         int64               `db:"id" json:"id"`
	GUID                       uuid.UUID           `db:"order_guid" json:"order_guid"`
	CustomOrderNumber          string              `db:"custom_order_number" json:"custom_order_number"`
	StoreID                    int64               `db:"store_id" json:"store_id"`
	CustomerID                 int64               `db:"customer_id" json:"customer_id"`
	Total                      decimal.Decimal     `db:"order_total" json:"order_total"`
	OrderStatus                types.OrderStatus   `db:"order_status" json:"order_status"`
	PaymentStatus              types.PaymentStatus `db:"payment_status" json:"payment_status"`
	AuthorizationTransactionID string              `db:"authorization_transaction_id" json:"authorization_transaction_id"`
	PaidAt                     *time.Time          `db:"paid_at" json:"paid_at,omitempty"`
	CreatedAt                  time.Time           `db:"created_at" json:"created_at"`
	UpdatedAt                  time.Time           `db:"updated_at" json:"updated_at"`
}

// CanMarkAsPaid reports whether the order may transition to paid.
// It is the only guard against marking the same order paid twice.
func (o *Order) CanMarkAsPaid() bool {
	if o == nil {
		return false
	}
	if o.OrderStatus == types.OrderStatusCancelled {
		return false
	}
	switch o.PaymentStatus {
	case types.PaymentStatusPaid,
		types.PaymentStatusRefunded,
		types.PaymentStatusPartiallyRefunded,
		types.PaymentStatusVoided:
		return false
	}
	return true
}

// MarkAsPaid moves the order into the paid state
func (o *Order) MarkAsPaid(now time.Time) {
	o.PaymentStatus = types.PaymentStatusPaid
	o.PaidAt = &now
	o.UpdatedAt = now
	if o.OrderStatus == types.OrderStatusPending {
		o.OrderStatus = types.OrderStatusProcessing
	}
}
