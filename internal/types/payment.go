package types

import (
	"fmt"

	"github.com/samber/lo"
)

// PaymentStatus is the host's payment state of an order
type PaymentStatus string

const (
	PaymentStatusPending           PaymentStatus = "pending"
	PaymentStatusAuthorized        PaymentStatus = "authorized"
	PaymentStatusPaid              PaymentStatus = "paid"
	PaymentStatusPartiallyRefunded PaymentStatus = "partially_refunded"
	PaymentStatusRefunded          PaymentStatus = "refunded"
	PaymentStatusVoided            PaymentStatus = "voided"
)

func (s PaymentStatus) String() string {
	return string(s)
}

func (s PaymentStatus) Validate() error {
	allowed := []PaymentStatus{
		PaymentStatusPending,
		PaymentStatusAuthorized,
		PaymentStatusPaid,
		PaymentStatusPartiallyRefunded,
		PaymentStatusRefunded,
		PaymentStatusVoided,
	}
	if !lo.Contains(allowed, s) {
		return fmt.Errorf("invalid payment status: %s", s)
	}
	return nil
}

// OrderStatus is the host's fulfilment state of an order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusComplete   OrderStatus = "complete"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) String() string {
	return string(s)
}

// TransactionStatus is the status Paystack reports for a transaction
type TransactionStatus string

const (
	TransactionStatusSuccess   TransactionStatus = "success"
	TransactionStatusFailed    TransactionStatus = "failed"
	TransactionStatusAbandoned TransactionStatus = "abandoned"
	TransactionStatusOther     TransactionStatus = "other"
)

// ParseTransactionStatus folds every unknown gateway status into TransactionStatusOther
func ParseTransactionStatus(s string) TransactionStatus {
	switch TransactionStatus(s) {
	case TransactionStatusSuccess, TransactionStatusFailed, TransactionStatusAbandoned:
		return TransactionStatus(s)
	default:
		return TransactionStatusOther
	}
}

func (s TransactionStatus) String() string {
	return string(s)
}

// PaymentMethodType describes how the host runs a payment method at checkout
type PaymentMethodType string

const (
	PaymentMethodTypeStandard    PaymentMethodType = "standard"
	PaymentMethodTypeRedirection PaymentMethodType = "redirection"
	PaymentMethodTypeButton      PaymentMethodType = "button"
)

// RecurringPaymentType describes recurring payment support
type RecurringPaymentType string

const (
	RecurringPaymentTypeNotSupported RecurringPaymentType = "not_supported"
	RecurringPaymentTypeManual       RecurringPaymentType = "manual"
	RecurringPaymentTypeAutomatic    RecurringPaymentType = "automatic"
)
