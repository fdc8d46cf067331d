package service

import (
	"context"
	"time"

	"github.com/flexprice/paystack-gateway/internal/domain/order"
	ierr "github.com/flexprice/paystack-gateway/internal/errors"
	"github.com/google/uuid"
)

// OrderService is the order processing surface the payment flow relies on
type OrderService interface {
	GetOrderByGUID(ctx context.Context, guid uuid.UUID) (*order.Order, error)
	// GetLatestOrder returns nil without error when the customer has no orders in the store
	GetLatestOrder(ctx context.Context, storeID, customerID int64) (*order.Order, error)
	// MarkOrderAsPaid records the gateway transaction and moves the order to paid. It reports
	// false and leaves the order untouched when the order cannot be marked paid.
	MarkOrderAsPaid(ctx context.Context, o *order.Order, transactionID string) (bool, error)
}

type orderService struct {
	ServiceParams
	now func() time.Time
}

func NewOrderService(params ServiceParams) OrderService {
	return &orderService{
		ServiceParams: params,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

func (s *orderService) GetOrderByGUID(ctx context.Context, guid uuid.UUID) (*order.Order, error) {
	if guid == uuid.Nil {
		return nil, ierr.NewError("order guid is required").
			WithHint("Order guid is required").
			Mark(ierr.ErrValidation)
	}
	return s.OrderRepo.GetByGUID(ctx, guid)
}

func (s *orderService) GetLatestOrder(ctx context.Context, storeID, customerID int64) (*order.Order, error) {
	orders, err := s.OrderRepo.Search(ctx, order.SearchFilter{
		StoreID:    storeID,
		CustomerID: customerID,
		PageSize:   1,
	})
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, nil
	}
	return orders[0], nil
}

func (s *orderService) MarkOrderAsPaid(ctx context.Context, o *order.Order, transactionID string) (bool, error) {
	if !o.CanMarkAsPaid() {
		s.Logger.Infow("order cannot be marked as paid, skipping",
			"order_id", o.ID,
			"order_status", o.OrderStatus,
			"payment_status", o.PaymentStatus)
		return false, nil
	}

	o.AuthorizationTransactionID = transactionID
	if err := s.OrderRepo.Update(ctx, o); err != nil {
		return false, err
	}

	o.MarkAsPaid(s.now())
	if err := s.OrderRepo.Update(ctx, o); err != nil {
		return false, err
	}

	s.Logger.Infow("order marked as paid",
		"order_id", o.ID,
		"order_guid", o.GUID,
		"transaction_id", transactionID)
	return true, nil
}
