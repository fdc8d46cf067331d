package postgres

import (
	"context"
	"time"

	"github.com/flexprice/paystack-gateway/internal/domain/order"
	ierr "github.com/flexprice/paystack-gateway/internal/errors"
	"github.com/flexprice/paystack-gateway/internal/logger"
	"github.com/flexprice/paystack-gateway/internal/postgres"
	"github.com/google/uuid"
)

type orderRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewOrderRepository(db *postgres.DB, logger *logger.Logger) order.Repository {
	return &orderRepository{db: db, logger: logger}
}

const orderColumns = `id, order_guid, custom_order_number, store_id, customer_id, order_total,
	order_status, payment_status, authorization_transaction_id, paid_at, created_at, updated_at`

func (r *orderRepository) Create(ctx context.Context, o *order.Order) error {
	if o.GUID == uuid.Nil {
		o.GUID = uuid.New()
	}
	now := time.Now().UTC()
	if o.CreatedAt.IsZero() {
		o.CreatedAt = now
	}
	o.UpdatedAt = now

	r.logger.Debugw("creating order",
		"order_guid", o.GUID,
		"store_id", o.StoreID,
		"customer_id", o.CustomerID,
	)

	query := `
		INSERT INTO orders (
			order_guid, custom_order_number, store_id, customer_id, order_total, order_status,
			payment_status, authorization_transaction_id, paid_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`

	err := r.db.GetQuerier(ctx).GetContext(ctx, &o.ID, query,
		o.GUID, o.CustomOrderNumber, o.StoreID, o.CustomerID, o.Total, o.OrderStatus,
		o.PaymentStatus, o.AuthorizationTransactionID, o.PaidAt, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ierr.WithError(err).
				WithHint("An order with this guid already exists").
				WithReportableDetails(map[string]any{"order_guid": o.GUID}).
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to create order").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *orderRepository) Get(ctx context.Context, id int64) (*order.Order, error) {
	var o order.Order
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &o, query, id); err != nil {
		if isNoRows(err) {
			return nil, ierr.WithError(err).
				WithHintf("Order %d was not found", id).
				WithReportableDetails(map[string]any{"order_id": id}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get order").
			Mark(ierr.ErrDatabase)
	}
	return &o, nil
}

func (r *orderRepository) GetByGUID(ctx context.Context, guid uuid.UUID) (*order.Order, error) {
	var o order.Order
	query := `SELECT ` + orderColumns + ` FROM orders WHERE order_guid = $1`
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &o, query, guid); err != nil {
		if isNoRows(err) {
			return nil, ierr.WithError(err).
				WithHint("Order was not found").
				WithReportableDetails(map[string]any{"order_guid": guid}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get order").
			Mark(ierr.ErrDatabase)
	}
	return &o, nil
}

func (r *orderRepository) Update(ctx context.Context, o *order.Order) error {
	o.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE orders SET
			order_status = :order_status,
			payment_status = :payment_status,
			authorization_transaction_id = :authorization_transaction_id,
			paid_at = :paid_at,
			updated_at = :updated_at
		WHERE id = :id`

	res, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, o)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update order").
			Mark(ierr.ErrDatabase)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ierr.NewErrorf("order %d not found", o.ID).
			WithHintf("Order %d was not found", o.ID).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *orderRepository) Search(ctx context.Context, filter order.SearchFilter) ([]*order.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders
		WHERE store_id = $1 AND customer_id = $2
		ORDER BY created_at DESC, id DESC`
	args := []interface{}{filter.StoreID, filter.CustomerID}
	if filter.PageSize > 0 {
		query += ` LIMIT $3`
		args = append(args, filter.PageSize)
	}

	var orders []*order.Order
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &orders, query, args...); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to search orders").
			Mark(ierr.ErrDatabase)
	}
	return orders, nil
}
