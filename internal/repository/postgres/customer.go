package postgres

import (
	"context"

	"github.com/flexprice/paystack-gateway/internal/domain/customer"
	ierr "github.com/flexprice/paystack-gateway/internal/errors"
	"github.com/flexprice/paystack-gateway/internal/logger"
	"github.com/flexprice/paystack-gateway/internal/postgres"
)

type customerRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewCustomerRepository(db *postgres.DB, logger *logger.Logger) customer.Repository {
	return &customerRepository{db: db, logger: logger}
}

func (r *customerRepository) Create(ctx context.Context, c *customer.Customer) error {
	query := `INSERT INTO customers (email, username, shipping_address_id) VALUES ($1, $2, $3) RETURNING id`

	r.logger.Debugw("creating customer", "username", c.Username)

	if err := r.db.GetQuerier(ctx).GetContext(ctx, &c.ID, query, c.Email, c.Username, c.ShippingAddressID); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create customer").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *customerRepository) CreateAddress(ctx context.Context, a *customer.Address) error {
	query := `INSERT INTO addresses (first_name, last_name, email) VALUES ($1, $2, $3) RETURNING id`

	if err := r.db.GetQuerier(ctx).GetContext(ctx, &a.ID, query, a.FirstName, a.LastName, a.Email); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create address").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *customerRepository) Get(ctx context.Context, id int64) (*customer.Customer, error) {
	var c customer.Customer
	query := `SELECT id, email, username, shipping_address_id FROM customers WHERE id = $1`
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &c, query, id); err != nil {
		if isNoRows(err) {
			return nil, ierr.WithError(err).
				WithHintf("Customer %d was not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get customer").
			Mark(ierr.ErrDatabase)
	}
	return &c, nil
}

func (r *customerRepository) GetShippingAddress(ctx context.Context, c *customer.Customer) (*customer.Address, error) {
	if c == nil || c.ShippingAddressID == nil {
		return nil, nil
	}

	var a customer.Address
	query := `SELECT id, first_name, last_name, email FROM addresses WHERE id = $1`
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &a, query, *c.ShippingAddressID); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get shipping address").
			Mark(ierr.ErrDatabase)
	}
	return &a, nil
}
