package testutil

import (
	"context"
	"sync"

	"github.com/flexprice/paystack-gateway/internal/domain/customer"
	ierr "github.com/flexprice/paystack-gateway/internal/errors"
)

// InMemoryCustomerStore implements customer.Repository
type InMemoryCustomerStore struct {
	mu        sync.RWMutex
	customers map[int64]*customer.Customer
	addresses map[int64]*customer.Address
	nextID    int64
}

func NewInMemoryCustomerStore() *InMemoryCustomerStore {
	return &InMemoryCustomerStore{
		customers: make(map[int64]*customer.Customer),
		addresses: make(map[int64]*customer.Address),
	}
}

func (s *InMemoryCustomerStore) Create(_ context.Context, c *customer.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.ID == 0 {
		s.nextID++
		c.ID = s.nextID
	}
	copied := *c
	s.customers[c.ID] = &copied
	return nil
}

func (s *InMemoryCustomerStore) CreateAddress(_ context.Context, a *customer.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a.ID == 0 {
		s.nextID++
		a.ID = s.nextID
	}
	copied := *a
	s.addresses[a.ID] = &copied
	return nil
}

func (s *InMemoryCustomerStore) Get(_ context.Context, id int64) (*customer.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.customers[id]
	if !ok {
		return nil, ierr.NewErrorf("customer %d not found", id).
			Mark(ierr.ErrNotFound)
	}
	copied := *c
	return &copied, nil
}

func (s *InMemoryCustomerStore) GetShippingAddress(_ context.Context, c *customer.Customer) (*customer.Address, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if c == nil || c.ShippingAddressID == nil {
		return nil, nil
	}
	a, ok := s.addresses[*c.ShippingAddressID]
	if !ok {
		return nil, nil
	}
	copied := *a
	return &copied, nil
}

// Clear removes all customers and addresses
func (s *InMemoryCustomerStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers = make(map[int64]*customer.Customer)
	s.addresses = make(map[int64]*customer.Address)
	s.nextID = 0
}
