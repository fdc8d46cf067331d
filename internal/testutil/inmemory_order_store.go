package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/flexprice/paystack-gateway/internal/domain/order"
	ierr "github.com/flexprice/paystack-gateway/internal/errors"
	"github.com/google/uuid"
)

// InMemoryOrderStore implements order.Repository. It stores copies so callers only see
// changes they persisted through Update.
type InMemoryOrderStore struct {
	mu      sync.RWMutex
	orders  map[int64]*order.Order
	nextID  int64
	updates int

	// UpdateErr, when set, is returned by every Update
	UpdateErr error
	// SearchErr, when set, is returned by every Search
	SearchErr error
}

func NewInMemoryOrderStore() *InMemoryOrderStore {
	return &InMemoryOrderStore{
		orders: make(map[int64]*order.Order),
	}
}

func (s *InMemoryOrderStore) Create(_ context.Context, o *order.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if o.GUID == uuid.Nil {
		o.GUID = uuid.New()
	}
	for _, existing := range s.orders {
		if existing.GUID == o.GUID {
			return ierr.NewError("order already exists").
				Mark(ierr.ErrAlreadyExists)
		}
	}
	if o.ID == 0 {
		s.nextID++
		o.ID = s.nextID
	} else if o.ID > s.nextID {
		s.nextID = o.ID
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now().UTC()
	}

	copied := *o
	s.orders[o.ID] = &copied
	return nil
}

func (s *InMemoryOrderStore) Get(_ context.Context, id int64) (*order.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, ierr.NewErrorf("order %d not found", id).
			Mark(ierr.ErrNotFound)
	}
	copied := *o
	return &copied, nil
}

func (s *InMemoryOrderStore) GetByGUID(_ context.Context, guid uuid.UUID) (*order.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, o := range s.orders {
		if o.GUID == guid {
			copied := *o
			return &copied, nil
		}
	}
	return nil, ierr.NewErrorf("order %s not found", guid).
		Mark(ierr.ErrNotFound)
}

func (s *InMemoryOrderStore) Update(_ context.Context, o *order.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.UpdateErr != nil {
		return s.UpdateErr
	}
	if _, ok := s.orders[o.ID]; !ok {
		return ierr.NewErrorf("order %d not found", o.ID).
			Mark(ierr.ErrNotFound)
	}

	copied := *o
	s.orders[o.ID] = &copied
	s.updates++
	return nil
}

func (s *InMemoryOrderStore) Search(_ context.Context, filter order.SearchFilter) ([]*order.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.SearchErr != nil {
		return nil, s.SearchErr
	}

	var result []*order.Order
	for _, o := range s.orders {
		if o.StoreID != filter.StoreID || o.CustomerID != filter.CustomerID {
			continue
		}
		copied := *o
		result = append(result, &copied)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	if filter.PageSize > 0 && len(result) > filter.PageSize {
		result = result[:filter.PageSize]
	}
	return result, nil
}

// UpdateCount is how many updates were persisted
func (s *InMemoryOrderStore) UpdateCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updates
}

// Clear removes all orders
func (s *InMemoryOrderStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = make(map[int64]*order.Order)
	s.nextID = 0
	s.updates = 0
	s.UpdateErr = nil
	s.SearchErr = nil
}
