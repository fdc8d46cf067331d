package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/flexprice/paystack-gateway/internal/domain/locale"
	ierr "github.com/flexprice/paystack-gateway/internal/errors"
)

// InMemoryLocaleStore implements locale.Repository
type InMemoryLocaleStore struct {
	mu        sync.RWMutex
	resources map[string]*locale.Resource
	nextID    int64
}

func NewInMemoryLocaleStore() *InMemoryLocaleStore {
	return &InMemoryLocaleStore{
		resources: make(map[string]*locale.Resource),
	}
}

func resourceKey(languageID int64, name string) string {
	return fmt.Sprintf("%d/%s", languageID, name)
}

func (s *InMemoryLocaleStore) AddOrUpdate(_ context.Context, r *locale.Resource) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := resourceKey(r.LanguageID, r.Name)
	if existing, ok := s.resources[k]; ok {
		r.ID = existing.ID
	} else {
		s.nextID++
		r.ID = s.nextID
	}
	copied := *r
	s.resources[k] = &copied
	return nil
}

func (s *InMemoryLocaleStore) Get(_ context.Context, languageID int64, name string) (*locale.Resource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.resources[resourceKey(languageID, name)]
	if !ok {
		return nil, ierr.NewErrorf("locale resource %s not found", name).
			Mark(ierr.ErrNotFound)
	}
	copied := *r
	return &copied, nil
}

func (s *InMemoryLocaleStore) Delete(_ context.Context, languageID int64, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.resources, resourceKey(languageID, name))
	return nil
}

// Len is the number of stored resources
func (s *InMemoryLocaleStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.resources)
}

// Clear removes all resources
func (s *InMemoryLocaleStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resources = make(map[string]*locale.Resource)
	s.nextID = 0
}
