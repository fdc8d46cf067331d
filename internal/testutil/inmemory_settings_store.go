package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/flexprice/paystack-gateway/internal/domain/settings"
	ierr "github.com/flexprice/paystack-gateway/internal/errors"
	"github.com/flexprice/paystack-gateway/internal/types"
)

// InMemorySettingsStore implements settings.Repository
type InMemorySettingsStore struct {
	mu       sync.RWMutex
	settings map[string]*settings.Setting
	nextID   int64
	gets     int
}

func NewInMemorySettingsStore() *InMemorySettingsStore {
	return &InMemorySettingsStore{
		settings: make(map[string]*settings.Setting),
	}
}

func settingKey(key types.SettingKey, storeID int64) string {
	return fmt.Sprintf("%s/%d", key, storeID)
}

func (s *InMemorySettingsStore) Get(_ context.Context, key types.SettingKey, storeID int64) (*settings.Setting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gets++

	setting, ok := s.settings[settingKey(key, storeID)]
	if !ok {
		return nil, ierr.NewErrorf("setting %s not found", key).
			Mark(ierr.ErrNotFound)
	}
	copied := *setting
	return &copied, nil
}

func (s *InMemorySettingsStore) Upsert(_ context.Context, setting *settings.Setting) error {
	if err := setting.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	k := settingKey(setting.Key, setting.StoreID)
	if existing, ok := s.settings[k]; ok {
		setting.ID = existing.ID
	} else {
		s.nextID++
		setting.ID = s.nextID
	}
	setting.UpdatedAt = time.Now().UTC()

	copied := *setting
	s.settings[k] = &copied
	return nil
}

func (s *InMemorySettingsStore) Delete(_ context.Context, key types.SettingKey, storeID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.settings, settingKey(key, storeID))
	return nil
}

func (s *InMemorySettingsStore) DeleteAll(_ context.Context, key types.SettingKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, setting := range s.settings {
		if setting.Key == key {
			delete(s.settings, k)
		}
	}
	return nil
}

// Len is the number of stored values across all scopes
func (s *InMemorySettingsStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.settings)
}

// GetCount is how many lookups reached the store
func (s *InMemorySettingsStore) GetCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gets
}

// Clear removes all settings
func (s *InMemorySettingsStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = make(map[string]*settings.Setting)
	s.nextID = 0
	s.gets = 0
}
