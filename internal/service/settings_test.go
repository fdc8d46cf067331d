package service

import (
	"testing"

	"github.com/flexprice/paystack-gateway/internal/api/dto"
	"github.com/flexprice/paystack-gateway/internal/domain/settings"
	ierr "github.com/flexprice/paystack-gateway/internal/errors"
	"github.com/flexprice/paystack-gateway/internal/integration/paystack"
	"github.com/flexprice/paystack-gateway/internal/testutil"
	"github.com/flexprice/paystack-gateway/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type SettingsServiceSuite struct {
	testutil.BaseServiceTestSuite
	service SettingsService
}

func TestSettingsService(t *testing.T) {
	suite.Run(t, new(SettingsServiceSuite))
}

func (s *SettingsServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewSettingsService(newTestServiceParams(&s.BaseServiceTestSuite))
}

func (s *SettingsServiceSuite) put(key types.SettingKey, value string, storeID int64) {
	s.Require().NoError(s.GetStores().SettingsRepo.Upsert(s.GetContext(), &settings.Setting{
		Key:     key,
		Value:   value,
		StoreID: storeID,
	}))
}

func (s *SettingsServiceSuite) TestLoadSettingsEmpty() {
	got, err := s.service.LoadSettings(s.GetContext(), testutil.DefaultStoreID)
	s.NoError(err)
	s.Equal("", got.SecretKey)
	s.False(got.AdditionalFeeEnabled)
	s.True(got.AdditionalFee.IsZero())
}

func (s *SettingsServiceSuite) TestLoadSettingsFallsBackToSharedScope() {
	s.put(types.SettingKeyPaystackSecretKey, "sk_shared", types.DefaultStoreScope)
	s.put(types.SettingKeyPaystackAdditionalFee, "1.5", types.DefaultStoreScope)
	s.put(types.SettingKeyPaystackEnableAdditionalFee, "true", types.DefaultStoreScope)
	s.put(types.SettingKeyPaystackSecretKey, "sk_store", testutil.DefaultStoreID)

	got, err := s.service.LoadSettings(s.GetContext(), testutil.DefaultStoreID)
	s.NoError(err)
	s.Equal("sk_store", got.SecretKey)
	s.True(got.AdditionalFeeEnabled)
	s.True(decimal.RequireFromString("1.5").Equal(got.AdditionalFee))

	shared, err := s.service.LoadSettings(s.GetContext(), types.DefaultStoreScope)
	s.NoError(err)
	s.Equal("sk_shared", shared.SecretKey)
}

func (s *SettingsServiceSuite) TestLoadSettingsIsCached() {
	s.put(types.SettingKeyPaystackSecretKey, "sk_shared", types.DefaultStoreScope)

	_, err := s.service.LoadSettings(s.GetContext(), testutil.DefaultStoreID)
	s.NoError(err)
	lookups := s.GetStores().SettingsRepo.GetCount()

	got, err := s.service.LoadSettings(s.GetContext(), testutil.DefaultStoreID)
	s.NoError(err)
	s.Equal("sk_shared", got.SecretKey)
	s.Equal(lookups, s.GetStores().SettingsRepo.GetCount())
}

func (s *SettingsServiceSuite) TestSaveConfigurationSharedScope() {
	err := s.service.SaveConfiguration(s.GetContext(), types.DefaultStoreScope, &dto.UpdateConfigurationRequest{
		SecretKey:           "sk_live_1",
		AdditionalFee:       decimal.RequireFromString("1.5"),
		EnableAdditionalFee: true,
	})
	s.NoError(err)
	s.Equal(3, s.GetStores().SettingsRepo.Len())

	model, err := s.service.GetConfiguration(s.GetContext(), types.DefaultStoreScope)
	s.NoError(err)
	s.Equal("sk_live_1", model.SecretKey)
	s.True(model.EnableAdditionalFee)
	s.False(model.SecretKeyOverrideForStore)
}

func (s *SettingsServiceSuite) TestSaveConfigurationStoreOverrides() {
	s.put(types.SettingKeyPaystackSecretKey, "sk_shared", types.DefaultStoreScope)
	s.put(types.SettingKeyPaystackAdditionalFee, "0.5", testutil.DefaultStoreID)

	// warm the cache so the save has something to clear
	_, err := s.service.LoadSettings(s.GetContext(), testutil.DefaultStoreID)
	s.NoError(err)

	err = s.service.SaveConfiguration(s.GetContext(), testutil.DefaultStoreID, &dto.UpdateConfigurationRequest{
		SecretKey:                 "sk_store",
		SecretKeyOverrideForStore: true,
		AdditionalFee:             decimal.RequireFromString("2"),
	})
	s.NoError(err)

	_, err = s.GetStores().SettingsRepo.Get(s.GetContext(), types.SettingKeyPaystackAdditionalFee, testutil.DefaultStoreID)
	s.True(ierr.IsNotFound(err))

	model, err := s.service.GetConfiguration(s.GetContext(), testutil.DefaultStoreID)
	s.NoError(err)
	s.Equal(testutil.DefaultStoreID, model.ActiveStoreScope)
	s.Equal("sk_store", model.SecretKey)
	s.True(model.SecretKeyOverrideForStore)
	s.False(model.AdditionalFeeOverrideForStore)
	s.False(model.EnableAdditionalFeeOverrideForStore)

	shared, err := s.service.LoadSettings(s.GetContext(), types.DefaultStoreScope)
	s.NoError(err)
	s.Equal("sk_shared", shared.SecretKey)
}

func (s *SettingsServiceSuite) TestSaveConfigurationValidation() {
	err := s.service.SaveConfiguration(s.GetContext(), types.DefaultStoreScope, &dto.UpdateConfigurationRequest{
		AdditionalFee: decimal.RequireFromString("-1"),
	})
	s.True(ierr.IsValidation(err))

	err = s.service.SaveConfiguration(s.GetContext(), -1, &dto.UpdateConfigurationRequest{})
	s.True(ierr.IsValidation(err))
	s.Equal(0, s.GetStores().SettingsRepo.Len())
}

func (s *SettingsServiceSuite) TestEnsureDefaultsKeepsExistingValues() {
	s.put(types.SettingKeyPaystackSecretKey, "sk_live_1", types.DefaultStoreScope)

	err := s.service.EnsureDefaults(s.GetContext(), paystack.Settings{AdditionalFee: decimal.Zero})
	s.NoError(err)
	s.Equal(3, s.GetStores().SettingsRepo.Len())

	got, err := s.service.LoadSettings(s.GetContext(), types.DefaultStoreScope)
	s.NoError(err)
	s.Equal("sk_live_1", got.SecretKey)
}

func (s *SettingsServiceSuite) TestDeleteSettings() {
	s.put(types.SettingKeyPaystackSecretKey, "sk_shared", types.DefaultStoreScope)
	s.put(types.SettingKeyPaystackSecretKey, "sk_store", testutil.DefaultStoreID)
	_, err := s.service.LoadSettings(s.GetContext(), testutil.DefaultStoreID)
	s.NoError(err)

	s.NoError(s.service.DeleteSettings(s.GetContext()))
	s.Equal(0, s.GetStores().SettingsRepo.Len())

	got, err := s.service.LoadSettings(s.GetContext(), testutil.DefaultStoreID)
	s.NoError(err)
	s.Empty(got.SecretKey)
}
