package service

import (
	"context"
	"strconv"

	"github.com/flexprice/paystack-gateway/internal/api/dto"
	"github.com/flexprice/paystack-gateway/internal/cache"
	"github.com/flexprice/paystack-gateway/internal/domain/settings"
	ierr "github.com/flexprice/paystack-gateway/internal/errors"
	"github.com/flexprice/paystack-gateway/internal/integration/paystack"
	"github.com/flexprice/paystack-gateway/internal/types"
	"github.com/flexprice/paystack-gateway/internal/validator"
)

// SettingsService manages the Paystack settings across store scopes
type SettingsService interface {
	paystack.SettingsLoader
	GetConfiguration(ctx context.Context, scope int64) (*dto.ConfigurationModel, error)
	SaveConfiguration(ctx context.Context, scope int64, req *dto.UpdateConfigurationRequest) error
	// EnsureDefaults writes each key at the shared scope unless it is already set there
	EnsureDefaults(ctx context.Context, defaults paystack.Settings) error
	// DeleteSettings removes every key at every scope
	DeleteSettings(ctx context.Context) error
	ClearCache(ctx context.Context)
}

type settingsService struct {
	ServiceParams
}

func NewSettingsService(params ServiceParams) SettingsService {
	return &settingsService{ServiceParams: params}
}

// LoadSettings resolves each key at the store first, then the shared scope
func (s *settingsService) LoadSettings(ctx context.Context, storeID int64) (*paystack.Settings, error) {
	key := cache.GenerateKey(cache.PrefixSettings, storeID)
	if cached, found := s.Cache.Get(ctx, key); found {
		var result paystack.Settings
		if cache.Decode(cached, &result) {
			return &result, nil
		}
	}

	secret, err := s.resolve(ctx, types.SettingKeyPaystackSecretKey, storeID)
	if err != nil {
		return nil, err
	}
	fee, err := s.resolve(ctx, types.SettingKeyPaystackAdditionalFee, storeID)
	if err != nil {
		return nil, err
	}
	enabled, err := s.resolve(ctx, types.SettingKeyPaystackEnableAdditionalFee, storeID)
	if err != nil {
		return nil, err
	}

	result := paystack.Settings{
		AdditionalFeeEnabled: enabled.BoolValue(),
		AdditionalFee:        fee.DecimalValue(),
	}
	if secret != nil {
		result.SecretKey = secret.Value
	}

	s.Cache.Set(ctx, key, result, s.Config.Cache.TTL)
	return &result, nil
}

// resolve returns nil without error when the key is set at neither scope
func (s *settingsService) resolve(ctx context.Context, key types.SettingKey, storeID int64) (*settings.Setting, error) {
	if storeID > types.DefaultStoreScope {
		setting, err := s.SettingsRepo.Get(ctx, key, storeID)
		if err == nil {
			return setting, nil
		}
		if !ierr.IsNotFound(err) {
			return nil, err
		}
	}

	setting, err := s.SettingsRepo.Get(ctx, key, types.DefaultStoreScope)
	if err != nil {
		if ierr.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return setting, nil
}

func (s *settingsService) GetConfiguration(ctx context.Context, scope int64) (*dto.ConfigurationModel, error) {
	current, err := s.LoadSettings(ctx, scope)
	if err != nil {
		return nil, err
	}

	model := &dto.ConfigurationModel{
		ActiveStoreScope:    scope,
		SecretKey:           current.SecretKey,
		AdditionalFee:       current.AdditionalFee,
		EnableAdditionalFee: current.AdditionalFeeEnabled,
	}

	if scope > types.DefaultStoreScope {
		if model.SecretKeyOverrideForStore, err = s.overridden(ctx, types.SettingKeyPaystackSecretKey, scope); err != nil {
			return nil, err
		}
		if model.AdditionalFeeOverrideForStore, err = s.overridden(ctx, types.SettingKeyPaystackAdditionalFee, scope); err != nil {
			return nil, err
		}
		if model.EnableAdditionalFeeOverrideForStore, err = s.overridden(ctx, types.SettingKeyPaystackEnableAdditionalFee, scope); err != nil {
			return nil, err
		}
	}

	return model, nil
}

func (s *settingsService) overridden(ctx context.Context, key types.SettingKey, scope int64) (bool, error) {
	_, err := s.SettingsRepo.Get(ctx, key, scope)
	if err == nil {
		return true, nil
	}
	if ierr.IsNotFound(err) {
		return false, nil
	}
	return false, err
}

// SaveConfiguration saves each field at the store when its override flag is set and removes
// the store value otherwise. At the shared scope every field is saved.
func (s *settingsService) SaveConfiguration(ctx context.Context, scope int64, req *dto.UpdateConfigurationRequest) error {
	if err := validator.ValidateRequest(req); err != nil {
		return err
	}
	if scope < types.DefaultStoreScope {
		return ierr.NewError("store scope cannot be negative").
			WithHint("Invalid store scope").
			WithReportableDetails(map[string]any{"scope": scope}).
			Mark(ierr.ErrValidation)
	}

	fields := []struct {
		key      types.SettingKey
		value    string
		override bool
	}{
		{types.SettingKeyPaystackSecretKey, req.SecretKey, req.SecretKeyOverrideForStore},
		{types.SettingKeyPaystackAdditionalFee, req.AdditionalFee.String(), req.AdditionalFeeOverrideForStore},
		{types.SettingKeyPaystackEnableAdditionalFee, strconv.FormatBool(req.EnableAdditionalFee), req.EnableAdditionalFeeOverrideForStore},
	}

	for _, f := range fields {
		if f.override || scope == types.DefaultStoreScope {
			if err := s.SettingsRepo.Upsert(ctx, &settings.Setting{Key: f.key, Value: f.value, StoreID: scope}); err != nil {
				return err
			}
			continue
		}
		if err := s.SettingsRepo.Delete(ctx, f.key, scope); err != nil {
			return err
		}
	}

	s.ClearCache(ctx)

	s.Logger.Infow("paystack configuration saved",
		"scope", scope,
		"fee_enabled", req.EnableAdditionalFee)
	return nil
}

func (s *settingsService) EnsureDefaults(ctx context.Context, defaults paystack.Settings) error {
	values := map[types.SettingKey]string{
		types.SettingKeyPaystackSecretKey:           defaults.SecretKey,
		types.SettingKeyPaystackAdditionalFee:       defaults.AdditionalFee.String(),
		types.SettingKeyPaystackEnableAdditionalFee: strconv.FormatBool(defaults.AdditionalFeeEnabled),
	}
	for _, key := range types.PaystackSettingKeys {
		_, err := s.SettingsRepo.Get(ctx, key, types.DefaultStoreScope)
		if err == nil {
			continue
		}
		if !ierr.IsNotFound(err) {
			return err
		}
		setting := &settings.Setting{Key: key, Value: values[key], StoreID: types.DefaultStoreScope}
		if err := s.SettingsRepo.Upsert(ctx, setting); err != nil {
			return err
		}
	}
	s.ClearCache(ctx)
	return nil
}

func (s *settingsService) DeleteSettings(ctx context.Context) error {
	for _, key := range types.PaystackSettingKeys {
		if err := s.SettingsRepo.DeleteAll(ctx, key); err != nil {
			return err
		}
	}
	s.ClearCache(ctx)
	return nil
}

func (s *settingsService) ClearCache(ctx context.Context) {
	s.Cache.DeleteByPrefix(ctx, cache.PrefixSettings)
}
