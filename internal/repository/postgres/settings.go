package postgres

import (
	"context"
	"time"

	domainSettings "github.com/flexprice/paystack-gateway/internal/domain/settings"
	ierr "github.com/flexprice/paystack-gateway/internal/errors"
	"github.com/flexprice/paystack-gateway/internal/logger"
	"github.com/flexprice/paystack-gateway/internal/postgres"
	"github.com/flexprice/paystack-gateway/internal/types"
)

type settingsRepository struct {
	db  *postgres.DB
	log *logger.Logger
}

func NewSettingsRepository(db *postgres.DB, log *logger.Logger) domainSettings.Repository {
	return &settingsRepository{db: db, log: log}
}

func (r *settingsRepository) Get(ctx context.Context, key types.SettingKey, storeID int64) (*domainSettings.Setting, error) {
	var s domainSettings.Setting
	query := `SELECT id, name, value, store_id, updated_at FROM settings WHERE name = $1 AND store_id = $2`
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &s, query, key, storeID); err != nil {
		if isNoRows(err) {
			return nil, ierr.WithError(err).
				WithHintf("Setting %s was not found", key).
				WithReportableDetails(map[string]any{
					"key":      key,
					"store_id": storeID,
				}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get setting").
			Mark(ierr.ErrDatabase)
	}
	return &s, nil
}

func (r *settingsRepository) Upsert(ctx context.Context, s *domainSettings.Setting) error {
	if err := s.Validate(); err != nil {
		return err
	}
	s.UpdatedAt = time.Now().UTC()

	r.log.Debugw("saving setting", "key", s.Key, "store_id", s.StoreID)

	query := `
		INSERT INTO settings (name, value, store_id, updated_at)
		VALUES (:name, :value, :store_id, :updated_at)
		ON CONFLICT (name, store_id) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at`

	if _, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, s); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to save setting").
			WithReportableDetails(map[string]any{"key": s.Key}).
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *settingsRepository) Delete(ctx context.Context, key types.SettingKey, storeID int64) error {
	query := `DELETE FROM settings WHERE name = $1 AND store_id = $2`
	if _, err := r.db.GetQuerier(ctx).ExecContext(ctx, query, key, storeID); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete setting").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *settingsRepository) DeleteAll(ctx context.Context, key types.SettingKey) error {
	query := `DELETE FROM settings WHERE name = $1`
	if _, err := r.db.GetQuerier(ctx).ExecContext(ctx, query, key); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete setting").
			Mark(ierr.ErrDatabase)
	}
	return nil
}
