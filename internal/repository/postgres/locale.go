package postgres

import (
	"context"

	"github.com/flexprice/paystack-gateway/internal/domain/locale"
	ierr "github.com/flexprice/paystack-gateway/internal/errors"
	"github.com/flexprice/paystack-gateway/internal/logger"
	"github.com/flexprice/paystack-gateway/internal/postgres"
)

type localeRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewLocaleRepository(db *postgres.DB, logger *logger.Logger) locale.Repository {
	return &localeRepository{db: db, logger: logger}
}

func (r *localeRepository) AddOrUpdate(ctx context.Context, res *locale.Resource) error {
	query := `
		INSERT INTO locale_string_resources (language_id, resource_name, resource_value)
		VALUES ($1, $2, $3)
		ON CONFLICT (language_id, resource_name) DO UPDATE SET resource_value = EXCLUDED.resource_value
		RETURNING id`

	if err := r.db.GetQuerier(ctx).GetContext(ctx, &res.ID, query, res.LanguageID, res.Name, res.Value); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to save locale resource").
			WithReportableDetails(map[string]any{"name": res.Name}).
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *localeRepository) Get(ctx context.Context, languageID int64, name string) (*locale.Resource, error) {
	var res locale.Resource
	query := `SELECT id, language_id, resource_name, resource_value FROM locale_string_resources
		WHERE language_id = $1 AND resource_name = $2`
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &res, query, languageID, name); err != nil {
		if isNoRows(err) {
			return nil, ierr.WithError(err).
				WithHintf("Locale resource %s was not found", name).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get locale resource").
			Mark(ierr.ErrDatabase)
	}
	return &res, nil
}

func (r *localeRepository) Delete(ctx context.Context, languageID int64, name string) error {
	query := `DELETE FROM locale_string_resources WHERE language_id = $1 AND resource_name = $2`
	if _, err := r.db.GetQuerier(ctx).ExecContext(ctx, query, languageID, name); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete locale resource").
			Mark(ierr.ErrDatabase)
	}
	return nil
}
