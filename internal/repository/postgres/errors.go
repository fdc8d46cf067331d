package postgres

import (
	"database/sql"

	"github.com/cockroachdb/errors"
	"github.com/lib/pq"
)

// pqUniqueViolation is the postgres SQLSTATE for a unique constraint failure
const pqUniqueViolation = "23505"

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pqUniqueViolation
	}
	return false
}
