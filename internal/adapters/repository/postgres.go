package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"github.com/mennyg19-cmyk/JustForToday-sub001/internal/core/domain"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// dateKeyColumn renders a DATE column as a date key.
func dateKeyColumn(col string) string {
	return fmt.Sprintf("to_char(%s, 'YYYY-MM-DD')", col)
}

// dateKeyArray binds a slice of date keys for "= ANY($n::date[])".
func dateKeyArray(keys []string) interface{} {
	if keys == nil {
		keys = []string{}
	}
	return pq.Array(keys)
}

func pgErrorCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// translateWriteError maps constraint violations to domain errors.
func translateWriteError(op string, err error) error {
	switch pgErrorCode(err) {
	case pgUniqueViolation:
		return domain.ErrDuplicateRecord
	case pgForeignKeyViolation:
		return domain.ErrUnknownRecord
	}
	return fmt.Errorf("repository: %s failed: %w", op, err)
}
