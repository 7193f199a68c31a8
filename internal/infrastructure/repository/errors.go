package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	domain "github.com/mohammadpnp/person-service/internal/domain/person"
)

const (
	uniqueViolationCode      = "23505"
	serializationFailureCode = "40001"
)

func isUniqueNationalIDViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) &&
		pgErr.Code == uniqueViolationCode &&
		pgErr.ConstraintName == domain.UniqueNationalIDConstraint
}

func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == serializationFailureCode
}
