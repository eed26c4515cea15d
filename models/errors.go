package models

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrValidation          = errors.New("invalid input")
	ErrInvalidQuantity     = errors.New("quantity must be between 1 and 10000")
	ErrEmptyCart           = errors.New("cart is empty")
	ErrProductUnavailable  = errors.New("product is not available")
	ErrCartChanged         = errors.New("cart was modified by another request, try again")
	ErrOrderNotCancellable = errors.New("order is already cancelled")
	ErrProductInUse        = errors.New("product is referenced by existing orders")
)

// isSerializationFailure reports whether err is a transaction conflict raised by the
// database under repeatable read / serializable isolation.
func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// serialization_failure, deadlock_detected
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		// ER_LOCK_DEADLOCK, ER_LOCK_WAIT_TIMEOUT
		return myErr.Number == 1213 || myErr.Number == 1205
	}
	return false
}
