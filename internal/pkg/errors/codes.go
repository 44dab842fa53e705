package errors

import "net/http"

var (
	// ErrDatabaseConnection is fatal for the current view.
	ErrDatabaseConnection = New(
		"CONNECTION_ERROR",
		"Database connection failed",
		http.StatusServiceUnavailable,
	)

	ErrSchemaMismatch = New(
		"SCHEMA_MISMATCH",
		"Table busdetails does not match the expected schema",
		http.StatusServiceUnavailable,
	)

	// ErrQueryFailed is recoverable: callers degrade to empty results.
	ErrQueryFailed = New(
		"QUERY_ERROR",
		"Database query failed",
		http.StatusInternalServerError,
	)

	ErrInvalidColumn = New(
		"INVALID_COLUMN",
		"Column is not available for lookups",
		http.StatusInternalServerError,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)

// IsFatal reports whether err must halt the current view.
func IsFatal(err error) bool {
	return Is(err, ErrDatabaseConnection) || Is(err, ErrSchemaMismatch)
}
