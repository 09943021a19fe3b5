package ferrors

import stdErrors "errors"

// ErrNotFound is returned by record-store and reader lookups for a
// well-formed but absent id/uuid/cursor-uuid. It is a sentinel rather
// than a typed error because the only useful thing a caller does with it
// is compare via errors.Is, and because the HTTP layer maps it to 404
// unconditionally.
var ErrNotFound = stdErrors.New("not found")

// ErrSearchTimeout is returned when a search exceeds its deadline.
var ErrSearchTimeout = stdErrors.New("search deadline exceeded")

// IsValidationError reports whether err is (or wraps) a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return stdErrors.As(err, &ve)
}

// IsStorageError reports whether err is (or wraps) a *StorageError.
func IsStorageError(err error) bool {
	var se *StorageError
	return stdErrors.As(err, &se)
}

// AsValidationError extracts a *ValidationError from err's chain.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := stdErrors.As(err, &ve)
	return ve, ok
}

// AsStorageError extracts a *StorageError from err's chain.
func AsStorageError(err error) (*StorageError, bool) {
	var se *StorageError
	ok := stdErrors.As(err, &se)
	return se, ok
}

// GetErrorCode returns the Kind carried by err, falling back to
// KindInternal for errors this package did not produce.
func GetErrorCode(err error) Kind {
	if ve, ok := AsValidationError(err); ok {
		return ve.Code()
	}
	if se, ok := AsStorageError(err); ok {
		return se.Code()
	}
	if stdErrors.Is(err, ErrNotFound) {
		return KindInternal
	}
	if stdErrors.Is(err, ErrSearchTimeout) {
		return KindSearchTimeout
	}
	return KindInternal
}

// GetErrorDetails returns the structured details carried by err, or an
// empty map if err carries none.
func GetErrorDetails(err error) map[string]any {
	if ve, ok := AsValidationError(err); ok && ve.Details() != nil {
		return ve.Details()
	}
	if se, ok := AsStorageError(err); ok && se.Details() != nil {
		return se.Details()
	}
	return map[string]any{}
}
