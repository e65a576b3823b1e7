// Package errs provides standardized error types for the marketplace core.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the application.
//
// The package covers the error taxonomy of the core:
//   - ValueIsRequiredError / ValueIsInvalidError / ValueIsOutOfRangeError: validation failures
//   - ObjectNotFoundError: a referenced order, settlement, or rider does not exist
//   - NotPermittedError: the acting role may not perform the operation
//   - StateConflictError: invalid transition, lost assignment race, repeated payout
//   - TransientError: storage/dependency timeout, safe for the caller to retry
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrStateConflict)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is classifies against the sentinel
//
// Transport adapters map the sentinels to status codes; handlers never match
// on message text.
package errs
