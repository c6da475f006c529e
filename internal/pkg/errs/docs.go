// Package errs provides standardized error types for the back-office service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ObjectNotFoundError: For when an object cannot be found
//   - InvalidAmountError: For monetary input that is not a positive whole amount
//   - InvalidParameterError: For pricing fields outside their allowed range
//   - InvalidTransitionError: For forbidden agent or order status changes
//   - ObjectHasDependentsError: For deletions refused because of referencing records
//   - TransientFailureError: For a storage backend that is temporarily unavailable
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// KindOf maps any error onto the taxonomy reported to API clients.
package errs
