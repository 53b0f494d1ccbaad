// Package errs provides standardized error types for the rental order service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes value errors used by constructors and value objects:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ValueIsOutOfRangeError: For when a value is outside its allowed bounds
//   - ObjectNotFoundError: For when an object cannot be found
//
// And the order engine taxonomy reported to API clients:
//   - IneligibleError: a client or car may not take part in a new order
//   - IllegalTransitionError: a status change outside the lifecycle graph
//   - InvalidPricingInputError: a fee input that is not a finite non-negative number
//   - AddressResolutionError: a postal code that could not be resolved
//   - ValidationError: a list of malformed request fields
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// Anything that does not unwrap to one of the sentinels is an internal failure.
package errs
