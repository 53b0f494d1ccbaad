// Package order implements the rental Order aggregate and its lifecycle.
//
// The package includes:
//   - Order: the aggregate root holding the rental window, the resolved address and the pricing snapshot
//   - Status: the state machine open -> approved -> closed, or open -> cancelled
//   - ValidateWindow and ValidateNotInPast: the date guards applied to requests
//
// Every change that touches a pricing input (dates, car, postal code) reprices
// the order. Closing after the end date charges a late fee.
package order
