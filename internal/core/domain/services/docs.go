// Package services provides domain services of the rental order engine that
// span more than one aggregate.
//
// The package includes:
//   - EligibilityChecker: decides whether a client and a car may join a new order
//
// Pure fee arithmetic lives in the pricing subpackage.
package services
