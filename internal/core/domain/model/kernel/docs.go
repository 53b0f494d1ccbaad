// Package kernel holds the value objects shared by the rental domain model.
//
// The package includes:
//   - UUID: identifier of aggregates owned by this service (orders)
//   - PostalCode and Address: a Brazilian CEP and the location data resolved from it
//   - Activity: the soft-delete lifecycle of externally owned records (Active or Inactive since a moment)
//
// Values are immutable and their zero values are invalid.
package kernel
