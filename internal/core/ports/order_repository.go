// Package ports defines the contracts between the order engine and its
// infrastructure: storage for orders, cars and clients, the transaction
// boundary, and the postal code lookup.
package ports

import (
	"context"

	"rental/internal/core/domain/model/kernel"
	"rental/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Lookups that find nothing return an errs.ObjectNotFoundError.
type OrderRepository interface {
	// Add persists a new order. A storage uniqueness conflict on the car or
	// client is reported as errs.IneligibleError.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order.
	Update(ctx context.Context, aggregate *order.Order) error

	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate loads the order and locks its row until the transaction ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// FindOpenOrApprovedByCarID returns the order currently holding the car.
	FindOpenOrApprovedByCarID(ctx context.Context, carID int64) (*order.Order, error)

	// FindOpenByClientID returns the client's open order.
	FindOpenByClientID(ctx context.Context, clientID int64) (*order.Order, error)

	// FindOpenOrApprovedByClientID returns the client's open or approved order.
	FindOpenOrApprovedByClientID(ctx context.Context, clientID int64) (*order.Order, error)
}
