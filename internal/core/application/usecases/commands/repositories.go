// Package commands contains the operations that change rental orders.
// Each command is validated when constructed; its handler runs the whole
// operation in one unit of work and rolls back on any failure.
package commands

import (
	"context"
	"time"

	"rental/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	CarRepoFactory interface {
		CarRepository() ports.CarRepository
	}

	ClientRepoFactory interface {
		ClientRepository() ports.ClientRepository
	}

	// RentalUoW spans everything an order command reads or writes: the order
	// itself and the eligibility of its client and car.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   orders := uow.OrderRepository()
	//   cars := uow.CarRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	RentalUoW interface {
		TxManager
		OrderRepoFactory
		CarRepoFactory
		ClientRepoFactory
	}

	// RentalUoWFactory creates new unit of work instances.
	RentalUoWFactory interface {
		Create() RentalUoW
	}
)

// Clock returns the current time. Handlers read it once per command.
type Clock func() time.Time
