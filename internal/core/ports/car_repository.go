package ports

import (
	"context"

	"rental/internal/core/domain/model/car"
)

// CarRepository reads cars owned by the fleet registry.
type CarRepository interface {
	// Get returns the car, active or not, or an errs.ObjectNotFoundError.
	Get(ctx context.Context, id int64) (car.Car, error)
}
