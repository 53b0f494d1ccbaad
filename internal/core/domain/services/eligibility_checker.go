package services

import (
	"context"
	"errors"

	"rental/internal/core/domain/model/car"
	"rental/internal/core/ports"
	"rental/internal/pkg/errs"
)

const (
	ReasonClientNotFound    = "Client not found."
	ReasonClientInactive    = "Client is not active."
	ReasonClientHasOrder    = "Client already has an open order."
	ReasonCarNotFound       = "Car not found."
	ReasonCarInactive       = "Car is not active."
	ReasonCarAlreadyInOrder = "Car is already in an open or approved order."
)

// ClientRule selects which order statuses keep a client from opening another order.
type ClientRule int

const (
	// ClientRuleOpenOrApproved blocks a client holding an open or approved order.
	ClientRuleOpenOrApproved ClientRule = iota

	// ClientRuleOpenOnly blocks a client only while an order is open. Kept for
	// compatibility with the legacy back office.
	ClientRuleOpenOnly
)

// EligibilityChecker decides whether a client and a car may enter a new order.
// It only reads; run it inside the transaction that will write the order.
//
// Example:
//
//	checker := services.NewEligibilityChecker(uow.CarRepository(), uow.ClientRepository(), uow.OrderRepository(), rule)
//	if err := checker.CheckClient(ctx, clientID); err != nil {
//	    return err
//	}
//	c, err := checker.CheckCar(ctx, carID)
type EligibilityChecker struct {
	cars       ports.CarRepository
	clients    ports.ClientRepository
	orders     ports.OrderRepository
	clientRule ClientRule
}

func NewEligibilityChecker(
	cars ports.CarRepository,
	clients ports.ClientRepository,
	orders ports.OrderRepository,
	clientRule ClientRule,
) *EligibilityChecker {
	return &EligibilityChecker{
		cars:       cars,
		clients:    clients,
		orders:     orders,
		clientRule: clientRule,
	}
}

// CheckClient fails with errs.IneligibleError when the client does not exist,
// is inactive, or already holds a blocking order. The client row stays locked
// until the transaction ends, so a concurrent check for the same client waits
// and then sees the order this one writes.
func (c *EligibilityChecker) CheckClient(ctx context.Context, clientID int64) error {
	cl, err := c.clients.GetForUpdate(ctx, clientID)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return errs.NewIneligibleError("client", clientID, ReasonClientNotFound)
		}
		return err
	}
	if !cl.IsActive() {
		return errs.NewIneligibleError("client", clientID, ReasonClientInactive)
	}

	find := c.orders.FindOpenOrApprovedByClientID
	if c.clientRule == ClientRuleOpenOnly {
		find = c.orders.FindOpenByClientID
	}
	if _, err = find(ctx, clientID); err == nil {
		return errs.NewIneligibleError("client", clientID, ReasonClientHasOrder)
	} else if !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	return nil
}

// CheckCar fails with errs.IneligibleError when the car does not exist, is
// inactive, or is held by an open or approved order. The eligible car is
// returned so its daily price can be copied into the order.
func (c *EligibilityChecker) CheckCar(ctx context.Context, carID int64) (car.Car, error) {
	cr, err := c.cars.Get(ctx, carID)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return car.Car{}, errs.NewIneligibleError("car", carID, ReasonCarNotFound)
		}
		return car.Car{}, err
	}
	if !cr.IsActive() {
		return car.Car{}, errs.NewIneligibleError("car", carID, ReasonCarInactive)
	}

	if _, err = c.orders.FindOpenOrApprovedByCarID(ctx, carID); err == nil {
		return car.Car{}, errs.NewIneligibleError("car", carID, ReasonCarAlreadyInOrder)
	} else if !errors.Is(err, errs.ErrObjectNotFound) {
		return car.Car{}, err
	}

	return cr, nil
}
