package commands

import (
	"errors"
	"fmt"
	"time"

	"rental/internal/core/domain/model/kernel"
	"rental/internal/core/domain/model/order"
	"rental/internal/pkg/errs"
	"rental/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
)

// CreateOrderCommand requests a new rental of a car by a client.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID, 1, 1, start, start.AddDate(0, 0, 2), "01310-930")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	clientID   int64
	carID      int64
	startDate  time.Time
	endDate    time.Time
	postalCode kernel.PostalCode

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the shape of a creation request. Checks that
// depend on the current time or on stored state happen in the handler.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	clientID, carID int64,
	startDate, endDate time.Time,
	postalCode string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setClientID(clientID),
		cmd.setCarID(carID),
		cmd.setWindow(startDate, endDate),
		cmd.setPostalCode(postalCode),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID          { return c.orderID }
func (c CreateOrderCommand) ClientID() int64               { return c.clientID }
func (c CreateOrderCommand) CarID() int64                  { return c.carID }
func (c CreateOrderCommand) StartDate() time.Time          { return c.startDate }
func (c CreateOrderCommand) EndDate() time.Time            { return c.endDate }
func (c CreateOrderCommand) PostalCode() kernel.PostalCode { return c.postalCode }

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setClientID(clientID int64) error {
	if clientID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("clientId", fmt.Errorf("%d is not positive", clientID))
	}
	c.clientID = clientID
	return nil
}

func (c *CreateOrderCommand) setCarID(carID int64) error {
	if carID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("carId", fmt.Errorf("%d is not positive", carID))
	}
	c.carID = carID
	return nil
}

func (c *CreateOrderCommand) setWindow(startDate, endDate time.Time) error {
	if err := order.ValidateWindow(startDate, endDate); err != nil {
		return err
	}
	c.startDate = startDate
	c.endDate = endDate
	return nil
}

func (c *CreateOrderCommand) setPostalCode(postalCode string) error {
	pc, err := kernel.NewPostalCode(postalCode)
	if err != nil {
		return err
	}
	c.postalCode = pc
	return nil
}
