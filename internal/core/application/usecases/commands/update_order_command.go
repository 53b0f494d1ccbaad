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
	ErrUpdateOrderCommandIsNotConstructed = errors.New(
		"UpdateOrderCommand must be created via NewUpdateOrderCommand constructor",
	)
)

// OrderPatch lists the fields a caller wants to change. Nil means unchanged.
type OrderPatch struct {
	ClientID   *int64
	CarID      *int64
	StartDate  *time.Time
	EndDate    *time.Time
	PostalCode *string
	Status     *string
}

// UpdateOrderCommand is a partial change of an order, applied atomically.
type UpdateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	clientID   *int64
	carID      *int64
	startDate  *time.Time
	endDate    *time.Time
	postalCode *kernel.PostalCode
	status     *order.Status

	guard guard.ConstructorGuard
}

func NewUpdateOrderCommand(orderID kernel.UUID, patch OrderPatch) (UpdateOrderCommand, error) {
	cmd := UpdateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setClientID(patch.ClientID),
		cmd.setCarID(patch.CarID),
		cmd.setDates(patch.StartDate, patch.EndDate),
		cmd.setPostalCode(patch.PostalCode),
		cmd.setStatus(patch.Status),
	); err != nil {
		return UpdateOrderCommand{}, err
	}

	return cmd, nil
}

func (c UpdateOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderCommandIsNotConstructed)
}

func (c UpdateOrderCommand) OrderID() kernel.UUID { return c.orderID }

func (c UpdateOrderCommand) ClientID() (int64, bool) {
	if c.clientID == nil {
		return 0, false
	}
	return *c.clientID, true
}

func (c UpdateOrderCommand) CarID() (int64, bool) {
	if c.carID == nil {
		return 0, false
	}
	return *c.carID, true
}

func (c UpdateOrderCommand) StartDate() (time.Time, bool) {
	if c.startDate == nil {
		return time.Time{}, false
	}
	return *c.startDate, true
}

func (c UpdateOrderCommand) EndDate() (time.Time, bool) {
	if c.endDate == nil {
		return time.Time{}, false
	}
	return *c.endDate, true
}

func (c UpdateOrderCommand) PostalCode() (kernel.PostalCode, bool) {
	if c.postalCode == nil {
		return kernel.PostalCode{}, false
	}
	return *c.postalCode, true
}

func (c UpdateOrderCommand) Status() (order.Status, bool) {
	if c.status == nil {
		return order.Unknown, false
	}
	return *c.status, true
}

// Modifies reports whether the patch changes anything besides the status of
// o. Fields repeating the stored value do not count.
func (c UpdateOrderCommand) Modifies(o *order.Order) bool {
	switch {
	case c.clientID != nil && *c.clientID != o.ClientID():
		return true
	case c.carID != nil && *c.carID != o.CarID():
		return true
	case c.startDate != nil && !c.startDate.Equal(o.StartDate()):
		return true
	case c.endDate != nil && !c.endDate.Equal(o.EndDate()):
		return true
	case c.postalCode != nil && !c.postalCode.IsEqual(o.PostalCode()):
		return true
	}
	return false
}

func (c *UpdateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *UpdateOrderCommand) setClientID(clientID *int64) error {
	if clientID == nil {
		return nil
	}
	if *clientID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("clientId", fmt.Errorf("%d is not positive", *clientID))
	}
	v := *clientID
	c.clientID = &v
	return nil
}

func (c *UpdateOrderCommand) setCarID(carID *int64) error {
	if carID == nil {
		return nil
	}
	if *carID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("carId", fmt.Errorf("%d is not positive", *carID))
	}
	v := *carID
	c.carID = &v
	return nil
}

func (c *UpdateOrderCommand) setDates(startDate, endDate *time.Time) error {
	if startDate != nil && startDate.IsZero() {
		return errs.NewValueIsRequiredError("startDate")
	}
	if endDate != nil && endDate.IsZero() {
		return errs.NewValueIsRequiredError("endDate")
	}
	if startDate != nil && endDate != nil {
		if err := order.ValidateWindow(*startDate, *endDate); err != nil {
			return err
		}
	}
	if startDate != nil {
		v := *startDate
		c.startDate = &v
	}
	if endDate != nil {
		v := *endDate
		c.endDate = &v
	}
	return nil
}

func (c *UpdateOrderCommand) setPostalCode(postalCode *string) error {
	if postalCode == nil {
		return nil
	}
	pc, err := kernel.NewPostalCode(*postalCode)
	if err != nil {
		return err
	}
	c.postalCode = &pc
	return nil
}

func (c *UpdateOrderCommand) setStatus(status *string) error {
	if status == nil {
		return nil
	}
	s, err := order.ParseStatus(*status)
	if err != nil {
		return err
	}
	c.status = &s
	return nil
}
