package commands

import (
	"context"
	"errors"
	"time"

	"rental/internal/core/domain/model/order"
	"rental/internal/core/domain/services"
	"rental/internal/core/ports"
	"rental/internal/pkg/errs"
)

// UpdateOrderCommandHandler applies a patch to an order under a row lock.
//
// Order of application: participants (re-checked for eligibility when they
// change), dates, postal code, then status. A close in the same request
// therefore sees the patched end date when computing the late fee.
type UpdateOrderCommandHandler struct {
	uowFactory RentalUoWFactory
	addresses  ports.AddressLookup
	clientRule services.ClientRule
	now        Clock
}

func NewUpdateOrderCommandHandler(
	uowFactory RentalUoWFactory,
	addresses ports.AddressLookup,
	clientRule services.ClientRule,
	now Clock,
) UpdateOrderCommandHandler {
	if now == nil {
		now = time.Now
	}
	return UpdateOrderCommandHandler{
		uowFactory: uowFactory,
		addresses:  addresses,
		clientRule: clientRule,
		now:        now,
	}
}

func (h *UpdateOrderCommandHandler) Handle(ctx context.Context, cmd UpdateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := h.now()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if o.Status().IsTerminal() && cmd.Modifies(o) {
		return errs.NewIllegalTransitionError(o.Status().String(), "modified")
	}

	startDate, endDate := patchedWindow(cmd, o)
	if err = validateChangedDates(o, startDate, endDate, now); err != nil {
		return err
	}

	checker := services.NewEligibilityChecker(uow.CarRepository(), uow.ClientRepository(), orderRepo, h.clientRule)

	if clientID, ok := cmd.ClientID(); ok && clientID != o.ClientID() {
		if err = checker.CheckClient(ctx, clientID); err != nil {
			return err
		}
		if err = o.ChangeClient(clientID, now); err != nil {
			return err
		}
	}

	if carID, ok := cmd.CarID(); ok && carID != o.CarID() {
		newCar, checkErr := checker.CheckCar(ctx, carID)
		if checkErr != nil {
			return checkErr
		}
		if err = o.ChangeCar(newCar.ID(), newCar.DailyPrice(), now); err != nil {
			return err
		}
	}

	if !startDate.Equal(o.StartDate()) || !endDate.Equal(o.EndDate()) {
		if err = o.ChangeDates(startDate, endDate, now); err != nil {
			return err
		}
	}

	if pc, ok := cmd.PostalCode(); ok && !pc.IsEqual(o.PostalCode()) {
		address, resolveErr := resolveAddress(ctx, h.addresses, pc)
		if resolveErr != nil {
			return resolveErr
		}
		if err = o.ChangeAddress(address, now); err != nil {
			return err
		}
	}

	if status, ok := cmd.Status(); ok {
		if err = o.TransitionTo(status, now); err != nil {
			return err
		}
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// patchedWindow is the rental window after the patch; dates the patch omits
// keep their stored values.
func patchedWindow(cmd UpdateOrderCommand, o *order.Order) (time.Time, time.Time) {
	startDate, endDate := o.StartDate(), o.EndDate()
	if patched, ok := cmd.StartDate(); ok {
		startDate = patched
	}
	if patched, ok := cmd.EndDate(); ok {
		endDate = patched
	}
	return startDate, endDate
}

// validateChangedDates applies the past-date guard to the dates that differ
// from the stored ones.
func validateChangedDates(o *order.Order, startDate, endDate, now time.Time) error {
	var errStart, errEnd error
	if !startDate.Equal(o.StartDate()) {
		errStart = order.ValidateNotInPast("startDate", startDate, now)
	}
	if !endDate.Equal(o.EndDate()) {
		errEnd = order.ValidateNotInPast("endDate", endDate, now)
	}
	return errors.Join(errStart, errEnd)
}
