package commands

import (
	"context"
	"errors"
	"time"

	"rental/internal/core/domain/model/kernel"
	"rental/internal/core/domain/model/order"
	"rental/internal/core/domain/services"
	"rental/internal/core/ports"
	"rental/internal/pkg/errs"
)

// CreateOrderCommandHandler opens a priced rental order.
//
// Steps, all inside one transaction: date guards, client and car eligibility,
// address resolution, pricing, insert. Nothing is written if any step fails.
type CreateOrderCommandHandler struct {
	uowFactory RentalUoWFactory
	addresses  ports.AddressLookup
	clientRule services.ClientRule
	now        Clock
}

func NewCreateOrderCommandHandler(
	uowFactory RentalUoWFactory,
	addresses ports.AddressLookup,
	clientRule services.ClientRule,
	now Clock,
) CreateOrderCommandHandler {
	if now == nil {
		now = time.Now
	}
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		addresses:  addresses,
		clientRule: clientRule,
		now:        now,
	}
}

func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := h.now()
	if err := errors.Join(
		order.ValidateNotInPast("startDate", cmd.StartDate(), now),
		order.ValidateNotInPast("endDate", cmd.EndDate(), now),
	); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	checker := services.NewEligibilityChecker(uow.CarRepository(), uow.ClientRepository(), orderRepo, h.clientRule)

	if err := checker.CheckClient(ctx, cmd.ClientID()); err != nil {
		return err
	}
	rentedCar, err := checker.CheckCar(ctx, cmd.CarID())
	if err != nil {
		return err
	}

	address, err := resolveAddress(ctx, h.addresses, cmd.PostalCode())
	if err != nil {
		return err
	}

	o, err := order.NewOrder(
		cmd.OrderID(),
		cmd.ClientID(),
		rentedCar.ID(),
		cmd.StartDate(),
		cmd.EndDate(),
		address,
		rentedCar.DailyPrice(),
		now,
	)
	if err != nil {
		return err
	}

	if err = orderRepo.Add(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// resolveAddress guarantees that every lookup failure reaches the caller as
// an errs.AddressResolutionError.
func resolveAddress(ctx context.Context, lookup ports.AddressLookup, pc kernel.PostalCode) (kernel.Address, error) {
	address, err := lookup.Resolve(ctx, pc)
	if err != nil {
		if errors.Is(err, errs.ErrAddressResolution) {
			return kernel.Address{}, err
		}
		return kernel.Address{}, errs.NewAddressResolutionError(pc.String(), err)
	}
	return address, nil
}
