package commands

import (
	"context"

	"rental/internal/core/domain/model/order"
)

// CancelOrderCommandHandler is an update that only sets the status to cancelled,
// so a second cancel fails with errs.IllegalTransitionError.
type CancelOrderCommandHandler struct {
	update UpdateOrderCommandHandler
}

func NewCancelOrderCommandHandler(update UpdateOrderCommandHandler) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{update: update}
}

func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	status := order.Cancelled.String()
	update, err := NewUpdateOrderCommand(cmd.OrderID(), OrderPatch{Status: &status})
	if err != nil {
		return err
	}

	return h.update.Handle(ctx, update)
}
