package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"rental/internal/core/application/usecases/commands"
	"rental/internal/core/application/usecases/queries"
	"rental/internal/core/domain/model/kernel"
	"rental/internal/generated/servers"
	"rental/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

type createOrderHandler interface {
	Handle(ctx context.Context, cmd commands.CreateOrderCommand) error
}

type updateOrderHandler interface {
	Handle(ctx context.Context, cmd commands.UpdateOrderCommand) error
}

type cancelOrderHandler interface {
	Handle(ctx context.Context, cmd commands.CancelOrderCommand) error
}

type getOrderHandler interface {
	Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderResponse, error)
}

type listOrdersHandler interface {
	Handle(ctx context.Context, query queries.ListOrdersQuery) (queries.ListOrdersResponse, error)
}

// Server implements servers.ServerInterface on top of the order use cases.
// Errors are returned to echo and rendered by NewErrorHandler.
type Server struct {
	createOrder createOrderHandler
	updateOrder updateOrderHandler
	cancelOrder cancelOrderHandler
	getOrder    getOrderHandler
	listOrders  listOrdersHandler

	validate *validator.Validate
	now      commands.Clock
}

var _ servers.ServerInterface = (*Server)(nil)

func NewServer(
	createOrder createOrderHandler,
	updateOrder updateOrderHandler,
	cancelOrder cancelOrderHandler,
	getOrder getOrderHandler,
	listOrders listOrdersHandler,
	now commands.Clock,
) *Server {
	if now == nil {
		now = time.Now
	}
	return &Server{
		createOrder: createOrder,
		updateOrder: updateOrder,
		cancelOrder: cancelOrder,
		getOrder:    getOrder,
		listOrders:  listOrders,
		validate:    newValidator(),
		now:         now,
	}
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	var body servers.NewOrder
	if err := c.Bind(&body); err != nil {
		return errs.NewValidationError(errs.FieldError{Field: "body", Message: "malformed JSON"})
	}
	if err := validateRequest(s.validate, body); err != nil {
		return err
	}

	// Format was checked by the rentaldate tag.
	now := s.now()
	startDate, _ := parseRentalDate(body.StartDate, rentalStart, now)
	endDate, _ := parseRentalDate(body.EndDate, rentalEnd, now)

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, body.ClientId, body.CarId, startDate, endDate, body.Cep)
	if err != nil {
		return err
	}

	ctx := requestContext(c)
	if err = s.createOrder.Handle(ctx, cmd); err != nil {
		return err
	}

	return s.respondWithOrder(c, http.StatusCreated, orderID)
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(c echo.Context, orderID openapi_types.UUID) error {
	id, err := kernel.UUIDFromBytes(orderID[:])
	if err != nil {
		return err
	}
	return s.respondWithOrder(c, http.StatusOK, id)
}

// Paging headers of the list response.
const (
	HeaderTotalCount = "X-Total-Count"
	HeaderPage       = "X-Page"
	HeaderLimit      = "X-Limit"
)

// ListOrders handles GET /api/v1/orders. The body is the page of orders;
// the total and the effective paging go in headers. Page and limit that are
// not integers fall back to the defaults.
func (s *Server) ListOrders(c echo.Context, params servers.ListOrdersParams) error {
	query, err := queries.NewListOrdersQuery(
		deref(params.Cpf),
		deref(params.Status),
		lenientInt(params.Page),
		lenientInt(params.Limit),
	)
	if err != nil {
		return err
	}

	page, err := s.listOrders.Handle(requestContext(c), query)
	if err != nil {
		return err
	}

	out := make([]servers.Order, 0, len(page.Orders))
	for _, o := range page.Orders {
		out = append(out, toOrder(o))
	}

	header := c.Response().Header()
	header.Set(HeaderTotalCount, strconv.FormatInt(page.Total, 10))
	header.Set(HeaderPage, strconv.Itoa(page.Page))
	header.Set(HeaderLimit, strconv.Itoa(page.Limit))

	return c.JSON(http.StatusOK, out)
}

// UpdateOrder handles PUT /api/v1/orders/{orderId}.
func (s *Server) UpdateOrder(c echo.Context, orderID openapi_types.UUID) error {
	id, err := kernel.UUIDFromBytes(orderID[:])
	if err != nil {
		return err
	}

	var body servers.OrderPatch
	if err = c.Bind(&body); err != nil {
		return errs.NewValidationError(errs.FieldError{Field: "body", Message: "malformed JSON"})
	}
	if err = validateRequest(s.validate, body); err != nil {
		return err
	}

	now := s.now()
	startDate, _ := parseOptionalRentalDate(body.StartDate, rentalStart, now)
	endDate, _ := parseOptionalRentalDate(body.EndDate, rentalEnd, now)

	cmd, err := commands.NewUpdateOrderCommand(id, commands.OrderPatch{
		ClientID:   body.ClientId,
		CarID:      body.CarId,
		StartDate:  startDate,
		EndDate:    endDate,
		PostalCode: body.Cep,
		Status:     body.StatusOrder,
	})
	if err != nil {
		return err
	}

	if err = s.updateOrder.Handle(requestContext(c), cmd); err != nil {
		return err
	}

	return s.respondWithOrder(c, http.StatusOK, id)
}

// CancelOrder handles DELETE /api/v1/orders/{orderId}. The order is kept
// with status cancelled.
func (s *Server) CancelOrder(c echo.Context, orderID openapi_types.UUID) error {
	id, err := kernel.UUIDFromBytes(orderID[:])
	if err != nil {
		return err
	}

	cmd, err := commands.NewCancelOrderCommand(id)
	if err != nil {
		return err
	}

	if err = s.cancelOrder.Handle(requestContext(c), cmd); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func (s *Server) respondWithOrder(c echo.Context, status int, id kernel.UUID) error {
	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return err
	}

	o, err := s.getOrder.Handle(requestContext(c), query)
	if err != nil {
		return err
	}

	return c.JSON(status, toOrder(o))
}

func toOrder(o queries.OrderResponse) servers.Order {
	out := servers.Order{
		Id:          o.ID.Bytes(),
		ClientId:    o.ClientID,
		CarId:       o.CarID,
		StartDate:   o.StartDate,
		EndDate:     o.EndDate,
		Cep:         o.PostalCode,
		Uf:          o.Region,
		City:        o.City,
		DailyPrice:  money(o.DailyPrice),
		RentalFee:   money(o.RentalFee),
		TotalAmount: money(o.TotalAmount),
		CloseDate:   o.CloseDate,
		CanceledAt:  o.CanceledAt,
		StatusOrder: o.Status,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
	if o.LateFee != nil {
		fee := money(*o.LateFee)
		out.LateFee = &fee
	}
	return out
}

func money(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(2))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func lenientInt(s *string) int {
	if s == nil {
		return 0
	}
	n, err := strconv.Atoi(*s)
	if err != nil {
		return 0
	}
	return n
}
