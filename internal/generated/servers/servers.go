// Package servers holds the wire types and the echo routing wrapper of the
// contract in api/openapi.yaml. Handlers implement ServerInterface; the
// wrapper binds path and query parameters before calling them.
package servers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

const BearerAuthScopes = "bearerAuth.Scopes"

// NewOrder is the body of POST /orders. Dates accept RFC 3339 or YYYY-MM-DD.
type NewOrder struct {
	ClientId  int64  `json:"clientId" validate:"required,gt=0"`
	CarId     int64  `json:"carId" validate:"required,gt=0"`
	StartDate string `json:"startDate" validate:"required,rentaldate"`
	EndDate   string `json:"endDate" validate:"required,rentaldate"`
	Cep       string `json:"cep" validate:"required,cep"`
}

// OrderPatch is the body of PUT /orders/{orderId}. Absent fields are left unchanged.
type OrderPatch struct {
	ClientId    *int64  `json:"clientId,omitempty" validate:"omitempty,gt=0"`
	CarId       *int64  `json:"carId,omitempty" validate:"omitempty,gt=0"`
	StartDate   *string `json:"startDate,omitempty" validate:"omitempty,rentaldate"`
	EndDate     *string `json:"endDate,omitempty" validate:"omitempty,rentaldate"`
	Cep         *string `json:"cep,omitempty" validate:"omitempty,cep"`
	StatusOrder *string `json:"statusOrder,omitempty" validate:"omitempty"`
}

// Order is the representation returned by every order endpoint. Money is
// rendered as a JSON number with two decimals.
type Order struct {
	Id          openapi_types.UUID `json:"id"`
	ClientId    int64              `json:"clientId"`
	CarId       int64              `json:"carId"`
	StartDate   time.Time          `json:"startDate"`
	EndDate     time.Time          `json:"endDate"`
	Cep         string             `json:"cep"`
	Uf          string             `json:"uf"`
	City        string             `json:"city"`
	DailyPrice  json.Number        `json:"dailyPrice"`
	RentalFee   json.Number        `json:"rentalFee"`
	TotalAmount json.Number        `json:"totalAmount"`
	LateFee     *json.Number       `json:"lateFee"`
	CloseDate   *time.Time         `json:"closeDate"`
	CanceledAt  *time.Time         `json:"canceledAt"`
	StatusOrder string             `json:"statusOrder"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type Error struct {
	Code    string        `json:"code"`
	Message string        `json:"message"`
	Details *[]FieldError `json:"details,omitempty"`
}

// ListOrdersParams are the query parameters of GET /orders. Paging values stay
// strings so that malformed numbers fall back to defaults instead of failing.
type ListOrdersParams struct {
	Cpf    *string `form:"cpf,omitempty" json:"cpf,omitempty"`
	Status *string `form:"status,omitempty" json:"status,omitempty"`
	Page   *string `form:"page,omitempty" json:"page,omitempty"`
	Limit  *string `form:"limit,omitempty" json:"limit,omitempty"`
}

type ServerInterface interface {
	// (GET /orders)
	ListOrders(ctx echo.Context, params ListOrdersParams) error
	// (POST /orders)
	CreateOrder(ctx echo.Context) error
	// (DELETE /orders/{orderId})
	CancelOrder(ctx echo.Context, orderId openapi_types.UUID) error
	// (GET /orders/{orderId})
	GetOrder(ctx echo.Context, orderId openapi_types.UUID) error
	// (PUT /orders/{orderId})
	UpdateOrder(ctx echo.Context, orderId openapi_types.UUID) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) ListOrders(ctx echo.Context) error {
	var err error
	ctx.Set(BearerAuthScopes, []string{})

	var params ListOrdersParams

	for name, dest := range map[string]**string{
		"cpf":    &params.Cpf,
		"status": &params.Status,
		"page":   &params.Page,
		"limit":  &params.Limit,
	} {
		err = runtime.BindQueryParameter("form", true, false, name, ctx.QueryParams(), dest)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
		}
	}

	return w.Handler.ListOrders(ctx, params)
}

func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	ctx.Set(BearerAuthScopes, []string{})

	return w.Handler.CreateOrder(ctx)
}

func (w *ServerInterfaceWrapper) CancelOrder(ctx echo.Context) error {
	orderId, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	ctx.Set(BearerAuthScopes, []string{})

	return w.Handler.CancelOrder(ctx, orderId)
}

func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	orderId, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	ctx.Set(BearerAuthScopes, []string{})

	return w.Handler.GetOrder(ctx, orderId)
}

func (w *ServerInterfaceWrapper) UpdateOrder(ctx echo.Context) error {
	orderId, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	ctx.Set(BearerAuthScopes, []string{})

	return w.Handler.UpdateOrder(ctx, orderId)
}

func bindOrderID(ctx echo.Context) (openapi_types.UUID, error) {
	var orderId openapi_types.UUID

	err := runtime.BindStyledParameterWithOptions("simple", "orderId", ctx.Param("orderId"), &orderId,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return orderId, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter orderId: %s", err))
	}
	return orderId, nil
}

// EchoRouter is satisfied by both *echo.Echo and *echo.Group.
type EchoRouter interface {
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers every route under baseURL.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.GET(baseURL+"/orders", wrapper.ListOrders)
	router.POST(baseURL+"/orders", wrapper.CreateOrder)
	router.DELETE(baseURL+"/orders/:orderId", wrapper.CancelOrder)
	router.GET(baseURL+"/orders/:orderId", wrapper.GetOrder)
	router.PUT(baseURL+"/orders/:orderId", wrapper.UpdateOrder)
}
