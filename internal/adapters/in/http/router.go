package http

import (
	"net/http"

	"rental/api"
	_ "rental/docs"
	"rental/internal/generated/servers"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
)

const APIBasePath = "/api/v1"

// NewEcho builds the HTTP entry point. /health and /swagger/* are public;
// everything under APIBasePath needs a bearer token and must match the
// OpenAPI contract.
func NewEcho(server servers.ServerInterface, jwtSecret []byte, logger *zap.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(log.WARN)
	e.HTTPErrorHandler = NewErrorHandler(logger)

	e.Use(middleware.RequestID())
	e.Use(RequestLogger(logger))
	e.Use(middleware.Recover())
	e.Use(middleware.Gzip())

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	contract, err := OpenAPIValidator(api.Spec)
	if err != nil {
		return nil, err
	}

	group := e.Group(APIBasePath, BearerAuth(jwtSecret), contract)
	servers.RegisterHandlersWithBaseURL(group, server, "")

	return e, nil
}
