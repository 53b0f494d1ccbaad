package http

import (
	"errors"
	"net/http"
	"strings"

	"rental/internal/generated/servers"
	"rental/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Stable error codes returned in the "code" field of error bodies.
const (
	CodeNotFound            = "NOT_FOUND"
	CodeIneligible          = "INELIGIBLE"
	CodeIllegalTransition   = "ILLEGAL_TRANSITION"
	CodeInvalidPricingInput = "INVALID_PRICING_INPUT"
	CodeAddressResolution   = "ADDRESS_RESOLUTION_FAILED"
	CodeValidation          = "VALIDATION_ERROR"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeInternal            = "INTERNAL_ERROR"
)

const internalErrorMessage = "internal server error"

// mapError picks the status and body for err. The second return is false
// for failures whose message must not reach the client.
func mapError(err error) (int, servers.Error, bool) {
	var validationErr *errs.ValidationError
	if errors.As(err, &validationErr) {
		details := make([]servers.FieldError, 0, len(validationErr.Fields))
		for _, f := range validationErr.Fields {
			details = append(details, servers.FieldError{Field: f.Field, Message: f.Message})
		}
		return http.StatusBadRequest, servers.Error{
			Code:    CodeValidation,
			Message: "request validation failed",
			Details: &details,
		}, true
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return mapHTTPError(httpErr)
	}

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, servers.Error{Code: CodeNotFound, Message: err.Error()}, true
	case errors.Is(err, errs.ErrIneligible):
		return http.StatusConflict, servers.Error{Code: CodeIneligible, Message: err.Error()}, true
	case errors.Is(err, errs.ErrIllegalTransition):
		return http.StatusConflict, servers.Error{Code: CodeIllegalTransition, Message: err.Error()}, true
	case errors.Is(err, errs.ErrInvalidPricingInput):
		return http.StatusUnprocessableEntity, servers.Error{Code: CodeInvalidPricingInput, Message: err.Error()}, true
	case errors.Is(err, errs.ErrAddressResolution):
		return http.StatusUnprocessableEntity, servers.Error{Code: CodeAddressResolution, Message: err.Error()}, true
	case errors.Is(err, errs.ErrValidation),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest, servers.Error{Code: CodeValidation, Message: err.Error()}, true
	default:
		return http.StatusInternalServerError, servers.Error{Code: CodeInternal, Message: internalErrorMessage}, false
	}
}

func mapHTTPError(httpErr *echo.HTTPError) (int, servers.Error, bool) {
	message := http.StatusText(httpErr.Code)
	if m, ok := httpErr.Message.(string); ok && m != "" {
		message = m
	}

	switch {
	case httpErr.Code == http.StatusUnauthorized:
		return httpErr.Code, servers.Error{Code: CodeUnauthorized, Message: message}, true
	case httpErr.Code == http.StatusNotFound:
		return httpErr.Code, servers.Error{Code: CodeNotFound, Message: message}, true
	case httpErr.Code == http.StatusBadRequest:
		return httpErr.Code, servers.Error{Code: CodeValidation, Message: message}, true
	case httpErr.Code >= http.StatusInternalServerError:
		return httpErr.Code, servers.Error{Code: CodeInternal, Message: internalErrorMessage}, false
	default:
		code := strings.ToUpper(strings.ReplaceAll(http.StatusText(httpErr.Code), " ", "_"))
		return httpErr.Code, servers.Error{Code: code, Message: message}, true
	}
}

// NewErrorHandler replaces echo's default error handler. Failures mapped to
// 500 are logged with their cause and answered with a generic message.
func NewErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body, exposed := mapError(err)
		if !exposed {
			logger.Error("request failed",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, body)
		}
		if writeErr != nil {
			logger.Error("write error response", zap.Error(writeErr))
		}
	}
}
