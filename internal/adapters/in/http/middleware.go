package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"rental/internal/pkg/errs"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers/gorillamux"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// SubjectKey is the echo context key holding the authenticated token subject.
const SubjectKey = "auth.subject"

// BearerAuth accepts HS256 tokens signed with secret. Tokens must carry a
// subject; expiry is enforced when present.
func BearerAuth(secret []byte) echo.MiddlewareFunc {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	keyFunc := func(*jwt.Token) (any, error) { return secret, nil }

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(raw) == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			token, err := parser.Parse(strings.TrimSpace(raw), keyFunc)
			if err != nil {
				if errors.Is(err, jwt.ErrTokenExpired) {
					return echo.NewHTTPError(http.StatusUnauthorized, "token expired")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			subject, err := token.Claims.GetSubject()
			if err != nil || subject == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "token has no subject")
			}

			c.Set(SubjectKey, subject)
			return next(c)
		}
	}
}

// OpenAPIValidator checks every request that matches a route of spec against
// its parameter and body schemas. Requests outside the contract pass through
// so echo can answer 404 or 405. Authentication is left to BearerAuth.
func OpenAPIValidator(spec []byte) (echo.MiddlewareFunc, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(spec)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err = doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("validate openapi document: %w", err)
	}

	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("build openapi router: %w", err)
	}

	options := &openapi3filter.Options{
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
		MultiError:         true,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			route, pathParams, findErr := router.FindRoute(req)
			if findErr != nil {
				return next(c)
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}
			if validateErr := openapi3filter.ValidateRequest(req.Context(), input); validateErr != nil {
				return contractViolation(validateErr)
			}
			return next(c)
		}
	}, nil
}

// contractViolation flattens kin-openapi errors into field errors.
func contractViolation(err error) error {
	out := errs.NewValidationError()
	collectViolations(out, "request", err)
	return out.OrNil()
}

func collectViolations(out *errs.ValidationError, field string, err error) {
	switch e := err.(type) {
	case openapi3.MultiError:
		for _, inner := range e {
			collectViolations(out, field, inner)
		}
	case *openapi3filter.RequestError:
		field = "body"
		if e.Parameter != nil {
			field = e.Parameter.Name
		}
		if e.Err == nil {
			out.Add(field, e.Reason)
			return
		}
		collectViolations(out, field, e.Err)
	case *openapi3.SchemaError:
		if ptr := e.JSONPointer(); len(ptr) > 0 {
			field = strings.Join(ptr, ".")
		}
		out.Add(field, e.Reason)
	default:
		out.Add(field, err.Error())
	}
}

// RequestLogger writes one zap entry per request.
func RequestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("requestId", v.RequestID),
			}
			if subject, ok := c.Get(SubjectKey).(string); ok {
				fields = append(fields, zap.String("subject", subject))
			}
			if v.Error != nil {
				logger.Warn("request", append(fields, zap.Error(v.Error))...)
				return nil
			}
			logger.Info("request", fields...)
			return nil
		},
	})
}

// requestContext is the context handlers pass to the core.
func requestContext(c echo.Context) context.Context {
	return c.Request().Context()
}
