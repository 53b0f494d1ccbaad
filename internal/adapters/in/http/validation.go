package http

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"time"

	"rental/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
)

var cepPattern = regexp.MustCompile(`^\d{5}-\d{3}$`)

// newValidator reports fields under their JSON names and knows the "cep"
// and "rentaldate" tags used by the request types.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("cep", func(fl validator.FieldLevel) bool {
		return cepPattern.MatchString(strings.TrimSpace(fl.Field().String()))
	})
	_ = v.RegisterValidation("rentaldate", func(fl validator.FieldLevel) bool {
		_, err := parseDate(fl.Field().String())
		return err == nil
	})

	return v
}

// validateRequest turns validator failures into an errs.ValidationError.
func validateRequest(v *validator.Validate, req any) error {
	err := v.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := errs.NewValidationError()
	for _, fe := range fieldErrs {
		out.Add(fe.Field(), fieldMessage(fe))
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return "must be greater than " + fe.Param()
	case "cep":
		return "must match XXXXX-XXX"
	case "rentaldate":
		return "must be an RFC 3339 timestamp or a YYYY-MM-DD date"
	default:
		return "failed " + fe.Tag() + " validation"
	}
}

// parseDate accepts an RFC 3339 timestamp or a calendar date, which is read
// as midnight UTC.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	return time.Parse(time.DateOnly, s)
}

type dateBound int

const (
	rentalStart dateBound = iota
	rentalEnd
)

// parseRentalDate reads a date that passed the rentaldate tag. A calendar
// date naming today (UTC) is read as now when it starts the rental and as
// the last microsecond of the day when it ends it.
func parseRentalDate(s string, bound dateBound, now time.Time) (time.Time, error) {
	day, err := parseDate(s)
	if err != nil || len(strings.TrimSpace(s)) != len(time.DateOnly) {
		return day, err
	}

	now = now.UTC()
	if day.Year() != now.Year() || day.YearDay() != now.YearDay() {
		return day, nil
	}
	if bound == rentalStart {
		return now, nil
	}
	return day.Add(24*time.Hour - time.Microsecond), nil
}

func parseOptionalRentalDate(s *string, bound dateBound, now time.Time) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	t, err := parseRentalDate(*s, bound, now)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
