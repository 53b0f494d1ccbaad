// Package car holds the read model of a rentable car. Cars are owned by the
// fleet registry; the order engine only reads them to decide eligibility and
// to snapshot the daily price.
package car

import (
	"errors"
	"fmt"
	"strings"

	"rental/internal/core/domain/model/kernel"
	"rental/internal/pkg/errs"
	"rental/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCarIsNotConstructed = errors.New("Car must be created via RestoreCar")

type Car struct {
	id         int64
	brand      string
	model      string
	plate      string
	dailyPrice decimal.Decimal
	activity   kernel.Activity
	guard      guard.ConstructorGuard
}

// RestoreCar rebuilds a car from persisted state.
func RestoreCar(
	id int64,
	brand, model, plate string,
	dailyPrice decimal.Decimal,
	activity kernel.Activity,
) (Car, error) {
	var errID, errPlate, errPrice error
	if id <= 0 {
		errID = errs.NewValueIsInvalidErrorWithCause("carId", fmt.Errorf("%d is not positive", id))
	}
	if strings.TrimSpace(plate) == "" {
		errPlate = errs.NewValueIsRequiredError("plate")
	}
	if dailyPrice.IsNegative() {
		errPrice = errs.NewValueIsInvalidErrorWithCause("dailyPrice", fmt.Errorf("%s is negative", dailyPrice))
	}
	if err := errors.Join(errID, errPlate, errPrice, activity.Validate()); err != nil {
		return Car{}, err
	}

	return Car{
		id:         id,
		brand:      brand,
		model:      model,
		plate:      plate,
		dailyPrice: dailyPrice,
		activity:   activity,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c Car) ID() int64                   { return c.id }
func (c Car) Brand() string               { return c.brand }
func (c Car) Model() string               { return c.model }
func (c Car) Plate() string               { return c.plate }
func (c Car) DailyPrice() decimal.Decimal { return c.dailyPrice }
func (c Car) Activity() kernel.Activity   { return c.activity }

func (c Car) IsActive() bool {
	return c.activity.IsActive()
}

func (c Car) Validate() error {
	return c.guard.Validate(ErrCarIsNotConstructed)
}
