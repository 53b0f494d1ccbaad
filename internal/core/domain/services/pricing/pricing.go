// Package pricing computes the monetary fields of a rental order.
//
// Every function is pure: callers supply dates, prices and the address
// coefficient, nothing is read from storage. Day counts keep their fractional
// part; rounding to cents happens only when amounts are persisted.
package pricing

import (
	"fmt"
	"strings"
	"time"

	"rental/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

const (
	// LateFeeMultiplier is applied to the daily price for every day past the end date.
	LateFeeMultiplier = 2
)

var (
	millisPerDay       = decimal.NewFromInt(int64(24 * time.Hour / time.Millisecond))
	coefficientDivisor = decimal.NewFromInt(100)
)

// DaysBetween returns the wall-clock number of days from start to end.
// The result is negative when end precedes start.
func DaysBetween(start, end time.Time) decimal.Decimal {
	return decimal.NewFromInt(end.Sub(start).Milliseconds()).Div(millisPerDay)
}

// RentalFee converts the address coefficient into a fee: coefficient / 100.
func RentalFee(coefficient string) (decimal.Decimal, error) {
	raw := strings.TrimSpace(coefficient)
	if raw == "" {
		return decimal.Zero, errs.NewInvalidPricingInputError("coefficient", coefficient)
	}

	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, errs.NewInvalidPricingInputErrorWithCause("coefficient", coefficient, err)
	}
	if value.IsNegative() {
		return decimal.Zero, errs.NewInvalidPricingInputErrorWithCause(
			"coefficient", coefficient, fmt.Errorf("%s is negative", value),
		)
	}

	return value.Div(coefficientDivisor), nil
}

// TotalAmount is dailyPrice * days + rentalFee.
func TotalAmount(dailyPrice, days, rentalFee decimal.Decimal) decimal.Decimal {
	return dailyPrice.Mul(days).Add(rentalFee)
}

// LateFee is dailyPrice * 2 * daysExceeded.
func LateFee(dailyPrice, daysExceeded decimal.Decimal) decimal.Decimal {
	return dailyPrice.Mul(decimal.NewFromInt(LateFeeMultiplier)).Mul(daysExceeded)
}

// RoundCents rounds an amount to two decimal places, half away from zero.
func RoundCents(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}
