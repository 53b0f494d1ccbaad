package order

import (
	"errors"
	"fmt"
	"time"

	"rental/internal/core/domain/model/kernel"
	"rental/internal/core/domain/services/pricing"
	"rental/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned for an Order that bypassed NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
)

// Order is the rental order aggregate root. It owns the pricing snapshot of a
// rental and the status lifecycle.
//
// Invariants:
//   - endDate is never before startDate
//   - rentalFee is never negative
//   - lateFee is set only on orders closed after their endDate
//   - closed and cancelled orders accept no further changes
type Order struct {
	id       kernel.UUID
	clientID int64
	carID    int64

	startDate  time.Time
	endDate    time.Time
	closeDate  *time.Time
	canceledAt *time.Time
	createdAt  time.Time
	updatedAt  time.Time

	postalCode kernel.PostalCode
	region     string
	city       string

	// dailyPrice is copied from the car, never re-read live.
	dailyPrice  decimal.Decimal
	rentalFee   decimal.Decimal
	lateFee     *decimal.Decimal
	totalAmount decimal.Decimal

	status Status

	isConstructed bool
}

// NewOrder prices a new rental and opens it.
//
// Example:
//
//	pc, _ := kernel.NewPostalCode("01310-930")
//	addr, _ := kernel.NewAddress(pc, "SP", "São Paulo", "1004")
//	o, err := order.NewOrder(kernel.NewUUID(), 1, 1, start, start.AddDate(0, 0, 2), addr, car.DailyPrice(), time.Now())
func NewOrder(
	id kernel.UUID,
	clientID, carID int64,
	startDate, endDate time.Time,
	address kernel.Address,
	dailyPrice decimal.Decimal,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:        Open,
		createdAt:     now.UTC(),
		updatedAt:     now.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setClientID(clientID),
		o.setCarID(carID),
		o.setWindow(startDate, endDate),
		o.setDailyPrice(dailyPrice),
	); err != nil {
		return nil, err
	}
	if err := o.setAddress(address); err != nil {
		return nil, err
	}

	o.reprice()
	return o, nil
}

// Snapshot carries the persisted state of an order.
type Snapshot struct {
	ID          kernel.UUID
	ClientID    int64
	CarID       int64
	StartDate   time.Time
	EndDate     time.Time
	CloseDate   *time.Time
	CanceledAt  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	PostalCode  kernel.PostalCode
	Region      string
	City        string
	DailyPrice  decimal.Decimal
	RentalFee   decimal.Decimal
	LateFee     *decimal.Decimal
	TotalAmount decimal.Decimal
	Status      Status
}

// RestoreOrder rebuilds an order from storage without repricing it.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		closeDate:     s.CloseDate,
		canceledAt:    s.CanceledAt,
		createdAt:     s.CreatedAt,
		updatedAt:     s.UpdatedAt,
		region:        s.Region,
		city:          s.City,
		rentalFee:     s.RentalFee,
		lateFee:       s.LateFee,
		totalAmount:   s.TotalAmount,
		isConstructed: true,
	}

	var errFee error
	if s.RentalFee.IsNegative() {
		errFee = errs.NewValueIsInvalidErrorWithCause("rentalFee", fmt.Errorf("%s is negative", s.RentalFee))
	}
	if err := errors.Join(
		o.setID(s.ID),
		o.setClientID(s.ClientID),
		o.setCarID(s.CarID),
		o.setWindow(s.StartDate, s.EndDate),
		o.setDailyPrice(s.DailyPrice),
		s.PostalCode.Validate(),
		s.Status.Validate(),
		errFee,
	); err != nil {
		return nil, err
	}
	o.postalCode = s.PostalCode
	o.status = s.Status

	return o, nil
}

// Validate reports whether the order went through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID               { return o.id }
func (o *Order) ClientID() int64               { return o.clientID }
func (o *Order) CarID() int64                  { return o.carID }
func (o *Order) StartDate() time.Time          { return o.startDate }
func (o *Order) EndDate() time.Time            { return o.endDate }
func (o *Order) CloseDate() *time.Time         { return o.closeDate }
func (o *Order) CanceledAt() *time.Time        { return o.canceledAt }
func (o *Order) CreatedAt() time.Time          { return o.createdAt }
func (o *Order) UpdatedAt() time.Time          { return o.updatedAt }
func (o *Order) PostalCode() kernel.PostalCode { return o.postalCode }
func (o *Order) Region() string                { return o.region }
func (o *Order) City() string                  { return o.city }
func (o *Order) DailyPrice() decimal.Decimal   { return o.dailyPrice }
func (o *Order) RentalFee() decimal.Decimal    { return o.rentalFee }
func (o *Order) LateFee() *decimal.Decimal     { return o.lateFee }
func (o *Order) TotalAmount() decimal.Decimal  { return o.totalAmount }
func (o *Order) Status() Status                { return o.status }

// ChangeClient moves the rental to another client. Eligibility of the new
// client is checked by the caller.
func (o *Order) ChangeClient(clientID int64, now time.Time) error {
	if err := o.ensureMutable(); err != nil {
		return err
	}
	if err := o.setClientID(clientID); err != nil {
		return err
	}
	o.touch(now)
	return nil
}

// ChangeCar swaps the car and snapshots its daily price.
func (o *Order) ChangeCar(carID int64, dailyPrice decimal.Decimal, now time.Time) error {
	if err := o.ensureMutable(); err != nil {
		return err
	}
	if err := errors.Join(o.setCarID(carID), o.setDailyPrice(dailyPrice)); err != nil {
		return err
	}
	o.reprice()
	o.touch(now)
	return nil
}

// ChangeDates replaces the rental window and reprices the order.
func (o *Order) ChangeDates(startDate, endDate time.Time, now time.Time) error {
	if err := o.ensureMutable(); err != nil {
		return err
	}
	if err := o.setWindow(startDate, endDate); err != nil {
		return err
	}
	o.reprice()
	o.touch(now)
	return nil
}

// ChangeAddress relocates the pickup, recomputing the rental fee from the
// address coefficient. On failure the order is left untouched.
func (o *Order) ChangeAddress(address kernel.Address, now time.Time) error {
	if err := o.ensureMutable(); err != nil {
		return err
	}
	if err := o.setAddress(address); err != nil {
		return err
	}
	o.reprice()
	o.touch(now)
	return nil
}

// Approve moves an open order to approved.
func (o *Order) Approve(now time.Time) error {
	next, err := o.status.Approve()
	if err != nil {
		return err
	}
	o.status = next
	o.touch(now)
	return nil
}

// Cancel moves an open order to cancelled and records when.
func (o *Order) Cancel(now time.Time) error {
	next, err := o.status.Cancel()
	if err != nil {
		return err
	}
	at := now.UTC()
	o.status = next
	o.canceledAt = &at
	o.touch(now)
	return nil
}

// Close moves an approved order to closed. Closing after the end date charges
// twice the daily price for every exceeded day, rounded up to the cent.
func (o *Order) Close(now time.Time) error {
	next, err := o.status.Close()
	if err != nil {
		return err
	}

	at := now.UTC()
	o.status = next
	o.closeDate = &at
	if now.After(o.endDate) {
		fee := pricing.LateFee(o.dailyPrice, pricing.DaysBetween(o.endDate, now)).RoundCeil(2)
		o.lateFee = &fee
	}
	o.touch(now)
	return nil
}

// TransitionTo applies the requested status with its side effects.
func (o *Order) TransitionTo(target Status, now time.Time) error {
	switch target {
	case Approved:
		return o.Approve(now)
	case Cancelled:
		return o.Cancel(now)
	case Closed:
		return o.Close(now)
	case Open, Unknown:
		return errs.NewIllegalTransitionError(o.status.String(), target.String())
	default:
		return target.Validate()
	}
}

func (o *Order) ensureMutable() error {
	if o.status.IsTerminal() {
		return errs.NewIllegalTransitionError(o.status.String(), "modified")
	}
	return nil
}

func (o *Order) touch(now time.Time) {
	o.updatedAt = now.UTC()
}

func (o *Order) reprice() {
	days := pricing.DaysBetween(o.startDate, o.endDate)
	o.totalAmount = pricing.RoundCents(pricing.TotalAmount(o.dailyPrice, days, o.rentalFee))
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setClientID(clientID int64) error {
	if clientID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("clientId", fmt.Errorf("%d is not positive", clientID))
	}
	o.clientID = clientID
	return nil
}

func (o *Order) setCarID(carID int64) error {
	if carID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("carId", fmt.Errorf("%d is not positive", carID))
	}
	o.carID = carID
	return nil
}

func (o *Order) setWindow(startDate, endDate time.Time) error {
	if err := ValidateWindow(startDate, endDate); err != nil {
		return err
	}
	o.startDate = startDate.UTC()
	o.endDate = endDate.UTC()
	return nil
}

func (o *Order) setDailyPrice(dailyPrice decimal.Decimal) error {
	if dailyPrice.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("dailyPrice", fmt.Errorf("%s is negative", dailyPrice))
	}
	o.dailyPrice = dailyPrice
	return nil
}

func (o *Order) setAddress(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	fee, err := pricing.RentalFee(address.Coefficient())
	if err != nil {
		return err
	}
	o.postalCode = address.PostalCode()
	o.region = address.Region()
	o.city = address.City()
	o.rentalFee = pricing.RoundCents(fee)
	return nil
}
