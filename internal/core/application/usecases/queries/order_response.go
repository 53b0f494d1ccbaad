// Package queries contains read-only operations over rental orders.
// Handlers read straight from the database with GORM; they never load
// aggregates and never open a unit of work.
package queries

import (
	"database/sql"
	"time"

	"rental/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderResponse is the read model of an order as stored.
type OrderResponse struct {
	ID          kernel.UUID
	ClientID    int64
	CarID       int64
	StartDate   time.Time
	EndDate     time.Time
	CloseDate   *time.Time
	CanceledAt  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	PostalCode  string
	Region      string
	City        string
	DailyPrice  decimal.Decimal
	RentalFee   decimal.Decimal
	LateFee     *decimal.Decimal
	TotalAmount decimal.Decimal
	Status      string
}

// orderColumns must stay in the order scanOrder reads them.
const orderColumns = `
	o.id,
	o.client_id,
	o.car_id,
	o.start_date,
	o.end_date,
	o.close_date,
	o.canceled_at,
	o.created_at,
	o.updated_at,
	o.postal_code,
	o.region,
	o.city,
	o.daily_price,
	o.rental_fee,
	o.late_fee,
	o.total_amount,
	o.status`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (OrderResponse, error) {
	var (
		resp       OrderResponse
		id         uuid.UUID
		closeDate  sql.NullTime
		canceledAt sql.NullTime
		lateFee    decimal.NullDecimal
	)

	err := row.Scan(
		&id,
		&resp.ClientID,
		&resp.CarID,
		&resp.StartDate,
		&resp.EndDate,
		&closeDate,
		&canceledAt,
		&resp.CreatedAt,
		&resp.UpdatedAt,
		&resp.PostalCode,
		&resp.Region,
		&resp.City,
		&resp.DailyPrice,
		&resp.RentalFee,
		&lateFee,
		&resp.TotalAmount,
		&resp.Status,
	)
	if err != nil {
		return OrderResponse{}, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return OrderResponse{}, err
	}
	resp.ID = orderID

	if closeDate.Valid {
		t := closeDate.Time.UTC()
		resp.CloseDate = &t
	}
	if canceledAt.Valid {
		t := canceledAt.Time.UTC()
		resp.CanceledAt = &t
	}
	if lateFee.Valid {
		fee := lateFee.Decimal
		resp.LateFee = &fee
	}
	resp.StartDate = resp.StartDate.UTC()
	resp.EndDate = resp.EndDate.UTC()
	resp.CreatedAt = resp.CreatedAt.UTC()
	resp.UpdatedAt = resp.UpdatedAt.UTC()

	return resp, nil
}
