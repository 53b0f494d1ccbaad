// Package orderrepo persists order aggregates with GORM.
package orderrepo

import (
	"time"

	"rental/internal/core/domain/model/kernel"
	"rental/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO mirrors the orders table. Timestamps come from the aggregate, so
// GORM's automatic time tracking is disabled.
type OrderDTO struct {
	ID          uuid.UUID           `gorm:"type:uuid;primaryKey"`
	ClientID    int64               `gorm:"not null"`
	CarID       int64               `gorm:"not null"`
	StartDate   time.Time           `gorm:"not null"`
	EndDate     time.Time           `gorm:"not null"`
	CloseDate   *time.Time          `gorm:"type:timestamptz"`
	CanceledAt  *time.Time          `gorm:"type:timestamptz"`
	CreatedAt   time.Time           `gorm:"autoCreateTime:false"`
	UpdatedAt   time.Time           `gorm:"autoUpdateTime:false"`
	PostalCode  string              `gorm:"type:varchar(9)"`
	Region      string              `gorm:"type:varchar(2)"`
	City        string              `gorm:"type:varchar(120)"`
	DailyPrice  decimal.Decimal     `gorm:"type:numeric(12,2)"`
	RentalFee   decimal.Decimal     `gorm:"type:numeric(12,2)"`
	LateFee     decimal.NullDecimal `gorm:"type:numeric(12,2)"`
	TotalAmount decimal.Decimal     `gorm:"type:numeric(12,2)"`
	Status      string              `gorm:"type:varchar(16)"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(o *order.Order) OrderDTO {
	dto := OrderDTO{
		ID:          o.ID().Bytes(),
		ClientID:    o.ClientID(),
		CarID:       o.CarID(),
		StartDate:   o.StartDate(),
		EndDate:     o.EndDate(),
		CloseDate:   o.CloseDate(),
		CanceledAt:  o.CanceledAt(),
		CreatedAt:   o.CreatedAt(),
		UpdatedAt:   o.UpdatedAt(),
		PostalCode:  o.PostalCode().String(),
		Region:      o.Region(),
		City:        o.City(),
		DailyPrice:  o.DailyPrice(),
		RentalFee:   o.RentalFee(),
		TotalAmount: o.TotalAmount(),
		Status:      o.Status().String(),
	}
	if fee := o.LateFee(); fee != nil {
		dto.LateFee = decimal.NewNullDecimal(*fee)
	}
	return dto
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	postalCode, err := kernel.NewPostalCode(dto.PostalCode)
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	var lateFee *decimal.Decimal
	if dto.LateFee.Valid {
		fee := dto.LateFee.Decimal
		lateFee = &fee
	}

	return order.RestoreOrder(order.Snapshot{
		ID:          id,
		ClientID:    dto.ClientID,
		CarID:       dto.CarID,
		StartDate:   dto.StartDate.UTC(),
		EndDate:     dto.EndDate.UTC(),
		CloseDate:   utcPtr(dto.CloseDate),
		CanceledAt:  utcPtr(dto.CanceledAt),
		CreatedAt:   dto.CreatedAt.UTC(),
		UpdatedAt:   dto.UpdatedAt.UTC(),
		PostalCode:  postalCode,
		Region:      dto.Region,
		City:        dto.City,
		DailyPrice:  dto.DailyPrice,
		RentalFee:   dto.RentalFee,
		LateFee:     lateFee,
		TotalAmount: dto.TotalAmount,
		Status:      status,
	})
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
