// Package carrepo reads cars from the fleet registry tables.
package carrepo

import (
	"time"

	"rental/internal/core/domain/model/car"
	"rental/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// CarDTO mirrors the cars table. Status is the registry's active flag.
type CarDTO struct {
	ID            int64           `gorm:"primaryKey"`
	Brand         string          `gorm:"type:varchar(60)"`
	Model         string          `gorm:"type:varchar(60)"`
	Plate         string          `gorm:"type:varchar(8);uniqueIndex"`
	DailyPrice    decimal.Decimal `gorm:"type:numeric(12,2)"`
	Status        bool            `gorm:"not null;default:true"`
	InactivatedAt *time.Time      `gorm:"type:timestamptz"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (CarDTO) TableName() string {
	return "cars"
}

func toDomain(dto CarDTO) (car.Car, error) {
	activity, err := kernel.RestoreActivity(dto.Status, dto.InactivatedAt)
	if err != nil {
		return car.Car{}, err
	}
	return car.RestoreCar(dto.ID, dto.Brand, dto.Model, dto.Plate, dto.DailyPrice, activity)
}
