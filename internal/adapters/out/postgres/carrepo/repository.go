package carrepo

import (
	"context"
	"errors"

	"rental/internal/core/domain/model/car"
	"rental/internal/pkg/errs"

	"gorm.io/gorm"
)

type GormCarRepository struct {
	db *gorm.DB
}

func NewGormCarRepository(db *gorm.DB) *GormCarRepository {
	return &GormCarRepository{db: db}
}

// Get returns the car whether it is active or not.
func (r *GormCarRepository) Get(ctx context.Context, id int64) (car.Car, error) {
	var dto CarDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return car.Car{}, errs.NewObjectNotFoundError("car", id)
		}
		return car.Car{}, err
	}

	return toDomain(dto)
}
