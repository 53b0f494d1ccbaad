package clientrepo

import (
	"context"
	"errors"

	"rental/internal/core/domain/model/client"
	"rental/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormClientRepository struct {
	db *gorm.DB
}

func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

func (r *GormClientRepository) Get(ctx context.Context, id int64) (client.Client, error) {
	return r.get(r.db.WithContext(ctx), id)
}

// GetForUpdate locks the client row until the surrounding transaction ends.
// Eligibility checks for one client are serialized through this lock.
func (r *GormClientRepository) GetForUpdate(ctx context.Context, id int64) (client.Client, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormClientRepository) get(tx *gorm.DB, id int64) (client.Client, error) {
	var dto ClientDTO
	if err := tx.First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return client.Client{}, errs.NewObjectNotFoundError("client", id)
		}
		return client.Client{}, err
	}

	return toDomain(dto)
}
