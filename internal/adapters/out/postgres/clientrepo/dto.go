// Package clientrepo reads clients from the client registry tables.
package clientrepo

import (
	"time"

	"rental/internal/core/domain/model/client"
	"rental/internal/core/domain/model/kernel"
)

type ClientDTO struct {
	ID            int64      `gorm:"primaryKey"`
	Name          string     `gorm:"type:varchar(120)"`
	CPF           string     `gorm:"column:cpf;type:varchar(14);uniqueIndex"`
	Email         string     `gorm:"type:varchar(254)"`
	Status        bool       `gorm:"not null;default:true"`
	InactivatedAt *time.Time `gorm:"type:timestamptz"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (ClientDTO) TableName() string {
	return "clients"
}

func toDomain(dto ClientDTO) (client.Client, error) {
	activity, err := kernel.RestoreActivity(dto.Status, dto.InactivatedAt)
	if err != nil {
		return client.Client{}, err
	}
	return client.RestoreClient(dto.ID, dto.Name, dto.CPF, dto.Email, activity)
}
