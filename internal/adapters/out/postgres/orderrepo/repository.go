package orderrepo

import (
	"context"
	"errors"

	"rental/internal/adapters/out/postgres/migrations"
	"rental/internal/core/domain/model/kernel"
	"rental/internal/core/domain/model/order"
	"rental/internal/core/domain/services"
	"rental/internal/pkg/errs"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts a new order. Losing a race on the partial unique indexes is
// reported as errs.IneligibleError, the same way the eligibility checker
// reports it.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return mapWriteError(aggregate, err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes every column of an existing order except created_at.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return mapWriteError(aggregate, result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.get(r.db.WithContext(ctx), id)
}

// GetForUpdate takes a row lock that is held until the surrounding
// transaction ends. Outside a transaction the lock is released immediately.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormOrderRepository) FindOpenOrApprovedByCarID(ctx context.Context, carID int64) (*order.Order, error) {
	return r.findOne(ctx, "car", carID,
		"car_id = ? AND status IN ?", carID, []string{order.Open.String(), order.Approved.String()})
}

func (r *GormOrderRepository) FindOpenByClientID(ctx context.Context, clientID int64) (*order.Order, error) {
	return r.findOne(ctx, "client", clientID,
		"client_id = ? AND status = ?", clientID, order.Open.String())
}

func (r *GormOrderRepository) FindOpenOrApprovedByClientID(ctx context.Context, clientID int64) (*order.Order, error) {
	return r.findOne(ctx, "client", clientID,
		"client_id = ? AND status IN ?", clientID, []string{order.Open.String(), order.Approved.String()})
}

func (r *GormOrderRepository) get(tx *gorm.DB, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := tx.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormOrderRepository) findOne(
	ctx context.Context,
	entity string,
	entityID int64,
	query string,
	args ...any,
) (*order.Order, error) {
	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Where(query, args...).
		Order("created_at DESC").
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order for "+entity, entityID)
		}
		return nil, err
	}

	return toDomain(dto)
}

func mapWriteError(aggregate *order.Order, err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.UniqueViolation {
		return err
	}

	switch pgErr.ConstraintName {
	case migrations.CarActiveOrderIndex:
		return errs.NewIneligibleError("car", aggregate.CarID(), services.ReasonCarAlreadyInOrder)
	case migrations.ClientOpenOrderIndex:
		return errs.NewIneligibleError("client", aggregate.ClientID(), services.ReasonClientHasOrder)
	default:
		return err
	}
}
