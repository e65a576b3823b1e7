package orderrepo

import (
	"context"
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/settlement"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
//
// Status writes are conditional: the WHERE clause re-checks the status (or
// the rider assignment) the caller observed, so concurrent writers race at
// the database and exactly one wins.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order with its line items to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves a changed order, but only while the stored status still equals
// expected. Line items never change after creation and are not touched.
func (r *GormOrderRepository) Update(
	ctx context.Context,
	aggregate *order.Order,
	expected order.Status,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if err := expected.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND status = ?", dto.ID, expected.String()).
		Updates(map[string]any{
			"status":       dto.Status,
			"rider_id":     dto.RiderID,
			"completed_at": dto.CompletedAt,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return r.conditionalWriteFailure(ctx, aggregate.ID(),
			errs.NewStateConflictError(
				fmt.Sprintf("order %s is no longer %s", aggregate.ID(), expected)))
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Assign persists an exclusive rider claim. The write applies only while the
// stored row is still unassigned and in a claimable status, so of any number
// of concurrent claimants exactly one succeeds.
func (r *GormOrderRepository) Assign(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND rider_id IS NULL AND status IN ?",
			dto.ID, []string{order.Pending.String(), order.Accepted.String()}).
		Updates(map[string]any{
			"status":   dto.Status,
			"rider_id": dto.RiderID,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return r.conditionalWriteFailure(ctx, aggregate.ID(),
			fmt.Errorf("%w: order %s", order.ErrAlreadyAssigned, aggregate.ID()))
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order with its line items by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).Preload("Items").First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAvailable retrieves the matching pool: orders accepted by their store
// and not yet claimed by any rider, oldest first.
func (r *GormOrderRepository) GetAvailable(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).Preload("Items").
		Where("status = ? AND rider_id IS NULL", order.Accepted.String()).
		Order("created_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetCompletedInWindow retrieves orders completed within the window, bounds
// inclusive at day granularity.
func (r *GormOrderRepository) GetCompletedInWindow(
	ctx context.Context,
	window settlement.Window,
) ([]*order.Order, error) {
	if err := window.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrderDTO
	err := r.db.WithContext(ctx).Preload("Items").
		Where("status = ? AND completed_at >= ? AND completed_at < ?",
			order.Completed.String(), window.Start(), window.EndExclusive()).
		Order("completed_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

func toDomainSlice(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, aggregate)
	}

	return orders, nil
}

// conditionalWriteFailure distinguishes a lost race from a missing row after
// a conditional update matched nothing.
func (r *GormOrderRepository) conditionalWriteFailure(
	ctx context.Context,
	id kernel.UUID,
	conflict error,
) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ?", id.Bytes()).
		Count(&count).Error; err != nil {
		return err
	}

	if count == 0 {
		return errs.NewObjectNotFoundError("order", id.String())
	}
	return conflict
}
