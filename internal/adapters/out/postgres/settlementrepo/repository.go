package settlementrepo

import (
	"context"
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/settlement"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormSettlementRepository implements SettlementRepository using GORM.
//
// Paid settlements are payment records: the only destructive operation,
// DeletePendingByWindow, filters on the Pending status at the SQL level so a
// paid row can never be removed regardless of what the caller believes.
type GormSettlementRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormSettlementRepository creates a new GORM settlement repository.
func NewGormSettlementRepository(db *gorm.DB, tracker aggregateTracker) *GormSettlementRepository {
	return &GormSettlementRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new settlement to the database.
func (r *GormSettlementRepository) Add(ctx context.Context, aggregate *settlement.Settlement) error {
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

// Update saves a changed settlement, but only while the stored status still
// equals expected.
func (r *GormSettlementRepository) Update(
	ctx context.Context,
	aggregate *settlement.Settlement,
	expected settlement.Status,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if err := expected.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&SettlementDTO{}).
		Where("id = ? AND status = ?", dto.ID, expected.String()).
		Update("status", dto.Status)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&SettlementDTO{}).
			Where("id = ?", dto.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("settlement", aggregate.ID().String())
		}
		return errs.NewStateConflictError(
			fmt.Sprintf("settlement %s is no longer %s", aggregate.ID(), expected))
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a settlement by ID.
func (r *GormSettlementRepository) Get(ctx context.Context, id kernel.UUID) (*settlement.Settlement, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto SettlementDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("settlement", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByWindow retrieves every settlement generated for exactly this window,
// any status.
func (r *GormSettlementRepository) GetByWindow(
	ctx context.Context,
	window settlement.Window,
) ([]*settlement.Settlement, error) {
	if err := window.Validate(); err != nil {
		return nil, err
	}

	var dtos []SettlementDTO
	err := r.db.WithContext(ctx).
		Where("window_start = ? AND window_end = ?", window.Start(), window.End()).
		Order("rider_id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetByRider retrieves a rider's settlements, newest window first.
func (r *GormSettlementRepository) GetByRider(
	ctx context.Context,
	riderID kernel.UUID,
) ([]*settlement.Settlement, error) {
	if err := riderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []SettlementDTO
	err := r.db.WithContext(ctx).
		Where("rider_id = ?", riderID.Bytes()).
		Order("window_start DESC, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// HasPaidInWindow reports whether any settlement for exactly this window is
// already paid.
func (r *GormSettlementRepository) HasPaidInWindow(
	ctx context.Context,
	window settlement.Window,
) (bool, error) {
	if err := window.Validate(); err != nil {
		return false, err
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&SettlementDTO{}).
		Where("window_start = ? AND window_end = ? AND status = ?",
			window.Start(), window.End(), settlement.StatusPaid.String()).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// DeletePendingByWindow removes the Pending settlements generated for exactly
// this window. Paid settlements are left untouched.
func (r *GormSettlementRepository) DeletePendingByWindow(
	ctx context.Context,
	window settlement.Window,
) error {
	if err := window.Validate(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Where("window_start = ? AND window_end = ? AND status = ?",
			window.Start(), window.End(), settlement.StatusPending.String()).
		Delete(&SettlementDTO{}).Error
}

func toDomainSlice(dtos []SettlementDTO) ([]*settlement.Settlement, error) {
	settlements := make([]*settlement.Settlement, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		settlements = append(settlements, aggregate)
	}

	return settlements, nil
}
