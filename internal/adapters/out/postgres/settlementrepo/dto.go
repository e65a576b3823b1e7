// Package settlementrepo provides data transfer objects and mapping functions
// for settlement persistence. Settlements reference their source orders by id
// only, stored as a text array, so later order reads never affect a generated
// settlement.
package settlementrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/settlement"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// SettlementDTO represents the database structure for persisting settlement
// aggregates. The window bounds are stored as dates; two settlements belong
// to the same window exactly when both bounds match.
type SettlementDTO struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	RiderID     uuid.UUID      `gorm:"type:uuid;index"`
	WindowStart time.Time      `gorm:"type:date;index"`
	WindowEnd   time.Time      `gorm:"type:date"`
	OrderIDs    pq.StringArray `gorm:"type:text[]"`
	OrderCount  int
	Commission  int64
	Status      string
	CreatedAt   time.Time
}

// TableName specifies the database table name for settlement entities.
func (SettlementDTO) TableName() string {
	return "settlements"
}

// fromDomain converts a settlement aggregate to its database representation.
func fromDomain(aggregate *settlement.Settlement) SettlementDTO {
	orderIDs := make(pq.StringArray, 0, aggregate.OrderCount())
	for _, orderID := range aggregate.OrderIDs() {
		orderIDs = append(orderIDs, orderID.String())
	}

	return SettlementDTO{
		ID:          aggregate.ID().Bytes(),
		RiderID:     aggregate.RiderID().Bytes(),
		WindowStart: aggregate.Window().Start(),
		WindowEnd:   aggregate.Window().End(),
		OrderIDs:    orderIDs,
		OrderCount:  aggregate.OrderCount(),
		Commission:  aggregate.Commission(),
		Status:      aggregate.Status().String(),
		CreatedAt:   aggregate.CreatedAt(),
	}
}

// toDomain converts a database DTO to a settlement aggregate without
// recomputing the commission snapshot.
func toDomain(dto SettlementDTO) (*settlement.Settlement, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	riderID, err := kernel.UUIDFromBytes(dto.RiderID[:])
	if err != nil {
		return nil, err
	}

	window, err := settlement.NewWindow(dto.WindowStart, dto.WindowEnd)
	if err != nil {
		return nil, err
	}

	orderIDs := make([]kernel.UUID, 0, len(dto.OrderIDs))
	for _, raw := range dto.OrderIDs {
		orderID, idErr := kernel.UUIDFromString(raw)
		if idErr != nil {
			return nil, idErr
		}
		orderIDs = append(orderIDs, orderID)
	}

	status, err := settlement.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return settlement.RestoreSettlement(
		id, riderID, window, orderIDs, dto.Commission, status, dto.CreatedAt)
}
