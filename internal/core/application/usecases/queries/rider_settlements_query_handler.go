package queries

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/settlement"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RiderSettlementsQueryHandler reads a rider's settlement history straight
// from the database, newest window first.
type RiderSettlementsQueryHandler struct {
	db *gorm.DB
}

// NewRiderSettlementsQueryHandler creates a handler for settlement history.
func NewRiderSettlementsQueryHandler(db *gorm.DB) RiderSettlementsQueryHandler {
	return RiderSettlementsQueryHandler{db: db}
}

// Handle executes the history query.
func (h RiderSettlementsQueryHandler) Handle(
	ctx context.Context,
	query RiderSettlementsQuery,
) ([]RiderSettlementsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			window_start,
			window_end,
			order_count,
			commission,
			status,
			created_at
		FROM settlements
		WHERE rider_id = ?
		ORDER BY window_start DESC, id
	`, query.RiderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	settlements := make([]RiderSettlementsQueryResponse, 0)
	for rows.Next() {
		var (
			resp   RiderSettlementsQueryResponse
			id     uuid.UUID
			status string
		)

		if err = rows.Scan(
			&id,
			&resp.WindowStart,
			&resp.WindowEnd,
			&resp.OrderCount,
			&resp.Commission,
			&status,
			&resp.CreatedAt,
		); err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.Status, err = settlement.StatusFromString(status); err != nil {
			return nil, err
		}

		settlements = append(settlements, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return settlements, nil
}
