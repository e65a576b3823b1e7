package queries

import (
	"context"
	"database/sql"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListOrdersQueryHandler reads the order book straight from the database as
// flat rows, skipping aggregate reconstruction.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListOrdersQueryHandler creates a handler for order listings.
func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle executes the listing query scoped to the actor's role, newest
// orders first.
func (h ListOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListOrdersQuery,
) ([]ListOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sqlQuery := `
		SELECT
			id,
			user_id,
			store_id,
			status,
			total_price,
			rider_id,
			created_at,
			completed_at
		FROM orders
	`
	var args []any

	actor := query.Actor()
	switch {
	case actor.Is(kernel.RoleShopper):
		sqlQuery += ` WHERE user_id = ?`
		args = append(args, actor.ID().Bytes())
	case actor.Is(kernel.RoleRider):
		sqlQuery += ` WHERE rider_id = ?`
		args = append(args, actor.ID().Bytes())
	case query.StoreID() != nil:
		sqlQuery += ` WHERE store_id = ?`
		args = append(args, query.StoreID().Bytes())
	}
	sqlQuery += ` ORDER BY created_at DESC, id`

	rows, err := h.db.WithContext(ctx).Raw(sqlQuery, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]ListOrdersQueryResponse, 0)
	for rows.Next() {
		var (
			resp        ListOrdersQueryResponse
			id          uuid.UUID
			userID      uuid.UUID
			storeID     uuid.UUID
			status      string
			riderID     uuid.NullUUID
			completedAt sql.NullTime
		)

		if err = rows.Scan(
			&id,
			&userID,
			&storeID,
			&status,
			&resp.TotalPrice,
			&riderID,
			&resp.CreatedAt,
			&completedAt,
		); err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.UserID, err = kernel.UUIDFromBytes(userID[:]); err != nil {
			return nil, err
		}
		if resp.StoreID, err = kernel.UUIDFromBytes(storeID[:]); err != nil {
			return nil, err
		}
		if resp.Status, err = order.StatusFromString(status); err != nil {
			return nil, err
		}
		if riderID.Valid {
			rid, idErr := kernel.UUIDFromBytes(riderID.UUID[:])
			if idErr != nil {
				return nil, idErr
			}
			resp.RiderID = &rid
		}
		if completedAt.Valid {
			stamp := completedAt.Time
			resp.CompletedAt = &stamp
		}

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
