package catalogrepo

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCatalog implements the Catalog port against the catalog tables.
type GormCatalog struct {
	db *gorm.DB
}

// NewGormCatalog creates a catalog reader on the given database.
func NewGormCatalog(db *gorm.DB) *GormCatalog {
	return &GormCatalog{db: db}
}

// ResolvePricing turns cart lines into priced order lines. The unit price is
// the current catalog price of the product, or of the chosen option when the
// line selects one; the price lands in the order as a snapshot and later
// catalog changes never affect it.
func (c *GormCatalog) ResolvePricing(
	ctx context.Context,
	lines []cart.Line,
) ([]services.PricedLine, error) {
	priced := make([]services.PricedLine, 0, len(lines))
	for _, line := range lines {
		if err := line.Validate(); err != nil {
			return nil, err
		}

		var product ProductDTO
		err := c.db.WithContext(ctx).
			First(&product, "id = ?", line.ProductID().Bytes()).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errs.NewObjectNotFoundError("product", line.ProductID().String())
			}
			return nil, err
		}

		unitPrice := product.Price
		if optionID := line.OptionID(); optionID != nil {
			var option ProductOptionDTO
			err = c.db.WithContext(ctx).
				First(&option, "id = ? AND product_id = ?",
					optionID.Bytes(), line.ProductID().Bytes()).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, errs.NewObjectNotFoundError("product option", optionID.String())
				}
				return nil, err
			}
			unitPrice = option.Price
		}

		storeID, err := kernel.UUIDFromBytes(product.StoreID[:])
		if err != nil {
			return nil, err
		}

		item, err := order.NewItem(line.ProductID(), line.OptionID(), line.Quantity(), unitPrice)
		if err != nil {
			return nil, err
		}

		priced = append(priced, services.PricedLine{
			StoreID: storeID,
			Item:    item,
		})
	}

	return priced, nil
}

// StoreLocations returns the pickup locations of the given stores. Stores
// without a registered location are simply absent from the result.
func (c *GormCatalog) StoreLocations(
	ctx context.Context,
	storeIDs []kernel.UUID,
) (map[kernel.UUID]kernel.GeoPoint, error) {
	ids := make([]uuid.UUID, 0, len(storeIDs))
	for _, storeID := range storeIDs {
		if err := storeID.Validate(); err != nil {
			return nil, err
		}
		ids = append(ids, storeID.Bytes())
	}

	var dtos []StoreDTO
	if err := c.db.WithContext(ctx).Find(&dtos, "id IN ?", ids).Error; err != nil {
		return nil, err
	}

	locations := make(map[kernel.UUID]kernel.GeoPoint, len(dtos))
	for _, dto := range dtos {
		if dto.Lat == nil || dto.Lng == nil {
			continue
		}

		storeID, err := kernel.UUIDFromBytes(dto.ID[:])
		if err != nil {
			return nil, err
		}

		point, err := kernel.NewGeoPoint(*dto.Lat, *dto.Lng)
		if err != nil {
			return nil, err
		}
		locations[storeID] = point
	}

	return locations, nil
}
