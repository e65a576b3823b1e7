package cartrepo

import (
	"context"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCartRepository implements CartRepository using GORM.
//
// Save is a wholesale replace of the shopper's rows. It must run inside the
// caller's transaction so a checkout that empties the cart and creates the
// orders commits or rolls back as one.
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GORM cart repository.
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// Get retrieves a shopper's cart. A shopper with no stored lines gets a
// not-found error; an empty cart and a never-used cart are the same thing.
func (r *GormCartRepository) Get(ctx context.Context, userID kernel.UUID) (*cart.Cart, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}

	var dtos []LineDTO
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID.Bytes()).
		Order("product_id, option_id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	if len(dtos) == 0 {
		return nil, errs.NewObjectNotFoundError("cart", userID.String())
	}

	return toDomain(userID, dtos)
}

// Save persists the cart's current lines, replacing whatever was stored
// before. Saving an empty cart clears it.
func (r *GormCartRepository) Save(ctx context.Context, aggregate *cart.Cart) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	if err := db.Where("user_id = ?", aggregate.UserID().Bytes()).
		Delete(&LineDTO{}).Error; err != nil {
		return err
	}

	dtos := fromDomain(aggregate)
	if len(dtos) == 0 {
		return nil
	}

	return db.Create(&dtos).Error
}
