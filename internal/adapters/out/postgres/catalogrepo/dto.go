// Package catalogrepo reads the product catalog: products, their options,
// and the stores that own them. The core consumes it through the Catalog
// port; nothing here is ever written by this service.
package catalogrepo

import (
	"github.com/google/uuid"
)

// ProductDTO represents one sellable product owned by a store. Price is the
// base unit price in minor currency units.
type ProductDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	StoreID uuid.UUID `gorm:"type:uuid;index"`
	Name    string
	Price   int64
}

// TableName specifies the database table name for products.
func (ProductDTO) TableName() string {
	return "products"
}

// ProductOptionDTO represents one selectable variant of a product. Price is
// the full unit price of the variant, not a delta on the base price.
type ProductOptionDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID `gorm:"type:uuid;index"`
	Name      string
	Price     int64
}

// TableName specifies the database table name for product options.
func (ProductOptionDTO) TableName() string {
	return "product_options"
}

// StoreDTO represents a store. The pickup location is optional.
type StoreDTO struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string
	Lat  *float64
	Lng  *float64
}

// TableName specifies the database table name for stores.
func (StoreDTO) TableName() string {
	return "stores"
}
