// Package riderrepo provides data transfer objects and mapping functions for
// rider persistence. A rider's position is optional: both coordinates are
// null until the rider reports one.
package riderrepo

import (
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/rider"

	"github.com/google/uuid"
)

// RiderDTO represents the database structure for persisting rider aggregates.
type RiderDTO struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string
	Lat  *float64
	Lng  *float64
}

// TableName specifies the database table name for rider entities.
func (RiderDTO) TableName() string {
	return "riders"
}

// fromDomain converts a rider aggregate to its database representation.
func fromDomain(aggregate *rider.Rider) RiderDTO {
	dto := RiderDTO{
		ID:   aggregate.ID().Bytes(),
		Name: aggregate.Name(),
	}

	if location := aggregate.Location(); location != nil {
		lat := location.Lat()
		lng := location.Lng()
		dto.Lat = &lat
		dto.Lng = &lng
	}

	return dto
}

// toDomain converts a database DTO to a rider aggregate.
func toDomain(dto RiderDTO) (*rider.Rider, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var location *kernel.GeoPoint
	if dto.Lat != nil && dto.Lng != nil {
		point, pointErr := kernel.NewGeoPoint(*dto.Lat, *dto.Lng)
		if pointErr != nil {
			return nil, pointErr
		}
		location = &point
	}

	return rider.RestoreRider(id, dto.Name, location)
}
