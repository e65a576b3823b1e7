// Package rider contains the Rider aggregate: a delivery worker profile with
// a last known location used to rank available orders by proximity.
package rider

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// ErrRiderIsNotConstructed is returned when a Rider instance was not created
// through the NewRider or RestoreRider factory methods.
var ErrRiderIsNotConstructed = errors.New("Rider must be created via NewRider or RestoreRider constructor")

// Rider is the aggregate root for a delivery worker. Location is optional: a
// rider who never reported a position still sees available orders, just
// without distances.
type Rider struct {
	id       kernel.UUID
	name     string
	location *kernel.GeoPoint

	isConstructed bool
}

// NewRider creates a rider without a known location.
func NewRider(id kernel.UUID, name string) (*Rider, error) {
	rider := &Rider{isConstructed: true}

	if err := errors.Join(
		rider.setID(id),
		rider.setName(name),
	); err != nil {
		return nil, err
	}

	return rider, nil
}

// RestoreRider reconstructs a rider from persistence.
func RestoreRider(id kernel.UUID, name string, location *kernel.GeoPoint) (*Rider, error) {
	rider, err := NewRider(id, name)
	if err != nil {
		return nil, err
	}

	if location != nil {
		if err := location.Validate(); err != nil {
			return nil, err
		}
		point := *location
		rider.location = &point
	}

	return rider, nil
}

// Validate ensures the Rider instance was properly constructed.
func (r *Rider) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRiderIsNotConstructed
	}

	return nil
}

// IsEqual compares two riders by their unique identifiers.
func (r *Rider) IsEqual(other *Rider) bool {
	return other != nil && r.id.IsEqual(other.id)
}

// ID returns the rider's unique identifier.
func (r *Rider) ID() kernel.UUID {
	return r.id
}

// Name returns the rider's display name.
func (r *Rider) Name() string {
	return r.name
}

// Location returns the last reported location, or nil when unknown.
func (r *Rider) Location() *kernel.GeoPoint {
	if r.location == nil {
		return nil
	}
	point := *r.location
	return &point
}

// HasLocation reports whether the rider ever reported a position.
func (r *Rider) HasLocation() bool {
	return r.location != nil
}

// MoveTo updates the rider's last known location.
func (r *Rider) MoveTo(location kernel.GeoPoint) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if err := location.Validate(); err != nil {
		return err
	}

	r.location = &location
	return nil
}

// DistanceKmTo returns the haversine distance from the rider to a point, or
// nil when the rider's location is unknown.
func (r *Rider) DistanceKmTo(point kernel.GeoPoint) (*float64, error) {
	if r.location == nil {
		return nil, nil
	}

	distance, err := r.location.DistanceKm(point)
	if err != nil {
		return nil, err
	}

	return &distance, nil
}

func (r *Rider) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Rider) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	r.name = name
	return nil
}
