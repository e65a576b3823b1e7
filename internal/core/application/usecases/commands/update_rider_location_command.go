package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

// ErrUpdateRiderLocationCommandIsNotConstructed is returned when handling an
// UpdateRiderLocationCommand that bypassed the constructor.
var ErrUpdateRiderLocationCommandIsNotConstructed = errors.New(
	"UpdateRiderLocationCommand must be created via NewUpdateRiderLocationCommand constructor",
)

// UpdateRiderLocationCommand represents a rider reporting a new position.
// The position feeds the proximity ranking of available orders.
type UpdateRiderLocationCommand struct { //nolint:recvcheck //using for validation
	riderID  kernel.UUID
	location kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewUpdateRiderLocationCommand creates a location report command.
func NewUpdateRiderLocationCommand(
	riderID kernel.UUID,
	location kernel.GeoPoint,
) (UpdateRiderLocationCommand, error) {
	locationCommand := UpdateRiderLocationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		locationCommand.setRiderID(riderID),
		locationCommand.setLocation(location),
	); err != nil {
		return UpdateRiderLocationCommand{}, err
	}

	return locationCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateRiderLocationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateRiderLocationCommandIsNotConstructed)
}

// RiderID returns the reporting rider's identifier.
func (c UpdateRiderLocationCommand) RiderID() kernel.UUID {
	return c.riderID
}

// Location returns the reported position.
func (c UpdateRiderLocationCommand) Location() kernel.GeoPoint {
	return c.location
}

func (c *UpdateRiderLocationCommand) setRiderID(riderID kernel.UUID) error {
	if err := riderID.Validate(); err != nil {
		return err
	}

	c.riderID = riderID
	return nil
}

func (c *UpdateRiderLocationCommand) setLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}

	c.location = location
	return nil
}
