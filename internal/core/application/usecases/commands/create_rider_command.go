package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// ErrCreateRiderCommandIsNotConstructed is returned when handling a
// CreateRiderCommand that bypassed the constructor.
var ErrCreateRiderCommandIsNotConstructed = errors.New(
	"CreateRiderCommand must be created via NewCreateRiderCommand constructor",
)

// CreateRiderCommand represents registering a new delivery rider.
type CreateRiderCommand struct { //nolint:recvcheck //using for validation
	riderID kernel.UUID
	name    string

	guard guard.ConstructorGuard
}

// NewCreateRiderCommand creates a rider registration command.
func NewCreateRiderCommand(riderID kernel.UUID, name string) (CreateRiderCommand, error) {
	riderCommand := CreateRiderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		riderCommand.setRiderID(riderID),
		riderCommand.setName(name),
	); err != nil {
		return CreateRiderCommand{}, err
	}

	return riderCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateRiderCommand) Validate() error {
	return c.guard.Validate(ErrCreateRiderCommandIsNotConstructed)
}

// RiderID returns the new rider's identifier.
func (c CreateRiderCommand) RiderID() kernel.UUID {
	return c.riderID
}

// Name returns the rider's display name.
func (c CreateRiderCommand) Name() string {
	return c.name
}

func (c *CreateRiderCommand) setRiderID(riderID kernel.UUID) error {
	if err := riderID.Validate(); err != nil {
		return err
	}

	c.riderID = riderID
	return nil
}

func (c *CreateRiderCommand) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}

	c.name = name
	return nil
}
