package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/settlement"
	"marketplace/internal/pkg/guard"
)

// ErrGenerateSettlementsCommandIsNotConstructed is returned when handling a
// GenerateSettlementsCommand that bypassed the constructor.
var ErrGenerateSettlementsCommandIsNotConstructed = errors.New(
	"GenerateSettlementsCommand must be created via NewGenerateSettlementsCommand constructor",
)

// GenerateSettlementsCommand represents a request to (re)generate the
// settlements of one window. The weekly scheduler and the manual trigger
// both issue this command; the window says which days, not who asked.
type GenerateSettlementsCommand struct { //nolint:recvcheck //using for validation
	window settlement.Window

	guard guard.ConstructorGuard
}

// NewGenerateSettlementsCommand creates a generation command for a window.
func NewGenerateSettlementsCommand(window settlement.Window) (GenerateSettlementsCommand, error) {
	generateCommand := GenerateSettlementsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := generateCommand.setWindow(window); err != nil {
		return GenerateSettlementsCommand{}, err
	}

	return generateCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c GenerateSettlementsCommand) Validate() error {
	return c.guard.Validate(ErrGenerateSettlementsCommandIsNotConstructed)
}

// Window returns the date range to settle.
func (c GenerateSettlementsCommand) Window() settlement.Window {
	return c.window
}

func (c *GenerateSettlementsCommand) setWindow(window settlement.Window) error {
	if err := window.Validate(); err != nil {
		return err
	}

	c.window = window
	return nil
}
