package order

import (
	"errors"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// ErrDestinationIsNotConstructed is returned when using an improperly
// initialized Destination.
var ErrDestinationIsNotConstructed = errs.NewValueIsRequiredError(
	"destination must be created via NewDestination constructor")

// Destination captures where and to whom an order is delivered, plus the
// shopper's requested delivery window. The day and time labels are opaque
// strings chosen by the shopper ("Tuesday", "18:00-20:00"); the core only
// stores and echoes them.
type Destination struct { //nolint:recvcheck //using for validation
	address       string
	receiverName  string
	receiverPhone string
	dayLabel      string
	timeLabel     string

	guard guard.ConstructorGuard
}

// NewDestination creates a Destination. Address, receiver name, and receiver
// phone are required; the window labels may be empty.
func NewDestination(address, receiverName, receiverPhone, dayLabel, timeLabel string) (Destination, error) {
	dest := Destination{
		dayLabel:  dayLabel,
		timeLabel: timeLabel,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		dest.setAddress(address),
		dest.setReceiverName(receiverName),
		dest.setReceiverPhone(receiverPhone),
	); err != nil {
		return Destination{}, err
	}

	return dest, nil
}

// Validate checks that the Destination was created through NewDestination.
func (d Destination) Validate() error {
	return d.guard.Validate(ErrDestinationIsNotConstructed)
}

// Address returns the delivery address.
func (d Destination) Address() string {
	return d.address
}

// ReceiverName returns the recipient's name.
func (d Destination) ReceiverName() string {
	return d.receiverName
}

// ReceiverPhone returns the recipient's phone number.
func (d Destination) ReceiverPhone() string {
	return d.receiverPhone
}

// DayLabel returns the requested delivery day label.
func (d Destination) DayLabel() string {
	return d.dayLabel
}

// TimeLabel returns the requested delivery time label.
func (d Destination) TimeLabel() string {
	return d.timeLabel
}

func (d *Destination) setAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("address")
	}

	d.address = address
	return nil
}

func (d *Destination) setReceiverName(receiverName string) error {
	if receiverName == "" {
		return errs.NewValueIsRequiredError("receiverName")
	}

	d.receiverName = receiverName
	return nil
}

func (d *Destination) setReceiverPhone(receiverPhone string) error {
	if receiverPhone == "" {
		return errs.NewValueIsRequiredError("receiverPhone")
	}

	d.receiverPhone = receiverPhone
	return nil
}
