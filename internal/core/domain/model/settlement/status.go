package settlement

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Status is the payment lifecycle state of a settlement.
type Status int

const (
	// StatusUnknown is the invalid zero value.
	StatusUnknown Status = iota
	// StatusPending means the settlement awaits payment and may still be
	// replaced by a regeneration of its window.
	StatusPending
	// StatusPaid means the commission was paid out. Paid settlements are
	// immutable payment records and are never deleted or regenerated.
	StatusPaid
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusPending: "Pending",
		StatusPaid:    "Paid",
	}
}

// StatusFromString parses a status from its canonical string form.
func StatusFromString(raw string) (Status, error) {
	for status, name := range getStatusStrings() {
		if name == raw {
			return status, nil
		}
	}

	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"settlement status", fmt.Errorf("unknown status %q", raw))
}

// Validate checks the status is one of the defined lifecycle states.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidError("settlement status")
	}

	return nil
}

// String implements fmt.Stringer.
func (s Status) String() string {
	if name, ok := getStatusStrings()[s]; ok {
		return name
	}

	return "Unknown"
}
