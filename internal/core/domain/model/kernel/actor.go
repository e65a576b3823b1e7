package kernel

import (
	"errors"
	"fmt"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// Role identifies the kind of participant acting on the marketplace.
// Roles gate order status transitions and settlement operations.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleShopper is a buying customer: creates orders, may cancel pending ones.
	RoleShopper

	// RoleManager runs a store: accepts or cancels the store's orders and may
	// manually reassign riders.
	RoleManager

	// RoleRider delivers orders: claims available orders, starts and completes
	// deliveries it is assigned to.
	RoleRider

	// RoleAdmin operates the marketplace: triggers settlement generation and
	// marks settlements paid.
	RoleAdmin
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown: "Unknown",
		RoleShopper: "Shopper",
		RoleManager: "Manager",
		RoleRider:   "Rider",
		RoleAdmin:   "Admin",
	}
}

func getValidRoleStrings() map[Role]string {
	//nolint:exhaustive // RoleUnknown is intentionally excluded as it's invalid
	return map[Role]string{
		RoleShopper: "Shopper",
		RoleManager: "Manager",
		RoleRider:   "Rider",
		RoleAdmin:   "Admin",
	}
}

// RoleFromString parses a role name as supplied by the identity
// collaborator.
func RoleFromString(raw string) (Role, error) {
	for role, name := range getValidRoleStrings() {
		if name == raw {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause(
		"role", fmt.Errorf("%q is not a valid role", raw))
}

// Validate checks that the Role is one of the defined participant kinds.
func (r Role) Validate() error {
	if _, ok := getValidRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String implements fmt.Stringer. Invalid values render as "Unknown".
func (r Role) String() string {
	if s, ok := getRoleStrings()[r]; ok {
		return s
	}
	return "Unknown"
}

// ErrActorIsNotConstructed is returned when using an improperly initialized Actor.
var ErrActorIsNotConstructed = errs.NewValueIsRequiredError(
	"actor must be created via NewActor constructor")

// Actor is the authenticated caller identity supplied by the identity
// collaborator: who is acting and in which role. The core never resolves
// credentials itself; it only consumes this value object.
type Actor struct { //nolint:recvcheck //using for validation
	id    UUID
	role  Role
	guard guard.ConstructorGuard
}

// NewActor creates an Actor with a valid id and role.
func NewActor(id UUID, role Role) (Actor, error) {
	actor := Actor{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(actor.setID(id), actor.setRole(role)); err != nil {
		return Actor{}, err
	}

	return actor, nil
}

// Validate checks that the Actor was created through NewActor.
func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

// ID returns the actor's identity.
func (a Actor) ID() UUID {
	return a.id
}

// Role returns the actor's role.
func (a Actor) Role() Role {
	return a.role
}

// Is reports whether the actor holds the given role.
func (a Actor) Is(role Role) bool {
	return a.role == role
}

func (a *Actor) setID(id UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	a.id = id
	return nil
}

func (a *Actor) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}

	a.role = role
	return nil
}
