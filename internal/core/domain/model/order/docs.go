// Package order contains the Order aggregate: one store's portion of a
// checkout, with its own delivery status lifecycle.
//
// The status state machine and its actor-role guards live in status.go; the
// aggregate root in order.go enforces the additional assigned-rider guard and
// stamps the completion timestamp used by settlement windowing. Line items
// carry a unit-price snapshot taken at order time that is never recomputed.
package order
