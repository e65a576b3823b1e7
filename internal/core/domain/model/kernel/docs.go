// Package kernel contains the shared value objects of the marketplace domain:
// UUID identifiers, geographic points with distance calculation, and the
// acting identity (id + role) that guards state transitions.
//
// All value objects are immutable and must be created through their
// constructor functions; zero values fail Validate.
package kernel
