// Package settlement contains the Settlement aggregate: a periodic
// aggregation of one rider's completed orders into a payable commission
// record, bounded by an inclusive day-granular window.
//
// Settlements reference orders by id only (a non-owning weak link); orders
// are unaware of which settlement, if any, includes them. Regeneration for a
// window is idempotent and must never destroy a paid settlement.
package settlement
