// Package services contains stateless domain services: logic that spans
// several aggregates and therefore belongs to none of them. Services here are
// pure — they take aggregates and values in and return aggregates and values
// out, leaving persistence and transactions to the application layer.
package services
