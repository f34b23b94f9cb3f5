// Package store defines the storage interfaces consumed by the ticketd
// server. Implementations live in the gorm subpackage; tests substitute
// in-memory or mock implementations.
package store
