package store

// Health abstracts the liveness check against the backing store.
type Health interface {
	// Ping verifies the database connection is usable.
	Ping() error
}
