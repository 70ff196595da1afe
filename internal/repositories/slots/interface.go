// Package slots implements the durable key/value slots backing the Sarthi
// stores. Each store serializes its whole state into one named slot after
// every mutation and reads it back at startup.
package slots

import "context"

// Repository is the persistence adapter contract. The medium is passive: it
// does not own state, it only mirrors whatever a store last wrote to a key.
type Repository interface {
	// Get returns the raw slot content, or (nil, nil) when the slot is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set durably replaces the slot content. The write is a single upsert:
	// either the whole value lands or the previous value remains.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes a slot. Deleting an absent slot is not an error.
	Delete(ctx context.Context, key string) error

	// Clear removes every slot.
	Clear(ctx context.Context) error

	// List returns all slots keyed by name.
	List(ctx context.Context) (map[string][]byte, error)
}
