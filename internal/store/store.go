// Package store implements the persisted state layer of the Sarthi portal:
// the identity store, the application ledger and the notification ledger.
// Each store owns its in-memory state exclusively, serializes the whole
// state into one durable slot after every mutation, and reads it back at
// construction time. Stores never call back into their consumers.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/scheme-sarthi/sarthi/internal/logging"
	"github.com/scheme-sarthi/sarthi/internal/repositories/slots"
)

// Slot names. One durable slot per store, plus the registered-user ledger
// which is shared by the identity operations only.
const (
	SlotAuth          = "sarthi-auth"
	SlotUsers         = "sarthi-users"
	SlotApplications  = "sarthi-applications"
	SlotNotifications = "sarthi-notifications"
)

// slotVersion tags every persisted envelope. The slot shape has changed
// before (mock seed vs. registered-ledger split), so the tag is reserved for
// migrating old payloads when it changes again.
const slotVersion = 1

var (
	// ErrValidation marks malformed input: a registration without a mobile
	// number, an application without a user or service name.
	ErrValidation = errors.New("validation error")

	// ErrNotFound marks operations that target an unknown record id.
	// Reportable but non-fatal: callers may ignore it.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateMobile marks a profile update that would reuse another
	// user's mobile number.
	ErrDuplicateMobile = errors.New("mobile number already registered")
)

// envelope wraps persisted state with the version tag.
type envelope struct {
	Version int             `json:"version"`
	State   json.RawMessage `json:"state"`
}

// loadSlot reads and decodes a store's slot. The second result reports
// whether the slot existed at all, so first-run seeding can be told apart
// from a reset.
//
// Failure policy: a read error or undecodable content never crashes the
// caller. Both degrade to the zero state with found=true and a warning on
// the observability channel, so the store comes up empty instead of broken.
func loadSlot[T any](ctx context.Context, repo slots.Repository, key string, log logging.Logger) (state T, found bool) {
	raw, err := repo.Get(ctx, key)
	if err != nil {
		log.Warn(ctx, "slot read failed, using initial state", "slot", key, "err", err)
		return state, true
	}
	if raw == nil {
		return state, false
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		log.Warn(ctx, "slot corrupt, using initial state", "slot", key, "err", err)
		return state, true
	}
	if err := json.Unmarshal(env.State, &state); err != nil {
		log.Warn(ctx, "slot state corrupt, using initial state", "slot", key, "err", err)
		var zero T
		return zero, true
	}
	return state, true
}

// saveSlot serializes state into its envelope and durably replaces the slot.
func saveSlot[T any](ctx context.Context, repo slots.Repository, key string, state T) error {
	rawState, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal state for slot[%s]: %w", key, err)
	}
	raw, err := json.Marshal(envelope{Version: slotVersion, State: rawState})
	if err != nil {
		return fmt.Errorf("failed to marshal envelope for slot[%s]: %w", key, err)
	}
	return repo.Set(ctx, key, raw)
}
