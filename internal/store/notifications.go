package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/scheme-sarthi/sarthi/internal/idgen"
	"github.com/scheme-sarthi/sarthi/internal/logging"
	"github.com/scheme-sarthi/sarthi/internal/models"
	"github.com/scheme-sarthi/sarthi/internal/repositories/slots"
)

// NotificationState is the collection persisted into the notifications slot.
// Order is newest-first: new notifications are prepended.
type NotificationState struct {
	Notifications []models.Notification `json:"notifications"`
}

// NotificationLedger owns the user-addressed notifications and their read
// state.
type NotificationLedger struct {
	db  *sql.DB
	ids idgen.Generator
	log logging.Logger
	now func() time.Time

	mu    sync.Mutex
	state NotificationState
}

// NewNotificationLedger builds the ledger. On the very first load, when the
// slot does not exist yet, the collection is seeded with the fixed default
// notifications and persisted. A corrupt slot degrades to an empty
// collection instead (no re-seeding over a damaged one).
func NewNotificationLedger(ctx context.Context, db *sql.DB, ids idgen.Generator, log logging.Logger) *NotificationLedger {
	if log == nil {
		log = logging.NopLogger{}
	}
	if ids == nil {
		ids = idgen.NewPrefixed("NTF")
	}

	l := &NotificationLedger{db: db, ids: ids, log: log, now: time.Now}

	state, found := loadSlot[NotificationState](ctx, l.slotRepo(), SlotNotifications, log)
	if !found {
		state = NotificationState{Notifications: seedNotifications(l.now())}
		if err := saveSlot(ctx, l.slotRepo(), SlotNotifications, state); err != nil {
			log.Error(ctx, "failed to persist seed notifications", "err", err)
		}
	}
	l.state = state
	return l
}

func (l *NotificationLedger) slotRepo() slots.Repository {
	return slots.NewSQLiteRepository(l.db)
}

// Add stamps id and timestamp onto draft, marks it unread, prepends it
// (newest-first) and persists the collection. UserID and Title are required.
func (l *NotificationLedger) Add(ctx context.Context, draft models.Notification) (models.Notification, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if draft.UserID == "" {
		return models.Notification{}, fmt.Errorf("%w: userId is required", ErrValidation)
	}
	if draft.Title == "" {
		return models.Notification{}, fmt.Errorf("%w: title is required", ErrValidation)
	}

	n := draft
	n.ID = l.ids.NewID()
	n.Timestamp = l.now()
	n.Read = false

	newState := NotificationState{
		Notifications: append([]models.Notification{n}, l.state.Notifications...),
	}
	if err := saveSlot(ctx, l.slotRepo(), SlotNotifications, newState); err != nil {
		return models.Notification{}, fmt.Errorf("failed to persist notification: %w", err)
	}

	l.state = newState
	return n, nil
}

// MarkRead flips the read flag of the matching notification to true and
// persists. Read never flips back. An unknown id is reported as a non-fatal
// not-found error.
func (l *NotificationLedger) MarkRead(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := -1
	for i := range l.state.Notifications {
		if l.state.Notifications[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return fmt.Errorf("notification %s: %w", id, ErrNotFound)
	}
	if l.state.Notifications[idx].Read {
		return nil
	}

	newState := NotificationState{Notifications: make([]models.Notification, len(l.state.Notifications))}
	copy(newState.Notifications, l.state.Notifications)
	newState.Notifications[idx].Read = true

	if err := saveSlot(ctx, l.slotRepo(), SlotNotifications, newState); err != nil {
		return fmt.Errorf("failed to persist read state: %w", err)
	}

	l.state = newState
	return nil
}

// ByUser returns the user's notifications preserving store order
// (newest-first). A pure read with no side effects.
func (l *NotificationLedger) ByUser(userID string) []models.Notification {
	l.mu.Lock()
	defer l.mu.Unlock()

	var result []models.Notification
	for _, n := range l.state.Notifications {
		if n.UserID == userID {
			result = append(result, n)
		}
	}
	return result
}

// Reload replaces the in-memory collection with the slot content, converging
// with whatever another instance last wrote.
func (l *NotificationLedger) Reload(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.state, _ = loadSlot[NotificationState](ctx, l.slotRepo(), SlotNotifications, l.log)
}
