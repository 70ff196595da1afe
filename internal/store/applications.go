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

// ApplicationState is the collection persisted into the applications slot.
type ApplicationState struct {
	Applications []models.Application `json:"applications"`
}

// ApplicationLedger owns the append-growing collection of submitted
// applications. Records are never deleted and never reordered; only the
// status field moves, and only forward.
type ApplicationLedger struct {
	db  *sql.DB
	ids idgen.Generator
	log logging.Logger
	now func() time.Time

	mu    sync.Mutex
	state ApplicationState
}

// NewApplicationLedger builds the ledger and restores its collection from
// the applications slot. A missing or corrupt slot yields an empty ledger.
func NewApplicationLedger(ctx context.Context, db *sql.DB, ids idgen.Generator, log logging.Logger) *ApplicationLedger {
	if log == nil {
		log = logging.NopLogger{}
	}
	if ids == nil {
		ids = idgen.NewPrefixed("APP")
	}

	l := &ApplicationLedger{db: db, ids: ids, log: log, now: time.Now}
	l.state, _ = loadSlot[ApplicationState](ctx, l.slotRepo(), SlotApplications, log)
	return l
}

func (l *ApplicationLedger) slotRepo() slots.Repository {
	return slots.NewSQLiteRepository(l.db)
}

// Add stamps id, submission date and the initial submitted status onto
// draft, appends it and persists the collection. The created record is
// returned. UserID and ServiceName are required.
func (l *ApplicationLedger) Add(ctx context.Context, draft models.Application) (models.Application, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if draft.UserID == "" {
		return models.Application{}, fmt.Errorf("%w: userId is required", ErrValidation)
	}
	if draft.ServiceName == "" {
		return models.Application{}, fmt.Errorf("%w: serviceName is required", ErrValidation)
	}

	app := draft
	app.ID = l.ids.NewID()
	app.DateApplied = l.now()
	app.Status = models.StatusSubmitted

	newState := ApplicationState{Applications: append(l.state.Applications, app)}
	if err := saveSlot(ctx, l.slotRepo(), SlotApplications, newState); err != nil {
		return models.Application{}, fmt.Errorf("failed to persist application: %w", err)
	}

	l.state = newState
	return app, nil
}

// UpdateStatus advances the status of the application with the given id.
// The status machine only moves forward: submitted -> in-review ->
// {approved, rejected}. Backward moves, exits from terminal states and
// unknown status values are rejected; an unknown id is reported as a
// non-fatal not-found error.
func (l *ApplicationLedger) UpdateStatus(ctx context.Context, id string, status models.Status) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !status.Valid() {
		return fmt.Errorf("%w: %q", models.ErrUnknownStatus, status)
	}

	idx := -1
	for i := range l.state.Applications {
		if l.state.Applications[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return fmt.Errorf("application %s: %w", id, ErrNotFound)
	}

	current := l.state.Applications[idx].Status
	if !current.CanAdvance(status) {
		return fmt.Errorf("%w: %s -> %s", models.ErrInvalidTransition, current, status)
	}

	newState := ApplicationState{Applications: make([]models.Application, len(l.state.Applications))}
	copy(newState.Applications, l.state.Applications)
	newState.Applications[idx].Status = status

	if err := saveSlot(ctx, l.slotRepo(), SlotApplications, newState); err != nil {
		return fmt.Errorf("failed to persist status update: %w", err)
	}

	l.state = newState
	return nil
}

// ByUser returns the user's applications in insertion order. A pure read:
// no side effects, safe to call repeatedly.
func (l *ApplicationLedger) ByUser(userID string) []models.Application {
	l.mu.Lock()
	defer l.mu.Unlock()

	var result []models.Application
	for _, app := range l.state.Applications {
		if app.UserID == userID {
			result = append(result, app)
		}
	}
	return result
}

// Reload replaces the in-memory collection with the slot content. Used when
// another program instance may have written the shared database; until it
// is called, this instance keeps its possibly stale view (last writer wins).
func (l *ApplicationLedger) Reload(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.state, _ = loadSlot[ApplicationState](ctx, l.slotRepo(), SlotApplications, l.log)
}
