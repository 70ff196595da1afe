package store

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scheme-sarthi/sarthi/internal/idgen"
	"github.com/scheme-sarthi/sarthi/internal/models"
	"github.com/scheme-sarthi/sarthi/internal/repositories/slots"
)

func TestSlotEnvelope_CarriesVersionTag(t *testing.T) {
	db := setupDB(t)
	l := newAppLedger(t, db)
	ctx := context.Background()

	_, err := l.Add(ctx, models.Application{UserID: "1", ServiceName: "PM Kisan"})
	require.NoError(t, err)

	raw, err := slots.NewSQLiteRepository(db).Get(ctx, SlotApplications)
	require.NoError(t, err)
	require.NotNil(t, raw)

	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env))
	assert.Equal(t, slotVersion, env.Version, "persisted payloads carry the migration tag")

	var state ApplicationState
	require.NoError(t, json.Unmarshal(env.State, &state))
	require.Len(t, state.Applications, 1)
	assert.Equal(t, "1", state.Applications[0].UserID)
}

// Two ledgers over one database model two browser tabs sharing a durable
// slot. The policy is last-writer-wins: the slower writer's state replaces
// the other's in storage, and the other instance's memory silently diverges
// until it reloads.
func TestApplications_TwoInstances_LastWriterWins(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	tabA := newAppLedger(t, db)
	tabB := NewApplicationLedger(ctx, db, idgen.NewSequential("APPB"), nil)

	// Both tabs start empty. Tab A writes first, tab B second; B never saw
	// A's record, so B's write erases it from the slot.
	appA, err := tabA.Add(ctx, models.Application{UserID: "1", ServiceName: "PM Kisan"})
	require.NoError(t, err)
	appB, err := tabB.Add(ctx, models.Application{UserID: "1", ServiceName: "Ayushman Bharat"})
	require.NoError(t, err)

	// Each tab still believes its own view.
	assert.Len(t, tabA.ByUser("1"), 1)
	assert.Equal(t, appA.ID, tabA.ByUser("1")[0].ID)
	assert.Len(t, tabB.ByUser("1"), 1)

	// The slot holds only the last write.
	fresh := NewApplicationLedger(ctx, db, nil, nil)
	got := fresh.ByUser("1")
	require.Len(t, got, 1)
	assert.Equal(t, appB.ID, got[0].ID)

	// Tab A converges once it reloads from storage.
	tabA.Reload(ctx)
	got = tabA.ByUser("1")
	require.Len(t, got, 1)
	assert.Equal(t, appB.ID, got[0].ID)
}

func TestNotifications_TwoInstances_DivergeUntilReload(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	tabA := newNotifLedger(t, db)
	tabB := newNotifLedger(t, db)

	_, err := tabA.Add(ctx, models.Notification{UserID: "1", Title: "from tab A"})
	require.NoError(t, err)

	// Tab B still holds the seeded two and does not see A's write.
	assert.Len(t, tabB.ByUser("1"), 2)

	tabB.Reload(ctx)
	got := tabB.ByUser("1")
	require.Len(t, got, 3)
	assert.Equal(t, "from tab A", got[0].Title)
}

func TestIdentity_TwoInstances_SessionLastWriterWins(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	tabA := newIdentity(t, db)
	tabB := newIdentity(t, db)

	require.True(t, tabA.Login(ctx, "9876543210", "1234"))
	tabB.Logout(ctx) // writes a logged-out session over A's login

	assert.True(t, tabA.IsAuthenticated(), "tab A memory diverges silently")

	tabA.Reload(ctx)
	assert.False(t, tabA.IsAuthenticated(), "reload converges on the last write")
}
