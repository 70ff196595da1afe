package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scheme-sarthi/sarthi/internal/idgen"
	"github.com/scheme-sarthi/sarthi/internal/models"
	"github.com/scheme-sarthi/sarthi/internal/repositories/slots"
)

func newNotifLedger(t *testing.T, db *sql.DB) *NotificationLedger {
	t.Helper()
	return NewNotificationLedger(context.Background(), db, idgen.NewSequential("NTF"), nil)
}

func TestNotifications_FirstLoadSeedsDefaults(t *testing.T) {
	db := setupDB(t)
	l := newNotifLedger(t, db)

	got := l.ByUser("1")
	require.Len(t, got, 2)
	assert.Equal(t, "New Scheme Available", got[0].Title)
	assert.Equal(t, models.NotificationScheme, got[0].Type)
	assert.Equal(t, "Important Announcement", got[1].Title)
	assert.Equal(t, models.NotificationAnnouncement, got[1].Type)
	for _, n := range got {
		assert.False(t, n.Read)
	}
	assert.True(t, got[0].Timestamp.After(got[1].Timestamp), "defaults are newest-first")
}

func TestNotifications_SeedIsPersistedNotRepeated(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	l1 := newNotifLedger(t, db)
	require.NoError(t, l1.MarkRead(ctx, "1"))

	// A second ledger over the same database must see the persisted seed,
	// including the read flag, not a fresh copy.
	l2 := newNotifLedger(t, db)
	got := l2.ByUser("1")
	require.Len(t, got, 2)
	assert.True(t, got[0].Read)
	assert.False(t, got[1].Read)
}

func TestNotifications_Add_PrependsNewestFirst(t *testing.T) {
	db := setupDB(t)
	l := newNotifLedger(t, db)
	ctx := context.Background()

	n, err := l.Add(ctx, models.Notification{
		UserID:  "1",
		Title:   "X",
		Message: "Y",
		Type:    models.NotificationScheme,
	})
	require.NoError(t, err)

	got := l.ByUser("1")
	require.Len(t, got, 3)
	assert.Equal(t, n.ID, got[0].ID, "new notification is first")
	assert.False(t, got[0].Read)
	assert.Equal(t, "X", got[0].Title)
}

func TestNotifications_Add_ReadAlwaysStartsFalse(t *testing.T) {
	db := setupDB(t)
	l := newNotifLedger(t, db)

	n, err := l.Add(context.Background(), models.Notification{
		UserID: "2",
		Title:  "Sneaky",
		Read:   true, // callers cannot pre-mark a notification as read
	})
	require.NoError(t, err)
	assert.False(t, n.Read)
}

func TestNotifications_Add_Validation(t *testing.T) {
	db := setupDB(t)
	l := newNotifLedger(t, db)
	ctx := context.Background()

	_, err := l.Add(ctx, models.Notification{Title: "no user"})
	require.ErrorIs(t, err, ErrValidation)

	_, err = l.Add(ctx, models.Notification{UserID: "1"})
	require.ErrorIs(t, err, ErrValidation)
}

func TestNotifications_MarkRead(t *testing.T) {
	db := setupDB(t)
	l := newNotifLedger(t, db)
	ctx := context.Background()

	require.NoError(t, l.MarkRead(ctx, "2"))
	got := l.ByUser("1")
	assert.False(t, got[0].Read)
	assert.True(t, got[1].Read)

	// Marking an already-read notification is a no-op, not an error.
	require.NoError(t, l.MarkRead(ctx, "2"))
}

func TestNotifications_MarkRead_UnknownIDIsNotFound(t *testing.T) {
	db := setupDB(t)
	l := newNotifLedger(t, db)

	err := l.MarkRead(context.Background(), "NTF404")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestNotifications_ByUser_Partition(t *testing.T) {
	db := setupDB(t)
	l := newNotifLedger(t, db)
	ctx := context.Background()

	_, err := l.Add(ctx, models.Notification{UserID: "2", Title: "For user two"})
	require.NoError(t, err)

	for _, n := range l.ByUser("1") {
		assert.Equal(t, "1", n.UserID)
	}
	got := l.ByUser("2")
	require.Len(t, got, 1)
	assert.Equal(t, "For user two", got[0].Title)
}

func TestNotifications_ByUser_IdempotentRead(t *testing.T) {
	db := setupDB(t)
	l := newNotifLedger(t, db)

	first := l.ByUser("1")
	second := l.ByUser("1")
	assert.Equal(t, first, second)
}

func TestNotifications_CorruptSlot_DegradesToEmptyWithoutReseeding(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	repo := slots.NewSQLiteRepository(db)
	require.NoError(t, repo.Set(ctx, SlotNotifications, []byte("<<corrupt>>")))

	l := newNotifLedger(t, db)
	assert.Empty(t, l.ByUser("1"), "a damaged slot is reset, not re-seeded")

	_, err := l.Add(ctx, models.Notification{UserID: "1", Title: "fresh start"})
	require.NoError(t, err)
	assert.Len(t, l.ByUser("1"), 1)
}
