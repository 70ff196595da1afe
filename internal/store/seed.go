package store

import (
	"time"

	"github.com/scheme-sarthi/sarthi/internal/models"
)

// seedUsers returns the fixed demo accounts available even with an empty
// registered-user ledger. Registration must treat their mobile numbers as
// taken.
func seedUsers() []models.User {
	return []models.User{
		{
			ID:       "1",
			FullName: "Rahul Sharma",
			Mobile:   "9876543210",
			Email:    "rahul@example.com",
			Language: "en",
			MPIN:     "1234",
		},
	}
}

// seedNotifications returns the default notifications installed on the very
// first load of the notification slot.
func seedNotifications(now time.Time) []models.Notification {
	return []models.Notification{
		{
			ID:        "1",
			UserID:    "1",
			Title:     "New Scheme Available",
			Message:   "PM Kisan Samman Nidhi is now accepting applications for the next quarter.",
			Type:      models.NotificationScheme,
			Read:      false,
			Timestamp: now.Add(-1 * time.Hour),
		},
		{
			ID:        "2",
			UserID:    "1",
			Title:     "Important Announcement",
			Message:   "Aadhaar linking deadline extended for EPF accounts.",
			Type:      models.NotificationAnnouncement,
			Read:      false,
			Timestamp: now.Add(-24 * time.Hour),
		},
	}
}
