package models

import "time"

// NotificationType labels what a notification is about. Values are open-ended;
// the two below are the ones the portal currently produces.
type NotificationType string

const (
	NotificationScheme       NotificationType = "scheme"
	NotificationAnnouncement NotificationType = "announcement"
)

// Notification is a message addressed to a single user. Read starts false and
// only ever flips to true; Timestamp is fixed at creation.
type Notification struct {
	ID        string           `json:"id"`
	UserID    string           `json:"userId"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	Read      bool             `json:"read"`
	Timestamp time.Time        `json:"timestamp"`
}
