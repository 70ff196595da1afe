package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/scheme-sarthi/sarthi/internal/models"
)

func (a *App) inbox(ctx context.Context) {
	if !a.isLoggedIn() {
		fmt.Println("Please log in first")
		return
	}

	notifs := a.notifications.ByUser(a.identity.CurrentUser().ID)
	if len(notifs) == 0 {
		fmt.Println("No notifications")
		return
	}
	for _, n := range notifs {
		marker := " "
		if !n.Read {
			marker = "*"
		}
		fmt.Printf("%s %-12s [%s] %s (%s)\n", marker, n.ID, n.Type, n.Title, n.Timestamp.Format("02 Jan 15:04"))
	}
}

func (a *App) markRead(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Println("Usage: read <id>")
		return
	}

	if err := a.notifications.MarkRead(ctx, args[0]); err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println("Marked as read")
}

// notify creates a notification addressed to the logged-in user, standing in
// for the pushes the real portal backend would send.
func (a *App) notify(ctx context.Context) {
	if !a.isLoggedIn() {
		fmt.Println("Please log in first")
		return
	}

	title, err := GetSimpleText(a.reader, "Title", os.Stdout)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	message, err := GetSimpleText(a.reader, "Message", os.Stdout)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	n, err := a.notifications.Add(ctx, models.Notification{
		UserID:  a.identity.CurrentUser().ID,
		Title:   title,
		Message: message,
		Type:    models.NotificationAnnouncement,
	})
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println("Notification", n.ID, "created")
}
