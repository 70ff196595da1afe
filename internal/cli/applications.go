package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/scheme-sarthi/sarthi/internal/models"
)

func (a *App) apply(ctx context.Context) {
	if !a.isLoggedIn() {
		fmt.Println("Please log in first")
		return
	}

	serviceName, err := GetSimpleText(a.reader, "Service name (e.g. PM Kisan)", os.Stdout)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	category, err := GetSimpleText(a.reader, "Category (optional)", os.Stdout)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	app, err := a.applications.Add(ctx, models.Application{
		UserID:      a.identity.CurrentUser().ID,
		ServiceName: serviceName,
		Category:    category,
	})
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Printf("Application %s submitted on %s\n", app.ID, app.DateApplied.Format("02 Jan 2006"))
}

func (a *App) listApplications(ctx context.Context) {
	if !a.isLoggedIn() {
		fmt.Println("Please log in first")
		return
	}

	apps := a.applications.ByUser(a.identity.CurrentUser().ID)
	if len(apps) == 0 {
		fmt.Println("No applications yet")
		return
	}
	for _, app := range apps {
		fmt.Printf("%-24s %-20s %-10s %s\n", app.ID, app.ServiceName, app.Status, app.DateApplied.Format("02 Jan 2006"))
	}
}

// updateStatus drives the review state machine. In the real portal this
// would be done by the backend; here it demonstrates the forward-only
// transition guard.
func (a *App) updateStatus(ctx context.Context, args []string) {
	if len(args) != 2 {
		fmt.Println("Usage: status <id> <submitted|in-review|approved|rejected>")
		return
	}

	if err := a.applications.UpdateStatus(ctx, args[0], models.Status(args[1])); err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println("Status updated")
}
