package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

func (a *App) getStatus() string {
	s := ""
	if u := a.identity.CurrentUser(); u != nil {
		s = u.FullName + " "
	}
	s = s + a.identity.Language()
	return fmt.Sprintf("(%s)", s)
}

func (a *App) Root(ctx context.Context) {

	fmt.Println("Welcome to Sarthi (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Printf("sarthi %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Println("Available commands: apply, list, status, inbox, read, notify, profile, lang, reload, logout, exit")
			} else {
				fmt.Println("Available commands: register, login, otp, lang, exit")
			}

		case "register":
			a.Register(ctx)
		case "login":
			a.Login(ctx)
		case "otp":
			a.LoginWithOTP(ctx)
		case "logout":
			a.Logout(ctx)
		case "lang":
			a.SetLanguage(ctx, args)
		case "profile":
			a.UpdateProfile(ctx)
		case "apply":
			a.apply(ctx)
		case "list":
			a.listApplications(ctx)
		case "status":
			a.updateStatus(ctx, args)
		case "inbox":
			a.inbox(ctx)
		case "read":
			a.markRead(ctx, args)
		case "notify":
			a.notify(ctx)
		case "reload":
			a.reload(ctx)
		case "exit", "quit":
			fmt.Println("Bye!")
			return
		default:
			fmt.Println("Unknown command:", cmd)
		}
	}

}

// reload re-reads every slot, converging with whatever another running
// instance last wrote to the shared database.
func (a *App) reload(ctx context.Context) {
	a.identity.Reload(ctx)
	a.applications.Reload(ctx)
	a.notifications.Reload(ctx)
	fmt.Println("State reloaded from storage")
}
