// Package cli is the interactive front for the Sarthi state core. It plays
// the role of the portal's UI layer: it only reads store state and invokes
// store operations, never the other way around.
package cli

import (
	"bufio"
	"context"
	"log/slog"
	"os"

	"github.com/scheme-sarthi/sarthi/internal/config"
	"github.com/scheme-sarthi/sarthi/internal/logging"
	"github.com/scheme-sarthi/sarthi/internal/storage"
	"github.com/scheme-sarthi/sarthi/internal/store"
)

type App struct {
	config        *config.Config
	identity      *store.IdentityStore
	applications  *store.ApplicationLedger
	notifications *store.NotificationLedger
	reader        *bufio.Reader
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	db, err := storage.Open(ctx, c.DatabasePath)
	if err != nil {
		return nil, err
	}

	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	identity := store.NewIdentityStore(ctx, db, nil, log, c.DefaultLanguage)
	applications := store.NewApplicationLedger(ctx, db, nil, log)
	notifications := store.NewNotificationLedger(ctx, db, nil, log)

	return &App{
		config:        c,
		identity:      identity,
		applications:  applications,
		notifications: notifications,
		reader:        bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.identity.IsAuthenticated()
}

func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}
