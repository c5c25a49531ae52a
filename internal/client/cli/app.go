package cli

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/keepnotes/internal/client/api"
	"github.com/dmitrijs2005/keepnotes/internal/client/config"
	"github.com/dmitrijs2005/keepnotes/internal/client/services"
	"github.com/dmitrijs2005/keepnotes/internal/client/session"
	"github.com/dmitrijs2005/keepnotes/internal/logging"
)

type App struct {
	config *config.Config
	auth   services.AuthService
	notes  services.NotesService
	store  *session.Store
	logger logging.Logger
	reader *bufio.Reader
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	store, err := session.Open(ctx, c.SessionDBPath)
	if err != nil {
		return nil, fmt.Errorf("opening session store: %w", err)
	}

	apiClient := api.NewHTTPClient(c.ServerBaseURL)

	auth := services.NewAuthService(apiClient, store, logger)
	notes := services.NewNotesService(apiClient, auth)

	return &App{
		config: c,
		auth:   auth,
		notes:  notes,
		store:  store,
		logger: logger,
		reader: bufio.NewReader(os.Stdin),
	}, nil
}

// Run validates any persisted session and then enters the REPL. The
// validation is always awaited before the first prompt so the user never
// sees an unauthenticated prompt that corrects itself a moment later.
func (a *App) Run(ctx context.Context) {
	defer a.store.Close()

	printlnFn("keepnotes CLI (type 'help' for commands)")
	printlnFn("Restoring session...")
	a.auth.Restore(ctx)

	if a.isLoggedIn() {
		printlnFn(fmt.Sprintf("Welcome back, %s!", a.auth.CurrentUser().Username))
		if err := a.notes.Refresh(ctx); err != nil {
			printlnFn("Could not load notes:", err.Error())
		}
	}

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(os.Stdin))
}

func (a *App) isLoggedIn() bool {
	return a.auth.State() == services.StateAuthenticated
}

func (a *App) getStatus() string {
	if user := a.auth.CurrentUser(); user != nil {
		return fmt.Sprintf("(%s)", user.Username)
	}
	return ""
}
