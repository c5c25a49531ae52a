// Package services contains the client-side controllers: the auth
// controller owning the session lifecycle and the notes controller owning
// the in-memory note list.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/keepnotes/internal/client/api"
	"github.com/dmitrijs2005/keepnotes/internal/client/models"
	"github.com/dmitrijs2005/keepnotes/internal/common"
	"github.com/dmitrijs2005/keepnotes/internal/logging"
)

// AuthState is the auth controller's lifecycle state:
// initializing → unauthenticated ⇄ authenticated.
type AuthState string

const (
	StateInitializing    AuthState = "initializing"
	StateUnauthenticated AuthState = "unauthenticated"
	StateAuthenticated   AuthState = "authenticated"
)

// SessionStore is the durable storage the auth controller persists the
// session to. *session.Store satisfies it.
type SessionStore interface {
	Token(ctx context.Context) (string, error)
	User(ctx context.Context) (*models.User, error)
	SaveSession(ctx context.Context, token string, user *models.User) error
	SaveUser(ctx context.Context, user *models.User) error
	Clear(ctx context.Context) error
}

// AuthService owns the current authentication state.
//
// Contract:
//   - Restore: validate any persisted session before the first render.
//   - Login: exchange credentials; commit {user, token} atomically or not at all.
//   - Signup: register, then run the login flow with the same credentials.
//   - Logout: local only; clears memory and both persisted entries.
type AuthService interface {
	Restore(ctx context.Context)
	Login(ctx context.Context, email, password string) error
	Signup(ctx context.Context, username, email, password string) error
	Logout(ctx context.Context) error
	State() AuthState
	CurrentUser() *models.User
}

type authService struct {
	client api.Client
	store  SessionStore
	logger logging.Logger

	state AuthState
	user  *models.User
}

// NewAuthService constructs an AuthService bound to the given API client
// and session store. The controller starts in StateInitializing until
// Restore resolves.
func NewAuthService(client api.Client, store SessionStore, logger logging.Logger) AuthService {
	return &authService{
		client: client,
		store:  store,
		logger: logger.With("module", "auth"),
		state:  StateInitializing,
	}
}

func (a *authService) State() AuthState {
	return a.state
}

func (a *authService) CurrentUser() *models.User {
	return a.user
}

// Restore validates a previously persisted session. A stored token is
// checked against the backend; on success the cached user record is
// refreshed, on any failure both persisted entries are cleared. The
// controller always leaves StateInitializing: a rejected session is an
// expected condition, logged but never surfaced as an application error.
func (a *authService) Restore(ctx context.Context) {
	token, err := a.store.Token(ctx)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			a.logger.Warn(ctx, "reading persisted session failed", "error", err)
		}
		a.state = StateUnauthenticated
		return
	}

	a.client.SetToken(token)

	user, err := a.client.Me(ctx)
	if err != nil {
		a.logger.Warn(ctx, "persisted session rejected", "error", err)
		a.client.SetToken("")
		if err := a.store.Clear(ctx); err != nil {
			a.logger.Error(ctx, "clearing persisted session failed", "error", err)
		}
		a.state = StateUnauthenticated
		return
	}

	if err := a.store.SaveUser(ctx, user); err != nil {
		a.logger.Warn(ctx, "refreshing cached user failed", "error", err)
	}

	a.user = user
	a.state = StateAuthenticated
}

// Login exchanges credentials for a token, fetches the user it
// authenticates, and persists both atomically. On any failure no partial
// state is committed and the error is returned untouched so its message
// can be shown verbatim.
func (a *authService) Login(ctx context.Context, email, password string) error {
	token, err := a.client.Login(ctx, email, password)
	if err != nil {
		return err
	}

	prev := a.client.Token()
	a.client.SetToken(token)

	user, err := a.client.Me(ctx)
	if err != nil {
		a.client.SetToken(prev)
		return err
	}

	if err := a.store.SaveSession(ctx, token, user); err != nil {
		a.client.SetToken(prev)
		return fmt.Errorf("saving session: %w", err)
	}

	a.user = user
	a.state = StateAuthenticated
	return nil
}

// Signup registers the account and immediately performs the login flow
// with the same credentials. A failure in either step aborts with no
// partial state.
func (a *authService) Signup(ctx context.Context, username, email, password string) error {
	if _, err := a.client.Signup(ctx, username, email, password); err != nil {
		return err
	}
	return a.Login(ctx, email, password)
}

// Logout clears the in-memory session and both persisted entries. The token
// is not invalidated server-side; it remains valid until natural expiry.
func (a *authService) Logout(ctx context.Context) error {
	a.client.SetToken("")
	a.user = nil
	a.state = StateUnauthenticated
	return a.store.Clear(ctx)
}
