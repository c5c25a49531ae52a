// Package api implements the HTTP client for the keepnotes backend:
// a pure request/response mapping with no retained state beyond the
// current access token.
package api

import (
	"context"

	"github.com/dmitrijs2005/keepnotes/internal/client/models"
)

// Client is the backend API surface used by the client-side services.
//
// Contract:
//   - Signup/Login are the only unauthenticated calls.
//   - Every other call carries the token previously installed via SetToken.
//   - Any non-2xx response is returned as *Error with a user-readable message.
//
// All methods must honor context cancellation/timeouts.
type Client interface {
	Signup(ctx context.Context, username, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	Me(ctx context.Context) (*models.User, error)
	ListNotes(ctx context.Context) ([]models.Note, error)
	CreateNote(ctx context.Context, title, content string) (*models.Note, error)
	UpdateNote(ctx context.Context, id, title, content string) (*models.Note, error)
	DeleteNote(ctx context.Context, id string) error
	SetToken(token string)
	Token() string
}
