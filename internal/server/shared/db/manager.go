// Package db wires the server repositories to their storage backend.
package db

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/keepnotes/internal/server/repositories/notes"
	"github.com/dmitrijs2005/keepnotes/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Conn() *sql.DB
	Users() users.Repository
	Notes() notes.Repository
	Close() error
}
