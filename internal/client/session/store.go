// Package session persists the client's credentials in durable key-value
// storage local to the device: the bearer token and the cached user record,
// stored as two independent entries that are always written and cleared
// together.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/keepnotes/internal/client/models"
	"github.com/dmitrijs2005/keepnotes/internal/client/session/migrations"
	"github.com/dmitrijs2005/keepnotes/internal/common"
	"github.com/dmitrijs2005/keepnotes/internal/dbx"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

const (
	keyToken = "token"
	keyUser  = "user"
)

// Store is a sqlite-backed key-value store for the session entries.
type Store struct {
	db *sql.DB
}

// RunMigrations applies the embedded goose migrations to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("setting goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// Open opens (creating if necessary) the session database at dsn and brings
// its schema up to date.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM session WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return value, nil
}

func set(ctx context.Context, tx dbx.DBTX, key string, value []byte) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO session (key, value) VALUES (?, ?)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
		key, value)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Token returns the persisted bearer token, or common.ErrNotFound if no
// session is stored.
func (s *Store) Token(ctx context.Context) (string, error) {
	value, err := s.get(ctx, keyToken)
	if err != nil {
		return "", err
	}
	return string(value), nil
}

// User returns the cached user record, or common.ErrNotFound.
func (s *Store) User(ctx context.Context) (*models.User, error) {
	value, err := s.get(ctx, keyUser)
	if err != nil {
		return nil, err
	}
	var user models.User
	if err := json.Unmarshal(value, &user); err != nil {
		return nil, fmt.Errorf("decoding cached user: %w", err)
	}
	return &user, nil
}

// SaveSession writes the token and the serialized user record in a single
// transaction so a session is never half-persisted.
func (s *Store) SaveSession(ctx context.Context, token string, user *models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encoding user: %w", err)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := set(ctx, tx, keyToken, []byte(token)); err != nil {
			return err
		}
		return set(ctx, tx, keyUser, data)
	})
}

// SaveUser refreshes the cached user record, leaving the token untouched.
// Used after a successful startup validation.
func (s *Store) SaveUser(ctx context.Context, user *models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encoding user: %w", err)
	}
	return set(ctx, s.db, keyUser, data)
}

// Clear removes both entries together, preserving the invariant that a
// token is never stored without a user or vice versa.
func (s *Store) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		_, err := tx.ExecContext(ctx, `DELETE FROM session WHERE key IN (?, ?)`, keyToken, keyUser)
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		return nil
	})
}
