// Package common defines shared constants and sentinel errors used across
// client and server layers of keepnotes. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrInternal     = errors.New("internal error")
	ErrUnauthorized = errors.New("unauthorized")

	// Account errors. The message is part of the wire contract.
	ErrEmailTaken = errors.New("Email already registered")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Client-side validation, checked before any request is made.
	ErrPasswordMismatch = errors.New("passwords do not match")

	// Notes controller: delete fired without passing the confirmation gate.
	ErrDeleteNotStaged = errors.New("delete not staged")
)
