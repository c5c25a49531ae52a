package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/keepnotes/internal/common"
)

// getSimpleText, getPassword and getConfirmation are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var (
	getSimpleText   = GetSimpleText
	getPassword     = GetPassword
	getConfirmation = GetConfirmation
)

// Signup prompts for a username, email and password (entered twice) and
// attempts to create an account. A password-confirmation mismatch is
// rejected before any request is made. On success the auth controller has
// already logged the new user in.
func (a *App) Signup(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}
	confirmation, err := getPassword("Confirm password", os.Stdout)
	if err != nil {
		return err
	}
	if password != confirmation {
		return common.ErrPasswordMismatch
	}

	if err := a.auth.Signup(ctx, username, email, password); err != nil {
		return err
	}

	printlnFn(fmt.Sprintf("Welcome, %s!", username))
	return a.notes.Refresh(ctx)
}

// Login prompts for credentials and authenticates. Backend failure messages
// are shown to the user verbatim by the REPL.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.auth.Login(ctx, email, password); err != nil {
		return err
	}

	printlnFn(fmt.Sprintf("Welcome back, %s!", a.auth.CurrentUser().Username))
	return a.notes.Refresh(ctx)
}

// Logout clears the in-memory session and the persisted entries. No network
// call is made.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	printlnFn("Logged out.")
	return nil
}
