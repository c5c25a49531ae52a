// Package cli implements the interactive keepnotes client: a REPL that
// gates its command set on the auth controller's state and delegates all
// mutations to the client-side services.
package cli
