// Package models defines the wire-level records the client exchanges with
// the backend.
package models

// User is the identity record returned by the backend. The client never
// mutates it; each successful auth validation replaces it wholesale.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}
