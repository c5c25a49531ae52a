package api

import "fmt"

// Error is a normalized backend failure. Message is either the structured
// error parsed from the response body or the generic fallback; it is meant
// to be shown to the user verbatim.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// genericMessage is the fallback when the response body is absent or
// unparseable.
func genericMessage(status int) string {
	return fmt.Sprintf("HTTP error, status %d", status)
}
