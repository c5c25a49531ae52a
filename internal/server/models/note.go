package models

import "time"

type Note struct {
	ID         string
	UserID     string
	Title      string
	Content    string
	CreatedOn  time.Time
	LastUpdate time.Time
}
