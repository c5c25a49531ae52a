package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Note is a user-owned title/content record with creation and
// last-modification timestamps maintained by the backend.
type Note struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	CreatedOn  Timestamp `json:"created_on"`
	LastUpdate Timestamp `json:"last_update"`
}

// timestampLayouts are the formats accepted from the backend. Naive ISO 8601
// (no zone designator) is treated as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

// Timestamp wraps time.Time and normalizes every date-like field in note
// payloads to a canonical RFC 3339 UTC string, whatever layout the backend
// happened to emit.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timestampLayouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("unsupported timestamp %q", s)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t Timestamp) String() string {
	return t.Time.UTC().Format(time.RFC3339)
}
