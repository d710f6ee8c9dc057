package models

import (
	"time"

	"github.com/google/uuid"
)

// DiaryEntry represents one saved diary message. Entries are write-once:
// there is no update or delete path.
type DiaryEntry struct {
	ID        uuid.UUID `json:"id"`
	UserID    int64     `json:"user_id"`
	Username  string    `json:"username,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Text      string    `json:"text"`
	Tags      []string  `json:"tags"`
}
