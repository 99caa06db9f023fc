package models

import (
	"time"
)

// Chat represents a persisted conversation container.
// Messages are embedded in insertion order, which is the canonical
// conversation order and is never reordered.
type Chat struct {
	ID        string    `json:"id"`
	Title     string    `json:"title,omitempty"`
	ProjectID string    `json:"project_id,omitempty"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
