package entity

import (
	"time"

	"github.com/google/uuid"
)

// Outline is one chapter within a session. OrderIndex is 1-based and follows
// the response array position from outline generation.
type Outline struct {
	Id           uuid.UUID
	SessionId    uuid.UUID
	Title        string
	OrderIndex   int
	Status       string
	ErrorMsg     string
	InputTokens  int64
	OutputTokens int64
	Cost         string
	CreatedAt    time.Time
}
