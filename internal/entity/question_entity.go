package entity

import (
	"time"

	"github.com/google/uuid"
)

// Question is one persisted multiple-choice item. Immutable after insert.
type Question struct {
	Id          uuid.UUID
	SessionId   uuid.UUID
	OutlineId   uuid.UUID
	Content     string
	Type        string
	Options     []string // exactly four
	Answer      string   // A-D
	Explanation string
	CreatedAt   time.Time
}
