package entity

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Type      string
	Title     string
	Body      string
	Metadata  map[string]interface{}
	ReadAt    *time.Time
	CreatedAt time.Time
}
