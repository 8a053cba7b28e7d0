package model

import (
	"time"

	"github.com/google/uuid"
)

type Outline struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey"`
	SessionId    uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_outline_session_order,priority:1"`
	Title        string    `gorm:"type:text;not null"`
	OrderIndex   int       `gorm:"not null;uniqueIndex:idx_outline_session_order,priority:2"` // 1-based, response array order
	Status       string    `gorm:"type:text;not null;default:'pending'"`
	ErrorMsg     string    `gorm:"type:text"`
	InputTokens  int64     `gorm:"not null;default:0"`
	OutputTokens int64     `gorm:"not null;default:0"`
	Cost         string    `gorm:"type:decimal(14,6);not null;default:0"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`

	Questions []Question `gorm:"foreignKey:OutlineId;constraint:OnDelete:CASCADE"`
}

func (Outline) TableName() string {
	return "outlines"
}
