package model

import (
	"time"

	"github.com/google/uuid"
)

type QuizSession struct {
	Id                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId              uuid.UUID `gorm:"type:uuid;not null;index"` // User ownership for data isolation
	Title               string    `gorm:"type:varchar(200);not null"`
	Model               string    `gorm:"type:text;not null"`
	NumOutlines         int       `gorm:"not null;default:5"`
	QuestionsPerOutline int       `gorm:"not null;default:5"`
	Status              string    `gorm:"type:text;not null;default:'pending';index"`
	OutlinePrompt       string    `gorm:"type:text"` // custom prompt mode, empty = default template
	QuizPrompt          string    `gorm:"type:text"`
	ErrorMsg            string    `gorm:"type:text"`
	ElapsedMs           int64     `gorm:"not null;default:0"`
	InputTokens         int64     `gorm:"not null;default:0"`
	OutputTokens        int64     `gorm:"not null;default:0"`
	Cost                string    `gorm:"type:decimal(14,6);not null;default:0"`
	CreatedAt           time.Time `gorm:"autoCreateTime"`
	UpdatedAt           time.Time `gorm:"autoUpdateTime"`

	Outlines []Outline `gorm:"foreignKey:SessionId;constraint:OnDelete:CASCADE"`
}

func (QuizSession) TableName() string {
	return "quiz_sessions"
}
