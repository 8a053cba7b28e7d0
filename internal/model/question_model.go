package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Question struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	SessionId   uuid.UUID      `gorm:"type:uuid;not null;index"`
	OutlineId   uuid.UUID      `gorm:"type:uuid;not null;index"`
	Content     string         `gorm:"type:text;not null"`
	Type        string         `gorm:"type:text;not null;default:'multiple_choice'"`
	Options     datatypes.JSON `gorm:"not null"` // serialized 4-element string array
	Answer      string         `gorm:"type:varchar(1);not null"`
	Explanation string         `gorm:"type:text"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
}

func (Question) TableName() string {
	return "questions"
}
