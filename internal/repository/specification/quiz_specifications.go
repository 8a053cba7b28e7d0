package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserOwnedBy struct {
	UserID uuid.UUID
}

func (s UserOwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

type BySessionID struct {
	SessionID uuid.UUID
}

func (s BySessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.SessionID)
}

type ByOutlineID struct {
	OutlineID uuid.UUID
}

func (s ByOutlineID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("outline_id = ?", s.OutlineID)
}

type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

type ByModel struct {
	Model string
}

func (s ByModel) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("model = ?", s.Model)
}

type TitleContains struct {
	Fragment string
}

func (s TitleContains) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("title LIKE ?", "%"+s.Fragment+"%")
}
