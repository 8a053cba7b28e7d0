package specification

import "gorm.io/gorm"

type Unread struct{}

func (s Unread) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("read_at IS NULL")
}
