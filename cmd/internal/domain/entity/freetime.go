package entity

import (
	"time"

	"gorm.io/gorm"
)

// Freetime is a block of availability owned by one user.
//
// Nothing enforces StartTime < EndTime or rejects overlapping blocks.
type Freetime struct {
	ID        int       `gorm:"primaryKey"`
	StartTime time.Time `gorm:"not null;index"`
	EndTime   time.Time `gorm:"not null"`
	UserID    int       `gorm:"not null;index"` // References: users(id)
	CreatedAt int64     `gorm:"autoCreateTime:milli"`
	UpdatedAt int64     `gorm:"autoUpdateTime:milli"`
}

// BeforeSave stores both bounds in UTC at second precision, which keeps
// textual timestamp columns (SQLite) ordered the same way as the instants.
func (f *Freetime) BeforeSave(_ *gorm.DB) error {
	f.StartTime = f.StartTime.UTC().Truncate(time.Second)
	f.EndTime = f.EndTime.UTC().Truncate(time.Second)
	return nil
}
