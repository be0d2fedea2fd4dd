package entity

import "errors"

// ErrEmailTaken is returned when saving a user whose email is already registered.
var ErrEmailTaken = errors.New("email already registered")

type User struct {
	ID        int    `gorm:"primaryKey"`
	Name      string `gorm:"size:20;not null"`
	Email     string `gorm:"uniqueIndex;not null"`
	Password  string `gorm:"not null"` // bcrypt hash
	CreatedAt int64  `gorm:"autoCreateTime:milli"`
	UpdatedAt int64  `gorm:"autoUpdateTime:milli"`

	// Relations
	Tasks     []Task     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Freetimes []Freetime `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
