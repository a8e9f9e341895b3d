package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User's username is always stored with its leading "@", applied at write
// time; the raw handle never reaches the database.
type User struct {
	ID       string `json:"id" gorm:"type:varchar(36);primaryKey"`
	Email    string `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	Username string `json:"username" gorm:"type:varchar(255);uniqueIndex;not null"`
	Password string `json:"-" gorm:"type:varchar(255);not null"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
