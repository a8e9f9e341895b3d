package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Comment struct {
	ID        string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	AuthorID  string    `json:"author_id" gorm:"type:varchar(36);not null;index"`
	Author    User      `json:"-" gorm:"foreignKey:AuthorID;references:ID"`
	PostID    string    `json:"post_id" gorm:"type:varchar(36);not null;index"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (Comment) TableName() string {
	return "comments"
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
