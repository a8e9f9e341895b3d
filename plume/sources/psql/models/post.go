package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Post struct {
	ID        string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	Title     string    `json:"title" gorm:"type:varchar(255);not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	AuthorID  string    `json:"author_id" gorm:"type:varchar(36);not null;index"`
	Author    User      `json:"-" gorm:"foreignKey:AuthorID;references:ID"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	Images    []Image   `json:"images" gorm:"foreignKey:PostID"`
	Comments  []Comment `json:"comments" gorm:"foreignKey:PostID"`
}

func (Post) TableName() string {
	return "posts"
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
