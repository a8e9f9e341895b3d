package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Image struct {
	ID     string `json:"id" gorm:"type:varchar(36);primaryKey"`
	URL    string `json:"url" gorm:"type:varchar(512);not null"`
	PostID string `json:"post_id" gorm:"type:varchar(36);not null;index"`
}

func (Image) TableName() string {
	return "images"
}

func (i *Image) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
