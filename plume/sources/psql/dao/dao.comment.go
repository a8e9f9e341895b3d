package dao

import (
	"context"

	"plume/plume/sources/psql/models"

	"gorm.io/gorm"
)

type CommentDAO struct {
	DB *gorm.DB
}

func NewCommentDAO(db *gorm.DB) *CommentDAO {
	return &CommentDAO{DB: db}
}

func (dao *CommentDAO) CreateComment(ctx context.Context, comment *models.Comment) error {
	return dao.DB.WithContext(ctx).Create(comment).Error
}

func (dao *CommentDAO) DeleteCommentsByPost(ctx context.Context, postID string) error {
	return dao.DB.WithContext(ctx).Where("post_id = ?", postID).Delete(&models.Comment{}).Error
}
