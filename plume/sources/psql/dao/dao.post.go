package dao

import (
	"context"
	"errors"

	"plume/plume/sources/psql/models"

	"gorm.io/gorm"
)

type PostDAO struct {
	DB *gorm.DB
}

func NewPostDAO(db *gorm.DB) *PostDAO {
	return &PostDAO{DB: db}
}

// CreatePost persists the post together with its image rows.
func (dao *PostDAO) CreatePost(ctx context.Context, post *models.Post) error {
	return dao.DB.WithContext(ctx).Create(post).Error
}

func (dao *PostDAO) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	err := dao.DB.WithContext(ctx).Preload("Images").Where("id = ?", id).First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// ListPosts returns all posts newest-first, optionally filtered by author,
// with images, comments (newest-first, with their authors) and the post
// author preloaded.
func (dao *PostDAO) ListPosts(ctx context.Context, authorID string) ([]models.Post, error) {
	var posts []models.Post
	q := dao.DB.WithContext(ctx).
		Preload("Images").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("Comments.Author").
		Preload("Author").
		Order("created_at DESC")
	if authorID != "" {
		q = q.Where("author_id = ?", authorID)
	}
	if err := q.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (dao *PostDAO) UpdatePost(ctx context.Context, id, title, content string) (*models.Post, error) {
	err := dao.DB.WithContext(ctx).Model(&models.Post{}).Where("id = ?", id).
		Updates(map[string]interface{}{"title": title, "content": content}).Error
	if err != nil {
		return nil, err
	}
	return dao.GetPostByID(ctx, id)
}

func (dao *PostDAO) DeletePost(ctx context.Context, id string) error {
	return dao.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.Post{}).Error
}
