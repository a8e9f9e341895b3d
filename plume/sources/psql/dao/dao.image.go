package dao

import (
	"context"
	"errors"

	"plume/plume/sources/psql/models"

	"gorm.io/gorm"
)

type ImageDAO struct {
	DB *gorm.DB
}

func NewImageDAO(db *gorm.DB) *ImageDAO {
	return &ImageDAO{DB: db}
}

func (dao *ImageDAO) CreateImages(ctx context.Context, images []models.Image) (int64, error) {
	if len(images) == 0 {
		return 0, nil
	}
	result := dao.DB.WithContext(ctx).Create(&images)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (dao *ImageDAO) GetImageByID(ctx context.Context, id string) (*models.Image, error) {
	var image models.Image
	err := dao.DB.WithContext(ctx).Where("id = ?", id).First(&image).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &image, nil
}

func (dao *ImageDAO) ListImagesByPost(ctx context.Context, postID string) ([]models.Image, error) {
	var images []models.Image
	err := dao.DB.WithContext(ctx).Where("post_id = ?", postID).Find(&images).Error
	if err != nil {
		return nil, err
	}
	return images, nil
}

func (dao *ImageDAO) DeleteImage(ctx context.Context, id string) error {
	return dao.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.Image{}).Error
}

func (dao *ImageDAO) DeleteImagesByPost(ctx context.Context, postID string) error {
	return dao.DB.WithContext(ctx).Where("post_id = ?", postID).Delete(&models.Image{}).Error
}
