package repository

import (
	"github.com/oussamai/oussamai-backend/internal/models"
	"gorm.io/gorm"
)

type MediaRepository struct {
	db *gorm.DB
}

func NewMediaRepository(db *gorm.DB) *MediaRepository {
	return &MediaRepository{db: db}
}

func (r *MediaRepository) Create(media *models.Media) error {
	return r.db.Create(media).Error
}

func (r *MediaRepository) GetByID(id uint) (*models.Media, error) {
	var media models.Media
	err := r.db.First(&media, id).Error
	if err != nil {
		return nil, err
	}
	return &media, nil
}

func (r *MediaRepository) GetWeddingMedia(weddingID uint) ([]models.Media, error) {
	var media []models.Media
	err := r.db.Where("wedding_id = ?", weddingID).
		Order("created_at DESC").
		Find(&media).Error
	return media, err
}

func (r *MediaRepository) Delete(id uint) error {
	return r.db.Delete(&models.Media{}, id).Error
}
