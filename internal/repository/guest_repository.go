package repository

import (
	"github.com/oussamai/oussamai-backend/internal/models"
	"gorm.io/gorm"
)

type GuestRepository struct {
	db *gorm.DB
}

func NewGuestRepository(db *gorm.DB) *GuestRepository {
	return &GuestRepository{db: db}
}

func (r *GuestRepository) Create(guest *models.Guest) error {
	return r.db.Create(guest).Error
}

func (r *GuestRepository) GetByID(id uint) (*models.Guest, error) {
	var guest models.Guest
	err := r.db.First(&guest, id).Error
	if err != nil {
		return nil, err
	}
	return &guest, nil
}

func (r *GuestRepository) GetByRSVPToken(token string) (*models.Guest, error) {
	var guest models.Guest
	err := r.db.Where("rsvp_token = ?", token).First(&guest).Error
	if err != nil {
		return nil, err
	}
	return &guest, nil
}

func (r *GuestRepository) GetWeddingGuests(weddingID uint) ([]models.Guest, error) {
	var guests []models.Guest
	err := r.db.Where("wedding_id = ?", weddingID).
		Order("last_name ASC").
		Find(&guests).Error
	return guests, err
}

func (r *GuestRepository) CountByWedding(weddingID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Guest{}).Where("wedding_id = ?", weddingID).Count(&count).Error
	return count, err
}

func (r *GuestRepository) Update(guest *models.Guest) error {
	return r.db.Save(guest).Error
}

func (r *GuestRepository) Delete(id uint) error {
	return r.db.Delete(&models.Guest{}, id).Error
}
