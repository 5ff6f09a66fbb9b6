package repository

import (
	"github.com/oussamai/oussamai-backend/internal/models"
	"gorm.io/gorm"
)

type WeddingRepository struct {
	db *gorm.DB
}

func NewWeddingRepository(db *gorm.DB) *WeddingRepository {
	return &WeddingRepository{db: db}
}

// Create persists the wedding and attaches its owner in one transaction.
func (r *WeddingRepository) Create(wedding *models.Wedding, ownerID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(wedding).Error; err != nil {
			return err
		}
		owner := models.User{ID: ownerID}
		return tx.Model(wedding).Association("Owners").Append(&owner)
	})
}

// GetByID loads a wedding without owner scoping; used by the public RSVP
// path where the guest token is the capability.
func (r *WeddingRepository) GetByID(id uint) (*models.Wedding, error) {
	var wedding models.Wedding
	err := r.db.First(&wedding, id).Error
	if err != nil {
		return nil, err
	}
	return &wedding, nil
}

// GetByIDForUser loads a wedding only when the given user is one of its
// owners; everything nested under a wedding goes through this check.
func (r *WeddingRepository) GetByIDForUser(id, userID uint) (*models.Wedding, error) {
	var wedding models.Wedding
	err := r.db.
		Joins("JOIN wedding_owners ON wedding_owners.wedding_id = weddings.id").
		Where("weddings.id = ? AND wedding_owners.user_id = ?", id, userID).
		First(&wedding).Error
	if err != nil {
		return nil, err
	}
	return &wedding, nil
}

func (r *WeddingRepository) GetUserWeddings(userID uint) ([]models.Wedding, error) {
	var weddings []models.Wedding
	err := r.db.
		Joins("JOIN wedding_owners ON wedding_owners.wedding_id = weddings.id").
		Where("wedding_owners.user_id = ?", userID).
		Order("weddings.date ASC").
		Find(&weddings).Error
	return weddings, err
}

func (r *WeddingRepository) Update(wedding *models.Wedding) error {
	return r.db.Save(wedding).Error
}

func (r *WeddingRepository) Delete(id uint) error {
	return r.db.Delete(&models.Wedding{}, id).Error
}
