package repository

import (
	"github.com/oussamai/oussamai-backend/internal/models"
	"gorm.io/gorm"
)

type BudgetRepository struct {
	db *gorm.DB
}

func NewBudgetRepository(db *gorm.DB) *BudgetRepository {
	return &BudgetRepository{db: db}
}

func (r *BudgetRepository) Create(item *models.BudgetItem) error {
	return r.db.Create(item).Error
}

func (r *BudgetRepository) GetByID(id uint) (*models.BudgetItem, error) {
	var item models.BudgetItem
	err := r.db.First(&item, id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *BudgetRepository) GetWeddingItems(weddingID uint) ([]models.BudgetItem, error) {
	var items []models.BudgetItem
	err := r.db.Where("wedding_id = ?", weddingID).
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}

func (r *BudgetRepository) Update(item *models.BudgetItem) error {
	return r.db.Save(item).Error
}

func (r *BudgetRepository) Delete(id uint) error {
	return r.db.Delete(&models.BudgetItem{}, id).Error
}
