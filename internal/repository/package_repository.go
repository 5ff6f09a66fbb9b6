package repository

import (
	"github.com/oussamai/oussamai-backend/internal/models"
	"gorm.io/gorm"
)

type PackageRepository struct {
	db *gorm.DB
}

func NewPackageRepository(db *gorm.DB) *PackageRepository {
	return &PackageRepository{db: db}
}

func (r *PackageRepository) Create(pkg *models.WeddingPackage) error {
	return r.db.Create(pkg).Error
}

// CreateWithPayments writes the package row and its payment schedule as one
// unit: if any payment row fails, the package row is rolled back too and the
// checkout must not report success.
func (r *PackageRepository) CreateWithPayments(pkg *models.WeddingPackage, payments []models.Payment) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(pkg).Error; err != nil {
			return err
		}
		for i := range payments {
			payments[i].PackageID = pkg.ID
		}
		return tx.Create(&payments).Error
	})
}

func (r *PackageRepository) GetByID(id uint) (*models.WeddingPackage, error) {
	var pkg models.WeddingPackage
	err := r.db.Preload("Payments").First(&pkg, id).Error
	if err != nil {
		return nil, err
	}
	return &pkg, nil
}

func (r *PackageRepository) GetWeddingPackages(weddingID uint) ([]models.WeddingPackage, error) {
	var packages []models.WeddingPackage
	err := r.db.Preload("Payments").
		Where("wedding_id = ?", weddingID).
		Order("created_at DESC").
		Find(&packages).Error
	return packages, err
}
