package database

import (
	"fmt"

	"github.com/oussamai/oussamai-backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewDatabase(databaseURL string) (*gorm.DB, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Wedding{},
		&models.Guest{},
		&models.Task{},
		&models.BudgetItem{},
		&models.Media{},
		&models.WeddingPackage{},
		&models.Payment{},
	)
}
