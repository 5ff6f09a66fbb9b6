package service

import (
	"errors"
	"time"

	"github.com/oussamai/oussamai-backend/internal/models"
	"github.com/oussamai/oussamai-backend/internal/repository"
)

type BudgetService struct {
	budgetRepo  *repository.BudgetRepository
	weddingRepo *repository.WeddingRepository
}

func NewBudgetService(budgetRepo *repository.BudgetRepository, weddingRepo *repository.WeddingRepository) *BudgetService {
	return &BudgetService{
		budgetRepo:  budgetRepo,
		weddingRepo: weddingRepo,
	}
}

func (s *BudgetService) GetWeddingItems(weddingID, userID uint) ([]models.BudgetItem, error) {
	if _, err := s.weddingRepo.GetByIDForUser(weddingID, userID); err != nil {
		return nil, err
	}
	return s.budgetRepo.GetWeddingItems(weddingID)
}

func (s *BudgetService) CreateItem(weddingID, userID uint, req models.CreateBudgetItemRequest) (*models.BudgetItem, error) {
	if _, err := s.weddingRepo.GetByIDForUser(weddingID, userID); err != nil {
		return nil, err
	}

	item := &models.BudgetItem{
		WeddingID:     weddingID,
		Name:          req.Name,
		Category:      defaultString(req.Category, "OTHER"),
		EstimatedCost: req.EstimatedCost,
		Notes:         req.Notes,
	}
	if err := s.budgetRepo.Create(item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *BudgetService) UpdateItem(itemID, weddingID, userID uint, req models.UpdateBudgetItemRequest) (*models.BudgetItem, error) {
	if _, err := s.weddingRepo.GetByIDForUser(weddingID, userID); err != nil {
		return nil, err
	}

	item, err := s.budgetRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item.WeddingID != weddingID {
		return nil, errors.New("budget item does not belong to this wedding")
	}

	if req.Name != "" {
		item.Name = req.Name
	}
	if req.Category != "" {
		item.Category = req.Category
	}
	if req.EstimatedCost != nil {
		item.EstimatedCost = *req.EstimatedCost
	}
	if req.ActualCost != nil {
		item.ActualCost = *req.ActualCost
	}
	if req.Paid != nil {
		item.Paid = *req.Paid
		if *req.Paid && item.PaidDate == nil {
			now := time.Now()
			item.PaidDate = &now
		}
	}
	if req.Notes != "" {
		item.Notes = req.Notes
	}

	if err := s.budgetRepo.Update(item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *BudgetService) DeleteItem(itemID, weddingID, userID uint) error {
	if _, err := s.weddingRepo.GetByIDForUser(weddingID, userID); err != nil {
		return err
	}
	item, err := s.budgetRepo.GetByID(itemID)
	if err != nil {
		return err
	}
	if item.WeddingID != weddingID {
		return errors.New("budget item does not belong to this wedding")
	}
	return s.budgetRepo.Delete(itemID)
}
