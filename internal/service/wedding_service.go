package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/oussamai/oussamai-backend/internal/models"
	"github.com/oussamai/oussamai-backend/internal/repository"
)

var ErrWeddingLimitReached = errors.New("free plan allows a single wedding")

// Default planning checklist seeded on every new wedding.
var defaultTasks = []models.Task{
	{Title: "Définir le budget", Category: "OTHER", Priority: "HIGH"},
	{Title: "Choisir la date", Category: "OTHER", Priority: "URGENT"},
	{Title: "Réserver le lieu", Category: "VENUE", Priority: "URGENT"},
	{Title: "Sélectionner le traiteur", Category: "CATERING", Priority: "HIGH"},
	{Title: "Choisir le photographe", Category: "PHOTOGRAPHY", Priority: "HIGH"},
	{Title: "Commander la robe/le costume", Category: "ATTIRE", Priority: "MEDIUM"},
	{Title: "Envoyer les faire-part", Category: "INVITATIONS", Priority: "HIGH"},
	{Title: "Organiser la lune de miel", Category: "OTHER", Priority: "LOW"},
}

type WeddingService struct {
	weddingRepo *repository.WeddingRepository
	userRepo    *repository.UserRepository
	taskRepo    *repository.TaskRepository
	packageRepo *repository.PackageRepository
}

func NewWeddingService(weddingRepo *repository.WeddingRepository, userRepo *repository.UserRepository, taskRepo *repository.TaskRepository, packageRepo *repository.PackageRepository) *WeddingService {
	return &WeddingService{
		weddingRepo: weddingRepo,
		userRepo:    userRepo,
		taskRepo:    taskRepo,
		packageRepo: packageRepo,
	}
}

func (s *WeddingService) CreateWedding(userID uint, req models.CreateWeddingRequest) (*models.Wedding, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	if user.Plan == models.PlanFree {
		count, err := s.userRepo.WeddingCount(userID)
		if err != nil {
			return nil, err
		}
		if count >= 1 {
			return nil, ErrWeddingLimitReached
		}
	}

	date, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		// Accept plain dates from the UI too.
		date, err = time.Parse("2006-01-02", req.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid wedding date: %w", err)
		}
	}

	guestLimit := 50
	if user.Plan != models.PlanFree {
		guestLimit = 500
	}

	wedding := &models.Wedding{
		Name:         fmt.Sprintf("Mariage de %s & %s", req.Partner1Name, req.Partner2Name),
		Partner1Name: req.Partner1Name,
		Partner2Name: req.Partner2Name,
		Date:         date,
		Venue:        req.Venue,
		BudgetTotal:  req.BudgetTotal,
		GuestLimit:   guestLimit,
	}

	if err := s.weddingRepo.Create(wedding, userID); err != nil {
		return nil, err
	}

	tasks := make([]models.Task, len(defaultTasks))
	copy(tasks, defaultTasks)
	for i := range tasks {
		tasks[i].WeddingID = wedding.ID
	}
	if err := s.taskRepo.CreateBatch(tasks); err != nil {
		return nil, err
	}

	return wedding, nil
}

func (s *WeddingService) GetUserWeddings(userID uint) ([]models.Wedding, error) {
	return s.weddingRepo.GetUserWeddings(userID)
}

func (s *WeddingService) GetWedding(weddingID, userID uint) (*models.Wedding, error) {
	return s.weddingRepo.GetByIDForUser(weddingID, userID)
}

func (s *WeddingService) GetWeddingPackages(weddingID, userID uint) ([]models.WeddingPackage, error) {
	if _, err := s.weddingRepo.GetByIDForUser(weddingID, userID); err != nil {
		return nil, err
	}
	return s.packageRepo.GetWeddingPackages(weddingID)
}

func (s *WeddingService) UpdateWedding(weddingID, userID uint, req models.UpdateWeddingRequest) (*models.Wedding, error) {
	wedding, err := s.weddingRepo.GetByIDForUser(weddingID, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		wedding.Name = req.Name
	}
	if req.Date != "" {
		date, err := time.Parse(time.RFC3339, req.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid wedding date: %w", err)
		}
		wedding.Date = date
	}
	if req.Venue != "" {
		wedding.Venue = req.Venue
	}
	if req.VenueAddress != "" {
		wedding.VenueAddress = req.VenueAddress
	}
	if req.Description != "" {
		wedding.Description = req.Description
	}
	if req.BudgetTotal != nil {
		wedding.BudgetTotal = *req.BudgetTotal
	}

	if err := s.weddingRepo.Update(wedding); err != nil {
		return nil, err
	}
	return wedding, nil
}

func (s *WeddingService) DeleteWedding(weddingID, userID uint) error {
	if _, err := s.weddingRepo.GetByIDForUser(weddingID, userID); err != nil {
		return err
	}
	return s.weddingRepo.Delete(weddingID)
}
