package service

import (
	"errors"
	"time"

	"github.com/oussamai/oussamai-backend/internal/models"
	"github.com/oussamai/oussamai-backend/internal/repository"
)

type TaskService struct {
	taskRepo    *repository.TaskRepository
	weddingRepo *repository.WeddingRepository
}

func NewTaskService(taskRepo *repository.TaskRepository, weddingRepo *repository.WeddingRepository) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		weddingRepo: weddingRepo,
	}
}

func (s *TaskService) GetWeddingTasks(weddingID, userID uint) ([]models.Task, error) {
	if _, err := s.weddingRepo.GetByIDForUser(weddingID, userID); err != nil {
		return nil, err
	}
	return s.taskRepo.GetWeddingTasks(weddingID)
}

func (s *TaskService) CreateTask(weddingID, userID uint, req models.CreateTaskRequest) (*models.Task, error) {
	if _, err := s.weddingRepo.GetByIDForUser(weddingID, userID); err != nil {
		return nil, err
	}

	task := &models.Task{
		WeddingID:   weddingID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    defaultString(req.Priority, "MEDIUM"),
		Category:    defaultString(req.Category, "OTHER"),
	}
	if req.DueDate != "" {
		due, err := time.Parse("2006-01-02", req.DueDate)
		if err != nil {
			return nil, err
		}
		task.DueDate = &due
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) UpdateTask(taskID, weddingID, userID uint, req models.UpdateTaskRequest) (*models.Task, error) {
	if _, err := s.weddingRepo.GetByIDForUser(weddingID, userID); err != nil {
		return nil, err
	}

	task, err := s.taskRepo.GetByID(taskID)
	if err != nil {
		return nil, err
	}
	if task.WeddingID != weddingID {
		return nil, errors.New("task does not belong to this wedding")
	}

	if req.Title != "" {
		task.Title = req.Title
	}
	if req.Description != "" {
		task.Description = req.Description
	}
	if req.Priority != "" {
		task.Priority = req.Priority
	}
	if req.Category != "" {
		task.Category = req.Category
	}
	if req.Completed != nil {
		task.Completed = *req.Completed
	}
	if req.DueDate != "" {
		due, err := time.Parse("2006-01-02", req.DueDate)
		if err != nil {
			return nil, err
		}
		task.DueDate = &due
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) DeleteTask(taskID, weddingID, userID uint) error {
	if _, err := s.weddingRepo.GetByIDForUser(weddingID, userID); err != nil {
		return err
	}
	task, err := s.taskRepo.GetByID(taskID)
	if err != nil {
		return err
	}
	if task.WeddingID != weddingID {
		return errors.New("task does not belong to this wedding")
	}
	return s.taskRepo.Delete(taskID)
}

func defaultString(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
