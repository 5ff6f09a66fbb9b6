package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/oussamai/oussamai-backend/internal/models"
	"github.com/oussamai/oussamai-backend/internal/service"
	"github.com/oussamai/oussamai-backend/pkg/utils"
	"gorm.io/gorm"
)

type TaskHandler struct {
	taskService *service.TaskService
	validator   *utils.Validator
}

func NewTaskHandler(taskService *service.TaskService, validator *utils.Validator) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		validator:   validator,
	}
}

func (h *TaskHandler) GetWeddingTasks(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
	}

	weddingID, err := weddingParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid wedding ID"))
	}

	tasks, err := h.taskService.GetWeddingTasks(weddingID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("Wedding not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Failed to list tasks"))
	}

	return c.JSON(models.SuccessResponse(tasks, "Tasks retrieved"))
}

func (h *TaskHandler) CreateTask(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
	}

	weddingID, err := weddingParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid wedding ID"))
	}

	var req models.CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Task title is required"))
	}

	task, err := h.taskService.CreateTask(weddingID, userID, req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("Wedding not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Failed to create task"))
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(task, "Task created"))
}

func (h *TaskHandler) UpdateTask(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
	}

	weddingID, err := weddingParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid wedding ID"))
	}

	taskID, err := c.ParamsInt("taskId")
	if err != nil || taskID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid task ID"))
	}

	var req models.UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}

	task, err := h.taskService.UpdateTask(uint(taskID), weddingID, userID, req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("Task not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Failed to update task"))
	}

	return c.JSON(models.SuccessResponse(task, "Task updated"))
}

func (h *TaskHandler) DeleteTask(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
	}

	weddingID, err := weddingParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid wedding ID"))
	}

	taskID, err := c.ParamsInt("taskId")
	if err != nil || taskID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid task ID"))
	}

	if err := h.taskService.DeleteTask(uint(taskID), weddingID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("Task not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Failed to delete task"))
	}

	return c.JSON(models.SuccessResponse(nil, "Task deleted"))
}
