package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/oussamai/oussamai-backend/internal/models"
	"github.com/oussamai/oussamai-backend/internal/service"
	"github.com/oussamai/oussamai-backend/pkg/utils"
	"gorm.io/gorm"
)

type BudgetHandler struct {
	budgetService *service.BudgetService
	validator     *utils.Validator
}

func NewBudgetHandler(budgetService *service.BudgetService, validator *utils.Validator) *BudgetHandler {
	return &BudgetHandler{
		budgetService: budgetService,
		validator:     validator,
	}
}

func (h *BudgetHandler) GetWeddingItems(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
	}

	weddingID, err := weddingParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid wedding ID"))
	}

	items, err := h.budgetService.GetWeddingItems(weddingID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("Wedding not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Failed to list budget items"))
	}

	return c.JSON(models.SuccessResponse(items, "Budget items retrieved"))
}

func (h *BudgetHandler) CreateItem(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
	}

	weddingID, err := weddingParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid wedding ID"))
	}

	var req models.CreateBudgetItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("A name and non-negative estimated cost are required"))
	}

	item, err := h.budgetService.CreateItem(weddingID, userID, req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("Wedding not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Failed to create budget item"))
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(item, "Budget item created"))
}

func (h *BudgetHandler) UpdateItem(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
	}

	weddingID, err := weddingParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid wedding ID"))
	}

	itemID, err := c.ParamsInt("itemId")
	if err != nil || itemID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid budget item ID"))
	}

	var req models.UpdateBudgetItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}

	item, err := h.budgetService.UpdateItem(uint(itemID), weddingID, userID, req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("Budget item not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Failed to update budget item"))
	}

	return c.JSON(models.SuccessResponse(item, "Budget item updated"))
}

func (h *BudgetHandler) DeleteItem(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
	}

	weddingID, err := weddingParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid wedding ID"))
	}

	itemID, err := c.ParamsInt("itemId")
	if err != nil || itemID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid budget item ID"))
	}

	if err := h.budgetService.DeleteItem(uint(itemID), weddingID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("Budget item not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Failed to delete budget item"))
	}

	return c.JSON(models.SuccessResponse(nil, "Budget item deleted"))
}
