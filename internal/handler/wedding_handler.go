package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/oussamai/oussamai-backend/internal/models"
	"github.com/oussamai/oussamai-backend/internal/service"
	"github.com/oussamai/oussamai-backend/pkg/utils"
	"gorm.io/gorm"
)

type WeddingHandler struct {
	weddingService *service.WeddingService
	validator      *utils.Validator
}

func NewWeddingHandler(weddingService *service.WeddingService, validator *utils.Validator) *WeddingHandler {
	return &WeddingHandler{
		weddingService: weddingService,
		validator:      validator,
	}
}

func (h *WeddingHandler) CreateWedding(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
	}

	var req models.CreateWeddingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Partner names and date are required"))
	}

	wedding, err := h.weddingService.CreateWedding(userID, req)
	if err != nil {
		if errors.Is(err, service.ErrWeddingLimitReached) {
			return c.Status(fiber.StatusForbidden).JSON(models.ErrorResponse("Upgrade to Premium to manage more than one wedding"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Failed to create wedding"))
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(wedding, "Wedding created"))
}

func (h *WeddingHandler) GetUserWeddings(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
	}

	weddings, err := h.weddingService.GetUserWeddings(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Failed to list weddings"))
	}

	return c.JSON(models.SuccessResponse(weddings, "Weddings retrieved"))
}

func (h *WeddingHandler) GetWedding(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
	}

	weddingID, err := weddingParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid wedding ID"))
	}

	wedding, err := h.weddingService.GetWedding(weddingID, userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("Wedding not found"))
	}

	return c.JSON(models.SuccessResponse(wedding, "Wedding retrieved"))
}

func (h *WeddingHandler) GetWeddingPackages(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
	}

	weddingID, err := weddingParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid wedding ID"))
	}

	packages, err := h.weddingService.GetWeddingPackages(weddingID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("Wedding not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Failed to list packages"))
	}

	return c.JSON(models.SuccessResponse(packages, "Packages retrieved"))
}

func (h *WeddingHandler) UpdateWedding(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
	}

	weddingID, err := weddingParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid wedding ID"))
	}

	var req models.UpdateWeddingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}

	wedding, err := h.weddingService.UpdateWedding(weddingID, userID, req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("Wedding not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Failed to update wedding"))
	}

	return c.JSON(models.SuccessResponse(wedding, "Wedding updated"))
}

func (h *WeddingHandler) DeleteWedding(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
	}

	weddingID, err := weddingParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid wedding ID"))
	}

	if err := h.weddingService.DeleteWedding(weddingID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("Wedding not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Failed to delete wedding"))
	}

	return c.JSON(models.SuccessResponse(nil, "Wedding deleted"))
}
