package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/oussamai/oussamai-backend/internal/models"
	"github.com/oussamai/oussamai-backend/internal/service"
	"github.com/oussamai/oussamai-backend/pkg/utils"
	"gorm.io/gorm"
)

type GuestHandler struct {
	guestService *service.GuestService
	validator    *utils.Validator
}

func NewGuestHandler(guestService *service.GuestService, validator *utils.Validator) *GuestHandler {
	return &GuestHandler{
		guestService: guestService,
		validator:    validator,
	}
}

func (h *GuestHandler) GetWeddingGuests(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
	}

	weddingID, err := weddingParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid wedding ID"))
	}

	guests, err := h.guestService.GetWeddingGuests(weddingID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("Wedding not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Failed to list guests"))
	}

	return c.JSON(models.SuccessResponse(guests, "Guests retrieved"))
}

func (h *GuestHandler) AddGuest(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
	}

	weddingID, err := weddingParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid wedding ID"))
	}

	var req models.CreateGuestRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("First and last name are required"))
	}

	guest, err := h.guestService.AddGuest(weddingID, userID, req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("Wedding not found"))
		}
		if errors.Is(err, service.ErrGuestLimitReached) {
			return c.Status(fiber.StatusForbidden).JSON(models.ErrorResponse("Guest limit reached. Upgrade your package for more."))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Failed to add guest"))
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(guest, "Guest added"))
}

func (h *GuestHandler) DeleteGuest(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
	}

	weddingID, err := weddingParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid wedding ID"))
	}

	guestID, err := c.ParamsInt("guestId")
	if err != nil || guestID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid guest ID"))
	}

	if err := h.guestService.DeleteGuest(uint(guestID), weddingID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("Guest not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Failed to delete guest"))
	}

	return c.JSON(models.SuccessResponse(nil, "Guest deleted"))
}
