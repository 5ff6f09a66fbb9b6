package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/oussamai/oussamai-backend/internal/models"
	"github.com/oussamai/oussamai-backend/internal/service"
	"github.com/oussamai/oussamai-backend/pkg/utils"
	"gorm.io/gorm"
)

// RSVPHandler serves the public invitation pages. The only credential is the
// per-guest token in the URL.
type RSVPHandler struct {
	guestService *service.GuestService
	validator    *utils.Validator
}

func NewRSVPHandler(guestService *service.GuestService, validator *utils.Validator) *RSVPHandler {
	return &RSVPHandler{
		guestService: guestService,
		validator:    validator,
	}
}

func (h *RSVPHandler) GetInvitation(c *fiber.Ctx) error {
	token := c.Params("token")

	guest, wedding, err := h.guestService.GetGuestByToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("Invitation not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Failed to load invitation"))
	}

	return c.JSON(models.SuccessResponse(fiber.Map{
		"guest": fiber.Map{
			"id":                   guest.ID,
			"first_name":           guest.FirstName,
			"last_name":            guest.LastName,
			"email":                guest.Email,
			"rsvp_status":          guest.RSVPStatus,
			"plus_one":             guest.PlusOne,
			"plus_one_name":        guest.PlusOneName,
			"dietary_restrictions": guest.DietaryRestrictions,
		},
		"wedding": fiber.Map{
			"name":          wedding.Name,
			"date":          wedding.Date,
			"venue":         wedding.Venue,
			"venue_address": wedding.VenueAddress,
			"partner1_name": wedding.Partner1Name,
			"partner2_name": wedding.Partner2Name,
		},
	}, "Invitation retrieved"))
}

func (h *RSVPHandler) SubmitRSVP(c *fiber.Ctx) error {
	token := c.Params("token")

	var req models.RSVPRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("A valid RSVP status is required"))
	}

	guest, err := h.guestService.SubmitRSVP(token, req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("Invitation not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Failed to record response"))
	}

	return c.JSON(models.SuccessResponse(guest, "Response recorded"))
}
