package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/oussamai/oussamai-backend/internal/models"
	"github.com/oussamai/oussamai-backend/internal/service"
	"github.com/oussamai/oussamai-backend/pkg/utils"
)

type AuthHandler struct {
	authService *service.AuthService
	validator   *utils.Validator
}

func NewAuthHandler(authService *service.AuthService, validator *utils.Validator) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validator:   validator,
	}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req models.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Email and password (min 8 chars) are required"))
	}

	resp, err := h.authService.Register(req)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("An account already exists with this email"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Registration failed"))
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(resp, "Account created"))
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Email and password are required"))
	}

	resp, err := h.authService.Login(req)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Invalid email or password"))
	}

	return c.JSON(models.SuccessResponse(resp, "Logged in"))
}
