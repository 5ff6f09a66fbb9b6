package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/oussamai/oussamai-backend/internal/models"
	"github.com/oussamai/oussamai-backend/internal/service"
	"gorm.io/gorm"
)

type MediaHandler struct {
	mediaService *service.MediaService
}

func NewMediaHandler(mediaService *service.MediaService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

func (h *MediaHandler) GetWeddingMedia(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
	}

	weddingID, err := weddingParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid wedding ID"))
	}

	media, err := h.mediaService.GetWeddingMedia(weddingID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("Wedding not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Failed to list media"))
	}

	return c.JSON(models.SuccessResponse(media, "Media retrieved"))
}

func (h *MediaHandler) UploadMedia(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
	}

	weddingID, err := weddingParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid wedding ID"))
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("A file is required"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Failed to read uploaded file"))
	}
	defer file.Close()

	media, err := h.mediaService.Upload(weddingID, userID, fileHeader.Filename, c.FormValue("caption"), file)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("Wedding not found"))
		}
		if errors.Is(err, service.ErrUnsupportedMediaType) {
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Unsupported file type"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Failed to upload media"))
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(media, "Media uploaded"))
}

func (h *MediaHandler) DeleteMedia(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
	}

	weddingID, err := weddingParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid wedding ID"))
	}

	mediaID, err := c.ParamsInt("mediaId")
	if err != nil || mediaID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid media ID"))
	}

	if err := h.mediaService.Delete(uint(mediaID), weddingID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("Media not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Failed to delete media"))
	}

	return c.JSON(models.SuccessResponse(nil, "Media deleted"))
}
