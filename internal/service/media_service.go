package service

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/oussamai/oussamai-backend/internal/models"
	"github.com/oussamai/oussamai-backend/internal/repository"
	"github.com/oussamai/oussamai-backend/pkg/storage"
	"go.uber.org/zap"
)

var ErrUnsupportedMediaType = errors.New("unsupported media type")

type MediaService struct {
	mediaRepo   *repository.MediaRepository
	weddingRepo *repository.WeddingRepository
	storage     storage.StorageService
	log         *zap.Logger
}

func NewMediaService(mediaRepo *repository.MediaRepository, weddingRepo *repository.WeddingRepository, store storage.StorageService, log *zap.Logger) *MediaService {
	return &MediaService{
		mediaRepo:   mediaRepo,
		weddingRepo: weddingRepo,
		storage:     store,
		log:         log,
	}
}

func (s *MediaService) GetWeddingMedia(weddingID, userID uint) ([]models.Media, error) {
	if _, err := s.weddingRepo.GetByIDForUser(weddingID, userID); err != nil {
		return nil, err
	}
	return s.mediaRepo.GetWeddingMedia(weddingID)
}

func (s *MediaService) Upload(weddingID, userID uint, filename, caption string, src io.Reader) (*models.Media, error) {
	if _, err := s.weddingRepo.GetByIDForUser(weddingID, userID); err != nil {
		return nil, err
	}

	mediaType, err := mediaTypeForFilename(filename)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("weddings/%d/%s%s", weddingID, uuid.NewString(), strings.ToLower(filepath.Ext(filename)))
	if err := s.storage.Upload(key, src); err != nil {
		return nil, err
	}

	media := &models.Media{
		WeddingID:  weddingID,
		URL:        s.storage.PublicURL(key),
		StorageKey: key,
		Type:       mediaType,
		Caption:    caption,
		UploadedBy: userID,
	}
	if err := s.mediaRepo.Create(media); err != nil {
		// Best effort: don't leave the object orphaned in the bucket.
		if delErr := s.storage.Delete(key); delErr != nil {
			s.log.Warn("failed to clean up orphaned upload", zap.String("key", key), zap.Error(delErr))
		}
		return nil, err
	}

	return media, nil
}

func (s *MediaService) Delete(mediaID, weddingID, userID uint) error {
	if _, err := s.weddingRepo.GetByIDForUser(weddingID, userID); err != nil {
		return err
	}

	media, err := s.mediaRepo.GetByID(mediaID)
	if err != nil {
		return err
	}
	if media.WeddingID != weddingID {
		return errors.New("media does not belong to this wedding")
	}

	if err := s.storage.Delete(media.StorageKey); err != nil {
		s.log.Warn("failed to delete media object", zap.String("key", media.StorageKey), zap.Error(err))
	}
	return s.mediaRepo.Delete(mediaID)
}

func mediaTypeForFilename(filename string) (models.MediaType, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
		return models.MediaTypeImage, nil
	case ".mp4", ".mov", ".webm":
		return models.MediaTypeVideo, nil
	default:
		return "", ErrUnsupportedMediaType
	}
}
