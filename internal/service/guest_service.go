package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/oussamai/oussamai-backend/internal/models"
	"github.com/oussamai/oussamai-backend/internal/repository"
	"github.com/oussamai/oussamai-backend/pkg/email"
	"go.uber.org/zap"
)

var ErrGuestLimitReached = errors.New("guest limit reached")

type GuestService struct {
	guestRepo    *repository.GuestRepository
	weddingRepo  *repository.WeddingRepository
	emailService *email.EmailService
	log          *zap.Logger
}

func NewGuestService(guestRepo *repository.GuestRepository, weddingRepo *repository.WeddingRepository, emailService *email.EmailService, log *zap.Logger) *GuestService {
	return &GuestService{
		guestRepo:    guestRepo,
		weddingRepo:  weddingRepo,
		emailService: emailService,
		log:          log,
	}
}

func (s *GuestService) GetWeddingGuests(weddingID, userID uint) ([]models.Guest, error) {
	if _, err := s.weddingRepo.GetByIDForUser(weddingID, userID); err != nil {
		return nil, err
	}
	return s.guestRepo.GetWeddingGuests(weddingID)
}

func (s *GuestService) AddGuest(weddingID, userID uint, req models.CreateGuestRequest) (*models.Guest, error) {
	wedding, err := s.weddingRepo.GetByIDForUser(weddingID, userID)
	if err != nil {
		return nil, err
	}

	count, err := s.guestRepo.CountByWedding(weddingID)
	if err != nil {
		return nil, err
	}
	if count >= int64(wedding.GuestLimit) {
		return nil, fmt.Errorf("%w: %d", ErrGuestLimitReached, wedding.GuestLimit)
	}

	group := req.Group
	if group == "" {
		group = "OTHER"
	}

	guest := &models.Guest{
		WeddingID:           weddingID,
		FirstName:           req.FirstName,
		LastName:            req.LastName,
		Email:               req.Email,
		Phone:               req.Phone,
		Group:               group,
		RSVPStatus:          models.RSVPPending,
		RSVPToken:           uuid.NewString(),
		PlusOne:             req.PlusOne,
		PlusOneName:         req.PlusOneName,
		DietaryRestrictions: req.DietaryRestrictions,
		Notes:               req.Notes,
	}

	if err := s.guestRepo.Create(guest); err != nil {
		return nil, err
	}
	return guest, nil
}

func (s *GuestService) DeleteGuest(guestID, weddingID, userID uint) error {
	if _, err := s.weddingRepo.GetByIDForUser(weddingID, userID); err != nil {
		return err
	}
	guest, err := s.guestRepo.GetByID(guestID)
	if err != nil {
		return err
	}
	if guest.WeddingID != weddingID {
		return errors.New("guest does not belong to this wedding")
	}
	return s.guestRepo.Delete(guestID)
}

// GetGuestByToken serves the public RSVP page; no session auth, the token is
// the capability.
func (s *GuestService) GetGuestByToken(token string) (*models.Guest, *models.Wedding, error) {
	guest, err := s.guestRepo.GetByRSVPToken(token)
	if err != nil {
		return nil, nil, err
	}

	wedding, err := s.weddingRepo.GetByID(guest.WeddingID)
	if err != nil {
		return nil, nil, err
	}

	return guest, wedding, nil
}

func (s *GuestService) SubmitRSVP(token string, req models.RSVPRequest) (*models.Guest, error) {
	guest, err := s.guestRepo.GetByRSVPToken(token)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	guest.RSVPStatus = req.RSVPStatus
	guest.RSVPDate = &now
	guest.PlusOneConfirmed = req.PlusOneConfirmed
	guest.PlusOneName = req.PlusOneName
	guest.DietaryRestrictions = req.DietaryRestrictions
	guest.Notes = req.Notes

	if err := s.guestRepo.Update(guest); err != nil {
		return nil, err
	}

	if guest.Email != "" {
		wedding, err := s.weddingRepo.GetByID(guest.WeddingID)
		if err == nil {
			go s.emailService.SendRSVPConfirmationEmail(
				guest.Email,
				guest.FirstName+" "+guest.LastName,
				wedding.Name,
				wedding.Date,
				string(guest.RSVPStatus),
			)
		} else {
			s.log.Warn("rsvp confirmation skipped", zap.Uint("guest_id", guest.ID), zap.Error(err))
		}
	}

	return guest, nil
}
