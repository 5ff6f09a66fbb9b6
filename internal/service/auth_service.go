package service

import (
	"errors"

	"github.com/oussamai/oussamai-backend/internal/models"
	"github.com/oussamai/oussamai-backend/internal/repository"
	"github.com/oussamai/oussamai-backend/pkg/bcrypt"
	"github.com/oussamai/oussamai-backend/pkg/email"
	jwtPkg "github.com/oussamai/oussamai-backend/pkg/jwt"
	"go.uber.org/zap"
)

var (
	ErrEmailTaken         = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type AuthService struct {
	userRepo     *repository.UserRepository
	emailService *email.EmailService
	jwtSecret    []byte
	log          *zap.Logger
}

func NewAuthService(userRepo *repository.UserRepository, emailService *email.EmailService, jwtSecret string, log *zap.Logger) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		emailService: emailService,
		jwtSecret:    []byte(jwtSecret),
		log:          log,
	}
}

func (s *AuthService) Register(req models.RegisterRequest) (*models.AuthResponse, error) {
	exists, err := s.userRepo.EmailExists(req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := bcrypt.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hashedPassword,
		Plan:     models.PlanFree,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	token, err := jwtPkg.GenerateToken(s.jwtSecret, user.Email, user.ID)
	if err != nil {
		return nil, err
	}

	go s.emailService.SendWelcomeEmail(user.Email, user.Name)

	s.log.Info("user registered", zap.Uint("user_id", user.ID))

	return &models.AuthResponse{
		Token: token,
		User:  *user,
	}, nil
}

func (s *AuthService) Login(req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(req.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.ComparePassword(user.Password, req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := jwtPkg.GenerateToken(s.jwtSecret, user.Email, user.ID)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{
		Token: token,
		User:  *user,
	}, nil
}
