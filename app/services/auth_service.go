package services

import (
	"errors"
	"fmt"

	"weblog/app/auth"
	"weblog/app/models"
	"weblog/app/repositories"
)

// ErrInvalidCredentials is returned on a bad username/password pair.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService handles registration and login.
type AuthService struct {
	jwtService *auth.JWTService
	userRepo   repositories.UserRepository
}

// NewAuthService creates a new AuthService
func NewAuthService(jwtService *auth.JWTService, userRepo repositories.UserRepository) *AuthService {
	return &AuthService{
		jwtService: jwtService,
		userRepo:   userRepo,
	}
}

// Register creates a new user and returns a token for it.
func (s *AuthService) Register(req *models.CreateUserRequest) (*models.AuthResponse, error) {
	if err := models.ValidateRegistration(req); err != nil {
		return nil, fmt.Errorf("invalid registration: %w", err)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("creating token: %w", err)
	}

	return &models.AuthResponse{Token: token, User: user}, nil
}

// Login verifies credentials and returns a token.
func (s *AuthService) Login(req *models.LoginRequest) (*models.AuthResponse, error) {
	if err := models.ValidateLogin(req); err != nil {
		return nil, fmt.Errorf("invalid login: %w", err)
	}

	user, err := s.userRepo.GetByUsername(req.Username)
	if err != nil {
		return nil, err
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("creating token: %w", err)
	}

	return &models.AuthResponse{Token: token, User: user}, nil
}
