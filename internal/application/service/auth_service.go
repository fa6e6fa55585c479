package service

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/dinetrack/dinetrack-api/internal/domain/entity"
	"github.com/dinetrack/dinetrack-api/internal/domain/repository"
	"github.com/dinetrack/dinetrack-api/pkg/apperror"
	"github.com/dinetrack/dinetrack-api/pkg/utils"
)

// AuthService handles staff authentication
type AuthService struct {
	staffRepo  repository.StaffRepository
	jwtManager *utils.JWTManager
}

// NewAuthService creates a new auth service
func NewAuthService(staffRepo repository.StaffRepository, jwtManager *utils.JWTManager) *AuthService {
	return &AuthService{
		staffRepo:  staffRepo,
		jwtManager: jwtManager,
	}
}

// LoginResult carries the authenticated staff member and their tokens
type LoginResult struct {
	Staff        *entity.Staff
	AccessToken  string
	RefreshToken string
}

// Login authenticates a staff member and issues a token pair
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	staff, err := s.staffRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if staff == nil || !staff.IsActive {
		return nil, apperror.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(staff.Password), []byte(password)); err != nil {
		return nil, apperror.ErrInvalidCredentials
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(staff.ID, staff.Email, staff.FullName, staff.Role.String())
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.jwtManager.GenerateRefreshToken(staff.ID)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Staff:        staff,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Refresh exchanges a valid refresh token for a new access token
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	staffID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return "", apperror.ErrInvalidToken
	}

	staff, err := s.staffRepo.GetByID(ctx, staffID)
	if err != nil {
		return "", err
	}
	if staff == nil || !staff.IsActive {
		return "", apperror.ErrInvalidToken
	}

	return s.jwtManager.GenerateAccessToken(staff.ID, staff.Email, staff.FullName, staff.Role.String())
}
