package service

import (
	"context"

	"github.com/salonpoint/pos-api/internal/domain/entity"
	"github.com/salonpoint/pos-api/internal/domain/repository"
	"github.com/salonpoint/pos-api/pkg/apperror"
	"github.com/salonpoint/pos-api/pkg/utils"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles register operator authentication
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

// LoginResult is returned on successful login
type LoginResult struct {
	Token string        `json:"token"`
	Staff *entity.Staff `json:"staff"`
}

// Login verifies the operator's credentials and issues an access token
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	staff, err := s.staffRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, apperror.NewCollaboratorError("Staff lookup", err)
	}
	if staff == nil {
		return nil, apperror.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(staff.Password), []byte(password)); err != nil {
		return nil, apperror.ErrInvalidCredentials
	}

	token, err := s.jwtManager.GenerateToken(staff.ID, staff.Name)
	if err != nil {
		return nil, apperror.NewAppError(500, "Failed to generate token")
	}

	return &LoginResult{Token: token, Staff: staff}, nil
}
