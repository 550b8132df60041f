package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/authentikate/authentikate/internal/app/models"
	"github.com/authentikate/authentikate/internal/app/repositories"
	"github.com/authentikate/authentikate/internal/pkg/apperrors"
	"github.com/authentikate/authentikate/internal/pkg/auth"
	"github.com/authentikate/authentikate/internal/pkg/validation"
)

// Credentials is an issued token plus its lifetime in seconds.
type Credentials struct {
	Token     string
	ExpiresIn int
}

// AuthService handles admin registration and login.
type AuthService struct {
	adminStore      AdminStore
	departmentStore DepartmentStore
	jwtService      *auth.JWTService
	logger          zerolog.Logger
}

// NewAuthService creates a new auth service instance.
func NewAuthService(adminStore AdminStore, departmentStore DepartmentStore, jwtService *auth.JWTService, logger zerolog.Logger) *AuthService {
	return &AuthService{
		adminStore:      adminStore,
		departmentStore: departmentStore,
		jwtService:      jwtService,
		logger:          logger,
	}
}

// Signup registers a new department admin and issues a token for it.
func (s *AuthService) Signup(ctx context.Context, username, password string, departmentID int64) (*models.Admin, *Credentials, error) {
	if !validation.IsValidUsername(username) {
		return nil, nil, apperrors.NewBadRequestError("invalid username format")
	}
	if len(password) < validation.PasswordMinLength {
		return nil, nil, apperrors.NewBadRequestError(fmt.Sprintf("password must be at least %d characters", validation.PasswordMinLength))
	}

	if _, err := s.departmentStore.GetByID(ctx, departmentID); err != nil {
		if errors.Is(err, repositories.ErrDepartmentNotFound) {
			return nil, nil, apperrors.NewBadRequestError("department does not exist")
		}
		return nil, nil, fmt.Errorf("failed to load department: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &models.Admin{
		Username:     username,
		PasswordHash: hash,
		DepartmentID: departmentID,
	}
	if err := s.adminStore.Create(ctx, admin); err != nil {
		if errors.Is(err, repositories.ErrUsernameAlreadyUsed) {
			return nil, nil, apperrors.ErrUsernameAlreadyUsed
		}
		return nil, nil, fmt.Errorf("failed to create admin: %w", err)
	}

	creds, err := s.issueCredentials(admin)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info().
		Str("username", admin.Username).
		Int64("departmentId", admin.DepartmentID).
		Msg("Admin registered")
	return admin, creds, nil
}

// Login verifies a username/password pair and issues a fresh token. Missing
// accounts and wrong passwords produce the same error.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.Admin, *Credentials, error) {
	admin, err := s.adminStore.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repositories.ErrAdminNotFound) {
			return nil, nil, apperrors.ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("failed to load admin: %w", err)
	}

	if !auth.CheckPassword(admin.PasswordHash, password) {
		return nil, nil, apperrors.ErrInvalidCredentials
	}

	creds, err := s.issueCredentials(admin)
	if err != nil {
		return nil, nil, err
	}
	return admin, creds, nil
}

func (s *AuthService) issueCredentials(admin *models.Admin) (*Credentials, error) {
	token, expiresIn, err := s.jwtService.IssueToken(admin.ID, admin.Username, admin.DepartmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &Credentials{Token: token, ExpiresIn: expiresIn}, nil
}
