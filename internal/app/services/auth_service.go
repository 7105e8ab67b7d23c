package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/abroadly/abroadly/internal/app/models"
	"github.com/abroadly/abroadly/internal/app/models/dto"
	"github.com/abroadly/abroadly/internal/pkg/apperrors"
	"github.com/abroadly/abroadly/internal/pkg/auth"
)

// IStudentRepository defines the student persistence operations the auth
// service depends on
type IStudentRepository interface {
	CreateStudent(ctx context.Context, student *models.Student) (int64, error)
	GetStudentByID(ctx context.Context, id int64) (*models.Student, error)
	GetStudentByUsername(ctx context.Context, username string) (*models.Student, error)
}

// AuthService handles student registration and credential checks
type AuthService struct {
	studentRepo IStudentRepository
	logger      zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(studentRepo IStudentRepository, logger zerolog.Logger) *AuthService {
	return &AuthService{
		studentRepo: studentRepo,
		logger:      logger,
	}
}

// Signup registers a new student account. The password is confirmed before
// it is hashed, so a mismatch never costs a bcrypt round.
func (s *AuthService) Signup(ctx context.Context, req *dto.SignupRequest) (*models.Student, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, apperrors.NewValidationError("Username cannot be empty")
	}
	if req.Password != req.PasswordConfirm {
		return nil, apperrors.ErrPasswordMismatch
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to hash password")
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	student := &models.Student{
		Username:  username,
		Email:     strings.TrimSpace(req.Email),
		Password:  hashed,
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		IsActive:  true,
	}

	if _, err := s.studentRepo.CreateStudent(ctx, student); err != nil {
		if errors.Is(err, apperrors.ErrUsernameAlreadyExists) {
			return nil, err
		}
		s.logger.Error().Err(err).Msg("Failed to create student")
		return nil, err
	}

	s.logger.Info().Int64("studentId", student.ID).Msg("Student account created")
	return student, nil
}

// Login verifies student credentials. Unknown usernames and wrong passwords
// produce the same error, so the endpoint cannot be used to probe for
// registered usernames.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*models.Student, error) {
	student, err := s.studentRepo.GetStudentByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(student.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !student.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	return student, nil
}

// GetStudentByID loads a student account by ID
func (s *AuthService) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	return s.studentRepo.GetStudentByID(ctx, id)
}
