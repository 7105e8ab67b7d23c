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

// IAlumniRepository defines the alumni persistence operations the alumni
// service depends on
type IAlumniRepository interface {
	CreateAlumni(ctx context.Context, alumni *models.Alumni) (int64, error)
	GetAlumniByID(ctx context.Context, id int64) (*models.Alumni, error)
	GetAlumniByEmail(ctx context.Context, email string) (*models.Alumni, error)
	ListAlumniByProgramID(ctx context.Context, programID int64) ([]*models.Alumni, error)
}

// AlumniService handles alumni registration, credential checks and the
// per-program alumni directory
type AlumniService struct {
	alumniRepo  IAlumniRepository
	programRepo IProgramRepository
	logger      zerolog.Logger
}

// NewAlumniService creates a new AlumniService
func NewAlumniService(alumniRepo IAlumniRepository, programRepo IProgramRepository, logger zerolog.Logger) *AlumniService {
	return &AlumniService{
		alumniRepo:  alumniRepo,
		programRepo: programRepo,
		logger:      logger,
	}
}

// Signup registers a new alumni account bound to the program identified by
// the external program ID in the request.
func (s *AlumniService) Signup(ctx context.Context, req *dto.AlumniSignupRequest) (*models.Alumni, error) {
	if req.Password != req.PasswordConfirm {
		return nil, apperrors.ErrPasswordMismatch
	}

	programID, err := s.programRepo.GetIDByExternalID(ctx, req.ProgramID)
	if err != nil {
		if errors.Is(err, apperrors.ErrProgramNotFound) {
			return nil, apperrors.NewValidationError("Unknown program")
		}
		return nil, err
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to hash password")
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	alumni := &models.Alumni{
		Email:           strings.ToLower(strings.TrimSpace(req.Email)),
		Password:        hashed,
		FirstName:       strings.TrimSpace(req.FirstName),
		LastName:        strings.TrimSpace(req.LastName),
		ProgramID:       programID,
		GraduationYear:  req.GraduationYear,
		StudyAbroadTerm: strings.TrimSpace(req.StudyAbroadTerm),
		Bio:             strings.TrimSpace(req.Bio),
		IsActive:        true,
	}

	if _, err := s.alumniRepo.CreateAlumni(ctx, alumni); err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil, err
		}
		s.logger.Error().Err(err).Msg("Failed to create alumni")
		return nil, err
	}

	s.logger.Info().Int64("alumniId", alumni.ID).Msg("Alumni account created")
	return alumni, nil
}

// Login verifies alumni credentials. Unknown emails and wrong passwords are
// indistinguishable to the caller.
func (s *AlumniService) Login(ctx context.Context, req *dto.AlumniLoginRequest) (*models.Alumni, error) {
	alumni, err := s.alumniRepo.GetAlumniByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, apperrors.ErrAlumniNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(alumni.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !alumni.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	return alumni, nil
}

// ListByProgram returns the alumni directory for the program identified by
// its external ID.
func (s *AlumniService) ListByProgram(ctx context.Context, externalProgramID string) ([]*models.Alumni, error) {
	programID, err := s.programRepo.GetIDByExternalID(ctx, externalProgramID)
	if err != nil {
		return nil, err
	}
	return s.alumniRepo.ListAlumniByProgramID(ctx, programID)
}

// GetAlumniByID loads an alumni account by ID
func (s *AlumniService) GetAlumniByID(ctx context.Context, id int64) (*models.Alumni, error) {
	return s.alumniRepo.GetAlumniByID(ctx, id)
}
