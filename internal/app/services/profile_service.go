package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/abroadly/abroadly/internal/app/models"
	"github.com/abroadly/abroadly/internal/app/models/dto"
)

// IProfileRepository defines the profile persistence operations the profile
// service depends on
type IProfileRepository interface {
	GetOrCreate(ctx context.Context, studentID int64) (*models.Profile, error)
	Update(ctx context.Context, studentID int64, year, major, studyAbroadTerm *string) (*models.Profile, error)
}

// ProfileService handles student profiles
type ProfileService struct {
	profileRepo IProfileRepository
	logger      zerolog.Logger
}

// NewProfileService creates a new ProfileService
func NewProfileService(profileRepo IProfileRepository, logger zerolog.Logger) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		logger:      logger,
	}
}

// Get returns the student's profile, creating an empty one on first access
func (s *ProfileService) Get(ctx context.Context, studentID int64) (*models.Profile, error) {
	return s.profileRepo.GetOrCreate(ctx, studentID)
}

// Update applies a partial profile update and returns the resulting profile
func (s *ProfileService) Update(ctx context.Context, studentID int64, req *dto.UpdateProfileRequest) (*models.Profile, error) {
	return s.profileRepo.Update(ctx, studentID, req.Year, req.Major, req.StudyAbroadTerm)
}
