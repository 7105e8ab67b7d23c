package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/abroadly/abroadly/internal/app/models"
)

// IFavoriteRepository defines the favorite persistence operations the
// favorite service depends on
type IFavoriteRepository interface {
	Add(ctx context.Context, studentID, programID int64) (*models.Favorite, error)
	Remove(ctx context.Context, studentID, programID int64) error
	Exists(ctx context.Context, studentID, programID int64) (bool, error)
	ListByStudent(ctx context.Context, studentID int64) ([]*models.Favorite, error)
}

// FavoriteService handles a student's favorite programs. Every operation
// takes the acting student's ID from the resolved session, so a student can
// only ever see or change their own list.
type FavoriteService struct {
	favoriteRepo IFavoriteRepository
	programRepo  IProgramRepository
	logger       zerolog.Logger
}

// NewFavoriteService creates a new FavoriteService
func NewFavoriteService(favoriteRepo IFavoriteRepository, programRepo IProgramRepository, logger zerolog.Logger) *FavoriteService {
	return &FavoriteService{
		favoriteRepo: favoriteRepo,
		programRepo:  programRepo,
		logger:       logger,
	}
}

// Add favorites the program identified by its external ID for the student
// and returns the created favorite with program data attached
func (s *FavoriteService) Add(ctx context.Context, studentID int64, externalProgramID string) (*models.Favorite, error) {
	programID, err := s.programRepo.GetIDByExternalID(ctx, externalProgramID)
	if err != nil {
		return nil, err
	}
	return s.favoriteRepo.Add(ctx, studentID, programID)
}

// Remove deletes the student's favorite for the program identified by its
// external ID
func (s *FavoriteService) Remove(ctx context.Context, studentID int64, externalProgramID string) error {
	programID, err := s.programRepo.GetIDByExternalID(ctx, externalProgramID)
	if err != nil {
		return err
	}
	return s.favoriteRepo.Remove(ctx, studentID, programID)
}

// Check reports whether the student has favorited the program identified by
// its external ID
func (s *FavoriteService) Check(ctx context.Context, studentID int64, externalProgramID string) (bool, error) {
	programID, err := s.programRepo.GetIDByExternalID(ctx, externalProgramID)
	if err != nil {
		return false, err
	}
	return s.favoriteRepo.Exists(ctx, studentID, programID)
}

// List returns the student's favorites with program data attached
func (s *FavoriteService) List(ctx context.Context, studentID int64) ([]*models.Favorite, error) {
	return s.favoriteRepo.ListByStudent(ctx, studentID)
}
