package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/abroadly/abroadly/internal/app/models"
	"github.com/abroadly/abroadly/internal/app/models/dto"
)

// IReviewRepository defines the review persistence operations the review
// service depends on
type IReviewRepository interface {
	Create(ctx context.Context, review *models.Review) (int64, error)
	ListByProgram(ctx context.Context, programID int64) ([]*models.Review, error)
}

// ReviewService handles program reviews. Review authorship comes from the
// resolved alumni identity; callers never pass an author ID from request
// data.
type ReviewService struct {
	reviewRepo  IReviewRepository
	programRepo IProgramRepository
	logger      zerolog.Logger
}

// NewReviewService creates a new ReviewService
func NewReviewService(reviewRepo IReviewRepository, programRepo IProgramRepository, logger zerolog.Logger) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		programRepo: programRepo,
		logger:      logger,
	}
}

// Create stores a review authored by the given alumni on the program
// identified by its external ID.
func (s *ReviewService) Create(ctx context.Context, alumniID int64, externalProgramID string, req *dto.CreateReviewRequest) (*models.Review, error) {
	program, err := s.programRepo.GetByExternalID(ctx, externalProgramID)
	if err != nil {
		return nil, err
	}

	review := &models.Review{
		ProgramID:   program.ID,
		AlumniID:    alumniID,
		Text:        req.Text,
		Rating:      req.Rating,
		ProgramName: program.Name,
	}
	if _, err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("reviewId", review.ID).Int64("alumniId", alumniID).Msg("Review created")
	return review, nil
}

// ListForProgram returns a program's reviews, newest first
func (s *ReviewService) ListForProgram(ctx context.Context, externalProgramID string) ([]*models.Review, error) {
	programID, err := s.programRepo.GetIDByExternalID(ctx, externalProgramID)
	if err != nil {
		return nil, err
	}
	return s.reviewRepo.ListByProgram(ctx, programID)
}
