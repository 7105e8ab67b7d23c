package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/abroadly/abroadly/internal/app/models"
	"github.com/abroadly/abroadly/internal/pkg/apperrors"
	"github.com/abroadly/abroadly/internal/pkg/dberrors"
	"github.com/abroadly/abroadly/internal/pkg/logger"
)

// ReviewRepository handles program review database operations
type ReviewRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewReviewRepository creates a new ReviewRepository
func NewReviewRepository(db *pgxpool.Pool) *ReviewRepository {
	return &ReviewRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create stores a new review and returns its ID
func (r *ReviewRepository) Create(ctx context.Context, review *models.Review) (int64, error) {
	sql, args, err := r.sb.Insert("reviews").
		Columns("program_id", "alumni_id", "text", "rating").
		Values(review.ProgramID, review.AlumniID, review.Text, review.Rating).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create review query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&review.ID, &review.CreatedAt)
	if err != nil {
		if dberrors.IsForeignKeyError(err) {
			return 0, apperrors.ErrProgramNotFound
		}
		logger.Error().Err(err).Msg("Error executing create review query")
		return 0, fmt.Errorf("error creating review: %w", err)
	}

	return review.ID, nil
}

// ListByProgram retrieves a program's reviews with author attribution,
// newest first.
func (r *ReviewRepository) ListByProgram(ctx context.Context, programID int64) ([]*models.Review, error) {
	sql, args, err := r.sb.Select(
		"r.id", "r.program_id", "r.alumni_id", "r.text", "r.rating", "r.created_at",
		"a.first_name", "a.last_name", "a.graduation_year").
		From("reviews r").
		Join("alumni a ON a.id = r.alumni_id").
		Where(squirrel.Eq{"r.program_id": programID}).
		OrderBy("r.created_at DESC", "r.id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list reviews query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("programID", programID).Msg("Error querying reviews")
		return nil, fmt.Errorf("error querying reviews: %w", err)
	}
	defer rows.Close()

	reviews := []*models.Review{}
	for rows.Next() {
		review := &models.Review{}
		err := rows.Scan(
			&review.ID, &review.ProgramID, &review.AlumniID, &review.Text, &review.Rating, &review.CreatedAt,
			&review.AlumniFirstName, &review.AlumniLastName, &review.AlumniGraduationYear)
		if err != nil {
			return nil, fmt.Errorf("error scanning review row: %w", err)
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating review rows: %w", err)
	}

	return reviews, nil
}
