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

// FavoriteRepository handles student favorite database operations
type FavoriteRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewFavoriteRepository creates a new FavoriteRepository
func NewFavoriteRepository(db *pgxpool.Pool) *FavoriteRepository {
	return &FavoriteRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Add records a favorite for the given student and program and returns it
// with the program attached, in the same shape ListByStudent uses. Duplicates
// are rejected by the unique constraint rather than a read-then-write check,
// so concurrent requests cannot both succeed.
func (r *FavoriteRepository) Add(ctx context.Context, studentID, programID int64) (*models.Favorite, error) {
	favorite := &models.Favorite{Program: &models.Program{}}
	err := r.db.QueryRow(ctx, `
		WITH inserted AS (
			INSERT INTO favorites (student_id, program_id) VALUES ($1, $2)
			RETURNING id, student_id, program_id, created_at
		)
		SELECT i.id, i.student_id, i.program_id, i.created_at,
			p.id, p.external_id, p.name, p.description, p.latitude, p.longitude, p.created_at, p.updated_at
		FROM inserted i
		JOIN programs p ON p.id = i.program_id`,
		studentID, programID).Scan(
		&favorite.ID, &favorite.StudentID, &favorite.ProgramID, &favorite.CreatedAt,
		&favorite.Program.ID, &favorite.Program.ExternalID, &favorite.Program.Name,
		&favorite.Program.Description, &favorite.Program.Latitude, &favorite.Program.Longitude,
		&favorite.Program.CreatedAt, &favorite.Program.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "favorites_student_program_key") {
			return nil, apperrors.ErrAlreadyFavorited
		}
		if dberrors.IsForeignKeyError(err) {
			return nil, apperrors.ErrProgramNotFound
		}
		logger.Error().Err(err).Int64("studentID", studentID).Int64("programID", programID).Msg("Error adding favorite")
		return nil, fmt.Errorf("error adding favorite: %w", err)
	}

	return favorite, nil
}

// Remove deletes the favorite owned by the given student for the given
// program. The student ID is part of the predicate, so one student can never
// remove another student's favorite.
func (r *FavoriteRepository) Remove(ctx context.Context, studentID, programID int64) error {
	sql, args, err := r.sb.Delete("favorites").
		Where(squirrel.Eq{"student_id": studentID, "program_id": programID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build remove favorite query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Int64("programID", programID).Msg("Error removing favorite")
		return fmt.Errorf("error removing favorite: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrFavoriteNotFound
	}

	return nil
}

// Exists reports whether the given student has favorited the given program
func (r *FavoriteRepository) Exists(ctx context.Context, studentID, programID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM favorites WHERE student_id = $1 AND program_id = $2)`,
		studentID, programID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking favorite: %w", err)
	}

	return exists, nil
}

// ListByStudent retrieves a student's favorites with the favorited program
// attached, newest first.
func (r *FavoriteRepository) ListByStudent(ctx context.Context, studentID int64) ([]*models.Favorite, error) {
	sql, args, err := r.sb.Select(
		"f.id", "f.student_id", "f.program_id", "f.created_at",
		"p.id", "p.external_id", "p.name", "p.description", "p.latitude", "p.longitude", "p.created_at", "p.updated_at").
		From("favorites f").
		Join("programs p ON p.id = f.program_id").
		Where(squirrel.Eq{"f.student_id": studentID}).
		OrderBy("f.created_at DESC", "f.id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list favorites query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error querying favorites")
		return nil, fmt.Errorf("error querying favorites: %w", err)
	}
	defer rows.Close()

	favorites := []*models.Favorite{}
	for rows.Next() {
		favorite := &models.Favorite{Program: &models.Program{}}
		err := rows.Scan(
			&favorite.ID, &favorite.StudentID, &favorite.ProgramID, &favorite.CreatedAt,
			&favorite.Program.ID, &favorite.Program.ExternalID, &favorite.Program.Name,
			&favorite.Program.Description, &favorite.Program.Latitude, &favorite.Program.Longitude,
			&favorite.Program.CreatedAt, &favorite.Program.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning favorite row: %w", err)
		}
		favorites = append(favorites, favorite)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating favorite rows: %w", err)
	}

	return favorites, nil
}
