package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/abroadly/abroadly/internal/app/models"
	"github.com/abroadly/abroadly/internal/pkg/logger"
)

// ProfileRepository handles student profile database operations
type ProfileRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetOrCreate returns the profile for a student, creating an empty one on
// first access. The insert is a no-op when a profile already exists, so
// concurrent first reads settle on the same row.
func (r *ProfileRepository) GetOrCreate(ctx context.Context, studentID int64) (*models.Profile, error) {
	_, err := r.db.Exec(ctx, `
		INSERT INTO profiles (student_id)
		VALUES ($1)
		ON CONFLICT ON CONSTRAINT profiles_student_id_key DO NOTHING`,
		studentID)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error ensuring profile row")
		return nil, fmt.Errorf("error ensuring profile: %w", err)
	}

	profile := &models.Profile{}
	err = r.db.QueryRow(ctx, `
		SELECT id, student_id, year, major, study_abroad_term
		FROM profiles
		WHERE student_id = $1`,
		studentID).Scan(
		&profile.ID, &profile.StudentID, &profile.Year, &profile.Major, &profile.StudyAbroadTerm)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// The student row vanished between insert and select.
			return nil, fmt.Errorf("error getting profile: %w", err)
		}
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error scanning profile row")
		return nil, fmt.Errorf("error getting profile: %w", err)
	}

	return profile, nil
}

// Update applies a partial profile update. Nil fields are left untouched; an
// update with no fields set returns the current profile unchanged.
func (r *ProfileRepository) Update(ctx context.Context, studentID int64, year, major, studyAbroadTerm *string) (*models.Profile, error) {
	if year == nil && major == nil && studyAbroadTerm == nil {
		return r.GetOrCreate(ctx, studentID)
	}

	builder := r.sb.Update("profiles").Where(squirrel.Eq{"student_id": studentID})
	if year != nil {
		builder = builder.Set("year", *year)
	}
	if major != nil {
		builder = builder.Set("major", *major)
	}
	if studyAbroadTerm != nil {
		builder = builder.Set("study_abroad_term", *studyAbroadTerm)
	}

	sql, args, err := builder.
		Suffix("RETURNING id, student_id, year, major, study_abroad_term").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update profile query: %w", err)
	}

	profile := &models.Profile{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&profile.ID, &profile.StudentID, &profile.Year, &profile.Major, &profile.StudyAbroadTerm)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// No profile row yet; create it, then retry the update once.
			if _, err := r.GetOrCreate(ctx, studentID); err != nil {
				return nil, err
			}
			err = r.db.QueryRow(ctx, sql, args...).Scan(
				&profile.ID, &profile.StudentID, &profile.Year, &profile.Major, &profile.StudyAbroadTerm)
			if err == nil {
				return profile, nil
			}
		}
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error updating profile")
		return nil, fmt.Errorf("error updating profile: %w", err)
	}

	return profile, nil
}
