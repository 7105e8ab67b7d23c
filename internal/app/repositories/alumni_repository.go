package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/abroadly/abroadly/internal/app/models"
	"github.com/abroadly/abroadly/internal/pkg/apperrors"
	"github.com/abroadly/abroadly/internal/pkg/dberrors"
	"github.com/abroadly/abroadly/internal/pkg/logger"
)

// AlumniRepository handles alumni account database operations
type AlumniRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAlumniRepository creates a new AlumniRepository
func NewAlumniRepository(db *pgxpool.Pool) *AlumniRepository {
	return &AlumniRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateAlumni creates a new alumni account and returns its ID
func (r *AlumniRepository) CreateAlumni(ctx context.Context, alumni *models.Alumni) (int64, error) {
	sql, args, err := r.sb.Insert("alumni").
		Columns("email", "password", "first_name", "last_name", "program_id", "graduation_year", "study_abroad_term", "bio", "is_active").
		Values(alumni.Email, alumni.Password, alumni.FirstName, alumni.LastName,
			alumni.ProgramID, alumni.GraduationYear, alumni.StudyAbroadTerm, alumni.Bio, alumni.IsActive).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create alumni query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&alumni.ID, &alumni.CreatedAt)
	if err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return 0, apperrors.ErrEmailAlreadyExists
		}
		if dberrors.IsForeignKeyError(err) {
			return 0, apperrors.ErrProgramNotFound
		}
		logger.Error().Err(err).Msg("Error executing create alumni query")
		return 0, fmt.Errorf("error creating alumni: %w", err)
	}

	return alumni.ID, nil
}

const alumniColumns = "a.id, a.email, a.password, a.first_name, a.last_name, a.program_id, a.graduation_year, a.study_abroad_term, a.bio, a.is_active, a.created_at"

func scanAlumni(row pgx.Row) (*models.Alumni, error) {
	alumni := &models.Alumni{}
	err := row.Scan(
		&alumni.ID, &alumni.Email, &alumni.Password, &alumni.FirstName, &alumni.LastName,
		&alumni.ProgramID, &alumni.GraduationYear, &alumni.StudyAbroadTerm, &alumni.Bio,
		&alumni.IsActive, &alumni.CreatedAt)
	if err != nil {
		return nil, err
	}
	return alumni, nil
}

// GetAlumniByID retrieves an alumni by ID
func (r *AlumniRepository) GetAlumniByID(ctx context.Context, id int64) (*models.Alumni, error) {
	alumni, err := scanAlumni(r.db.QueryRow(ctx,
		`SELECT `+alumniColumns+` FROM alumni a WHERE a.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAlumniNotFound
		}
		logger.Error().Err(err).Int64("alumniID", id).Msg("Error scanning alumni row")
		return nil, fmt.Errorf("error getting alumni by ID: %w", err)
	}

	return alumni, nil
}

// GetAlumniByEmail retrieves an alumni by email
func (r *AlumniRepository) GetAlumniByEmail(ctx context.Context, email string) (*models.Alumni, error) {
	alumni, err := scanAlumni(r.db.QueryRow(ctx,
		`SELECT `+alumniColumns+` FROM alumni a WHERE a.email = $1`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAlumniNotFound
		}
		logger.Error().Err(err).Msg("Error scanning alumni row")
		return nil, fmt.Errorf("error getting alumni by email: %w", err)
	}

	return alumni, nil
}

// ListAlumniByProgramID retrieves the alumni associated with a program,
// newest graduates first. Password hashes are not selected.
func (r *AlumniRepository) ListAlumniByProgramID(ctx context.Context, programID int64) ([]*models.Alumni, error) {
	sql, args, err := r.sb.Select("a.id", "a.email", "a.first_name", "a.last_name",
		"a.program_id", "a.graduation_year", "a.study_abroad_term", "a.bio", "a.created_at").
		From("alumni a").
		Where(squirrel.Eq{"a.program_id": programID, "a.is_active": true}).
		OrderBy("a.graduation_year DESC", "a.last_name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list alumni query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("programID", programID).Msg("Error querying alumni by program")
		return nil, fmt.Errorf("error querying alumni: %w", err)
	}
	defer rows.Close()

	alumniList := []*models.Alumni{}
	for rows.Next() {
		alumni := &models.Alumni{IsActive: true}
		err := rows.Scan(
			&alumni.ID, &alumni.Email, &alumni.FirstName, &alumni.LastName,
			&alumni.ProgramID, &alumni.GraduationYear, &alumni.StudyAbroadTerm,
			&alumni.Bio, &alumni.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning alumni row: %w", err)
		}
		alumniList = append(alumniList, alumni)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating alumni rows: %w", err)
	}

	return alumniList, nil
}
