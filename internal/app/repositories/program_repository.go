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
	"github.com/abroadly/abroadly/internal/pkg/logger"
)

// ProgramRepository handles program catalog database operations
type ProgramRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewProgramRepository creates a new ProgramRepository
func NewProgramRepository(db *pgxpool.Pool) *ProgramRepository {
	return &ProgramRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetAll retrieves every program with its budget lines and sections.
func (r *ProgramRepository) GetAll(ctx context.Context) ([]*models.Program, error) {
	sql, args, err := r.sb.Select("id", "external_id", "name", "description", "latitude", "longitude", "created_at", "updated_at").
		From("programs").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get all programs query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all programs query")
		return nil, fmt.Errorf("error querying programs: %w", err)
	}
	defer rows.Close()

	programs := []*models.Program{}
	byID := map[int64]*models.Program{}
	ids := []int64{}
	for rows.Next() {
		program := &models.Program{}
		err := rows.Scan(
			&program.ID, &program.ExternalID, &program.Name, &program.Description,
			&program.Latitude, &program.Longitude, &program.CreatedAt, &program.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning program row: %w", err)
		}
		programs = append(programs, program)
		byID[program.ID] = program
		ids = append(ids, program.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating program rows: %w", err)
	}

	if len(programs) == 0 {
		return programs, nil
	}

	if err := r.attachBudgets(ctx, byID, ids); err != nil {
		return nil, err
	}
	if err := r.attachSections(ctx, byID, ids); err != nil {
		return nil, err
	}

	return programs, nil
}

func (r *ProgramRepository) attachBudgets(ctx context.Context, byID map[int64]*models.Program, ids []int64) error {
	sql, args, err := r.sb.Select("id", "program_id", "term", "item", "amount", "position").
		From("program_budgets").
		Where(squirrel.Eq{"program_id": ids}).
		OrderBy("program_id", "position", "id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build budgets query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error querying program budgets: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.BudgetItem
		if err := rows.Scan(&item.ID, &item.ProgramID, &item.Term, &item.Item, &item.Amount, &item.Position); err != nil {
			return fmt.Errorf("error scanning budget row: %w", err)
		}
		if program, ok := byID[item.ProgramID]; ok {
			program.Budgets = append(program.Budgets, item)
		}
	}
	return rows.Err()
}

func (r *ProgramRepository) attachSections(ctx context.Context, byID map[int64]*models.Program, ids []int64) error {
	sql, args, err := r.sb.Select("id", "program_id", "title", "content", "position").
		From("program_sections").
		Where(squirrel.Eq{"program_id": ids}).
		OrderBy("program_id", "position", "id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build sections query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error querying program sections: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var section models.ProgramSection
		if err := rows.Scan(&section.ID, &section.ProgramID, &section.Title, &section.Content, &section.Position); err != nil {
			return fmt.Errorf("error scanning section row: %w", err)
		}
		if program, ok := byID[section.ProgramID]; ok {
			program.Sections = append(program.Sections, section)
		}
	}
	return rows.Err()
}

// GetByExternalID retrieves a program, with budgets and sections, by its
// external identifier.
func (r *ProgramRepository) GetByExternalID(ctx context.Context, externalID string) (*models.Program, error) {
	program := &models.Program{}
	err := r.db.QueryRow(ctx, `
		SELECT id, external_id, name, description, latitude, longitude, created_at, updated_at
		FROM programs
		WHERE external_id = $1`,
		externalID).Scan(
		&program.ID, &program.ExternalID, &program.Name, &program.Description,
		&program.Latitude, &program.Longitude, &program.CreatedAt, &program.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProgramNotFound
		}
		logger.Error().Err(err).Str("externalID", externalID).Msg("Error scanning program row")
		return nil, fmt.Errorf("error getting program by external ID: %w", err)
	}

	byID := map[int64]*models.Program{program.ID: program}
	ids := []int64{program.ID}
	if err := r.attachBudgets(ctx, byID, ids); err != nil {
		return nil, err
	}
	if err := r.attachSections(ctx, byID, ids); err != nil {
		return nil, err
	}

	return program, nil
}

// GetIDByExternalID resolves an external program identifier to the internal
// primary key.
func (r *ProgramRepository) GetIDByExternalID(ctx context.Context, externalID string) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`SELECT id FROM programs WHERE external_id = $1`, externalID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrProgramNotFound
		}
		return 0, fmt.Errorf("error resolving program external ID: %w", err)
	}

	return id, nil
}

// Upsert inserts a program or updates the existing row with the same
// external identifier. Returns the internal ID and whether a new row was
// created.
func (r *ProgramRepository) Upsert(ctx context.Context, program *models.Program) (int64, bool, error) {
	var id int64
	var created bool
	err := r.db.QueryRow(ctx, `
		INSERT INTO programs (external_id, name, description, latitude, longitude)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT ON CONSTRAINT programs_external_id_key DO UPDATE
		SET name = EXCLUDED.name,
		    description = EXCLUDED.description,
		    latitude = EXCLUDED.latitude,
		    longitude = EXCLUDED.longitude,
		    updated_at = now()
		RETURNING id, (xmax = 0)`,
		program.ExternalID, program.Name, program.Description, program.Latitude, program.Longitude).Scan(&id, &created)
	if err != nil {
		logger.Error().Err(err).Str("externalID", program.ExternalID).Msg("Error upserting program")
		return 0, false, fmt.Errorf("error upserting program: %w", err)
	}

	program.ID = id
	return id, created, nil
}

// ReplaceBudgets swaps the full set of budget lines for a program.
func (r *ProgramRepository) ReplaceBudgets(ctx context.Context, programID int64, budgets []models.BudgetItem) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM program_budgets WHERE program_id = $1`, programID); err != nil {
		return fmt.Errorf("error clearing program budgets: %w", err)
	}
	if len(budgets) == 0 {
		return nil
	}

	builder := r.sb.Insert("program_budgets").Columns("program_id", "term", "item", "amount", "position")
	for i, item := range budgets {
		builder = builder.Values(programID, item.Term, item.Item, item.Amount, i)
	}
	sql, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert budgets query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error inserting program budgets: %w", err)
	}
	return nil
}

// ReplaceSections swaps the full set of description sections for a program.
func (r *ProgramRepository) ReplaceSections(ctx context.Context, programID int64, sections []models.ProgramSection) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM program_sections WHERE program_id = $1`, programID); err != nil {
		return fmt.Errorf("error clearing program sections: %w", err)
	}
	if len(sections) == 0 {
		return nil
	}

	builder := r.sb.Insert("program_sections").Columns("program_id", "title", "content", "position")
	for i, section := range sections {
		builder = builder.Values(programID, section.Title, section.Content, i)
	}
	sql, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert sections query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error inserting program sections: %w", err)
	}
	return nil
}

// CountAll returns the number of programs in the catalog.
func (r *ProgramRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM programs`).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting programs: %w", err)
	}
	return count, nil
}
