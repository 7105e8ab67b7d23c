package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/abroadly/abroadly/internal/app/models"
)

// IProgramRepository defines the program persistence operations the services
// in this package depend on
type IProgramRepository interface {
	GetAll(ctx context.Context) ([]*models.Program, error)
	GetByExternalID(ctx context.Context, externalID string) (*models.Program, error)
	GetIDByExternalID(ctx context.Context, externalID string) (int64, error)
	Upsert(ctx context.Context, program *models.Program) (int64, bool, error)
	ReplaceBudgets(ctx context.Context, programID int64, budgets []models.BudgetItem) error
	ReplaceSections(ctx context.Context, programID int64, sections []models.ProgramSection) error
	CountAll(ctx context.Context) (int64, error)
}

// ProgramService handles the program catalog and bulk imports
type ProgramService struct {
	programRepo IProgramRepository
	logger      zerolog.Logger
}

// NewProgramService creates a new ProgramService
func NewProgramService(programRepo IProgramRepository, logger zerolog.Logger) *ProgramService {
	return &ProgramService{
		programRepo: programRepo,
		logger:      logger,
	}
}

// ListAll returns every program with budgets and sections attached
func (s *ProgramService) ListAll(ctx context.Context) ([]*models.Program, error) {
	return s.programRepo.GetAll(ctx)
}

// GetByExternalID returns a single program by its external identifier
func (s *ProgramService) GetByExternalID(ctx context.Context, externalID string) (*models.Program, error) {
	return s.programRepo.GetByExternalID(ctx, externalID)
}

// Count returns the number of programs in the catalog
func (s *ProgramService) Count(ctx context.Context) (int64, error) {
	return s.programRepo.CountAll(ctx)
}

// ProgramImport is one program entry in the bulk-load data file.
type ProgramImport struct {
	ProgramID   string          `json:"programId"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Latitude    *float64        `json:"latitude"`
	Longitude   *float64        `json:"longitude"`
	Budgets     []BudgetImport  `json:"budgets"`
	Sections    []SectionImport `json:"sections"`
}

// BudgetImport is one budget line in the bulk-load data file.
type BudgetImport struct {
	Term   string `json:"term"`
	Item   string `json:"item"`
	Amount string `json:"amount"`
}

// SectionImport is one description section in the bulk-load data file.
type SectionImport struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ImportSummary reports the outcome of a bulk import.
type ImportSummary struct {
	Created int
	Updated int
	Skipped int
}

// ImportFromJSON decodes a JSON array of programs and imports it. The import
// upserts by external program ID, so re-running the loader on the same file
// is idempotent.
func (s *ProgramService) ImportFromJSON(ctx context.Context, r io.Reader) (*ImportSummary, error) {
	var entries []ProgramImport
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("error decoding program data: %w", err)
	}
	return s.Import(ctx, entries)
}

// Import upserts the given program entries. Entries without an external ID
// or name are skipped rather than failing the whole batch.
func (s *ProgramService) Import(ctx context.Context, entries []ProgramImport) (*ImportSummary, error) {
	summary := &ImportSummary{}

	for _, entry := range entries {
		if entry.ProgramID == "" || entry.Name == "" {
			s.logger.Warn().Str("programId", entry.ProgramID).Str("name", entry.Name).Msg("Skipping program entry with missing identifier")
			summary.Skipped++
			continue
		}

		program := &models.Program{
			ExternalID:  entry.ProgramID,
			Name:        entry.Name,
			Description: entry.Description,
			Latitude:    entry.Latitude,
			Longitude:   entry.Longitude,
		}

		id, created, err := s.programRepo.Upsert(ctx, program)
		if err != nil {
			return summary, fmt.Errorf("error importing program %q: %w", entry.ProgramID, err)
		}

		budgets := make([]models.BudgetItem, 0, len(entry.Budgets))
		for _, b := range entry.Budgets {
			budgets = append(budgets, models.BudgetItem{Term: b.Term, Item: b.Item, Amount: b.Amount})
		}
		if err := s.programRepo.ReplaceBudgets(ctx, id, budgets); err != nil {
			return summary, fmt.Errorf("error importing budgets for %q: %w", entry.ProgramID, err)
		}

		sections := make([]models.ProgramSection, 0, len(entry.Sections))
		for _, sec := range entry.Sections {
			sections = append(sections, models.ProgramSection{Title: sec.Title, Content: sec.Content})
		}
		if err := s.programRepo.ReplaceSections(ctx, id, sections); err != nil {
			return summary, fmt.Errorf("error importing sections for %q: %w", entry.ProgramID, err)
		}

		if created {
			summary.Created++
		} else {
			summary.Updated++
		}
	}

	s.logger.Info().
		Int("created", summary.Created).
		Int("updated", summary.Updated).
		Int("skipped", summary.Skipped).
		Msg("Program import finished")
	return summary, nil
}
