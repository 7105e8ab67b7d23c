package seed

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appRepos "github.com/abroadly/abroadly/internal/app/repositories"
	appServices "github.com/abroadly/abroadly/internal/app/services"
)

func floatPtr(f float64) *float64 { return &f }

// defaultPrograms is a minimal catalog so a fresh install has something to
// browse before the real data file is loaded.
var defaultPrograms = []appServices.ProgramImport{
	{
		ProgramID:   "florence-fall",
		Name:        "Florence: Arts and Humanities",
		Description: "A semester of studio art, art history and Italian language in the heart of Tuscany.",
		Latitude:    floatPtr(43.7696),
		Longitude:   floatPtr(11.2558),
		Budgets: []appServices.BudgetImport{
			{Term: "Fall", Item: "Tuition", Amount: "14500"},
			{Term: "Fall", Item: "Housing", Amount: "4200"},
		},
		Sections: []appServices.SectionImport{
			{Title: "Overview", Content: "Courses taught in English with optional Italian immersion."},
		},
	},
	{
		ProgramID:   "tokyo-spring",
		Name:        "Tokyo: Technology and Society",
		Description: "Engineering and social science coursework with company visits across the Kanto region.",
		Latitude:    floatPtr(35.6762),
		Longitude:   floatPtr(139.6503),
		Budgets: []appServices.BudgetImport{
			{Term: "Spring", Item: "Tuition", Amount: "15800"},
			{Term: "Spring", Item: "Housing", Amount: "5100"},
		},
		Sections: []appServices.SectionImport{
			{Title: "Overview", Content: "No Japanese language prerequisite; intensive beginner track available."},
		},
	},
	{
		ProgramID:   "buenos-aires-year",
		Name:        "Buenos Aires: Full Year Immersion",
		Description: "Direct enrollment at a partner university with a homestay placement.",
		Latitude:    floatPtr(-34.6037),
		Longitude:   floatPtr(-58.3816),
		Sections: []appServices.SectionImport{
			{Title: "Overview", Content: "All coursework in Spanish; two years of college Spanish required."},
		},
	},
}

// CreateDefaultData seeds the program catalog when it is empty. An already
// populated catalog is left untouched.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	programRepo := appRepos.NewProgramRepository(dbPool)

	count, err := programRepo.CountAll(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		lgr.Debug().Int64("programs", count).Msg("Program catalog already populated, skipping seed")
		return nil
	}

	lgr.Info().Msg("Seeding default program catalog...")
	programService := appServices.NewProgramService(programRepo, lgr)
	summary, err := programService.Import(ctx, defaultPrograms)
	if err != nil {
		return err
	}

	lgr.Info().Int("created", summary.Created).Msg("Default program catalog seeded")
	return nil
}
