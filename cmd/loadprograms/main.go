// Command loadprograms bulk-loads the program catalog from a JSON data file.
// Programs are matched by their external ID, so re-running the loader on an
// updated file refreshes existing rows instead of duplicating them.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	appRepos "github.com/abroadly/abroadly/internal/app/repositories"
	appServices "github.com/abroadly/abroadly/internal/app/services"
	"github.com/abroadly/abroadly/internal/bootstrap"
	"github.com/abroadly/abroadly/internal/pkg/logger"
)

func main() {
	filePath := flag.String("file", "data.json", "path to the program data file")
	timeout := flag.Duration("timeout", 5*time.Minute, "overall import timeout")
	flag.Parse()

	if err := godotenv.Load(); err == nil {
		logger.Debug().Msg("Loaded environment from .env file")
	}

	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		os.Exit(1)
	}

	dbPool, err := bootstrap.SetupDatabase(cfg, lgr)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to setup database")
		os.Exit(1)
	}
	defer dbPool.Close()

	file, err := os.Open(*filePath)
	if err != nil {
		lgr.Error().Err(err).Str("file", *filePath).Msg("Failed to open data file")
		os.Exit(1)
	}
	defer file.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	programService := appServices.NewProgramService(appRepos.NewProgramRepository(dbPool), lgr)
	summary, err := programService.ImportFromJSON(ctx, file)
	if err != nil {
		lgr.Error().Err(err).Msg("Program import failed")
		os.Exit(1)
	}

	lgr.Info().
		Str("file", *filePath).
		Int("created", summary.Created).
		Int("updated", summary.Updated).
		Int("skipped", summary.Skipped).
		Msg("Program import complete")
}
