package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/nurpe/fleet-reports/internal/config"
	"github.com/nurpe/fleet-reports/internal/db"
	"github.com/nurpe/fleet-reports/internal/docx"
	"github.com/nurpe/fleet-reports/internal/excel"
	"github.com/nurpe/fleet-reports/internal/export"
	httphandler "github.com/nurpe/fleet-reports/internal/http"
	"github.com/nurpe/fleet-reports/internal/logger"
	"github.com/nurpe/fleet-reports/internal/pdf"
	"github.com/nurpe/fleet-reports/internal/report"
	"github.com/nurpe/fleet-reports/internal/repository"
	"github.com/nurpe/fleet-reports/internal/service"
	"github.com/nurpe/fleet-reports/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)
	decimal.MarshalJSONWithoutQuotes = true

	source, err := newDataSource(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("data_source", cfg.DataSource).Msg("failed to init data source")
	}

	renderer := export.NewRenderer(excel.NewGenerator(), pdf.NewGenerator(), docx.NewGenerator())
	reportService := service.NewReportService(
		source,
		report.NewEngine(cfg.Reports.Policy()),
		renderer,
		service.Options{
			DefaultPageSize:    cfg.Reports.DefaultPageSize,
			RecentLoadsLimit:   cfg.Reports.RecentLoadsLimit,
			TopPerformersLimit: cfg.Reports.TopPerformersLimit,
		},
		log,
	)

	if cfg.Export.ArchiveEnabled() {
		archive, err := storage.NewS3Archive(context.Background(), cfg.Export)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to init export archive")
		}
		reportService.WithArchive(archive)
		log.Info().Str("bucket", cfg.Export.S3Bucket).Msg("export archive enabled")
	}

	handler := httphandler.NewHandler(reportService, log)
	router := httphandler.NewRouter(handler, log, cfg.Environment, cfg.HTTP.AllowedOrigins)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Str("data_source", cfg.DataSource).Msg("starting reports service")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}

func newDataSource(cfg *config.Config, log zerolog.Logger) (service.DataSource, error) {
	if cfg.DataSource == config.DataSourceMemory {
		seed := repository.Seed{}
		if cfg.SeedFile != "" {
			loaded, err := repository.LoadSeedFile(cfg.SeedFile)
			if err != nil {
				return nil, err
			}
			seed = loaded
		}
		log.Info().Str("seed_file", cfg.SeedFile).Int("loads", len(seed.Loads)).Msg("using in-memory data source")
		return repository.NewMemoryStore(seed), nil
	}

	database, err := db.New(cfg, log)
	if err != nil {
		return nil, err
	}
	return repository.NewReportRepository(database), nil
}
