package main

import (
	"fmt"
	"os"

	"github.com/eduardoceto/waste-logs-service/internal/auth"
	"github.com/eduardoceto/waste-logs-service/internal/config"
	"github.com/eduardoceto/waste-logs-service/internal/db"
	"github.com/eduardoceto/waste-logs-service/internal/excel"
	httphandler "github.com/eduardoceto/waste-logs-service/internal/http"
	"github.com/eduardoceto/waste-logs-service/internal/http/middleware"
	"github.com/eduardoceto/waste-logs-service/internal/logger"
	"github.com/eduardoceto/waste-logs-service/internal/pdf"
	"github.com/eduardoceto/waste-logs-service/internal/repository"
	"github.com/eduardoceto/waste-logs-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	disposalRepo := repository.NewDisposalRepository(database)
	driverRepo := repository.NewDriverRepository(database)

	excelGenerator := excel.NewGenerator(cfg.Export.TemplatesDir, cfg.Export.Destination)
	pdfGenerator := pdf.NewGenerator()

	disposalService := service.NewDisposalService(disposalRepo, driverRepo, excelGenerator, pdfGenerator)
	driverService := service.NewDriverService(driverRepo)

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)
	handler := httphandler.NewHandler(disposalService, driverService, log)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting waste logs service")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
