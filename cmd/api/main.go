package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"

	"homologapi/internal/config"
	"homologapi/internal/convert"
	"homologapi/internal/database"
	"homologapi/internal/database/migration"
	handlers "homologapi/internal/http/handler"
	"homologapi/internal/http/middleware"
	"homologapi/internal/otel"
	"homologapi/internal/render"
	"homologapi/internal/repository/postgres"
	"homologapi/internal/service"
	"homologapi/internal/storage"
)

func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	loc := time.Local

	ctx := context.Background()

	shutdownTracing, err := otel.Init(ctx, loc)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer shutdownTracing(context.Background())

	// PostgreSQL connection (pooled via database/sql, instrumented with otelsql)
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, loc, cfg.Database.Host); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// Object storage archive is optional; skipped when no endpoint is set
	var archive storage.Archive
	if cfg.Archive.Endpoint != "" {
		archive, err = storage.NewMinIO(cfg.Archive)
		if err != nil {
			log.Fatalf("failed to initialize archive storage: %v", err)
		}
	}

	logoURI, err := render.LogoDataURI(cfg.LogoPath)
	if err != nil {
		log.Fatalf("failed to load letterhead logo: %v", err)
	}

	// Conversion chains: primary converter first, fallback second
	timeout := time.Duration(cfg.Converter.TimeoutSec) * time.Second
	pdfChain := convert.NewChain(timeout,
		convert.NewWkhtmltopdf(cfg.Converter.WkhtmltopdfPath),
		convert.NewLibreOffice(cfg.Converter.SofficePath, convert.FormatPDF),
	)
	docxChain := convert.NewChain(timeout,
		convert.NewLibreOffice(cfg.Converter.SofficePath, convert.FormatDOCX),
		convert.NewPandoc(cfg.Converter.PandocPath),
	)

	patientRepo := postgres.NewPatientPostgres(db)
	physicianRepo := postgres.NewPhysicianPostgres(db)
	certSvc := service.NewCertificateService(patientRepo, physicianRepo, pdfChain, docxChain, archive, logoURI)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	promMiddleware, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}

	app.Use(middleware.RequestID())
	app.Use(middleware.Logger())
	app.Use(promMiddleware.Handler())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigin,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, X-Request-ID",
	}))

	handlers.RegisterRoutes(app, db, certSvc)

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
