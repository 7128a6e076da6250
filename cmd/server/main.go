package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	httpadapter "resume-builder/internal/adapter/http"
	repo "resume-builder/internal/adapter/repository"
	"resume-builder/internal/config"
	"resume-builder/internal/infrastructure/migration"
	"resume-builder/internal/usecase"
	"resume-builder/pkg/generator"
	infra "resume-builder/pkg/infrastructure"
	"resume-builder/pkg/logger"
	"resume-builder/pkg/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("could not load .env", "error", err)
	}

	path := os.Getenv("RESUME_CONFIG")
	if path == "" {
		path = "resume.toml"
	}
	cfg, err := config.Load(path)
	if err != nil {
		slog.Error("invalid configuration", "path", path, "error", err)
		os.Exit(1)
	}
	log := logger.Setup(cfg.LogLevel, os.Stdout, cfg.LogColor)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// drafts are optional; the API answers 503 for them without a database
	var pool *pgxpool.Pool
	if p, err := infra.NewPool(ctx, cfg.DatabaseURL); err != nil {
		log.Warn("drafts database not available", "error", err)
	} else {
		pool = p
		defer pool.Close()
		if err := migration.RunMigrations(ctx, pool); err != nil {
			log.Error("migrations failed", "error", err)
			os.Exit(1)
		}
	}

	m := metrics.New(nil)
	processor := usecase.NewProcessor(
		infra.NewChromedpRenderer(cfg.ChromePath, cfg.TemplatesDir),
		generator.NewClient(cfg.GeneratorURL, cfg.GeneratorTimeout.Duration),
		repo.NewDraftsRepo(pool),
		cfg.TemplatesDir,
		m,
	)

	app := fiber.New(fiber.Config{
		BodyLimit:             cfg.BodyLimit,
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{AllowOrigins: strings.Join(cfg.AllowOrigins, ",")}))
	app.Use(httpadapter.RequestContext())
	app.Use(m.Middleware())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpadapter.NewHandler(processor).Register(app)

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error("shutdown failed", "error", err)
		}
	}()

	log.Info("server listening", "addr", cfg.Addr(), "generator", cfg.GeneratorURL, "drafts", pool != nil)
	if err := app.Listen(cfg.Addr()); err != nil {
		log.Error("server failed", "error", err)
		os.Exit(1)
	}
}
