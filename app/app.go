package app

import (
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"gig-marketplace-api/internal/config"
	"gig-marketplace-api/internal/controller"
	"gig-marketplace-api/internal/notify"
	"gig-marketplace-api/internal/repo"
	"gig-marketplace-api/internal/service"
	"gig-marketplace-api/pkg/http_server"
	"gig-marketplace-api/pkg/logger"
	"gig-marketplace-api/pkg/postgres"

	"github.com/golang-migrate/migrate/v4"
	pgmigrate "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/labstack/echo"
)

func runMigrations(postgresDB *postgres.Postgres, sourceUrl string) error {
	driver, err := pgmigrate.WithInstance(postgresDB.Database, &pgmigrate.Config{})
	if err != nil {
		return err
	}

	migrations, err := migrate.NewWithDatabaseInstance(sourceUrl, "postgres", driver)
	if err != nil {
		return err
	}

	if err := migrations.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			slog.Info("no change made by migration scripts")
			return nil
		}

		return err
	}

	return nil
}

func Run() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger.Init(cfg.LogLevel)

	slog.Info("connecting database")
	postgresDB, err := postgres.NewDB(cfg.PostgresConn)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer postgresDB.Close()

	slog.Info("running migrations")
	if err := runMigrations(postgresDB, cfg.MigrationsDir); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	notifier := notify.NewRedisPublisher(cfg.RedisAddr, cfg.RedisPassword)
	defer notifier.Close()

	repositories := repo.NewRepositories(postgresDB)
	services := service.NewServices(repositories, notifier)

	slog.Info("setup routes")
	handler := echo.New()
	controller.SetupRoutesHandlers(handler, services, cfg.JWTSecret, cfg.CORSOrigins)

	slog.Info("starting server", "address", cfg.ServerAddress)
	httpServer := http_server.New(handler, cfg.ServerAddress)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		slog.Info("got signal", "signal", s.String())
	case err = <-httpServer.Notify():
		slog.Error("server stopped", "error", err)
	}

	slog.Info("shutting down")
	if err := httpServer.Shutdown(); err != nil {
		slog.Error("shutdown error", "error", err)
		return
	}

	slog.Info("successful shutdown")
}
