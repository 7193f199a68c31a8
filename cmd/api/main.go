package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mohammadpnp/person-service/internal/bootstrap"
	"github.com/mohammadpnp/person-service/internal/config"
	"github.com/mohammadpnp/person-service/internal/infrastructure/db/migrations"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load(".env", ".env.local")
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}
	logger := cfg.NewLogger()

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		logger.WithError(err).Fatal("failed to connect database")
	}

	if cfg.MigrateOnStart {
		sqlDB, err := db.DB()
		if err != nil {
			logger.WithError(err).Fatal("failed to get sql db")
		}
		if err := migrations.Up(context.Background(), sqlDB); err != nil {
			logger.WithError(err).Fatal("failed to apply migrations")
		}
	}

	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.WithError(err).Fatal("failed to create pgx pool")
	}
	defer pool.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	server, err := bootstrap.NewHTTPServer(cfg, db, pool, logger, registry)
	if err != nil {
		logger.WithError(err).Fatal("failed to build server")
	}

	go func() {
		logger.WithField("address", cfg.Address()).Info("server starting")
		if err := server.Echo.Start(cfg.Address()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Echo.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("graceful shutdown failed")
	}

	// A running import keeps writing after the listener closes.
	waited := make(chan struct{})
	go func() {
		server.Imports.Wait()
		close(waited)
	}()
	select {
	case <-waited:
	case <-ctx.Done():
		logger.Warn("shutdown timeout reached with an import still running")
	}
	logger.Info("server stopped")
}
