package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/doctor-dialogue-server/internal/api"
	"github.com/doctor-dialogue-server/internal/auth"
	"github.com/doctor-dialogue-server/internal/catalog"
	"github.com/doctor-dialogue-server/internal/config"
	"github.com/doctor-dialogue-server/internal/domain"
	"github.com/doctor-dialogue-server/internal/speech"
	"github.com/doctor-dialogue-server/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	logger := newLogger(cfg.Logging)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("Failed to open store: %v", err)
	}
	defer st.Close()

	cat, err := catalog.Open(cfg.Catalog.Path, logger)
	if err != nil {
		logger.Fatalf("Failed to open condition catalog: %v", err)
	}
	defer cat.Close()

	var translator domain.Translator
	if cfg.Translation.Enabled {
		translator = speech.NewHTTPTranslator(cfg.Translation.Endpoint, logger)
	}

	server := api.NewServer(api.Deps{
		Config:     cfg,
		Store:      st,
		Auth:       auth.NewService(st, logger),
		Catalog:    cat,
		Translator: translator,
		Speaker:    speech.NewNullSpeaker(logger),
		Logger:     logger,
	})

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("Shutdown signal received")
		cancel()
	}()

	if err := server.Start(ctx); err != nil {
		logger.Fatalf("Server failed: %v", err)
	}
	logger.Info("Server stopped")
}

func newLogger(cfg config.LoggingConfig) *logrus.Logger {
	logger := logrus.New()
	if level, err := logrus.ParseLevel(cfg.Level); err == nil {
		logger.SetLevel(level)
	}
	if cfg.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return logger
}

func openStore(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (store.Store, error) {
	if cfg.Store.Backend == "postgres" {
		return store.OpenPostgres(ctx, store.PostgresConfig{
			Host:     cfg.Store.Host,
			Port:     cfg.Store.Port,
			Database: cfg.Store.Database,
			Username: cfg.Store.Username,
			Password: cfg.Store.Password,
			SSLMode:  cfg.Store.SSLMode,
			MaxConns: cfg.Store.MaxConns,
		}, logger)
	}
	return store.OpenSQLite(cfg.Store.SQLitePath, logger)
}
