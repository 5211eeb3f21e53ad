package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"feedback-link-service/internal/config"
	"feedback-link-service/internal/database"
	"feedback-link-service/internal/handlers"
	"feedback-link-service/internal/logging"
	"feedback-link-service/internal/notify"
	"feedback-link-service/internal/repository"
	"feedback-link-service/internal/service"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()
	logging.Init("feedback-link-service", cfg.Env, cfg.LogLevel)

	// Open SQLite and create the table before accepting any connection
	db, err := database.Open(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Error().Err(err).Msg("failed to close database")
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := database.EnsureSchema(ctx, db); err != nil {
		cancel()
		log.Fatal().Err(err).Msg("failed to initialize schema")
	}
	cancel()

	linkRepo := repository.NewFeedbackLinkRepo(db)
	notifier := notify.NewLogNotifier()
	linkService := service.NewFeedbackLinkService(linkRepo, notifier, cfg.FeedbackDomain, cfg.LinksLimit)
	linkHandler := handlers.NewFeedbackLinkHandler(linkService)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handlers.NewRouter(linkHandler),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("db", cfg.DBPath).Msg("feedback link service starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
