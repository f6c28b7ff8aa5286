// @title           Library API
// @version         1.0
// @description     Library management API: books, loans and session auth.
// @host            localhost:8080
// @BasePath        /api/v1
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hasbenyek/perpus-sahroni/internal/app"
	"github.com/hasbenyek/perpus-sahroni/internal/config"
	"github.com/hasbenyek/perpus-sahroni/internal/logger"

	"github.com/rs/zerolog/log"

	_ "github.com/hasbenyek/perpus-sahroni/docs"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Init("dev")
		log.Fatal().Err(err).Msg("config")
	}
	logger.Init(cfg.App.Env)
	log.Info().Msg("config loaded, connecting to DB and Redis...")

	application, err := app.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("app init")
	}
	log.Info().Msg("app ready, starting HTTP server")
	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.HTTP.Port,
		Handler:      application.Router(),
		ReadTimeout:  cfg.HTTP.ReadTimeout.Duration(),
		WriteTimeout: cfg.HTTP.WriteTimeout.Duration(),
		IdleTimeout:  cfg.HTTP.IdleTimeout.Duration(),
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	if err := application.Close(ctx); err != nil {
		log.Error().Err(err).Msg("app close")
	}
}
