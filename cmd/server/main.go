package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/arueda/flashdeck/internal/api"
	"github.com/arueda/flashdeck/internal/catalog"
	"github.com/arueda/flashdeck/internal/config"
	"github.com/arueda/flashdeck/internal/logger"
	"github.com/arueda/flashdeck/internal/practice"
	"github.com/arueda/flashdeck/internal/store"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
	)
	logger.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}

	log.Info("Flashdeck Server Starting")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("cards_path=%s", cfg.CardsPath)
	log.Debug("log_level=%s", cfg.LogLevel)

	cardStore := store.NewFileStore(cfg.CardsPath)
	cat, err := catalog.Open(cardStore)
	if err != nil {
		log.Error("failed to load card file: %v", err)
		os.Exit(1)
	}

	log.Debug("loading templates")
	tmpl, err := api.LoadTemplates()
	if err != nil {
		log.Error("failed to load templates: %v", err)
		os.Exit(1)
	}

	srv := &api.Server{
		Catalog:   cat,
		Engine:    practice.New(cat),
		Templates: tmpl,
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Info("Flashdeck Server Stopped")
}
