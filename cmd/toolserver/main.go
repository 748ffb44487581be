package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/ocrandkong/ragflow/internal/router"
	"github.com/ocrandkong/ragflow/internal/scraper"
	"github.com/ocrandkong/ragflow/internal/server"
	"github.com/ocrandkong/ragflow/internal/sheets"
	"github.com/ocrandkong/ragflow/internal/tools"
	"github.com/ocrandkong/ragflow/pkg/config"
	"github.com/ocrandkong/ragflow/pkg/logger"
)

func main() {
	// Initialize logger
	if err := logger.Init(os.Getenv("ENV")); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	log := logger.Get()
	log.Info("Starting tool server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	// The routing tables are static configuration; refuse to start if they
	// reference a source outside the closed set.
	if err := router.Validate(); err != nil {
		log.Fatal("Invalid routing tables", zap.Error(err))
	}

	// Initialize dependencies
	sheetsService := sheets.NewService(cfg.ServiceAccountFile, cfg.SpreadsheetID)
	webScraper := scraper.New(cfg.ScraperUserAgent)
	executor := tools.NewExecutor(sheetsService, webScraper)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: server.New(executor).Router(cfg.IsProduction()),
	}

	go func() {
		log.Info("Listening", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
}
