package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"maridash/internal"
	"maridash/internal/config"
	"maridash/internal/container"
	"maridash/ui"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := internal.NewLogger(internal.ParseLogLevel(appConfig.Log.Level), os.Stderr)

	if appConfig.Server.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	appContainer := container.New(appConfig, logger)

	server, err := ui.NewServer(appContainer.Dashboard, appConfig.Server.Title, logger)
	if err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("serving %d topics from %s", appContainer.Catalogue.Len(), appConfig.Artifacts.BaseURL)
	if err := server.Start(ctx, appConfig.Addr()); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
