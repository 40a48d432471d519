// Command halserver serves the projects API as HAL
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/celestiaorg/hypermedia/config"
	"github.com/celestiaorg/hypermedia/internal/app"
	"github.com/celestiaorg/hypermedia/internal/db"
	"github.com/celestiaorg/hypermedia/internal/logger"
)

func main() {
	logger.InitializeAndConfigure()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}
	conn, err := db.New(cfg.DB)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	server, err := app.New(app.Options{
		DB:                   conn,
		BaseURL:              cfg.BaseURL,
		Types:                cfg.Types,
		CurieName:            cfg.Curie.Name,
		CurieHref:            cfg.Curie.Href,
		DisablePluralization: cfg.DisablePluralization,
	})
	if err != nil {
		logger.Fatalf("Failed to create server: %v", err)
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info("Shutting down server")
		if err := server.Shutdown(); err != nil {
			logger.Errorf("Failed to shut down server: %v", err)
		}
	}()

	logger.InfoWithFields("Starting server", map[string]interface{}{
		"address":  cfg.Address,
		"base_url": cfg.BaseURL,
		"types":    cfg.Types,
	})
	if err := server.Listen(cfg.Address); err != nil {
		logger.Fatalf("Server stopped: %v", err)
	}
}
