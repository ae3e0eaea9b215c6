package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/griffincancode/refreshrated/internal/infrastructure/config"
	"github.com/griffincancode/refreshrated/internal/infrastructure/server"
)

func main() {
	port := flag.String("port", "", "HTTP server port (overrides PORT env var)")
	catalogPath := flag.String("catalog", "", "Path to the display mode catalog YAML file (overrides CATALOG_PATH env var)")
	flag.Parse()

	cfg := config.LoadOrDefault()
	if *port != "" {
		cfg.Server.Port = *port
	}
	if *catalogPath != "" {
		cfg.Engine.CatalogPath = *catalogPath
	}

	srv, err := server.NewServer(cfg)
	if err != nil {
		log.Fatalf("failed to create server: %v", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		if err := srv.Run(); err != nil {
			errChan <- err
		}
	}()

	select {
	case <-sigChan:
		log.Println("shutting down gracefully...")
		if err := srv.Close(); err != nil {
			log.Printf("error during shutdown: %v", err)
		}
	case err := <-errChan:
		log.Fatalf("server error: %v", err)
	}
}
