// Package main is the entry point for the refresh-rate engine daemon.
//
// It loads a display mode catalog and initial policy, constructs an
// internal/refreshrate.Engine, and serves the HTTP control surface
// defined in internal/api/http over gin.
//
// Configuration:
//   - Environment variables (see internal/infrastructure/config)
//   - CLI flags (override env vars): -port, -catalog
//
// Usage:
//
//	# Production mode
//	./server -port 8000 -catalog /etc/refreshrated/catalog.yaml
//
//	# Development mode (set LOG_DEV=true)
//	LOG_DEV=true ./server
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
