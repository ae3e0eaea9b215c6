/*
Package monitoring provides performance monitoring and metrics collection
for the refresh-rate engine.

# Overview

This package implements Prometheus-based metrics collection, tracking HTTP
requests and the engine's own arbitration decisions: chosen mode, decision
latency, touch/idle overrides, memo hit rate, and active frame-rate owners.

# Features

- HTTP request metrics (latency, throughput, size)
- Arbitration decision metrics (chosen mode, duration, touch/idle overrides)
- Policy rejection counters by reason
- Memoization hit/miss counters
- Uptime gauge

# Usage

	// Create metrics collector
	metrics := monitoring.NewMetrics()

	// Add middleware to Gin router
	router.Use(monitoring.Middleware(metrics))

	// Record a decision
	metrics.RecordDecision(chosenMode, duration, touch, idle)

# Metrics Endpoint

Expose metrics via the standard Prometheus endpoint:

	router.GET("/metrics", gin.WrapH(metrics.Handler()))
*/
package monitoring
