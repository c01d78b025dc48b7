// Package http provides HTTP server infrastructure including module registration.
package http

import (
	"context"

	"inmobiliaria_backend/internal/events"
	"inmobiliaria_backend/platform/config"
	"inmobiliaria_backend/platform/logger"
)

// RouterConfig combines the config interfaces needed by the HTTP router.
type RouterConfig interface {
	config.HTTPConfig
	config.JWTConfig
	GetAuthCookieName() string
}

// HealthChecker exposes minimal functionality for readiness checks.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// App holds the fully initialized application dependencies.
// This is populated by main.go (the composition root) and passed to the router.
type App struct {
	Config RouterConfig
	Logger *logger.Logger
	// Health is pinged by /api/health (lead store).
	Health   HealthChecker
	EventBus events.Bus
	Modules  []Module
}
