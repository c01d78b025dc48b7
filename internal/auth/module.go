// Package auth provides the authentication bounded context module.
// This file defines the module that encapsulates all auth setup and route registration.
package auth

import (
	apphttp "inmobiliaria_backend/internal/http"
	"inmobiliaria_backend/internal/auth/handler"
	"inmobiliaria_backend/internal/auth/service"
	"inmobiliaria_backend/platform/config"
	"inmobiliaria_backend/platform/logger"
	"inmobiliaria_backend/platform/validator"
)

// Module is the auth bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
}

// NewModule creates the auth module for the static back-office administrator.
func NewModule(cfg config.AdminConfig, development bool, val *validator.Validator, log *logger.Logger) (*Module, error) {
	svc, err := service.New(cfg, development, log)
	if err != nil {
		return nil, err
	}

	return &Module{handler: handler.New(svc, cfg, val)}, nil
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "auth"
}

// RegisterRoutes mounts auth routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	// Public auth routes with stricter rate limiting
	authGroup := ctx.V1.Group("/auth")
	authGroup.Use(ctx.AuthRateLimiter.RateLimit())
	m.handler.RegisterRoutes(authGroup)

	ctx.Protected.GET("/users/me", m.handler.GetMe)
}

var _ apphttp.Module = (*Module)(nil)
