// Package leads provides the lead management bounded context module.
// This file defines the module that encapsulates all leads setup and route registration.
package leads

import (
	"inmobiliaria_backend/internal/events"
	apphttp "inmobiliaria_backend/internal/http"
	"inmobiliaria_backend/internal/leads/handler"
	"inmobiliaria_backend/internal/leads/management"
	"inmobiliaria_backend/internal/leads/repository"
	"inmobiliaria_backend/platform/config"
	"inmobiliaria_backend/platform/httpkit"
	"inmobiliaria_backend/platform/logger"
	"inmobiliaria_backend/platform/validator"
)

// Module is the leads bounded context module implementing http.Module.
type Module struct {
	handler    *handler.Handler
	management *management.Service
	intake     *httpkit.IPRateLimiter
}

// NewModule creates the leads module on top of store, which is the memory
// store or the Postgres store depending on configuration.
func NewModule(store repository.Store, eventBus events.Bus, val *validator.Validator, cfg config.HTTPConfig, log *logger.Logger) *Module {
	mgmtSvc := management.New(store, eventBus, log)

	return &Module{
		handler:    handler.New(mgmtSvc, val),
		management: mgmtSvc,
		intake:     httpkit.NewPerMinuteLimiter(cfg.GetIntakeRatePerMinute(), log),
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leads"
}

// Service exposes the management service for other modules (exports).
func (m *Module) Service() *management.Service {
	return m.management
}

// RegisterRoutes mounts lead routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterPublicRoutes(ctx.V1.Group("/leads"), m.intake.RateLimit())
	m.handler.RegisterAdminRoutes(ctx.Admin.Group("/leads"))
}

var _ apphttp.Module = (*Module)(nil)
