// Package webhook forwards captured leads and property alerts to the
// agency's external automation endpoints.
package webhook

import (
	"inmobiliaria_backend/internal/events"
	apphttp "inmobiliaria_backend/internal/http"
	"inmobiliaria_backend/internal/scheduler"
	"inmobiliaria_backend/platform/config"
	"inmobiliaria_backend/platform/logger"
)

// Module wires the forwarder to the event bus. It exposes no routes.
type Module struct {
	forwarder *Forwarder
}

// NewModule builds the forwarder. queue may be nil when Redis is not configured.
func NewModule(cfg config.WebhookConfig, queue scheduler.WebhookEnqueuer, eventBus events.Bus, log *logger.Logger) *Module {
	sender := NewSender(cfg.GetWebhookTimeout(), log)
	forwarder := NewForwarder(cfg.GetLeadWebhookURL(), cfg.GetAlertWebhookURL(), queue, sender, log)
	forwarder.RegisterHandlers(eventBus)

	if cfg.GetLeadWebhookURL() == "" {
		log.Info("lead webhook not configured, forwarding disabled")
	}

	return &Module{forwarder: forwarder}
}

func (m *Module) Name() string {
	return "webhook"
}

func (m *Module) RegisterRoutes(_ *apphttp.RouterContext) {}

// Forwarder exposes the forwarder so shutdown can wait for inline deliveries.
func (m *Module) Forwarder() *Forwarder {
	return m.forwarder
}

var _ apphttp.Module = (*Module)(nil)
