// Package email sends the agency a notice for every new hot lead.
package email

import (
	"inmobiliaria_backend/internal/events"
	apphttp "inmobiliaria_backend/internal/http"
	"inmobiliaria_backend/platform/config"
	"inmobiliaria_backend/platform/logger"
)

// Module wires the notifier to the event bus. It exposes no routes.
type Module struct {
	notifier *Notifier
}

// NewModule subscribes the notifier. When email is disabled nothing is
// subscribed and the module is inert.
func NewModule(cfg config.EmailConfig, eventBus events.Bus, log *logger.Logger) *Module {
	if !cfg.GetEmailEnabled() {
		log.Info("email notifications disabled")
		return &Module{}
	}

	sender := NewSMTPSender(
		cfg.GetSMTPHost(),
		cfg.GetSMTPPort(),
		cfg.GetSMTPUsername(),
		cfg.GetSMTPPassword(),
		cfg.GetEmailFromAddress(),
		cfg.GetEmailFromName(),
	)
	notifier := NewNotifier(sender, cfg.GetAgencyNotifyAddress(), log)
	notifier.RegisterHandlers(eventBus)

	return &Module{notifier: notifier}
}

func (m *Module) Name() string {
	return "email"
}

func (m *Module) RegisterRoutes(_ *apphttp.RouterContext) {}

var _ apphttp.Module = (*Module)(nil)
