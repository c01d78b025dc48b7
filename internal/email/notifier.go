package email

import (
	"context"
	"fmt"
	"time"

	"inmobiliaria_backend/internal/events"
	"inmobiliaria_backend/internal/leads/scoring"
	"inmobiliaria_backend/platform/logger"
)

const sendTimeout = 30 * time.Second

// Notifier emails the agency when a hot lead comes in. Warm and cold leads
// only reach the dashboard and the automation webhook.
type Notifier struct {
	sender Sender
	to     string
	log    *logger.Logger
}

func NewNotifier(sender Sender, to string, log *logger.Logger) *Notifier {
	return &Notifier{sender: sender, to: to, log: log}
}

// RegisterHandlers subscribes the notifier to the bus.
func (n *Notifier) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.LeadCreated{}.EventName(), events.HandlerFunc(n.handleLeadCreated))
}

func (n *Notifier) handleLeadCreated(ctx context.Context, event events.Event) error {
	e, ok := event.(events.LeadCreated)
	if !ok {
		return fmt.Errorf("unexpected event %T", event)
	}
	if n.to == "" || scoring.Classify(e.Lead.Score) != scoring.TierHot {
		return nil
	}

	content, err := renderEmailTemplate("hot_lead.html", newHotLeadData(e.Lead))
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	if err := n.sender.Send(ctx, n.to, hotLeadSubject(e.Lead), content); err != nil {
		return fmt.Errorf("hot lead notice for %s: %w", e.Lead.ID, err)
	}
	n.log.WithLeadID(e.Lead.ID).Info("hot lead notice sent", "score", e.Lead.Score)
	return nil
}
