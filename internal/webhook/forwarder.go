package webhook

import (
	"context"
	"fmt"
	"sync"
	"time"

	"inmobiliaria_backend/internal/events"
	"inmobiliaria_backend/internal/scheduler"
	"inmobiliaria_backend/platform/logger"
	"inmobiliaria_backend/platform/metrics"
)

// Forwarder relays new leads and alert requests to the automation webhooks.
// With a queue it enqueues; without one it delivers on a goroutine bounded
// by the sender's timeout. Submitters never see delivery failures.
type Forwarder struct {
	leadURL  string
	alertURL string
	queue    scheduler.WebhookEnqueuer
	sender   *Sender
	log      *logger.Logger

	inline sync.WaitGroup
}

func NewForwarder(leadURL, alertURL string, queue scheduler.WebhookEnqueuer, sender *Sender, log *logger.Logger) *Forwarder {
	return &Forwarder{
		leadURL:  leadURL,
		alertURL: alertURL,
		queue:    queue,
		sender:   sender,
		log:      log,
	}
}

// RegisterHandlers subscribes the forwarder to the bus.
func (f *Forwarder) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.LeadCreated{}.EventName(), events.HandlerFunc(f.handleLeadCreated))
	bus.Subscribe(events.PropertyAlertRequested{}.EventName(), events.HandlerFunc(f.handleAlertRequested))
}

// Wait blocks until inline deliveries started so far have finished.
func (f *Forwarder) Wait() {
	f.inline.Wait()
}

func (f *Forwarder) handleLeadCreated(ctx context.Context, event events.Event) error {
	e, ok := event.(events.LeadCreated)
	if !ok {
		return fmt.Errorf("unexpected event %T", event)
	}
	if f.leadURL == "" {
		return nil
	}

	body, err := LeadPayload(e.Lead)
	if err != nil {
		return fmt.Errorf("lead payload: %w", err)
	}
	return f.dispatch(ctx, KindLead, f.leadURL, e.Lead.ID, body)
}

func (f *Forwarder) handleAlertRequested(ctx context.Context, event events.Event) error {
	e, ok := event.(events.PropertyAlertRequested)
	if !ok {
		return fmt.Errorf("unexpected event %T", event)
	}
	if f.alertURL == "" {
		return nil
	}

	body, err := AlertPayload(e)
	if err != nil {
		return fmt.Errorf("alert payload: %w", err)
	}
	return f.dispatch(ctx, KindAlert, f.alertURL, e.ID, body)
}

func (f *Forwarder) dispatch(ctx context.Context, kind, url, ref string, body []byte) error {
	if f.queue != nil {
		err := f.queue.EnqueueWebhookDelivery(ctx, scheduler.WebhookDeliveryPayload{
			Kind: kind,
			URL:  url,
			Body: body,
			Ref:  ref,
		})
		if err == nil {
			metrics.WebhookDeliveries.WithLabelValues(kind, metrics.OutcomeQueued).Inc()
			return nil
		}
		f.log.Warn("webhook enqueue failed, delivering inline", "kind", kind, "ref", ref, "error", err)
	}

	f.inline.Add(1)
	go func() {
		defer f.inline.Done()
		deliverCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), f.sender.client.Timeout+time.Second)
		defer cancel()
		_ = f.sender.Deliver(deliverCtx, kind, url, body)
	}()
	return nil
}
