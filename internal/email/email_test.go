package email

import (
	"context"
	"errors"
	"testing"
	"time"

	"inmobiliaria_backend/internal/events"
	"inmobiliaria_backend/internal/leads/domain"
	"inmobiliaria_backend/platform/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMessage struct {
	to      string
	subject string
	body    string
}

type fakeSender struct {
	sent []sentMessage
	err  error
}

func (f *fakeSender) Send(_ context.Context, to, subject, body string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMessage{to: to, subject: subject, body: body})
	return nil
}

func buyerLead(score int) domain.Lead {
	return domain.Lead{
		ID:       "lead-1",
		Tipo:     domain.TypeBuyer,
		Nombre:   "Ana García",
		Email:    "ana@example.com",
		Whatsapp: "600111222",
		Mensaje:  "Busco <b>ático</b>",
		Details: domain.BuyerDetails{
			Zona:     "Norte",
			Urgencia: domain.UrgencyUnderOneMonth,
		},
		Score:     score,
		Estado:    domain.StatusNew,
		CreatedAt: time.Date(2026, 3, 9, 10, 30, 0, 0, time.UTC),
	}
}

func publish(t *testing.T, n *Notifier, lead domain.Lead) error {
	t.Helper()
	bus := events.NewInMemoryBus(logger.Nop())
	n.RegisterHandlers(bus)
	return bus.PublishSync(context.Background(), events.LeadCreated{
		BaseEvent: events.NewBaseEvent(),
		Lead:      lead,
	})
}

func TestNotifierSendsHotLeads(t *testing.T) {
	sender := &fakeSender{}
	n := NewNotifier(sender, "agencia@example.com", logger.Nop())

	require.NoError(t, publish(t, n, buyerLead(85)))

	require.Len(t, sender.sent, 1)
	msg := sender.sent[0]
	assert.Equal(t, "agencia@example.com", msg.to)
	assert.Equal(t, "Lead caliente: Ana García (Comprador, 85 pts)", msg.subject)
	assert.Contains(t, msg.body, "Ana García")
	assert.Contains(t, msg.body, "Norte")
	assert.Contains(t, msg.body, "09/03/2026 10:30")
	assert.Contains(t, msg.body, "&lt;b&gt;ático&lt;/b&gt;")
}

func TestNotifierSkipsWarmAndCold(t *testing.T) {
	sender := &fakeSender{}
	n := NewNotifier(sender, "agencia@example.com", logger.Nop())

	require.NoError(t, publish(t, n, buyerLead(69)))
	require.NoError(t, publish(t, n, buyerLead(10)))

	assert.Empty(t, sender.sent)
}

func TestNotifierWithoutRecipientIsInert(t *testing.T) {
	sender := &fakeSender{}
	n := NewNotifier(sender, "", logger.Nop())

	require.NoError(t, publish(t, n, buyerLead(100)))
	assert.Empty(t, sender.sent)
}

func TestNotifierReportsSendFailure(t *testing.T) {
	sender := &fakeSender{err: errors.New("connection refused")}
	n := NewNotifier(sender, "agencia@example.com", logger.Nop())

	err := publish(t, n, buyerLead(90))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lead-1")
}

func TestRenderOmitsEmptyOptionalRows(t *testing.T) {
	lead := buyerLead(80)
	lead.Details = domain.BuyerDetails{}
	lead.Mensaje = ""

	body, err := renderEmailTemplate("hot_lead.html", newHotLeadData(lead))
	require.NoError(t, err)
	assert.NotContains(t, body, "Zona")
	assert.NotContains(t, body, "Urgencia")
	assert.NotContains(t, body, "Mensaje")
}

func TestNoopSender(t *testing.T) {
	assert.NoError(t, NoopSender{}.Send(context.Background(), "a@b.c", "s", "b"))
}
