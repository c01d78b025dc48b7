package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"inmobiliaria_backend/internal/events"
	"inmobiliaria_backend/internal/leads/domain"
	"inmobiliaria_backend/internal/scheduler"
	"inmobiliaria_backend/platform/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu     sync.Mutex
	bodies []map[string]any
	status int
}

func (r *recorder) server(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		data, _ := io.ReadAll(req.Body)
		var body map[string]any
		_ = json.Unmarshal(data, &body)

		r.mu.Lock()
		r.bodies = append(r.bodies, body)
		status := r.status
		r.mu.Unlock()

		if status == 0 {
			status = http.StatusOK
		}
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func (r *recorder) received() []map[string]any {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]map[string]any(nil), r.bodies...)
}

type fakeQueue struct {
	payloads []scheduler.WebhookDeliveryPayload
	err      error
}

func (q *fakeQueue) EnqueueWebhookDelivery(_ context.Context, p scheduler.WebhookDeliveryPayload) error {
	if q.err != nil {
		return q.err
	}
	q.payloads = append(q.payloads, p)
	return nil
}

func buyerLead() domain.Lead {
	return domain.Lead{
		ID:       "4f7d1c2a-0000-4000-8000-000000000001",
		Tipo:     domain.TypeBuyer,
		Nombre:   "Ana García",
		Email:    "ana@example.com",
		Whatsapp: "+34600111222",
		Details: domain.BuyerDetails{
			Presupuesto: "300.000€ - 500.000€",
			Zona:        "Norte",
			Urgencia:    domain.UrgencyUnderOneMonth,
		},
		Score:        90,
		ScoreFactors: map[string]int{"budget": 30},
		Estado:       domain.StatusNew,
		CreatedAt:    time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC),
	}
}

func TestLeadPayloadShape(t *testing.T) {
	data, err := LeadPayload(buyerLead())
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(data, &body))

	assert.Equal(t, "Comprador", body["tipo"])
	assert.Equal(t, "Norte", body["zona"])
	assert.Equal(t, float64(90), body["score"])
	assert.Equal(t, "2026-03-04T10:00:00Z", body["fecha"])
	assert.NotContains(t, body, "scoreFactors")
	assert.NotContains(t, body, "zonaPropiedad")
}

func TestLeadPayloadUsesFormSpellingForRenters(t *testing.T) {
	lead := buyerLead()
	lead.Tipo = domain.TypeRenter
	lead.Details = domain.RenterDetails{TipoAlquiler: "busco", ZonaAlquiler: "Centro"}

	data, err := LeadPayload(lead)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Equal(t, "Alquiler", body["tipo"])
	assert.Equal(t, "Centro", body["zonaAlquiler"])
}

func TestAlertPayloadNullPhone(t *testing.T) {
	e := events.PropertyAlertRequested{
		BaseEvent: events.NewBaseEvent(),
		Nombre:    "Luis",
		Email:     "luis@example.com",
		Criteria:  events.SearchCriteria{Operacion: "venta", Zona: "Centro"},
	}
	data, err := AlertPayload(e)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Contains(t, body, "telefono")
	assert.Nil(t, body["telefono"])
	assert.Equal(t, AlertRequestType, body["tipoSolicitud"])
	criteria := body["criteriosBusqueda"].(map[string]any)
	assert.Equal(t, "Centro", criteria["zona"])
	assert.Contains(t, criteria, "tipo")
	assert.Nil(t, criteria["tipo"])
}

func TestSenderNon2xxIsError(t *testing.T) {
	rec := &recorder{status: http.StatusBadGateway}
	srv := rec.server(t)

	err := NewSender(time.Second, logger.Nop()).Deliver(context.Background(), KindLead, srv.URL, []byte(`{}`))
	assert.Error(t, err)
	assert.Len(t, rec.received(), 1)
}

func TestForwarderDeliversInlineWithoutQueue(t *testing.T) {
	rec := &recorder{}
	srv := rec.server(t)

	f := NewForwarder(srv.URL, "", nil, NewSender(time.Second, logger.Nop()), logger.Nop())
	err := f.handleLeadCreated(context.Background(), events.LeadCreated{BaseEvent: events.NewBaseEvent(), Lead: buyerLead()})
	require.NoError(t, err)
	f.Wait()

	got := rec.received()
	require.Len(t, got, 1)
	assert.Equal(t, "Ana García", got[0]["nombre"])
}

func TestForwarderEnqueuesWhenQueued(t *testing.T) {
	q := &fakeQueue{}
	f := NewForwarder("https://hooks.example/lead", "", q, NewSender(time.Second, logger.Nop()), logger.Nop())

	lead := buyerLead()
	require.NoError(t, f.handleLeadCreated(context.Background(), events.LeadCreated{Lead: lead}))

	require.Len(t, q.payloads, 1)
	assert.Equal(t, KindLead, q.payloads[0].Kind)
	assert.Equal(t, lead.ID, q.payloads[0].Ref)
	assert.Equal(t, "https://hooks.example/lead", q.payloads[0].URL)
}

func TestForwarderFallsBackWhenEnqueueFails(t *testing.T) {
	rec := &recorder{}
	srv := rec.server(t)
	q := &fakeQueue{err: errors.New("redis down")}

	f := NewForwarder("", srv.URL, q, NewSender(time.Second, logger.Nop()), logger.Nop())
	e := events.PropertyAlertRequested{BaseEvent: events.NewBaseEvent(), Nombre: "Luis", Email: "luis@example.com"}
	require.NoError(t, f.handleAlertRequested(context.Background(), e))
	f.Wait()

	assert.Len(t, rec.received(), 1)
}

func TestForwarderSkipsWithoutURL(t *testing.T) {
	q := &fakeQueue{}
	f := NewForwarder("", "", q, NewSender(time.Second, logger.Nop()), logger.Nop())

	require.NoError(t, f.handleLeadCreated(context.Background(), events.LeadCreated{Lead: buyerLead()}))
	require.NoError(t, f.handleAlertRequested(context.Background(), events.PropertyAlertRequested{}))
	assert.Empty(t, q.payloads)
}

func TestForwarderSubscribesToBus(t *testing.T) {
	rec := &recorder{}
	srv := rec.server(t)

	bus := events.NewInMemoryBus(logger.Nop())
	f := NewForwarder(srv.URL, "", nil, NewSender(time.Second, logger.Nop()), logger.Nop())
	f.RegisterHandlers(bus)

	require.NoError(t, bus.PublishSync(context.Background(), events.LeadCreated{BaseEvent: events.NewBaseEvent(), Lead: buyerLead()}))
	f.Wait()

	assert.Len(t, rec.received(), 1)
}
