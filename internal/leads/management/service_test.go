package management

import (
	"context"
	"sync"
	"testing"
	"time"

	"inmobiliaria_backend/internal/events"
	"inmobiliaria_backend/internal/leads/domain"
	"inmobiliaria_backend/internal/leads/repository"
	"inmobiliaria_backend/internal/leads/transport"
	"inmobiliaria_backend/platform/apperr"
	"inmobiliaria_backend/platform/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingBus struct {
	mu     sync.Mutex
	events []events.Event
}

func (b *recordingBus) Publish(_ context.Context, e events.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, e)
}

func (b *recordingBus) PublishSync(ctx context.Context, e events.Event) error {
	b.Publish(ctx, e)
	return nil
}

func (b *recordingBus) Subscribe(string, events.Handler) {}

func newService() (*Service, *recordingBus) {
	bus := &recordingBus{}
	return New(repository.NewMemoryStore(), bus, logger.Nop()), bus
}

func buyerRequest() transport.CreateLeadRequest {
	return transport.CreateLeadRequest{
		Tipo:          "Comprador",
		Nombre:        "  Ana <b>García</b> ",
		Email:         "Ana@Example.com",
		Whatsapp:      "600 111 222",
		Presupuesto:   "300.000€ - 500.000€",
		Zona:          "Norte",
		TipoPropiedad: "piso",
		Habitaciones:  "3",
		Urgencia:      domain.UrgencyUnderOneMonth,
	}
}

func TestCreateScoresNormalizesAndPublishes(t *testing.T) {
	svc, bus := newService()

	lead, err := svc.Create(context.Background(), buyerRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, lead.ID)
	assert.Equal(t, "Ana García", lead.Nombre)
	assert.Equal(t, "ana@example.com", lead.Email)
	assert.Equal(t, "600 111 222", lead.Whatsapp)
	assert.Equal(t, "+34600111222", lead.WhatsappE164)
	assert.Equal(t, domain.StatusNew, lead.Estado)
	assert.Equal(t, 90, lead.Score)

	require.Len(t, bus.events, 1)
	created, ok := bus.events[0].(events.LeadCreated)
	require.True(t, ok)
	assert.Equal(t, lead.ID, created.Lead.ID)
}

func TestCreateNormalizesRenterAlias(t *testing.T) {
	svc, _ := newService()

	lead, err := svc.Create(context.Background(), transport.CreateLeadRequest{
		Tipo:         "Alquiler",
		Nombre:       "Marta",
		Email:        "marta@example.com",
		Whatsapp:     "600333444",
		TipoAlquiler: "busco",
		ZonaAlquiler: "otra",

		ZonaAlquilerOtra: " Ensanche ",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.TypeRenter, lead.Tipo)
	assert.Equal(t, 10, lead.Score)
	assert.Equal(t, "otra", lead.Zone())
	assert.Equal(t, "Ensanche", lead.Details.(domain.RenterDetails).ZonaAlquilerOtra)
}

func TestCreateScoresRoomsWhateverThePropertyType(t *testing.T) {
	svc, _ := newService()

	req := buyerRequest()
	req.TipoPropiedad = "garaje"
	lead, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	d := lead.Details.(domain.BuyerDetails)
	assert.Equal(t, domain.FlexString("3"), d.Habitaciones)
	assert.Equal(t, 90, lead.Score)
	assert.Equal(t, 5, lead.ScoreFactors["bedrooms"])
}

func TestCreateKeepsOtherZoneUnresolved(t *testing.T) {
	svc, _ := newService()

	req := buyerRequest()
	req.Zona = "otra"
	req.ZonaOtra = "Centro"
	lead, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	d := lead.Details.(domain.BuyerDetails)
	assert.Equal(t, "otra", d.Zona)
	assert.Equal(t, "Centro", d.ZonaOtra)
	assert.Equal(t, 75, lead.Score)
	assert.NotContains(t, lead.ScoreFactors, "premium_zone")
}

func TestCreateRejectsUnknownType(t *testing.T) {
	svc, _ := newService()

	req := buyerRequest()
	req.Tipo = "Inversor"
	_, err := svc.Create(context.Background(), req)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestUpdateKeepsScoreAndMergesDetails(t *testing.T) {
	svc, bus := newService()
	ctx := context.Background()

	lead, err := svc.Create(ctx, buyerRequest())
	require.NoError(t, err)

	estado := string(domain.StatusContacted)
	notas := "Llamar <i>mañana</i>"
	updated, err := svc.Update(ctx, lead.ID, transport.UpdateLeadRequest{
		Estado:  &estado,
		Notas:   &notas,
		Details: map[string]string{"zona": "Sur", "urgencia": ""},
	})
	require.NoError(t, err)

	assert.Equal(t, lead.Score, updated.Score)
	assert.Equal(t, domain.StatusContacted, updated.Estado)
	require.NotNil(t, updated.Notas)
	assert.Equal(t, "Llamar mañana", *updated.Notas)
	assert.Equal(t, "Sur", updated.Zone())
	assert.Equal(t, "", updated.Urgency())

	last := bus.events[len(bus.events)-1].(events.LeadUpdated)
	assert.True(t, last.StatusChanged)
}

func TestUpdateRejectsUnknownStatus(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	lead, err := svc.Create(ctx, buyerRequest())
	require.NoError(t, err)

	estado := "Archivado"
	_, err = svc.Update(ctx, lead.ID, transport.UpdateLeadRequest{Estado: &estado})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestUnknownIDIsNotFound(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	_, err := svc.Get(ctx, "missing")
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	nombre := "x"
	_, err = svc.Update(ctx, "missing", transport.UpdateLeadRequest{Nombre: &nombre})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	assert.True(t, apperr.Is(svc.Delete(ctx, "missing"), apperr.KindNotFound))
}

func TestDeleteRemovesLead(t *testing.T) {
	svc, bus := newService()
	ctx := context.Background()

	lead, err := svc.Create(ctx, buyerRequest())
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, lead.ID))

	_, err = svc.Get(ctx, lead.ID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	_, ok := bus.events[len(bus.events)-1].(events.LeadDeleted)
	assert.True(t, ok)
}

func TestListFilters(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	_, err := svc.Create(ctx, buyerRequest())
	require.NoError(t, err)
	_, err = svc.Create(ctx, transport.CreateLeadRequest{
		Tipo: "Vendedor", Nombre: "Pedro", Email: "pedro@example.com", Whatsapp: "600222333",
	})
	require.NoError(t, err)

	all, err := svc.List(ctx, transport.ListLeadsRequest{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	hot, err := svc.List(ctx, transport.ListLeadsRequest{Score: "hot"})
	require.NoError(t, err)
	require.Len(t, hot, 1)
	assert.Equal(t, "Ana García", hot[0].Nombre)

	sellers, err := svc.List(ctx, transport.ListLeadsRequest{Tipo: "Vendedor", Search: "PEDRO"})
	require.NoError(t, err)
	assert.Len(t, sellers, 1)

	none, err := svc.List(ctx, transport.ListLeadsRequest{Tipo: "Inversor"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestBuildStats(t *testing.T) {
	now := time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)
	leads := []domain.Lead{
		{Tipo: domain.TypeBuyer, Score: 90, Estado: domain.StatusClosed, CreatedAt: now.Add(-time.Hour)},
		{Tipo: domain.TypeBuyer, Score: 50, Estado: domain.StatusNew, CreatedAt: now.AddDate(0, 0, -1)},
		{Tipo: domain.TypeSeller, Score: 10, Estado: domain.StatusNew, CreatedAt: now.AddDate(0, 0, -40)},
	}

	stats := buildStats(leads, now)

	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.Hot)
	assert.Equal(t, 1, stats.Today)
	assert.Equal(t, 33.3, stats.ConversionRate)
	assert.Equal(t, map[string]int{"hot": 1, "warm": 1, "cold": 1}, stats.ByTier)
	assert.Equal(t, 2, stats.ByType["Comprador"])
	assert.Equal(t, 2, stats.ByStatus["Nuevo"])

	require.Len(t, stats.Last30Days, 30)
	assert.Equal(t, "2026-06-10", stats.Last30Days[29].Date)
	assert.Equal(t, 1, stats.Last30Days[29].Leads)
	assert.Equal(t, 1, stats.Last30Days[28].Leads)
}

func TestBuildStatsEmpty(t *testing.T) {
	stats := buildStats(nil, time.Now())
	assert.Zero(t, stats.Total)
	assert.Zero(t, stats.ConversionRate)
}
