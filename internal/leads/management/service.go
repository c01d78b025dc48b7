// Package management handles lead CRUD operations.
// This is a vertically sliced feature package containing service logic
// for creating, reading, updating, and deleting leads.
package management

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"inmobiliaria_backend/internal/events"
	"inmobiliaria_backend/internal/leads/domain"
	"inmobiliaria_backend/internal/leads/filter"
	"inmobiliaria_backend/internal/leads/repository"
	"inmobiliaria_backend/internal/leads/scoring"
	"inmobiliaria_backend/internal/leads/transport"
	"inmobiliaria_backend/platform/apperr"
	"inmobiliaria_backend/platform/logger"
	"inmobiliaria_backend/platform/metrics"
	"inmobiliaria_backend/platform/phone"
	"inmobiliaria_backend/platform/sanitize"
)

const msgLeadNotFound = "Lead not found"

const statsWindowDays = 30

// Service handles lead management operations (CRUD).
type Service struct {
	store    repository.Store
	eventBus events.Bus
	log      *logger.Logger
	now      func() time.Time
}

// New creates a new lead management service.
func New(store repository.Store, eventBus events.Bus, log *logger.Logger) *Service {
	return &Service{
		store:    store,
		eventBus: eventBus,
		log:      log,
		now:      time.Now,
	}
}

// Create stores a public submission. The store scores it; this method only
// normalizes the form input and announces the new lead.
func (s *Service) Create(ctx context.Context, req transport.CreateLeadRequest) (domain.Lead, error) {
	tipo, ok := domain.ParseLeadType(req.Tipo)
	if !ok {
		return domain.Lead{}, apperr.Validation("invalid lead type")
	}

	params := repository.CreateParams{
		Tipo:         tipo,
		Nombre:       sanitize.Text(req.Nombre),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Whatsapp:     strings.TrimSpace(req.Whatsapp),
		WhatsappE164: phone.NormalizeE164(req.Whatsapp),
		Mensaje:      sanitize.Text(req.Mensaje),
		Details:      detailsFromRequest(tipo, req),
	}

	lead, err := s.store.Create(ctx, params)
	if err != nil {
		return domain.Lead{}, s.mapStoreError(err, "leads.create")
	}

	tier := scoring.Classify(lead.Score)
	metrics.LeadsCreated.WithLabelValues(string(lead.Tipo), string(tier)).Inc()
	metrics.LeadScore.Observe(float64(lead.Score))
	s.log.WithLeadID(lead.ID).Info("lead created", "tipo", lead.Tipo, "score", lead.Score, "tier", tier)

	s.eventBus.Publish(ctx, events.LeadCreated{
		BaseEvent: events.NewBaseEvent(),
		Lead:      lead,
	})

	return lead, nil
}

// detailsFromRequest picks the variant for tipo and keeps the answers as
// submitted. The form hides rooms for non-residential types and asks for a
// free-text zone after "otra"; scoring sees the payload as sent.
func detailsFromRequest(tipo domain.LeadType, req transport.CreateLeadRequest) domain.Details {
	switch tipo {
	case domain.TypeBuyer:
		return domain.BuyerDetails{
			Presupuesto:   strings.TrimSpace(req.Presupuesto),
			Zona:          strings.TrimSpace(req.Zona),
			ZonaOtra:      strings.TrimSpace(req.ZonaOtra),
			TipoPropiedad: strings.TrimSpace(req.TipoPropiedad),
			Habitaciones:  req.Habitaciones,
			Banos:         req.Banos,
			Urgencia:      strings.TrimSpace(req.Urgencia),
		}
	case domain.TypeSeller:
		return domain.SellerDetails{
			ZonaPropiedad:     strings.TrimSpace(req.ZonaPropiedad),
			ZonaPropiedadOtra: strings.TrimSpace(req.ZonaPropiedadOtra),
			TipoVenta:         strings.TrimSpace(req.TipoVenta),
			MetrosCuadrados:   req.MetrosCuadrados,
			HabitacionesVenta: req.HabitacionesVenta,
			BanosVenta:        req.BanosVenta,
			PrecioEsperado:    strings.TrimSpace(req.PrecioEsperado),
			DocumentosRegla:   strings.TrimSpace(req.DocumentosRegla),
			UrgenciaVenta:     strings.TrimSpace(req.UrgenciaVenta),
		}
	default:
		return domain.RenterDetails{
			TipoAlquiler:          strings.TrimSpace(req.TipoAlquiler),
			ZonaAlquiler:          strings.TrimSpace(req.ZonaAlquiler),
			ZonaAlquilerOtra:      strings.TrimSpace(req.ZonaAlquilerOtra),
			TipoPropiedadAlquiler: strings.TrimSpace(req.TipoPropiedadAlquiler),
			PresupuestoAlquiler:   strings.TrimSpace(req.PresupuestoAlquiler),
			UrgenciaAlquiler:      strings.TrimSpace(req.UrgenciaAlquiler),
		}
	}
}

func (s *Service) Get(ctx context.Context, id string) (domain.Lead, error) {
	lead, err := s.store.Get(ctx, id)
	if err != nil {
		return domain.Lead{}, s.mapStoreError(err, "leads.get")
	}
	return lead, nil
}

// Update merges an admin edit. The score stays what intake computed.
func (s *Service) Update(ctx context.Context, id string, req transport.UpdateLeadRequest) (domain.Lead, error) {
	patch := repository.Patch{
		Nombre:         trimmed(req.Nombre),
		Whatsapp:       trimmed(req.Whatsapp),
		Mensaje:        sanitize.TextPtr(req.Mensaje),
		AgenteAsignado: trimmed(req.AgenteAsignado),
		Notas:          sanitize.TextPtr(req.Notas),
		DetailFields:   req.Details,
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		patch.Email = &email
	}
	if req.Whatsapp != nil {
		e164 := phone.NormalizeE164(*req.Whatsapp)
		patch.WhatsappE164 = &e164
	}

	var statusChanged bool
	if req.Estado != nil {
		status := domain.Status(*req.Estado)
		if !status.Valid() {
			return domain.Lead{}, apperr.Validation("invalid status")
		}
		patch.Estado = &status

		current, err := s.store.Get(ctx, id)
		if err != nil {
			return domain.Lead{}, s.mapStoreError(err, "leads.update")
		}
		statusChanged = current.Estado != status
	}

	lead, err := s.store.Update(ctx, id, patch)
	if err != nil {
		return domain.Lead{}, s.mapStoreError(err, "leads.update")
	}

	s.eventBus.Publish(ctx, events.LeadUpdated{
		BaseEvent:     events.NewBaseEvent(),
		Lead:          lead,
		StatusChanged: statusChanged,
	})

	return lead, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return s.mapStoreError(err, "leads.delete")
	}

	s.eventBus.Publish(ctx, events.LeadDeleted{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    id,
	})
	return nil
}

// List returns the leads matching req, oldest first.
func (s *Service) List(ctx context.Context, req transport.ListLeadsRequest) ([]domain.Lead, error) {
	leads, err := s.store.List(ctx)
	if err != nil {
		return nil, s.mapStoreError(err, "leads.list")
	}
	return filter.Leads(leads, CriteriaFromRequest(req)), nil
}

// CriteriaFromRequest turns query parameters into filter criteria. Values
// that name nothing known are kept as is and simply match no lead.
func CriteriaFromRequest(req transport.ListLeadsRequest) filter.Criteria {
	c := filter.Criteria{
		Search: strings.TrimSpace(req.Search),
		State:  domain.Status(strings.TrimSpace(req.Estado)),
	}
	if tipo := strings.TrimSpace(req.Tipo); tipo != "" {
		if parsed, ok := domain.ParseLeadType(tipo); ok {
			c.Type = parsed
		} else {
			c.Type = domain.LeadType(tipo)
		}
	}
	if band := strings.TrimSpace(req.Score); band != "" {
		if parsed, ok := scoring.ParseTier(band); ok {
			c.Band = parsed
		} else {
			c.Band = scoring.Tier(band)
		}
	}
	return c
}

// Stats summarizes every stored lead for the dashboard.
func (s *Service) Stats(ctx context.Context) (transport.LeadStatsResponse, error) {
	leads, err := s.store.List(ctx)
	if err != nil {
		return transport.LeadStatsResponse{}, s.mapStoreError(err, "leads.stats")
	}
	return buildStats(leads, s.now()), nil
}

func buildStats(leads []domain.Lead, now time.Time) transport.LeadStatsResponse {
	resp := transport.LeadStatsResponse{
		Total:       len(leads),
		ByTier:      map[string]int{string(scoring.TierHot): 0, string(scoring.TierWarm): 0, string(scoring.TierCold): 0},
		ByType:      make(map[string]int),
		ByStatus:    make(map[string]int),
		GeneratedAt: now.UTC(),
	}

	today := now.Format(time.DateOnly)
	days := make(map[string]int, statsWindowDays)
	closed := 0

	for _, lead := range leads {
		tier := scoring.Classify(lead.Score)
		resp.ByTier[string(tier)]++
		if tier == scoring.TierHot {
			resp.Hot++
		}
		resp.ByType[string(lead.Tipo)]++
		resp.ByStatus[string(lead.Estado)]++
		if lead.Estado == domain.StatusClosed {
			closed++
		}

		day := lead.CreatedAt.In(now.Location()).Format(time.DateOnly)
		days[day]++
		if day == today {
			resp.Today++
		}
	}

	if resp.Total > 0 {
		rate := float64(closed) / float64(resp.Total) * 100
		resp.ConversionRate = math.Round(rate*10) / 10
	}

	resp.Last30Days = make([]transport.DailyCount, 0, statsWindowDays)
	for i := statsWindowDays - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i).Format(time.DateOnly)
		resp.Last30Days = append(resp.Last30Days, transport.DailyCount{Date: day, Leads: days[day]})
	}

	return resp
}

func (s *Service) mapStoreError(err error, op string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound(msgLeadNotFound).WithOp(op)
	}
	s.log.DatabaseError(op, err)
	return apperr.Wrap(apperr.KindInternal, "lead store unavailable", err).WithOp(op)
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
