package repository

import (
	"context"
	"errors"
	"time"

	"inmobiliaria_backend/internal/leads/domain"
	"inmobiliaria_backend/internal/leads/scoring"
)

// ErrNotFound is returned for any operation on an unknown lead ID.
var ErrNotFound = errors.New("lead not found")

// LeadReader provides read-only access to leads.
type LeadReader interface {
	Get(ctx context.Context, id string) (domain.Lead, error)
	// List returns every lead, oldest first. Filtering is the caller's job.
	List(ctx context.Context) ([]domain.Lead, error)
}

// LeadWriter provides the mutating operations.
type LeadWriter interface {
	// Create stamps ID, timestamps, score and the initial status.
	Create(ctx context.Context, params CreateParams) (domain.Lead, error)
	// Update merges the patch and refreshes UpdatedAt. The score is kept.
	Update(ctx context.Context, id string, patch Patch) (domain.Lead, error)
	Delete(ctx context.Context, id string) error
}

// Store is the full lead storage contract.
type Store interface {
	LeadReader
	LeadWriter
}

// CreateParams is a validated intake submission.
type CreateParams struct {
	Tipo         domain.LeadType
	Nombre       string
	Email        string
	Whatsapp     string
	WhatsappE164 string
	Mensaje      string
	Details      domain.Details
}

// Patch holds the fields an edit changes; nil means "leave as is".
// DetailFields is keyed by the JSON field names of the lead's variant;
// keys that do not belong to it are ignored.
type Patch struct {
	Nombre         *string
	Email          *string
	Whatsapp       *string
	WhatsappE164   *string
	Mensaje        *string
	Estado         *domain.Status
	AgenteAsignado *string
	Notas          *string
	DetailFields   map[string]string
}

// newLead builds the stored form of a submission. Both stores use it so
// scoring and defaults cannot drift between them.
func newLead(params CreateParams, id string, now time.Time) domain.Lead {
	details := params.Details
	if details == nil {
		details = domain.EmptyDetails(params.Tipo)
	}

	res := scoring.Score(scoring.Input{
		Email:    params.Email,
		Whatsapp: params.Whatsapp,
		Details:  details,
	})

	return domain.Lead{
		ID:           id,
		Tipo:         params.Tipo,
		Nombre:       params.Nombre,
		Email:        params.Email,
		Whatsapp:     params.Whatsapp,
		WhatsappE164: params.WhatsappE164,
		Mensaje:      params.Mensaje,
		Details:      details,
		Score:        res.Score,
		ScoreFactors: res.Factors,
		Estado:       domain.StatusNew,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// apply merges p into lead. Score and type are never touched.
func (p Patch) apply(lead *domain.Lead, now time.Time) error {
	setIf(&lead.Nombre, p.Nombre)
	setIf(&lead.Email, p.Email)
	setIf(&lead.Whatsapp, p.Whatsapp)
	setIf(&lead.WhatsappE164, p.WhatsappE164)
	setIf(&lead.Mensaje, p.Mensaje)
	if p.Estado != nil {
		lead.Estado = *p.Estado
	}
	if p.AgenteAsignado != nil {
		lead.AgenteAsignado = cloneString(p.AgenteAsignado)
	}
	if p.Notas != nil {
		lead.Notas = cloneString(p.Notas)
	}
	if len(p.DetailFields) > 0 {
		merged, err := domain.MergeDetails(lead.Tipo, lead.Details, p.DetailFields)
		if err != nil {
			return err
		}
		lead.Details = merged
	}
	lead.UpdatedAt = now
	return nil
}

func setIf(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
