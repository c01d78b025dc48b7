package transport

import (
	"bytes"
	"encoding/json"
	"time"

	"inmobiliaria_backend/internal/leads/domain"
	"inmobiliaria_backend/internal/leads/scoring"
)

// Request DTOs

// CreateLeadRequest is the public form submission. The wire shape is flat:
// contact fields plus whichever type-specific fields the form showed.
type CreateLeadRequest struct {
	Tipo     string `json:"tipo" validate:"required,oneof=Comprador Vendedor Arriendo Alquiler"`
	Nombre   string `json:"nombre" validate:"required,min=1,max=120"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Whatsapp string `json:"whatsapp" validate:"required,min=5,max=30"`
	Mensaje  string `json:"mensaje,omitempty" validate:"max=2000"`

	// Buyer
	Presupuesto   string            `json:"presupuesto,omitempty" validate:"max=100"`
	Zona          string            `json:"zona,omitempty" validate:"max=100"`
	ZonaOtra      string            `json:"zonaOtra,omitempty" validate:"max=100"`
	TipoPropiedad string            `json:"tipoPropiedad,omitempty" validate:"max=50"`
	Habitaciones  domain.FlexString `json:"habitaciones,omitempty" validate:"max=10"`
	Banos         domain.FlexString `json:"banos,omitempty" validate:"max=10"`
	Urgencia      string            `json:"urgencia,omitempty" validate:"max=50"`

	// Seller
	ZonaPropiedad     string            `json:"zonaPropiedad,omitempty" validate:"max=100"`
	ZonaPropiedadOtra string            `json:"zonaPropiedadOtra,omitempty" validate:"max=100"`
	TipoVenta         string            `json:"tipoVenta,omitempty" validate:"max=50"`
	MetrosCuadrados   domain.FlexString `json:"metrosCuadrados,omitempty" validate:"max=20"`
	HabitacionesVenta domain.FlexString `json:"habitacionesVenta,omitempty" validate:"max=10"`
	BanosVenta        domain.FlexString `json:"banosVenta,omitempty" validate:"max=10"`
	PrecioEsperado    string            `json:"precioEsperado,omitempty" validate:"max=100"`
	DocumentosRegla   string            `json:"documentosRegla,omitempty" validate:"max=100"`
	UrgenciaVenta     string            `json:"urgenciaVenta,omitempty" validate:"max=50"`

	// Renter
	TipoAlquiler          string `json:"tipoAlquiler,omitempty" validate:"omitempty,oneof=busco ofrezco"`
	ZonaAlquiler          string `json:"zonaAlquiler,omitempty" validate:"max=100"`
	ZonaAlquilerOtra      string `json:"zonaAlquilerOtra,omitempty" validate:"max=100"`
	TipoPropiedadAlquiler string `json:"tipoPropiedadAlquiler,omitempty" validate:"max=50"`
	PresupuestoAlquiler   string `json:"presupuestoAlquiler,omitempty" validate:"max=100"`
	UrgenciaAlquiler      string `json:"urgenciaAlquiler,omitempty" validate:"max=50"`
}

// UpdateLeadRequest is an admin edit. Absent fields are left untouched.
// Any other string or number field in the body is taken as a type-specific
// detail and collected into Details.
type UpdateLeadRequest struct {
	Nombre         *string `json:"nombre,omitempty" validate:"omitempty,min=1,max=120"`
	Email          *string `json:"email,omitempty" validate:"omitempty,email,max=254"`
	Whatsapp       *string `json:"whatsapp,omitempty" validate:"omitempty,min=5,max=30"`
	Mensaje        *string `json:"mensaje,omitempty" validate:"omitempty,max=2000"`
	Estado         *string `json:"estado,omitempty" validate:"omitempty,oneof=Nuevo Contactado Calificado Visitando Negociando Cerrado Perdido"`
	AgenteAsignado *string `json:"agenteAsignado,omitempty" validate:"omitempty,max=120"`
	Notas          *string `json:"notas,omitempty" validate:"omitempty,max=5000"`

	Details map[string]string `json:"-" validate:"dive,max=100"`
}

// updateCoreKeys are body keys that never count as detail fields.
var updateCoreKeys = map[string]bool{
	"id": true, "tipo": true, "score": true, "scoreFactors": true,
	"whatsappE164": true, "createdAt": true, "updatedAt": true,
	"nombre": true, "email": true, "whatsapp": true, "mensaje": true,
	"estado": true, "agenteAsignado": true, "notas": true,
}

func (r *UpdateLeadRequest) UnmarshalJSON(data []byte) error {
	type core UpdateLeadRequest
	var c core
	if err := json.Unmarshal(data, &c); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	for key, value := range raw {
		if updateCoreKeys[key] {
			continue
		}
		var text domain.FlexString
		if err := json.Unmarshal(value, &text); err != nil {
			// Objects and arrays are not detail fields.
			continue
		}
		if c.Details == nil {
			c.Details = make(map[string]string)
		}
		c.Details[key] = string(bytes.TrimSpace([]byte(text)))
	}

	*r = UpdateLeadRequest(c)
	return nil
}

// ListLeadsRequest carries the admin filter query parameters.
type ListLeadsRequest struct {
	Search string `form:"search" validate:"max=100"`
	Tipo   string `form:"tipo" validate:"max=20"`
	Estado string `form:"estado" validate:"max=20"`
	Score  string `form:"score" validate:"omitempty,oneof=hot warm cold"`
}

// Response DTOs

// LeadView is a lead as the back office shows it: the stored fields plus
// the tier and urgency the classifier derives.
type LeadView struct {
	Lead domain.Lead

	Tier        scoring.Tier
	TierLabel   string
	TierColor   string
	TipoColor   string
	UrgencyTier scoring.UrgencyTier
}

// NewLeadView decorates lead with its classification.
func NewLeadView(lead domain.Lead) LeadView {
	tier := scoring.Classify(lead.Score)
	return LeadView{
		Lead:        lead,
		Tier:        tier,
		TierLabel:   tier.Label(),
		TierColor:   tier.Color(),
		TipoColor:   lead.Tipo.Color(),
		UrgencyTier: scoring.Urgency(lead.Urgency()),
	}
}

// MarshalJSON keeps the lead flat and appends the derived fields.
func (v LeadView) MarshalJSON() ([]byte, error) {
	raw, err := json.Marshal(v.Lead)
	if err != nil {
		return nil, err
	}

	body := make(map[string]any)
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, err
	}
	body["tier"] = v.Tier
	body["tierLabel"] = v.TierLabel
	body["tierColor"] = v.TierColor
	body["tipoColor"] = v.TipoColor
	body["urgenciaNivel"] = v.UrgencyTier

	return json.Marshal(body)
}

type LeadListResponse struct {
	Items []LeadView `json:"items"`
	Total int        `json:"total"`
}

// DailyCount is the number of leads created on one calendar day.
type DailyCount struct {
	Date  string `json:"date"`
	Leads int    `json:"leads"`
}

// LeadStatsResponse feeds the admin dashboard.
type LeadStatsResponse struct {
	Total int `json:"total"`
	Hot   int `json:"hot"`
	Today int `json:"today"`
	// ConversionRate is the percentage of leads in Cerrado, one decimal.
	ConversionRate float64        `json:"conversionRate"`
	ByTier         map[string]int `json:"byTier"`
	ByType         map[string]int `json:"byType"`
	ByStatus       map[string]int `json:"byStatus"`
	Last30Days     []DailyCount   `json:"last30Days"`
	GeneratedAt    time.Time      `json:"generatedAt"`
}

type DeleteLeadResponse struct {
	Success bool `json:"success"`
}
