// Package domain holds the lead model and the rules that do not depend on
// storage or transport.
package domain

import (
	"strings"
	"time"
)

// LeadType is the mutually exclusive lead category.
type LeadType string

const (
	TypeBuyer  LeadType = "Comprador"
	TypeSeller LeadType = "Vendedor"
	TypeRenter LeadType = "Arriendo"
)

// renterAlias is how the public form names the renter category.
const renterAlias = "Alquiler"

// ParseLeadType accepts both spellings of the renter category and returns
// the canonical type.
func ParseLeadType(s string) (LeadType, bool) {
	switch strings.TrimSpace(s) {
	case string(TypeBuyer):
		return TypeBuyer, true
	case string(TypeSeller):
		return TypeSeller, true
	case string(TypeRenter), renterAlias:
		return TypeRenter, true
	default:
		return "", false
	}
}

// Status is the lead's position in the agency's follow-up pipeline.
type Status string

const (
	StatusNew         Status = "Nuevo"
	StatusContacted   Status = "Contactado"
	StatusQualified   Status = "Calificado"
	StatusVisiting    Status = "Visitando"
	StatusNegotiating Status = "Negociando"
	StatusClosed      Status = "Cerrado"
	StatusLost        Status = "Perdido"
)

// Statuses lists every status in pipeline order.
var Statuses = []Status{
	StatusNew,
	StatusContacted,
	StatusQualified,
	StatusVisiting,
	StatusNegotiating,
	StatusClosed,
	StatusLost,
}

// Valid reports whether s is one of Statuses.
func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// Details is the type-specific part of a lead. Exactly one variant is
// attached to a lead and it always matches the lead's Tipo.
type Details interface {
	Type() LeadType
}

// BuyerDetails are the answers of someone looking to buy.
type BuyerDetails struct {
	Presupuesto   string     `json:"presupuesto,omitempty"`
	Zona          string     `json:"zona,omitempty"`
	ZonaOtra      string     `json:"zonaOtra,omitempty"`
	TipoPropiedad string     `json:"tipoPropiedad,omitempty"`
	Habitaciones  FlexString `json:"habitaciones,omitempty"`
	Banos         FlexString `json:"banos,omitempty"`
	Urgencia      string     `json:"urgencia,omitempty"`
}

func (BuyerDetails) Type() LeadType { return TypeBuyer }

// SellerDetails are the answers of an owner looking to sell.
type SellerDetails struct {
	ZonaPropiedad     string     `json:"zonaPropiedad,omitempty"`
	ZonaPropiedadOtra string     `json:"zonaPropiedadOtra,omitempty"`
	TipoVenta         string     `json:"tipoVenta,omitempty"`
	MetrosCuadrados   FlexString `json:"metrosCuadrados,omitempty"`
	HabitacionesVenta FlexString `json:"habitacionesVenta,omitempty"`
	BanosVenta        FlexString `json:"banosVenta,omitempty"`
	PrecioEsperado    string     `json:"precioEsperado,omitempty"`
	DocumentosRegla   string     `json:"documentosRegla,omitempty"`
	UrgenciaVenta     string     `json:"urgenciaVenta,omitempty"`
}

func (SellerDetails) Type() LeadType { return TypeSeller }

// RenterDetails are the answers of someone renting, either side.
type RenterDetails struct {
	TipoAlquiler          string `json:"tipoAlquiler,omitempty"`
	ZonaAlquiler          string `json:"zonaAlquiler,omitempty"`
	ZonaAlquilerOtra      string `json:"zonaAlquilerOtra,omitempty"`
	TipoPropiedadAlquiler string `json:"tipoPropiedadAlquiler,omitempty"`
	PresupuestoAlquiler   string `json:"presupuestoAlquiler,omitempty"`
	UrgenciaAlquiler      string `json:"urgenciaAlquiler,omitempty"`
}

func (RenterDetails) Type() LeadType { return TypeRenter }

// Lead is a prospective client inquiry captured from the public site.
type Lead struct {
	ID             string
	Tipo           LeadType
	Nombre         string
	Email          string
	Whatsapp       string
	WhatsappE164   string
	Mensaje        string
	Details        Details
	Score          int
	ScoreFactors   map[string]int
	Estado         Status
	AgenteAsignado *string
	Notas          *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Zone is the zone shown in listings: the buyer zone, else the seller's
// property zone, else the renter zone. Empty when none was given.
func (l Lead) Zone() string {
	switch d := l.Details.(type) {
	case BuyerDetails:
		return d.Zona
	case SellerDetails:
		return d.ZonaPropiedad
	case RenterDetails:
		return d.ZonaAlquiler
	}
	return ""
}

// Urgency is the urgency label answered for the lead's type.
func (l Lead) Urgency() string {
	switch d := l.Details.(type) {
	case BuyerDetails:
		return d.Urgencia
	case SellerDetails:
		return d.UrgenciaVenta
	case RenterDetails:
		return d.UrgenciaAlquiler
	}
	return ""
}

// EmptyDetails returns the zero variant for t, or nil for an unknown type.
func EmptyDetails(t LeadType) Details {
	switch t {
	case TypeBuyer:
		return BuyerDetails{}
	case TypeSeller:
		return SellerDetails{}
	case TypeRenter:
		return RenterDetails{}
	}
	return nil
}

// FormLabel is the spelling the public form and the automation use for t.
func (t LeadType) FormLabel() string {
	if t == TypeRenter {
		return renterAlias
	}
	return string(t)
}

// Color is the UI badge color token for the lead type.
func (t LeadType) Color() string {
	switch t {
	case TypeBuyer:
		return "bg-blue-100 text-blue-800"
	case TypeSeller:
		return "bg-green-100 text-green-800"
	case TypeRenter:
		return "bg-orange-100 text-orange-800"
	default:
		return "bg-gray-100 text-gray-800"
	}
}
