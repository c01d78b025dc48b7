// Package events defines the domain events modules exchange over the bus.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"inmobiliaria_backend/internal/leads/domain"
	"inmobiliaria_backend/platform/events"
)

type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Lead Events
// =============================================================================

// LeadCreated is published after a public submission is stored and scored.
type LeadCreated struct {
	BaseEvent
	Lead domain.Lead `json:"lead"`
}

func (e LeadCreated) EventName() string { return "leads.lead.created" }

// LeadUpdated is published after an admin edit.
type LeadUpdated struct {
	BaseEvent
	Lead          domain.Lead `json:"lead"`
	StatusChanged bool        `json:"statusChanged"`
}

func (e LeadUpdated) EventName() string { return "leads.lead.updated" }

// LeadDeleted is published after an admin removes a lead.
type LeadDeleted struct {
	BaseEvent
	LeadID string `json:"leadId"`
}

func (e LeadDeleted) EventName() string { return "leads.lead.deleted" }

// =============================================================================
// Property Events
// =============================================================================

// SearchCriteria mirrors what the public search sent when nothing matched.
type SearchCriteria struct {
	Operacion string `json:"operacion"`
	Tipo      string `json:"tipo"`
	Zona      string `json:"zona"`
	PrecioMax string `json:"precioMax"`
	Status    string `json:"status"`
}

// PropertyAlertRequested is published when a visitor asks to be told about
// properties matching a search that returned nothing.
type PropertyAlertRequested struct {
	BaseEvent
	Nombre   string         `json:"nombre"`
	Email    string         `json:"email"`
	Telefono string         `json:"telefono,omitempty"`
	Criteria SearchCriteria `json:"criteriosBusqueda"`
}

func (e PropertyAlertRequested) EventName() string { return "properties.alert.requested" }
