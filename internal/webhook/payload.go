package webhook

import (
	"encoding/json"
	"time"

	"inmobiliaria_backend/internal/events"
	"inmobiliaria_backend/internal/leads/domain"
)

// AlertRequestType labels alert payloads for the automation side.
const AlertRequestType = "Aviso de búsqueda sin resultados"

// Kinds of delivery, used for logs, metrics and task IDs.
const (
	KindLead  = "lead"
	KindAlert = "property_alert"
)

// dropFromLeadPayload are internal fields the automation does not consume.
var dropFromLeadPayload = []string{"scoreFactors", "updatedAt", "createdAt", "agenteAsignado", "notas"}

// LeadPayload is the submitted form shape (contact and type fields) plus the
// assigned id and score, stamped with the creation time as fecha. tipo keeps
// the form spelling, so renters go out as "Alquiler".
func LeadPayload(lead domain.Lead) ([]byte, error) {
	raw, err := json.Marshal(lead)
	if err != nil {
		return nil, err
	}

	body := make(map[string]any)
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, err
	}
	for _, key := range dropFromLeadPayload {
		delete(body, key)
	}
	body["tipo"] = lead.Tipo.FormLabel()
	body["fecha"] = lead.CreatedAt.UTC().Format(time.RFC3339)

	return json.Marshal(body)
}

type alertCriteria struct {
	Operacion *string `json:"operacion"`
	Tipo      *string `json:"tipo"`
	Zona      *string `json:"zona"`
	PrecioMax *string `json:"precioMax"`
	Status    *string `json:"status"`
}

type alertPayload struct {
	Nombre            string        `json:"nombre"`
	Email             string        `json:"email"`
	Telefono          *string       `json:"telefono"`
	CriteriosBusqueda alertCriteria `json:"criteriosBusqueda"`
	TipoSolicitud     string        `json:"tipoSolicitud"`
	Fecha             string        `json:"fecha"`
}

// AlertPayload renders a no-results alert request. Empty phone and
// criteria values are sent as null.
func AlertPayload(e events.PropertyAlertRequested) ([]byte, error) {
	return json.Marshal(alertPayload{
		Nombre:   e.Nombre,
		Email:    e.Email,
		Telefono: nullable(e.Telefono),
		CriteriosBusqueda: alertCriteria{
			Operacion: nullable(e.Criteria.Operacion),
			Tipo:      nullable(e.Criteria.Tipo),
			Zona:      nullable(e.Criteria.Zona),
			PrecioMax: nullable(e.Criteria.PrecioMax),
			Status:    nullable(e.Criteria.Status),
		},
		TipoSolicitud: AlertRequestType,
		Fecha:         e.OccurredAt().UTC().Format(time.RFC3339),
	})
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
