package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"inmobiliaria_backend/internal/leads/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

const subjectHotLeadFmt = "Lead caliente: %s (%s, %d pts)"

type hotLeadData struct {
	Title    string
	Nombre   string
	Email    string
	Whatsapp string
	Tipo     string
	Score    int
	Zona     string
	Urgencia string
	Mensaje  string
	Fecha    string
}

func newHotLeadData(lead domain.Lead) hotLeadData {
	return hotLeadData{
		Title:    "Nuevo lead caliente",
		Nombre:   lead.Nombre,
		Email:    lead.Email,
		Whatsapp: lead.Whatsapp,
		Tipo:     string(lead.Tipo),
		Score:    lead.Score,
		Zona:     lead.Zone(),
		Urgencia: lead.Urgency(),
		Mensaje:  lead.Mensaje,
		Fecha:    lead.CreatedAt.Format("02/01/2006 15:04"),
	}
}

func hotLeadSubject(lead domain.Lead) string {
	return fmt.Sprintf(subjectHotLeadFmt, lead.Nombre, lead.Tipo, lead.Score)
}

func renderEmailTemplate(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}
