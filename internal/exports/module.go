// Package exports serves downloadable snapshots of the admin lead list.
package exports

import (
	apphttp "inmobiliaria_backend/internal/http"
	"inmobiliaria_backend/platform/validator"
)

// Module is the exports bounded context module implementing http.Module.
type Module struct {
	handler *Handler
}

func NewModule(leads LeadLister, val *validator.Validator) *Module {
	return &Module{handler: NewHandler(leads, val)}
}

func (m *Module) Name() string {
	return "exports"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Admin.GET("/leads/export.csv", m.handler.ExportLeadsCSV)
}

var _ apphttp.Module = (*Module)(nil)
