package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"inmobiliaria_backend/internal/events"
	"inmobiliaria_backend/internal/properties/catalog"
	"inmobiliaria_backend/internal/properties/search"
	"inmobiliaria_backend/internal/properties/transport"
	"inmobiliaria_backend/platform/apperr"
	"inmobiliaria_backend/platform/httpkit"
	"inmobiliaria_backend/platform/sanitize"
	"inmobiliaria_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgAlertAccepted    = "Te avisaremos cuando encontremos propiedades que coincidan con tu búsqueda"
)

// Invalidator drops cached catalog data.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

type Handler struct {
	source      catalog.Source
	invalidator Invalidator
	eventBus    events.Bus
	val         *validator.Validator
}

// New builds the handler. invalidator is nil when no cache is configured.
func New(source catalog.Source, invalidator Invalidator, eventBus events.Bus, val *validator.Validator) *Handler {
	return &Handler{source: source, invalidator: invalidator, eventBus: eventBus, val: val}
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup, alertLimit gin.HandlerFunc) {
	rg.GET("/properties", h.List)
	rg.GET("/properties/featured", h.Featured)
	rg.GET("/properties/:slug", h.GetBySlug)
	rg.POST("/property-alerts", alertLimit, h.CreateAlert)
}

func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/properties/cache/invalidate", h.InvalidateCache)
}

func (h *Handler) List(c *gin.Context) {
	var req transport.SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.Fields(err))
		return
	}

	all, err := h.source.All(c.Request.Context())
	if err != nil {
		httpkit.HandleError(c, catalogError(err))
		return
	}

	items := search.Filter(all, search.Criteria{
		Operation:    req.Operacion,
		PropertyType: req.Tipo,
		Zone:         req.Zona,
		MaxPrice:     req.PrecioMax,
		Status:       req.Status,
	})
	httpkit.OK(c, transport.PropertyListResponse{Items: items, Total: len(items)})
}

func (h *Handler) Featured(c *gin.Context) {
	items, err := h.source.Featured(c.Request.Context())
	if err != nil {
		httpkit.HandleError(c, catalogError(err))
		return
	}
	httpkit.OK(c, transport.PropertyListResponse{Items: items, Total: len(items)})
}

func (h *Handler) GetBySlug(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))
	prop, err := h.source.BySlug(c.Request.Context(), slug)
	if err != nil {
		httpkit.HandleError(c, catalogError(err))
		return
	}
	httpkit.OK(c, prop)
}

// CreateAlert accepts a "notify me" request. Delivery to the automation
// webhook happens off the request path.
func (h *Handler) CreateAlert(c *gin.Context) {
	var req transport.PropertyAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.Fields(err))
		return
	}

	criteria := req.CriteriosBusqueda
	h.eventBus.Publish(c.Request.Context(), events.PropertyAlertRequested{
		BaseEvent: events.NewBaseEvent(),
		Nombre:    sanitize.Text(req.Nombre),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Telefono:  strings.TrimSpace(req.Telefono),
		Criteria: events.SearchCriteria{
			Operacion: strings.TrimSpace(criteria.Operacion),
			Tipo:      strings.TrimSpace(criteria.Tipo),
			Zona:      strings.TrimSpace(criteria.Zona),
			PrecioMax: strings.TrimSpace(criteria.PrecioMax),
			Status:    strings.TrimSpace(criteria.Status),
		},
	})

	httpkit.JSON(c, http.StatusAccepted, transport.PropertyAlertResponse{Success: true, Message: msgAlertAccepted})
}

func (h *Handler) InvalidateCache(c *gin.Context) {
	if h.invalidator != nil {
		if err := h.invalidator.Invalidate(c.Request.Context()); err != nil {
			httpkit.HandleError(c, apperr.Wrap(apperr.KindUnavailable, "catalog cache unavailable", err))
			return
		}
	}
	c.Status(http.StatusNoContent)
}

func catalogError(err error) error {
	if errors.Is(err, catalog.ErrNotFound) {
		return apperr.NotFound("Property not found")
	}
	return apperr.Wrap(apperr.KindUnavailable, "property catalog unavailable", err)
}
