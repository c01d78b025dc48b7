package exports

import (
	"context"
	"net/http"
	"time"

	"inmobiliaria_backend/internal/leads/domain"
	"inmobiliaria_backend/internal/leads/transport"
	"inmobiliaria_backend/platform/httpkit"
	"inmobiliaria_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

// LeadLister returns the filtered admin lead list. Satisfied by management.Service.
type LeadLister interface {
	List(ctx context.Context, req transport.ListLeadsRequest) ([]domain.Lead, error)
}

// Handler serves lead exports.
type Handler struct {
	leads LeadLister
	val   *validator.Validator
	now   func() time.Time
}

func NewHandler(leads LeadLister, val *validator.Validator) *Handler {
	return &Handler{leads: leads, val: val, now: time.Now}
}

// ExportLeadsCSV streams the list the admin currently has filtered.
func (h *Handler) ExportLeadsCSV(c *gin.Context) {
	var req transport.ListLeadsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", validator.Fields(err))
		return
	}

	leads, err := h.leads.List(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", "attachment; filename="+FileName(h.now()))
	c.Status(http.StatusOK)
	if err := WriteLeadsCSV(c.Writer, leads); err != nil {
		_ = c.Error(err)
	}
}
