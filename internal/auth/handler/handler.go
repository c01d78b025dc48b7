package handler

import (
	"errors"
	"net/http"
	"time"

	"inmobiliaria_backend/internal/auth/service"
	"inmobiliaria_backend/internal/auth/transport"
	"inmobiliaria_backend/platform/config"
	"inmobiliaria_backend/platform/httpkit"
	"inmobiliaria_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest   = "invalid request"
	msgMissingFields    = "Email and password required"
	msgBadCredentials   = "Invalid credentials"
	msgValidationFailed = "validation failed"
)

type Handler struct {
	svc *service.Service
	cfg config.AdminConfig
	val *validator.Validator
}

func New(svc *service.Service, cfg config.AdminConfig, val *validator.Validator) *Handler {
	return &Handler{svc: svc, cfg: cfg, val: val}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/login", h.SignIn)
	rg.POST("/logout", h.SignOut)
}

func (h *Handler) SignIn(c *gin.Context) {
	var req transport.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if req.Email == "" || req.Password == "" {
		httpkit.Error(c, http.StatusBadRequest, msgMissingFields, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.Fields(err))
		return
	}

	token, user, err := h.svc.SignIn(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			httpkit.Error(c, http.StatusUnauthorized, msgBadCredentials, nil)
			return
		}
		httpkit.HandleError(c, err)
		return
	}

	h.setAuthCookie(c, token, h.svc.TokenTTL())
	httpkit.OK(c, transport.AuthResponse{Token: token, User: user})
}

func (h *Handler) SignOut(c *gin.Context) {
	h.setAuthCookie(c, "", -time.Second)
	httpkit.OK(c, gin.H{"message": "signed out"})
}

// GetMe returns the signed-in administrator.
func (h *Handler) GetMe(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	httpkit.OK(c, h.svc.User())
}

func (h *Handler) setAuthCookie(c *gin.Context, value string, ttl time.Duration) {
	maxAge := int(ttl / time.Second)
	if ttl < 0 {
		maxAge = -1
	}
	c.SetSameSite(h.cfg.GetAuthCookieSameSite())
	c.SetCookie(
		h.cfg.GetAuthCookieName(),
		value,
		maxAge,
		"/",
		"",
		h.cfg.GetAuthCookieSecure(),
		true,
	)
}
