package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appreg "github.com/retailpos/backend/internal/application/register"
	"github.com/retailpos/backend/internal/interfaces/http/middleware"
	"github.com/shopspring/decimal"
)

// SessionHandler exposes cash session operations
type SessionHandler struct {
	BaseHandler
	service *appreg.SessionService
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(service *appreg.SessionService) *SessionHandler {
	return &SessionHandler{service: service}
}

type openSessionRequest struct {
	OpenedBy      uuid.UUID       `json:"opened_by" binding:"required"`
	OpeningAmount decimal.Decimal `json:"opening_amount"`
}

type closeSessionRequest struct {
	DeclaredAmount decimal.Decimal `json:"declared_amount"`
}

// RegisterRoutes registers session routes on the given group
func (h *SessionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	sessions := rg.Group("/sessions")
	{
		sessions.POST("/open", h.Open)
		sessions.POST("/close", h.Close)
		sessions.GET("/current", h.Current)
	}
}

// Open handles POST /sessions/open
func (h *SessionHandler) Open(c *gin.Context) {
	var req openSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(c, err)
		return
	}

	session, err := h.service.Open(c.Request.Context(), appreg.OpenSessionRequest{
		OpenedBy:      req.OpenedBy,
		OpeningAmount: req.OpeningAmount,
	})
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Created(c, session)
}

// Close handles POST /sessions/close
func (h *SessionHandler) Close(c *gin.Context) {
	var req closeSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(c, err)
		return
	}

	session, err := h.service.Close(c.Request.Context(), appreg.CloseSessionRequest{
		DeclaredAmount: req.DeclaredAmount,
	})
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, session)
}

// Current handles GET /sessions/current
func (h *SessionHandler) Current(c *gin.Context) {
	open, err := h.service.HasOpen(c.Request.Context())
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, gin.H{"open": open})
}
