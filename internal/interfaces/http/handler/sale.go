package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appsales "github.com/retailpos/backend/internal/application/sales"
	"github.com/retailpos/backend/internal/interfaces/http/dto"
	"github.com/retailpos/backend/internal/interfaces/http/middleware"
)

// SaleHandler exposes the sale engine over HTTP
type SaleHandler struct {
	BaseHandler
	service *appsales.SaleService
}

// NewSaleHandler creates a new SaleHandler
func NewSaleHandler(service *appsales.SaleService) *SaleHandler {
	return &SaleHandler{service: service}
}

// RegisterRoutes registers sale routes on the given group
func (h *SaleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	sales := rg.Group("/sales")
	{
		sales.POST("", h.Process)
		sales.GET("/:id", h.GetByID)
		sales.GET("/by-key/:key", h.GetByKey)
	}
}

// Process handles POST /sales: one request, one atomic basket.
// Replays with a known idempotency key return 200 with the original sale
// instead of 201.
func (h *SaleHandler) Process(c *gin.Context) {
	var req dto.ProcessSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(c, err)
		return
	}

	result, err := h.service.Process(c.Request.Context(), req.ToApplication())
	if err != nil {
		h.DomainError(c, err)
		return
	}

	if result.AlreadyProcessed {
		h.Success(c, result)
		return
	}
	h.Created(c, result)
}

// GetByID handles GET /sales/:id
func (h *SaleHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid sale id")
		return
	}

	sale, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, sale)
}

// GetByKey handles GET /sales/by-key/:key
func (h *SaleHandler) GetByKey(c *gin.Context) {
	key := c.Param("key")
	if key == "" {
		h.BadRequest(c, "missing idempotency key")
		return
	}

	sale, err := h.service.GetByIdempotencyKey(c.Request.Context(), key)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, sale)
}
