package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appinv "github.com/retailpos/backend/internal/application/inventory"
	"github.com/retailpos/backend/internal/interfaces/http/middleware"
	"github.com/shopspring/decimal"
)

// StockHandler exposes inbound stock operations and stock queries
type StockHandler struct {
	BaseHandler
	service *appinv.StockService
}

// NewStockHandler creates a new StockHandler
func NewStockHandler(service *appinv.StockService) *StockHandler {
	return &StockHandler{service: service}
}

// receiveStockRequest is the wire form of a bulk intake
type receiveStockRequest struct {
	ProductID   uuid.UUID       `json:"product_id" binding:"required"`
	WarehouseID uuid.UUID       `json:"warehouse_id" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	Reason      string          `json:"reason" binding:"max=255"`
	OperatorID  uuid.UUID       `json:"operator_id" binding:"required"`
}

// registerSerialsRequest is the wire form of a serialized intake
type registerSerialsRequest struct {
	ProductID   uuid.UUID `json:"product_id" binding:"required"`
	WarehouseID uuid.UUID `json:"warehouse_id" binding:"required"`
	Serials     []string  `json:"serials" binding:"required,min=1,dive,min=1,max=100"`
	OperatorID  uuid.UUID `json:"operator_id" binding:"required"`
}

// RegisterRoutes registers stock routes on the given group
func (h *StockHandler) RegisterRoutes(rg *gin.RouterGroup) {
	stock := rg.Group("/stock")
	{
		stock.POST("/receive", h.Receive)
		stock.POST("/serials", h.RegisterSerials)
		stock.GET("/levels/:product_id/:warehouse_id", h.GetLevel)
		stock.GET("/movements/:product_id", h.GetMovements)
	}
}

// Receive handles POST /stock/receive
func (h *StockHandler) Receive(c *gin.Context) {
	var req receiveStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(c, err)
		return
	}

	level, err := h.service.Receive(c.Request.Context(), appinv.ReceiveStockRequest{
		ProductID:   req.ProductID,
		WarehouseID: req.WarehouseID,
		Quantity:    req.Quantity,
		Reason:      req.Reason,
		OperatorID:  req.OperatorID,
	})
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, level)
}

// RegisterSerials handles POST /stock/serials
func (h *StockHandler) RegisterSerials(c *gin.Context) {
	var req registerSerialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(c, err)
		return
	}

	level, err := h.service.RegisterSerializedUnits(c.Request.Context(), appinv.RegisterSerialsRequest{
		ProductID:   req.ProductID,
		WarehouseID: req.WarehouseID,
		Serials:     req.Serials,
		OperatorID:  req.OperatorID,
	})
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, level)
}

// GetLevel handles GET /stock/levels/:product_id/:warehouse_id
func (h *StockHandler) GetLevel(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		h.BadRequest(c, "invalid product id")
		return
	}
	warehouseID, err := uuid.Parse(c.Param("warehouse_id"))
	if err != nil {
		h.BadRequest(c, "invalid warehouse id")
		return
	}

	level, err := h.service.GetLevel(c.Request.Context(), productID, warehouseID)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, level)
}

// GetMovements handles GET /stock/movements/:product_id
func (h *StockHandler) GetMovements(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		h.BadRequest(c, "invalid product id")
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	movements, err := h.service.GetMovements(c.Request.Context(), productID, limit)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, movements)
}
