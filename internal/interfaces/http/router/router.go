package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/retailpos/backend/internal/infrastructure/config"
	"github.com/retailpos/backend/internal/interfaces/http/handler"
	"github.com/retailpos/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Handlers groups everything the router mounts
type Handlers struct {
	Sale    *handler.SaleHandler
	Stock   *handler.StockHandler
	Session *handler.SessionHandler
}

// New builds the gin engine with middleware and all routes mounted
func New(cfg *config.Config, logger *zap.Logger, handlers Handlers) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	engine.Use(middleware.Recovery(logger))
	engine.Use(middleware.RequestLogger(logger.Named("http")))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := engine.Group("/api/v1")
	{
		handlers.Sale.RegisterRoutes(v1)
		handlers.Stock.RegisterRoutes(v1)
		handlers.Session.RegisterRoutes(v1)
	}

	return engine
}
