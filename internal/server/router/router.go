package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/realty/internal/server/handlers"
)

// Handlers groups the HTTP adapters mounted by the router.
type Handlers struct {
	Properties *handlers.PropertyHandler
	Analytics  *handlers.AnalyticsHandler
	Chat       *handlers.ChatHandler
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/properties", h.Properties.List)
		api.POST("/properties/search", h.Properties.Search)
		api.GET("/properties/top", h.Properties.Top)
		api.POST("/properties/score", h.Properties.Score)
		api.GET("/properties/:id", h.Properties.Get)

		api.GET("/analytics", h.Analytics.Analytics)
		api.GET("/analytics/overview", h.Analytics.Overview)
		api.GET("/filters/options", h.Analytics.FilterOptions)
		api.POST("/refresh", h.Analytics.Refresh)

		api.POST("/chat", h.Chat.Send)
		api.GET("/chat/:session", h.Chat.History)
		api.DELETE("/chat/:session", h.Chat.Clear)
	}

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
