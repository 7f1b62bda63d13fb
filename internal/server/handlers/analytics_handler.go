package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/realty/internal/service/portfolio"
)

// Refresher reloads the snapshot on demand.
type Refresher interface {
	Refresh(ctx context.Context) (portfolio.RefreshResult, error)
}

// AnalyticsHandler serves market summaries and snapshot maintenance.
type AnalyticsHandler struct {
	svc       PortfolioService
	refresher Refresher
	logger    *zap.Logger
}

// NewAnalyticsHandler constructs the HTTP handler adapter.
func NewAnalyticsHandler(svc PortfolioService, refresher Refresher, logger *zap.Logger) *AnalyticsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalyticsHandler{svc: svc, refresher: refresher, logger: logger}
}

// Analytics returns the headline market figures for the filtered snapshot.
func (h *AnalyticsHandler) Analytics(c *gin.Context) {
	filters, err := bindQueryFilters(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid filters"})
		return
	}
	c.JSON(http.StatusOK, h.svc.Analytics(filters))
}

// Overview returns the secondary dashboard figures for the filtered snapshot.
func (h *AnalyticsHandler) Overview(c *gin.Context) {
	filters, err := bindQueryFilters(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid filters"})
		return
	}
	c.JSON(http.StatusOK, h.svc.Overview(filters))
}

// FilterOptions lists the distinct zip codes and property types.
func (h *AnalyticsHandler) FilterOptions(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.FilterOptions())
}

// Refresh reloads the snapshot from the configured source.
func (h *AnalyticsHandler) Refresh(c *gin.Context) {
	result, err := h.refresher.Refresh(c.Request.Context())
	if err != nil {
		h.logger.Error("manual refresh failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "unable to refresh properties"})
		return
	}
	c.JSON(http.StatusOK, result)
}
