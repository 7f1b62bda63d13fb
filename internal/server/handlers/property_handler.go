package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/realty/internal/domain/models"
	"github.com/mamadbah2/realty/internal/service/portfolio"
)

// maxScoreBatch bounds the ad-hoc scoring request.
const maxScoreBatch = 1000

// PortfolioService is the snapshot surface exposed over HTTP.
type PortfolioService interface {
	Properties(filters models.PropertyFilters) []models.Property
	Property(id string) (models.Property, error)
	TopDeals(filters models.PropertyFilters, n int) []models.Property
	Analytics(filters models.PropertyFilters) models.MarketAnalytics
	Overview(filters models.PropertyFilters) models.MarketOverview
	FilterOptions() models.FilterOptions
	Score(properties []models.Property) ([]models.Property, []error)
	RefreshedAt() time.Time
}

// PropertyHandler serves the ranked listings.
type PropertyHandler struct {
	svc    PortfolioService
	logger *zap.Logger
}

// NewPropertyHandler constructs the HTTP handler adapter.
func NewPropertyHandler(svc PortfolioService, logger *zap.Logger) *PropertyHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PropertyHandler{svc: svc, logger: logger}
}

type propertiesResponse struct {
	Count       int               `json:"count"`
	RefreshedAt time.Time         `json:"refreshedAt"`
	Properties  []models.Property `json:"properties"`
}

// List returns the ranked listings matching the query-string filters.
func (h *PropertyHandler) List(c *gin.Context) {
	filters, ok := h.bindQueryFilters(c)
	if !ok {
		return
	}
	h.respond(c, h.svc.Properties(filters))
}

// Search is List with the filters in a JSON body.
func (h *PropertyHandler) Search(c *gin.Context) {
	var filters models.PropertyFilters
	if c.Request.ContentLength == 0 {
		h.respond(c, h.svc.Properties(filters))
		return
	}
	if err := c.ShouldBindJSON(&filters); err != nil {
		h.logger.Warn("invalid search payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid filters"})
		return
	}
	h.respond(c, h.svc.Properties(filters))
}

// Top returns the best listings, limited by ?limit (default 10).
func (h *PropertyHandler) Top(c *gin.Context) {
	filters, ok := h.bindQueryFilters(c)
	if !ok {
		return
	}

	limit := portfolio.DefaultTopDeals
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	h.respond(c, h.svc.TopDeals(filters, limit))
}

// Get returns one listing by id.
func (h *PropertyHandler) Get(c *gin.Context) {
	p, err := h.svc.Property(c.Param("id"))
	if errors.Is(err, portfolio.ErrPropertyNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
		return
	}
	if err != nil {
		h.logger.Error("failed loading property", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load property"})
		return
	}
	c.JSON(http.StatusOK, p)
}

type rejection struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

// Score ranks the listings in the request body without storing them.
func (h *PropertyHandler) Score(c *gin.Context) {
	var payload []models.Property
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.logger.Warn("invalid score payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body must be a JSON array of properties"})
		return
	}
	if len(payload) > maxScoreBatch {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "too many properties in one request"})
		return
	}

	ranked, rejected := h.svc.Score(payload)
	rejections := make([]rejection, 0, len(rejected))
	for _, err := range rejected {
		r := rejection{Error: err.Error()}
		var invalid *models.InvalidPropertyError
		if errors.As(err, &invalid) {
			r.ID = invalid.ID
		}
		rejections = append(rejections, r)
	}

	c.JSON(http.StatusOK, gin.H{"properties": ranked, "rejected": rejections})
}

func (h *PropertyHandler) respond(c *gin.Context, list []models.Property) {
	c.JSON(http.StatusOK, propertiesResponse{
		Count:       len(list),
		RefreshedAt: h.svc.RefreshedAt(),
		Properties:  list,
	})
}

func (h *PropertyHandler) bindQueryFilters(c *gin.Context) (models.PropertyFilters, bool) {
	filters, err := bindQueryFilters(c)
	if err != nil {
		h.logger.Warn("invalid filter query", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid filters"})
		return filters, false
	}
	return filters, true
}

// bindQueryFilters reads PropertyFilters from the query string. List values may repeat
// the key or be comma separated.
func bindQueryFilters(c *gin.Context) (models.PropertyFilters, error) {
	var filters models.PropertyFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		return filters, err
	}
	filters.ZipCodes = splitValues(filters.ZipCodes)
	filters.PropertyTypes = splitValues(filters.PropertyTypes)
	return filters, nil
}

func splitValues(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
