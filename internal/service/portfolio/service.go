// Package portfolio keeps the scored listing snapshot that the API and the assistant read.
package portfolio

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/realty/internal/domain/models"
	"github.com/mamadbah2/realty/internal/engine/analytics"
	"github.com/mamadbah2/realty/internal/engine/filtering"
	"github.com/mamadbah2/realty/internal/engine/scoring"
	"github.com/mamadbah2/realty/internal/repository"
)

// DefaultTopDeals is the number of listings returned when no limit is given.
const DefaultTopDeals = 10

// ErrPropertyNotFound indicates the snapshot has no listing with the requested id.
var ErrPropertyNotFound = errors.New("property not found")

// RefreshResult summarises one reload of the snapshot.
type RefreshResult struct {
	Loaded      int       `json:"loaded"`
	Ranked      int       `json:"ranked"`
	Rejected    int       `json:"rejected"`
	RefreshedAt time.Time `json:"refreshedAt"`
}

// Service owns the current ranked snapshot. Readers always receive copies.
type Service struct {
	source     repository.PropertySource
	engine     *scoring.Engine
	aggregator *analytics.Aggregator
	logger     *zap.Logger
	now        func() time.Time

	mu          sync.RWMutex
	ranked      []models.Property
	refreshedAt time.Time
}

// NewService wires a new portfolio service instance.
func NewService(source repository.PropertySource, engine *scoring.Engine, aggregator *analytics.Aggregator, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		source:     source,
		engine:     engine,
		aggregator: aggregator,
		logger:     logger,
		now:        time.Now,
		ranked:     []models.Property{},
	}
}

// Refresh reloads listings from the source, scores them and swaps the snapshot. On a
// source error the previous snapshot stays in place.
func (s *Service) Refresh(ctx context.Context) (RefreshResult, error) {
	raw, err := s.source.ListProperties(ctx)
	if err != nil {
		return RefreshResult{}, fmt.Errorf("load properties: %w", err)
	}

	ranked, rejected := s.engine.ProcessAndRank(raw)
	for _, rejectErr := range rejected {
		s.logger.Warn("property rejected", zap.Error(rejectErr))
	}

	refreshedAt := s.now()
	s.mu.Lock()
	s.ranked = ranked
	s.refreshedAt = refreshedAt
	s.mu.Unlock()

	result := RefreshResult{
		Loaded:      len(raw),
		Ranked:      len(ranked),
		Rejected:    len(rejected),
		RefreshedAt: refreshedAt,
	}
	s.logger.Info("portfolio refreshed",
		zap.Int("loaded", result.Loaded),
		zap.Int("ranked", result.Ranked),
		zap.Int("rejected", result.Rejected),
	)
	return result, nil
}

// RefreshedAt returns when the snapshot was last replaced, zero before the first refresh.
func (s *Service) RefreshedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshedAt
}

func (s *Service) snapshot() []models.Property {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.ranked)
}

// Properties returns the ranked listings matching filters.
func (s *Service) Properties(filters models.PropertyFilters) []models.Property {
	return filtering.Apply(s.snapshot(), filters)
}

// Property returns one processed listing.
func (s *Service) Property(id string) (models.Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.ranked {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Property{}, fmt.Errorf("%w: %s", ErrPropertyNotFound, id)
}

// TopDeals returns the best n listings matching filters. A non-positive n means DefaultTopDeals.
func (s *Service) TopDeals(filters models.PropertyFilters, n int) []models.Property {
	if n <= 0 {
		n = DefaultTopDeals
	}
	return filtering.TopDeals(s.Properties(filters), n)
}

// Analytics summarises the listings matching filters.
func (s *Service) Analytics(filters models.PropertyFilters) models.MarketAnalytics {
	return s.aggregator.Compute(s.Properties(filters))
}

// Overview returns the secondary dashboard figures for the listings matching filters.
func (s *Service) Overview(filters models.PropertyFilters) models.MarketOverview {
	return s.aggregator.Overview(s.Properties(filters))
}

// FilterOptions lists the values present in the whole snapshot.
func (s *Service) FilterOptions() models.FilterOptions {
	return analytics.Options(s.snapshot())
}

// Score ranks an ad-hoc list without touching the snapshot.
func (s *Service) Score(properties []models.Property) ([]models.Property, []error) {
	return s.engine.ProcessAndRank(properties)
}
