// Package analytics summarises a processed property collection for the dashboard.
package analytics

import (
	"slices"

	"github.com/mamadbah2/realty/internal/domain/models"
)

const (
	topZipCount       = 5
	topPerformerCount = 5

	// DefaultAffordablePrice is the listing price under which a property counts as affordable.
	DefaultAffordablePrice = 300000
)

// Aggregator computes market summaries. Trends are injected because they describe the
// wider market, not the snapshot.
type Aggregator struct {
	trends          models.MarketTrends
	affordablePrice float64
}

// NewAggregator builds an Aggregator. A non-positive affordablePrice falls back to
// DefaultAffordablePrice.
func NewAggregator(trends models.MarketTrends, affordablePrice float64) *Aggregator {
	if affordablePrice <= 0 {
		affordablePrice = DefaultAffordablePrice
	}
	return &Aggregator{trends: trends, affordablePrice: affordablePrice}
}

// Compute returns the headline figures for properties. An empty collection yields zero
// averages, no top zips and zero trends.
func (a *Aggregator) Compute(properties []models.Property) models.MarketAnalytics {
	if len(properties) == 0 {
		return models.MarketAnalytics{TopPerformingZips: []string{}}
	}

	var price, rent, capRate, score float64
	for _, p := range properties {
		price += p.Price
		rent += p.EstimatedRent
		capRate += p.CapRate
		score += float64(p.AIScore)
	}
	n := float64(len(properties))

	return models.MarketAnalytics{
		TotalProperties:   len(properties),
		AveragePrice:      price / n,
		AverageRent:       rent / n,
		AverageCapRate:    capRate / n,
		AverageAIScore:    score / n,
		TopPerformingZips: TopZipCodes(properties, topZipCount),
		MarketTrends:      a.trends,
	}
}

// Overview returns the secondary dashboard figures. TopPerformers assumes properties
// are already ranked.
func (a *Aggregator) Overview(properties []models.Property) models.MarketOverview {
	overview := models.MarketOverview{
		StatusCounts:  map[models.ListingStatus]int{},
		TopPerformers: []models.Property{},
	}
	if len(properties) == 0 {
		return overview
	}

	var coc, cashFlow, dom float64
	affordable := 0
	for _, p := range properties {
		coc += p.CoCReturn
		cashFlow += p.CashFlow
		dom += float64(p.DaysOnMarket)
		if p.Price < a.affordablePrice {
			affordable++
		}
		if p.Status != "" {
			overview.StatusCounts[p.Status]++
		}
	}
	n := float64(len(properties))

	overview.AverageCoCReturn = coc / n
	overview.AverageCashFlow = cashFlow / n
	overview.AverageDaysOnMarket = dom / n
	overview.AffordableShare = float64(affordable) / n * 100

	top := min(topPerformerCount, len(properties))
	overview.TopPerformers = slices.Clone(properties[:top])
	return overview
}

type zipGroup struct {
	zip   string
	total float64
	count int
}

func (g zipGroup) mean() float64 {
	return g.total / float64(g.count)
}

// TopZipCodes returns up to n zip codes ordered by mean AI score, highest first. Zips with
// the same mean keep the order in which they first appear.
func TopZipCodes(properties []models.Property, n int) []string {
	if n <= 0 {
		return []string{}
	}
	index := make(map[string]int)
	var groups []zipGroup
	for _, p := range properties {
		i, ok := index[p.ZipCode]
		if !ok {
			i = len(groups)
			index[p.ZipCode] = i
			groups = append(groups, zipGroup{zip: p.ZipCode})
		}
		groups[i].total += float64(p.AIScore)
		groups[i].count++
	}

	slices.SortStableFunc(groups, func(a, b zipGroup) int {
		switch ma, mb := a.mean(), b.mean(); {
		case ma > mb:
			return -1
		case ma < mb:
			return 1
		}
		return 0
	})

	out := make([]string, 0, min(n, len(groups)))
	for _, g := range groups {
		if len(out) == n {
			break
		}
		out = append(out, g.zip)
	}
	return out
}

// DistinctZipCodes returns the sorted unique zip codes of properties.
func DistinctZipCodes(properties []models.Property) []string {
	return distinct(properties, func(p models.Property) string { return p.ZipCode })
}

// DistinctPropertyTypes returns the sorted unique property types of properties.
func DistinctPropertyTypes(properties []models.Property) []string {
	return distinct(properties, func(p models.Property) string { return string(p.PropertyType) })
}

// Options bundles the distinct values used to build filter controls.
func Options(properties []models.Property) models.FilterOptions {
	return models.FilterOptions{
		ZipCodes:      DistinctZipCodes(properties),
		PropertyTypes: DistinctPropertyTypes(properties),
	}
}

func distinct(properties []models.Property, key func(models.Property) string) []string {
	out := make([]string, 0, len(properties))
	for _, p := range properties {
		out = append(out, key(p))
	}
	slices.Sort(out)
	return slices.Compact(out)
}
