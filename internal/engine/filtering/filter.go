// Package filtering narrows a processed property collection with sparse predicates.
package filtering

import (
	"slices"

	"github.com/mamadbah2/realty/internal/domain/models"
)

// jobGrowthTolerance absorbs the float error of converting a stored fraction to points,
// e.g. 0.036*100 = 3.5999999999999996.
const jobGrowthTolerance = 1e-9

// Apply returns the properties satisfying every predicate present in filters, in their
// original relative order. The input slice is never modified.
func Apply(properties []models.Property, filters models.PropertyFilters) []models.Property {
	out := make([]models.Property, 0, len(properties))
	if filters.IsEmpty() {
		return append(out, properties...)
	}
	for _, p := range properties {
		if Matches(p, filters) {
			out = append(out, p)
		}
	}
	return out
}

// Matches reports whether p satisfies every predicate present in f.
func Matches(p models.Property, f models.PropertyFilters) bool {
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}

	score := float64(p.AIScore)
	if f.MinAIScore != nil && score < *f.MinAIScore {
		return false
	}
	if f.MaxAIScore != nil && score > *f.MaxAIScore {
		return false
	}

	if len(f.ZipCodes) > 0 && !slices.Contains(f.ZipCodes, p.ZipCode) {
		return false
	}
	if len(f.PropertyTypes) > 0 && !slices.Contains(f.PropertyTypes, string(p.PropertyType)) {
		return false
	}

	if f.MinCapRate != nil && p.CapRate < *f.MinCapRate {
		return false
	}
	if f.MaxCrimeIndex != nil && p.CrimeIndex > *f.MaxCrimeIndex {
		return false
	}
	// minJobGrowth is given in percentage points, the listing stores a fraction.
	if f.MinJobGrowth != nil && p.JobGrowthPoints() < *f.MinJobGrowth-jobGrowthTolerance {
		return false
	}

	return true
}

// TopDeals returns at most n listings from the head of an already ranked slice.
func TopDeals(ranked []models.Property, n int) []models.Property {
	if n <= 0 {
		return []models.Property{}
	}
	if n > len(ranked) {
		n = len(ranked)
	}
	return slices.Clone(ranked[:n])
}
