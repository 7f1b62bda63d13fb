// Package repository defines where raw listings come from.
package repository

import (
	"context"

	"github.com/mamadbah2/realty/internal/domain/models"
)

// PropertySource loads the raw listings. Derived fields of the returned properties are
// ignored; the scoring engine recomputes them.
type PropertySource interface {
	ListProperties(ctx context.Context) ([]models.Property, error)
}

// SourceFunc adapts a function to PropertySource.
type SourceFunc func(ctx context.Context) ([]models.Property, error)

// ListProperties calls f.
func (f SourceFunc) ListProperties(ctx context.Context) ([]models.Property, error) {
	return f(ctx)
}
