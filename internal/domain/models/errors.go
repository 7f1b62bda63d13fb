package models

import (
	"errors"
	"fmt"
)

// ErrInvalidProperty indicates a listing whose inputs cannot produce price-based ratios.
var ErrInvalidProperty = errors.New("invalid property")

// InvalidPropertyError reports a listing with a non-positive price.
type InvalidPropertyError struct {
	ID    string
	Price float64
}

func (e *InvalidPropertyError) Error() string {
	return fmt.Sprintf("property %q: price must be positive, got %.2f", e.ID, e.Price)
}

// Unwrap lets callers match with errors.Is(err, ErrInvalidProperty).
func (e *InvalidPropertyError) Unwrap() error {
	return ErrInvalidProperty
}

// ValidatePrice returns an *InvalidPropertyError when the price cannot be divided by.
func ValidatePrice(p Property) error {
	if p.Price <= 0 {
		return &InvalidPropertyError{ID: p.ID, Price: p.Price}
	}
	return nil
}
