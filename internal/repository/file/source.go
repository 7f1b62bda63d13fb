// Package file loads listings from a JSON document on disk.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/mamadbah2/realty/internal/domain/models"
)

// ErrMissingProperties is returned for a JSON object with no "properties" key.
var ErrMissingProperties = errors.New(`listings object has no "properties" key`)

// Source reads a JSON array of listings each time it is asked.
type Source struct {
	path string
}

// NewSource returns a Source for path.
func NewSource(path string) *Source {
	return &Source{path: path}
}

// ListProperties reads and decodes the file.
func (s *Source) ListProperties(ctx context.Context) ([]models.Property, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read listings file %s: %w", s.path, err)
	}
	properties, err := Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("listings file %s: %w", s.path, err)
	}
	return properties, nil
}

// Decode parses either a bare JSON array of listings or an object with a "properties" array.
func Decode(raw []byte) ([]models.Property, error) {
	var properties []models.Property
	if err := json.Unmarshal(raw, &properties); err == nil {
		if properties == nil {
			properties = []models.Property{}
		}
		return properties, nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decode listings: %w", err)
	}
	body, ok := envelope["properties"]
	if !ok {
		return nil, ErrMissingProperties
	}
	if err := json.Unmarshal(body, &properties); err != nil {
		return nil, fmt.Errorf("decode listings: %w", err)
	}
	if properties == nil {
		properties = []models.Property{}
	}
	return properties, nil
}
