package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/mamadbah2/realty/internal/config"
	"github.com/mamadbah2/realty/internal/domain/models"
)

// RangeReader fetches a rectangular range of cells.
type RangeReader interface {
	ReadRange(ctx context.Context, sheetRange string) ([][]interface{}, error)
}

// GoogleSheetRepository reads cells through the official Google Sheets API.
type GoogleSheetRepository struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewGoogleSheetRepository builds a Google Sheets backed repository instance.
func NewGoogleSheetRepository(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*GoogleSheetRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetRepository{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger,
	}, nil
}

// ReadRange fetches a data range with unformatted values, so numbers arrive as numbers.
func (r *GoogleSheetRepository) ReadRange(ctx context.Context, sheetRange string) ([][]interface{}, error) {
	if sheetRange == "" {
		return nil, fmt.Errorf("sheetRange must not be empty")
	}

	resp, err := r.service.Spreadsheets.Values.Get(r.spreadsheetID, sheetRange).
		ValueRenderOption("UNFORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("read range %s: %w", sheetRange, err)
	}

	r.logger.Debug("range read from sheet", zap.String("range", sheetRange), zap.Int("rows", len(resp.Values)))
	return resp.Values, nil
}

// PropertySource turns a sheet whose first row holds column names into listings.
type PropertySource struct {
	reader     RangeReader
	sheetRange string
	logger     *zap.Logger
}

// NewPropertySource wraps reader. Rows that cannot be parsed are skipped and logged.
func NewPropertySource(reader RangeReader, sheetRange string, logger *zap.Logger) *PropertySource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PropertySource{reader: reader, sheetRange: sheetRange, logger: logger}
}

// ListProperties reads the configured range and parses every data row.
func (s *PropertySource) ListProperties(ctx context.Context) ([]models.Property, error) {
	rows, err := s.reader.ReadRange(ctx, s.sheetRange)
	if err != nil {
		return nil, err
	}

	properties := make([]models.Property, 0, len(rows))
	if len(rows) == 0 {
		return properties, nil
	}

	header := headerIndex(rows[0])
	if _, ok := header["id"]; !ok {
		return nil, fmt.Errorf("sheet range %s: header row has no id column", s.sheetRange)
	}

	for i, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		p, err := parseRow(header, row)
		if err != nil {
			// Sheet rows are 1-based and the header takes the first one.
			s.logger.Warn("skipping sheet row", zap.Int("row", i+2), zap.Error(err))
			continue
		}
		properties = append(properties, p)
	}
	return properties, nil
}
