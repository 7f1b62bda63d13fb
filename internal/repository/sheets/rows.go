package sheets

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mamadbah2/realty/internal/domain/models"
)

// headerIndex maps a normalized column name to its position.
func headerIndex(row []interface{}) map[string]int {
	index := make(map[string]int, len(row))
	for i, cell := range row {
		name := normalizeHeader(fmt.Sprint(cell))
		if name == "" {
			continue
		}
		if _, seen := index[name]; !seen {
			index[name] = i
		}
	}
	return index
}

// normalizeHeader lets "Zip Code", "zip_code" and "zipCode" name the same column.
func normalizeHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(s)
}

func isBlank(row []interface{}) bool {
	for _, cell := range row {
		if strings.TrimSpace(fmt.Sprint(cell)) != "" {
			return false
		}
	}
	return true
}

type rowReader struct {
	header map[string]int
	row    []interface{}
	err    error
}

func (r *rowReader) cell(column string) (interface{}, bool) {
	i, ok := r.header[column]
	if !ok || i >= len(r.row) || r.row[i] == nil {
		return nil, false
	}
	if s, isString := r.row[i].(string); isString && strings.TrimSpace(s) == "" {
		return nil, false
	}
	return r.row[i], true
}

func (r *rowReader) str(column string) string {
	v, ok := r.cell(column)
	if !ok {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(v))
}

func (r *rowReader) number(column string) float64 {
	v, ok := r.cell(column)
	if !ok || r.err != nil {
		return 0
	}
	f, err := parseFloat(v)
	if err != nil {
		r.err = fmt.Errorf("column %s: %w", column, err)
	}
	return f
}

func (r *rowReader) integer(column string) int {
	v, ok := r.cell(column)
	if !ok || r.err != nil {
		return 0
	}
	n, err := parseInt(v)
	if err != nil {
		r.err = fmt.Errorf("column %s: %w", column, err)
	}
	return n
}

func parseRow(header map[string]int, row []interface{}) (models.Property, error) {
	r := &rowReader{header: header, row: row}

	p := models.Property{
		ID:                r.str("id"),
		Address:           r.str("address"),
		City:              r.str("city"),
		State:             r.str("state"),
		ZipCode:           r.str("zipcode"),
		Price:             r.number("price"),
		EstimatedRent:     r.number("estimatedrent"),
		Bedrooms:          r.integer("bedrooms"),
		Bathrooms:         r.number("bathrooms"),
		Sqft:              r.integer("sqft"),
		YearBuilt:         r.integer("yearbuilt"),
		PropertyType:      models.PropertyType(r.str("propertytype")),
		Status:            models.ListingStatus(r.str("status")),
		MonthlyExpenses:   r.number("monthlyexpenses"),
		TaxesAnnual:       r.number("taxesannual"),
		InsuranceAnnual:   r.number("insuranceannual"),
		MaintenanceAnnual: r.number("maintenanceannual"),
		CrimeIndex:        r.number("crimeindex"),
		JobGrowthPercent:  r.number("jobgrowthpercent"),
		SchoolRating:      r.number("schoolrating"),
		WalkScore:         r.number("walkscore"),
		Zoning:            r.str("zoning"),
		TaxOwed:           r.number("taxowed"),
		Violations:        r.integer("violations"),
		ListingDate:       r.str("listingdate"),
		DaysOnMarket:      r.integer("daysonmarket"),
		MLS:               r.str("mls"),
	}
	if r.err != nil {
		return models.Property{}, r.err
	}
	if p.ID == "" {
		return models.Property{}, fmt.Errorf("missing id")
	}
	return p, nil
}

func parseFloat(value interface{}) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	}
	str := strings.TrimSpace(fmt.Sprint(value))
	if str == "" {
		return 0, fmt.Errorf("empty numeric value")
	}
	str = strings.NewReplacer("$", "", ",", "").Replace(str)
	return strconv.ParseFloat(str, 64)
}

func parseInt(value interface{}) (int, error) {
	f, err := parseFloat(value)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("%v is not a whole number", value)
	}
	return int(f), nil
}
