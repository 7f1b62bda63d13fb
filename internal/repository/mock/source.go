// Package mock serves a fixed set of listings for demos and local development.
package mock

import (
	"context"
	"slices"

	"github.com/mamadbah2/realty/internal/domain/models"
)

// Source returns a copy of a static dataset.
type Source struct {
	properties []models.Property
}

// NewSource serves the built-in dataset.
func NewSource() *Source {
	return &Source{properties: Properties()}
}

// NewSourceWith serves the given listings.
func NewSourceWith(properties []models.Property) *Source {
	return &Source{properties: slices.Clone(properties)}
}

// ListProperties returns the dataset.
func (s *Source) ListProperties(ctx context.Context) ([]models.Property, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slices.Clone(s.properties), nil
}

// Properties returns the built-in demo listings.
func Properties() []models.Property {
	return []models.Property{
		{
			ID: "prop-001", Address: "1204 E 7th St", City: "Austin", State: "TX", ZipCode: "78702",
			Price: 385000, EstimatedRent: 2850, Bedrooms: 3, Bathrooms: 2, Sqft: 1450, YearBuilt: 2012,
			PropertyType: models.PropertyTypeSingleFamily, Status: models.StatusForSale,
			MonthlyExpenses: 150, TaxesAnnual: 7200, InsuranceAnnual: 1800, MaintenanceAnnual: 2000,
			CrimeIndex: 42, JobGrowthPercent: 0.034, SchoolRating: 6, WalkScore: 78,
			Zoning: "SF-3", ListingDate: "2024-01-08", DaysOnMarket: 21, MLS: "ATX-558120",
		},
		{
			ID: "prop-002", Address: "88 Rainey St #1402", City: "Austin", State: "TX", ZipCode: "78701",
			Price: 465000, EstimatedRent: 3100, Bedrooms: 2, Bathrooms: 2, Sqft: 1100, YearBuilt: 2016,
			PropertyType: models.PropertyTypeCondo, Status: models.StatusForSale,
			MonthlyExpenses: 520, TaxesAnnual: 9100, InsuranceAnnual: 1100, MaintenanceAnnual: 900,
			CrimeIndex: 35, JobGrowthPercent: 0.038, SchoolRating: 7, WalkScore: 95,
			Zoning: "CBD", ListingDate: "2024-01-15", DaysOnMarket: 14, MLS: "ATX-559401",
		},
		{
			ID: "prop-003", Address: "2710 Welton St", City: "Denver", State: "CO", ZipCode: "80205",
			Price: 529000, EstimatedRent: 4200, Bedrooms: 4, Bathrooms: 3, Sqft: 2300, YearBuilt: 1925,
			PropertyType: models.PropertyTypeDuplex, Status: models.StatusForSale,
			MonthlyExpenses: 200, TaxesAnnual: 3100, InsuranceAnnual: 2200, MaintenanceAnnual: 4500,
			CrimeIndex: 48, JobGrowthPercent: 0.027, SchoolRating: 5, WalkScore: 88,
			Zoning: "U-RH-2.5", ListingDate: "2023-12-02", DaysOnMarket: 58, MLS: "DEN-3391022",
		},
		{
			ID: "prop-004", Address: "4455 Tennyson St", City: "Denver", State: "CO", ZipCode: "80212",
			Price: 612000, EstimatedRent: 3300, Bedrooms: 3, Bathrooms: 2.5, Sqft: 1800, YearBuilt: 2019,
			PropertyType: models.PropertyTypeTownhouse, Status: models.StatusForSale,
			MonthlyExpenses: 250, TaxesAnnual: 3600, InsuranceAnnual: 1500, MaintenanceAnnual: 1200,
			CrimeIndex: 22, JobGrowthPercent: 0.024, SchoolRating: 8, WalkScore: 82,
			Zoning: "U-MS-3", ListingDate: "2024-01-20", DaysOnMarket: 9, MLS: "DEN-3402217",
		},
		{
			ID: "prop-005", Address: "1510 Dickerson Pike", City: "Nashville", State: "TN", ZipCode: "37207",
			Price: 289000, EstimatedRent: 2300, Bedrooms: 3, Bathrooms: 2, Sqft: 1350, YearBuilt: 1978,
			PropertyType: models.PropertyTypeSingleFamily, Status: models.StatusForSale,
			MonthlyExpenses: 100, TaxesAnnual: 2400, InsuranceAnnual: 1400, MaintenanceAnnual: 2200,
			CrimeIndex: 61, JobGrowthPercent: 0.031, SchoolRating: 4, WalkScore: 45,
			Zoning: "RS5", TaxOwed: 1800, Violations: 1, ListingDate: "2023-11-18", DaysOnMarket: 72, MLS: "NSH-2590133",
		},
		{
			ID: "prop-006", Address: "920 Main St Unit 4", City: "Nashville", State: "TN", ZipCode: "37206",
			Price: 335000, EstimatedRent: 2400, Bedrooms: 2, Bathrooms: 2, Sqft: 1180, YearBuilt: 2008,
			PropertyType: models.PropertyTypeCondo, Status: models.StatusForRent,
			MonthlyExpenses: 310, TaxesAnnual: 2800, InsuranceAnnual: 900, MaintenanceAnnual: 800,
			CrimeIndex: 38, JobGrowthPercent: 0.033, SchoolRating: 6, WalkScore: 84,
			Zoning: "MUN", ListingDate: "2024-01-03", DaysOnMarket: 26, MLS: "NSH-2601874",
		},
		{
			ID: "prop-007", Address: "3301 Clifton Ave", City: "Nashville", State: "TN", ZipCode: "37209",
			Price: 449000, EstimatedRent: 4400, Bedrooms: 6, Bathrooms: 4, Sqft: 2900, YearBuilt: 1962,
			PropertyType: models.PropertyTypeMultiFamily, Status: models.StatusForSale,
			MonthlyExpenses: 280, TaxesAnnual: 3400, InsuranceAnnual: 2600, MaintenanceAnnual: 5200,
			CrimeIndex: 55, JobGrowthPercent: 0.029, SchoolRating: 5, WalkScore: 58,
			Zoning: "RM20", Violations: 2, ListingDate: "2023-10-27", DaysOnMarket: 95, MLS: "NSH-2577410",
		},
		{
			ID: "prop-008", Address: "7608 Cameron Rd", City: "Austin", State: "TX", ZipCode: "78752",
			Price: 245000, EstimatedRent: 1950, Bedrooms: 2, Bathrooms: 1.5, Sqft: 1020, YearBuilt: 1984,
			PropertyType: models.PropertyTypeCondo, Status: models.StatusForSale,
			MonthlyExpenses: 290, TaxesAnnual: 4700, InsuranceAnnual: 950, MaintenanceAnnual: 1100,
			CrimeIndex: 52, JobGrowthPercent: 0.034, SchoolRating: 4, WalkScore: 61,
			Zoning: "MF-3", ListingDate: "2023-12-19", DaysOnMarket: 44, MLS: "ATX-556781",
		},
		{
			ID: "prop-009", Address: "1845 S Federal Blvd", City: "Denver", State: "CO", ZipCode: "80219",
			Price: 398000, EstimatedRent: 3600, Bedrooms: 4, Bathrooms: 2, Sqft: 1900, YearBuilt: 1955,
			PropertyType: models.PropertyTypeDuplex, Status: models.StatusOffMarket,
			MonthlyExpenses: 150, TaxesAnnual: 2300, InsuranceAnnual: 1900, MaintenanceAnnual: 3800,
			CrimeIndex: 58, JobGrowthPercent: 0.022, SchoolRating: 4, WalkScore: 66,
			Zoning: "E-TU-C", TaxOwed: 4200, ListingDate: "2023-09-30", DaysOnMarket: 121, MLS: "DEN-3370998",
		},
		{
			ID: "prop-010", Address: "5120 Charlotte Pike", City: "Nashville", State: "TN", ZipCode: "37209",
			Price: 372000, EstimatedRent: 2650, Bedrooms: 3, Bathrooms: 2.5, Sqft: 1600, YearBuilt: 2021,
			PropertyType: models.PropertyTypeTownhouse, Status: models.StatusSold,
			MonthlyExpenses: 180, TaxesAnnual: 3000, InsuranceAnnual: 1200, MaintenanceAnnual: 700,
			CrimeIndex: 33, JobGrowthPercent: 0.029, SchoolRating: 7, WalkScore: 54,
			Zoning: "SP", ListingDate: "2023-12-28", DaysOnMarket: 33, MLS: "NSH-2598820",
		},
	}
}
