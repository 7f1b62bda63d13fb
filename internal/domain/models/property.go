package models

// PropertyType enumerates the listing categories shown on the dashboard.
type PropertyType string

const (
	PropertyTypeSingleFamily PropertyType = "Single Family"
	PropertyTypeCondo        PropertyType = "Condo"
	PropertyTypeDuplex       PropertyType = "Duplex"
	PropertyTypeMultiFamily  PropertyType = "Multi-Family"
	PropertyTypeTownhouse    PropertyType = "Townhouse"
)

// ListingStatus enumerates the market status of a listing.
type ListingStatus string

const (
	StatusForSale   ListingStatus = "For Sale"
	StatusForRent   ListingStatus = "For Rent"
	StatusSold      ListingStatus = "Sold"
	StatusOffMarket ListingStatus = "Off Market"
)

// Property is a listing together with the metrics derived from it.
//
// Input fields come from a property source. The derived block is only ever written
// by the scoring engine and is never decoded from a source document.
type Property struct {
	ID      string `bson:"id" json:"id"`
	Address string `bson:"address" json:"address"`
	City    string `bson:"city" json:"city"`
	State   string `bson:"state" json:"state"`
	ZipCode string `bson:"zip_code" json:"zipCode"`

	Price         float64       `bson:"price" json:"price"`
	EstimatedRent float64       `bson:"estimated_rent" json:"estimatedRent"`
	Bedrooms      int           `bson:"bedrooms" json:"bedrooms"`
	Bathrooms     float64       `bson:"bathrooms" json:"bathrooms"`
	Sqft          int           `bson:"sqft" json:"sqft"`
	YearBuilt     int           `bson:"year_built" json:"yearBuilt"`
	PropertyType  PropertyType  `bson:"property_type" json:"propertyType"`
	Status        ListingStatus `bson:"status" json:"status"`

	MonthlyExpenses   float64 `bson:"monthly_expenses" json:"monthlyExpenses"`
	TaxesAnnual       float64 `bson:"taxes_annual" json:"taxesAnnual"`
	InsuranceAnnual   float64 `bson:"insurance_annual" json:"insuranceAnnual"`
	MaintenanceAnnual float64 `bson:"maintenance_annual" json:"maintenanceAnnual"`

	CrimeIndex       float64 `bson:"crime_index" json:"crimeIndex"`             // 0-100, lower is better
	JobGrowthPercent float64 `bson:"job_growth_percent" json:"jobGrowthPercent"` // fraction, 0.035 == 3.5%
	SchoolRating     float64 `bson:"school_rating" json:"schoolRating"`         // 1-10
	WalkScore        float64 `bson:"walk_score" json:"walkScore"`               // 0-100

	Zoning     string  `bson:"zoning" json:"zoning"`
	TaxOwed    float64 `bson:"tax_owed" json:"taxOwed"`
	Violations int     `bson:"violations" json:"violations"`

	NOI                    float64 `bson:"-" json:"noi"`
	CapRate                float64 `bson:"-" json:"capRate"`
	CoCReturn              float64 `bson:"-" json:"cocReturn"`
	CashFlow               float64 `bson:"-" json:"cashFlow"`
	AIScore                int     `bson:"-" json:"aiScore"`
	RiskScore              int     `bson:"-" json:"riskScore"`
	RentGrowthPrediction   float64 `bson:"-" json:"rentGrowthPrediction"`
	AppreciationPrediction float64 `bson:"-" json:"appreciationPrediction"`

	ListingDate  string `bson:"listing_date" json:"listingDate"`
	DaysOnMarket int    `bson:"days_on_market" json:"daysOnMarket"`
	MLS          string `bson:"mls,omitempty" json:"mls,omitempty"`
}

// JobGrowthPoints returns the job growth expressed in percentage points.
func (p Property) JobGrowthPoints() float64 {
	return p.JobGrowthPercent * 100
}

// OperatingExpensesAnnual sums every recurring cost of holding the property for a year.
func (p Property) OperatingExpensesAnnual() float64 {
	return p.TaxesAnnual + p.InsuranceAnnual + p.MaintenanceAnnual + p.MonthlyExpenses*12
}

// PropertyFilters is a sparse set of predicates. A nil pointer or an empty slice means
// "no constraint"; a present zero is a real bound.
type PropertyFilters struct {
	MinPrice      *float64 `form:"minPrice" json:"minPrice,omitempty"`
	MaxPrice      *float64 `form:"maxPrice" json:"maxPrice,omitempty"`
	MinAIScore    *float64 `form:"minAiScore" json:"minAiScore,omitempty"`
	MaxAIScore    *float64 `form:"maxAiScore" json:"maxAiScore,omitempty"`
	ZipCodes      []string `form:"zipCodes" json:"zipCodes,omitempty"`
	PropertyTypes []string `form:"propertyTypes" json:"propertyTypes,omitempty"`
	MinCapRate    *float64 `form:"minCapRate" json:"minCapRate,omitempty"`
	MaxCrimeIndex *float64 `form:"maxCrimeIndex" json:"maxCrimeIndex,omitempty"`
	MinJobGrowth  *float64 `form:"minJobGrowth" json:"minJobGrowth,omitempty"` // percentage points
}

// IsEmpty reports whether no predicate is set.
func (f PropertyFilters) IsEmpty() bool {
	return f.MinPrice == nil && f.MaxPrice == nil &&
		f.MinAIScore == nil && f.MaxAIScore == nil &&
		len(f.ZipCodes) == 0 && len(f.PropertyTypes) == 0 &&
		f.MinCapRate == nil && f.MaxCrimeIndex == nil && f.MinJobGrowth == nil
}
