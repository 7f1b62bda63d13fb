package models

// MarketTrends carries 30-day movements supplied from outside the snapshot.
type MarketTrends struct {
	PriceChange30Days float64 `json:"priceChange30Days"`
	RentChange30Days  float64 `json:"rentChange30Days"`
	InventoryChange   float64 `json:"inventoryChange"`
}

// MarketAnalytics summarises a processed property collection.
type MarketAnalytics struct {
	TotalProperties   int          `json:"totalProperties"`
	AveragePrice      float64      `json:"averagePrice"`
	AverageRent       float64      `json:"averageRent"`
	AverageCapRate    float64      `json:"averageCapRate"`
	AverageAIScore    float64      `json:"averageAiScore"`
	TopPerformingZips []string     `json:"topPerformingZips"`
	MarketTrends      MarketTrends `json:"marketTrends"`
}

// MarketOverview holds the secondary dashboard figures.
type MarketOverview struct {
	AverageCoCReturn    float64               `json:"averageCocReturn"`
	AverageCashFlow     float64               `json:"averageCashFlow"`
	AverageDaysOnMarket float64               `json:"averageDaysOnMarket"`
	AffordableShare     float64               `json:"affordableShare"` // percent of listings below the affordable price
	StatusCounts        map[ListingStatus]int `json:"statusCounts"`
	TopPerformers       []Property            `json:"topPerformers"`
}

// FilterOptions lists the values available for building filter controls.
type FilterOptions struct {
	ZipCodes      []string `json:"zipCodes"`
	PropertyTypes []string `json:"propertyTypes"`
}
