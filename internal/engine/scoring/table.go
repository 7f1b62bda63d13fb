package scoring

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mamadbah2/realty/internal/engine/finance"
)

// Weights are the shares of each normalized sub-score in the AI score.
type Weights struct {
	CapRate     float64 `yaml:"cap_rate"`
	CoCReturn   float64 `yaml:"coc_return"`
	CashFlow    float64 `yaml:"cash_flow"`
	Crime       float64 `yaml:"crime"`
	JobGrowth   float64 `yaml:"job_growth"`
	School      float64 `yaml:"school"`
	Walkability float64 `yaml:"walkability"`
	AgeBonus    float64 `yaml:"age_bonus"`
}

// Normalization maps raw metrics onto the 0-100 sub-score scale.
type Normalization struct {
	CapRateFloor    float64 `yaml:"cap_rate_floor"` // cap rate % scoring 0
	CapRateScale    float64 `yaml:"cap_rate_scale"`
	CoCFloor        float64 `yaml:"coc_floor"`
	CoCScale        float64 `yaml:"coc_scale"`
	CashFlowOffset  float64 `yaml:"cash_flow_offset"` // monthly cash flow scoring 0 is -offset
	CashFlowDivisor float64 `yaml:"cash_flow_divisor"`
	JobGrowthScale  float64 `yaml:"job_growth_scale"` // per percentage point
	SchoolScale     float64 `yaml:"school_scale"`
}

// YearStep awards Value when a year (or an age) is strictly above After.
type YearStep struct {
	After int     `yaml:"after"`
	Value float64 `yaml:"value"`
}

// Penalty is subtracted from the weighted AI score.
type Penalty struct {
	PerViolation   float64 `yaml:"per_violation"`
	TaxOwedDivisor float64 `yaml:"tax_owed_divisor"`
}

// Risk holds the coefficients of the risk score.
type Risk struct {
	CrimeFactor        float64    `yaml:"crime_factor"`
	DaysOnMarketGrace  int        `yaml:"days_on_market_grace"`
	DaysOnMarketFactor float64    `yaml:"days_on_market_factor"`
	PerViolation       float64    `yaml:"per_violation"`
	TaxOwedFactor      float64    `yaml:"tax_owed_factor"` // applied to taxOwed/price
	AgeSteps           []YearStep `yaml:"age_steps"`       // by age in years, highest first
	JobDeclineFactor   float64    `yaml:"job_decline_factor"`
}

// Range bounds a prediction.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// RentGrowth holds the rent growth prediction coefficients.
type RentGrowth struct {
	Base        float64 `yaml:"base"`
	JobGrowth   float64 `yaml:"job_growth"`
	School      float64 `yaml:"school"`
	Walkability float64 `yaml:"walkability"`
	Crime       float64 `yaml:"crime"`
	Range       Range   `yaml:"range"`
}

// Appreciation holds the appreciation prediction coefficients.
type Appreciation struct {
	Base       float64    `yaml:"base"`
	JobGrowth  float64    `yaml:"job_growth"`
	School     float64    `yaml:"school"`
	AgeSteps   []YearStep `yaml:"age_steps"` // by year built, newest first
	AgeDefault float64    `yaml:"age_default"`
	Range      Range      `yaml:"range"`
}

// Table is the single place every scoring constant lives.
type Table struct {
	Finance       finance.Terms `yaml:"finance"`
	Weights       Weights       `yaml:"weights"`
	Normalization Normalization `yaml:"normalization"`
	AgeBonus      []YearStep    `yaml:"age_bonus"` // by year built, newest first
	Penalty       Penalty       `yaml:"penalty"`
	Risk          Risk          `yaml:"risk"`
	RentGrowth    RentGrowth    `yaml:"rent_growth"`
	Appreciation  Appreciation  `yaml:"appreciation"`
}

// DefaultTable returns the hand-tuned model used by the dashboard.
func DefaultTable() Table {
	return Table{
		Finance: finance.DefaultTerms(),
		Weights: Weights{
			CapRate:     0.25,
			CoCReturn:   0.20,
			CashFlow:    0.20,
			Crime:       0.10,
			JobGrowth:   0.08,
			School:      0.07,
			Walkability: 0.05,
			AgeBonus:    0.05,
		},
		Normalization: Normalization{
			CapRateFloor:    2,
			CapRateScale:    10,
			CoCFloor:        5,
			CoCScale:        5,
			CashFlowOffset:  500,
			CashFlowDivisor: 15,
			JobGrowthScale:  10,
			SchoolScale:     10,
		},
		AgeBonus: []YearStep{
			{After: 1990, Value: 10},
			{After: 1970, Value: 5},
		},
		Penalty: Penalty{
			PerViolation:   5,
			TaxOwedDivisor: 1000,
		},
		Risk: Risk{
			CrimeFactor:        0.3,
			DaysOnMarketGrace:  30,
			DaysOnMarketFactor: 0.1,
			PerViolation:       5,
			TaxOwedFactor:      100,
			AgeSteps: []YearStep{
				{After: 50, Value: 15},
				{After: 30, Value: 8},
				{After: 20, Value: 3},
			},
			JobDeclineFactor: 10,
		},
		RentGrowth: RentGrowth{
			Base:        0.03,
			JobGrowth:   0.5,
			School:      0.005,
			Walkability: 0.0002,
			Crime:       0.0001,
			Range:       Range{Min: -0.05, Max: 0.15},
		},
		Appreciation: Appreciation{
			Base:      0.04,
			JobGrowth: 0.3,
			School:    0.003,
			AgeSteps: []YearStep{
				{After: 2000, Value: 0.01},
				{After: 1980, Value: 0},
			},
			AgeDefault: -0.005,
			Range:      Range{Min: -0.02, Max: 0.12},
		},
	}
}

// LoadTable reads a YAML document on top of DefaultTable, so a file only needs the
// constants it recalibrates.
func LoadTable(path string) (Table, error) {
	table := DefaultTable()
	if path == "" {
		return table, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return table, fmt.Errorf("read scoring table %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &table); err != nil {
		return table, fmt.Errorf("parse scoring table %s: %w", path, err)
	}
	if err := table.Validate(); err != nil {
		return table, fmt.Errorf("scoring table %s: %w", path, err)
	}
	return table, nil
}

// Validate rejects tables that would divide by zero.
func (t Table) Validate() error {
	switch {
	case t.Normalization.CashFlowDivisor == 0:
		return fmt.Errorf("normalization.cash_flow_divisor must not be zero")
	case t.Penalty.TaxOwedDivisor == 0:
		return fmt.Errorf("penalty.tax_owed_divisor must not be zero")
	case t.Finance.AnnualRate < 0:
		return fmt.Errorf("finance.annual_rate must not be negative")
	case t.Finance.TermYears <= 0:
		return fmt.Errorf("finance.term_years must be positive")
	case t.Finance.DownPaymentRatio <= 0 || t.Finance.DownPaymentRatio > 1:
		return fmt.Errorf("finance.down_payment_ratio must be in (0, 1]")
	}
	return nil
}

// stepValue returns the value of the first step whose threshold x exceeds.
func stepValue(steps []YearStep, x int, fallback float64) float64 {
	for _, s := range steps {
		if x > s.After {
			return s.Value
		}
	}
	return fallback
}
