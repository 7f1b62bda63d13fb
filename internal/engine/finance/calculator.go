// Package finance computes the financing-independent and leveraged return metrics of a
// rental listing. Every function is pure and depends only on the raw listing fields.
package finance

import (
	"math"

	"github.com/mamadbah2/realty/internal/domain/models"
)

// Terms describes the simplified acquisition financing assumed for every listing.
type Terms struct {
	AnnualRate       float64 `yaml:"annual_rate"`
	TermYears        int     `yaml:"term_years"`
	DownPaymentRatio float64 `yaml:"down_payment_ratio"`
}

// DefaultTerms returns a 30-year fixed loan at 6.5% with 20% down.
func DefaultTerms() Terms {
	return Terms{
		AnnualRate:       0.065,
		TermYears:        30,
		DownPaymentRatio: 0.2,
	}
}

// Calculator evaluates the financial formulas under a fixed set of Terms.
type Calculator struct {
	terms Terms
}

// NewCalculator builds a Calculator for the given terms.
func NewCalculator(terms Terms) Calculator {
	return Calculator{terms: terms}
}

// NOI is annual rent minus annual operating expenses. It may be negative.
func (c Calculator) NOI(p models.Property) float64 {
	annualRent := p.EstimatedRent * 12
	return annualRent - p.OperatingExpensesAnnual()
}

// MonthlyMortgagePayment amortizes loanAmount over the configured term.
func (c Calculator) MonthlyMortgagePayment(loanAmount float64) float64 {
	if loanAmount <= 0 {
		return 0
	}
	n := float64(c.terms.TermYears * 12)
	if n <= 0 {
		return 0
	}
	r := c.terms.AnnualRate / 12
	if r == 0 {
		return loanAmount / n
	}
	growth := math.Pow(1+r, n)
	return loanAmount * r * growth / (growth - 1)
}

// AnnualMortgagePayment is twelve monthly payments.
func (c Calculator) AnnualMortgagePayment(loanAmount float64) float64 {
	return c.MonthlyMortgagePayment(loanAmount) * 12
}

// CapRate is NOI over purchase price, as a percentage.
func (c Calculator) CapRate(p models.Property) (float64, error) {
	if err := models.ValidatePrice(p); err != nil {
		return 0, err
	}
	return (c.NOI(p) / p.Price) * 100, nil
}

// CoCReturn is the annual cash flow after debt service over the down payment, as a percentage.
func (c Calculator) CoCReturn(p models.Property) (float64, error) {
	if err := models.ValidatePrice(p); err != nil {
		return 0, err
	}
	downPayment := p.Price * c.terms.DownPaymentRatio
	if downPayment <= 0 {
		return 0, &models.InvalidPropertyError{ID: p.ID, Price: p.Price}
	}
	cashFlowAnnual := c.NOI(p) - c.AnnualMortgagePayment(c.loanAmount(p))
	return (cashFlowAnnual / downPayment) * 100, nil
}

// MonthlyCashFlow is rent minus the mortgage payment and the monthly share of expenses.
func (c Calculator) MonthlyCashFlow(p models.Property) float64 {
	monthlyExpenses := p.MonthlyExpenses + (p.TaxesAnnual+p.InsuranceAnnual+p.MaintenanceAnnual)/12
	return p.EstimatedRent - c.MonthlyMortgagePayment(c.loanAmount(p)) - monthlyExpenses
}

func (c Calculator) loanAmount(p models.Property) float64 {
	return p.Price * (1 - c.terms.DownPaymentRatio)
}
