package finance

import (
	"errors"
	"math"
	"testing"

	"github.com/mamadbah2/realty/internal/domain/models"
)

func exampleProperty() models.Property {
	return models.Property{
		ID:                "example",
		Price:             300000,
		EstimatedRent:     2000,
		MonthlyExpenses:   200,
		TaxesAnnual:       3000,
		InsuranceAnnual:   1200,
		MaintenanceAnnual: 1500,
	}
}

func TestNOI(t *testing.T) {
	calc := NewCalculator(DefaultTerms())

	if got := calc.NOI(exampleProperty()); got != 15900 {
		t.Errorf("NOI = %v, want 15900", got)
	}

	negative := exampleProperty()
	negative.EstimatedRent = 100
	if got := calc.NOI(negative); got >= 0 {
		t.Errorf("NOI = %v, want negative value", got)
	}
}

func TestCapRate(t *testing.T) {
	calc := NewCalculator(DefaultTerms())
	p := exampleProperty()

	got, err := calc.CapRate(p)
	if err != nil {
		t.Fatalf("CapRate returned error: %v", err)
	}
	if math.Abs(got-5.3) > 1e-9 {
		t.Errorf("CapRate = %v, want 5.3", got)
	}
	if want := calc.NOI(p) / p.Price * 100; math.Abs(got-want) > 1e-9 {
		t.Errorf("CapRate = %v, want NOI/price*100 = %v", got, want)
	}
}

func TestMonthlyMortgagePayment(t *testing.T) {
	calc := NewCalculator(DefaultTerms())

	tests := []struct {
		name string
		loan float64
		want float64
	}{
		{name: "no loan", loan: 0, want: 0},
		{name: "negative loan", loan: -10, want: 0},
		{name: "240k at 6.5%", loan: 240000, want: 1516.96},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calc.MonthlyMortgagePayment(tt.loan)
			if math.Abs(got-tt.want) > 0.05 {
				t.Errorf("MonthlyMortgagePayment(%v) = %v, want ~%v", tt.loan, got, tt.want)
			}
		})
	}
}

func TestMonthlyMortgagePaymentZeroRate(t *testing.T) {
	calc := NewCalculator(Terms{AnnualRate: 0, TermYears: 30, DownPaymentRatio: 0.2})
	if got := calc.MonthlyMortgagePayment(36000); math.Abs(got-100) > 1e-9 {
		t.Errorf("MonthlyMortgagePayment = %v, want 100", got)
	}
}

func TestCoCReturnAndCashFlow(t *testing.T) {
	calc := NewCalculator(DefaultTerms())
	p := exampleProperty()

	coc, err := calc.CoCReturn(p)
	if err != nil {
		t.Fatalf("CoCReturn returned error: %v", err)
	}
	payment := calc.MonthlyMortgagePayment(240000)
	wantCoC := (15900 - payment*12) / 60000 * 100
	if math.Abs(coc-wantCoC) > 1e-9 {
		t.Errorf("CoCReturn = %v, want %v", coc, wantCoC)
	}
	if math.Abs(coc-(-3.84)) > 0.01 {
		t.Errorf("CoCReturn = %v, want ~-3.84", coc)
	}

	cashFlow := calc.MonthlyCashFlow(p)
	if want := 2000 - payment - 675; math.Abs(cashFlow-want) > 1e-9 {
		t.Errorf("MonthlyCashFlow = %v, want %v", cashFlow, want)
	}
}

func TestPriceDependentMetricsRejectNonPositivePrice(t *testing.T) {
	calc := NewCalculator(DefaultTerms())

	for _, price := range []float64{0, -1} {
		p := exampleProperty()
		p.Price = price

		if _, err := calc.CapRate(p); !errors.Is(err, models.ErrInvalidProperty) {
			t.Errorf("CapRate(price=%v) error = %v, want ErrInvalidProperty", price, err)
		}
		if _, err := calc.CoCReturn(p); !errors.Is(err, models.ErrInvalidProperty) {
			t.Errorf("CoCReturn(price=%v) error = %v, want ErrInvalidProperty", price, err)
		}
	}
}
