// Package scoring turns raw listings into ranked investment candidates: it derives the
// financial metrics, a composite AI score, a risk score and growth predictions.
package scoring

import (
	"math"
	"slices"
	"time"

	"github.com/mamadbah2/realty/internal/domain/models"
	"github.com/mamadbah2/realty/internal/engine/finance"
)

// Engine scores listings with a fixed Table. It holds no mutable state.
type Engine struct {
	table Table
	calc  finance.Calculator
	now   func() time.Time
}

// Option customises an Engine.
type Option func(*Engine)

// WithClock overrides the clock used to compute building age.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// NewEngine builds an Engine around the provided table.
func NewEngine(table Table, opts ...Option) *Engine {
	e := &Engine{
		table: table,
		calc:  finance.NewCalculator(table.Finance),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// metrics bundles the calculator outputs for one listing.
type metrics struct {
	noi       float64
	capRate   float64
	cocReturn float64
	cashFlow  float64
}

func (e *Engine) metrics(p models.Property) (metrics, error) {
	capRate, err := e.calc.CapRate(p)
	if err != nil {
		return metrics{}, err
	}
	coc, err := e.calc.CoCReturn(p)
	if err != nil {
		return metrics{}, err
	}
	return metrics{
		noi:       e.calc.NOI(p),
		capRate:   capRate,
		cocReturn: coc,
		cashFlow:  e.calc.MonthlyCashFlow(p),
	}, nil
}

// AIScore computes the composite 0-100 investment score.
func (e *Engine) AIScore(p models.Property) (int, error) {
	m, err := e.metrics(p)
	if err != nil {
		return 0, err
	}
	return e.aiScore(p, m), nil
}

func (e *Engine) aiScore(p models.Property, m metrics) int {
	n := e.table.Normalization
	w := e.table.Weights

	capRateScore := clamp((m.capRate-n.CapRateFloor)*n.CapRateScale, 0, 100)
	cocScore := clamp((m.cocReturn-n.CoCFloor)*n.CoCScale, 0, 100)
	cashFlowScore := clamp((m.cashFlow+n.CashFlowOffset)/n.CashFlowDivisor, 0, 100)

	crimeScore := 100 - p.CrimeIndex
	jobGrowthScore := clamp(p.JobGrowthPoints()*n.JobGrowthScale, 0, 100)
	schoolScore := p.SchoolRating * n.SchoolScale
	walkabilityScore := p.WalkScore
	ageBonus := stepValue(e.table.AgeBonus, p.YearBuilt, 0)

	riskPenalty := float64(p.Violations)*e.table.Penalty.PerViolation + p.TaxOwed/e.table.Penalty.TaxOwedDivisor

	score := capRateScore*w.CapRate +
		cocScore*w.CoCReturn +
		cashFlowScore*w.CashFlow +
		crimeScore*w.Crime +
		jobGrowthScore*w.JobGrowth +
		schoolScore*w.School +
		walkabilityScore*w.Walkability +
		ageBonus*w.AgeBonus -
		riskPenalty

	return clampScore(score)
}

// RiskScore computes the 0-100 downside exposure, higher is riskier.
func (e *Engine) RiskScore(p models.Property) (int, error) {
	if err := models.ValidatePrice(p); err != nil {
		return 0, err
	}
	r := e.table.Risk

	risk := p.CrimeIndex * r.CrimeFactor
	risk += math.Max(0, float64(p.DaysOnMarket-r.DaysOnMarketGrace)*r.DaysOnMarketFactor)
	risk += float64(p.Violations) * r.PerViolation
	risk += (p.TaxOwed / p.Price) * r.TaxOwedFactor

	age := e.now().Year() - p.YearBuilt
	risk += stepValue(r.AgeSteps, age, 0)

	risk += math.Max(0, -p.JobGrowthPoints()*r.JobDeclineFactor)

	return clampScore(risk), nil
}

// PredictRentGrowth estimates the annual rent growth as a fraction.
func (e *Engine) PredictRentGrowth(p models.Property) float64 {
	g := e.table.RentGrowth
	growth := g.Base +
		p.JobGrowthPercent*g.JobGrowth +
		(p.SchoolRating-5)*g.School +
		(p.WalkScore-50)*g.Walkability +
		(50-p.CrimeIndex)*g.Crime
	return clamp(growth, g.Range.Min, g.Range.Max)
}

// PredictAppreciation estimates the annual price appreciation as a fraction.
func (e *Engine) PredictAppreciation(p models.Property) float64 {
	a := e.table.Appreciation
	appreciation := a.Base +
		p.JobGrowthPercent*a.JobGrowth +
		(p.SchoolRating-5)*a.School +
		stepValue(a.AgeSteps, p.YearBuilt, a.AgeDefault)
	return clamp(appreciation, a.Range.Min, a.Range.Max)
}

// ProcessProperty returns a copy of p with every derived field populated.
func (e *Engine) ProcessProperty(p models.Property) (models.Property, error) {
	m, err := e.metrics(p)
	if err != nil {
		return p, err
	}
	risk, err := e.RiskScore(p)
	if err != nil {
		return p, err
	}

	out := p
	out.NOI = m.noi
	out.CapRate = m.capRate
	out.CoCReturn = m.cocReturn
	out.CashFlow = m.cashFlow
	out.AIScore = e.aiScore(p, m)
	out.RiskScore = risk
	out.RentGrowthPrediction = e.PredictRentGrowth(p)
	out.AppreciationPrediction = e.PredictAppreciation(p)
	return out, nil
}

// ProcessAndRank scores every listing and sorts them by AI score, highest first.
// Listings that fail validation are left out and returned as rejected. Equal scores
// keep their input order.
func (e *Engine) ProcessAndRank(properties []models.Property) ([]models.Property, []error) {
	ranked := make([]models.Property, 0, len(properties))
	var rejected []error

	for _, p := range properties {
		processed, err := e.ProcessProperty(p)
		if err != nil {
			rejected = append(rejected, err)
			continue
		}
		ranked = append(ranked, processed)
	}

	slices.SortStableFunc(ranked, func(a, b models.Property) int {
		return b.AIScore - a.AIScore
	})

	return ranked, rejected
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

// clampScore rounds half up and bounds the result to [0, 100].
func clampScore(v float64) int {
	return int(clamp(math.Floor(v+0.5), 0, 100))
}
