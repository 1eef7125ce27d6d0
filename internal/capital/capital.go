// Package capital implements the savings/investment/capital-stock chain:
// demographic-weighted savings, climate-stability suppression of
// investment, capital accumulation, the marginal-product interest rate,
// and the single authoritative robot-density calculation.
package capital

import (
	"math"

	"github.com/talgya/horizon/internal/demog"
	"github.com/talgya/horizon/internal/params"
)

// State is the compounding capital stock, $T.
type State struct {
	Stock float64
}

// NewState seeds the stock from the baseline.
func NewState(p *params.CapitalParams) *State {
	return &State{Stock: p.Stock0}
}

// Outputs is one year of capital-chain results.
type Outputs struct {
	SavingsRate  float64 // Population-weighted global savings rate
	Stability    float64 // Φ, investment suppression under damage
	Investment   float64 // $T
	Stock        float64 // $T after this year's update
	InterestRate float64
	RobotShare   float64 // Automation share of capital
	Robots       float64 // Billions of robots
	RobotDensity float64 // Robots per 1000 workers
}

// SavingsRate is the demographic-weighted global savings rate: cohort rates
// weighted by cohort shares, plus the population-weighted regional premium.
func SavingsRate(p *params.CapitalParams, regions []params.Region, d demog.Year) float64 {
	base := d.YoungShare*p.SavingsYoung + d.WorkingShare*p.SavingsWorking + d.OldShare*p.SavingsOld
	premium := 0.0
	for _, r := range regions {
		premium += r.SavingsPremium * r.PopWeight
	}
	s := base + premium
	if s < 0 {
		s = 0
	}
	return s
}

// Stability is Φ = 1/(1+λ·damage²): investment confidence falls nonlinearly
// with current-year climate damage.
func Stability(lambda, damage float64) float64 {
	return 1 / (1 + lambda*damage*damage)
}

// Step runs one year of the chain. gdp is net (post-damage) output, $T;
// yearIndex counts from the run start for the automation ramp.
func (st *State) Step(p *params.CapitalParams, regions []params.Region, d demog.Year, gdp, damage float64, yearIndex int) Outputs {
	s := SavingsRate(p, regions, d)
	phi := Stability(p.StabilityLambda, damage)
	invest := gdp * s * phi

	// Interest rate from the pre-update stock; fallback when the stock is gone.
	var rate float64
	if st.Stock > 0 {
		rate = p.CapitalShare*gdp/st.Stock - p.Depreciation
	} else {
		rate = p.FallbackRate
	}

	st.Stock = (1-p.Depreciation)*st.Stock + invest
	if st.Stock < 0 {
		st.Stock = 0
	}

	share := p.AutomationBase * math.Exp(p.AutomationGrow*float64(yearIndex))
	if share > p.AutomationCap {
		share = p.AutomationCap
	}
	var robots, density float64
	if p.RobotCost > 0 {
		robots = share * st.Stock * 1e12 / p.RobotCost / 1e9 // billions
	}
	if d.Workforce > 1e-9 {
		density = robots / d.Workforce * 1000
	}

	return Outputs{
		SavingsRate:  s,
		Stability:    phi,
		Investment:   invest,
		Stock:        st.Stock,
		InterestRate: rate,
		RobotShare:   share,
		Robots:       robots,
		RobotDensity: density,
	}
}
