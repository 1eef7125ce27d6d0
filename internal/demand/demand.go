// Package demand converts the baseline electricity-demand series into the
// adjusted series the dispatcher serves: automation load plus cost-driven
// activity expansion, capped by an investment-scaled infrastructure growth
// ceiling. Growth is capital-constrained, not arbitrarily capped.
package demand

import (
	"math"

	"github.com/talgya/horizon/internal/params"
)

// Inputs for one year's expansion.
type Inputs struct {
	Baseline      float64 // Baseline demand, TWh
	PrevDemand    float64 // Previous year's adjusted demand, TWh
	Robots        float64 // Billions of robots
	CheapestClean float64 // Lowest clean LCOE this year, $/MWh
	SavingsRate   float64 // Current global savings rate
}

// Multiplier is the cost-expansion factor: activity grows logarithmically
// as clean energy gets cheaper than the reference LCOE, with diminishing
// returns per cost halving. Never below 1.
func Multiplier(p *params.ExpansionParams, cheapestClean float64) float64 {
	if cheapestClean <= 0 || p.RefLCOE <= 0 {
		return 1
	}
	ratio := p.RefLCOE / cheapestClean
	if ratio <= 1 {
		return 1
	}
	return 1 + p.ExpandCoeff*math.Log2(ratio)
}

// Ceiling is the infrastructure growth cap on year-over-year demand,
// scaled by how the current savings rate compares to the reference
// investment rate.
func Ceiling(p *params.ExpansionParams, prevDemand, savingsRate float64) float64 {
	ratio := 1.0
	if p.RefInvestRate > 0 {
		ratio = savingsRate / p.RefInvestRate
	}
	return prevDemand * (1 + p.InfraGrowth*ratio)
}

// Expand computes the adjusted demand for one year.
func Expand(p *params.ExpansionParams, in Inputs) float64 {
	automation := in.Robots * 1e9 * p.RobotEnergy / 1e6 // billions × MWh → TWh
	adjusted := (in.Baseline + automation) * Multiplier(p, in.CheapestClean)
	if ceil := Ceiling(p, in.PrevDemand, in.SavingsRate); adjusted > ceil {
		adjusted = ceil
	}
	return adjusted
}
