// Economy passes and the quick climate pre-pass. Pass 1 runs the economy
// with no feedback; the pre-pass estimates damage and burden trajectories
// from closed-form emission and cost paths fed through the exact climate
// chain; pass 2 re-runs the economy applying last year's damage and burden
// to this year's growth, each scaled by its persistent fraction.
package engine

import (
	"math"

	"github.com/talgya/horizon/internal/climate"
	"github.com/talgya/horizon/internal/energy"
	"github.com/talgya/horizon/internal/params"
)

// econSeries is one economy pass: gross GDP ($T) and baseline electricity
// demand (TWh) per year.
type econSeries struct {
	GDP      []float64
	Baseline []float64
}

// baseGrowth interpolates the exogenous GDP growth rate from its 2025 base
// down to the configured century-end floor.
func baseGrowth(p *params.Params, yearIndex int) float64 {
	span := float64(p.Years() - 1)
	if span <= 0 {
		return p.Capital.GrowthBase
	}
	frac := float64(yearIndex) / span
	return p.Capital.GrowthBase + (p.Capital.GrowthFloor-p.Capital.GrowthBase)*frac
}

// economyPass builds a GDP and baseline-demand trajectory. damage and
// burden, when non-nil, are per-year series whose t−1 values reduce year
// t's growth, scaled by the persistent fractions (only part of a shock
// permanently destroys capital; the rest is a temporary output loss and is
// not compounded).
func economyPass(p *params.Params, damage, burden []float64) econSeries {
	years := p.Years()
	out := econSeries{
		GDP:      make([]float64, years),
		Baseline: make([]float64, years),
	}
	out.GDP[0] = p.Capital.GDP0

	for i := 1; i < years; i++ {
		g := baseGrowth(p, i)
		if damage != nil {
			g -= p.Capital.PersistDamage * damage[i-1]
		}
		if burden != nil {
			if excess := burden[i-1] - p.Capital.BurdenRef; excess > 0 {
				g -= p.Capital.PersistBurden * excess
			}
		}
		out.GDP[i] = out.GDP[i-1] * (1 + g)
		if out.GDP[i] < 0 {
			out.GDP[i] = 0
		}
	}

	e0 := p.Climate.Electrified0
	for i := 0; i < years; i++ {
		gdpRatio := out.GDP[i] / p.Capital.GDP0
		elecRatio := climate.ElectrifiedShare(p, i) / e0
		out.Baseline[i] = p.Expansion.Demand0 *
			math.Pow(gdpRatio, p.Expansion.Elasticity) *
			math.Pow(elecRatio, p.Expansion.ElectrifyExp) *
			math.Pow(p.Expansion.Efficiency, float64(i))
	}
	return out
}

// quickFeedback estimates the damage and energy-burden series without
// running dispatch: electric emissions decay exponentially at half the
// solar growth rate from the bootstrap-mix level, clean LCOE follows the
// solar learning curve under organic growth, and both are pushed through
// the same climate-chain functions the main loop uses.
func quickFeedback(p *params.Params, econ econSeries) (damageG []float64, burden []float64) {
	years := p.Years()
	damageG = make([]float64, years)
	burden = make([]float64, years)

	solar, _ := p.Source(params.Solar)
	gas, _ := p.Source(params.Gas)
	coal, _ := p.Source(params.Coal)

	elec0 := (gas.Bootstrap*gas.Intensity + coal.Bootstrap*coal.Intensity) * 1e-6
	decay := solar.Growth * 0.5
	fossilLCOE0 := energy.FossilLCOE(gas, 0, p.CarbonPrice)

	st := climate.NewState(&p.Climate)
	for i := 0; i < years; i++ {
		fossilFrac := math.Exp(-decay * float64(i))
		emissions := elec0*fossilFrac + climate.NonElectricEmissions(p, i)
		out := climate.Step(st, &p.Climate, p.Regions, emissions)
		damageG[i] = out.DamageGlobal

		cleanLCOE := energy.LearningCurve(solar.Cost0, math.Pow(1+solar.Growth, float64(i)), solar.Learning)
		avgLCOE := fossilFrac*fossilLCOE0 + (1-fossilFrac)*cleanLCOE
		elecCost := econ.Baseline[i] * avgLCOE / 1e6 // TWh × $/MWh → $T
		share := climate.ElectrifiedShare(p, i)
		if share < 0.05 {
			share = 0.05
		}
		if econ.GDP[i] > 0 {
			burden[i] = elecCost / share / econ.GDP[i]
		}
	}
	return damageG, burden
}
