// Package climate converts the generation mix and non-electric fuel use
// into emissions, carries cumulative atmospheric carbon and lagged
// temperature across years, and computes regional GDP damage fractions.
// Cumulative emissions and previous-year temperature are the only values
// with memory; everything else is a pure function of them plus the current
// year's emissions.
package climate

import (
	"math"

	"github.com/talgya/horizon/internal/params"
)

// State is the carried climate memory.
type State struct {
	Cumulative float64 // Gt CO2 since preindustrial
	Temp       float64 // Realized warming, °C
}

// NewState seeds the state from the configured run-start baseline.
func NewState(p *params.ClimateParams) *State {
	return &State{Cumulative: p.CumulativeBase, Temp: p.TempBase}
}

// Outputs is one year of climate-chain results.
type Outputs struct {
	Emissions    float64            // Gt CO2 this year
	Cumulative   float64            // Gt CO2 since preindustrial
	PPM          float64            // Atmospheric CO2
	EqTemp       float64            // Equilibrium warming, °C
	Temp         float64            // Realized warming, °C
	DamageRegion map[string]float64 // Damage fraction by region
	DamageGlobal float64            // Population-weighted damage fraction
}

// ElectricEmissions sums fossil generation times carbon intensity.
// gen(TWh) × intensity(kg/MWh) = 1e6·intensity kg, and 1 Gt = 1e12 kg,
// so the conversion factor is 1e-6.
func ElectricEmissions(gen map[string]float64, p *params.Params) float64 {
	total := 0.0
	for _, src := range p.Sources {
		if src.Intensity <= 0 {
			continue
		}
		total += gen[src.Name] * src.Intensity * 1e-6
	}
	return total
}

// ElectrifiedShare interpolates the electrified share of final energy
// linearly from the configured start toward the 2100 target.
func ElectrifiedShare(p *params.Params, yearIndex int) float64 {
	span := float64(p.Years() - 1)
	if span <= 0 {
		return p.Climate.Electrified0
	}
	frac := float64(yearIndex) / span
	return p.Climate.Electrified0 + (p.Expansion.ElectrifyTarget-p.Climate.Electrified0)*frac
}

// NonElectricEmissions is the fuel-mix-weighted sector emission path: the
// 2025 base scaled by the remaining non-electrified share of final energy.
func NonElectricEmissions(p *params.Params, yearIndex int) float64 {
	base := p.Climate.NonElectric0
	remaining0 := 1 - p.Climate.Electrified0
	if remaining0 <= 0 {
		return 0
	}
	return base * (1 - ElectrifiedShare(p, yearIndex)) / remaining0
}

// LandUseFlux is the net land carbon flux for one year: declining
// deforestation, a sequestration ramp, and a lagged temperature feedback.
// Computed post-run because it reads the temperature trajectory.
func LandUseFlux(p *params.ClimateParams, yearIndex, years int, prevTemp float64) float64 {
	defor := p.Deforestation0 * math.Pow(1-p.DeforestDecline, float64(yearIndex))
	ramp := 0.0
	if years > 1 {
		ramp = p.SequestMax * float64(yearIndex) / float64(years-1)
	}
	feedback := 0.0
	if prevTemp > p.LandTempRef {
		feedback = p.LandTempCoeff * (prevTemp - p.LandTempRef)
	}
	return defor - ramp + feedback
}

// PPM converts cumulative emissions to atmospheric concentration.
func PPM(p *params.ClimateParams, cumulative float64) float64 {
	return p.Preindustrial + cumulative*p.AirborneFrac*p.PPMPerGt
}

// EqTemp is the equilibrium warming implied by a concentration.
func EqTemp(p *params.ClimateParams, ppm float64) float64 {
	if ppm <= 0 || p.Preindustrial <= 0 {
		return 0
	}
	return p.Sensitivity * math.Log2(ppm/p.Preindustrial)
}

// Damage is the bounded regional damage fraction at a temperature:
// quadratic base, logistic tipping amplification, hard cap.
func Damage(p *params.ClimateParams, temp, regionalMult float64) float64 {
	base := p.DamageCoeff * temp * temp * regionalMult
	amp := 1.0
	if p.TippingWidth > 0 {
		amp = 1 + (p.TippingAmp-1)/(1+math.Exp(-(temp-p.TippingTemp)/p.TippingWidth))
	}
	d := base * amp
	if d > p.MaxDamage {
		d = p.MaxDamage
	}
	if d < 0 {
		d = 0
	}
	return d
}

// Step advances the chain one year with the given emissions and returns the
// year's outputs. The realized temperature relaxes toward equilibrium with
// the configured lag.
func Step(st *State, p *params.ClimateParams, regions []params.Region, emissions float64) Outputs {
	st.Cumulative += emissions
	ppm := PPM(p, st.Cumulative)
	eq := EqTemp(p, ppm)
	lag := p.LagYears
	if lag < 1 {
		lag = 1
	}
	st.Temp += (eq - st.Temp) / lag

	out := Outputs{
		Emissions:    emissions,
		Cumulative:   st.Cumulative,
		PPM:          ppm,
		EqTemp:       eq,
		Temp:         st.Temp,
		DamageRegion: make(map[string]float64, len(regions)),
	}
	for _, r := range regions {
		d := Damage(p, st.Temp, r.DamageMult)
		out.DamageRegion[r.Name] = d
		out.DamageGlobal += d * r.PopWeight
	}
	return out
}
