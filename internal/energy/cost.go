// Package energy provides the per-source levelized cost model: learning
// curves for manufactured technologies, depletion curves for fossil fuels,
// and the amortized storage adder behind the solar+battery composite.
package energy

import (
	"math"

	"github.com/talgya/horizon/internal/params"
)

// LearningCurve returns cost0 × cumulative^(-alpha). Cumulative units are
// normalized so that cumulative = 1 at the run-start baseline; callers must
// preserve that normalization or every cost trajectory shifts. Clamped to
// cost0 when cumulative ≤ 0.
func LearningCurve(cost0, cumulative, alpha float64) float64 {
	if cumulative <= 0 {
		return cost0
	}
	return cost0 * math.Pow(cumulative, -alpha)
}

// EROEI returns the depleted energy return on energy invested:
// eroei0 × (remaining/reserves)^0.5, floored at 1.1.
func EROEI(eroei0, reserves, extracted float64) float64 {
	if reserves <= 0 {
		return 1.1
	}
	remaining := reserves - extracted
	if remaining < 0 {
		remaining = 0
	}
	e := eroei0 * math.Sqrt(remaining/reserves)
	if e < 1.1 {
		e = 1.1
	}
	return e
}

// NetEnergyFraction is the usable share of gross extraction at a given EROEI.
func NetEnergyFraction(eroei float64) float64 {
	if eroei <= 0 {
		return 0
	}
	return 1 - 1/eroei
}

// FossilLCOE is the depletion-scaled cost plus the carbon-price term.
// Intensity is kg CO2/MWh and carbonPrice $/t, so the term is exactly
// intensity/1000 × carbonPrice in $/MWh.
func FossilLCOE(src params.Source, extracted, carbonPrice float64) float64 {
	eroei := EROEI(src.EROEI0, src.Reserves, extracted)
	return src.Cost0*(src.EROEI0/eroei) + src.Intensity/1000*carbonPrice
}

// StorageAdder converts a battery pack cost ($/kWh) into a $/MWh adder on
// firmed solar: amortized over the battery's cycle life with round-trip loss.
func StorageAdder(batteryCost float64, st params.StorageParams) float64 {
	cycles := st.LifeYears * st.CyclesPerYr
	if cycles <= 0 || st.RoundTrip <= 0 {
		return 0
	}
	return batteryCost / cycles / st.RoundTrip * 1000
}

// Costs is the per-year cost snapshot consumed by dispatch and demand
// expansion. BySource is keyed by source name; SolarBattery is the derived
// firmed-solar entry.
type Costs struct {
	BySource     map[string]float64
	SolarBattery float64
}

// CheapestClean returns the lowest LCOE among non-fossil generation entries.
func (c Costs) CheapestClean() float64 {
	best := math.Inf(1)
	for _, name := range []string{params.Solar, params.Wind, params.Nuclear, params.Hydro} {
		if v, ok := c.BySource[name]; ok && v < best {
			best = v
		}
	}
	if c.SolarBattery > 0 && c.SolarBattery < best {
		best = c.SolarBattery
	}
	return best
}

// Model tracks cumulative fossil extraction and computes the yearly Costs
// snapshot. Extraction accrues from the previous year's dispatched
// generation; year 0 is seeded from the documented Bootstrap constants.
type Model struct {
	p         *params.Params
	extracted map[string]float64 // TWh of output-equivalent extracted per fossil source
}

// NewModel builds a cost model with zero extraction.
func NewModel(p *params.Params) *Model {
	return &Model{p: p, extracted: make(map[string]float64)}
}

// AccrueExtraction adds one year of extraction from last year's generation.
// Gross extraction exceeds delivered energy by the net-energy fraction.
func (m *Model) AccrueExtraction(prevGen map[string]float64) {
	for _, src := range m.p.Sources {
		if !src.Fossil {
			continue
		}
		gen := prevGen[src.Name]
		eroei := EROEI(src.EROEI0, src.Reserves, m.extracted[src.Name])
		net := NetEnergyFraction(eroei)
		if net <= 0 {
			net = 1e-9
		}
		m.extracted[src.Name] += gen / net
	}
}

// Extracted reports cumulative extraction for one source, TWh.
func (m *Model) Extracted(name string) float64 { return m.extracted[name] }

// Compute builds the Costs snapshot for the current year. cumulative maps
// source name to normalized cumulative deployment (1.0 at baseline).
func (m *Model) Compute(cumulative map[string]float64) Costs {
	out := Costs{BySource: make(map[string]float64, len(m.p.Sources))}
	for _, src := range m.p.Sources {
		switch {
		case src.Fossil:
			out.BySource[src.Name] = FossilLCOE(src, m.extracted[src.Name], m.p.CarbonPrice)
		case src.Learning > 0:
			out.BySource[src.Name] = LearningCurve(src.Cost0, cumulative[src.Name], src.Learning)
		default:
			out.BySource[src.Name] = src.Cost0
		}
	}
	out.SolarBattery = out.BySource[params.Solar] +
		StorageAdder(out.BySource[params.Battery], m.p.Storage)
	return out
}
