// Run results: the complete per-year history of every output series, plus
// the flattened milestone metrics used for quick cross-scenario comparison.
package engine

import (
	"github.com/talgya/horizon/internal/capacity"
	"github.com/talgya/horizon/internal/params"
)

// Results holds every output series for one run. All slices are indexed by
// year offset from StartYear and have identical length; the full history is
// retained because downstream cumulative consumers need it.
//
// Units: LCOE $/MWh, generation/demand TWh, emissions Gt CO2/yr, cumulative
// Gt CO2, temperature °C, GDP/capital/investment $T, capacity GW (GWh for
// battery), robot density per 1000 workers.
type Results struct {
	StartYear int   `json:"start_year"`
	Years     []int `json:"years"`

	LCOE             map[string][]float64 `json:"lcoe"`
	SolarBatteryLCOE []float64            `json:"solar_battery_lcoe"`
	Generation       map[string][]float64 `json:"generation"`
	Shortfall        []float64            `json:"shortfall"`
	GridIntensity    []float64            `json:"grid_intensity"`
	Demand           []float64            `json:"demand"`

	Emissions    []float64            `json:"emissions"`
	Cumulative   []float64            `json:"cumulative"`
	PPM          []float64            `json:"ppm"`
	Temperature  []float64            `json:"temperature"`
	DamageGlobal []float64            `json:"damage_global"`
	DamageRegion map[string][]float64 `json:"damage_region"`
	LandUseFlux  []float64            `json:"land_use_flux"`

	GDP          []float64 `json:"gdp"`
	NetGDP       []float64 `json:"net_gdp"`
	Capital      []float64 `json:"capital"`
	Investment   []float64 `json:"investment"`
	SavingsRate  []float64 `json:"savings_rate"`
	InterestRate []float64 `json:"interest_rate"`
	RobotDensity []float64 `json:"robot_density"`
	EnergyBurden []float64 `json:"energy_burden"`

	Capacity map[string][]capacity.Record `json:"capacity"`
}

func newResults(p *params.Params) *Results {
	years := p.Years()
	r := &Results{
		StartYear:    p.StartYear,
		Years:        make([]int, years),
		LCOE:         make(map[string][]float64),
		Generation:   make(map[string][]float64),
		DamageRegion: make(map[string][]float64),
		Capacity:     make(map[string][]capacity.Record),
	}
	for i := range r.Years {
		r.Years[i] = p.StartYear + i
	}
	for _, name := range params.SourceNames {
		r.LCOE[name] = make([]float64, 0, years)
		r.Generation[name] = make([]float64, 0, years)
	}
	r.Generation[params.SolarBattery] = make([]float64, 0, years)
	for _, reg := range p.Regions {
		r.DamageRegion[reg.Name] = make([]float64, 0, years)
	}
	return r
}

// Milestones flattens a run into named scalar metrics.
type Milestones struct {
	SolarBeatsGasYear  int     `json:"solar_beats_gas_year"`  // First year solar LCOE < gas LCOE (0 = never)
	PeakEmissionsYear  int     `json:"peak_emissions_year"`
	GridClean90Year    int     `json:"grid_clean90_year"`     // Grid intensity below 10% of its start value
	Temp2050           float64 `json:"temp_2050"`
	Temp2100           float64 `json:"temp_2100"`
	Emissions2100      float64 `json:"emissions_2100"`
	Cumulative2100     float64 `json:"cumulative_2100"`
	AvgEmissionsEarly  float64 `json:"avg_emissions_2025_2050"`
	AvgEmissionsLate   float64 `json:"avg_emissions_2050_2100"`
	AvgDemandEarly     float64 `json:"avg_demand_2025_2050"`
	AvgDemandLate      float64 `json:"avg_demand_2050_2100"`
	RobotDensity2100   float64 `json:"robot_density_2100"`
	GDP2100            float64 `json:"gdp_2100"`
}

// Milestones computes the scenario summary metrics.
func (r *Results) Milestones() Milestones {
	var m Milestones
	n := len(r.Years)
	if n == 0 {
		return m
	}

	for i, year := range r.Years {
		if m.SolarBeatsGasYear == 0 && r.LCOE[params.Solar][i] < r.LCOE[params.Gas][i] {
			m.SolarBeatsGasYear = year
		}
	}

	peak := r.Emissions[0]
	m.PeakEmissionsYear = r.Years[0]
	for i, e := range r.Emissions {
		if e > peak {
			peak = e
			m.PeakEmissionsYear = r.Years[i]
		}
	}

	if start := r.GridIntensity[0]; start > 0 {
		for i, g := range r.GridIntensity {
			if g < start*0.10 {
				m.GridClean90Year = r.Years[i]
				break
			}
		}
	}

	at := func(series []float64, year int) float64 {
		i := year - r.StartYear
		if i < 0 || i >= len(series) {
			return 0
		}
		return series[i]
	}
	m.Temp2050 = at(r.Temperature, 2050)
	m.Temp2100 = r.Temperature[n-1]
	m.Emissions2100 = r.Emissions[n-1]
	m.Cumulative2100 = r.Cumulative[n-1]
	m.RobotDensity2100 = r.RobotDensity[n-1]
	m.GDP2100 = r.GDP[n-1]

	mean := func(series []float64, from, to int) float64 {
		lo, hi := from-r.StartYear, to-r.StartYear
		if lo < 0 {
			lo = 0
		}
		if hi > len(series) {
			hi = len(series)
		}
		if hi <= lo {
			return 0
		}
		sum := 0.0
		for _, v := range series[lo:hi] {
			sum += v
		}
		return sum / float64(hi-lo)
	}
	m.AvgEmissionsEarly = mean(r.Emissions, 2025, 2050)
	m.AvgEmissionsLate = mean(r.Emissions, 2050, 2101)
	m.AvgDemandEarly = mean(r.Demand, 2025, 2050)
	m.AvgDemandLate = mean(r.Demand, 2050, 2101)
	return m
}
