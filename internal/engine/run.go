// Package engine runs the annual state-propagation loop: cost model,
// capacity advance, merit-order dispatch, climate chain, capital chain, and
// demand expansion, in that fixed order, with every cross-year feedback
// lagged by exactly one year. The lag is what breaks the circular
// GDP → investment → capacity → cost → dispatch → emissions → damage → GDP
// dependency and must be preserved.
package engine

import (
	"log/slog"

	"github.com/talgya/horizon/internal/capacity"
	"github.com/talgya/horizon/internal/capital"
	"github.com/talgya/horizon/internal/climate"
	"github.com/talgya/horizon/internal/demand"
	"github.com/talgya/horizon/internal/demog"
	"github.com/talgya/horizon/internal/dispatch"
	"github.com/talgya/horizon/internal/energy"
	"github.com/talgya/horizon/internal/params"
)

// Engine is a single-run orchestrator. Each run owns all of its state;
// nothing is shared between concurrent runs.
type Engine struct {
	p params.Params
}

// New builds an engine for one effective parameter set.
func New(p params.Params) *Engine {
	return &Engine{p: p.Clone()}
}

// Run executes the full simulation and returns the complete series history.
func (e *Engine) Run() *Results {
	p := &e.p
	years := p.Years()

	// Two-pass feedback bootstrap.
	pass1 := economyPass(p, nil, nil)
	dmgEst, burdenEst := quickFeedback(p, pass1)
	econ := economyPass(p, dmgEst, burdenEst)
	slog.Info("economy passes complete",
		"gdp2100_pass1", pass1.GDP[years-1],
		"gdp2100_pass2", econ.GDP[years-1],
	)

	people := demog.Series(p)
	fleet := capacity.NewFleet(p)
	costModel := energy.NewModel(p)
	climState := climate.NewState(&p.Climate)
	capState := capital.NewState(&p.Capital)
	res := newResults(p)

	// Year-0 extraction bootstrap: the lagged dispatch signal has no
	// previous year yet, so the documented seed generation stands in.
	bootstrap := make(map[string]float64)
	for _, src := range p.Sources {
		if src.Fossil {
			bootstrap[src.Name] = src.Bootstrap
		}
	}
	prevGen := bootstrap

	var prevInvestment float64
	demandNow := econ.Baseline[0]

	for i := 0; i < years; i++ {
		// 1. Cost model: extraction from last year's burn, then LCOE from
		// cumulative deployment as of the start of the year.
		costModel.AccrueExtraction(prevGen)
		costs := costModel.Compute(fleet.CumulativeNormalized())

		// 2. Capacity advance, funded by last year's investment.
		if i > 0 {
			fleet.Advance(capacity.AdvanceInputs{
				YearIndex:  i,
				Demand:     demandNow,
				Investment: prevInvestment,
				CleanShare: p.Capital.CleanBudget,
			})
		}

		// 3. Dispatch.
		disp := dispatch.Run(p, costs, fleet.Installed(), demandNow)
		if disp.Shortfall > 1e-6 {
			slog.Warn("dispatch shortfall",
				"year", p.StartYear+i,
				"shortfall_twh", disp.Shortfall,
				"demand_twh", demandNow,
			)
		}

		// 4. Climate chain. Land-use flux is added in the post-run sweep.
		emissions := climate.ElectricEmissions(disp.Generation, p) +
			climate.NonElectricEmissions(p, i)
		clim := climate.Step(climState, &p.Climate, p.Regions, emissions)

		// 5. Capital chain on net (post-damage) output.
		netGDP := econ.GDP[i] * (1 - clim.DamageGlobal)
		capOut := capState.Step(&p.Capital, p.Regions, people[i], netGDP, clim.DamageGlobal, i)

		// Energy burden: electricity spend scaled to total energy by the
		// electrified share, over gross output.
		elecCost := 0.0
		for _, name := range params.SourceNames {
			elecCost += disp.Generation[name] * costs.BySource[name]
		}
		elecCost += disp.Generation[params.SolarBattery] * costs.SolarBattery
		elecCost /= 1e6 // TWh × $/MWh → $T
		burden := 0.0
		if share := climate.ElectrifiedShare(p, i); share > 0 && econ.GDP[i] > 0 {
			burden = elecCost / share / econ.GDP[i]
		}

		// 6. Demand expansion produces next year's served demand.
		nextDemand := demandNow
		if i+1 < years {
			nextDemand = demand.Expand(&p.Expansion, demand.Inputs{
				Baseline:      econ.Baseline[i+1],
				PrevDemand:    demandNow,
				Robots:        capOut.Robots,
				CheapestClean: costs.CheapestClean(),
				SavingsRate:   capOut.SavingsRate,
			})
		}

		e.record(res, i, costs, disp, clim, capOut, econ.GDP[i], netGDP, demandNow, burden)

		prevGen = disp.Generation
		prevInvestment = capOut.Investment
		demandNow = nextDemand
	}

	for _, name := range params.SourceNames {
		res.Capacity[name] = fleet.History(name)
	}

	e.landUseSweep(res)

	slog.Info("run complete",
		"temp_2100", res.Temperature[years-1],
		"cumulative_gt", res.Cumulative[years-1],
		"demand_2100_twh", res.Demand[years-1],
	)
	return res
}

func (e *Engine) record(res *Results, i int, costs energy.Costs, disp dispatch.Result,
	clim climate.Outputs, capOut capital.Outputs, gdp, netGDP, dem, burden float64) {
	for _, name := range params.SourceNames {
		res.LCOE[name] = append(res.LCOE[name], costs.BySource[name])
		res.Generation[name] = append(res.Generation[name], disp.Generation[name])
	}
	res.SolarBatteryLCOE = append(res.SolarBatteryLCOE, costs.SolarBattery)
	res.Generation[params.SolarBattery] = append(res.Generation[params.SolarBattery], disp.Generation[params.SolarBattery])
	res.Shortfall = append(res.Shortfall, disp.Shortfall)
	res.GridIntensity = append(res.GridIntensity, disp.GridIntensity)
	res.Demand = append(res.Demand, dem)

	res.Emissions = append(res.Emissions, clim.Emissions)
	res.Cumulative = append(res.Cumulative, clim.Cumulative)
	res.PPM = append(res.PPM, clim.PPM)
	res.Temperature = append(res.Temperature, clim.Temp)
	res.DamageGlobal = append(res.DamageGlobal, clim.DamageGlobal)
	for _, reg := range e.p.Regions {
		res.DamageRegion[reg.Name] = append(res.DamageRegion[reg.Name], clim.DamageRegion[reg.Name])
	}

	res.GDP = append(res.GDP, gdp)
	res.NetGDP = append(res.NetGDP, netGDP)
	res.Capital = append(res.Capital, capOut.Stock)
	res.Investment = append(res.Investment, capOut.Investment)
	res.SavingsRate = append(res.SavingsRate, capOut.SavingsRate)
	res.InterestRate = append(res.InterestRate, capOut.InterestRate)
	res.RobotDensity = append(res.RobotDensity, capOut.RobotDensity)
	res.EnergyBurden = append(res.EnergyBurden, burden)
}

// landUseSweep computes the land carbon flux from the finished temperature
// trajectory (lagged one year) and folds it into the emission series, then
// replays the carbon/temperature/damage chain once over the corrected
// emissions.
func (e *Engine) landUseSweep(res *Results) {
	p := &e.p
	years := len(res.Years)
	res.LandUseFlux = make([]float64, years)

	for i := 0; i < years; i++ {
		prevTemp := p.Climate.TempBase
		if i > 0 {
			prevTemp = res.Temperature[i-1]
		}
		res.LandUseFlux[i] = climate.LandUseFlux(&p.Climate, i, years, prevTemp)
		res.Emissions[i] += res.LandUseFlux[i]
	}

	st := climate.NewState(&p.Climate)
	for i := 0; i < years; i++ {
		out := climate.Step(st, &p.Climate, p.Regions, res.Emissions[i])
		res.Cumulative[i] = out.Cumulative
		res.PPM[i] = out.PPM
		res.Temperature[i] = out.Temp
		res.DamageGlobal[i] = out.DamageGlobal
		for _, reg := range p.Regions {
			res.DamageRegion[reg.Name][i] = out.DamageRegion[reg.Name]
		}
	}
}
