// Package dispatch allocates a year's electricity demand across sources in
// ascending LCOE order, subject to per-source capacity and penetration
// ceilings. Bare solar and solar+battery draw down one shared solar counter
// so their combined share never exceeds the firmed-solar ceiling.
package dispatch

import (
	"sort"

	"github.com/talgya/horizon/internal/capacity"
	"github.com/talgya/horizon/internal/energy"
	"github.com/talgya/horizon/internal/params"
)

// Entry is one dispatchable offer in the merit order.
type Entry struct {
	Name        string
	LCOE        float64 // $/MWh
	MaxGen      float64 // TWh deliverable from capacity this year
	Penetration float64 // Max share of total demand for this entry
	Intensity   float64 // kg CO2/MWh
	Solar       bool    // Participates in the shared solar ceiling
}

// Result is the year's generation allocation.
type Result struct {
	Generation    map[string]float64 // TWh per entry name, including solar_battery
	Shortfall     float64            // TWh of demand no source could serve
	GridIntensity float64            // kg CO2/MWh over dispatched energy only
}

// BuildEntries assembles the merit-order offers from the current costs and
// installed capacities. The solar+battery entry is gated by storage-firmable
// solar: battery GWh divided by the storage duration, never more than the
// solar fleet itself.
func BuildEntries(p *params.Params, costs energy.Costs, installed map[string]float64) []Entry {
	var entries []Entry
	for _, name := range params.SourceNames {
		src, ok := p.Source(name)
		if !ok || name == params.Battery {
			continue
		}
		e := Entry{
			Name:        name,
			LCOE:        costs.BySource[name],
			MaxGen:      installed[name] * src.CF * capacity.HoursPerYear / 1000,
			Penetration: src.Penetration,
			Intensity:   src.Intensity,
			Solar:       name == params.Solar,
		}
		entries = append(entries, e)
	}

	solar, _ := p.Source(params.Solar)
	firmableGW := installed[params.Battery] / p.Storage.Hours
	if firmableGW > installed[params.Solar] {
		firmableGW = installed[params.Solar]
	}
	entries = append(entries, Entry{
		Name:        params.SolarBattery,
		LCOE:        costs.SolarBattery,
		MaxGen:      firmableGW * solar.CF * capacity.HoursPerYear / 1000,
		Penetration: p.Storage.CombinedCeil,
		Intensity:   0,
		Solar:       true,
	})
	return entries
}

// Allocate runs the merit order. combinedSolarCeil is the aggregate ceiling
// (share of demand) on all solar-flagged entries together; bare and firmed
// solar draw down one shared allocated counter against it.
func Allocate(demand float64, entries []Entry, combinedSolarCeil float64) Result {
	res := Result{Generation: make(map[string]float64, len(entries))}
	if demand <= 0 {
		return res
	}

	order := make([]Entry, len(entries))
	copy(order, entries)
	sort.SliceStable(order, func(i, j int) bool { return order[i].LCOE < order[j].LCOE })

	remaining := demand
	solarAllocated := 0.0
	weighted := 0.0 // Σ gen × intensity, for grid intensity

	for _, e := range order {
		if remaining <= 0 {
			break
		}
		take := remaining
		if e.MaxGen < take {
			take = e.MaxGen
		}
		if cap := demand * e.Penetration; take > cap {
			take = cap
		}
		if e.Solar {
			if cap := demand*combinedSolarCeil - solarAllocated; take > cap {
				take = cap
			}
		}
		if take <= 0 {
			continue
		}
		res.Generation[e.Name] += take
		if e.Solar {
			solarAllocated += take
		}
		weighted += take * e.Intensity
		remaining -= take
	}

	res.Shortfall = remaining
	if dispatched := demand - remaining; dispatched > 0 {
		res.GridIntensity = weighted / dispatched
	}
	return res
}

// Run builds the merit order and allocates one year's demand.
func Run(p *params.Params, costs energy.Costs, installed map[string]float64, demand float64) Result {
	entries := BuildEntries(p, costs, installed)
	return Allocate(demand, entries, p.Storage.CombinedCeil)
}
