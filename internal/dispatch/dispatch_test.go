package dispatch

import (
	"math"
	"testing"

	"github.com/talgya/horizon/internal/capacity"
	"github.com/talgya/horizon/internal/energy"
	"github.com/talgya/horizon/internal/params"
)

func sumGen(r Result) float64 {
	total := 0.0
	for _, g := range r.Generation {
		total += g
	}
	return total
}

func TestAllocateMeritOrder(t *testing.T) {
	entries := []Entry{
		{Name: "expensive", LCOE: 20, MaxGen: 100, Penetration: 1.0},
		{Name: "cheap", LCOE: 10, MaxGen: 50, Penetration: 1.0},
	}
	r := Allocate(100, entries, 1.0)

	if got := r.Generation["cheap"]; got != 50 {
		t.Errorf("cheap generation = %g, want full 50 before expensive runs", got)
	}
	if got := r.Generation["expensive"]; got != 50 {
		t.Errorf("expensive generation = %g, want residual 50", got)
	}
	if r.Shortfall != 0 {
		t.Errorf("shortfall = %g, want 0", r.Shortfall)
	}
}

func TestAllocateConservation(t *testing.T) {
	entries := []Entry{
		{Name: "a", LCOE: 10, MaxGen: 30, Penetration: 0.4},
		{Name: "b", LCOE: 20, MaxGen: 25, Penetration: 1.0},
		{Name: "c", LCOE: 30, MaxGen: 80, Penetration: 0.5},
	}
	for _, demand := range []float64{10, 50, 100, 500} {
		r := Allocate(demand, entries, 1.0)
		if got := sumGen(r) + r.Shortfall; math.Abs(got-demand) > 1e-9 {
			t.Errorf("demand %g: generation %g + shortfall %g does not balance",
				demand, sumGen(r), r.Shortfall)
		}
	}
}

func TestAllocatePenetrationCap(t *testing.T) {
	entries := []Entry{
		{Name: "wind", LCOE: 10, MaxGen: 1000, Penetration: 0.35},
		{Name: "gas", LCOE: 50, MaxGen: 1000, Penetration: 1.0},
	}
	r := Allocate(100, entries, 1.0)
	if got := r.Generation["wind"]; math.Abs(got-35) > 1e-9 {
		t.Errorf("wind generation = %g, want penetration-capped 35", got)
	}
}

func TestAllocateSharedSolarCeiling(t *testing.T) {
	entries := []Entry{
		{Name: "solar", LCOE: 5, MaxGen: 100, Penetration: 0.40, Solar: true},
		{Name: "solar_battery", LCOE: 6, MaxGen: 100, Penetration: 0.80, Solar: true},
		{Name: "gas", LCOE: 50, MaxGen: 1000, Penetration: 1.0},
	}

	r := Allocate(100, entries, 0.80)
	if got := r.Generation["solar"]; math.Abs(got-40) > 1e-9 {
		t.Errorf("bare solar = %g, want 40", got)
	}
	if got := r.Generation["solar_battery"]; math.Abs(got-40) > 1e-9 {
		t.Errorf("firmed solar = %g, want ceiling residual 40", got)
	}
	combined := r.Generation["solar"] + r.Generation["solar_battery"]
	if combined > 80+1e-9 {
		t.Errorf("combined solar %g exceeds 80%% ceiling", combined)
	}

	// Tighter ceiling: the counter is shared, not per entry.
	r = Allocate(100, entries, 0.50)
	combined = r.Generation["solar"] + r.Generation["solar_battery"]
	if math.Abs(combined-50) > 1e-9 {
		t.Errorf("combined solar = %g, want 50 under a 50%% ceiling", combined)
	}
}

func TestAllocateShortfallAndIntensity(t *testing.T) {
	entries := []Entry{
		{Name: "coal", LCOE: 30, MaxGen: 30, Penetration: 1.0, Intensity: 950},
	}
	r := Allocate(100, entries, 1.0)
	if math.Abs(r.Shortfall-70) > 1e-9 {
		t.Errorf("shortfall = %g, want 70", r.Shortfall)
	}
	if math.Abs(r.GridIntensity-950) > 1e-9 {
		t.Errorf("grid intensity = %g, want 950 over dispatched energy", r.GridIntensity)
	}
}

func TestAllocateZeroDemand(t *testing.T) {
	r := Allocate(0, []Entry{{Name: "a", LCOE: 1, MaxGen: 10, Penetration: 1}}, 1.0)
	if len(r.Generation) != 0 || r.Shortfall != 0 {
		t.Errorf("zero demand produced %+v", r)
	}
}

func TestBuildEntries(t *testing.T) {
	p := params.Defaults()
	costs := energy.NewModel(&p).Compute(map[string]float64{
		params.Solar: 1, params.Wind: 1, params.Battery: 1,
		params.Nuclear: 1, params.Hydro: 1,
	})
	installed := map[string]float64{
		params.Solar: 2000, params.Wind: 1050, params.Gas: 1900,
		params.Coal: 2150, params.Nuclear: 395, params.Hydro: 1400,
		params.Battery: 400,
	}
	entries := BuildEntries(&p, costs, installed)

	byName := make(map[string]Entry, len(entries))
	for _, e := range entries {
		byName[e.Name] = e
	}

	if _, ok := byName[params.Battery]; ok {
		t.Error("battery appears as its own dispatch entry")
	}

	solar, _ := p.Source(params.Solar)
	wantSolar := 2000 * solar.CF * capacity.HoursPerYear / 1000
	if got := byName[params.Solar].MaxGen; math.Abs(got-wantSolar) > 1e-6 {
		t.Errorf("solar max generation = %g, want %g", got, wantSolar)
	}

	// Firmed solar is gated by battery energy over the storage duration.
	sb, ok := byName[params.SolarBattery]
	if !ok {
		t.Fatal("no solar_battery entry")
	}
	wantSB := 400 / p.Storage.Hours * solar.CF * capacity.HoursPerYear / 1000
	if math.Abs(sb.MaxGen-wantSB) > 1e-6 {
		t.Errorf("firmed solar max generation = %g, want %g", sb.MaxGen, wantSB)
	}
	if !sb.Solar || !byName[params.Solar].Solar {
		t.Error("solar entries not flagged for the shared ceiling")
	}
	if sb.Intensity != 0 {
		t.Errorf("firmed solar intensity = %g, want 0", sb.Intensity)
	}
}

func TestRunFullYear(t *testing.T) {
	p := params.Defaults()
	costs := energy.NewModel(&p).Compute(map[string]float64{
		params.Solar: 1, params.Wind: 1, params.Battery: 1,
		params.Nuclear: 1, params.Hydro: 1,
	})
	installed := map[string]float64{}
	for _, src := range p.Sources {
		installed[src.Name] = src.Capacity0
	}

	demand := p.Expansion.Demand0
	r := Run(&p, costs, installed, demand)

	if got := sumGen(r) + r.Shortfall; math.Abs(got-demand) > 1e-6 {
		t.Errorf("generation %g + shortfall %g does not meet demand %g", sumGen(r), r.Shortfall, demand)
	}
	if r.Shortfall > 1e-6 {
		t.Errorf("baseline year has shortfall %g", r.Shortfall)
	}

	wind, _ := p.Source(params.Wind)
	if got := r.Generation[params.Wind]; got > demand*wind.Penetration+1e-6 {
		t.Errorf("wind generation %g exceeds penetration cap", got)
	}
	combined := r.Generation[params.Solar] + r.Generation[params.SolarBattery]
	if combined > demand*p.Storage.CombinedCeil+1e-6 {
		t.Errorf("combined solar %g exceeds shared ceiling", combined)
	}
	if r.GridIntensity <= 0 {
		t.Errorf("grid intensity = %g, want positive with fossil in the mix", r.GridIntensity)
	}
}
