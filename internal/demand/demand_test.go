package demand

import (
	"math"
	"testing"

	"github.com/talgya/horizon/internal/params"
)

func TestMultiplier(t *testing.T) {
	p := params.Defaults().Expansion

	if got := Multiplier(&p, p.RefLCOE); got != 1 {
		t.Errorf("multiplier at reference cost = %g, want 1", got)
	}
	if got := Multiplier(&p, p.RefLCOE*2); got != 1 {
		t.Errorf("multiplier above reference cost = %g, want floor 1", got)
	}

	// One halving of clean cost adds exactly the expansion coefficient.
	if got := Multiplier(&p, p.RefLCOE/2); math.Abs(got-(1+p.ExpandCoeff)) > 1e-12 {
		t.Errorf("multiplier at one halving = %g, want %g", got, 1+p.ExpandCoeff)
	}
	two := Multiplier(&p, p.RefLCOE/4)
	if math.Abs(two-(1+2*p.ExpandCoeff)) > 1e-12 {
		t.Errorf("multiplier at two halvings = %g, want %g", two, 1+2*p.ExpandCoeff)
	}

	if got := Multiplier(&p, 0); got != 1 {
		t.Errorf("multiplier at zero cost = %g, want guard 1", got)
	}
}

func TestCeiling(t *testing.T) {
	p := params.Defaults().Expansion

	// Savings at the reference rate gives the base infrastructure growth.
	want := 100 * (1 + p.InfraGrowth)
	if got := Ceiling(&p, 100, p.RefInvestRate); math.Abs(got-want) > 1e-9 {
		t.Errorf("ceiling at reference savings = %g, want %g", got, want)
	}

	// Higher savings loosens the ceiling, lower savings tightens it.
	if Ceiling(&p, 100, 0.40) <= Ceiling(&p, 100, p.RefInvestRate) {
		t.Error("higher savings did not loosen the ceiling")
	}
	if Ceiling(&p, 100, 0.10) >= Ceiling(&p, 100, p.RefInvestRate) {
		t.Error("lower savings did not tighten the ceiling")
	}
}

func TestExpand(t *testing.T) {
	p := params.Defaults().Expansion

	// No robots, clean cost at reference: demand equals the baseline.
	got := Expand(&p, Inputs{Baseline: 1000, PrevDemand: 2000, CheapestClean: p.RefLCOE, SavingsRate: 0.25})
	if math.Abs(got-1000) > 1e-9 {
		t.Errorf("neutral expansion = %g, want baseline 1000", got)
	}

	// Robots add their energy draw: 0.001 billion × 5 MWh → 5 TWh.
	got = Expand(&p, Inputs{Baseline: 1000, PrevDemand: 2000, Robots: 0.001, CheapestClean: p.RefLCOE, SavingsRate: 0.25})
	if math.Abs(got-1005) > 1e-9 {
		t.Errorf("expansion with robots = %g, want 1005", got)
	}

	// Cheap clean energy expands activity above the baseline.
	cheap := Expand(&p, Inputs{Baseline: 1000, PrevDemand: 2000, CheapestClean: p.RefLCOE / 2, SavingsRate: 0.25})
	if cheap <= 1000 {
		t.Errorf("cheap-energy expansion = %g, want above baseline", cheap)
	}

	// The infrastructure ceiling binds when the jump is too large.
	got = Expand(&p, Inputs{Baseline: 5000, PrevDemand: 1000, CheapestClean: p.RefLCOE / 8, SavingsRate: p.RefInvestRate})
	want := Ceiling(&p, 1000, p.RefInvestRate)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("capped expansion = %g, want ceiling %g", got, want)
	}
}
