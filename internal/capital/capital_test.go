package capital

import (
	"math"
	"testing"

	"github.com/talgya/horizon/internal/demog"
	"github.com/talgya/horizon/internal/params"
)

func baseYear() demog.Year {
	return demog.Year{
		Population: 8.2, Workforce: 4.7,
		YoungShare: 0.25, WorkingShare: 0.62, OldShare: 0.13,
	}
}

func TestSavingsRate(t *testing.T) {
	p := params.Defaults().Capital
	d := baseYear()

	base := 0.25*p.SavingsYoung + 0.62*p.SavingsWorking + 0.13*p.SavingsOld
	if got := SavingsRate(&p, nil, d); math.Abs(got-base) > 1e-12 {
		t.Errorf("savings rate without regions = %g, want %g", got, base)
	}

	regions := params.Defaults().Regions
	premium := 0.0
	for _, r := range regions {
		premium += r.SavingsPremium * r.PopWeight
	}
	if got := SavingsRate(&p, regions, d); math.Abs(got-(base+premium)) > 1e-12 {
		t.Errorf("savings rate with regions = %g, want %g", got, base+premium)
	}

	// Heavy old-age cohort with a punitive premium never goes negative.
	neg := []params.Region{{Name: "x", PopWeight: 1, SavingsPremium: -0.5}}
	if got := SavingsRate(&p, neg, d); got != 0 {
		t.Errorf("savings rate = %g, want clamp at 0", got)
	}
}

func TestStability(t *testing.T) {
	if got := Stability(8, 0); got != 1 {
		t.Errorf("stability at zero damage = %g, want 1", got)
	}
	prev := 1.0
	for _, d := range []float64{0.05, 0.1, 0.2, 0.3} {
		got := Stability(8, d)
		if got >= prev || got <= 0 {
			t.Fatalf("stability at damage %g = %g, want strictly decreasing in (0,1)", d, got)
		}
		prev = got
	}
}

func TestStep(t *testing.T) {
	p := params.Defaults().Capital
	regions := params.Defaults().Regions
	d := baseYear()
	st := NewState(&p)

	out := st.Step(&p, regions, d, p.GDP0, 0, 0)

	wantRate := p.CapitalShare*p.GDP0/p.Stock0 - p.Depreciation
	if math.Abs(out.InterestRate-wantRate) > 1e-9 {
		t.Errorf("interest rate = %g, want %g", out.InterestRate, wantRate)
	}
	if math.Abs(out.Stability-1) > 1e-12 {
		t.Errorf("stability at zero damage = %g, want 1", out.Stability)
	}

	wantInvest := p.GDP0 * out.SavingsRate
	if math.Abs(out.Investment-wantInvest) > 1e-9 {
		t.Errorf("investment = %g, want %g", out.Investment, wantInvest)
	}
	wantStock := (1-p.Depreciation)*p.Stock0 + wantInvest
	if math.Abs(out.Stock-wantStock) > 1e-9 {
		t.Errorf("stock = %g, want %g", out.Stock, wantStock)
	}

	// Damage suppresses investment through Φ.
	st2 := NewState(&p)
	damaged := st2.Step(&p, regions, d, p.GDP0, 0.15, 0)
	if damaged.Investment >= out.Investment {
		t.Errorf("damaged investment %g not below undamaged %g", damaged.Investment, out.Investment)
	}
}

func TestStepFallbackRate(t *testing.T) {
	p := params.Defaults().Capital
	st := &State{Stock: 0}
	out := st.Step(&p, nil, baseYear(), 100, 0, 0)
	if out.InterestRate != p.FallbackRate {
		t.Errorf("interest rate with no stock = %g, want fallback %g", out.InterestRate, p.FallbackRate)
	}
}

func TestStepAutomation(t *testing.T) {
	p := params.Defaults().Capital
	d := baseYear()

	st := NewState(&p)
	early := st.Step(&p, nil, d, p.GDP0, 0, 0)
	if math.Abs(early.RobotShare-p.AutomationBase) > 1e-12 {
		t.Errorf("automation share at start = %g, want base %g", early.RobotShare, p.AutomationBase)
	}

	st2 := NewState(&p)
	late := st2.Step(&p, nil, d, p.GDP0, 0, 200)
	if late.RobotShare != p.AutomationCap {
		t.Errorf("automation share late = %g, want cap %g", late.RobotShare, p.AutomationCap)
	}
	if late.Robots <= early.Robots {
		t.Error("robot count did not grow with the automation share")
	}

	wantDensity := late.Robots / d.Workforce * 1000
	if math.Abs(late.RobotDensity-wantDensity) > 1e-9 {
		t.Errorf("robot density = %g, want %g", late.RobotDensity, wantDensity)
	}

	// Zero workforce must not divide.
	st3 := NewState(&p)
	none := st3.Step(&p, nil, demog.Year{}, p.GDP0, 0, 10)
	if none.RobotDensity != 0 {
		t.Errorf("robot density with no workforce = %g, want 0", none.RobotDensity)
	}
}
