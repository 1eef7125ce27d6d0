// Tier-1 parameter schema — the flat knobs a scenario file or the CLI may
// override without touching module-level override blocks. External tooling
// reads this schema instead of the source.
package params

import "fmt"

// Spec describes one Tier-1 parameter for introspection.
type Spec struct {
	Name        string  `json:"name"`
	Type        string  `json:"type"` // always "float" today; kept for forward compat
	Default     float64 `json:"default"`
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
	Unit        string  `json:"unit"`
	Description string  `json:"description"`
}

// Schema returns the full Tier-1 parameter schema in a stable order.
func Schema() []Spec {
	d := Defaults()
	src := func(name string) Source {
		s, _ := d.Source(name)
		return s
	}
	return []Spec{
		{"carbonPrice", "float", d.CarbonPrice, 0, 500, "$/t CO2", "Carbon price applied to fossil generation"},
		{"solarLearning", "float", src(Solar).Learning, 0, 0.6, "exponent", "Wright's-law exponent for solar LCOE"},
		{"solarGrowth", "float", src(Solar).Growth, 0, 0.5, "1/yr", "Organic annual solar capacity growth"},
		{"electrificationTarget", "float", d.Expansion.ElectrifyTarget, 0.25, 0.95, "fraction", "Electrified share of final energy by 2100"},
		{"efficiencyGain", "float", d.Expansion.Efficiency, 0.97, 1.0, "multiplier/yr", "Annual demand-side efficiency multiplier"},
		{"climateSensitivity", "float", d.Climate.Sensitivity, 1.5, 6.0, "°C/doubling", "Equilibrium climate sensitivity"},
		{"windLearning", "float", src(Wind).Learning, 0, 0.6, "exponent", "Wright's-law exponent for wind LCOE"},
		{"windGrowth", "float", src(Wind).Growth, 0, 0.4, "1/yr", "Organic annual wind capacity growth"},
		{"batteryLearning", "float", src(Battery).Learning, 0, 0.6, "exponent", "Wright's-law exponent for battery cost"},
		{"batteryGrowth", "float", src(Battery).Growth, 0, 0.8, "1/yr", "Organic annual battery capacity growth"},
		{"nuclearGrowth", "float", src(Nuclear).Growth, 0, 0.2, "1/yr", "Organic annual nuclear capacity growth"},
		{"coalDecline", "float", -src(Coal).Growth, 0, 0.2, "1/yr", "Forced annual coal capacity decline"},
		{"gasReserves", "float", src(Gas).Reserves, 10000, 2e6, "TWh", "Recoverable gas, electric-output equivalent"},
		{"coalReserves", "float", src(Coal).Reserves, 10000, 2e6, "TWh", "Recoverable coal, electric-output equivalent"},
		{"airborneFraction", "float", d.Climate.AirborneFrac, 0.2, 0.8, "fraction", "Share of emitted CO2 remaining airborne"},
		{"temperatureLag", "float", d.Climate.LagYears, 2, 50, "years", "Temperature relaxation time constant"},
		{"damageCoeff", "float", d.Climate.DamageCoeff, 0, 0.05, "1/°C²", "Quadratic climate damage coefficient"},
		{"maxDamage", "float", d.Climate.MaxDamage, 0.05, 0.9, "fraction", "Cap on regional damage fraction"},
		{"tippingThreshold", "float", d.Climate.TippingTemp, 1.5, 6.0, "°C", "Center of logistic tipping amplification"},
		{"tippingWidth", "float", d.Climate.TippingWidth, 0.1, 2.0, "°C", "Width of logistic tipping transition"},
		{"tippingAmplification", "float", d.Climate.TippingAmp, 1.0, 5.0, "multiplier", "Damage amplification at full tipping"},
		{"depreciation", "float", d.Capital.Depreciation, 0.01, 0.12, "1/yr", "Capital depreciation rate"},
		{"capitalShare", "float", d.Capital.CapitalShare, 0.2, 0.5, "fraction", "Cobb-Douglas capital share"},
		{"stabilityLambda", "float", d.Capital.StabilityLambda, 0, 50, "1", "Investment suppression under damage"},
		{"automationGrowth", "float", d.Capital.AutomationGrow, 0, 0.15, "1/yr", "Growth rate of automation capital share"},
		{"automationCap", "float", d.Capital.AutomationCap, 0.02, 0.5, "fraction", "Ceiling on automation capital share"},
		{"robotCost", "float", d.Capital.RobotCost, 5000, 1e6, "$/robot", "Capital cost per robot"},
		{"robotEnergy", "float", d.Expansion.RobotEnergy, 0.5, 50, "MWh/yr", "Annual energy use per robot"},
		{"cleanBudgetShare", "float", d.Capital.CleanBudget, 0.005, 0.3, "fraction", "Share of investment allocated to clean energy"},
		{"expansionCoeff", "float", d.Expansion.ExpandCoeff, 0, 0.5, "1/halving", "Demand expansion per clean-cost halving"},
		{"infraBaseGrowth", "float", d.Expansion.InfraGrowth, 0.01, 0.12, "1/yr", "Base infrastructure demand-growth ceiling"},
		{"persistentDamageFraction", "float", d.Capital.PersistDamage, 0, 1, "fraction", "Permanent share of damage shocks"},
		{"persistentBurdenFraction", "float", d.Capital.PersistBurden, 0, 1, "fraction", "Permanent share of energy-burden shocks"},
	}
}

// Apply sets one Tier-1 parameter by name, validating against the schema range.
func Apply(p *Params, name string, value float64) error {
	var spec *Spec
	for _, s := range Schema() {
		if s.Name == name {
			spec = &s
			break
		}
	}
	if spec == nil {
		return fmt.Errorf("unknown parameter %q", name)
	}
	if value < spec.Min || value > spec.Max {
		return fmt.Errorf("parameter %q = %g outside [%g, %g] %s", name, value, spec.Min, spec.Max, spec.Unit)
	}

	setSource := func(sname string, set func(*Source)) {
		for i := range p.Sources {
			if p.Sources[i].Name == sname {
				set(&p.Sources[i])
			}
		}
	}

	switch name {
	case "carbonPrice":
		p.CarbonPrice = value
	case "solarLearning":
		setSource(Solar, func(s *Source) { s.Learning = value })
	case "solarGrowth":
		setSource(Solar, func(s *Source) { s.Growth = value })
	case "electrificationTarget":
		p.Expansion.ElectrifyTarget = value
	case "efficiencyGain":
		p.Expansion.Efficiency = value
	case "climateSensitivity":
		p.Climate.Sensitivity = value
	case "windLearning":
		setSource(Wind, func(s *Source) { s.Learning = value })
	case "windGrowth":
		setSource(Wind, func(s *Source) { s.Growth = value })
	case "batteryLearning":
		setSource(Battery, func(s *Source) { s.Learning = value })
	case "batteryGrowth":
		setSource(Battery, func(s *Source) { s.Growth = value })
	case "nuclearGrowth":
		setSource(Nuclear, func(s *Source) { s.Growth = value })
	case "coalDecline":
		setSource(Coal, func(s *Source) { s.Growth = -value })
	case "gasReserves":
		setSource(Gas, func(s *Source) { s.Reserves = value })
	case "coalReserves":
		setSource(Coal, func(s *Source) { s.Reserves = value })
	case "airborneFraction":
		p.Climate.AirborneFrac = value
	case "temperatureLag":
		p.Climate.LagYears = value
	case "damageCoeff":
		p.Climate.DamageCoeff = value
	case "maxDamage":
		p.Climate.MaxDamage = value
	case "tippingThreshold":
		p.Climate.TippingTemp = value
	case "tippingWidth":
		p.Climate.TippingWidth = value
	case "tippingAmplification":
		p.Climate.TippingAmp = value
	case "depreciation":
		p.Capital.Depreciation = value
	case "capitalShare":
		p.Capital.CapitalShare = value
	case "stabilityLambda":
		p.Capital.StabilityLambda = value
	case "automationGrowth":
		p.Capital.AutomationGrow = value
	case "automationCap":
		p.Capital.AutomationCap = value
	case "robotCost":
		p.Capital.RobotCost = value
	case "robotEnergy":
		p.Expansion.RobotEnergy = value
	case "cleanBudgetShare":
		p.Capital.CleanBudget = value
	case "expansionCoeff":
		p.Expansion.ExpandCoeff = value
	case "infraBaseGrowth":
		p.Expansion.InfraGrowth = value
	case "persistentDamageFraction":
		p.Capital.PersistDamage = value
	case "persistentBurdenFraction":
		p.Capital.PersistBurden = value
	}
	return nil
}
