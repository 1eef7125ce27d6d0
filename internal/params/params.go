// Package params holds the immutable simulation parameter records and the
// Tier-1 parameter schema. All defaults live here; nothing in the engine
// reads a magic number that is not traceable to this package.
package params

// Source names used as keys throughout the engine. SolarBattery is a derived
// dispatch entry, not a physical source, but shares the key namespace.
const (
	Solar        = "solar"
	Wind         = "wind"
	Gas          = "gas"
	Coal         = "coal"
	Nuclear      = "nuclear"
	Hydro        = "hydro"
	Battery      = "battery"
	SolarBattery = "solar_battery"
)

// SourceNames is the fixed evaluation order for per-source operations.
// Deterministic iteration matters: map iteration order must never leak
// into the output series.
var SourceNames = []string{Solar, Wind, Gas, Coal, Nuclear, Hydro, Battery}

// Source is the immutable configuration for one energy source.
// Units: Cost0 $/MWh ($/kWh for battery), Capacity0 GW (GWh for battery),
// Intensity kg CO2/MWh, Capex $/kW ($/kWh for battery), Reserves TWh of
// electric output equivalent.
type Source struct {
	Name          string  `yaml:"name"`
	Cost0         float64 `yaml:"cost0"`
	Learning      float64 `yaml:"learning"` // Wright's-law exponent; 0 = no learning
	Capacity0     float64 `yaml:"capacity0"`
	Growth        float64 `yaml:"growth"`     // Organic annual growth rate (negative = forced decline)
	MaxGrowth     float64 `yaml:"maxGrowth"`  // Supply-chain ceiling on annual growth
	Intensity     float64 `yaml:"intensity"`
	CF            float64 `yaml:"cf"`          // Capacity factor
	Penetration   float64 `yaml:"penetration"` // Max share of annual demand in dispatch
	MaxShare      float64 `yaml:"maxShare"`    // Demand-ceiling share for capacity growth; Penetration when 0
	Lifetime      int     `yaml:"lifetime"`    // Asset lifetime in years
	Capex         float64 `yaml:"capex"`
	CapexLearning float64 `yaml:"capexLearning"` // Annual CAPEX decline rate
	Alloc         float64 `yaml:"alloc"`         // Share of the clean-energy investment budget
	Fossil        bool    `yaml:"fossil"`
	Reserves      float64 `yaml:"reserves"`
	EROEI0        float64 `yaml:"eroei0"`
	Bootstrap     float64 `yaml:"bootstrap"` // 2025 generation seed (TWh) for extraction lag
	Backup        bool    `yaml:"backup"`    // Exempt from demand and investment caps
}

// StorageParams configures the solar+battery composite entry.
type StorageParams struct {
	Hours        float64 `yaml:"hours"`        // Storage duration backing firm solar
	LifeYears    float64 `yaml:"lifeYears"`    // Battery service life
	CyclesPerYr  float64 `yaml:"cyclesPerYr"`  // Full cycles per year
	RoundTrip    float64 `yaml:"roundTrip"`    // Round-trip efficiency
	CombinedCeil float64 `yaml:"combinedCeil"` // Ceiling on bare solar + firmed solar, share of demand
}

// ClimateParams drives the emissions/temperature/damage chain.
type ClimateParams struct {
	Sensitivity     float64 `yaml:"sensitivity"`     // °C per CO2 doubling
	AirborneFrac    float64 `yaml:"airborneFrac"`    // Fraction of emissions staying airborne
	PPMPerGt        float64 `yaml:"ppmPerGt"`        // ppm per airborne Gt CO2
	Preindustrial   float64 `yaml:"preindustrial"`   // ppm
	CumulativeBase  float64 `yaml:"cumulativeBase"`  // Gt CO2 emitted before the run start
	TempBase        float64 `yaml:"tempBase"`        // Realized warming at run start, °C
	LagYears        float64 `yaml:"lagYears"`        // First-order temperature relaxation constant
	DamageCoeff     float64 `yaml:"damageCoeff"`     // Quadratic damage coefficient
	MaxDamage       float64 `yaml:"maxDamage"`       // Hard cap on regional damage fraction
	TippingTemp     float64 `yaml:"tippingTemp"`     // Center of the logistic tipping transition, °C
	TippingWidth    float64 `yaml:"tippingWidth"`    // Logistic width, °C
	TippingAmp      float64 `yaml:"tippingAmp"`      // Amplification at full transition
	NonElectric0    float64 `yaml:"nonElectric0"`    // 2025 non-electric emissions, Gt CO2/yr
	Electrified0    float64 `yaml:"electrified0"`    // 2025 electrified share of final energy
	Deforestation0  float64 `yaml:"deforestation0"`  // 2025 land-use gross source, Gt CO2/yr
	DeforestDecline float64 `yaml:"deforestDecline"` // Annual decline of deforestation flux
	SequestMax      float64 `yaml:"sequestMax"`      // Century-end sequestration rate, Gt CO2/yr
	LandTempCoeff   float64 `yaml:"landTempCoeff"`   // Gt CO2/yr per °C above LandTempRef
	LandTempRef     float64 `yaml:"landTempRef"`     // °C
}

// Region is one aggregate world region.
type Region struct {
	Name           string  `yaml:"name"`
	PopWeight      float64 `yaml:"popWeight"`      // Share of world population
	DamageMult     float64 `yaml:"damageMult"`     // Regional damage multiplier
	SavingsPremium float64 `yaml:"savingsPremium"` // Additive regional savings premium
}

// CapitalParams drives savings, investment, and automation.
type CapitalParams struct {
	Stock0          float64 `yaml:"stock0"`          // 2025 capital stock, $T
	GDP0            float64 `yaml:"gdp0"`            // 2025 gross world product, $T
	Depreciation    float64 `yaml:"depreciation"`    // δ
	CapitalShare    float64 `yaml:"capitalShare"`    // Cobb-Douglas α
	FallbackRate    float64 `yaml:"fallbackRate"`    // Interest rate when K ≤ 0
	SavingsYoung    float64 `yaml:"savingsYoung"`
	SavingsWorking  float64 `yaml:"savingsWorking"`
	SavingsOld      float64 `yaml:"savingsOld"`
	StabilityLambda float64 `yaml:"stabilityLambda"` // Φ = 1/(1+λ·damage²)
	AutomationBase  float64 `yaml:"automationBase"`  // 2025 automation share of capital
	AutomationGrow  float64 `yaml:"automationGrow"`  // Exponential growth of automation share
	AutomationCap   float64 `yaml:"automationCap"`   // Ceiling on automation share
	RobotCost       float64 `yaml:"robotCost"`       // $ per robot
	CleanBudget     float64 `yaml:"cleanBudget"`     // Share of investment going to clean energy
	GrowthBase      float64 `yaml:"growthBase"`      // 2025 baseline GDP growth rate
	GrowthFloor     float64 `yaml:"growthFloor"`     // 2100 baseline GDP growth rate
	PersistDamage   float64 `yaml:"persistDamage"`   // Persistent fraction of damage shocks
	PersistBurden   float64 `yaml:"persistBurden"`   // Persistent fraction of burden shocks
	BurdenRef       float64 `yaml:"burdenRef"`       // Energy burden considered neutral for growth
}

// DemogParams drives the deterministic population provider.
type DemogParams struct {
	Population0   float64 `yaml:"population0"`   // Billions
	PeakPop       float64 `yaml:"peakPop"`       // Billions
	PeakYear      int     `yaml:"peakYear"`
	WorkforceFrac float64 `yaml:"workforceFrac"` // Workforce share of working-age cohort
	Young0        float64 `yaml:"young0"`        // 2025 cohort shares
	Working0      float64 `yaml:"working0"`
	Old0          float64 `yaml:"old0"`
	Young2100     float64 `yaml:"young2100"` // 2100 cohort shares (linear drift)
	Working2100   float64 `yaml:"working2100"`
	Old2100       float64 `yaml:"old2100"`
}

// ExpansionParams drives demand adjustment.
type ExpansionParams struct {
	Demand0         float64 `yaml:"demand0"`         // 2025 electricity demand, TWh
	Elasticity      float64 `yaml:"elasticity"`      // Demand elasticity to GDP
	ElectrifyExp    float64 `yaml:"electrifyExp"`    // Demand exponent on electrified-share growth
	Efficiency      float64 `yaml:"efficiency"`      // Annual efficiency multiplier on demand
	ElectrifyTarget float64 `yaml:"electrifyTarget"` // 2100 electrified share of final energy
	RobotEnergy     float64 `yaml:"robotEnergy"`     // MWh per robot per year
	ExpandCoeff     float64 `yaml:"expandCoeff"`     // Activity expansion per clean-cost halving
	RefLCOE         float64 `yaml:"refLCOE"`         // Reference clean LCOE for expansion, $/MWh
	InfraGrowth     float64 `yaml:"infraGrowth"`     // Base infrastructure growth ceiling
	RefInvestRate   float64 `yaml:"refInvestRate"`   // Savings rate scaling the ceiling to 1.0
}

// Params is the complete effective parameter set for one run. It is built
// once at scenario-load time and never mutated afterwards; concurrent runs
// each hold their own copy.
type Params struct {
	StartYear   int            `yaml:"startYear"`
	EndYear     int            `yaml:"endYear"`
	CarbonPrice float64        `yaml:"carbonPrice"` // $/t CO2
	Sources     []Source       `yaml:"sources"`
	Storage     StorageParams  `yaml:"storage"`
	Climate     ClimateParams  `yaml:"climate"`
	Regions     []Region       `yaml:"regions"`
	Capital     CapitalParams  `yaml:"capital"`
	Demog       DemogParams    `yaml:"demog"`
	Expansion   ExpansionParams `yaml:"expansion"`
}

// Years returns the number of simulated years including both endpoints.
func (p *Params) Years() int { return p.EndYear - p.StartYear + 1 }

// Source returns the configuration for a named source, or false.
func (p *Params) Source(name string) (Source, bool) {
	for _, s := range p.Sources {
		if s.Name == name {
			return s, true
		}
	}
	return Source{}, false
}

// Clone returns an independent copy. Sources and Regions are value slices,
// so a shallow slice copy is a full deep copy.
func (p *Params) Clone() Params {
	out := *p
	out.Sources = make([]Source, len(p.Sources))
	copy(out.Sources, p.Sources)
	out.Regions = make([]Region, len(p.Regions))
	copy(out.Regions, p.Regions)
	return out
}

// Defaults returns the STEPS-aligned baseline parameter set.
func Defaults() Params {
	return Params{
		StartYear:   2025,
		EndYear:     2100,
		CarbonPrice: 35,
		Sources: []Source{
			{
				Name: Solar, Cost0: 35, Learning: 0.32, Capacity0: 2000,
				Growth: 0.20, MaxGrowth: 0.25, CF: 0.20, Penetration: 0.40,
				MaxShare: 0.80, Lifetime: 30, Capex: 700, CapexLearning: 0.03,
				Alloc: 0.40,
			},
			{
				Name: Wind, Cost0: 42, Learning: 0.18, Capacity0: 1050,
				Growth: 0.09, MaxGrowth: 0.20, CF: 0.30, Penetration: 0.35,
				Lifetime: 25, Capex: 1300, CapexLearning: 0.03, Alloc: 0.25,
			},
			{
				Name: Gas, Cost0: 60, Capacity0: 1900, Growth: 0.01,
				MaxGrowth: 0.05, Intensity: 450, CF: 0.40, Penetration: 1.0,
				Lifetime: 35, Capex: 800, Fossil: true, Reserves: 250000,
				EROEI0: 30, Bootstrap: 6300, Backup: true,
			},
			{
				Name: Coal, Cost0: 70, Capacity0: 2150, Growth: -0.02,
				MaxGrowth: 0, Intensity: 950, CF: 0.55, Penetration: 1.0,
				Lifetime: 80, Capex: 2000, Fossil: true, Reserves: 500000,
				EROEI0: 40, Bootstrap: 10400,
			},
			{
				Name: Nuclear, Cost0: 82, Capacity0: 395, Growth: 0.02,
				MaxGrowth: 0.06, CF: 0.85, Penetration: 0.50, Lifetime: 60,
				Capex: 6500, Alloc: 0.10,
			},
			{
				Name: Hydro, Cost0: 48, Capacity0: 1400, Growth: 0.015,
				MaxGrowth: 0.03, CF: 0.38, Penetration: 0.50, Lifetime: 80,
				Capex: 2500, Alloc: 0.10,
			},
			{
				Name: Battery, Cost0: 140, Learning: 0.28, Capacity0: 400,
				Growth: 0.35, MaxGrowth: 0.40, Lifetime: 15, Capex: 200,
				CapexLearning: 0.03, Alloc: 0.15,
			},
		},
		Storage: StorageParams{
			Hours:        4,
			LifeYears:    15,
			CyclesPerYr:  365,
			RoundTrip:    0.90,
			CombinedCeil: 0.80,
		},
		Climate: ClimateParams{
			Sensitivity:     3.0,
			AirborneFrac:    0.45,
			PPMPerGt:        0.128,
			Preindustrial:   280,
			CumulativeBase:  2500,
			TempBase:        1.35,
			LagYears:        12,
			DamageCoeff:     0.004,
			MaxDamage:       0.30,
			TippingTemp:     3.0,
			TippingWidth:    0.5,
			TippingAmp:      2.5,
			NonElectric0:    24,
			Electrified0:    0.25,
			Deforestation0:  4.0,
			DeforestDecline: 0.02,
			SequestMax:      3.0,
			LandTempCoeff:   0.3,
			LandTempRef:     1.5,
		},
		Regions: []Region{
			{Name: "oecd", PopWeight: 0.17, DamageMult: 0.8, SavingsPremium: 0.02},
			{Name: "asia", PopWeight: 0.55, DamageMult: 1.0, SavingsPremium: 0.05},
			{Name: "africa", PopWeight: 0.18, DamageMult: 1.4, SavingsPremium: -0.02},
			{Name: "latam", PopWeight: 0.10, DamageMult: 1.2, SavingsPremium: 0.0},
		},
		Capital: CapitalParams{
			Stock0:          450,
			GDP0:            110,
			Depreciation:    0.05,
			CapitalShare:    0.35,
			FallbackRate:    0.03,
			SavingsYoung:    0.08,
			SavingsWorking:  0.30,
			SavingsOld:      0.10,
			StabilityLambda: 8.0,
			AutomationBase:  0.02,
			AutomationGrow:  0.05,
			AutomationCap:   0.20,
			RobotCost:       80000,
			CleanBudget:     0.06,
			GrowthBase:      0.025,
			GrowthFloor:     0.015,
			PersistDamage:   0.30,
			PersistBurden:   0.30,
			BurdenRef:       0.06,
		},
		Demog: DemogParams{
			Population0:   8.2,
			PeakPop:       10.3,
			PeakYear:      2085,
			WorkforceFrac: 0.92,
			Young0:        0.25, Working0: 0.62, Old0: 0.13,
			Young2100: 0.20, Working2100: 0.58, Old2100: 0.22,
		},
		Expansion: ExpansionParams{
			Demand0:         31000,
			Elasticity:      0.60,
			ElectrifyExp:    0.80,
			Efficiency:      0.995,
			ElectrifyTarget: 0.65,
			RobotEnergy:     5,
			ExpandCoeff:     0.08,
			RefLCOE:         35,
			InfraGrowth:     0.04,
			RefInvestRate:   0.25,
		},
	}
}
