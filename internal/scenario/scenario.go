// Package scenario loads scenario documents: flat Tier-1 params plus
// optional deep per-module overrides. Defaulting is resolved once here, at
// load time — the engine only ever sees a fully-resolved params.Params.
// Merge semantics: mapping overrides apply field-by-field onto the
// defaults; sequence values (regions) replace wholesale, never concatenate.
package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/talgya/horizon/internal/params"
)

// Document is the on-disk scenario shape.
type Document struct {
	Name      string             `yaml:"name"`
	Params    map[string]float64 `yaml:"params"`
	Overrides *Overrides         `yaml:"overrides"`
}

// Overrides is the typed deep-override block. Nil pointers mean "keep the
// default"; a present Regions sequence replaces the default set wholesale.
type Overrides struct {
	Energy    map[string]SourceOverride `yaml:"energy"`
	Storage   *StorageOverride          `yaml:"storage"`
	Climate   *ClimateOverride          `yaml:"climate"`
	Capital   *CapitalOverride          `yaml:"capital"`
	Demog     *DemogOverride            `yaml:"demog"`
	Expansion *ExpansionOverride        `yaml:"expansion"`
	Regions   []params.Region           `yaml:"regions"`
}

// SourceOverride overrides fields of one energy source.
type SourceOverride struct {
	Cost0         *float64 `yaml:"cost0"`
	Learning      *float64 `yaml:"learning"`
	Capacity0     *float64 `yaml:"capacity0"`
	Growth        *float64 `yaml:"growth"`
	MaxGrowth     *float64 `yaml:"maxGrowth"`
	Intensity     *float64 `yaml:"intensity"`
	CF            *float64 `yaml:"cf"`
	Penetration   *float64 `yaml:"penetration"`
	MaxShare      *float64 `yaml:"maxShare"`
	Lifetime      *int     `yaml:"lifetime"`
	Capex         *float64 `yaml:"capex"`
	CapexLearning *float64 `yaml:"capexLearning"`
	Alloc         *float64 `yaml:"alloc"`
	Reserves      *float64 `yaml:"reserves"`
	EROEI0        *float64 `yaml:"eroei0"`
	Bootstrap     *float64 `yaml:"bootstrap"`
}

// StorageOverride overrides the solar+battery composite parameters.
type StorageOverride struct {
	Hours        *float64 `yaml:"hours"`
	LifeYears    *float64 `yaml:"lifeYears"`
	CyclesPerYr  *float64 `yaml:"cyclesPerYr"`
	RoundTrip    *float64 `yaml:"roundTrip"`
	CombinedCeil *float64 `yaml:"combinedCeil"`
}

// ClimateOverride overrides climate-chain parameters.
type ClimateOverride struct {
	Sensitivity     *float64 `yaml:"sensitivity"`
	AirborneFrac    *float64 `yaml:"airborneFrac"`
	PPMPerGt        *float64 `yaml:"ppmPerGt"`
	CumulativeBase  *float64 `yaml:"cumulativeBase"`
	TempBase        *float64 `yaml:"tempBase"`
	LagYears        *float64 `yaml:"lagYears"`
	DamageCoeff     *float64 `yaml:"damageCoeff"`
	MaxDamage       *float64 `yaml:"maxDamage"`
	TippingTemp     *float64 `yaml:"tippingTemp"`
	TippingWidth    *float64 `yaml:"tippingWidth"`
	TippingAmp      *float64 `yaml:"tippingAmp"`
	NonElectric0    *float64 `yaml:"nonElectric0"`
	Electrified0    *float64 `yaml:"electrified0"`
	Deforestation0  *float64 `yaml:"deforestation0"`
	DeforestDecline *float64 `yaml:"deforestDecline"`
	SequestMax      *float64 `yaml:"sequestMax"`
	LandTempCoeff   *float64 `yaml:"landTempCoeff"`
	LandTempRef     *float64 `yaml:"landTempRef"`
}

// CapitalOverride overrides capital-chain parameters.
type CapitalOverride struct {
	Stock0          *float64 `yaml:"stock0"`
	GDP0            *float64 `yaml:"gdp0"`
	Depreciation    *float64 `yaml:"depreciation"`
	CapitalShare    *float64 `yaml:"capitalShare"`
	FallbackRate    *float64 `yaml:"fallbackRate"`
	SavingsYoung    *float64 `yaml:"savingsYoung"`
	SavingsWorking  *float64 `yaml:"savingsWorking"`
	SavingsOld      *float64 `yaml:"savingsOld"`
	StabilityLambda *float64 `yaml:"stabilityLambda"`
	AutomationBase  *float64 `yaml:"automationBase"`
	AutomationGrow  *float64 `yaml:"automationGrow"`
	AutomationCap   *float64 `yaml:"automationCap"`
	RobotCost       *float64 `yaml:"robotCost"`
	CleanBudget     *float64 `yaml:"cleanBudget"`
	GrowthBase      *float64 `yaml:"growthBase"`
	GrowthFloor     *float64 `yaml:"growthFloor"`
	PersistDamage   *float64 `yaml:"persistDamage"`
	PersistBurden   *float64 `yaml:"persistBurden"`
	BurdenRef       *float64 `yaml:"burdenRef"`
}

// DemogOverride overrides the population provider.
type DemogOverride struct {
	Population0   *float64 `yaml:"population0"`
	PeakPop       *float64 `yaml:"peakPop"`
	PeakYear      *int     `yaml:"peakYear"`
	WorkforceFrac *float64 `yaml:"workforceFrac"`
	Young0        *float64 `yaml:"young0"`
	Working0      *float64 `yaml:"working0"`
	Old0          *float64 `yaml:"old0"`
	Young2100     *float64 `yaml:"young2100"`
	Working2100   *float64 `yaml:"working2100"`
	Old2100       *float64 `yaml:"old2100"`
}

// ExpansionOverride overrides demand-expansion parameters.
type ExpansionOverride struct {
	Demand0         *float64 `yaml:"demand0"`
	Elasticity      *float64 `yaml:"elasticity"`
	ElectrifyExp    *float64 `yaml:"electrifyExp"`
	Efficiency      *float64 `yaml:"efficiency"`
	ElectrifyTarget *float64 `yaml:"electrifyTarget"`
	RobotEnergy     *float64 `yaml:"robotEnergy"`
	ExpandCoeff     *float64 `yaml:"expandCoeff"`
	RefLCOE         *float64 `yaml:"refLCOE"`
	InfraGrowth     *float64 `yaml:"infraGrowth"`
	RefInvestRate   *float64 `yaml:"refInvestRate"`
}

// Load reads and resolves a scenario file into effective parameters.
func Load(path string) (params.Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return params.Params{}, fmt.Errorf("read scenario: %w", err)
	}
	return Parse(data)
}

// Parse resolves a scenario document against the defaults.
func Parse(data []byte) (params.Params, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return params.Params{}, fmt.Errorf("parse scenario: %w", err)
	}
	return Resolve(&doc)
}

// Resolve applies a parsed document onto the defaults.
func Resolve(doc *Document) (params.Params, error) {
	p := params.Defaults()

	for name, value := range doc.Params {
		if err := params.Apply(&p, name, value); err != nil {
			return params.Params{}, fmt.Errorf("scenario params: %w", err)
		}
	}

	if doc.Overrides != nil {
		applyOverrides(&p, doc.Overrides)
	}
	return p, nil
}

func setF(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}

func setI(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func applyOverrides(p *params.Params, o *Overrides) {
	for name, so := range o.Energy {
		for i := range p.Sources {
			if p.Sources[i].Name != name {
				continue
			}
			s := &p.Sources[i]
			setF(&s.Cost0, so.Cost0)
			setF(&s.Learning, so.Learning)
			setF(&s.Capacity0, so.Capacity0)
			setF(&s.Growth, so.Growth)
			setF(&s.MaxGrowth, so.MaxGrowth)
			setF(&s.Intensity, so.Intensity)
			setF(&s.CF, so.CF)
			setF(&s.Penetration, so.Penetration)
			setF(&s.MaxShare, so.MaxShare)
			setI(&s.Lifetime, so.Lifetime)
			setF(&s.Capex, so.Capex)
			setF(&s.CapexLearning, so.CapexLearning)
			setF(&s.Alloc, so.Alloc)
			setF(&s.Reserves, so.Reserves)
			setF(&s.EROEI0, so.EROEI0)
			setF(&s.Bootstrap, so.Bootstrap)
		}
	}

	if so := o.Storage; so != nil {
		setF(&p.Storage.Hours, so.Hours)
		setF(&p.Storage.LifeYears, so.LifeYears)
		setF(&p.Storage.CyclesPerYr, so.CyclesPerYr)
		setF(&p.Storage.RoundTrip, so.RoundTrip)
		setF(&p.Storage.CombinedCeil, so.CombinedCeil)
	}

	if co := o.Climate; co != nil {
		c := &p.Climate
		setF(&c.Sensitivity, co.Sensitivity)
		setF(&c.AirborneFrac, co.AirborneFrac)
		setF(&c.PPMPerGt, co.PPMPerGt)
		setF(&c.CumulativeBase, co.CumulativeBase)
		setF(&c.TempBase, co.TempBase)
		setF(&c.LagYears, co.LagYears)
		setF(&c.DamageCoeff, co.DamageCoeff)
		setF(&c.MaxDamage, co.MaxDamage)
		setF(&c.TippingTemp, co.TippingTemp)
		setF(&c.TippingWidth, co.TippingWidth)
		setF(&c.TippingAmp, co.TippingAmp)
		setF(&c.NonElectric0, co.NonElectric0)
		setF(&c.Electrified0, co.Electrified0)
		setF(&c.Deforestation0, co.Deforestation0)
		setF(&c.DeforestDecline, co.DeforestDecline)
		setF(&c.SequestMax, co.SequestMax)
		setF(&c.LandTempCoeff, co.LandTempCoeff)
		setF(&c.LandTempRef, co.LandTempRef)
	}

	if ko := o.Capital; ko != nil {
		k := &p.Capital
		setF(&k.Stock0, ko.Stock0)
		setF(&k.GDP0, ko.GDP0)
		setF(&k.Depreciation, ko.Depreciation)
		setF(&k.CapitalShare, ko.CapitalShare)
		setF(&k.FallbackRate, ko.FallbackRate)
		setF(&k.SavingsYoung, ko.SavingsYoung)
		setF(&k.SavingsWorking, ko.SavingsWorking)
		setF(&k.SavingsOld, ko.SavingsOld)
		setF(&k.StabilityLambda, ko.StabilityLambda)
		setF(&k.AutomationBase, ko.AutomationBase)
		setF(&k.AutomationGrow, ko.AutomationGrow)
		setF(&k.AutomationCap, ko.AutomationCap)
		setF(&k.RobotCost, ko.RobotCost)
		setF(&k.CleanBudget, ko.CleanBudget)
		setF(&k.GrowthBase, ko.GrowthBase)
		setF(&k.GrowthFloor, ko.GrowthFloor)
		setF(&k.PersistDamage, ko.PersistDamage)
		setF(&k.PersistBurden, ko.PersistBurden)
		setF(&k.BurdenRef, ko.BurdenRef)
	}

	if do := o.Demog; do != nil {
		d := &p.Demog
		setF(&d.Population0, do.Population0)
		setF(&d.PeakPop, do.PeakPop)
		setI(&d.PeakYear, do.PeakYear)
		setF(&d.WorkforceFrac, do.WorkforceFrac)
		setF(&d.Young0, do.Young0)
		setF(&d.Working0, do.Working0)
		setF(&d.Old0, do.Old0)
		setF(&d.Young2100, do.Young2100)
		setF(&d.Working2100, do.Working2100)
		setF(&d.Old2100, do.Old2100)
	}

	if xo := o.Expansion; xo != nil {
		x := &p.Expansion
		setF(&x.Demand0, xo.Demand0)
		setF(&x.Elasticity, xo.Elasticity)
		setF(&x.ElectrifyExp, xo.ElectrifyExp)
		setF(&x.Efficiency, xo.Efficiency)
		setF(&x.ElectrifyTarget, xo.ElectrifyTarget)
		setF(&x.RobotEnergy, xo.RobotEnergy)
		setF(&x.ExpandCoeff, xo.ExpandCoeff)
		setF(&x.RefLCOE, xo.RefLCOE)
		setF(&x.InfraGrowth, xo.InfraGrowth)
		setF(&x.RefInvestRate, xo.RefInvestRate)
	}

	// Regions are a sequence: replaced wholesale when present.
	if len(o.Regions) > 0 {
		p.Regions = make([]params.Region, len(o.Regions))
		copy(p.Regions, o.Regions)
	}
}
