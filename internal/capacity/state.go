// Package capacity tracks installed generation capacity per source as an
// append-only yearly history, advanced under growth, demand-ceiling, and
// investment constraints. The fleet is owned by the orchestrator; dispatch
// and the cost model only read snapshots.
package capacity

import (
	"log/slog"
	"math"

	"github.com/talgya/horizon/internal/params"
)

// HoursPerYear converts GW of capacity into TWh/yr at a given capacity factor.
const HoursPerYear = 8760

// Record is one year's capacity entry for a source. Units are GW
// (GWh for storage). Invariant: Installed = previous Installed +
// Additions − Retirements, and never negative.
type Record struct {
	Installed   float64 `json:"installed"`
	Additions   float64 `json:"additions"`
	Retirements float64 `json:"retirements"`
}

// State is the append-only capacity history for a single source.
type State struct {
	Source  params.Source
	Records []Record
}

// NewState seeds a source's history with its baseline capacity.
func NewState(src params.Source) *State {
	return &State{
		Source:  src,
		Records: []Record{{Installed: src.Capacity0}},
	}
}

// Installed returns the most recent installed capacity.
func (s *State) Installed() float64 {
	return s.Records[len(s.Records)-1].Installed
}

// CumulativeNormalized returns total units ever produced (baseline plus all
// additions; retired units still count — they were manufactured) divided by
// the baseline, so the value is exactly 1.0 at run start. This normalization
// is the learning-curve contract and must not change.
func (s *State) CumulativeNormalized() float64 {
	if s.Source.Capacity0 <= 0 {
		return 0
	}
	total := s.Source.Capacity0
	for _, r := range s.Records[1:] {
		total += r.Additions
	}
	return total / s.Source.Capacity0
}

// AdvanceInputs carries everything one year-step needs.
type AdvanceInputs struct {
	YearIndex  int     // Years since run start; the seed record is index 0
	Demand     float64 // This year's demand, TWh
	Investment float64 // Previous year's estimated investment, $T
	CleanShare float64 // Share of investment budgeted to clean energy
}

// maxUseful is the capacity beyond which a source cannot serve more demand,
// given its share ceiling and capacity factor. GW. MaxShare widens the
// ceiling past the dispatch penetration for sources that also feed paired
// storage (solar).
func maxUseful(src params.Source, demand float64) float64 {
	if src.CF <= 0 {
		return math.Inf(1)
	}
	share := src.MaxShare
	if share <= 0 {
		share = src.Penetration
	}
	return demand * share / (src.CF * HoursPerYear) * 1000
}

// affordable is the capacity purchasable from last year's investment slice.
// Investment $T × shares → $B; CAPEX $/kW → $B per GW ($B per TWh-of-GWh
// for storage, same arithmetic).
func affordable(src params.Source, investment, cleanShare float64, yearIndex int) float64 {
	capex := src.Capex * math.Pow(1-src.CapexLearning, float64(yearIndex))
	if capex <= 0 {
		return math.Inf(1)
	}
	budgetB := investment * 1000 * cleanShare * src.Alloc
	return budgetB / (capex / 1000)
}

// Advance appends one year to the history.
//
// Transition order: organic growth, supply-chain cap, demand ceiling,
// investment cap, then retirement. Coal runs its forced decline path with no
// additions; backup sources (gas) skip the demand and investment caps.
func (s *State) Advance(in AdvanceInputs) {
	src := s.Source
	prev := s.Installed()

	growth := prev * src.Growth

	var additions, retirement float64

	// Retirement begins once the run is at least one lifetime old
	// (non-vintage simplification: pre-start vintages are not tracked).
	if src.Lifetime > 0 && in.YearIndex >= src.Lifetime {
		retirement = s.Records[in.YearIndex-src.Lifetime].Installed / float64(src.Lifetime)
	}

	if src.Growth < 0 {
		// Forced decline: the negative growth is applied directly and the
		// cap chain is skipped.
		installed := prev + growth - retirement
		if installed < 0 {
			installed = 0
		}
		s.Records = append(s.Records, Record{
			Installed:   installed,
			Additions:   0,
			Retirements: prev - installed,
		})
		return
	}

	additions = growth
	if cap := prev * src.MaxGrowth; additions > cap {
		additions = cap
	}
	if !src.Backup {
		if cap := maxUseful(src, in.Demand) - prev; additions > cap {
			additions = cap
		}
		if cap := affordable(src, in.Investment, in.CleanShare, in.YearIndex); additions > cap {
			additions = cap
		}
	}
	if additions < 0 {
		additions = 0
	}

	installed := prev + additions - retirement
	if installed < 0 {
		installed = 0
		retirement = prev + additions
	}
	s.Records = append(s.Records, Record{
		Installed:   installed,
		Additions:   additions,
		Retirements: retirement,
	})
}

// Fleet is the full per-source capacity state for a run.
type Fleet struct {
	states map[string]*State
}

// NewFleet seeds every source from its baseline.
func NewFleet(p *params.Params) *Fleet {
	f := &Fleet{states: make(map[string]*State, len(p.Sources))}
	for _, src := range p.Sources {
		f.states[src.Name] = NewState(src)
	}
	return f
}

// State returns one source's history.
func (f *Fleet) State(name string) *State { return f.states[name] }

// Installed returns the current installed capacity per source.
func (f *Fleet) Installed() map[string]float64 {
	out := make(map[string]float64, len(f.states))
	for name, s := range f.states {
		out[name] = s.Installed()
	}
	return out
}

// CumulativeNormalized returns the normalized cumulative deployment per source.
func (f *Fleet) CumulativeNormalized() map[string]float64 {
	out := make(map[string]float64, len(f.states))
	for name, s := range f.states {
		out[name] = s.CumulativeNormalized()
	}
	return out
}

// Advance steps every source one year in the fixed source order.
func (f *Fleet) Advance(in AdvanceInputs) {
	for _, name := range params.SourceNames {
		s, ok := f.states[name]
		if !ok {
			continue
		}
		s.Advance(in)
		if s.Installed() < 0 {
			// Advance clamps at zero; reaching here means the invariant broke.
			slog.Error("negative installed capacity", "source", name, "year_index", in.YearIndex)
		}
	}
}

// History returns a copy of one source's records.
func (f *Fleet) History(name string) []Record {
	s, ok := f.states[name]
	if !ok {
		return nil
	}
	out := make([]Record, len(s.Records))
	copy(out, s.Records)
	return out
}
