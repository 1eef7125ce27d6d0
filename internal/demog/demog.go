// Package demog is the deterministic population provider: a logistic-shaped
// world population curve with linearly drifting cohort shares. It stands in
// for the external demographic cohort model and supplies the series the
// capital chain and per-worker ratios consume.
package demog

import (
	"math"

	"github.com/talgya/horizon/internal/params"
)

// Year is one year of demographic output. Population in billions.
type Year struct {
	Population   float64
	Workforce    float64 // Billions of workers
	YoungShare   float64
	WorkingShare float64
	OldShare     float64
}

// Series produces the full demographic trajectory for a run. The curve
// rises smoothly from the 2025 baseline, peaks at PeakYear, and eases off
// afterwards; cohort shares drift linearly toward their 2100 values.
func Series(p *params.Params) []Year {
	years := p.Years()
	out := make([]Year, years)
	d := p.Demog
	span := float64(years - 1)

	for i := 0; i < years; i++ {
		year := p.StartYear + i
		frac := 0.0
		if span > 0 {
			frac = float64(i) / span
		}

		// Smooth rise to the peak, gentle 0.2%/yr decline past it.
		var pop float64
		if year <= d.PeakYear {
			rise := float64(year-p.StartYear) / float64(d.PeakYear-p.StartYear)
			pop = d.Population0 + (d.PeakPop-d.Population0)*math.Sin(rise*math.Pi/2)
		} else {
			pop = d.PeakPop * math.Pow(0.998, float64(year-d.PeakYear))
		}

		young := d.Young0 + (d.Young2100-d.Young0)*frac
		working := d.Working0 + (d.Working2100-d.Working0)*frac
		old := d.Old0 + (d.Old2100-d.Old0)*frac

		out[i] = Year{
			Population:   pop,
			Workforce:    pop * working * d.WorkforceFrac,
			YoungShare:   young,
			WorkingShare: working,
			OldShare:     old,
		}
	}
	return out
}
