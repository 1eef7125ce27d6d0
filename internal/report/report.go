// Package report renders a finished run: human summary, JSON, CSV, and a
// plain-text forecast narrative.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/talgya/horizon/internal/engine"
	"github.com/talgya/horizon/internal/params"
)

// Formats accepted by Write.
const (
	FormatSummary  = "summary"
	FormatJSON     = "json"
	FormatCSV      = "csv"
	FormatForecast = "forecast"
)

// Write renders results in the requested format.
func Write(w io.Writer, format string, res *engine.Results) error {
	switch format {
	case FormatSummary:
		return Summary(w, res)
	case FormatJSON:
		return JSON(w, res)
	case FormatCSV:
		return CSV(w, res)
	case FormatForecast:
		return Forecast(w, res)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// SchemaJSON writes the Tier-1 parameter schema for external tooling.
func SchemaJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(params.Schema())
}

// Summary prints the milestone metrics and a coarse series table.
func Summary(w io.Writer, res *engine.Results) error {
	m := res.Milestones()
	n := len(res.Years)

	fmt.Fprintf(w, "Horizon run %d–%d\n\n", res.Years[0], res.Years[n-1])
	fmt.Fprintf(w, "Milestones\n")
	if m.SolarBeatsGasYear > 0 {
		fmt.Fprintf(w, "  solar cheaper than gas:  %d\n", m.SolarBeatsGasYear)
	}
	fmt.Fprintf(w, "  peak emissions:          %d (%.1f Gt CO2)\n", m.PeakEmissionsYear, maxOf(res.Emissions))
	if m.GridClean90Year > 0 {
		fmt.Fprintf(w, "  grid 90%% decarbonized:   %d\n", m.GridClean90Year)
	}
	fmt.Fprintf(w, "  warming 2050 / 2100:     %.2f °C / %.2f °C\n", m.Temp2050, m.Temp2100)
	fmt.Fprintf(w, "  cumulative CO2 by 2100:  %s Gt\n", humanize.Commaf(round1(m.Cumulative2100)))
	fmt.Fprintf(w, "  GDP 2100:                $%s T\n", humanize.Commaf(round1(m.GDP2100)))
	fmt.Fprintf(w, "  robots per 1000 workers: %.0f\n\n", m.RobotDensity2100)

	fmt.Fprintf(w, "%-6s %10s %10s %8s %8s %10s %10s\n",
		"year", "demand", "emissions", "temp", "solar", "gas", "coal")
	fmt.Fprintf(w, "%-6s %10s %10s %8s %8s %10s %10s\n",
		"", "TWh", "Gt", "°C", "$/MWh", "TWh", "TWh")
	for i := 0; i < n; i += 5 {
		fmt.Fprintf(w, "%-6d %10s %10.1f %8.2f %8.1f %10s %10s\n",
			res.Years[i],
			humanize.Commaf(round1(res.Demand[i])),
			res.Emissions[i],
			res.Temperature[i],
			res.LCOE[params.Solar][i],
			humanize.Commaf(round1(res.Generation[params.Gas][i])),
			humanize.Commaf(round1(res.Generation[params.Coal][i])),
		)
	}
	return nil
}

// JSON emits the full results object plus milestones.
func JSON(w io.Writer, res *engine.Results) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		*engine.Results
		Milestones engine.Milestones `json:"milestones"`
	}{res, res.Milestones()})
}

// CSV emits one row per year with every scalar series as a column.
func CSV(w io.Writer, res *engine.Results) error {
	cw := csv.NewWriter(w)
	header := []string{"year", "demand_twh", "shortfall_twh", "grid_intensity_kg_mwh",
		"emissions_gt", "cumulative_gt", "ppm", "temperature_c", "damage_global",
		"land_use_flux_gt", "gdp_t", "net_gdp_t", "capital_t", "investment_t",
		"savings_rate", "interest_rate", "robot_density", "energy_burden"}
	for _, name := range params.SourceNames {
		header = append(header, "lcoe_"+name, "generation_"+name, "capacity_"+name)
	}
	header = append(header, "generation_"+params.SolarBattery)
	if err := cw.Write(header); err != nil {
		return err
	}

	f := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	for i, year := range res.Years {
		row := []string{
			strconv.Itoa(year),
			f(res.Demand[i]), f(res.Shortfall[i]), f(res.GridIntensity[i]),
			f(res.Emissions[i]), f(res.Cumulative[i]), f(res.PPM[i]),
			f(res.Temperature[i]), f(res.DamageGlobal[i]), f(res.LandUseFlux[i]),
			f(res.GDP[i]), f(res.NetGDP[i]), f(res.Capital[i]), f(res.Investment[i]),
			f(res.SavingsRate[i]), f(res.InterestRate[i]), f(res.RobotDensity[i]),
			f(res.EnergyBurden[i]),
		}
		for _, name := range params.SourceNames {
			row = append(row, f(res.LCOE[name][i]), f(res.Generation[name][i]),
				f(res.Capacity[name][i].Installed))
		}
		row = append(row, f(res.Generation[params.SolarBattery][i]))
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Forecast writes a decadal plain-text narrative of the run.
func Forecast(w io.Writer, res *engine.Results) error {
	var b strings.Builder
	n := len(res.Years)
	m := res.Milestones()

	fmt.Fprintf(&b, "THE HORIZON FORECAST\n")
	fmt.Fprintf(&b, "====================\n")
	fmt.Fprintf(&b, "%d–%d outlook\n\n", res.Years[0], res.Years[n-1])

	for i := 0; i < n; i += 10 {
		year := res.Years[i]
		fmt.Fprintf(&b, "%d\n", year)
		fmt.Fprintf(&b, "Electricity demand stands at %s TWh; the grid emits %.0f kg CO2/MWh.\n",
			humanize.Commaf(round1(res.Demand[i])), res.GridIntensity[i])
		fmt.Fprintf(&b, "Solar delivers energy at $%.1f/MWh against gas at $%.1f/MWh.\n",
			res.LCOE[params.Solar][i], res.LCOE[params.Gas][i])
		fmt.Fprintf(&b, "The world has warmed %.2f °C; climate losses run %.1f%% of output.\n",
			res.Temperature[i], res.DamageGlobal[i]*100)
		fmt.Fprintf(&b, "Gross world product: $%s T. Robots per 1000 workers: %.0f.\n\n",
			humanize.Commaf(round1(res.GDP[i])), res.RobotDensity[i])
	}

	fmt.Fprintf(&b, "CENTURY CLOSE\n")
	if m.SolarBeatsGasYear > 0 {
		fmt.Fprintf(&b, "Solar undercut gas in %d.\n", m.SolarBeatsGasYear)
	}
	fmt.Fprintf(&b, "Emissions peaked in %d.\n", m.PeakEmissionsYear)
	if m.GridClean90Year > 0 {
		fmt.Fprintf(&b, "The grid reached 90%% decarbonization in %d.\n", m.GridClean90Year)
	}
	fmt.Fprintf(&b, "Warming reaches %.2f °C by 2100 on %s Gt of cumulative CO2.\n",
		m.Temp2100, humanize.Commaf(round1(m.Cumulative2100)))

	_, err := io.WriteString(w, b.String())
	return err
}

func maxOf(s []float64) float64 {
	best := s[0]
	for _, v := range s[1:] {
		if v > best {
			best = v
		}
	}
	return best
}

func round1(v float64) float64 {
	return float64(int64(v*10+0.5)) / 10
}
