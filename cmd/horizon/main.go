// Command horizon runs the energy–economy–climate simulation.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/talgya/horizon/internal/engine"
	"github.com/talgya/horizon/internal/params"
	"github.com/talgya/horizon/internal/persistence"
	"github.com/talgya/horizon/internal/report"
	"github.com/talgya/horizon/internal/scenario"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// tier1Flags maps CLI flag names to schema parameter names.
var tier1Flags = map[string]string{
	"carbon-price":          "carbonPrice",
	"solar-learning":        "solarLearning",
	"solar-growth":          "solarGrowth",
	"electrification":       "electrificationTarget",
	"efficiency":            "efficiencyGain",
	"climate-sensitivity":   "climateSensitivity",
	"clean-budget":          "cleanBudgetShare",
	"max-damage":            "maxDamage",
	"temperature-lag":       "temperatureLag",
	"automation-growth":     "automationGrowth",
}

func newRootCmd() *cobra.Command {
	var (
		scenarioPath string
		format       string
		dbPath       string
		runName      string
		verbose      bool
	)

	root := &cobra.Command{
		Use:   "horizon",
		Short: "Deterministic 2025–2100 energy–economy–climate simulation",
		RunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelInfo
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: level,
			})))

			p := params.Defaults()
			if scenarioPath != "" {
				var err error
				p, err = scenario.Load(scenarioPath)
				if err != nil {
					return fmt.Errorf("load scenario: %w", err)
				}
			}
			for flag, param := range tier1Flags {
				if cmd.Flags().Changed(flag) {
					v, err := cmd.Flags().GetFloat64(flag)
					if err != nil {
						return err
					}
					if err := params.Apply(&p, param, v); err != nil {
						return err
					}
				}
			}

			res := engine.New(p).Run()

			if dbPath != "" {
				db, err := persistence.Open(dbPath)
				if err != nil {
					return fmt.Errorf("open run store: %w", err)
				}
				defer db.Close()
				if _, err := db.SaveRun(runName, &p, res); err != nil {
					return fmt.Errorf("save run: %w", err)
				}
			}

			return report.Write(cmd.OutOrStdout(), format, res)
		},
	}

	root.Flags().StringVar(&scenarioPath, "scenario", "", "scenario YAML file")
	root.Flags().StringVar(&format, "format", report.FormatSummary, "output format: summary, json, csv, forecast")
	root.Flags().StringVar(&dbPath, "db", "", "optional SQLite run store path")
	root.Flags().StringVar(&runName, "name", "default", "run name for the store")
	root.Flags().BoolVarP(&verbose, "verbose", "v", false, "log engine progress")
	for flag, param := range tier1Flags {
		for _, s := range params.Schema() {
			if s.Name == param {
				root.Flags().Float64(flag, s.Default, s.Description)
			}
		}
	}

	root.AddCommand(newParamsCmd(), newRunsCmd())
	return root
}

// newParamsCmd prints the Tier-1 parameter schema as JSON.
func newParamsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "params",
		Short: "Print the Tier-1 parameter schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			return report.SchemaJSON(cmd.OutOrStdout())
		},
	}
}

// newRunsCmd lists stored runs in a run store.
func newRunsCmd() *cobra.Command {
	var dbPath string
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List stored runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := persistence.Open(dbPath)
			if err != nil {
				return fmt.Errorf("open run store: %w", err)
			}
			defer db.Close()
			runs, err := db.ListRuns()
			if err != nil {
				return err
			}
			for _, r := range runs {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %d–%d  %s\n",
					r.ID, r.CreatedAt, r.StartYear, r.EndYear, r.Name)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "horizon.db", "SQLite run store path")
	return cmd
}
