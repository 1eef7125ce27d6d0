// Package persistence provides SQLite-based storage of completed runs, so
// scenario sweeps can be compared without re-running the engine.
package persistence

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/horizon/internal/engine"
	"github.com/talgya/horizon/internal/params"
)

// DB wraps a SQLite connection for run storage.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a run store at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		created_at TEXT NOT NULL,
		start_year INTEGER NOT NULL,
		end_year INTEGER NOT NULL,
		params_json TEXT NOT NULL,
		milestones_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS series (
		run_id TEXT NOT NULL,
		metric TEXT NOT NULL,
		year INTEGER NOT NULL,
		value REAL NOT NULL,
		PRIMARY KEY (run_id, metric, year)
	);

	CREATE INDEX IF NOT EXISTS idx_series_run ON series(run_id);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// RunInfo is one stored run's metadata.
type RunInfo struct {
	ID        string `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	CreatedAt string `db:"created_at" json:"created_at"`
	StartYear int    `db:"start_year" json:"start_year"`
	EndYear   int    `db:"end_year" json:"end_year"`
}

// SaveRun stores a completed run's parameters, milestones, and every scalar
// series, returning the generated run ID.
func (db *DB) SaveRun(name string, p *params.Params, res *engine.Results) (string, error) {
	id := uuid.NewString()

	paramsJSON, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("marshal params: %w", err)
	}
	milestonesJSON, err := json.Marshal(res.Milestones())
	if err != nil {
		return "", fmt.Errorf("marshal milestones: %w", err)
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO runs
		(id, name, created_at, start_year, end_year, params_json, milestones_json)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, name, time.Now().UTC().Format(time.RFC3339),
		p.StartYear, p.EndYear, string(paramsJSON), string(milestonesJSON),
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.Preparex("INSERT INTO series (run_id, metric, year, value) VALUES (?, ?, ?, ?)")
	if err != nil {
		return "", err
	}
	defer stmt.Close()

	insert := func(metric string, values []float64) error {
		for i, v := range values {
			if _, err := stmt.Exec(id, metric, res.StartYear+i, v); err != nil {
				return fmt.Errorf("insert %s: %w", metric, err)
			}
		}
		return nil
	}

	scalars := map[string][]float64{
		"demand":         res.Demand,
		"shortfall":      res.Shortfall,
		"grid_intensity": res.GridIntensity,
		"emissions":      res.Emissions,
		"cumulative":     res.Cumulative,
		"ppm":            res.PPM,
		"temperature":    res.Temperature,
		"damage_global":  res.DamageGlobal,
		"land_use_flux":  res.LandUseFlux,
		"gdp":            res.GDP,
		"net_gdp":        res.NetGDP,
		"capital":        res.Capital,
		"investment":     res.Investment,
		"savings_rate":   res.SavingsRate,
		"interest_rate":  res.InterestRate,
		"robot_density":  res.RobotDensity,
		"energy_burden":  res.EnergyBurden,
	}
	// Stable metric order keeps inserts reproducible.
	for _, metric := range []string{
		"demand", "shortfall", "grid_intensity", "emissions", "cumulative",
		"ppm", "temperature", "damage_global", "land_use_flux", "gdp",
		"net_gdp", "capital", "investment", "savings_rate", "interest_rate",
		"robot_density", "energy_burden",
	} {
		if err := insert(metric, scalars[metric]); err != nil {
			return "", err
		}
	}
	for _, srcName := range params.SourceNames {
		if err := insert("lcoe_"+srcName, res.LCOE[srcName]); err != nil {
			return "", err
		}
		if err := insert("generation_"+srcName, res.Generation[srcName]); err != nil {
			return "", err
		}
		installed := make([]float64, len(res.Capacity[srcName]))
		for i, rec := range res.Capacity[srcName] {
			installed[i] = rec.Installed
		}
		if err := insert("capacity_"+srcName, installed); err != nil {
			return "", err
		}
	}
	if err := insert("generation_"+params.SolarBattery, res.Generation[params.SolarBattery]); err != nil {
		return "", err
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	slog.Info("run saved", "id", id, "name", name)
	return id, nil
}

// ListRuns returns stored run metadata, newest first.
func (db *DB) ListRuns() ([]RunInfo, error) {
	var runs []RunInfo
	err := db.conn.Select(&runs,
		"SELECT id, name, created_at, start_year, end_year FROM runs ORDER BY created_at DESC")
	return runs, err
}

// Series loads one metric's yearly values for a run, in year order.
func (db *DB) Series(runID, metric string) ([]float64, error) {
	var values []float64
	err := db.conn.Select(&values,
		"SELECT value FROM series WHERE run_id = ? AND metric = ? ORDER BY year",
		runID, metric)
	if err != nil {
		return nil, fmt.Errorf("load series %s: %w", metric, err)
	}
	return values, nil
}
