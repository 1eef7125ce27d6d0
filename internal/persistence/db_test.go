package persistence

import (
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/talgya/horizon/internal/engine"
	"github.com/talgya/horizon/internal/params"
)

func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	os.Exit(m.Run())
}

func testRun(t *testing.T) (params.Params, *engine.Results) {
	t.Helper()
	p := params.Defaults()
	p.EndYear = 2040
	return p, engine.New(p).Run()
}

func TestSaveAndLoadRun(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	p, res := testRun(t)
	id, err := db.SaveRun("baseline", &p, res)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if id == "" {
		t.Fatal("empty run id")
	}

	runs, err := db.ListRuns()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("runs = %d, want 1", len(runs))
	}
	if runs[0].ID != id || runs[0].Name != "baseline" {
		t.Errorf("run info = %+v", runs[0])
	}
	if runs[0].StartYear != p.StartYear || runs[0].EndYear != p.EndYear {
		t.Errorf("run span = %d–%d, want %d–%d",
			runs[0].StartYear, runs[0].EndYear, p.StartYear, p.EndYear)
	}
}

func TestSeriesRoundtrip(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	p, res := testRun(t)
	id, err := db.SaveRun("roundtrip", &p, res)
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	for metric, want := range map[string][]float64{
		"temperature":     res.Temperature,
		"demand":          res.Demand,
		"lcoe_solar":      res.LCOE[params.Solar],
		"generation_coal": res.Generation[params.Coal],
	} {
		got, err := db.Series(id, metric)
		if err != nil {
			t.Fatalf("series %s: %v", metric, err)
		}
		if len(got) != len(want) {
			t.Fatalf("series %s: %d values, want %d", metric, len(got), len(want))
		}
		for i := range want {
			if math.Abs(got[i]-want[i]) > 1e-9 {
				t.Fatalf("series %s [%d]: %g, want %g", metric, i, got[i], want[i])
			}
		}
	}

	capSeries, err := db.Series(id, "capacity_coal")
	if err != nil {
		t.Fatalf("series capacity_coal: %v", err)
	}
	if len(capSeries) != len(res.Capacity[params.Coal]) {
		t.Fatalf("capacity series = %d values, want %d",
			len(capSeries), len(res.Capacity[params.Coal]))
	}
	if capSeries[0] != res.Capacity[params.Coal][0].Installed {
		t.Errorf("capacity_coal[0] = %g, want %g",
			capSeries[0], res.Capacity[params.Coal][0].Installed)
	}
}

func TestSeriesUnknownRun(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	got, err := db.Series("no-such-run", "temperature")
	if err != nil {
		t.Fatalf("series: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("series for unknown run = %d values, want none", len(got))
	}
}

func TestMultipleRunsListed(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	p, res := testRun(t)
	if _, err := db.SaveRun("first", &p, res); err != nil {
		t.Fatal(err)
	}
	if _, err := db.SaveRun("second", &p, res); err != nil {
		t.Fatal(err)
	}

	runs, err := db.ListRuns()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Fatalf("runs = %d, want 2", len(runs))
	}
}
