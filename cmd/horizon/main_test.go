package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/talgya/horizon/internal/params"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestParamsCommand(t *testing.T) {
	out, err := execute(t, "params")
	if err != nil {
		t.Fatalf("params: %v", err)
	}
	var specs []params.Spec
	if err := json.Unmarshal([]byte(out), &specs); err != nil {
		t.Fatalf("output is not schema JSON: %v", err)
	}
	if len(specs) == 0 {
		t.Error("empty schema")
	}
}

func TestRunJSONOutput(t *testing.T) {
	out, err := execute(t, "--format", "json", "--carbon-price", "70")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	var doc struct {
		StartYear   int       `json:"start_year"`
		Temperature []float64 `json:"temperature"`
	}
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("output is not run JSON: %v", err)
	}
	if doc.StartYear != 2025 || len(doc.Temperature) != 76 {
		t.Errorf("start %d with %d years, want 2025 with 76", doc.StartYear, len(doc.Temperature))
	}
}

func TestRunRejectsBadFlagValue(t *testing.T) {
	if _, err := execute(t, "--carbon-price", "99999"); err == nil {
		t.Error("out-of-range carbon price accepted")
	}
}

func TestRunRejectsMissingScenario(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.yaml")
	if _, err := execute(t, "--scenario", missing); err == nil {
		t.Error("missing scenario file accepted")
	}
}

func TestRunSavesToStore(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	if _, err := execute(t, "--format", "csv", "--db", dbPath, "--name", "smoke"); err != nil {
		t.Fatalf("run with store: %v", err)
	}

	out, err := execute(t, "runs", "--db", dbPath)
	if err != nil {
		t.Fatalf("runs: %v", err)
	}
	if !bytes.Contains([]byte(out), []byte("smoke")) {
		t.Errorf("stored run not listed:\n%s", out)
	}
}
