package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute(), out.String())
	return out.String()
}

func TestImportScoreAndConvert(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "elca.db")
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	version := write("bnb.yaml", `
kind: benchmark_version
id: 1
name: BNB
thresholds:
  - indicator: gwp
    points:
      - {score: 100, value: 10}
      - {score: 50, value: 50}
      - {score: 0, value: 100}
`)
	lifeCycle := write("concrete.json", `{
		"kind": "process_life_cycle",
		"process_config_id": 42,
		"process_db_id": 7,
		"processes": [
			{"id": 1, "module": "A1-3", "ref_value": 1, "ref_unit": "m3", "indicators": {"gwp": 250}},
			{"id": 2, "module": "C3", "ref_value": 1, "ref_unit": "kg", "indicators": {"gwp": 0.01}}
		],
		"conversions": [{"from": "m3", "to": "kg", "factor": 2400}]
	}`)
	totals := write("building.yaml", "gwp: 30\n")

	// GIVEN both definitions imported
	out := run(t, "--db", db, "--log-level", "error", "import", version, lifeCycle)
	assert.Contains(t, out, "imported benchmark_version")
	assert.Contains(t, out, "imported process_life_cycle")

	// WHEN scoring totals
	out = run(t, "--db", db, "--log-level", "error", "--format", "json", "score", "--version", "1", "--totals", totals)
	assert.Contains(t, out, `"gwp": 75`)

	// AND converting within the life cycle
	out = run(t, "--db", db, "--log-level", "error", "--format", "table",
		"convert", "--process-config", "42", "--process-db", "7", "--value", "2", "--from", "m3", "--to", "kg")
	assert.Contains(t, out, "2 m3 = 4800 kg")
}
