/*
main.go - elca command line

PURPOSE:
  Imports benchmark versions and process life cycles into a SQLite
  database, scores building totals against a benchmark version and
  inspects the unit conversions of process configs.

COMMANDS:
  import     Save definition documents (JSON/YAML)
  list       List stored benchmark versions and life cycles
  score      Score indicator totals or per-module results
  lifecycle  Show processes and required conversions of a life cycle
  component  Indicator values of a quantity built into a component
  convert    Convert a quantity within a life cycle

CONFIGURATION:
  --config elca.toml   file (toml, yaml or json), else ./elca.{toml,yaml,yml,json}
  ELCA_*               environment overrides, e.g. ELCA_DATABASE_PATH
  --db, --log-level    flags override both

EXAMPLES:
  elca import bnb-2015.yaml concrete-42.json
  elca score --version 1 --totals building.yaml
  elca score --version 1 --totals a.yaml --totals b.yaml --format json
  elca convert --process-config 42 --process-db 7 --value 2 --from m3 --to kg

SEE ALSO:
  - engine/engine.go: Everything the commands call
  - config/config.go: Configuration keys
*/
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
