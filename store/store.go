/*
Package store defines the repositories that supply the scoring engine
with its inputs.

PURPOSE:
  Benchmark versions, process life cycles and project-specific life cycle
  usages are assembled outside the core packages. The engine only sees
  these interfaces, so the same code runs against the in-memory store in
  tests and against SQLite in the CLI.

KEY INTERFACES:
  VersionStore:    Benchmark versions with thresholds, usages, reference
                   values and groups
  LifeCycleStore:  Process life cycles per (process config, process db)
  ProjectStore:    Life cycle usages a project overrides

NOT FOUND:
  Lookups of missing records return an error wrapping lca.ErrNotFound
  (check with lca.IsNotFound), never a nil value with a nil error.

IMPLEMENTATIONS:
  - store/memory: In-memory, for tests and one-shot CLI runs
  - store/sqlite: SQLite, schema auto-migrated on open

SEE ALSO:
  - engine/engine.go: Consumer of Store
  - factory: Builds the records stored here from JSON/YAML
*/
package store

import (
	"context"

	"github.com/IWUGERMANY/elca-sub014/benchmark"
	"github.com/IWUGERMANY/elca-sub014/lca"
	"github.com/IWUGERMANY/elca-sub014/lifecycle"
)

// =============================================================================
// REPOSITORIES
// =============================================================================

type VersionStore interface {
	// SaveVersion inserts or replaces a benchmark version.
	SaveVersion(ctx context.Context, v *benchmark.Version) error

	GetVersion(ctx context.Context, id lca.BenchmarkVersionID) (*benchmark.Version, error)

	// ListVersions returns all versions ordered by ID.
	ListVersions(ctx context.Context) ([]*benchmark.Version, error)
}

type LifeCycleStore interface {
	// SaveLifeCycle inserts or replaces a life cycle, keeping process and
	// conversion order.
	SaveLifeCycle(ctx context.Context, lc *lifecycle.ProcessLifeCycle) error

	GetLifeCycle(ctx context.Context, id lca.ProcessLifeCycleID) (*lifecycle.ProcessLifeCycle, error)

	// ListLifeCycles returns the IDs of all stored life cycles, ordered.
	ListLifeCycles(ctx context.Context) ([]lca.ProcessLifeCycleID, error)
}

type ProjectStore interface {
	SaveProjectUsages(ctx context.Context, project lca.ProjectID, usages *lifecycle.LifeCycleUsages) error

	// GetProjectUsages returns the project's usages; a project without
	// overrides yields a not-found error.
	GetProjectUsages(ctx context.Context, project lca.ProjectID) (*lifecycle.LifeCycleUsages, error)
}

// Store combines all repositories.
type Store interface {
	VersionStore
	LifeCycleStore
	ProjectStore
	Close() error
}
