/*
Package sqlite provides a SQLite-backed implementation of store.Store.

PURPOSE:
  Persists benchmark versions, process life cycles and project usages so
  the CLI can import definitions once and score against them later.

KEY TABLES:
  benchmark_versions:          One row per version; groups as JSON
  benchmark_thresholds:        (version, indicator, score) -> value
  benchmark_life_cycle_usages: Usage flags per (version, module)
  benchmark_ref_values:        Reference construction / energy values
  process_life_cycles:         One row per (process config, process db)
  processes:                   Processes in load order
  process_indicators:          Indicator values per process
  process_conversions:         Conversions in insertion order
  project_life_cycle_usages:   Usage flags a project overrides

ORDER:
  Every child table carries a position column. Process order decides the
  pivot unit of a life cycle, so it must survive a round trip.

NUMBERS:
  Decimals are stored as TEXT to keep them exact. A NULL value column is a
  null indicator value; a NULL factor is a required conversion.

REPLACE SEMANTICS:
  Saving an existing version or life cycle replaces it: the parent row is
  upserted and all child rows are rewritten inside one transaction.

WAL MODE:
  Opened with WAL and foreign keys on. Child rows are removed by
  ON DELETE CASCADE.

USAGE:
  s, err := sqlite.New("./elca.db")
  if err != nil {
      log.Fatal(err)
  }
  defer s.Close()

SEE ALSO:
  - store/store.go: Interface definitions
  - store/memory: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/IWUGERMANY/elca-sub014/benchmark"
	"github.com/IWUGERMANY/elca-sub014/conversion"
	"github.com/IWUGERMANY/elca-sub014/lca"
	"github.com/IWUGERMANY/elca-sub014/lifecycle"
	"github.com/IWUGERMANY/elca-sub014/store"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
)

var _ store.Store = (*Store)(nil)

const (
	refConstruction = "construction"
	refEnergy       = "energy"
)

// Store implements store.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New opens (and migrates) the database at dbPath.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// every connection to ":memory:" is a fresh database
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS benchmark_versions (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		process_db_id INTEGER NOT NULL DEFAULT 0,
		use_reference_model INTEGER NOT NULL DEFAULT 0,
		groups_json TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS benchmark_thresholds (
		version_id INTEGER NOT NULL REFERENCES benchmark_versions(id) ON DELETE CASCADE,
		indicator TEXT NOT NULL,
		position INTEGER NOT NULL,
		score TEXT NOT NULL,
		value TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_thresholds_version
		ON benchmark_thresholds(version_id, position);

	CREATE TABLE IF NOT EXISTS benchmark_life_cycle_usages (
		version_id INTEGER NOT NULL REFERENCES benchmark_versions(id) ON DELETE CASCADE,
		module TEXT NOT NULL,
		construction INTEGER NOT NULL DEFAULT 0,
		maintenance INTEGER NOT NULL DEFAULT 0,
		energy_demand INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (version_id, module)
	);

	CREATE TABLE IF NOT EXISTS benchmark_ref_values (
		version_id INTEGER NOT NULL REFERENCES benchmark_versions(id) ON DELETE CASCADE,
		kind TEXT NOT NULL,
		indicator TEXT NOT NULL,
		position INTEGER NOT NULL,
		value TEXT,
		PRIMARY KEY (version_id, kind, indicator)
	);

	CREATE TABLE IF NOT EXISTS process_life_cycles (
		process_config_id INTEGER NOT NULL,
		process_db_id INTEGER NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		PRIMARY KEY (process_config_id, process_db_id)
	);

	CREATE TABLE IF NOT EXISTS processes (
		process_config_id INTEGER NOT NULL,
		process_db_id INTEGER NOT NULL,
		position INTEGER NOT NULL,
		id INTEGER NOT NULL,
		uuid TEXT,
		name TEXT NOT NULL,
		module TEXT NOT NULL,
		ref_value TEXT NOT NULL,
		ref_unit TEXT NOT NULL,
		ratio TEXT NOT NULL,
		PRIMARY KEY (process_config_id, process_db_id, position),
		FOREIGN KEY (process_config_id, process_db_id)
			REFERENCES process_life_cycles(process_config_id, process_db_id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS process_indicators (
		process_config_id INTEGER NOT NULL,
		process_db_id INTEGER NOT NULL,
		process_position INTEGER NOT NULL,
		position INTEGER NOT NULL,
		indicator TEXT NOT NULL,
		value TEXT,
		PRIMARY KEY (process_config_id, process_db_id, process_position, indicator),
		FOREIGN KEY (process_config_id, process_db_id, process_position)
			REFERENCES processes(process_config_id, process_db_id, position) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS process_conversions (
		process_config_id INTEGER NOT NULL,
		process_db_id INTEGER NOT NULL,
		position INTEGER NOT NULL,
		from_unit TEXT NOT NULL,
		to_unit TEXT NOT NULL,
		kind TEXT NOT NULL,
		factor TEXT,
		type TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (process_config_id, process_db_id, position),
		FOREIGN KEY (process_config_id, process_db_id)
			REFERENCES process_life_cycles(process_config_id, process_db_id) ON DELETE CASCADE
	);
	CREATE UNIQUE INDEX IF NOT EXISTS idx_conversions_pair
		ON process_conversions(process_config_id, process_db_id, from_unit, to_unit);

	CREATE TABLE IF NOT EXISTS project_life_cycle_usages (
		project_id INTEGER NOT NULL,
		module TEXT NOT NULL,
		construction INTEGER NOT NULL DEFAULT 0,
		maintenance INTEGER NOT NULL DEFAULT 0,
		energy_demand INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (project_id, module)
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// withTx runs fn in a transaction, rolling back on error.
func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// =============================================================================
// VERSION STORE
// =============================================================================

// groupRecord is the JSON shape of benchmark_versions.groups_json.
type groupRecord struct {
	Name     string          `json:"name"`
	Members  []memberRecord  `json:"members"`
	Captions []captionRecord `json:"captions,omitempty"`
}

type memberRecord struct {
	Indicator string `json:"indicator"`
	Weight    string `json:"weight"`
}

type captionRecord struct {
	MinScore string `json:"min_score"`
	Caption  string `json:"caption"`
}

// SaveVersion inserts or replaces a benchmark version.
func (s *Store) SaveVersion(ctx context.Context, v *benchmark.Version) error {
	if v == nil {
		return fmt.Errorf("%w: nil benchmark version", lca.ErrInvalidArgument)
	}
	groupsJSON, err := json.Marshal(toGroupRecords(v.Groups))
	if err != nil {
		return fmt.Errorf("failed to encode groups: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		now := time.Now().UTC().Format(time.RFC3339)
		_, err := tx.ExecContext(ctx, `
			INSERT INTO benchmark_versions (id, name, process_db_id, use_reference_model, groups_json, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				name = excluded.name,
				process_db_id = excluded.process_db_id,
				use_reference_model = excluded.use_reference_model,
				groups_json = excluded.groups_json,
				updated_at = excluded.updated_at
		`, v.ID, v.Name, v.ProcessDbID, v.UseReferenceModel, string(groupsJSON), now, now)
		if err != nil {
			return fmt.Errorf("failed to save benchmark version: %w", err)
		}

		for _, table := range []string{"benchmark_thresholds", "benchmark_life_cycle_usages", "benchmark_ref_values"} {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE version_id = ?", v.ID); err != nil {
				return err
			}
		}

		position := 0
		for _, ident := range v.Thresholds.Idents() {
			for _, p := range v.Thresholds.Get(ident).Points() {
				_, err := tx.ExecContext(ctx,
					"INSERT INTO benchmark_thresholds (version_id, indicator, position, score, value) VALUES (?, ?, ?, ?, ?)",
					v.ID, ident.String(), position, p.Score.String(), p.Value.String())
				if err != nil {
					return fmt.Errorf("failed to save thresholds: %w", err)
				}
				position++
			}
		}

		for _, u := range v.Usages.Usages() {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO benchmark_life_cycle_usages (version_id, module, construction, maintenance, energy_demand)
				VALUES (?, ?, ?, ?, ?)
			`, v.ID, u.Module.String(), u.AppliedInConstruction, u.AppliedInMaintenance, u.AppliedInEnergyDemand)
			if err != nil {
				return fmt.Errorf("failed to save life cycle usages: %w", err)
			}
		}

		if err := saveRefValues(ctx, tx, v.ID, refConstruction, v.RefConstruction); err != nil {
			return err
		}
		return saveRefValues(ctx, tx, v.ID, refEnergy, v.RefEnergy)
	})
}

func saveRefValues(ctx context.Context, db execer, id lca.BenchmarkVersionID, kind string, set *lca.IndicatorSet) error {
	for i, value := range set.Values() {
		_, err := db.ExecContext(ctx,
			"INSERT INTO benchmark_ref_values (version_id, kind, indicator, position, value) VALUES (?, ?, ?, ?, ?)",
			id, kind, value.Ident.String(), i, nullDecimalString(value.Value))
		if err != nil {
			return fmt.Errorf("failed to save reference values: %w", err)
		}
	}
	return nil
}

// GetVersion loads a benchmark version with all its children.
func (s *Store) GetVersion(ctx context.Context, id lca.BenchmarkVersionID) (*benchmark.Version, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v := &benchmark.Version{
		ID:              id,
		Thresholds:      benchmark.NewThresholdSet(),
		RefConstruction: &lca.IndicatorSet{},
		RefEnergy:       &lca.IndicatorSet{},
	}
	var groupsJSON sql.NullString
	err := s.db.QueryRowContext(ctx,
		"SELECT name, process_db_id, use_reference_model, groups_json FROM benchmark_versions WHERE id = ?", id,
	).Scan(&v.Name, &v.ProcessDbID, &v.UseReferenceModel, &groupsJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &lca.NotFoundError{Kind: "benchmark version", Key: fmt.Sprint(id)}
	}
	if err != nil {
		return nil, err
	}

	if groupsJSON.Valid && groupsJSON.String != "" {
		var records []groupRecord
		if err := json.Unmarshal([]byte(groupsJSON.String), &records); err != nil {
			return nil, fmt.Errorf("failed to decode groups of version %d: %w", id, err)
		}
		if v.Groups, err = fromGroupRecords(records); err != nil {
			return nil, err
		}
	}

	if err := s.loadThresholds(ctx, v); err != nil {
		return nil, err
	}
	if v.Usages, err = s.loadUsages(ctx,
		"SELECT module, construction, maintenance, energy_demand FROM benchmark_life_cycle_usages WHERE version_id = ?", id); err != nil {
		return nil, err
	}
	if err := s.loadRefValues(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *Store) loadThresholds(ctx context.Context, v *benchmark.Version) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT indicator, score, value FROM benchmark_thresholds WHERE version_id = ? ORDER BY position", v.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	var order []lca.IndicatorIdent
	points := make(map[lca.IndicatorIdent][]benchmark.Threshold)
	for rows.Next() {
		var indicator, score, value string
		if err := rows.Scan(&indicator, &score, &value); err != nil {
			return err
		}
		ident := lca.IndicatorIdent(indicator)
		if _, seen := points[ident]; !seen {
			order = append(order, ident)
		}
		p := benchmark.Threshold{}
		if p.Score, err = decimal.NewFromString(score); err != nil {
			return fmt.Errorf("invalid threshold score %q: %w", score, err)
		}
		if p.Value, err = decimal.NewFromString(value); err != nil {
			return fmt.Errorf("invalid threshold value %q: %w", value, err)
		}
		points[ident] = append(points[ident], p)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	for _, ident := range order {
		v.Thresholds.Put(ident, benchmark.NewNamedScoreThresholds(ident.String(), points[ident]...))
	}
	return nil
}

func (s *Store) loadRefValues(ctx context.Context, v *benchmark.Version) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT kind, indicator, value FROM benchmark_ref_values WHERE version_id = ? ORDER BY kind, position", v.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var kind, indicator string
		var value sql.NullString
		if err := rows.Scan(&kind, &indicator, &value); err != nil {
			return err
		}
		iv, err := indicatorValue(indicator, value)
		if err != nil {
			return err
		}
		if kind == refEnergy {
			v.RefEnergy.Put(iv)
		} else {
			v.RefConstruction.Put(iv)
		}
	}
	return rows.Err()
}

// ListVersions returns all versions ordered by ID.
func (s *Store) ListVersions(ctx context.Context) ([]*benchmark.Version, error) {
	s.mu.RLock()
	rows, err := s.db.QueryContext(ctx, "SELECT id FROM benchmark_versions ORDER BY id")
	if err != nil {
		s.mu.RUnlock()
		return nil, err
	}
	var ids []lca.BenchmarkVersionID
	for rows.Next() {
		var id lca.BenchmarkVersionID
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			s.mu.RUnlock()
			return nil, err
		}
		ids = append(ids, id)
	}
	rows.Close()
	s.mu.RUnlock()

	versions := make([]*benchmark.Version, 0, len(ids))
	for _, id := range ids {
		v, err := s.GetVersion(ctx, id)
		if err != nil {
			return nil, err
		}
		versions = append(versions, v)
	}
	return versions, nil
}

// =============================================================================
// LIFE CYCLE STORE
// =============================================================================

// SaveLifeCycle inserts or replaces a process life cycle.
func (s *Store) SaveLifeCycle(ctx context.Context, lc *lifecycle.ProcessLifeCycle) error {
	if lc == nil {
		return fmt.Errorf("%w: nil process life cycle", lca.ErrInvalidArgument)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, db := lc.ProcessConfigID(), lc.ProcessDbID()
	return s.withTx(ctx, func(tx *sql.Tx) error {
		now := time.Now().UTC().Format(time.RFC3339)
		_, err := tx.ExecContext(ctx, `
			INSERT INTO process_life_cycles (process_config_id, process_db_id, created_at, updated_at)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(process_config_id, process_db_id) DO UPDATE SET updated_at = excluded.updated_at
		`, cfg, db, now, now)
		if err != nil {
			return fmt.Errorf("failed to save process life cycle: %w", err)
		}

		// process_indicators cascade from processes
		for _, table := range []string{"processes", "process_conversions"} {
			if _, err := tx.ExecContext(ctx,
				"DELETE FROM "+table+" WHERE process_config_id = ? AND process_db_id = ?", cfg, db); err != nil {
				return err
			}
		}

		for pos, p := range lc.Processes() {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO processes (process_config_id, process_db_id, position, id, uuid, name, module, ref_value, ref_unit, ratio)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			`, cfg, db, pos, p.ID, uuidString(p.UUID), p.Name, p.Module.String(),
				p.QuantitativeReference.Value.String(), p.Unit().String(), p.ModuleRatio.String())
			if err != nil {
				return fmt.Errorf("failed to save process %d: %w", p.ID, err)
			}
			for i, value := range p.Indicators.Values() {
				_, err := tx.ExecContext(ctx, `
					INSERT INTO process_indicators (process_config_id, process_db_id, process_position, position, indicator, value)
					VALUES (?, ?, ?, ?, ?, ?)
				`, cfg, db, pos, i, value.Ident.String(), nullDecimalString(value.Value))
				if err != nil {
					return fmt.Errorf("failed to save indicators of process %d: %w", p.ID, err)
				}
			}
		}

		for pos, c := range lc.Conversions().Slice() {
			var factor sql.NullString
			if f, ok := c.Factor(); ok {
				factor = sql.NullString{String: f.String(), Valid: true}
			}
			_, err := tx.ExecContext(ctx, `
				INSERT INTO process_conversions (process_config_id, process_db_id, position, from_unit, to_unit, kind, factor, type)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			`, cfg, db, pos, c.From().String(), c.To().String(), string(c.Kind()), factor, string(c.Type()))
			if err != nil {
				return fmt.Errorf("failed to save conversion %s: %w", c, err)
			}
		}
		return nil
	})
}

// GetLifeCycle loads a process life cycle in stored order.
func (s *Store) GetLifeCycle(ctx context.Context, id lca.ProcessLifeCycleID) (*lifecycle.ProcessLifeCycle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var exists int
	err := s.db.QueryRowContext(ctx,
		"SELECT 1 FROM process_life_cycles WHERE process_config_id = ? AND process_db_id = ?",
		id.ProcessConfigID, id.ProcessDbID,
	).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &lca.NotFoundError{Kind: "process life cycle", Key: id.String()}
	}
	if err != nil {
		return nil, err
	}

	processes, err := s.loadProcesses(ctx, id)
	if err != nil {
		return nil, err
	}
	conversions, err := s.loadConversions(ctx, id)
	if err != nil {
		return nil, err
	}
	return lifecycle.New(id, processes, conversions), nil
}

func (s *Store) loadProcesses(ctx context.Context, id lca.ProcessLifeCycleID) ([]lifecycle.Process, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, uuid, name, module, ref_value, ref_unit, ratio
		FROM processes WHERE process_config_id = ? AND process_db_id = ? ORDER BY position
	`, id.ProcessConfigID, id.ProcessDbID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var processes []lifecycle.Process
	for rows.Next() {
		var p lifecycle.Process
		var uuidStr sql.NullString
		var module, refValue, refUnit, ratio string
		if err := rows.Scan(&p.ID, &uuidStr, &p.Name, &module, &refValue, &refUnit, &ratio); err != nil {
			return nil, err
		}
		p.Module = lca.Module(module)
		value, err := decimal.NewFromString(refValue)
		if err != nil {
			return nil, fmt.Errorf("process %d: invalid reference value %q: %w", p.ID, refValue, err)
		}
		p.QuantitativeReference = lca.NewQuantityFromDecimal(value, lca.Unit(refUnit))
		if p.ModuleRatio, err = decimal.NewFromString(ratio); err != nil {
			return nil, fmt.Errorf("process %d: invalid ratio %q: %w", p.ID, ratio, err)
		}
		if uuidStr.Valid && uuidStr.String != "" {
			if p.UUID, err = uuid.Parse(uuidStr.String); err != nil {
				return nil, fmt.Errorf("process %d: %w", p.ID, err)
			}
		}
		p.Indicators = &lca.IndicatorSet{}
		processes = append(processes, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	indicatorRows, err := s.db.QueryContext(ctx, `
		SELECT process_position, indicator, value
		FROM process_indicators WHERE process_config_id = ? AND process_db_id = ?
		ORDER BY process_position, position
	`, id.ProcessConfigID, id.ProcessDbID)
	if err != nil {
		return nil, err
	}
	defer indicatorRows.Close()

	for indicatorRows.Next() {
		var pos int
		var indicator string
		var value sql.NullString
		if err := indicatorRows.Scan(&pos, &indicator, &value); err != nil {
			return nil, err
		}
		if pos < 0 || pos >= len(processes) {
			continue
		}
		iv, err := indicatorValue(indicator, value)
		if err != nil {
			return nil, err
		}
		processes[pos].Indicators.Put(iv)
	}
	return processes, indicatorRows.Err()
}

func (s *Store) loadConversions(ctx context.Context, id lca.ProcessLifeCycleID) ([]conversion.Conversion, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT from_unit, to_unit, kind, factor, type
		FROM process_conversions WHERE process_config_id = ? AND process_db_id = ? ORDER BY position
	`, id.ProcessConfigID, id.ProcessDbID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var conversions []conversion.Conversion
	for rows.Next() {
		var from, to, kind, typ string
		var factor sql.NullString
		if err := rows.Scan(&from, &to, &kind, &factor, &typ); err != nil {
			return nil, err
		}
		c, err := scanConversion(lca.Unit(from), lca.Unit(to), conversion.Kind(kind), factor, conversion.Type(typ))
		if err != nil {
			return nil, err
		}
		conversions = append(conversions, c)
	}
	return conversions, rows.Err()
}

func scanConversion(from, to lca.Unit, kind conversion.Kind, factor sql.NullString, typ conversion.Type) (conversion.Conversion, error) {
	if kind == conversion.KindRequired || !factor.Valid {
		return conversion.NewRequired(from, to)
	}
	f, err := decimal.NewFromString(factor.String)
	if err != nil {
		return conversion.Conversion{}, fmt.Errorf("conversion %s -> %s: invalid factor %q: %w", from, to, factor.String, err)
	}
	if kind == conversion.KindImported {
		return conversion.NewImported(from, to, f, typ)
	}
	return conversion.NewLinear(from, to, f)
}

// ListLifeCycles returns all stored life cycle IDs.
func (s *Store) ListLifeCycles(ctx context.Context) ([]lca.ProcessLifeCycleID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT process_config_id, process_db_id FROM process_life_cycles ORDER BY process_config_id, process_db_id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []lca.ProcessLifeCycleID
	for rows.Next() {
		var id lca.ProcessLifeCycleID
		if err := rows.Scan(&id.ProcessConfigID, &id.ProcessDbID); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// =============================================================================
// PROJECT STORE
// =============================================================================

// SaveProjectUsages replaces the usages a project overrides.
func (s *Store) SaveProjectUsages(ctx context.Context, project lca.ProjectID, usages *lifecycle.LifeCycleUsages) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM project_life_cycle_usages WHERE project_id = ?", project); err != nil {
			return err
		}
		for _, u := range usages.Usages() {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO project_life_cycle_usages (project_id, module, construction, maintenance, energy_demand)
				VALUES (?, ?, ?, ?, ?)
			`, project, u.Module.String(), u.AppliedInConstruction, u.AppliedInMaintenance, u.AppliedInEnergyDemand)
			if err != nil {
				return fmt.Errorf("failed to save project usages: %w", err)
			}
		}
		return nil
	})
}

// GetProjectUsages returns a not-found error when the project has no rows.
func (s *Store) GetProjectUsages(ctx context.Context, project lca.ProjectID) (*lifecycle.LifeCycleUsages, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM project_life_cycle_usages WHERE project_id = ?", project).Scan(&count); err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, &lca.NotFoundError{Kind: "project life cycle usages", Key: fmt.Sprint(project)}
	}
	return s.loadUsages(ctx,
		"SELECT module, construction, maintenance, energy_demand FROM project_life_cycle_usages WHERE project_id = ?", project)
}

func (s *Store) loadUsages(ctx context.Context, query string, args ...any) (*lifecycle.LifeCycleUsages, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var usages []lifecycle.LifeCycleUsage
	for rows.Next() {
		var u lifecycle.LifeCycleUsage
		var module string
		if err := rows.Scan(&module, &u.AppliedInConstruction, &u.AppliedInMaintenance, &u.AppliedInEnergyDemand); err != nil {
			return nil, err
		}
		u.Module = lca.Module(module)
		usages = append(usages, u)
	}
	return lifecycle.NewLifeCycleUsages(usages...), rows.Err()
}

// =============================================================================
// UTILITIES
// =============================================================================

// Reset clears all data (for testing).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tables := []string{"benchmark_versions", "process_life_cycles", "project_life_cycle_usages"}
	for _, table := range tables {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}

func nullDecimalString(d decimal.NullDecimal) sql.NullString {
	if !d.Valid {
		return sql.NullString{}
	}
	return sql.NullString{String: d.Decimal.String(), Valid: true}
}

func indicatorValue(indicator string, value sql.NullString) (lca.IndicatorValue, error) {
	ident := lca.IndicatorIdent(indicator)
	if !value.Valid {
		return lca.NullIndicatorValue(ident), nil
	}
	d, err := decimal.NewFromString(value.String)
	if err != nil {
		return lca.IndicatorValue{}, fmt.Errorf("indicator %s: invalid value %q: %w", indicator, value.String, err)
	}
	return lca.NewIndicatorValueFromDecimal(ident, d), nil
}

func uuidString(id uuid.UUID) sql.NullString {
	if id == uuid.Nil {
		return sql.NullString{}
	}
	return sql.NullString{String: id.String(), Valid: true}
}

func toGroupRecords(groups []benchmark.Group) []groupRecord {
	records := make([]groupRecord, 0, len(groups))
	for _, g := range groups {
		r := groupRecord{Name: g.Name}
		for _, m := range g.Members {
			r.Members = append(r.Members, memberRecord{Indicator: m.Ident.String(), Weight: m.Weight.String()})
		}
		for _, c := range g.Captions {
			r.Captions = append(r.Captions, captionRecord{MinScore: c.MinScore.String(), Caption: c.Caption})
		}
		records = append(records, r)
	}
	return records
}

func fromGroupRecords(records []groupRecord) ([]benchmark.Group, error) {
	var groups []benchmark.Group
	for _, r := range records {
		g := benchmark.Group{Name: r.Name}
		for _, m := range r.Members {
			w, err := decimal.NewFromString(m.Weight)
			if err != nil {
				return nil, fmt.Errorf("group %q: invalid weight %q: %w", r.Name, m.Weight, err)
			}
			g.Members = append(g.Members, benchmark.GroupMember{Ident: lca.IndicatorIdent(m.Indicator), Weight: w})
		}
		for _, c := range r.Captions {
			minScore, err := decimal.NewFromString(c.MinScore)
			if err != nil {
				return nil, fmt.Errorf("group %q: invalid caption score %q: %w", r.Name, c.MinScore, err)
			}
			g.Captions = append(g.Captions, benchmark.Caption{MinScore: minScore, Caption: c.Caption})
		}
		groups = append(groups, g)
	}
	return groups, nil
}
