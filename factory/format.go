/*
Package factory converts JSON and YAML definitions into domain objects.

PURPOSE:
  Benchmark versions and process life cycles are usually maintained as
  data: exported from a process database, edited by hand, versioned in
  git. The factory turns those documents into benchmark.Version and
  lifecycle.ProcessLifeCycle values and back, so the store and the CLI
  never deal with the wire shape.

DOCUMENTS:
  Every document carries a "kind" so a single import can handle both:

    kind: benchmark_version          -> VersionJSON
    kind: process_life_cycle         -> LifeCycleJSON
    kind: project_life_cycle_usages  -> ProjectUsagesJSON

  JSON and YAML share the same field names.

USAGE:
  f := factory.New()
  doc, err := f.ParseDocument(data, factory.FormatFromPath("bnb-2015.yaml"))
  if doc.Version != nil { ... }

SEE ALSO:
  - version.go: Benchmark version schema
  - lifecycle.go: Process life cycle schema
  - project.go: Project usages and per-module values
*/
package factory

import (
	"encoding/json"
	"fmt"
	"math"
	"path/filepath"
	"sort"
	"strings"

	"github.com/IWUGERMANY/elca-sub014/benchmark"
	"github.com/IWUGERMANY/elca-sub014/lca"
	"github.com/IWUGERMANY/elca-sub014/lifecycle"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a definition document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Document kinds.
const (
	KindBenchmarkVersion = "benchmark_version"
	KindProcessLifeCycle = "process_life_cycle"
	KindProjectUsages    = "project_life_cycle_usages"
)

// FormatFromPath picks YAML for .yaml/.yml files and JSON otherwise.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

func decode(data []byte, format Format, v any) error {
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, v); err != nil {
			return fmt.Errorf("failed to parse YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, v); err != nil {
			return fmt.Errorf("failed to parse JSON: %w", err)
		}
	}
	return nil
}

// Encode writes v in the given format.
func Encode(v any, format Format) ([]byte, error) {
	if format == FormatYAML {
		return yaml.Marshal(v)
	}
	return json.MarshalIndent(v, "", "  ")
}

// =============================================================================
// FACTORY
// =============================================================================

// Factory converts definition documents to domain objects.
type Factory struct{}

func New() *Factory {
	return &Factory{}
}

// Document is a parsed definition; exactly one field is set.
type Document struct {
	Kind          string
	Version       *benchmark.Version
	LifeCycle     *lifecycle.ProcessLifeCycle
	ProjectUsages *ProjectUsages
}

// ParseDocument dispatches on the document's kind.
func (f *Factory) ParseDocument(data []byte, format Format) (*Document, error) {
	var head struct {
		Kind string `json:"kind" yaml:"kind"`
	}
	if err := decode(data, format, &head); err != nil {
		return nil, err
	}

	switch head.Kind {
	case KindBenchmarkVersion:
		v, err := f.ParseVersion(data, format)
		if err != nil {
			return nil, err
		}
		return &Document{Kind: head.Kind, Version: v}, nil
	case KindProcessLifeCycle:
		lc, err := f.ParseLifeCycle(data, format)
		if err != nil {
			return nil, err
		}
		return &Document{Kind: head.Kind, LifeCycle: lc}, nil
	case KindProjectUsages:
		pu, err := f.ParseProjectUsages(data, format)
		if err != nil {
			return nil, err
		}
		return &Document{Kind: head.Kind, ProjectUsages: pu}, nil
	default:
		return nil, fmt.Errorf("%w: unknown document kind %q", lca.ErrInvalidArgument, head.Kind)
	}
}

// ParseIndicatorValues parses a bare ident -> value document, e.g. the
// indicator totals of a building.
func (f *Factory) ParseIndicatorValues(data []byte, format Format) (*lca.IndicatorSet, error) {
	var m map[string]*float64
	if err := decode(data, format, &m); err != nil {
		return nil, err
	}
	return parseIndicatorMap(m)
}

// =============================================================================
// PARSING HELPERS
// =============================================================================

// parseIndicatorMap converts idents in sorted order so the resulting set
// is deterministic. nil values become null indicator values.
func parseIndicatorMap(m map[string]*float64) (*lca.IndicatorSet, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	set := &lca.IndicatorSet{}
	for _, k := range keys {
		ident, err := lca.ParseIndicatorIdent(k)
		if err != nil {
			return nil, err
		}
		if m[k] == nil {
			set.Put(lca.NullIndicatorValue(ident))
			continue
		}
		if err := finite(k, *m[k]); err != nil {
			return nil, err
		}
		set.Put(lca.NewIndicatorValue(ident, *m[k]))
	}
	return set, nil
}

// finite rejects NaN and infinities, which YAML can express but decimals
// cannot hold.
func finite(field string, values ...float64) error {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s: non-finite number %v", lca.ErrInvalidArgument, field, v)
		}
	}
	return nil
}

func indicatorMap(set *lca.IndicatorSet) map[string]*float64 {
	if set.Len() == 0 {
		return nil
	}
	m := make(map[string]*float64, set.Len())
	for _, v := range set.Values() {
		if f, ok := v.Float64(); ok {
			m[v.Ident.String()] = &f
		} else {
			m[v.Ident.String()] = nil
		}
	}
	return m
}
