// Package memory provides an in-memory store.Store.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/IWUGERMANY/elca-sub014/benchmark"
	"github.com/IWUGERMANY/elca-sub014/lca"
	"github.com/IWUGERMANY/elca-sub014/lifecycle"
	"github.com/IWUGERMANY/elca-sub014/store"
)

var _ store.Store = (*Memory)(nil)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

// Memory keeps the records it was given; callers must not modify them
// after saving.
type Memory struct {
	mu         sync.RWMutex
	versions   map[lca.BenchmarkVersionID]*benchmark.Version
	lifeCycles map[lca.ProcessLifeCycleID]*lifecycle.ProcessLifeCycle
	projects   map[lca.ProjectID]*lifecycle.LifeCycleUsages
}

func New() *Memory {
	return &Memory{
		versions:   make(map[lca.BenchmarkVersionID]*benchmark.Version),
		lifeCycles: make(map[lca.ProcessLifeCycleID]*lifecycle.ProcessLifeCycle),
		projects:   make(map[lca.ProjectID]*lifecycle.LifeCycleUsages),
	}
}

func (m *Memory) Close() error { return nil }

// =============================================================================
// VERSIONS
// =============================================================================

func (m *Memory) SaveVersion(_ context.Context, v *benchmark.Version) error {
	if v == nil {
		return fmt.Errorf("%w: nil benchmark version", lca.ErrInvalidArgument)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.versions[v.ID] = v
	return nil
}

func (m *Memory) GetVersion(_ context.Context, id lca.BenchmarkVersionID) (*benchmark.Version, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.versions[id]
	if !ok {
		return nil, &lca.NotFoundError{Kind: "benchmark version", Key: fmt.Sprint(id)}
	}
	return v, nil
}

func (m *Memory) ListVersions(_ context.Context) ([]*benchmark.Version, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*benchmark.Version, 0, len(m.versions))
	for _, v := range m.versions {
		result = append(result, v)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// =============================================================================
// LIFE CYCLES
// =============================================================================

func (m *Memory) SaveLifeCycle(_ context.Context, lc *lifecycle.ProcessLifeCycle) error {
	if lc == nil {
		return fmt.Errorf("%w: nil process life cycle", lca.ErrInvalidArgument)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lifeCycles[lc.ID()] = lc
	return nil
}

func (m *Memory) GetLifeCycle(_ context.Context, id lca.ProcessLifeCycleID) (*lifecycle.ProcessLifeCycle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	lc, ok := m.lifeCycles[id]
	if !ok {
		return nil, &lca.NotFoundError{Kind: "process life cycle", Key: id.String()}
	}
	return lc, nil
}

func (m *Memory) ListLifeCycles(_ context.Context) ([]lca.ProcessLifeCycleID, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]lca.ProcessLifeCycleID, 0, len(m.lifeCycles))
	for id := range m.lifeCycles {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if ids[i].ProcessConfigID != ids[j].ProcessConfigID {
			return ids[i].ProcessConfigID < ids[j].ProcessConfigID
		}
		return ids[i].ProcessDbID < ids[j].ProcessDbID
	})
	return ids, nil
}

// =============================================================================
// PROJECTS
// =============================================================================

func (m *Memory) SaveProjectUsages(_ context.Context, project lca.ProjectID, usages *lifecycle.LifeCycleUsages) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.projects[project] = usages
	return nil
}

func (m *Memory) GetProjectUsages(_ context.Context, project lca.ProjectID) (*lifecycle.LifeCycleUsages, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.projects[project]
	if !ok {
		return nil, &lca.NotFoundError{Kind: "project life cycle usages", Key: fmt.Sprint(project)}
	}
	return u, nil
}
