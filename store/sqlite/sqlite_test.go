package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/IWUGERMANY/elca-sub014/lca"
	"github.com/IWUGERMANY/elca-sub014/store"
	"github.com/IWUGERMANY/elca-sub014/store/sqlite"
	"github.com/IWUGERMANY/elca-sub014/store/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		return newStore(t)
	})
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "elca.db")

	// GIVEN a version and a life cycle written to a file database
	s, err := sqlite.New(path)
	require.NoError(t, err)
	require.NoError(t, s.SaveVersion(ctx, storetest.Version(1)))
	id := lca.ProcessLifeCycleID{ProcessConfigID: 42, ProcessDbID: 7}
	require.NoError(t, s.SaveLifeCycle(ctx, storetest.LifeCycle(id)))
	require.NoError(t, s.Close())

	// WHEN the database is opened again
	s, err = sqlite.New(path)
	require.NoError(t, err)
	defer s.Close()

	// THEN both records are still there
	v, err := s.GetVersion(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "BNB 2015", v.Name)
	lc, err := s.GetLifeCycle(ctx, id)
	require.NoError(t, err)
	assert.Len(t, lc.Processes(), 2)
}

func TestSQLiteStore_Reset(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	require.NoError(t, s.SaveVersion(ctx, storetest.Version(1)))

	require.NoError(t, s.Reset(ctx))

	versions, err := s.ListVersions(ctx)
	require.NoError(t, err)
	assert.Empty(t, versions)
}
