package memory_test

import (
	"testing"

	"github.com/IWUGERMANY/elca-sub014/store"
	"github.com/IWUGERMANY/elca-sub014/store/memory"
	"github.com/IWUGERMANY/elca-sub014/store/storetest"
)

func TestMemoryStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		return memory.New()
	})
}
