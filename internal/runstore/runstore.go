// Package runstore keeps an optional history of analysis runs and the scores they produced.
package runstore

import (
	"sync"

	"github.com/huangsam/encuesta/internal/contract"
)

// RunStoreManager holds the RunStore used by the current process.
type RunStoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	runs         contract.RunStore
}

var _ contract.StoreManager = &RunStoreManager{} // Compile-time check

// GetRunStore returns the RunStore, or nil when history was never initialized.
func (mgr *RunStoreManager) GetRunStore() contract.RunStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.runs
}
