package utility

import (
	"sync"

	"github.com/google/uuid"
)

// RunID identifies one batch run. Every record emitted by a run carries the
// same id so output files can be traced back to the run that produced them.
type RunID = uuid.UUID

var (
	runID     RunID
	runIDOnce sync.Once
	runIDMu   sync.RWMutex
)

func GetRunID() RunID {
	runIDOnce.Do(func() {
		runID = uuid.Must(uuid.NewV7())
	})

	runIDMu.RLock()
	defer runIDMu.RUnlock()
	return runID
}

func ResetRunID() RunID {
	runIDMu.Lock()
	defer runIDMu.Unlock()

	runID = uuid.Must(uuid.NewV7())
	return runID
}
