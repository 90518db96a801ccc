package orchestrator

import (
	"sync"

	"github.com/standardbeagle/irengine/internal/ir"
)

// failureCollector gathers per-file build failures from concurrent workers
// without each one needing to coordinate on a shared slice directly.
type failureCollector struct {
	mu       sync.Mutex
	failures []ir.Failure
}

func (f *failureCollector) add(failure ir.Failure) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures = append(f.failures, failure)
}

func (f *failureCollector) drain() []ir.Failure {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.failures
}
