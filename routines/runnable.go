package routines

import (
	"sync"

	"github.com/hush-ha/hushctl/logging"
)

var (
	mutex sync.Mutex
	// runnables stores all runnable objects
	runnables []Runnable
)

// Runnable represents an object which can be started or stopped
type Runnable interface {
	Start() error
	Stop()
	GetName() string
	IsStarted() bool
}

// AddRunnable adds Runnable objects to the list
func AddRunnable(r ...Runnable) {
	mutex.Lock()
	defer mutex.Unlock()
	runnables = append(runnables, r...)
}

// ResetRunnablesList empties Runnable objects' list
func ResetRunnablesList() {
	mutex.Lock()
	defer mutex.Unlock()
	runnables = make([]Runnable, 0)
}

// StartAllRunnables starts all registered Runnable objects
func StartAllRunnables() {
	l := logging.NewLogger("StartAllRunnables")
	mutex.Lock()
	defer mutex.Unlock()
	for _, r := range runnables {
		if r.IsStarted() {
			l.Warn().
				Str("runnable", r.GetName()).
				Msg("Runnable already started")
			continue
		}

		l.Info().
			Str("runnable", r.GetName()).
			Msg("Starting runnable")
		if err := r.Start(); err != nil {
			l.Error().
				Err(err).
				Str("runnable", r.GetName()).
				Msg("Unable to start runnable")
		}
	}
}

// StopAllRunnables stops all registered Runnable objects
func StopAllRunnables() {
	l := logging.NewLogger("StopAllRunnables")
	mutex.Lock()
	defer mutex.Unlock()
	for _, r := range runnables {
		if !r.IsStarted() {
			continue
		}

		l.Info().
			Str("runnable", r.GetName()).
			Msg("Stopping runnable")
		r.Stop()
	}
}
