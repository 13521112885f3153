package module

import (
	"fmt"
	"sync"
	"time"

	"github.com/hush-ha/hushctl/logging"
	"github.com/hush-ha/hushctl/routines"
	"github.com/robfig/cron/v3"
)

var (
	_ routines.Runnable = (*HistoryRefresher)(nil)
)

const defaultRefreshInterval = time.Minute

// HistoryRefresher periodically triggers a refresh of the notification history
type HistoryRefresher struct {
	// Interval is the duration between two refreshes
	Interval time.Duration
	// Refresh is called on schedule
	Refresh func()

	mutex   sync.Mutex
	started bool
	cron    *cron.Cron
}

// NewHistoryRefresher returns a new HistoryRefresher
func NewHistoryRefresher(interval time.Duration, refresh func()) *HistoryRefresher {
	if interval <= 0 {
		interval = defaultRefreshInterval
	}
	return &HistoryRefresher{
		Interval: interval,
		Refresh:  refresh,
	}
}

// Start schedules the refresh
func (r *HistoryRefresher) Start() error {
	l := logging.NewLogger("HistoryRefresher.Start")
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.started {
		return nil
	}

	r.cron = cron.New()
	spec := fmt.Sprintf("@every %s", r.Interval)
	if _, err := r.cron.AddFunc(spec, r.Refresh); err != nil {
		return err
	}

	l.Info().
		Str("schedule", spec).
		Msg("Scheduling history refresh")
	r.cron.Start()
	r.started = true
	return nil
}

// Stop stops the schedule
func (r *HistoryRefresher) Stop() {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if !r.started {
		return
	}

	r.cron.Stop()
	r.started = false
}

// IsStarted returns true if the refresher is running
func (r *HistoryRefresher) IsStarted() bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.started
}

// GetName returns the name of this runnable object
func (r *HistoryRefresher) GetName() string {
	return "HistoryRefresher"
}
