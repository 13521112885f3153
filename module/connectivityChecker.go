package module

import (
	"sync"
	"time"

	"github.com/go-ping/ping"
	"github.com/hush-ha/hushctl/app"
	"github.com/hush-ha/hushctl/logging"
	"github.com/hush-ha/hushctl/routines"
)

var (
	_ routines.Runnable = (*ConnectivityChecker)(nil)
)

const (
	defaultCheckInterval = 30 * time.Second
	pingTimeout          = 3 * time.Second
)

// ConnectivityChecker pings the Home Assistant host at a regular interval and
// reports reachability changes
type ConnectivityChecker struct {
	// PingHost is the host to ping
	PingHost string
	// Interval is the duration between two checks
	Interval time.Duration
	// OnChange is called whenever reachability flips, and once after the
	// first check
	OnChange func(online bool)

	mutex   sync.Mutex
	started bool
	online  bool
	checked bool
	stop    chan bool
}

// NewConnectivityChecker returns a new ConnectivityChecker
func NewConnectivityChecker(host string, interval time.Duration, onChange func(online bool)) *ConnectivityChecker {
	if interval <= 0 {
		interval = defaultCheckInterval
	}
	return &ConnectivityChecker{
		PingHost: host,
		Interval: interval,
		OnChange: onChange,
		stop:     make(chan bool, 1),
	}
}

// Start starts to check
func (c *ConnectivityChecker) Start() error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.started {
		return nil
	}

	app.RoutinesWG.Add(1)
	go func() {
		defer app.RoutinesWG.Done()

		ticker := time.NewTicker(c.Interval)
		defer ticker.Stop()

		c.check()
		for {
			select {
			case <-c.stop:
				return
			case <-ticker.C:
				c.check()
			}
		}
	}()

	c.started = true
	return nil
}

// Stop stops to check
func (c *ConnectivityChecker) Stop() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if !c.started {
		return
	}

	c.stop <- true
	c.started = false
}

// IsStarted returns true if the checker is running
func (c *ConnectivityChecker) IsStarted() bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.started
}

// GetName returns the name of this runnable object
func (c *ConnectivityChecker) GetName() string {
	return "ConnectivityChecker"
}

// Online returns the last known reachability state
func (c *ConnectivityChecker) Online() bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.online
}

func (c *ConnectivityChecker) check() {
	l := logging.NewLogger("ConnectivityChecker.check")

	online := c.pingOnce()

	c.mutex.Lock()
	changed := !c.checked || online != c.online
	c.checked = true
	c.online = online
	c.mutex.Unlock()

	if changed {
		l.Info().
			Str("host", c.PingHost).
			Bool("online", online).
			Msg("Host reachability changed")
		if c.OnChange != nil {
			c.OnChange(online)
		}
	}
}

func (c *ConnectivityChecker) pingOnce() bool {
	l := logging.NewLogger("ConnectivityChecker.pingOnce")

	pinger, err := ping.NewPinger(c.PingHost)
	if err != nil {
		l.Error().Err(err).Str("host", c.PingHost).Msg("Unable to create pinger")
		return false
	}

	pinger.Count = 2
	pinger.Timeout = pingTimeout
	pinger.SetPrivileged(false)

	if err := pinger.Run(); err != nil {
		l.Debug().Err(err).Str("host", c.PingHost).Msg("Ping failed")
		return false
	}

	return pinger.Statistics().PacketsRecv > 0
}
