// Package health watches backend liveness from the client side.
package health

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/Eccentric-Harry/blog-frontend/client"
)

// DefaultInterval is how often a Monitor probes the backend.
const DefaultInterval = 30 * time.Second

// Prober is implemented by *client.Client.
type Prober interface {
	Health(ctx context.Context) (*client.Health, error)
}

// Status is the last known backend state.
type Status int32

const (
	Checking Status = iota
	Online
	Offline
)

func (s Status) String() string {
	switch s {
	case Checking:
		return "checking"
	case Online:
		return "online"
	case Offline:
		return "offline"
	default:
		return fmt.Sprintf("Status(%d)", int32(s))
	}
}

// Monitor polls the backend and caches whether it answered. A probe that
// returns any error marks the backend offline.
type Monitor struct {
	probe    Prober
	interval time.Duration
	log      zerolog.Logger
	status   atomic.Int32
}

// NewMonitor returns a Monitor in the Checking state. interval <= 0 means
// DefaultInterval.
func NewMonitor(log zerolog.Logger, probe Prober, interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = DefaultInterval
	}
	m := &Monitor{probe: probe, interval: interval, log: log}
	m.status.Store(int32(Checking))
	return m
}

// Status returns the cached state.
func (m *Monitor) Status() Status { return Status(m.status.Load()) }

// IsOnline reports whether the last probe succeeded.
func (m *Monitor) IsOnline() bool { return m.Status() == Online }

// Check probes once, updates the cached state and returns it. Each probe is
// bounded by the polling interval.
func (m *Monitor) Check(ctx context.Context) Status {
	ctx, cancel := context.WithTimeout(ctx, m.interval)
	defer cancel()

	cur := Online
	_, err := m.probe.Health(ctx)
	if err != nil {
		cur = Offline
	}
	prev := Status(m.status.Swap(int32(cur)))
	if prev != cur {
		if cur == Online {
			m.log.Info().Str("previous", prev.String()).Msg("backend health: online")
		} else {
			m.log.Error().Err(err).Str("previous", prev.String()).Msg("backend health: offline")
		}
	}
	return cur
}

// Start probes immediately and then every interval until ctx is cancelled.
func (m *Monitor) Start(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.Check(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Check(ctx)
		}
	}
}
