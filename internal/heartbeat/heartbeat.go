// Package heartbeat provides liveness detection for the suggestion service.
package heartbeat

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dohr-michael/emotai/internal/events"
)

// Status represents the liveness state of the service.
type Status string

const (
	StatusUnknown Status = "unknown"
	StatusAlive   Status = "alive"
	StatusStale   Status = "stale" // reachable, answering 5xx
	StatusDead    Status = "dead"  // unreachable
)

// HealthPath is probed on the service. Services without it answer 404,
// which still proves they are up.
const HealthPath = "/health"

// Probe checks the service rooted at baseURL once.
func Probe(ctx context.Context, hc *http.Client, baseURL string) (Status, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(baseURL, "/")+HealthPath, nil)
	if err != nil {
		return StatusUnknown, fmt.Errorf("build probe: %w", err)
	}
	resp, err := hc.Do(req)
	if err != nil {
		return StatusDead, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode >= 500 {
		return StatusStale, fmt.Errorf("health: status %d", resp.StatusCode)
	}
	return StatusAlive, nil
}

// Monitor probes the service periodically and publishes every change of
// status on the bus.
type Monitor struct {
	baseURL  string
	http     *http.Client
	interval time.Duration
	bus      *events.Bus
	log      *slog.Logger

	mu     sync.Mutex
	status Status
	cancel context.CancelFunc
	done   chan struct{}
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithInterval sets the time between probes.
func WithInterval(d time.Duration) Option {
	return func(m *Monitor) {
		if d > 0 {
			m.interval = d
		}
	}
}

// WithHTTPClient replaces the probe client.
func WithHTTPClient(hc *http.Client) Option {
	return func(m *Monitor) { m.http = hc }
}

// WithBus publishes status changes on bus.
func WithBus(bus *events.Bus) Option {
	return func(m *Monitor) { m.bus = bus }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Monitor) { m.log = l }
}

// NewMonitor creates a monitor that probes baseURL every 15s.
func NewMonitor(baseURL string, opts ...Option) *Monitor {
	m := &Monitor{
		baseURL:  baseURL,
		http:     &http.Client{Timeout: 5 * time.Second},
		interval: 15 * time.Second,
		log:      slog.Default(),
		status:   StatusUnknown,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Status returns the last observed status.
func (m *Monitor) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// Start begins probing in a background goroutine. The first probe runs
// immediately.
func (m *Monitor) Start(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cancel != nil {
		return // already running
	}

	ctx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.done = make(chan struct{})

	go func() {
		defer close(m.done)
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()

		m.check(ctx)
		for {
			select {
			case <-ticker.C:
				m.check(ctx)
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops probing and waits for the goroutine to exit.
func (m *Monitor) Stop() {
	m.mu.Lock()
	cancel, done := m.cancel, m.done
	m.cancel = nil
	m.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (m *Monitor) check(ctx context.Context) {
	status, err := Probe(ctx, m.http, m.baseURL)
	if ctx.Err() != nil {
		return
	}

	m.mu.Lock()
	changed := status != m.status
	m.status = status
	m.mu.Unlock()

	if !changed {
		return
	}
	m.log.Info("service status changed", "url", m.baseURL, "status", status, "error", err)
	if m.bus == nil {
		return
	}
	p := events.ServiceStatusPayload{URL: m.baseURL, Status: string(status)}
	if err != nil {
		p.Error = err.Error()
	}
	m.bus.Publish(events.NewEvent(events.SourceHeartbeat, p))
}
