package network

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Shehabmohammed598/med-appoint-muse-sub000/internal/domain/entities"
)

// onlineDebounceProbes is how many consecutive healthy probes it takes to
// declare the connection restored. Going offline is reported immediately;
// coming back is debounced so a flapping link does not fire wentOnline on
// every blip.
const onlineDebounceProbes = 2

// Options configures a connectivity monitor
type Options struct {
	Prober        Prober
	Interval      time.Duration
	SlowThreshold time.Duration
	Logger        zerolog.Logger
}

// Monitor is the process-wide connectivity observer. It owns the
// NetworkStatus fact and emits transition events; it never retries or queues
// anything itself.
type Monitor struct {
	prober        Prober
	interval      time.Duration
	slowThreshold time.Duration
	logger        zerolog.Logger

	mu             sync.RWMutex
	status         entities.NetworkStatus
	healthyStreak  int
	subscribers    map[chan entities.NetworkEvent]struct{}

	cancel context.CancelFunc
	done   chan struct{}
}

// NewMonitor creates a connectivity monitor. It starts offline until the
// first successful probe.
func NewMonitor(opts Options) *Monitor {
	return &Monitor{
		prober:        opts.Prober,
		interval:      opts.Interval,
		slowThreshold: opts.SlowThreshold,
		logger:        opts.Logger,
		subscribers:   make(map[chan entities.NetworkEvent]struct{}),
	}
}

// Start runs an immediate probe to seed the status, then probes on a ticker
// until Stop is called.
func (m *Monitor) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.done = make(chan struct{})

	m.seed(ctx)

	go func() {
		defer close(m.done)
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.probeOnce(ctx)
			}
		}
	}()
}

// Stop ends the probe loop and closes all subscriber channels
func (m *Monitor) Stop() {
	if m.cancel != nil {
		m.cancel()
		<-m.done
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for ch := range m.subscribers {
		close(ch)
	}
	m.subscribers = make(map[chan entities.NetworkEvent]struct{})
}

// Status returns the current connectivity classification
func (m *Monitor) Status() entities.NetworkStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

// Subscribe registers a listener for connectivity transitions. The returned
// function removes the subscription and closes the channel.
func (m *Monitor) Subscribe() (<-chan entities.NetworkEvent, func()) {
	ch := make(chan entities.NetworkEvent, 16)

	m.mu.Lock()
	m.subscribers[ch] = struct{}{}
	m.mu.Unlock()

	unsubscribe := func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if _, ok := m.subscribers[ch]; ok {
			delete(m.subscribers, ch)
			close(ch)
		}
	}
	return ch, unsubscribe
}

// seed sets the initial status from current connectivity without emitting
// transition events: there is no transition at startup, only a starting fact.
func (m *Monitor) seed(ctx context.Context) {
	latency, err := m.prober.Probe(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		m.status = entities.NetworkStatus{IsOnline: false}
		return
	}
	m.healthyStreak = onlineDebounceProbes
	m.status = entities.NetworkStatus{
		IsOnline:         true,
		IsSlowConnection: latency >= m.slowThreshold,
	}
}

func (m *Monitor) probeOnce(ctx context.Context) {
	latency, err := m.prober.Probe(ctx)
	m.observe(latency, err)
}

// observe folds one probe result into the status and emits transition events.
func (m *Monitor) observe(latency time.Duration, err error) {
	m.mu.Lock()

	var events []entities.NetworkEvent
	now := time.Now()

	if err != nil {
		m.healthyStreak = 0
		if m.status.IsOnline {
			m.status = entities.NetworkStatus{IsOnline: false}
			m.logger.Warn().Err(err).Msg("connectivity lost")
			events = append(events, entities.NetworkEvent{
				Type:      entities.NetworkEventWentOffline,
				Status:    m.status,
				Timestamp: now,
			})
		}
	} else {
		m.healthyStreak++
		slow := latency >= m.slowThreshold

		if !m.status.IsOnline {
			if m.healthyStreak >= onlineDebounceProbes {
				m.status = entities.NetworkStatus{IsOnline: true, IsSlowConnection: slow}
				m.logger.Info().Dur("latency", latency).Msg("connectivity restored")
				events = append(events, entities.NetworkEvent{
					Type:      entities.NetworkEventWentOnline,
					Status:    m.status,
					Timestamp: now,
				})
			}
		} else if m.status.IsSlowConnection != slow {
			m.status.IsSlowConnection = slow
			events = append(events, entities.NetworkEvent{
				Type:      entities.NetworkEventQualityChanged,
				Status:    m.status,
				Timestamp: now,
			})
		}
	}

	subscribers := make([]chan entities.NetworkEvent, 0, len(m.subscribers))
	for ch := range m.subscribers {
		subscribers = append(subscribers, ch)
	}
	m.mu.Unlock()

	for _, event := range events {
		for _, ch := range subscribers {
			select {
			case ch <- event:
			default:
				// Slow listener; drop rather than stall the probe loop.
			}
		}
	}
}
