package app

import (
	"sync/atomic"
	"time"
)

// Metrics tracks event loop timing and host-side failures.
type Metrics struct {
	renderCount   atomic.Uint64
	renderTotalNs atomic.Int64
	renderMaxNs   atomic.Int64

	eventCount   atomic.Uint64
	eventTotalNs atomic.Int64

	ticks        atomic.Uint64
	droppedTicks atomic.Uint64
	hookErrors   atomic.Uint64
	storeErrors  atomic.Uint64

	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{startTime: time.Now()}
}

// RecordRender records how long one paint took.
func (m *Metrics) RecordRender(d time.Duration) {
	ns := d.Nanoseconds()
	m.renderCount.Add(1)
	m.renderTotalNs.Add(ns)
	for {
		old := m.renderMaxNs.Load()
		if ns <= old || m.renderMaxNs.CompareAndSwap(old, ns) {
			break
		}
	}
}

// RecordEvent records how long handling one terminal event took.
func (m *Metrics) RecordEvent(d time.Duration) {
	m.eventCount.Add(1)
	m.eventTotalNs.Add(d.Nanoseconds())
}

// RecordTick records a playback tick that advanced the playhead.
func (m *Metrics) RecordTick() { m.ticks.Add(1) }

// RecordDroppedTick records a tick that could not be posted.
func (m *Metrics) RecordDroppedTick() { m.droppedTicks.Add(1) }

// RecordHookError records a failed plugin hook.
func (m *Metrics) RecordHookError() { m.hookErrors.Add(1) }

// RecordStoreError records a callback for a clip the store does not hold.
func (m *Metrics) RecordStoreError() { m.storeErrors.Add(1) }

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	renders := m.renderCount.Load()
	events := m.eventCount.Load()

	var avgRender, avgEvent time.Duration
	if renders > 0 {
		avgRender = time.Duration(m.renderTotalNs.Load() / int64(renders))
	}
	if events > 0 {
		avgEvent = time.Duration(m.eventTotalNs.Load() / int64(events))
	}

	return MetricsSnapshot{
		Uptime:       time.Since(m.startTime),
		RenderCount:  renders,
		AvgRender:    avgRender,
		MaxRender:    time.Duration(m.renderMaxNs.Load()),
		EventCount:   events,
		AvgEvent:     avgEvent,
		Ticks:        m.ticks.Load(),
		DroppedTicks: m.droppedTicks.Load(),
		HookErrors:   m.hookErrors.Load(),
		StoreErrors:  m.storeErrors.Load(),
	}
}

// MetricsSnapshot is a point-in-time view of metrics.
type MetricsSnapshot struct {
	Uptime       time.Duration
	RenderCount  uint64
	AvgRender    time.Duration
	MaxRender    time.Duration
	EventCount   uint64
	AvgEvent     time.Duration
	Ticks        uint64
	DroppedTicks uint64
	HookErrors   uint64
	StoreErrors  uint64
}

// LogAttrs lists the snapshot as structured attributes.
func (s MetricsSnapshot) LogAttrs() []any {
	return []any{
		"uptime", s.Uptime.Round(time.Millisecond),
		"renders", s.RenderCount,
		"avg_render", s.AvgRender,
		"max_render", s.MaxRender,
		"events", s.EventCount,
		"avg_event", s.AvgEvent,
		"ticks", s.Ticks,
		"dropped_ticks", s.DroppedTicks,
		"hook_errors", s.HookErrors,
		"store_errors", s.StoreErrors,
	}
}

// Timer measures elapsed time.
type Timer struct {
	start time.Time
}

// StartTimer creates a new timer.
func StartTimer() Timer {
	return Timer{start: time.Now()}
}

// Elapsed returns the time since the timer started.
func (t Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}
